package player

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/vidkeys/vidkeys/log"
	"github.com/vidkeys/vidkeys/where"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond

	// minSpeed is the lowest playback speed mpv accepts.
	minSpeed = 0.01
)

// MPV implements Player and the controller-facing interfaces over mpv's JSON-IPC protocol.
type MPV struct {
	binary     string
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when a launched mpv process exits
	mu         sync.Mutex    // Protects socket writes

	overlayMu    sync.Mutex
	restoreLevel int
	overlayOn    bool
}

// NewMPV creates a player that will launch binary (does not start playback).
func NewMPV(binary string) *MPV {
	return &MPV{
		binary: binary,
		exited: make(chan struct{}),
	}
}

// AttachMPV returns a player bound to an mpv instance already listening on socketPath.
func AttachMPV(socketPath string) *MPV {
	return &MPV{
		socketPath: socketPath,
		exited:     make(chan struct{}),
	}
}

// Launch starts mpv on target with an IPC server on a fresh socket.
func (m *MPV) Launch(target string) error {
	safeTarget, err := sanitizeMediaTarget(target)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return fmt.Errorf("generate socket name: %w", err)
	}
	socketPath := where.Socket(fmt.Sprintf("%x", randomBytes))

	// Respect the user's mpv.conf: pass only what IPC control needs.
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", socketPath),
		fmt.Sprintf("--force-media-title=%s", sanitizeTitle(filepath.Base(safeTarget))),
		"--force-window=yes",
		safeTarget,
	}

	m.cmd = exec.Command(m.binary, args...)

	// Detach from parent process group so terminal signals reach vidkeys only.
	m.cmd.SysProcAttr = sysProcAttr()

	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	// Reap the process to prevent zombies.
	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := waitForSocket(socketPath, m.exited); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	m.mu.Lock()
	m.socketPath = socketPath
	m.mu.Unlock()

	log.Infof("mpv started on %s (pid %d)", socketPath, m.cmd.Process.Pid)
	return nil
}

// Wait returns a channel that is closed when a launched mpv process exits.
// For attached players the channel is never closed.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func waitForSocket(socketPath string, exited <-chan struct{}) error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", socketPath, socketWaitRetries)
}

// IsRunning reports whether mpv is responding to IPC commands.
func (m *MPV) IsRunning() bool {
	select {
	case <-m.exited:
		return false
	default:
	}

	_, err := m.sendCommand([]any{"get_property", "pid"})
	return err == nil
}

// Close shuts down a launched mpv process and cleans up its socket.
func (m *MPV) Close() error {
	if m.cmd == nil {
		return nil
	}

	_, _ = m.sendCommand([]any{"quit"})

	select {
	case <-m.exited:
	case <-time.After(3 * time.Second):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)
	return nil
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.socketPath
}

// Paused returns whether playback is currently paused.
func (m *MPV) Paused() (bool, error) {
	return m.getBoolProperty("pause")
}

// SetPaused pauses or resumes playback.
func (m *MPV) SetPaused(paused bool) error {
	return m.Set("pause", paused)
}

// Position returns the current playback position in seconds.
func (m *MPV) Position() (float64, error) {
	return m.getFloatProperty("time-pos")
}

// SetPosition moves playback to the given absolute position in seconds.
func (m *MPV) SetPosition(seconds float64) error {
	_, err := m.sendCommand([]any{"seek", seconds, "absolute"})
	return err
}

// Rate returns the playback speed. mpv's minimum speed reads back as 0,
// the rate SetRate was asked for, so rate steps stay on their grid.
func (m *MPV) Rate() (float64, error) {
	rate, err := m.getFloatProperty("speed")
	if err != nil {
		return 0, err
	}
	if rate <= minSpeed {
		return 0, nil
	}
	return rate, nil
}

// SetRate sets the playback speed. mpv cannot stop through speed, so rates
// below its minimum are raised to it.
func (m *MPV) SetRate(rate float64) error {
	if rate < minSpeed {
		rate = minSpeed
	}
	return m.Set("speed", rate)
}

// Fullscreen reports whether the mpv window is fullscreen.
func (m *MPV) Fullscreen() (bool, error) {
	return m.getBoolProperty("fullscreen")
}

// SetFullscreen enters or leaves fullscreen.
func (m *MPV) SetFullscreen(on bool) error {
	return m.Set("fullscreen", on)
}

// MediaPath returns the path or URL of the loaded file.
func (m *MPV) MediaPath() (string, error) {
	data, err := m.sendCommand([]any{"get_property", "path"})
	if err != nil {
		return "", err
	}

	path, ok := data.(string)
	if !ok || path == "" {
		return "", fmt.Errorf("property path: %w", ErrPropertyUnavailable)
	}
	return path, nil
}

// HasActivePlayback checks if mpv currently has media loaded.
func (m *MPV) HasActivePlayback() (bool, error) {
	_, err := m.MediaPath()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrPropertyUnavailable) {
		return false, nil
	}
	return false, err
}

// Set a property
func (m *MPV) Set(property string, value any) error {
	_, err := m.sendCommand([]any{"set_property", property, value})
	return err
}

// Command runs an arbitrary mpv command.
func (m *MPV) Command(args ...any) error {
	_, err := m.sendCommand(args)
	return err
}

// getFloatProperty is a helper to retrieve a float64 mpv property via IPC.
func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand([]any{"get_property", name})
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: %w", name, ErrPropertyUnavailable)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

// getBoolProperty is a helper to retrieve a boolean mpv property via IPC.
func (m *MPV) getBoolProperty(name string) (bool, error) {
	data, err := m.sendCommand([]any{"get_property", name})
	if err != nil {
		return false, err
	}

	val, ok := data.(bool)
	if !ok {
		return false, fmt.Errorf("property %s: expected bool, got %T", name, data)
	}

	return val, nil
}

// sanitizeMediaTarget validates that a URL is safe to pass to mpv.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	// Prevent flag injection: targets must not start with -
	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

// sanitizeTitle cleans up the title for mpv
func sanitizeTitle(title string) string {
	t := strings.ReplaceAll(title, "\n", " ")
	t = strings.ReplaceAll(t, "\r", " ")
	t = strings.ReplaceAll(t, "\t", " ")
	t = strings.ReplaceAll(t, "\x00", "")
	return strings.TrimSpace(t)
}

// Version returns the mpv-version property, e.g. "mpv 0.36.0".
func (m *MPV) Version() (string, error) {
	data, err := m.sendCommand([]any{"get_property", "mpv-version"})
	if err != nil {
		return "", err
	}

	v, ok := data.(string)
	if !ok {
		return "", fmt.Errorf("property mpv-version: expected string, got %T", data)
	}
	return v, nil
}
