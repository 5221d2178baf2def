// Package player drives an mpv instance over its JSON-IPC socket.
//
// MPV exposes the three faces the controller needs: the native playback
// primitive (pause, position, speed, fullscreen), the on-screen surface used
// for transient feedback, and the caption capability driven by the caption
// sequencer. EventListener streams property changes and key messages back.
package player

import "errors"

var (
	// ErrNotRunning is returned when no mpv instance answers on the socket.
	ErrNotRunning = errors.New("mpv is not running")

	// ErrPropertyUnavailable is returned when mpv has nothing loaded that provides a property.
	ErrPropertyUnavailable = errors.New("property unavailable")

	// ErrControlUnavailable is returned when a control the caption sequence relies on is absent.
	ErrControlUnavailable = errors.New("control unavailable")
)

// Player is the lifecycle of a playback engine process.
type Player interface {
	// Launch starts a new player process for target and waits for its IPC socket.
	Launch(target string) error

	// IsRunning validates the liveness of the underlying playback process.
	IsRunning() bool

	// Close terminates a launched player and releases its socket. Attached players are left running.
	Close() error

	// Socket retrieves the path of the IPC channel.
	Socket() string

	// Wait returns a channel that is closed when a launched player exits.
	Wait() <-chan struct{}
}
