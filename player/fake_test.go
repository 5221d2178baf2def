package player

import (
	"bufio"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// fakeMPV answers the subset of mpv's JSON-IPC protocol vidkeys uses.
type fakeMPV struct {
	t        *testing.T
	socket   string
	listener net.Listener

	mu         sync.Mutex
	properties map[string]any
	commands   [][]any
	named      []map[string]any
	observers  []net.Conn
	failures   map[string]string
}

func newFakeMPV(t *testing.T) *fakeMPV {
	dir, err := os.MkdirTemp("", "vk")
	if err != nil {
		t.Fatal(err)
	}

	socket := filepath.Join(dir, "mpv.sock")
	listener, err := net.Listen("unix", socket)
	if err != nil {
		t.Fatal(err)
	}

	f := &fakeMPV{
		t:        t,
		socket:   socket,
		listener: listener,
		properties: map[string]any{
			"pid":            float64(4242),
			"pause":          false,
			"time-pos":       float64(120),
			"speed":          float64(1),
			"fullscreen":     false,
			"osd-level":      float64(1),
			"sid":            float64(1),
			"sub-visibility": true,
			"path":           "/media/film.mkv",
		},
		failures: map[string]string{},
	}

	go f.serve()

	t.Cleanup(func() {
		listener.Close()
		f.mu.Lock()
		for _, c := range f.observers {
			c.Close()
		}
		f.mu.Unlock()
		os.RemoveAll(dir)
	})

	return f
}

func (f *fakeMPV) serve() {
	for {
		conn, err := f.listener.Accept()
		if err != nil {
			return
		}
		go f.handle(conn)
	}
}

func (f *fakeMPV) handle(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	encoder := json.NewEncoder(conn)

	for scanner.Scan() {
		var req struct {
			Command json.RawMessage `json:"command"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
			continue
		}

		var named map[string]any
		if json.Unmarshal(req.Command, &named) == nil {
			f.mu.Lock()
			f.named = append(f.named, named)
			f.mu.Unlock()
			_ = encoder.Encode(map[string]any{"error": "success"})
			continue
		}

		var args []any
		_ = json.Unmarshal(req.Command, &args)
		_ = encoder.Encode(f.reply(conn, args))
	}
}

func (f *fakeMPV) reply(conn net.Conn, args []any) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.commands = append(f.commands, args)

	name, _ := args[0].(string)
	if reason, ok := f.failures[name]; ok {
		return map[string]any{"error": reason}
	}

	switch name {
	case "get_property":
		value, ok := f.properties[args[1].(string)]
		if !ok {
			return map[string]any{"error": "property unavailable"}
		}
		return map[string]any{"error": "success", "data": value}
	case "set_property":
		f.properties[args[1].(string)] = args[2]
	case "seek":
		f.properties["time-pos"] = args[1]
	case "cycle":
		prop := args[1].(string)
		if v, ok := f.properties[prop].(bool); ok {
			f.properties[prop] = !v
		}
	case "observe_property":
		f.observers = append(f.observers, conn)
	}

	return map[string]any{"error": "success"}
}

// emit writes an event to every connection that registered an observer.
func (f *fakeMPV) emit(event map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()

	seen := make(map[net.Conn]bool)
	for _, c := range f.observers {
		if seen[c] {
			continue
		}
		seen[c] = true
		_ = json.NewEncoder(c).Encode(event)
	}
}

func (f *fakeMPV) property(name string) any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.properties[name]
}

func (f *fakeMPV) setProperty(name string, value any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.properties[name] = value
}

func (f *fakeMPV) unset(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.properties, name)
}

func (f *fakeMPV) fail(command, reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[command] = reason
}

// sent returns the commands received whose first argument is name.
func (f *fakeMPV) sent(name string) [][]any {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out [][]any
	for _, c := range f.commands {
		if c[0] == name {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeMPV) overlays() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.named...)
}

func (f *fakeMPV) observerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.observers)
}
