package player

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/samber/lo"

	"github.com/vidkeys/vidkeys/log"
)

// Event is a notification read from mpv's event stream.
type Event struct {
	// Name is the property name for property changes, otherwise the mpv event name.
	Name string

	// Data is the new property value, nil for other events.
	Data any

	// Args holds the arguments of a client-message event.
	Args []string
}

// EventHandler receives events in the order mpv sent them.
type EventHandler func(Event)

// DefaultProperties are observed when NewEventListener is given none.
var DefaultProperties = []string{"pause", "time-pos", "speed", "fullscreen", "path"}

// EventListener holds one persistent connection to mpv. Property observers
// belong to the connection that registered them, so they are set up on it.
type EventListener struct {
	socketPath string
	properties []string
	handler    EventHandler

	mu      sync.Mutex
	conn    net.Conn
	stopped bool
	done    chan struct{}
	err     error
}

// NewEventListener creates a new event listener for the given socket.
func NewEventListener(socketPath string, handler EventHandler, properties ...string) *EventListener {
	if len(properties) == 0 {
		properties = DefaultProperties
	}

	return &EventListener{
		socketPath: socketPath,
		properties: properties,
		handler:    handler,
		done:       make(chan struct{}),
	}
}

// Start connects, registers property observers and starts reading events.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.conn != nil {
		return nil
	}

	if el.stopped {
		return fmt.Errorf("event listener stopped: %w", ErrNotRunning)
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", errors.Join(ErrNotRunning, err))
	}

	encoder := json.NewEncoder(conn)
	for i, name := range el.properties {
		if err := encoder.Encode(ipcCommand{Command: []any{"observe_property", i + 1, name}}); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	el.conn = conn
	go el.readLoop(conn)

	log.Infof("mpv event listener started on %s (observing: %v)", el.socketPath, el.properties)
	return nil
}

// Run starts the listener and blocks until ctx is done or the connection
// drops. A dropped connection is reported as ErrNotRunning.
func (el *EventListener) Run(ctx context.Context) error {
	if err := el.Start(); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		el.Stop()
		<-el.done
		return nil
	case <-el.done:
		return el.Err()
	}
}

// Stop closes the connection. Pending events are dropped.
func (el *EventListener) Stop() {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.stopped {
		return
	}
	el.stopped = true

	if el.conn != nil {
		el.conn.Close()
	} else {
		close(el.done)
	}
}

// Done is closed once the listener stops reading.
func (el *EventListener) Done() <-chan struct{} {
	return el.done
}

// Err returns why the listener stopped, nil when stopped by Stop.
func (el *EventListener) Err() error {
	el.mu.Lock()
	defer el.mu.Unlock()
	return el.err
}

func (el *EventListener) readLoop(conn net.Conn) {
	defer close(el.done)

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		el.processEvent(scanner.Bytes())
	}

	el.mu.Lock()
	defer el.mu.Unlock()

	if el.stopped {
		return
	}

	err := scanner.Err()
	if err != nil {
		log.Warnf("event listener read error: %v", err)
	}
	el.err = fmt.Errorf("event stream closed: %w", errors.Join(ErrNotRunning, err))
}

// processEvent parses and dispatches a single mpv event line.
func (el *EventListener) processEvent(line []byte) {
	var event struct {
		ipcResponse
		Name string `json:"name"`
		Args []any  `json:"args"`
	}

	if err := json.Unmarshal(line, &event); err != nil {
		log.Debugf("skipping unparseable mpv line: %v", err)
		return
	}

	if event.Event == "" {
		if event.Error != "" && event.Error != "success" {
			log.Warnf("mpv rejected observer: %s", event.Error)
		}
		return
	}

	if el.handler == nil {
		return
	}

	switch event.Event {
	case "property-change":
		if event.Name != "" {
			el.handler(Event{Name: event.Name, Data: event.Data})
		}
	case "client-message":
		el.handler(Event{
			Name: event.Event,
			Args: lo.Map(event.Args, func(a any, _ int) string {
				s, _ := a.(string)
				return s
			}),
		})
	default:
		el.handler(Event{Name: event.Event})
	}
}

// ScriptMessage returns the symbol of a client-message addressed to target.
func (e Event) ScriptMessage(target string) (string, bool) {
	if e.Name != "client-message" || len(e.Args) < 2 || e.Args[0] != target {
		return "", false
	}
	return e.Args[1], true
}
