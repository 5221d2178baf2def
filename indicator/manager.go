package indicator

import "time"

// Surface is the part of the player UI the indicators draw on.
type Surface interface {
	// SetOverlay forces the player's progress overlay visible or restores its idle state.
	SetOverlay(active bool) error

	// ShowToast draws the floating status message.
	ShowToast(text string) error

	// ClearToast removes the floating status message if one is drawn.
	ClearToast() error
}

// Manager owns the two transient channels of a player: the progress overlay
// and the status toast.
type Manager struct {
	surface  Surface
	progress *Counter
	message  *Counter
	text     string
}

// NewManager wires both channels to surface with the same linger delay.
func NewManager(surface Surface, sched Scheduler, linger time.Duration) *Manager {
	m := &Manager{surface: surface}

	m.progress = NewCounter("progress", sched, linger,
		func() error { return surface.SetOverlay(true) },
		func() error { return surface.SetOverlay(false) },
	)

	m.message = NewCounter("message", sched, linger, nil, func() error {
		m.text = ""
		return surface.ClearToast()
	})

	return m
}

// BeginSeekFeedback keeps the progress overlay visible for one linger delay.
func (m *Manager) BeginSeekFeedback() {
	m.progress.Begin()
}

// ShowMessage replaces the current toast with text and keeps it visible until
// one linger delay after the most recent call.
func (m *Manager) ShowMessage(text string) {
	if m.text != "" {
		m.message.emit("replace", m.surface.ClearToast)
		m.text = ""
	}

	if m.message.emit("show", func() error { return m.surface.ShowToast(text) }) {
		m.text = text
	}
	m.message.Begin()
}

// Progress exposes the progress channel so it can be held open by other components.
func (m *Manager) Progress() *Counter {
	return m.progress
}

// Message returns the toast currently displayed, or "" when hidden.
func (m *Manager) Message() string {
	return m.text
}

// OverlayActive reports whether the progress overlay is forced visible.
func (m *Manager) OverlayActive() bool {
	return m.progress.Active()
}
