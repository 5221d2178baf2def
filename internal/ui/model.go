// Package ui holds small bubbletea components shared by the terminal views.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// notificationTTL is how long a notification stays on screen.
const notificationTTL = 3 * time.Second

// Model displays one short notification next to the last line of a view.
type Model struct {
	notification string
	generation   int
}

// NotifyMsg asks the model to show Text.
type NotifyMsg struct {
	Text string
}

// ClearNotificationMsg clears the notification it was scheduled for.
type ClearNotificationMsg struct {
	generation int
}

// Notify returns a tea.Cmd that shows text.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NotifyMsg{Text: text}
	}
}

func clearAfter(generation int) tea.Cmd {
	return tea.Tick(notificationTTL, func(time.Time) tea.Msg {
		return ClearNotificationMsg{generation: generation}
	})
}

// Update processes incoming messages to modify the notification state.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotifyMsg:
		m.generation++
		m.notification = msg.Text
		return clearAfter(m.generation)
	case ClearNotificationMsg:
		// a newer notification restarted the timer
		if msg.generation == m.generation {
			m.notification = ""
		}
	}
	return nil
}

// Notification returns the text currently shown.
func (m *Model) Notification() string {
	return m.notification
}

// View appends the notification, faint, to the last line of mainContent.
func (m *Model) View(mainContent string) string {
	if m.notification == "" {
		return mainContent
	}

	lines := strings.Split(mainContent, "\n")
	notifier := "\033[90m" + m.notification + "\033[0m"

	lines[len(lines)-1] = lines[len(lines)-1] + "  " + notifier
	return strings.Join(lines, "\n")
}
