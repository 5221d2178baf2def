package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vidkeys/vidkeys/controller"
	"github.com/vidkeys/vidkeys/internal/ui"
)

func (b *bubble) Init() tea.Cmd {
	return nil
}

func (b *bubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd := b.notifier.Update(msg); cmd != nil {
		return b, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
		b.helpC.Width = msg.Width
	case statusMsg:
		return b, b.setStatus(controller.Status(msg))
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		case key.Matches(msg, b.keymap.showHelp):
			b.helpC.ShowAll = !b.helpC.ShowAll
		default:
			// unbound keys are ignored; bound ones run on the controller timeline
			b.driver.Press(msg.String())
		}
	}

	return b, nil
}

// setStatus stores s and surfaces a new command failure as a notification.
func (b *bubble) setStatus(s controller.Status) tea.Cmd {
	prev := b.status.Err
	b.status = s

	if s.Err != nil && s.Err != prev {
		return ui.Notify(s.Err.Error())
	}
	return nil
}
