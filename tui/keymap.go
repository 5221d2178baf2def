package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/vidkeys/vidkeys/dispatch"
)

// keymap adds the view's own keys to the command bindings.
type keymap struct {
	commands *dispatch.Keymap

	quit, showHelp key.Binding
}

func newKeymap(commands *dispatch.Keymap) *keymap {
	return &keymap{
		commands: commands,
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "ctrl+d"),
			key.WithHelp("q", "detach"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *keymap) ShortHelp() []key.Binding {
	return append(k.commands.ShortHelp(), k.showHelp, k.quit)
}

func (k *keymap) FullHelp() [][]key.Binding {
	return append(k.commands.FullHelp(), []key.Binding{k.showHelp, k.quit})
}
