package tui

import (
	"github.com/charmbracelet/bubbles/help"

	"github.com/vidkeys/vidkeys/controller"
	"github.com/vidkeys/vidkeys/internal/ui"
)

// statusMsg carries a controller status into the program.
type statusMsg controller.Status

type bubble struct {
	driver  Driver
	options Options
	keymap  *keymap

	status controller.Status

	helpC    help.Model
	notifier *ui.Model

	width, height int
}

func newBubble(driver Driver, options Options) *bubble {
	return &bubble{
		driver:   driver,
		options:  options,
		keymap:   newKeymap(driver.Keymap()),
		status:   driver.Status(),
		helpC:    help.New(),
		notifier: &ui.Model{},
	}
}
