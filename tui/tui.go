// Package tui shows the session status in the terminal and forwards the
// command keys typed there to the controller.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vidkeys/vidkeys/controller"
	"github.com/vidkeys/vidkeys/dispatch"
)

// Driver is the part of the controller the terminal view talks to.
type Driver interface {
	Press(symbol string) bool
	Keymap() *dispatch.Keymap
	Status() controller.Status
	OnStatus(fn func(controller.Status))
}

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Socket is shown in the header.
	Socket string
}

// Runner returns a controller.Runner that runs the status view until the
// user quits or the session ends.
func Runner(driver Driver, options Options) controller.Runner {
	return func(ctx context.Context) error {
		program := tea.NewProgram(newBubble(driver, options), tea.WithAltScreen(), tea.WithContext(ctx))

		driver.OnStatus(func(s controller.Status) {
			program.Send(statusMsg(s))
		})
		defer driver.OnStatus(nil)

		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
}
