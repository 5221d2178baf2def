package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"

	"github.com/vidkeys/vidkeys/color"
	"github.com/vidkeys/vidkeys/controller"
	"github.com/vidkeys/vidkeys/icon"
	"github.com/vidkeys/vidkeys/key"
	"github.com/vidkeys/vidkeys/log"
	"github.com/vidkeys/vidkeys/player"
	"github.com/vidkeys/vidkeys/style"
	"github.com/vidkeys/vidkeys/tui"
	"github.com/vidkeys/vidkeys/util"
)

// runSession drives mpv until the user detaches, mpv quits or a signal arrives.
// With a socket it attaches to a running mpv, otherwise it launches one on target.
func runSession(ctx context.Context, target, socket string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var mpv *player.MPV
	if socket != "" {
		CheckSocket(socket)
		mpv = player.AttachMPV(socket)
	} else {
		binary := viper.GetString(key.PlayerBinary)
		CheckDependencies(binary)

		mpv = player.NewMPV(binary)
		erase := util.PrintErasable(fmt.Sprintf("%s Starting mpv...", icon.Get(icon.Progress)))
		err := mpv.Launch(target)
		erase()
		if err != nil {
			return err
		}
		defer util.Ignore(mpv.Close)
	}

	CheckPlayerVersion(mpv)

	opts, err := controller.OptionsFromConfig()
	if err != nil {
		return err
	}

	surface, err := controller.CaptionSurface(mpv, opts)
	if err != nil {
		return err
	}

	c := controller.New(mpv, surface, opts)

	erase := util.PrintErasable(fmt.Sprintf("%s Waiting for media...", icon.Get(icon.Progress)))
	err = c.Attach(ctx)
	erase()

	switch {
	case errors.Is(err, controller.ErrHostMismatch):
		printNotice("Wrong Media", err.Error(), "")
		_ = mpv.Close()
		os.Exit(1)
	case err != nil:
		return err
	}

	defer func() {
		if err := c.Detach(); err != nil {
			log.Warnf("detach: %v", err)
		}
	}()

	listener := player.NewEventListener(mpv.Socket(), c.HandleEvent)
	runners := []controller.Runner{listener.Run}

	if viper.GetBool(key.TUIEnable) && util.IsTerminal() {
		runners = append(runners, tui.Runner(c, tui.Options{Socket: mpv.Socket()}))
	} else {
		fmt.Printf(
			"%s attached to %s, press ctrl+c to detach\n",
			style.Fg(color.Green)(icon.Get(icon.Socket)),
			style.Fg(color.Purple)(mpv.Socket()),
		)
	}

	err = c.Run(ctx, runners...)
	if errors.Is(err, player.ErrNotRunning) {
		log.Info("mpv closed")
		return nil
	}
	return err
}
