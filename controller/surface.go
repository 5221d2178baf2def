package controller

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/vidkeys/vidkeys/captions"
	"github.com/vidkeys/vidkeys/dispatch"
	vkey "github.com/vidkeys/vidkeys/key"
	"github.com/vidkeys/vidkeys/player"
)

// Caption modes.
const (
	ModeDirect = "direct"
	ModeKeys   = "keys"
)

// CaptionModes lists every captions.mode value.
func CaptionModes() []string {
	return []string{ModeDirect, ModeKeys}
}

// CaptionSurface builds the caption capability configured by captions.mode.
func CaptionSurface(mpv *player.MPV, opts Options) (captions.Surface, error) {
	switch mode := viper.GetString(vkey.CaptionsMode); mode {
	case ModeDirect:
		return player.NewDirectSurface(mpv), nil
	case ModeKeys:
		var reserved []string
		if opts.BindKeys {
			reserved = player.BoundKeys(keymapSymbols(dispatch.NewKeymap(opts.Dispatch)))
		}

		return player.NewKeySurface(mpv, player.CaptionKeys{
			Settings: viper.GetString(vkey.CaptionsSettingsKey),
			Confirm:  viper.GetString(vkey.CaptionsConfirmKey),
			Resume:   viper.GetString(vkey.CaptionsResumeKey),
		}, reserved)
	default:
		return nil, fmt.Errorf("unknown caption mode %q, expected one of %v", mode, CaptionModes())
	}
}
