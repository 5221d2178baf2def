package controller

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/viper"

	"github.com/vidkeys/vidkeys/captions"
	"github.com/vidkeys/vidkeys/config"
	"github.com/vidkeys/vidkeys/dispatch"
	"github.com/vidkeys/vidkeys/key"
)

// defaultPollInterval is how often Attach checks whether media has loaded.
const defaultPollInterval = 250 * time.Millisecond

// Options configure a Controller.
type Options struct {
	Dispatch dispatch.Options

	// Linger is how long transient indicators stay after their last trigger.
	Linger time.Duration

	// StepDelay separates the steps of a caption toggle.
	StepDelay time.Duration

	Overlap captions.Overlap

	// BindKeys makes the player window forward the command keys.
	BindKeys bool

	// MediaPrefix, when set, must prefix the loaded media path.
	MediaPrefix string

	WaitTimeout  time.Duration
	PollInterval time.Duration

	Clock clockwork.Clock
}

// OptionsFromConfig reads the options from the loaded configuration.
func OptionsFromConfig() (Options, error) {
	overlap, err := captions.ParseOverlap(viper.GetString(key.CaptionsOverlap))
	if err != nil {
		return Options{}, fmt.Errorf("%s: %w", key.CaptionsOverlap, err)
	}

	opts := Options{
		Dispatch: dispatch.Options{
			SeekStep: viper.GetFloat64(key.PlayerSeekStep),
			RateStep: viper.GetFloat64(key.PlayerRateStep),
			RateMin:  viper.GetFloat64(key.PlayerRateMin),
			RateMax:  viper.GetFloat64(key.PlayerRateMax),
		},
		Linger:       config.Linger(),
		StepDelay:    config.StepDelay(),
		Overlap:      overlap,
		BindKeys:     viper.GetBool(key.PlayerBindKeys),
		MediaPrefix:  viper.GetString(key.HostMediaPrefix),
		WaitTimeout:  config.WaitTimeout(),
		PollInterval: defaultPollInterval,
		Clock:        clockwork.NewRealClock(),
	}

	if opts.Dispatch.RateMin > opts.Dispatch.RateMax {
		return Options{}, fmt.Errorf("%s (%g) is above %s (%g)", key.PlayerRateMin, opts.Dispatch.RateMin, key.PlayerRateMax, opts.Dispatch.RateMax)
	}

	return opts, nil
}
