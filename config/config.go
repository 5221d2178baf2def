// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/vidkeys/vidkeys/constant"
	"github.com/vidkeys/vidkeys/filesystem"
	"github.com/vidkeys/vidkeys/key"
	"github.com/vidkeys/vidkeys/where"
)

// EnvKeyReplacer is a strings.Replacer used to normalize configuration keys into environment variable naming conventions.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup initializes the global configuration state, including defaults, environment bindings, and localized file resolution.
func Setup() error {
	viper.SetConfigName(constant.Vidkeys)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Vidkeys)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}

	return nil
}

// Millis reads an integer millisecond setting as a time.Duration.
func Millis(k string) time.Duration {
	return time.Duration(viper.GetInt(k)) * time.Millisecond
}

// Linger is the dismissal delay shared by every transient indicator.
func Linger() time.Duration {
	return Millis(key.OverlayLinger)
}

// StepDelay is the spacing between caption sequence steps.
func StepDelay() time.Duration {
	return Millis(key.CaptionsStepDelay)
}

// WaitTimeout bounds how long the controller waits for media to load.
func WaitTimeout() time.Duration {
	return time.Duration(viper.GetInt(key.HostWaitTimeout)) * time.Second
}
