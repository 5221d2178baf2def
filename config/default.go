// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/vidkeys/vidkeys/color"
	"github.com/vidkeys/vidkeys/constant"
	"github.com/vidkeys/vidkeys/key"
	"github.com/vidkeys/vidkeys/style"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Vidkeys + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case float64:
		return "float"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.PlayerSeekStep, 5.0, "Seconds to jump on the left and right arrow keys")
	register(key.PlayerRateStep, 0.25, "Playback rate change applied by the < and > keys")
	register(key.PlayerRateMin, 0.0, "Lowest playback rate the rate keys may reach")
	register(key.PlayerRateMax, 16.0, "Highest playback rate the rate keys may reach")
	register(key.PlayerBinary, "mpv", "mpv executable to launch when a media target is given")
	register(key.PlayerSocket, "", "Existing mpv IPC socket to attach to.\nLeave empty to launch a new mpv instance")
	register(key.PlayerBindKeys, true, "Bind the command keys inside the mpv window as well as the terminal")
	register(key.OverlayLinger, 1000, "Milliseconds the progress overlay and toasts stay visible after the last trigger")
	register(key.CaptionsMode, "direct", "How captions are toggled.\nAvailable options are: direct (sub-visibility), keys (simulated key presses through the player input bindings)")
	register(key.CaptionsStepDelay, 200, "Milliseconds between the steps of the caption toggle sequence")
	register(key.CaptionsOverlap, "queue", "What to do when captions are toggled mid-sequence.\nAvailable options are: queue, ignore")
	register(key.CaptionsSettingsKey, "alt+c", "Key that opens and closes the caption settings in the player UI")
	register(key.CaptionsConfirmKey, "ENTER", "Key that commits the caption toggle once settings are open")
	register(key.CaptionsResumeKey, "p", "Key sent to resume playback after the settings pause it")
	register(key.HostMediaPrefix, "", "Refuse to attach unless the loaded media path starts with this prefix")
	register(key.HostWaitTimeout, 30, "Seconds to wait for the player to load media before giving up")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.TUIEnable, true, "Show the status view in the terminal while attached")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
