package dispatch

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/samber/lo"
)

// Command is a single player action a key can trigger.
type Command int

const (
	SeekBackward Command = iota
	SeekForward
	PlayPause
	Fullscreen
	Captions
	RateDown
	RateUp
)

func (c Command) String() string {
	switch c {
	case SeekBackward:
		return "seek-backward"
	case SeekForward:
		return "seek-forward"
	case PlayPause:
		return "play-pause"
	case Fullscreen:
		return "fullscreen"
	case Captions:
		return "captions"
	case RateDown:
		return "rate-down"
	case RateUp:
		return "rate-up"
	default:
		return fmt.Sprintf("command(%d)", int(c))
	}
}

// Commands lists every command in help order.
func Commands() []Command {
	return []Command{SeekBackward, SeekForward, PlayPause, Fullscreen, Captions, RateDown, RateUp}
}

// Keymap binds input symbols to commands. Symbols are the key names produced
// by bubbletea ("left", " ", "f", ...) plus the names vidkeys registers inside mpv.
type Keymap struct {
	bindings map[Command]key.Binding
}

// NewKeymap builds the default bindings. Help text reflects the configured steps.
func NewKeymap(opts Options) *Keymap {
	return &Keymap{bindings: map[Command]key.Binding{
		SeekBackward: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", fmt.Sprintf("back %gs", opts.SeekStep)),
		),
		SeekForward: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", fmt.Sprintf("forward %gs", opts.SeekStep)),
		),
		PlayPause: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "play/pause"),
		),
		Fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fullscreen"),
		),
		Captions: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "captions"),
		),
		RateDown: key.NewBinding(
			key.WithKeys("<"),
			key.WithHelp("<", fmt.Sprintf("speed -%g", opts.RateStep)),
		),
		RateUp: key.NewBinding(
			key.WithKeys(">"),
			key.WithHelp(">", fmt.Sprintf("speed +%g", opts.RateStep)),
		),
	}}
}

// Lookup resolves an input symbol to its command.
func (k *Keymap) Lookup(symbol string) (Command, bool) {
	return lo.Find(Commands(), func(c Command) bool {
		b := k.bindings[c]
		return b.Enabled() && lo.Contains(b.Keys(), symbol)
	})
}

// Binding returns the binding of a command.
func (k *Keymap) Binding(c Command) key.Binding {
	return k.bindings[c]
}

// Bindings returns every binding in help order.
func (k *Keymap) Bindings() []key.Binding {
	return lo.Map(Commands(), func(c Command, _ int) key.Binding {
		return k.bindings[c]
	})
}

// ShortHelp implements help.KeyMap.
func (k *Keymap) ShortHelp() []key.Binding {
	return k.Bindings()
}

// FullHelp implements help.KeyMap.
func (k *Keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.bindings[SeekBackward], k.bindings[SeekForward], k.bindings[PlayPause]},
		{k.bindings[Fullscreen], k.bindings[Captions]},
		{k.bindings[RateDown], k.bindings[RateUp]},
	}
}

// Info describes a binding for machine-readable listings.
type Info struct {
	Command string   `json:"command" jsonschema:"description=Command identifier"`
	Keys    []string `json:"keys" jsonschema:"description=Input symbols bound to the command"`
	Help    string   `json:"help" jsonschema:"description=Human readable description"`
}

// Describe lists every binding as Info.
func (k *Keymap) Describe() []Info {
	return lo.Map(Commands(), func(c Command, _ int) Info {
		b := k.bindings[c]
		return Info{Command: c.String(), Keys: b.Keys(), Help: b.Help().Desc}
	})
}
