package player

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/vidkeys/vidkeys/constant"
)

// inputSection is the name of the mpv input section vidkeys owns.
const inputSection = constant.Vidkeys

// KeyEvent describes a key press delivered to mpv. mpv's keypress takes only
// Name; Code and KeyCode identify the physical key in logs.
type KeyEvent struct {
	Name    string // mpv key name, e.g. "ENTER" or "alt+c"
	Code    string // physical key identifier, e.g. "Enter" or "KeyC"
	KeyCode int    // legacy numeric key code
}

// namedKeys are the non-printable mpv key names vidkeys knows how to send.
var namedKeys = map[string]KeyEvent{
	"ENTER": {Name: "ENTER", Code: "Enter", KeyCode: 13},
	"SPACE": {Name: "SPACE", Code: "Space", KeyCode: 32},
	"ESC":   {Name: "ESC", Code: "Escape", KeyCode: 27},
	"TAB":   {Name: "TAB", Code: "Tab", KeyCode: 9},
	"BS":    {Name: "BS", Code: "Backspace", KeyCode: 8},
	"LEFT":  {Name: "LEFT", Code: "ArrowLeft", KeyCode: 37},
	"UP":    {Name: "UP", Code: "ArrowUp", KeyCode: 38},
	"RIGHT": {Name: "RIGHT", Code: "ArrowRight", KeyCode: 39},
	"DOWN":  {Name: "DOWN", Code: "ArrowDown", KeyCode: 40},
}

var modifiers = []string{"shift", "ctrl", "alt", "meta"}

// ParseKey resolves an mpv key name, with optional modifier prefixes, to a KeyEvent.
func ParseKey(name string) (KeyEvent, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return KeyEvent{}, fmt.Errorf("empty key: %w", ErrControlUnavailable)
	}

	parts := strings.Split(name, "+")
	base := parts[len(parts)-1]
	mods := parts[:len(parts)-1]
	if base == "" && len(parts) > 1 {
		// "+" itself, possibly with modifiers
		base = "+"
		mods = parts[:len(parts)-2]
	}

	for _, mod := range mods {
		if !lo.Contains(modifiers, strings.ToLower(mod)) {
			return KeyEvent{}, fmt.Errorf("key %q: unknown modifier %q: %w", name, mod, ErrControlUnavailable)
		}
	}

	var event KeyEvent
	switch {
	case len([]rune(base)) == 1:
		r := []rune(base)[0]
		event = KeyEvent{Name: base, Code: physicalCode(r), KeyCode: legacyKeyCode(r)}
	default:
		named, ok := namedKeys[strings.ToUpper(base)]
		if !ok {
			return KeyEvent{}, fmt.Errorf("key %q: %w", name, ErrControlUnavailable)
		}
		event = named
	}

	if len(mods) > 0 {
		event.Name = strings.ToLower(strings.Join(mods, "+")) + "+" + event.Name
	}
	return event, nil
}

func physicalCode(r rune) string {
	switch {
	case r >= 'a' && r <= 'z':
		return "Key" + strings.ToUpper(string(r))
	case r >= 'A' && r <= 'Z':
		return "Key" + string(r)
	case r >= '0' && r <= '9':
		return "Digit" + string(r)
	default:
		return string(r)
	}
}

func legacyKeyCode(r rune) int {
	if r >= 'a' && r <= 'z' {
		return int(r - 'a' + 'A')
	}
	return int(r)
}

// mpvKeyName converts an input symbol to the key name mpv binds it under.
func mpvKeyName(symbol string) string {
	switch symbol {
	case "left":
		return "LEFT"
	case "right":
		return "RIGHT"
	case " ", "space":
		return "SPACE"
	default:
		return symbol
	}
}

// messageSymbol is the symbol carried by the script message, free of whitespace.
func messageSymbol(symbol string) string {
	if symbol == " " {
		return "space"
	}
	return symbol
}

// BoundKeys returns the mpv key names BindKeys would claim for symbols.
func BoundKeys(symbols []string) []string {
	return lo.Uniq(lo.Map(symbols, func(s string, _ int) string {
		return mpvKeyName(s)
	}))
}

// BindKeys makes mpv report presses of symbols inside its window as
// client-message events instead of running its own bindings for them.
func (m *MPV) BindKeys(symbols []string) error {
	seen := make(map[string]bool)
	var lines []string

	for _, symbol := range symbols {
		name := mpvKeyName(symbol)
		if seen[name] {
			continue
		}
		seen[name] = true

		lines = append(lines, fmt.Sprintf("%s script-message %s %s", name, constant.ScriptMessageTarget, messageSymbol(symbol)))
	}

	if len(lines) == 0 {
		return nil
	}

	if err := m.Command("define-section", inputSection, strings.Join(lines, "\n"), "force"); err != nil {
		return fmt.Errorf("define key section: %w", err)
	}

	if err := m.Command("enable-section", inputSection); err != nil {
		return fmt.Errorf("enable key section: %w", err)
	}

	return nil
}

// UnbindKeys gives the keys back to mpv.
func (m *MPV) UnbindKeys() error {
	if err := m.Command("disable-section", inputSection); err != nil {
		return fmt.Errorf("disable key section: %w", err)
	}
	return nil
}
