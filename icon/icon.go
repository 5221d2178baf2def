// Package icon renders the status symbols vidkeys prints in the terminal.
//
// Each symbol has an emoji, nerd-font, plain, kaomoji and squares form; the
// icons.variant setting picks one.
package icon

import (
	"github.com/spf13/viper"

	"github.com/vidkeys/vidkeys/key"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns every icons.variant value.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Icon identifies a symbol.
type Icon int

const (
	Fail Icon = iota
	Success
	Check
	Cross
	Progress
	Play
	Pause
	Captions
	Socket
)

var icons = map[Icon]*iconDef{
	Fail:     {emoji: "💀", nerd: "", plain: "X", kaomoji: "(×_×)", squares: "🟥"},
	Success:  {emoji: "🎉", nerd: "", plain: "OK", kaomoji: "(ᵔᴥᵔ)", squares: "🟩"},
	Check:    {emoji: "✅", nerd: "", plain: "+", kaomoji: "(o^▽^o)", squares: "🟢"},
	Cross:    {emoji: "❌", nerd: "", plain: "-", kaomoji: "(╥﹏╥)", squares: "🔴"},
	Progress: {emoji: "⏳", nerd: "", plain: "~", kaomoji: "(・_・ヾ", squares: "🟨"},
	Play:     {emoji: "▶️", nerd: "", plain: ">", kaomoji: "(ง'̀-'́)ง", squares: "🟦"},
	Pause:    {emoji: "⏸️", nerd: "", plain: "||", kaomoji: "(-_-)zzZ", squares: "⬜"},
	Captions: {emoji: "💬", nerd: "", plain: "CC", kaomoji: "(・ω・)ﾉ", squares: "🟪"},
	Socket:   {emoji: "🔌", nerd: "", plain: "@", kaomoji: "(⌐■_■)", squares: "🟫"},
}

// Get returns the form of i for the configured variant.
func Get(i Icon) string {
	return icons[i].Get()
}
