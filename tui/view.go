package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/samber/lo"

	"github.com/vidkeys/vidkeys/captions"
	"github.com/vidkeys/vidkeys/constant"
	"github.com/vidkeys/vidkeys/dispatch"
	"github.com/vidkeys/vidkeys/icon"
	"github.com/vidkeys/vidkeys/style"
)

var (
	paddingStyle = lipgloss.NewStyle().Padding(1, 2)
	labelStyle   = lipgloss.NewStyle().Foreground(style.FaintColor).Width(10)
	toastStyle   = lipgloss.NewStyle().Foreground(style.Text).Background(style.Surface).Bold(true).Padding(0, 1)
)

func (b *bubble) View() string {
	s := b.status

	lines := []string{
		style.Title(constant.Vidkeys) + " " + style.Faint(b.options.Socket),
		"",
		b.field("media", b.truncate(filepath.Base(s.Media))),
		b.field("state", b.playbackState()),
		b.field("position", formatPosition(s.Position)),
		b.field("rate", dispatch.FormatRate(s.Rate)),
		b.field("captions", b.captionsState()),
		"",
		lo.Ternary(s.Message != "", toastStyle.Render(s.Message), ""),
	}

	return b.notifier.View(b.renderLines(lines))
}

func (b *bubble) field(label, value string) string {
	return labelStyle.Render(label) + value
}

func (b *bubble) truncate(s string) string {
	if b.width <= 14 {
		return s
	}
	return truncate.StringWithTail(s, uint(b.width-14), "…")
}

func (b *bubble) playbackState() string {
	s := b.status

	state := lo.Ternary(s.Paused, icon.Get(icon.Pause)+" paused", icon.Get(icon.Play)+" playing")
	if s.Fullscreen {
		state += style.Faint(" · fullscreen")
	}
	if s.Overlay {
		state += style.Faint(" · " + icon.Get(icon.Progress))
	}
	return state
}

func (b *bubble) captionsState() string {
	state := b.status.Captions
	if state == captions.Idle {
		return style.Faint(state.String())
	}
	return style.Fg(style.AccentColor)(icon.Get(icon.Captions) + " " + state.String())
}

func (b *bubble) renderLines(lines []string) string {
	l := strings.Join(lines, "\n")

	// keep help pinned to the bottom
	if pad := b.height - len(lines) - 3; pad > 0 {
		l += strings.Repeat("\n", pad)
	}
	l += "\n" + b.helpC.View(b.keymap)

	return paddingStyle.Render(l)
}

// formatPosition renders seconds as h:mm:ss or m:ss.
func formatPosition(seconds float64) string {
	total := int(seconds)
	h, m, sec := total/3600, total/60%60, total%60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}
