package player

import (
	"fmt"
	"strings"
)

const (
	// toastOverlayID identifies the osd-overlay slot used for toasts.
	toastOverlayID = 47

	// overlayLevel makes mpv show the seek bar and time permanently.
	overlayLevel = 3

	toastResX = 1280
	toastResY = 720
	toastZ    = 99
)

// toastTemplate renders the text in a semi-transparent dark box, slightly
// left of center near the bottom of the video.
//
// \an1 anchors bottom-left, \bord with \3c/\3a draws the box around glyphs.
const toastTemplate = `{\an1\pos(%d,%d)\fs48\b1\1c&HFFFFFF&\3c&H202020&\3a&H60&\bord12\shad0\q2}%s`

// SetOverlay forces the progress overlay on or restores the OSD level
// observed before it was forced.
func (m *MPV) SetOverlay(visible bool) error {
	m.overlayMu.Lock()
	defer m.overlayMu.Unlock()

	if visible == m.overlayOn {
		return nil
	}

	if visible {
		level, err := m.getFloatProperty("osd-level")
		if err != nil {
			return fmt.Errorf("read osd-level: %w", err)
		}

		if err := m.Set("osd-level", overlayLevel); err != nil {
			return fmt.Errorf("show overlay: %w", err)
		}

		m.restoreLevel = int(level)
		m.overlayOn = true
		return nil
	}

	if err := m.Set("osd-level", m.restoreLevel); err != nil {
		return fmt.Errorf("hide overlay: %w", err)
	}

	m.overlayOn = false
	return nil
}

// ShowToast draws text in the toast overlay, replacing anything already there.
func (m *MPV) ShowToast(text string) error {
	_, err := m.sendCommand(map[string]any{
		"name":   "osd-overlay",
		"id":     toastOverlayID,
		"format": "ass-events",
		"data":   toastEvent(text),
		"res_x":  toastResX,
		"res_y":  toastResY,
		"z":      toastZ,
	})
	if err != nil {
		return fmt.Errorf("show toast: %w", err)
	}
	return nil
}

// ClearToast removes the toast overlay.
func (m *MPV) ClearToast() error {
	_, err := m.sendCommand(map[string]any{
		"name":   "osd-overlay",
		"id":     toastOverlayID,
		"format": "none",
		"data":   "",
	})
	if err != nil {
		return fmt.Errorf("clear toast: %w", err)
	}
	return nil
}

// ShowText displays text with mpv's built-in OSD message for duration milliseconds.
func (m *MPV) ShowText(text string, duration int) error {
	_, err := m.sendCommand([]any{"show-text", text, duration})
	return err
}

func toastEvent(text string) string {
	return fmt.Sprintf(toastTemplate, toastResX*2/5, toastResY*17/20, escapeASS(text))
}

// escapeASS keeps user text from being read as ASS override tags.
func escapeASS(text string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		"{", `\{`,
		"}", `\}`,
		"\n", `\N`,
	)
	return r.Replace(text)
}
