package player

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/vidkeys/vidkeys/log"
)

// Keypresser delivers synthetic key presses to the player.
type Keypresser interface {
	Press(event KeyEvent) error
}

// Press sends a synthetic key press through mpv's input bindings.
func (m *MPV) Press(event KeyEvent) error {
	if err := m.Command("keypress", event.Name); err != nil {
		return fmt.Errorf("keypress %s: %w", event.Name, err)
	}
	return nil
}

// CaptionKeys are the keys KeySurface presses.
type CaptionKeys struct {
	Settings string
	Confirm  string
	Resume   string
}

// KeySurface drives the caption toggle by replaying the key presses a user
// would make in the player's settings UI.
type KeySurface struct {
	presser  Keypresser
	settings KeyEvent
	confirm  KeyEvent
	resume   KeyEvent
}

// NewKeySurface resolves keys and refuses any that vidkeys itself has bound
// in the player, since pressing those would come straight back as commands.
func NewKeySurface(presser Keypresser, keys CaptionKeys, reserved []string) (*KeySurface, error) {
	resolve := func(role, name string) (KeyEvent, error) {
		event, err := ParseKey(name)
		if err != nil {
			return KeyEvent{}, fmt.Errorf("%s key: %w", role, err)
		}

		if lo.Contains(reserved, event.Name) {
			return KeyEvent{}, fmt.Errorf("%s key %q is bound to a vidkeys command", role, event.Name)
		}

		return event, nil
	}

	settings, err := resolve("settings", keys.Settings)
	if err != nil {
		return nil, err
	}

	confirm, err := resolve("confirm", keys.Confirm)
	if err != nil {
		return nil, err
	}

	resume, err := resolve("resume", keys.Resume)
	if err != nil {
		return nil, err
	}

	return &KeySurface{
		presser:  presser,
		settings: settings,
		confirm:  confirm,
		resume:   resume,
	}, nil
}

func (s *KeySurface) press(event KeyEvent) error {
	log.WithFields(log.Fields{
		"key":     event.Name,
		"code":    event.Code,
		"keyCode": event.KeyCode,
	}).Debug("caption key press")
	return s.presser.Press(event)
}

func (s *KeySurface) OpenSettings() error   { return s.press(s.settings) }
func (s *KeySurface) CommitToggle() error   { return s.press(s.confirm) }
func (s *KeySurface) CloseSettings() error  { return s.press(s.settings) }
func (s *KeySurface) ResumePlayback() error { return s.press(s.resume) }

// subtitleControl is the part of MPV DirectSurface needs.
type subtitleControl interface {
	SubtitleTrack() (bool, error)
	SubtitlesVisible() (bool, error)
	Command(args ...any) error
	ShowText(text string, duration int) error
	SetPaused(paused bool) error
}

// SubtitleTrack reports whether a subtitle track is selected.
func (m *MPV) SubtitleTrack() (bool, error) {
	data, err := m.sendCommand([]any{"get_property", "sid"})
	if err != nil {
		return false, err
	}

	// sid is a track number, or false when subtitles are off
	switch v := data.(type) {
	case float64:
		return true, nil
	case bool:
		return v, nil
	default:
		return false, nil
	}
}

// SubtitlesVisible reports the sub-visibility property.
func (m *MPV) SubtitlesVisible() (bool, error) {
	return m.getBoolProperty("sub-visibility")
}

// captionTextDuration is how long DirectSurface's OSD messages stay up, in ms.
const captionTextDuration = 1000

// DirectSurface toggles captions through mpv's sub-visibility property and
// mirrors each step with an OSD message.
type DirectSurface struct {
	mpv subtitleControl
}

// NewDirectSurface creates a DirectSurface on control.
func NewDirectSurface(control subtitleControl) *DirectSurface {
	return &DirectSurface{mpv: control}
}

func (s *DirectSurface) OpenSettings() error {
	ok, err := s.mpv.SubtitleTrack()
	if err != nil {
		return fmt.Errorf("read subtitle track: %w", err)
	}

	if !ok {
		return fmt.Errorf("no subtitle track: %w", ErrControlUnavailable)
	}

	return s.mpv.ShowText("Captions…", captionTextDuration)
}

func (s *DirectSurface) CommitToggle() error {
	if err := s.mpv.Command("cycle", "sub-visibility"); err != nil {
		return fmt.Errorf("cycle sub-visibility: %w", err)
	}
	return nil
}

func (s *DirectSurface) CloseSettings() error {
	visible, err := s.mpv.SubtitlesVisible()
	if err != nil {
		return fmt.Errorf("read sub-visibility: %w", err)
	}

	return s.mpv.ShowText(fmt.Sprintf("Captions %s", lo.Ternary(visible, "on", "off")), captionTextDuration)
}

func (s *DirectSurface) ResumePlayback() error {
	return s.mpv.SetPaused(false)
}
