package controller

import (
	"github.com/vidkeys/vidkeys/captions"
	"github.com/vidkeys/vidkeys/player"
)

// Status is what the controller knows about the player and its own components.
type Status struct {
	Media      string
	Paused     bool
	Position   float64
	Rate       float64
	Fullscreen bool

	// Overlay is true while the progress overlay is forced visible.
	Overlay bool

	// Message is the toast currently displayed.
	Message string

	Captions captions.State

	// Err is the last command failure.
	Err error
}

// apply records a property change.
func (s *Status) apply(event player.Event) {
	switch event.Name {
	case "pause":
		s.Paused, _ = event.Data.(bool)
	case "time-pos":
		s.Position, _ = event.Data.(float64)
	case "speed":
		if rate, ok := event.Data.(float64); ok {
			s.Rate = rate
		}
	case "fullscreen":
		s.Fullscreen, _ = event.Data.(bool)
	case "path":
		s.Media, _ = event.Data.(string)
	}
}
