// internal/render/render.go
// Package render turns a finished timeline into sound, either offline as
// a WAV file or live on a playback device. The composition pipeline never
// depends on this package; a render failure still leaves the caller with
// the timeline and whatever files were already written.
package render

import (
	"errors"

	"github.com/ColonelBlimp/morsemelody/internal/timeline"
)

var (
	// ErrUnavailable means the host has no usable audio backend, for
	// example a headless machine. Callers should report it and move on.
	ErrUnavailable = errors.New("rendering unavailable")

	ErrBusy = errors.New("playback already running")
)

// Renderer produces audible output from a timeline.
type Renderer interface {
	Render(t *timeline.Timeline) error
}
