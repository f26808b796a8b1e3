// internal/timeline/timeline.go
// Package timeline defines the multi-track note-event model produced by
// encoding, consumed by decoding, and exchanged with MIDI files. Times
// are in beats; the tempo converts them to wall clock only at the edges.
package timeline

import "sort"

// TrackRole identifies which generated voice an event belongs to. The
// hidden payload lives exclusively in Melody-role durations.
type TrackRole int

const (
	// Melody carries the encoded message in its note durations
	Melody TrackRole = iota
	// Harmony is the chord accompaniment
	Harmony
	// Bass is the bass line
	Bass
	// Percussion is the drum track (General MIDI channel 10)
	Percussion
)

// String returns the role's track name as written to MIDI files.
func (r TrackRole) String() string {
	switch r {
	case Melody:
		return "melody"
	case Harmony:
		return "harmony"
	case Bass:
		return "bass"
	case Percussion:
		return "percussion"
	default:
		return "unknown"
	}
}

// Roles lists all track roles in track order.
func Roles() []TrackRole {
	return []TrackRole{Melody, Harmony, Bass, Percussion}
}

// NoteEvent is one note in the timeline.
type NoteEvent struct {
	// Pitch is a MIDI note number (percussion: a GM drum key)
	Pitch int
	// Start is the onset in beats from the beginning of the piece
	Start float64
	// Duration is the sounding length in beats, always positive
	Duration float64
	// Velocity is the MIDI velocity, 1-127
	Velocity int
	// Role is the track this event belongs to
	Role TrackRole
}

// End returns the event's off time in beats.
func (e NoteEvent) End() float64 {
	return e.Start + e.Duration
}

// Timeline is the complete multi-track piece: every event across all
// roles, ordered by start time, plus the tempo.
type Timeline struct {
	// Tempo is in beats per minute
	Tempo float64
	// Events is ordered by Start (see Sort)
	Events []NoteEvent
}

// Sort orders events by start time; equal starts order by role, then
// pitch, so repeated encodes of the same message are byte-identical.
func (t *Timeline) Sort() {
	sort.SliceStable(t.Events, func(i, j int) bool {
		a, b := t.Events[i], t.Events[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.Role != b.Role {
			return a.Role < b.Role
		}
		return a.Pitch < b.Pitch
	})
}

// TrackEvents returns the events of one role, in timeline order.
func (t *Timeline) TrackEvents(role TrackRole) []NoteEvent {
	var out []NoteEvent
	for _, e := range t.Events {
		if e.Role == role {
			out = append(out, e)
		}
	}
	return out
}

// End returns the off time of the last-sounding event in beats.
func (t *Timeline) End() float64 {
	end := 0.0
	for _, e := range t.Events {
		if e.End() > end {
			end = e.End()
		}
	}
	return end
}

// ClampVelocity forces a velocity into the valid MIDI range.
func ClampVelocity(v int) int {
	if v < 1 {
		return 1
	}
	if v > 127 {
		return 127
	}
	return v
}
