// internal/accomp/drums.go
package accomp

import (
	"math/rand"

	"github.com/ColonelBlimp/morsemelody/internal/theory"
	"github.com/ColonelBlimp/morsemelody/internal/timeline"
)

// General MIDI channel-10 keys.
const (
	kickKey      = 36
	snareKey     = 38
	closedHatKey = 42
	rideKey      = 51
)

const (
	// hitBeats is the nominal length of a percussion hit.
	hitBeats = 0.25
	// swingSkip places the swung note two thirds through the beat.
	swingSkip = 2.0 / 3.0
	// fillChance gates the snare fill offered every fillEvery measures.
	fillChance = 0.30
	fillEvery  = 4
)

// drumHit is one groove slot: a key, a beat offset into the measure, and
// a velocity scale relative to the base velocity.
type drumHit struct {
	key    int
	offset float64
	scale  float64
}

// Percussion repeats the style's groove per measure, swapping the last
// beat for a seeded snare fill on some fourth measures.
func (g *Generator) Percussion(plan []ChordWindow, rng *rand.Rand) []timeline.NoteEvent {
	groove := groovePattern(g.style.Drums)
	if len(groove) == 0 {
		return nil
	}

	var events []timeline.NoteEvent
	for i, w := range plan {
		hits := groove
		if (i+1)%fillEvery == 0 && rng.Float64() < fillChance {
			hits = fillPattern(groove)
		}
		for _, h := range hits {
			events = append(events, timeline.NoteEvent{
				Pitch:    h.key,
				Start:    w.Start + h.offset,
				Duration: hitBeats,
				Velocity: scaledVelocity(g.velocity, h.scale),
				Role:     timeline.Percussion,
			})
		}
	}
	return events
}

func groovePattern(p theory.DrumPattern) []drumHit {
	switch p {
	case theory.DrumBackbeat:
		return []drumHit{
			{kickKey, 0, 0.90}, {kickKey, 2, 0.85},
			{snareKey, 1, 0.85}, {snareKey, 3, 0.85},
			{closedHatKey, 0, 0.50}, {closedHatKey, 1, 0.45},
			{closedHatKey, 2, 0.50}, {closedHatKey, 3, 0.45},
		}
	case theory.DrumFourFloor:
		return []drumHit{
			{kickKey, 0, 0.90}, {kickKey, 1, 0.85}, {kickKey, 2, 0.90}, {kickKey, 3, 0.85},
			{snareKey, 1, 0.80}, {snareKey, 3, 0.80},
			{closedHatKey, 0.5, 0.50}, {closedHatKey, 1.5, 0.50},
			{closedHatKey, 2.5, 0.50}, {closedHatKey, 3.5, 0.50},
		}
	case theory.DrumSwing:
		return []drumHit{
			{rideKey, 0, 0.65}, {rideKey, 1, 0.55}, {rideKey, 1 + swingSkip, 0.50},
			{rideKey, 2, 0.65}, {rideKey, 3, 0.55}, {rideKey, 3 + swingSkip, 0.50},
			{closedHatKey, 1, 0.45}, {closedHatKey, 3, 0.45},
		}
	case theory.DrumShuffle:
		return []drumHit{
			{kickKey, 0, 0.90}, {kickKey, 2, 0.85},
			{snareKey, 1, 0.80}, {snareKey, 3, 0.80},
			{closedHatKey, 0, 0.55}, {closedHatKey, swingSkip, 0.45},
			{closedHatKey, 1, 0.55}, {closedHatKey, 1 + swingSkip, 0.45},
			{closedHatKey, 2, 0.55}, {closedHatKey, 2 + swingSkip, 0.45},
			{closedHatKey, 3, 0.55}, {closedHatKey, 3 + swingSkip, 0.45},
		}
	default: // DrumNone
		return nil
	}
}

// fillPattern drops the groove's last beat and lays four ramping snare
// sixteenths in its place.
func fillPattern(groove []drumHit) []drumHit {
	out := make([]drumHit, 0, len(groove)+4)
	for _, h := range groove {
		if h.offset < 3 {
			out = append(out, h)
		}
	}
	for k := 0; k < 4; k++ {
		out = append(out, drumHit{snareKey, 3 + 0.25*float64(k), 0.60 + 0.10*float64(k)})
	}
	return out
}
