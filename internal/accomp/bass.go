// internal/accomp/bass.go
package accomp

import (
	"math/rand"

	"github.com/ColonelBlimp/morsemelody/internal/theory"
	"github.com/ColonelBlimp/morsemelody/internal/timeline"
)

// Bass lays the style's bass figure under each chord window, one octave
// below the chord root. Windows other than the last may close with a
// seeded approach note leading into the next root.
func (g *Generator) Bass(plan []ChordWindow, rng *rand.Rand) []timeline.NoteEvent {
	vel := scaledVelocity(g.velocity, bassVelocityScale)

	var events []timeline.NoteEvent
	for i, w := range plan {
		root := bassRoot(w.Root)
		third := w.Quality.Third(root)
		fifth := w.Quality.Fifth(root)

		next, hasNext := 0, i+1 < len(plan)
		if hasNext {
			next = bassRoot(plan[i+1].Root)
		}

		var figure []timeline.NoteEvent
		switch g.style.Bass {
		case theory.BassWalking:
			// The fourth quarter walks into the next window; the final
			// window resolves back to the root instead.
			last := root
			if hasNext {
				last = approachPitch(next, rng)
			}
			for q, pitch := range []int{root, third, fifth, last} {
				figure = append(figure, bassNote(pitch, w.Start+float64(q), 1, vel))
			}
		case theory.BassArpeggio:
			for e, pitch := range []int{root, third, fifth, third, root, third, fifth, third} {
				figure = append(figure, bassNote(pitch, w.Start+0.5*float64(e), 0.5, vel))
			}
		case theory.BassPedal:
			figure = append(figure, bassNote(root, w.Start, windowBeats, vel))
		default: // BassRootFifth
			figure = append(figure, bassNote(root, w.Start, 2, vel))
			figure = append(figure, bassNote(fifth, w.Start+2, 2, vel))
		}

		if g.style.Bass != theory.BassWalking && hasNext && rng.Float64() < approachChance {
			cut := w.Start + windowBeats - 0.5
			figure = trimFigure(figure, cut)
			figure = append(figure, bassNote(approachPitch(next, rng), cut, 0.5, vel))
		}

		events = append(events, figure...)
	}
	return events
}

func bassNote(pitch int, start, duration float64, velocity int) timeline.NoteEvent {
	return timeline.NoteEvent{
		Pitch:    pitch,
		Start:    start,
		Duration: duration,
		Velocity: velocity,
		Role:     timeline.Bass,
	}
}

// trimFigure clears the figure's tail from cut onward so an approach
// note can take its place.
func trimFigure(figure []timeline.NoteEvent, cut float64) []timeline.NoteEvent {
	out := figure[:0]
	for _, ev := range figure {
		if ev.Start >= cut {
			continue
		}
		if ev.End() > cut {
			ev.Duration = cut - ev.Start
		}
		out = append(out, ev)
	}
	return out
}
