// internal/accomp/accomp.go
// Package accomp lays harmony, bass, and percussion under a finished
// melody. It reads the melody only to choose chord qualities; it never
// emits a melody-role event, so the hidden timing stays untouched.
package accomp

import (
	"math"
	"math/rand"

	"github.com/ColonelBlimp/morsemelody/internal/theory"
	"github.com/ColonelBlimp/morsemelody/internal/timeline"
)

const (
	// windowBeats is the chord window length: one 4/4 measure.
	windowBeats = 4.0

	harmonyVelocityScale = 0.70
	bassVelocityScale    = 0.85

	// approachChance is the probability a window's bass closes with an
	// anticipatory approach note into the next chord.
	approachChance = 0.30
)

// Generator builds accompaniment for one encode call. Like the melodic
// engine it is single-use and not safe for concurrent use.
type Generator struct {
	style    theory.StyleProfile
	prog     theory.Progression
	keyRoot  int
	velocity int
}

// NewGenerator returns a generator for the given style, progression, and
// key root, scaling all output from the base velocity.
func NewGenerator(style theory.StyleProfile, prog theory.Progression, keyRoot, velocity int) *Generator {
	return &Generator{
		style:    style,
		prog:     prog,
		keyRoot:  keyRoot,
		velocity: velocity,
	}
}

// ChordWindow is one measure of the chord plan: a root in the octave
// below the melody register and the quality chosen for it.
type ChordWindow struct {
	Start   float64
	Root    int
	Quality theory.Quality
}

// Plan walks the melody one measure at a time and fixes the chord for
// each window. The plan depends only on the melody and the progression,
// so bass and percussion stay consistent whether or not the harmony
// track itself is enabled.
func (g *Generator) Plan(melody []timeline.NoteEvent) []ChordWindow {
	end := 0.0
	for _, ev := range melody {
		if e := ev.End(); e > end {
			end = e
		}
	}
	if end <= 0 {
		return nil
	}

	windows := int(math.Ceil(end / windowBeats))
	plan := make([]ChordWindow, 0, windows)
	for i := 0; i < windows; i++ {
		start := float64(i) * windowBeats
		root := g.keyRoot + g.prog.OffsetAt(i) - theory.OctaveSemitones
		plan = append(plan, ChordWindow{
			Start:   start,
			Root:    root,
			Quality: g.windowQuality(root, melody, start, start+windowBeats),
		})
	}
	return plan
}

// Harmony sustains each window's chord for the full measure.
func (g *Generator) Harmony(plan []ChordWindow) []timeline.NoteEvent {
	vel := timeline.ClampVelocity(int(math.Round(float64(g.velocity) * harmonyVelocityScale)))

	var events []timeline.NoteEvent
	for _, w := range plan {
		for _, pitch := range w.Quality.Pitches(w.Root) {
			events = append(events, timeline.NoteEvent{
				Pitch:    pitch,
				Start:    w.Start,
				Duration: windowBeats,
				Velocity: vel,
				Role:     timeline.Harmony,
			})
		}
	}
	return events
}

// windowQuality picks the candidate quality covering the most melody
// pitch classes sounding in the window. The style's home quality leads
// the tie-break order and takes silent windows outright.
func (g *Generator) windowQuality(root int, melody []timeline.NoteEvent, start, end float64) theory.Quality {
	candidates := g.candidateQualities()

	classes := make(map[int]bool)
	for _, ev := range melody {
		if ev.Start < end && ev.End() > start {
			classes[ev.Pitch%theory.OctaveSemitones] = true
		}
	}
	if len(classes) == 0 {
		return candidates[0]
	}

	best := candidates[0]
	bestScore := -1
	for _, q := range candidates {
		covered := q.PitchClasses(root)
		score := 0
		for class := range classes {
			if covered[class] {
				score++
			}
		}
		if score > bestScore {
			best = q
			bestScore = score
		}
	}
	return best
}

func (g *Generator) candidateQualities() []theory.Quality {
	candidates := theory.TriadQualities()
	home, err := theory.QualityByName(g.style.HomeQuality)
	if err != nil {
		return candidates
	}
	out := []theory.Quality{home}
	for _, q := range candidates {
		if q.Name != home.Name {
			out = append(out, q)
		}
	}
	return out
}

// bassRoot drops the chord root one octave, folding back up when that
// falls off the bottom of the MIDI window.
func bassRoot(chordRoot int) int {
	root := chordRoot - theory.OctaveSemitones
	for root < theory.MinPitch {
		root += theory.OctaveSemitones
	}
	return root
}

func scaledVelocity(base int, scale float64) int {
	return timeline.ClampVelocity(int(math.Round(float64(base) * scale)))
}

// approachPitch is the seeded anticipatory note into the next window:
// a semitone below or above the next bass root.
func approachPitch(next int, rng *rand.Rand) int {
	pitch := next - 1
	if rng.Intn(2) == 1 {
		pitch = next + 1
	}
	if pitch < theory.MinPitch {
		pitch = theory.MinPitch
	}
	if pitch > theory.MaxPitch {
		pitch = theory.MaxPitch
	}
	return pitch
}
