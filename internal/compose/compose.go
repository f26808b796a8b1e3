// internal/compose/compose.go
// Package compose turns a text message into a multi-track timeline. The
// melody track carries the payload: note durations and gaps follow ITU
// Morse ratios on a quarter-beat grid, so a decoder can recover the text
// from timing alone. Everything else is decoration.
package compose

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ColonelBlimp/morsemelody/internal/accomp"
	"github.com/ColonelBlimp/morsemelody/internal/melody"
	"github.com/ColonelBlimp/morsemelody/internal/morse"
	"github.com/ColonelBlimp/morsemelody/internal/seed"
	"github.com/ColonelBlimp/morsemelody/internal/theory"
	"github.com/ColonelBlimp/morsemelody/internal/timeline"
)

// unitBeats is the musical length of one Morse unit. A dot is a
// sixteenth note at the chosen tempo; a dash, three of them.
const unitBeats = 0.25

const (
	defaultKeyRoot    = 60
	defaultOctaveSpan = 3
	defaultVelocity   = 96
)

// Options selects everything about an encode except the message itself.
// The zero value of a field falls back to a sensible default; names are
// validated by lookup.
type Options struct {
	// Tempo in beats per minute; 0 uses the style's default
	Tempo float64
	// KeyRoot is the tonic MIDI pitch; 0 uses middle C
	KeyRoot int
	// ScaleName and StyleName choose the pitch material and character
	ScaleName string
	StyleName string
	// ProgressionName overrides the style's default progression when set
	ProgressionName string
	// OctaveSpan is the melody window size in octaves; 0 uses 3
	OctaveSpan int

	// Harmony, Bass, and Percussion enable the accompaniment tracks
	Harmony    bool
	Bass       bool
	Percussion bool

	// Humanize applies seeded timing and velocity jitter of
	// HumanizeAmount, capped so the Morse ratios stay decodable
	Humanize       bool
	HumanizeAmount float64

	// Velocity is the base note velocity, 1-127
	Velocity int
}

// DefaultOptions returns the settings used when the caller has no
// opinion: C major folk with full accompaniment, no humanization.
func DefaultOptions() Options {
	return Options{
		KeyRoot:        defaultKeyRoot,
		ScaleName:      "major",
		StyleName:      "folk",
		OctaveSpan:     defaultOctaveSpan,
		Harmony:        true,
		Bass:           true,
		Percussion:     true,
		HumanizeAmount: 0.02,
		Velocity:       defaultVelocity,
	}
}

// Encode renders the message as a timeline and returns it together with
// the Morse diagnostic string. Unsupported characters are skipped; a
// message with nothing encodable fails with morse.ErrEmptyMessage.
func Encode(message string, opts Options) (*timeline.Timeline, string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, "", morse.ErrEmptyMessage
	}

	morseString, err := morse.MorseString(message)
	if err != nil {
		return nil, "", err
	}

	style, err := theory.StyleByName(opts.StyleName)
	if err != nil {
		return nil, "", fmt.Errorf("style %q: %w", opts.StyleName, err)
	}

	progName := opts.ProgressionName
	if progName == "" {
		progName = style.Progression
	}
	prog, err := theory.ProgressionByName(progName)
	if err != nil {
		return nil, "", fmt.Errorf("progression %q: %w", progName, err)
	}

	keyRoot := opts.KeyRoot
	if keyRoot <= 0 {
		keyRoot = defaultKeyRoot
	}
	octaveSpan := opts.OctaveSpan
	if octaveSpan <= 0 {
		octaveSpan = defaultOctaveSpan
	}
	scale, err := theory.NewNamedScale(opts.ScaleName, keyRoot, octaveSpan)
	if err != nil {
		return nil, "", fmt.Errorf("scale %q: %w", opts.ScaleName, err)
	}

	tempo := opts.Tempo
	if tempo <= 0 {
		tempo = style.DefaultTempo()
	}
	velocity := opts.Velocity
	if velocity <= 0 {
		velocity = defaultVelocity
	}
	velocity = timeline.ClampVelocity(velocity)

	// Everything random hangs off one content-derived seed, with a
	// labelled stream per concern so toggling one track cannot re-voice
	// another.
	master := seed.Derive(message, strconv.Itoa(keyRoot), opts.ScaleName, style.Name)

	symbols, _ := morse.Expand(message)
	eng := melody.NewEngine(scale, style, seed.Stream(seed.Sub(master, "melody")))
	melodyEvents := layoutMelody(symbols, eng, velocity)

	events := melodyEvents
	gen := accomp.NewGenerator(style, prog, keyRoot, velocity)
	plan := gen.Plan(melodyEvents)
	if opts.Harmony {
		events = append(events, gen.Harmony(plan)...)
	}
	if opts.Bass {
		events = append(events, gen.Bass(plan, seed.Stream(seed.Sub(master, "bass")))...)
	}
	if opts.Percussion {
		events = append(events, gen.Percussion(plan, seed.Stream(seed.Sub(master, "percussion")))...)
	}

	t := &timeline.Timeline{Tempo: tempo, Events: events}
	t.Sort()

	if opts.Humanize {
		humanize(t, opts.HumanizeAmount, seed.Stream(seed.Sub(master, "humanize")))
		t.Sort()
	}

	return t, morseString, nil
}

// letterGroup is one letter's marks plus the gap that follows it in the
// symbol stream (zero for the final letter).
type letterGroup struct {
	marks []morse.Symbol
	gap   morse.Symbol
}

func splitLetters(symbols []morse.Symbol) []letterGroup {
	var groups []letterGroup
	var marks []morse.Symbol
	for _, sym := range symbols {
		switch sym {
		case morse.LetterGap, morse.WordGap:
			if len(marks) > 0 {
				groups = append(groups, letterGroup{marks: marks, gap: sym})
				marks = nil
			}
		default:
			marks = append(marks, sym)
		}
	}
	if len(marks) > 0 {
		groups = append(groups, letterGroup{marks: marks})
	}
	return groups
}

// layoutMelody places one note per mark on the beat grid. Durations and
// gaps are exact ITU multiples of the unit: dot 1, dash 3, intra-letter
// gap 1, letter gap 3, word gap 7.
func layoutMelody(symbols []morse.Symbol, eng *melody.Engine, velocity int) []timeline.NoteEvent {
	var events []timeline.NoteEvent

	cursor := 0.0
	for _, grp := range splitLetters(symbols) {
		eng.BeginLetter(len(grp.marks))
		for i, mark := range grp.marks {
			if i > 0 {
				cursor += morse.SymbolGapUnits * unitBeats
			}
			duration := morse.DotUnits * unitBeats
			if mark == morse.Dash {
				duration = morse.DashUnits * unitBeats
			}
			events = append(events, timeline.NoteEvent{
				Pitch:    eng.NextPitch(mark),
				Start:    cursor,
				Duration: duration,
				Velocity: velocity,
				Role:     timeline.Melody,
			})
			cursor += duration
		}

		switch grp.gap {
		case morse.WordGap:
			eng.EndWord()
			cursor += morse.WordGapUnits * unitBeats
		case morse.LetterGap:
			eng.EndLetter()
			cursor += morse.LetterGapUnits * unitBeats
		default:
			eng.EndLetter()
		}
	}
	return events
}
