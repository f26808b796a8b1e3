// internal/decode/decode.go
// Package decode recovers text from note timing. Pitch is never read:
// the payload lives entirely in durations and the silences between
// notes, so a decoder needs only the melody track's event list.
package decode

import (
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/ColonelBlimp/morsemelody/internal/morse"
	"github.com/ColonelBlimp/morsemelody/internal/timeline"
)

var (
	// ErrNoNotes indicates there was nothing to decode
	ErrNoNotes = errors.New("no notes to decode")
	// ErrInsufficientNotes accompanies a best-effort result when the
	// input is too short to establish the timing unit
	ErrInsufficientNotes = errors.New("not enough notes for a reliable decode")
)

// spreadThreshold separates "one duration cluster" from "dots and
// dashes both present" when estimating the unit.
const spreadThreshold = 1.5

// Result is a decode outcome. Confidence is the fraction of classified
// letters that resolved to a known character, 0 when nothing classified.
type Result struct {
	Morse      string
	Text       string
	Confidence float64
}

// Decode reads the Morse timing out of an event list. Events may arrive
// in any order; overlapping or degenerate timing never panics, it just
// erodes the confidence score. A single note cannot establish the unit,
// so it returns a best-effort Result alongside ErrInsufficientNotes.
func Decode(events []timeline.NoteEvent) (Result, error) {
	if len(events) == 0 {
		return Result{}, ErrNoNotes
	}

	notes := make([]timeline.NoteEvent, len(events))
	copy(notes, events)
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Start < notes[j].Start
	})

	res := transcribe(notes, estimateUnit(notes))
	if len(notes) == 1 {
		res.Confidence = 0
		return res, ErrInsufficientNotes
	}
	return res, nil
}

// transcribe classifies each note against the unit and segments letters
// and words by the gaps between notes.
func transcribe(notes []timeline.NoteEvent, unit float64) Result {
	var (
		pattern    strings.Builder
		text       strings.Builder
		morseParts []string

		classified, unresolved int
		tainted                bool
	)

	flushLetter := func() {
		if pattern.Len() == 0 {
			return
		}
		p := pattern.String()
		pattern.Reset()

		morseParts = append(morseParts, p)
		classified++
		ch, ok := morse.Char(p)
		if !ok || tainted {
			ch = '?'
			unresolved++
		}
		tainted = false
		text.WriteRune(ch)
	}

	for i, n := range notes {
		ratio := n.Duration / unit
		if ratio <= morse.DotCeiling {
			pattern.WriteByte('.')
		} else {
			pattern.WriteByte('-')
		}
		if ratio > morse.DashCeiling {
			// Too long to be a dash at this unit; the letter is suspect.
			tainted = true
		}

		if i+1 == len(notes) {
			continue
		}
		gap := (notes[i+1].Start - n.End()) / unit
		switch {
		case gap >= morse.WordGapThreshold:
			flushLetter()
			morseParts = append(morseParts, "/")
			text.WriteByte(' ')
		case gap >= morse.LetterGapThreshold:
			flushLetter()
		}
	}
	flushLetter()

	confidence := 0.0
	if classified > 0 {
		confidence = float64(classified-unresolved) / float64(classified)
	}
	return Result{
		Morse:      strings.Join(morseParts, " "),
		Text:       text.String(),
		Confidence: confidence,
	}
}

// estimateUnit recovers the Morse unit from the notes alone. With both
// dots and dashes present the durations split into two clusters and the
// low one is the unit. A single cluster is ambiguous: if the smallest
// gap between notes is well under the shortest note, the stream is all
// dashes and the gap is the unit; otherwise the shortest note is.
func estimateUnit(notes []timeline.NoteEvent) float64 {
	durations := make([]float64, 0, len(notes))
	for _, n := range notes {
		if n.Duration > 0 {
			durations = append(durations, n.Duration)
		}
	}
	if len(durations) == 0 {
		return 1 // degenerate input; everything becomes a dot
	}

	minDur, maxDur := durations[0], durations[0]
	for _, d := range durations[1:] {
		if d < minDur {
			minDur = d
		}
		if d > maxDur {
			maxDur = d
		}
	}

	if maxDur/minDur >= spreadThreshold {
		low, _ := splitDurations(durations)
		return low
	}

	if gap := smallestGap(notes); gap <= minDur/2 {
		return gap
	}
	return minDur
}

// splitDurations cuts the sorted durations at their widest gap, the 1-D
// two-cluster split, and returns both cluster means.
func splitDurations(durations []float64) (low, high float64) {
	sorted := make([]float64, len(durations))
	copy(sorted, durations)
	sort.Float64s(sorted)

	cut, widest := 0, -1.0
	for i := 1; i < len(sorted); i++ {
		if gap := sorted[i] - sorted[i-1]; gap > widest {
			widest = gap
			cut = i
		}
	}

	return mean(sorted[:cut]), mean(sorted[cut:])
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// smallestGap returns the smallest positive silence between consecutive
// notes, or +Inf when notes touch or overlap throughout.
func smallestGap(notes []timeline.NoteEvent) float64 {
	smallest := math.Inf(1)
	for i := 1; i < len(notes); i++ {
		if gap := notes[i].Start - notes[i-1].End(); gap > 0 && gap < smallest {
			smallest = gap
		}
	}
	return smallest
}
