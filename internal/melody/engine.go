// internal/melody/engine.go
// Package melody selects the pitch for each Morse mark. The engine is a
// small state machine: empty between letters, in-phrase while a letter's
// marks are being voiced. It owns pitch only; note timing never passes
// through it, so the hidden payload cannot be disturbed from here.
package melody

import (
	"math"
	"math/rand"

	"github.com/ColonelBlimp/morsemelody/internal/morse"
	"github.com/ColonelBlimp/morsemelody/internal/theory"
)

type state int

const (
	stateEmpty state = iota
	stateInPhrase
)

const (
	// historySize bounds the per-phrase pitch memory
	historySize = 8
	// arcPeak places the top of the phrase arc at 70% of the letter
	arcPeak = 0.7
	// towardTargetChance is the probability a move heads toward the arc
	// target rather than away from it
	towardTargetChance = 0.75
	// minEndingMarks is the shortest letter that gets a phrase ending
	minEndingMarks = 3
)

// Engine generates melody pitches for one encode call. It is not safe
// for concurrent use; each call owns its own Engine and random stream.
type Engine struct {
	scale *theory.Scale
	style theory.StyleProfile
	rng   *rand.Rand

	state  state
	phrase phrase

	// register memory across letters within a word
	lastPitch int
	hasLast   bool
}

// phrase is the per-letter context: created when a letter begins,
// discarded at the boundary.
type phrase struct {
	history  []int // recent pitches, newest last
	pos      int   // marks emitted so far
	total    int   // marks this letter will have
	startIdx int   // scale index of the letter's first pitch
}

// NewEngine returns an engine drawing pitches from the scale, shaped by
// the style, randomized only through rng.
func NewEngine(scale *theory.Scale, style theory.StyleProfile, rng *rand.Rand) *Engine {
	return &Engine{
		scale: scale,
		style: style,
		rng:   rng,
	}
}

// BeginLetter arms the engine for a letter of total marks.
func (e *Engine) BeginLetter(total int) {
	e.state = stateInPhrase
	e.phrase = phrase{total: total}
}

// NextPitch returns the pitch for the next mark of the current letter.
// Durations are the caller's business; only Dot versus Dash matters here,
// and only for the shape of the line.
func (e *Engine) NextPitch(sym morse.Symbol) int {
	if e.state != stateInPhrase {
		e.BeginLetter(1)
	}

	var pitch int
	switch {
	case e.phrase.pos == 0:
		pitch = e.firstPitch(sym)
		e.phrase.startIdx = e.scale.NearestIndex(pitch)
	case e.phrase.pos == e.phrase.total-1 && e.phrase.total >= minEndingMarks:
		pitch = e.phraseEnding()
	default:
		pitch = e.nextPitch(sym)
	}

	e.push(pitch)
	e.phrase.pos++
	return pitch
}

// EndLetter closes the phrase and remembers where it landed, so the next
// letter starts nearby.
func (e *Engine) EndLetter() {
	if n := len(e.phrase.history); n > 0 {
		e.lastPitch = e.phrase.history[n-1]
		e.hasLast = true
	}
	e.state = stateEmpty
	e.phrase = phrase{}
}

// EndWord closes the phrase and clears the register memory: the next
// word starts fresh from the comfortable center.
func (e *Engine) EndWord() {
	e.EndLetter()
	e.hasLast = false
	e.lastPitch = 0
}

// firstPitch opens a letter. With no history it picks from the scale's
// comfortable center, low for a dot and high for a dash; with history it
// drifts at most one step from where the previous letter ended.
func (e *Engine) firstPitch(sym morse.Symbol) int {
	if !e.hasLast {
		return e.centerPitch(sym)
	}

	idx := e.scale.NearestIndex(e.lastPitch)
	drift := e.rng.Intn(2) // 0 or 1 step
	if sym == morse.Dash {
		idx += drift
	} else {
		idx -= drift
	}
	return e.scale.PitchAt(idx)
}

// centerPitch picks from the middle third of the pitch window.
func (e *Engine) centerPitch(sym morse.Symbol) int {
	n := e.scale.Len()
	lo := n / 3
	band := n - 2*(n/3)
	if band < 1 {
		band = 1
	}
	half := band / 2
	if half < 1 {
		half = 1
	}

	var idx int
	if sym == morse.Dash {
		idx = lo + half + e.rng.Intn(half) // upper half of the band
	} else {
		idx = lo + e.rng.Intn(half) // lower half of the band
	}
	return e.scale.PitchAt(idx)
}

// nextPitch continues a phrase: aim at the arc target, pick an interval
// sized for the mark, and keep the result on the scale except for the
// occasional chromatic passing tone.
func (e *Engine) nextPitch(sym morse.Symbol) int {
	prev := e.phrase.history[len(e.phrase.history)-1]
	prevIdx := e.scale.NearestIndex(prev)

	target := e.phrase.startIdx + int(math.Round(e.arcHeight()*float64(e.style.ArcSpan)))
	dir := e.chooseDirection(prevIdx, target)

	// Chromatic passing tone: slide one semitone without snapping. Never
	// on the first or last mark of a letter, so phrases open and close
	// on the scale.
	if e.phrase.pos < e.phrase.total-1 && e.rng.Float64() < e.style.ChromaticChance {
		return clampPitch(prev + dir)
	}

	steps := e.weightedSteps(sym)
	pitch := e.scale.PitchAt(prevIdx + dir*steps)

	if e.scale.IsLeadingTone(pitch) && e.rng.Float64() < e.style.TendencyChance {
		pitch = e.scale.TonicAbove(pitch)
	}
	return pitch
}

// phraseEnding resolves the letter's final mark one scale step toward
// the nearest stable degree (tonic, third, or fifth), landing on it when
// already adjacent.
func (e *Engine) phraseEnding() int {
	prev := e.phrase.history[len(e.phrase.history)-1]
	target := e.scale.NearestStable(prev)

	pi := e.scale.NearestIndex(prev)
	ti := e.scale.NearestIndex(target)
	if ti == pi {
		return target
	}
	if ti > pi {
		return e.scale.PitchAt(pi + 1)
	}
	return e.scale.PitchAt(pi - 1)
}

// chooseDirection heads toward the arc target most of the time, but
// forces a reversal when the last three pitches marched one way.
func (e *Engine) chooseDirection(prevIdx, targetIdx int) int {
	var dir int
	switch {
	case prevIdx < targetIdx:
		dir = 1
	case prevIdx > targetIdx:
		dir = -1
	default:
		dir = 1
		if e.rng.Intn(2) == 0 {
			dir = -1
		}
	}
	if e.rng.Float64() >= towardTargetChance {
		dir = -dir
	}
	if mono := monotonicDirection(e.phrase.history); mono != 0 && dir == mono {
		dir = -dir
	}
	return dir
}

// monotonicDirection returns +1 or -1 when the last three pitches move
// strictly in one direction, 0 otherwise.
func monotonicDirection(history []int) int {
	n := len(history)
	if n < 3 {
		return 0
	}
	a, b, c := history[n-3], history[n-2], history[n-1]
	if a < b && b < c {
		return 1
	}
	if a > b && b > c {
		return -1
	}
	return 0
}

// arcHeight is the phrase-arc height at the current mark: a rise to 1.0
// at arcPeak of the letter, then a fall back to 0.
func (e *Engine) arcHeight() float64 {
	if e.phrase.total <= 1 {
		return 0
	}
	frac := float64(e.phrase.pos) / float64(e.phrase.total-1)
	if frac <= arcPeak {
		return frac / arcPeak
	}
	return (1 - frac) / (1 - arcPeak)
}

// weightedSteps draws an interval size in scale steps from the style's
// table for the mark: dots favor small moves, dashes wider ones.
func (e *Engine) weightedSteps(sym morse.Symbol) int {
	table := e.style.DotSteps
	if sym == morse.Dash {
		table = e.style.DashSteps
	}

	total := 0.0
	for _, sw := range table {
		total += sw.Weight
	}
	r := e.rng.Float64() * total
	for _, sw := range table {
		r -= sw.Weight
		if r < 0 {
			return sw.Steps
		}
	}
	return table[len(table)-1].Steps
}

func (e *Engine) push(pitch int) {
	e.phrase.history = append(e.phrase.history, pitch)
	if len(e.phrase.history) > historySize {
		e.phrase.history = e.phrase.history[1:]
	}
}

func clampPitch(p int) int {
	if p < theory.MinPitch {
		return theory.MinPitch
	}
	if p > theory.MaxPitch {
		return theory.MaxPitch
	}
	return p
}
