// internal/theory/scale.go
// Package theory holds the music-theory data the generator draws from:
// scales, key presets, chord qualities, progression templates, and style
// profiles. Everything here is plain data plus lookup helpers; nothing
// is random and nothing depends on generation state.
package theory

import (
	"errors"
	"sort"
)

// Playable pitch window (MIDI note numbers)
const (
	// MinPitch is the lowest pitch the generator will ever emit (C2)
	MinPitch = 36
	// MaxPitch is the highest pitch the generator will ever emit (C7)
	MaxPitch = 96

	// OctaveSemitones is the number of semitones in one octave
	OctaveSemitones = 12
)

var (
	// ErrInvalidRoot indicates the root pitch is outside the MIDI range
	ErrInvalidRoot = errors.New("root pitch must be between 0 and 127")
	// ErrInvalidIntervals indicates the interval set is malformed
	ErrInvalidIntervals = errors.New("intervals must be unique, ascending, and within 0-11")
	// ErrInvalidOctaveSpan indicates the octave span is out of range
	ErrInvalidOctaveSpan = errors.New("octave span must be between 1 and 5")
	// ErrEmptyScale indicates the window produced no playable pitches
	ErrEmptyScale = errors.New("scale window contains no playable pitches")
	// ErrUnknownScale indicates an unrecognized scale name
	ErrUnknownScale = errors.New("unknown scale name")
	// ErrUnknownKey indicates an unrecognized key name
	ErrUnknownKey = errors.New("unknown key name")
)

// ScaleSpec describes a scale: a root pitch and the semitone offsets of
// its degrees within one octave.
type ScaleSpec struct {
	// Root is the tonic as a MIDI note number
	Root int
	// Intervals are the semitone offsets of the scale degrees (0-11),
	// unique and ascending
	Intervals []int
}

// scaleIntervals maps scale names to their interval sets.
var scaleIntervals = map[string][]int{
	"major":            {0, 2, 4, 5, 7, 9, 11},
	"minor":            {0, 2, 3, 5, 7, 8, 10},
	"pentatonic_major": {0, 2, 4, 7, 9},
	"pentatonic_minor": {0, 3, 5, 7, 10},
	"blues":            {0, 3, 5, 6, 7, 10},
	"dorian":           {0, 2, 3, 5, 7, 9, 10},
	"mixolydian":       {0, 2, 4, 5, 7, 9, 10},
}

// ScaleIntervals returns the interval set for a named scale.
func ScaleIntervals(name string) ([]int, error) {
	intervals, ok := scaleIntervals[name]
	if !ok {
		return nil, ErrUnknownScale
	}
	out := make([]int, len(intervals))
	copy(out, intervals)
	return out, nil
}

// ScaleNames returns the known scale names, sorted.
func ScaleNames() []string {
	names := make([]string, 0, len(scaleIntervals))
	for name := range scaleIntervals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// keyPresets maps key names to the MIDI pitch of the tonic in the fourth
// octave (C4 = 60).
var keyPresets = map[string]int{
	"C": 60, "C#": 61, "DB": 61,
	"D": 62, "D#": 63, "EB": 63,
	"E": 64,
	"F": 65, "F#": 66, "GB": 66,
	"G": 67, "G#": 68, "AB": 68,
	"A": 69, "A#": 70, "BB": 70,
	"B": 71,
}

// keyNames lists the canonical key spellings in chromatic order.
var keyNames = []string{"C", "C#", "D", "Eb", "E", "F", "F#", "G", "Ab", "A", "Bb", "B"}

// KeyRoot returns the MIDI root pitch for a key name such as "C", "F#",
// or "Bb". Lookup is case-insensitive.
func KeyRoot(name string) (int, error) {
	normalized := make([]rune, 0, len(name))
	for _, r := range name {
		if r == ' ' || r == '\t' {
			continue
		}
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		normalized = append(normalized, r)
	}
	root, ok := keyPresets[string(normalized)]
	if !ok {
		return 0, ErrUnknownKey
	}
	return root, nil
}

// KeyNames returns the canonical key names in chromatic order.
func KeyNames() []string {
	out := make([]string, len(keyNames))
	copy(out, keyNames)
	return out
}

// Scale is the materialized pitch set of a ScaleSpec over a multi-octave
// window, clamped to the playable range.
type Scale struct {
	spec    ScaleSpec
	pitches []int
	stable  []int // tonic/third/fifth semitone offsets
}

// NewScale materializes a scale across octaveSpan octaves, starting one
// octave below the root and closing on the top tonic. Pitches outside
// [MinPitch, MaxPitch] are discarded rather than folded back in.
func NewScale(spec ScaleSpec, octaveSpan int) (*Scale, error) {
	if spec.Root < 0 || spec.Root > 127 {
		return nil, ErrInvalidRoot
	}
	if err := validateIntervals(spec.Intervals); err != nil {
		return nil, err
	}
	if octaveSpan < 1 || octaveSpan > 5 {
		return nil, ErrInvalidOctaveSpan
	}

	start := spec.Root - OctaveSemitones
	var pitches []int
	for oct := 0; oct < octaveSpan; oct++ {
		for _, iv := range spec.Intervals {
			p := start + oct*OctaveSemitones + iv
			if p >= MinPitch && p <= MaxPitch {
				pitches = append(pitches, p)
			}
		}
	}
	// Close the window on the top tonic so arcs have somewhere to resolve.
	if top := start + octaveSpan*OctaveSemitones; top >= MinPitch && top <= MaxPitch {
		pitches = append(pitches, top)
	}
	if len(pitches) == 0 {
		return nil, ErrEmptyScale
	}

	specCopy := ScaleSpec{Root: spec.Root, Intervals: make([]int, len(spec.Intervals))}
	copy(specCopy.Intervals, spec.Intervals)

	return &Scale{
		spec:    specCopy,
		pitches: pitches,
		stable:  stableIntervals(specCopy.Intervals),
	}, nil
}

// NewNamedScale is NewScale for a named scale rooted at the given pitch.
func NewNamedScale(name string, root, octaveSpan int) (*Scale, error) {
	intervals, err := ScaleIntervals(name)
	if err != nil {
		return nil, err
	}
	return NewScale(ScaleSpec{Root: root, Intervals: intervals}, octaveSpan)
}

func validateIntervals(intervals []int) error {
	if len(intervals) == 0 {
		return ErrInvalidIntervals
	}
	for i, iv := range intervals {
		if iv < 0 || iv > 11 {
			return ErrInvalidIntervals
		}
		if i > 0 && iv <= intervals[i-1] {
			return ErrInvalidIntervals
		}
	}
	return nil
}

// stableIntervals picks the scale's tonic, third, and fifth: the degrees
// nearest to 0, 4, and 7 semitones, ties toward the lower degree.
func stableIntervals(intervals []int) []int {
	targets := []int{0, 4, 7}
	stable := make([]int, 0, len(targets))
	for _, target := range targets {
		best := intervals[0]
		for _, iv := range intervals[1:] {
			if abs(iv-target) < abs(best-target) {
				best = iv
			}
		}
		stable = append(stable, best)
	}
	return stable
}

// Root returns the tonic pitch of the scale spec.
func (s *Scale) Root() int {
	return s.spec.Root
}

// Len returns the number of pitches in the window.
func (s *Scale) Len() int {
	return len(s.pitches)
}

// Pitches returns a copy of the pitch set, sorted ascending.
func (s *Scale) Pitches() []int {
	out := make([]int, len(s.pitches))
	copy(out, s.pitches)
	return out
}

// PitchAt returns the pitch at index i, clamping i into the valid range.
func (s *Scale) PitchAt(i int) int {
	if i < 0 {
		i = 0
	}
	if i >= len(s.pitches) {
		i = len(s.pitches) - 1
	}
	return s.pitches[i]
}

// Contains reports whether the pitch is a member of the window.
func (s *Scale) Contains(pitch int) bool {
	i := sort.SearchInts(s.pitches, pitch)
	return i < len(s.pitches) && s.pitches[i] == pitch
}

// NearestIndex returns the index of the pitch closest to the candidate,
// ties broken toward the lower pitch.
func (s *Scale) NearestIndex(candidate int) int {
	i := sort.SearchInts(s.pitches, candidate)
	if i == 0 {
		return 0
	}
	if i == len(s.pitches) {
		return len(s.pitches) - 1
	}
	// pitches[i-1] < candidate <= pitches[i]; prefer the lower on ties
	if abs(candidate-s.pitches[i-1]) <= abs(s.pitches[i]-candidate) {
		return i - 1
	}
	return i
}

// Snap returns the scale pitch nearest to the candidate, ties broken
// toward the lower pitch.
func (s *Scale) Snap(candidate int) int {
	return s.pitches[s.NearestIndex(candidate)]
}

// IsStable reports whether the pitch sits on a stable degree
// (tonic, third, or fifth).
func (s *Scale) IsStable(pitch int) bool {
	iv := normalizeInterval(pitch - s.spec.Root)
	for _, stable := range s.stable {
		if iv == stable {
			return true
		}
	}
	return false
}

// NearestStable returns the stable-degree pitch closest to the candidate,
// ties broken toward the lower pitch.
func (s *Scale) NearestStable(candidate int) int {
	best := -1
	for _, p := range s.pitches {
		if !s.IsStable(p) {
			continue
		}
		if best < 0 || abs(p-candidate) < abs(best-candidate) {
			best = p
		}
	}
	if best < 0 {
		// No stable degree survived the clamp; fall back to plain snapping.
		return s.Snap(candidate)
	}
	return best
}

// IsLeadingTone reports whether the pitch sits a semitone or whole tone
// below the tonic above it, the degrees with the strongest pull upward.
func (s *Scale) IsLeadingTone(pitch int) bool {
	iv := normalizeInterval(pitch - s.spec.Root)
	return iv == 10 || iv == 11
}

// TonicAbove returns the nearest tonic at or above the pitch, clamped to
// the window.
func (s *Scale) TonicAbove(pitch int) int {
	iv := normalizeInterval(pitch - s.spec.Root)
	tonic := pitch + (OctaveSemitones-iv)%OctaveSemitones
	if tonic > s.pitches[len(s.pitches)-1] {
		return s.pitches[len(s.pitches)-1]
	}
	return s.Snap(tonic)
}

func normalizeInterval(delta int) int {
	iv := delta % OctaveSemitones
	if iv < 0 {
		iv += OctaveSemitones
	}
	return iv
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
