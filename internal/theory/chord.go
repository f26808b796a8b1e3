// internal/theory/chord.go
package theory

import "errors"

var (
	// ErrUnknownQuality indicates an unrecognized chord quality name
	ErrUnknownQuality = errors.New("unknown chord quality")
	// ErrUnknownProgression indicates an unrecognized progression name
	ErrUnknownProgression = errors.New("unknown progression name")
)

// Quality is a chord quality: the semitone stack built above a root.
type Quality struct {
	Name      string
	Intervals []int
}

// qualities lists the supported chord qualities. Order matters: the
// accompaniment's quality chooser walks this slice and resolves ties in
// favor of earlier entries, so keep the plain triads first.
var qualities = []Quality{
	{Name: "major", Intervals: []int{0, 4, 7}},
	{Name: "minor", Intervals: []int{0, 3, 7}},
	{Name: "diminished", Intervals: []int{0, 3, 6}},
	{Name: "sus2", Intervals: []int{0, 2, 7}},
	{Name: "sus4", Intervals: []int{0, 5, 7}},
	{Name: "dominant7", Intervals: []int{0, 4, 7, 10}},
	{Name: "major7", Intervals: []int{0, 4, 7, 11}},
}

// QualityByName returns the named chord quality.
func QualityByName(name string) (Quality, error) {
	for _, q := range qualities {
		if q.Name == name {
			out := Quality{Name: q.Name, Intervals: make([]int, len(q.Intervals))}
			copy(out.Intervals, q.Intervals)
			return out, nil
		}
	}
	return Quality{}, ErrUnknownQuality
}

// TriadQualities returns the qualities the intelligent-harmony chooser
// considers, in tie-break order.
func TriadQualities() []Quality {
	out := make([]Quality, 0, 4)
	for _, name := range []string{"major", "minor", "dominant7", "sus4"} {
		q, _ := QualityByName(name)
		out = append(out, q)
	}
	return out
}

// Pitches returns the chord tones built on the given root.
func (q Quality) Pitches(root int) []int {
	out := make([]int, len(q.Intervals))
	for i, iv := range q.Intervals {
		out[i] = root + iv
	}
	return out
}

// PitchClasses returns the chord's pitch classes on the given root.
func (q Quality) PitchClasses(root int) map[int]bool {
	classes := make(map[int]bool, len(q.Intervals))
	for _, iv := range q.Intervals {
		classes[normalizeInterval(root+iv)] = true
	}
	return classes
}

// Fifth returns the chord's fifth above the root, falling back to a
// perfect fifth for qualities that do not stack one.
func (q Quality) Fifth(root int) int {
	for _, iv := range q.Intervals {
		if iv == 6 || iv == 7 || iv == 8 {
			return root + iv
		}
	}
	return root + 7
}

// Third returns the chord tone closest to a third above the root.
func (q Quality) Third(root int) int {
	for _, iv := range q.Intervals {
		if iv >= 2 && iv <= 5 {
			return root + iv
		}
	}
	return root + 4
}

// Progression is an ordered list of chord-root offsets, in semitones
// above the key root. One step is consumed per chord window.
type Progression struct {
	Name    string
	Offsets []int
}

// progressions lists the built-in templates: folk is I-IV-V-I, pop is
// I-V-vi-IV, classical is I-I-IV-V, jazz is ii-V-I-vi, and blues is the
// twelve-bar form.
var progressions = []Progression{
	{Name: "folk", Offsets: []int{0, 5, 7, 0}},
	{Name: "pop", Offsets: []int{0, 7, 9, 5}},
	{Name: "classical", Offsets: []int{0, 0, 5, 7}},
	{Name: "jazz", Offsets: []int{2, 7, 0, 9}},
	{Name: "blues", Offsets: []int{0, 0, 0, 0, 5, 5, 0, 0, 7, 5, 0, 7}},
}

// ProgressionByName returns the named progression template.
func ProgressionByName(name string) (Progression, error) {
	for _, p := range progressions {
		if p.Name == name {
			out := Progression{Name: p.Name, Offsets: make([]int, len(p.Offsets))}
			copy(out.Offsets, p.Offsets)
			return out, nil
		}
	}
	return Progression{}, ErrUnknownProgression
}

// ProgressionNames returns the built-in progression names in definition
// order.
func ProgressionNames() []string {
	names := make([]string, len(progressions))
	for i, p := range progressions {
		names[i] = p.Name
	}
	return names
}

// OffsetAt returns the root offset for the i-th chord window, cycling
// through the template.
func (p Progression) OffsetAt(i int) int {
	return p.Offsets[i%len(p.Offsets)]
}
