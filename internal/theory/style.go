// internal/theory/style.go
package theory

import "errors"

var (
	// ErrUnknownStyle indicates an unrecognized style name
	ErrUnknownStyle = errors.New("unknown style name")
)

// BassPattern selects one of the fixed bass figures.
type BassPattern int

const (
	// BassRootFifth alternates chord root and fifth in half notes
	BassRootFifth BassPattern = iota
	// BassWalking walks root-third-fifth-approach in quarter notes
	BassWalking
	// BassArpeggio cycles root-third-fifth-third in eighth notes
	BassArpeggio
	// BassPedal holds the root for the whole window
	BassPedal
)

// DrumPattern selects one of the fixed percussion grooves.
type DrumPattern int

const (
	// DrumNone disables percussion for the style
	DrumNone DrumPattern = iota
	// DrumBackbeat is kick on 1 and 3, snare on 2 and 4, light hats
	DrumBackbeat
	// DrumFourFloor is kick on every beat with offbeat hats
	DrumFourFloor
	// DrumSwing is a ride-driven swing pattern
	DrumSwing
	// DrumShuffle is a triplet-feel shuffle on the hats
	DrumShuffle
)

// StepWeight is one row of a weighted interval table: a melodic move of
// Steps scale degrees with relative Weight.
type StepWeight struct {
	Steps  int
	Weight float64
}

// StyleProfile is the closed description of a generation style. Styles
// are rows of data, not code branches: adding a style means adding an
// entry to the table below.
type StyleProfile struct {
	// Name is the lookup key
	Name string
	// TempoMin and TempoMax bound the style's tempo range in BPM;
	// the default tempo is the midpoint
	TempoMin float64
	TempoMax float64
	// DotSteps weights the interval sizes used for dots (small moves),
	// DashSteps for dashes (wider moves)
	DotSteps  []StepWeight
	DashSteps []StepWeight
	// ArcSpan is the height of the phrase arc in scale steps
	ArcSpan int
	// Bass and Drums select the accompaniment figures
	Bass  BassPattern
	Drums DrumPattern
	// HomeQuality is the chord quality used when intelligent harmony
	// finds no clear winner
	HomeQuality string
	// Progression is the default progression template name
	Progression string
	// ChromaticChance is the probability a mid-letter pitch passes
	// through unsnapped as a chromatic passing tone
	ChromaticChance float64
	// TendencyChance is the probability a leading tone resolves up to
	// the tonic
	TendencyChance float64
}

// styles is the built-in style table.
var styles = []StyleProfile{
	{
		Name:      "folk",
		TempoMin:  90,
		TempoMax:  130,
		DotSteps:  []StepWeight{{1, 0.60}, {2, 0.30}, {3, 0.10}},
		DashSteps: []StepWeight{{1, 0.15}, {2, 0.40}, {3, 0.30}, {4, 0.15}},

		ArcSpan:         4,
		Bass:            BassRootFifth,
		Drums:           DrumBackbeat,
		HomeQuality:     "major",
		Progression:     "folk",
		ChromaticChance: 0.03,
		TendencyChance:  0.55,
	},
	{
		Name:      "classical",
		TempoMin:  70,
		TempoMax:  110,
		DotSteps:  []StepWeight{{1, 0.70}, {2, 0.25}, {3, 0.05}},
		DashSteps: []StepWeight{{1, 0.20}, {2, 0.45}, {3, 0.25}, {4, 0.10}},

		ArcSpan:         5,
		Bass:            BassArpeggio,
		Drums:           DrumNone,
		HomeQuality:     "major",
		Progression:     "classical",
		ChromaticChance: 0.02,
		TendencyChance:  0.75,
	},
	{
		Name:      "jazz",
		TempoMin:  100,
		TempoMax:  160,
		DotSteps:  []StepWeight{{1, 0.35}, {2, 0.35}, {3, 0.20}, {4, 0.10}},
		DashSteps: []StepWeight{{2, 0.30}, {3, 0.30}, {4, 0.25}, {5, 0.15}},

		ArcSpan:         6,
		Bass:            BassWalking,
		Drums:           DrumSwing,
		HomeQuality:     "dominant7",
		Progression:     "jazz",
		ChromaticChance: 0.10,
		TendencyChance:  0.40,
	},
	{
		Name:      "pop",
		TempoMin:  100,
		TempoMax:  140,
		DotSteps:  []StepWeight{{1, 0.55}, {2, 0.35}, {3, 0.10}},
		DashSteps: []StepWeight{{1, 0.20}, {2, 0.40}, {3, 0.30}, {4, 0.10}},

		ArcSpan:         4,
		Bass:            BassPedal,
		Drums:           DrumFourFloor,
		HomeQuality:     "major",
		Progression:     "pop",
		ChromaticChance: 0.02,
		TendencyChance:  0.50,
	},
	{
		Name:      "blues",
		TempoMin:  80,
		TempoMax:  120,
		DotSteps:  []StepWeight{{1, 0.50}, {2, 0.30}, {3, 0.20}},
		DashSteps: []StepWeight{{1, 0.25}, {2, 0.35}, {3, 0.25}, {4, 0.15}},

		ArcSpan:         3,
		Bass:            BassWalking,
		Drums:           DrumShuffle,
		HomeQuality:     "dominant7",
		Progression:     "blues",
		ChromaticChance: 0.08,
		TendencyChance:  0.45,
	},
}

// StyleByName returns the named style profile.
func StyleByName(name string) (StyleProfile, error) {
	for _, s := range styles {
		if s.Name == name {
			return s.clone(), nil
		}
	}
	return StyleProfile{}, ErrUnknownStyle
}

// StyleNames returns the built-in style names in definition order.
func StyleNames() []string {
	names := make([]string, len(styles))
	for i, s := range styles {
		names[i] = s.Name
	}
	return names
}

// DefaultTempo returns the midpoint of the style's tempo range.
func (s StyleProfile) DefaultTempo() float64 {
	return (s.TempoMin + s.TempoMax) / 2
}

func (s StyleProfile) clone() StyleProfile {
	out := s
	out.DotSteps = make([]StepWeight, len(s.DotSteps))
	copy(out.DotSteps, s.DotSteps)
	out.DashSteps = make([]StepWeight, len(s.DashSteps))
	copy(out.DashSteps, s.DashSteps)
	return out
}
