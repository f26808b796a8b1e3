// internal/morse/timing.go
package morse

// Morse timing ratios (ITU standard), expressed in dot units.
// The composer lays notes and silences out at exactly these multiples and
// the timing decoder classifies against the thresholds below, so both
// sides of the codec share one source of truth.
const (
	// DotUnits is the duration of a dot (the base unit)
	DotUnits = 1.0
	// DashUnits is the duration of a dash (ITU: 3:1)
	DashUnits = 3.0
	// SymbolGapUnits is the silence between marks within a letter (ITU: 1:1)
	SymbolGapUnits = 1.0
	// LetterGapUnits is the silence between letters (ITU: 3:1)
	LetterGapUnits = 3.0
	// WordGapUnits is the silence between words (ITU: 7:1)
	WordGapUnits = 7.0

	// DotCeiling is the classification boundary between dot and dash,
	// as a multiple of the estimated unit (midpoint of 1 and 3)
	DotCeiling = 2.0
	// DashCeiling is the classification boundary between dash and unknown.
	// Notes longer than this many units carry no valid mark
	DashCeiling = 4.5
	// LetterGapThreshold closes the current letter (between 1 and 3)
	LetterGapThreshold = 2.5
	// WordGapThreshold closes the current word (between 3 and 7)
	WordGapThreshold = 5.5
)
