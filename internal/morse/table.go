// internal/morse/table.go
// Package morse provides the character-to-pattern table shared by the
// encoder and the decoder, plus the timing ratios that relate marks and
// the silences between them.
package morse

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyMessage indicates the message was blank or whitespace-only
	ErrEmptyMessage = errors.New("message is empty")
)

// Symbol is one atomic element of an expanded message.
type Symbol int

const (
	// Dot is the short mark (one unit)
	Dot Symbol = iota
	// Dash is the long mark (three units)
	Dash
	// LetterGap separates two letters within a word
	LetterGap
	// WordGap separates two words
	WordGap
)

// String returns the diagnostic form of the symbol.
func (s Symbol) String() string {
	switch s {
	case Dot:
		return "."
	case Dash:
		return "-"
	case LetterGap:
		return " "
	case WordGap:
		return "/"
	default:
		return "?"
	}
}

// IsMark reports whether the symbol produces a note (dot or dash) rather
// than a silence.
func (s Symbol) IsMark() bool {
	return s == Dot || s == Dash
}

// patterns is the fixed mapping for letters A-Z and digits 0-9.
// Space is handled as the word separator, not as a pattern.
var patterns = map[rune]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".",
	'F': "..-.", 'G': "--.", 'H': "....", 'I': "..", 'J': ".---",
	'K': "-.-", 'L': ".-..", 'M': "--", 'N': "-.", 'O': "---",
	'P': ".--.", 'Q': "--.-", 'R': ".-.", 'S': "...", 'T': "-",
	'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-", 'Y': "-.--",
	'Z': "--..",
	'0': "-----", '1': ".----", '2': "..---", '3': "...--", '4': "....-",
	'5': ".....", '6': "-....", '7': "--...", '8': "---..", '9': "----.",
}

// chars is the reverse lookup, built once from patterns.
var chars = func() map[string]rune {
	m := make(map[string]rune, len(patterns))
	for r, p := range patterns {
		m[p] = r
	}
	return m
}()

// Pattern returns the dot/dash pattern for a character. Lookup is
// case-insensitive; the second return is false for unsupported characters.
func Pattern(r rune) (string, bool) {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	p, ok := patterns[r]
	return p, ok
}

// Char returns the character for a dot/dash pattern, or false when the
// pattern maps to nothing (the decoder renders such letters as '?').
func Char(pattern string) (rune, bool) {
	r, ok := chars[pattern]
	return r, ok
}

// Expand converts a message to its symbol stream, inserting LetterGap
// between letters and WordGap between words. Unsupported characters are
// skipped and returned in input order so callers can report them.
func Expand(text string) ([]Symbol, []rune) {
	var (
		symbols []Symbol
		skipped []rune
	)

	words := strings.Fields(strings.ToUpper(text))
	firstWord := true
	for _, word := range words {
		wordSymbols := expandWord(word, &skipped)
		if len(wordSymbols) == 0 {
			continue // every character unsupported
		}
		if !firstWord {
			symbols = append(symbols, WordGap)
		}
		symbols = append(symbols, wordSymbols...)
		firstWord = false
	}

	return symbols, skipped
}

// expandWord emits the symbols for one word, letters separated by LetterGap.
func expandWord(word string, skipped *[]rune) []Symbol {
	var symbols []Symbol
	firstLetter := true
	for _, r := range word {
		p, ok := patterns[r]
		if !ok {
			*skipped = append(*skipped, r)
			continue
		}
		if !firstLetter {
			symbols = append(symbols, LetterGap)
		}
		for _, mark := range p {
			if mark == '.' {
				symbols = append(symbols, Dot)
			} else {
				symbols = append(symbols, Dash)
			}
		}
		firstLetter = false
	}
	return symbols
}

// MorseString returns the diagnostic form of a message: letter patterns
// joined with spaces, words separated by "/". Returns ErrEmptyMessage for
// blank or whitespace-only input, and when no character survives encoding.
func MorseString(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyMessage
	}

	var parts []string
	for _, word := range strings.Fields(strings.ToUpper(text)) {
		var letters []string
		for _, r := range word {
			if p, ok := patterns[r]; ok {
				letters = append(letters, p)
			}
		}
		if len(letters) == 0 {
			continue
		}
		if len(parts) > 0 {
			parts = append(parts, "/")
		}
		parts = append(parts, letters...)
	}
	if len(parts) == 0 {
		return "", ErrEmptyMessage
	}

	return strings.Join(parts, " "), nil
}
