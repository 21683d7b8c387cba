// Package candidate implements the Candidate and Word (query) value types
// the ranking engine scores: a Candidate is an immutable scored string — its
// graphemes, its word-boundary set and its case-swapped sort key — and a
// Word is the parsed query run against a pool of candidates.
package candidate

import "github.com/standardbeagle/ycmd-go/internal/char"

// Word is a parsed query: its original text plus its grapheme sequence.
type Word struct {
	Text       string
	Characters []char.Character
}

// NewWord grapheme-segments text into a Word. An empty query is valid and
// produces an empty Characters slice.
func NewWord(text string) Word {
	return Word{
		Text:       text,
		Characters: char.SegmentToCharacters(text),
	}
}
