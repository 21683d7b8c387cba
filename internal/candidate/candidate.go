package candidate

import (
	"strings"

	"github.com/standardbeagle/ycmd-go/internal/char"
)

// Candidate is an immutable scored string: its text, its grapheme sequence,
// the subset of those graphemes that sit at word boundaries, and the
// case-swapped sort key used as the ranking engine's final tiebreaker.
type Candidate struct {
	Text             string
	Characters       []char.Character
	WordBoundaryChars []char.Character
	TextIsLowercase  bool
	CaseSwapped      string

	// ExtraMenuInfo is display-only metadata a completer attaches to its
	// candidates (e.g. the filename completer's "[File]"/"[Dir]" tag, or
	// the snippet completer's "<snip> " + description). It never
	// participates in ranking: Compare and MatchesQuery only ever look at
	// Text/Characters/WordBoundaryChars/TextIsLowercase/CaseSwapped.
	ExtraMenuInfo string
}

// New grapheme-segments text and precomputes everything matches_query and
// the ranker's comparator need.
func New(text string) Candidate {
	return NewWithMenuInfo(text, "")
}

// NewWithMenuInfo is New plus a fixed, non-ranking ExtraMenuInfo tag, set at
// construction so Candidate stays immutable once built.
func NewWithMenuInfo(text, extraMenuInfo string) Candidate {
	characters := char.SegmentToCharacters(text)
	return Candidate{
		Text:              text,
		Characters:        characters,
		WordBoundaryChars: wordBoundaryChars(characters),
		TextIsLowercase:   textIsLowercase(characters),
		CaseSwapped:       caseSwapped(characters),
		ExtraMenuInfo:     extraMenuInfo,
	}
}

func wordBoundaryChars(characters []char.Character) []char.Character {
	var out []char.Character
	for i := 1; i < len(characters); i++ {
		prev, cur := characters[i-1], characters[i]
		if (prev.IsPunctuation && !cur.IsPunctuation) || (!prev.IsUppercase && cur.IsUppercase) {
			out = append(out, cur)
		}
	}
	if len(characters) > 0 && !characters[0].IsPunctuation {
		out = append([]char.Character{characters[0]}, out...)
	}
	return out
}

func textIsLowercase(characters []char.Character) bool {
	for _, c := range characters {
		if c.IsUppercase {
			return false
		}
	}
	return true
}

func caseSwapped(characters []char.Character) string {
	var b strings.Builder
	for _, c := range characters {
		b.WriteString(c.SwappedCase)
	}
	return b.String()
}

// IsEmpty reports whether the candidate has no graphemes (e.g. text == "").
func (c Candidate) IsEmpty() bool {
	return len(c.Characters) == 0
}

// MatchesQuery performs a single left-to-right subsequence scan: advance a
// cursor over the query's graphemes, and for every candidate position that
// satisfies the cursor's current grapheme under SmartCaseEq, record the
// index and advance. Returns a populated QueryResult when the cursor
// exhausts (the query is a subsequence of the candidate), else a zero-value
// (non-matching) QueryResult.
func (c Candidate) MatchesQuery(q Word) QueryResult {
	cursor := 0
	matchIndexSum := 0
	isPrefix := true

	for i, g := range c.Characters {
		if cursor >= len(q.Characters) {
			return newQueryResult(true, isPrefix, matchIndexSum, c, q)
		}
		if q.Characters[cursor].SmartCaseEq(g) {
			cursor++
			matchIndexSum += i
		} else {
			isPrefix = false
		}
	}

	if cursor >= len(q.Characters) {
		return newQueryResult(true, isPrefix, matchIndexSum, c, q)
	}
	return QueryResult{}
}
