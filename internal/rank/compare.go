// Package rank implements the ranking engine: the subsequence filter, the
// eight-criterion lexicographic comparator, and the top-k partial sort that
// turn a candidate pool plus a query into a totally ordered response.
package rank

import (
	"strings"

	"github.com/standardbeagle/ycmd-go/internal/candidate"
)

// Compare orders two QueryResults by the ranking engine's criteria:
// negative means a ranks before b (a is the better match), positive means a
// ranks after b, zero means the two are tied under every criterion tried.
//
// Earlier criteria dominate; each is evaluated only when every criterion
// before it ties.
func Compare(a, b candidate.QueryResult) int {
	if a.Query.Text != "" {
		if c := boolTrueWins(a.FirstCharIsSame, b.FirstCharIsSame); c != 0 {
			return c
		}

		queryLen := len(a.Query.Characters)
		if a.NumWBMatches == queryLen || b.NumWBMatches == queryLen {
			if c := largerWins(a.NumWBMatches, b.NumWBMatches); c != 0 {
				return c
			}
			if c := smallerWins(len(a.Candidate.WordBoundaryChars), len(b.Candidate.WordBoundaryChars)); c != 0 {
				return c
			}
		}

		if c := boolTrueWins(a.QueryIsPrefix, b.QueryIsPrefix); c != 0 {
			return c
		}

		if c := largerWins(a.NumWBMatches, b.NumWBMatches); c != 0 {
			return c
		}

		if c := smallerWins(len(a.Candidate.WordBoundaryChars), len(b.Candidate.WordBoundaryChars)); c != 0 {
			return c
		}

		if c := smallerWins(a.CharMatchIndexSum, b.CharMatchIndexSum); c != 0 {
			return c
		}

		if c := smallerWins(len(a.Candidate.Characters), len(b.Candidate.Characters)); c != 0 {
			return c
		}

		if c := boolTrueWins(a.Candidate.TextIsLowercase, b.Candidate.TextIsLowercase); c != 0 {
			return c
		}
	}

	return strings.Compare(a.Candidate.CaseSwapped, b.Candidate.CaseSwapped)
}

func boolTrueWins(a, b bool) int {
	if a == b {
		return 0
	}
	if a {
		return -1
	}
	return 1
}

func largerWins(a, b int) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}

func smallerWins(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
