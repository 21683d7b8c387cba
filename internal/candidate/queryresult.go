package candidate

import "github.com/standardbeagle/ycmd-go/internal/char"

// QueryResult is the ephemeral per-(candidate, query) scoring record the
// ranker's comparator consumes. It borrows its Candidate and Word and exists
// only for the lifetime of a single filter-and-sort call.
type QueryResult struct {
	IsSubsequence     bool
	QueryIsPrefix     bool
	FirstCharIsSame   bool
	CharMatchIndexSum int
	NumWBMatches      int
	Candidate         Candidate
	Query             Word
}

func newQueryResult(isSubsequence, queryIsPrefix bool, charMatchIndexSum int, c Candidate, q Word) QueryResult {
	var numWBMatches int
	var firstCharIsSame bool

	if !c.IsEmpty() && len(q.Characters) > 0 {
		firstCharIsSame = c.Characters[0].Base == q.Characters[0].Base
		numWBMatches = longestCommonSubsequenceLen(c.WordBoundaryChars, q.Characters)
	}

	return QueryResult{
		IsSubsequence:     isSubsequence,
		QueryIsPrefix:     queryIsPrefix,
		FirstCharIsSame:   firstCharIsSame,
		CharMatchIndexSum: charMatchIndexSum,
		NumWBMatches:      numWBMatches,
		Candidate:         c,
		Query:             q,
	}
}

// longestCommonSubsequenceLen computes the length of the longest common
// subsequence between a and b, comparing elements by Base (the same
// comparison Character's own PartialEq uses upstream). This is the standard
// O(len(a)*len(b)) dynamic-programming LCS, sized for the short sequences
// (word-boundary characters, query graphemes) the ranker deals with.
func longestCommonSubsequenceLen(a, b []char.Character) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1].Base == b[j-1].Base {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}

	return prev[len(b)]
}
