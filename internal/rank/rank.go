package rank

import (
	"sort"

	"github.com/standardbeagle/ycmd-go/internal/candidate"
	"github.com/standardbeagle/ycmd-go/internal/debug"
)

// Filter runs MatchesQuery against every candidate and keeps only the
// subsequence matches.
func Filter(candidates []candidate.Candidate, query candidate.Word) []candidate.QueryResult {
	matches := make([]candidate.QueryResult, 0, len(candidates))
	for _, c := range candidates {
		if r := c.MatchesQuery(query); r.IsSubsequence {
			matches = append(matches, r)
		}
	}
	debug.LogRank("filtered %d candidates to %d subsequence matches for %q", len(candidates), len(matches), query.Text)
	return matches
}

// TopK returns the best min(maxCandidates, len(matches)) results in rank
// order. A full comparator sort trivially satisfies "the first k entries are
// in total order" — it's the k == len(matches) case of a partial sort — so
// that's what this does rather than a bespoke heap-selection routine.
func TopK(matches []candidate.QueryResult, maxCandidates int) []candidate.QueryResult {
	sort.SliceStable(matches, func(i, j int) bool {
		return Compare(matches[i], matches[j]) < 0
	})

	k := maxCandidates
	if k > len(matches) {
		k = len(matches)
	}
	if k < 0 {
		k = 0
	}
	debug.LogRank("top-k bound %d of %d matches", k, len(matches))
	return matches[:k]
}

// FilterAndSort is the canonical funnel: filter candidates down to
// subsequence matches of query, then return the top maxCandidates in rank
// order.
func FilterAndSort(candidates []candidate.Candidate, query candidate.Word, maxCandidates int) []candidate.QueryResult {
	return TopK(Filter(candidates, query), maxCandidates)
}

// FilterAndSortGeneric is the heterogeneous variant: it ranks arbitrary
// items by a caller-supplied string key, then returns the underlying items
// — not QueryResults — in rank order, truncated to maxCandidates. Used by
// every Completer's default compute_candidates.
func FilterAndSortGeneric[T any](items []T, key func(T) string, query string, maxCandidates int) []T {
	q := candidate.NewWord(query)

	type scored struct {
		item   T
		result candidate.QueryResult
	}

	scoredItems := make([]scored, 0, len(items))
	for _, item := range items {
		c := candidate.New(key(item))
		if r := c.MatchesQuery(q); r.IsSubsequence {
			scoredItems = append(scoredItems, scored{item: item, result: r})
		}
	}

	sort.SliceStable(scoredItems, func(i, j int) bool {
		return Compare(scoredItems[i].result, scoredItems[j].result) < 0
	})

	k := maxCandidates
	if k > len(scoredItems) {
		k = len(scoredItems)
	}
	if k < 0 {
		k = 0
	}

	out := make([]T, k)
	for i := 0; i < k; i++ {
		out[i] = scoredItems[i].item
	}
	return out
}
