// Package snippetcompleter implements the event-driven snippet completer:
// it caches one candidate per configured snippet trigger and refreshes
// that cache whenever the editor reports a BufferVisit event carrying a
// fresh snippet set for the current buffer.
package snippetcompleter

import (
	"sync"

	"github.com/standardbeagle/ycmd-go/internal/candidate"
	"github.com/standardbeagle/ycmd-go/internal/completer"
)

// snippetMenuPrefix tags every snippet candidate's ExtraMenuInfo the way
// ycmd's UltiSnips-backed completer does, so the editor can tell a snippet
// expansion apart from an ordinary identifier in its completion menu.
const snippetMenuPrefix = "<snip> "

// Snippet is one entry of the editor-supplied snippet set: the text that
// triggers expansion and a human-readable description of what it expands
// to.
type Snippet struct {
	Trigger     string
	Description string
}

// Completer is the C11 snippet completer: a mutable candidate cache keyed
// by the most recent BufferVisit event's snippet set.
type Completer struct {
	settings completer.Settings

	mu         sync.RWMutex
	candidates []candidate.Candidate
}

// New constructs a snippet completer with an empty cache; OnEvent
// populates it on the first BufferVisit.
func New(settings completer.Settings) *Completer {
	return &Completer{settings: settings}
}

// SupportedFiletypes is empty: snippets are filetype-agnostic from this
// completer's point of view — the editor only ever sends the snippets for
// the buffer's own filetype(s).
func (c *Completer) SupportedFiletypes() []string { return nil }

// Settings returns the completer's shared thresholds.
func (c *Completer) Settings() completer.Settings { return c.settings }

// OnEvent replaces the cached candidate vector on BufferVisit. Any other
// event name, or a BufferVisit with no snippet payload, leaves the cache
// untouched.
func (c *Completer) OnEvent(event completer.Event) {
	if event.Name != completer.EventBufferVisit {
		return
	}
	snippets, ok := event.Data.([]Snippet)
	if !ok || len(snippets) == 0 {
		return
	}

	fresh := make([]candidate.Candidate, 0, len(snippets))
	for _, s := range snippets {
		fresh = append(fresh, candidate.NewWithMenuInfo(s.Trigger, snippetMenuPrefix+s.Description))
	}

	c.mu.Lock()
	c.candidates = fresh
	c.mu.Unlock()
}

// ShouldUseNow fires once the query is at least MinNumChars long; snippets
// are cheap enough to always consider once there's something to match
// against.
func (c *Completer) ShouldUseNow(req completer.Request) bool {
	return completer.QueryLengthAboveMinThreshold(req.StartColumn, req.ColumnNum, c.settings.MinNumChars)
}

// ComputeCandidates funnels the cached snippet candidates through the
// generic filter-and-sort for the current query.
func (c *Completer) ComputeCandidates(req completer.Request) ([]candidate.Candidate, error) {
	c.mu.RLock()
	cached := c.candidates
	c.mu.RUnlock()

	return completer.DefaultComputeCandidates(req.Query(), c.settings.MaxCandidates, func() ([]candidate.Candidate, error) {
		return cached, nil
	})
}
