// Package completer defines the Completer contract every candidate
// producer (filename, snippet, LSP-backed, or otherwise) implements, plus
// the default should_use_now/compute_candidates algorithms every
// implementation gets for free.
package completer

import (
	"github.com/standardbeagle/ycmd-go/internal/candidate"
	"github.com/standardbeagle/ycmd-go/internal/rank"
	"github.com/standardbeagle/ycmd-go/internal/trigger"
)

// Event is a buffer lifecycle notification dispatched to every completer,
// e.g. BufferVisit when the editor switches to or reloads a buffer.
type Event struct {
	Name string
	Data any
}

const EventBufferVisit = "BufferVisit"

// Request is the minimal view of a completion request a Completer needs:
// enough to decide whether to fire and to rank its output, without
// depending on the full SimpleRequest type (avoiding an import cycle with
// package request, whose derived accessors already produce these values).
type Request struct {
	Filetypes   []string
	CurrentLine string
	StartColumn int
	ColumnNum   int

	// FilePath and WorkingDir are plain strings copied from SimpleRequest;
	// they're carried here (rather than pulling in package request) so the
	// filename completer can resolve paths without this package importing
	// request and creating a cycle (request never needs to know about
	// completers).
	FilePath   string
	WorkingDir string
}

// Prefix returns the text of CurrentLine before StartColumn, the same
// derived value request.SimpleRequest.Prefix produces.
func (r Request) Prefix() string {
	if r.StartColumn < 0 || r.StartColumn > len(r.CurrentLine) {
		return r.CurrentLine
	}
	return r.CurrentLine[:r.StartColumn]
}

// Query returns the text between StartColumn and ColumnNum-1, the same
// derived value request.SimpleRequest.Query produces.
func (r Request) Query() string {
	start := r.StartColumn
	end := r.ColumnNum - 1
	if start < 0 || end > len(r.CurrentLine) || start > end {
		return ""
	}
	return r.CurrentLine[start:end]
}

// Settings holds the fields every Completer's default algorithms read:
// the trigger table it should consult, and the thresholds governing when
// it fires and how many results it returns.
type Settings struct {
	Triggers      map[string]*trigger.PatternSet
	MinNumChars   int
	MaxCandidates int
}

// Completer is implemented by every candidate producer the dispatcher can
// hold: the filename completer, the snippet completer, and any
// LSP-backed completer.
type Completer interface {
	SupportedFiletypes() []string
	Settings() Settings
	ShouldUseNow(req Request) bool
	OnEvent(event Event)
	ComputeCandidates(req Request) ([]candidate.Candidate, error)
}

// StartColumnResolver is implemented by completers whose insertion column
// can differ from req.StartColumn (the identifier-grammar start) — the
// filename completer resolves its own start column from the path
// fragment under the cursor, not from the identifier grammar. The
// dispatcher consults this, when present, to report the right
// completion_start_column on a filename-first response.
type StartColumnResolver interface {
	ResolveStartColumn(req Request) (int, bool)
}

// QueryLengthAboveMinThreshold reports whether the span between start and
// column (the query length) meets minNumChars.
func QueryLengthAboveMinThreshold(start, column, minNumChars int) bool {
	return column-start >= minNumChars
}

// effectiveFiletype picks the filetype a Completer should act under: the
// first of req.Filetypes that the completer supports, else req.Filetypes's
// own first entry. Returns "" if req.Filetypes is empty.
func effectiveFiletype(req Request, supported []string) string {
	if len(req.Filetypes) == 0 {
		return ""
	}
	supportedSet := make(map[string]bool, len(supported))
	for _, ft := range supported {
		supportedSet[ft] = true
	}
	for _, ft := range req.Filetypes {
		if supportedSet[ft] {
			return ft
		}
	}
	return req.Filetypes[0]
}

// DefaultShouldUseNow is the algorithm most Completer implementations
// delegate to: no filetype means no trigger can possibly fire, otherwise
// the completion-trigger matcher decides.
func DefaultShouldUseNow(req Request, supported []string, triggers map[string]*trigger.PatternSet) bool {
	if len(req.Filetypes) == 0 {
		return false
	}
	filetype := effectiveFiletype(req, supported)
	return trigger.MatchesForFiletype(triggers, filetype, req.CurrentLine, req.StartColumn, req.ColumnNum)
}

// DefaultComputeCandidates runs producer to get a completer's raw
// candidates, then funnels them through the generic filter-and-sort using
// each candidate's Text (its insertion text) as the sort key.
func DefaultComputeCandidates(query string, maxCandidates int, producer func() ([]candidate.Candidate, error)) ([]candidate.Candidate, error) {
	raw, err := producer()
	if err != nil {
		return nil, err
	}
	return rank.FilterAndSortGeneric(raw, func(c candidate.Candidate) string { return c.Text }, query, maxCandidates), nil
}
