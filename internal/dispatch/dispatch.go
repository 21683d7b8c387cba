// Package dispatch implements the C12 dispatcher: it composes the filename
// completer with an ordered pool of generic completers, applies the
// filename-first policy on compute_candidates, and fans events out to
// every registered completer.
package dispatch

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/ycmd-go/internal/candidate"
	"github.com/standardbeagle/ycmd-go/internal/completer"
)

// Response is the dispatcher's result: the ranked candidates plus the
// column completions should be inserted at, matching the wire protocol's
// {completions, completion_start_column} shape.
type Response struct {
	Candidates          []candidate.Candidate
	CompletionStartColumn int
}

// Dispatcher holds the filename completer plus an ordered pool of generic
// completers (snippet, LSP-backed, or otherwise). Its completer pool is
// mutated by AddCompleter/RemoveCompleter — e.g. when an LSP subserver
// starts or dies — and read by ComputeCandidates/OnEvent, so a mutex
// guards it across the pool's lifetime, held only across the synchronous
// list read or write.
type Dispatcher struct {
	filename completer.Completer

	mu         sync.RWMutex
	completers []completer.Completer

	// MaxConcurrentCompleters bounds how many generic completers run at
	// once per request; 0 means unbounded (errgroup.SetLimit(-1)).
	MaxConcurrentCompleters int
}

// New constructs a dispatcher over filename (the filename completer,
// consulted first on every request) and the initial set of generic
// completers, visited in the given order.
func New(filename completer.Completer, completers ...completer.Completer) *Dispatcher {
	return &Dispatcher{
		filename:   filename,
		completers: append([]completer.Completer(nil), completers...),
	}
}

// AddCompleter registers a new generic completer at the end of the pool,
// e.g. once an LSP subserver has finished its initialize handshake.
func (d *Dispatcher) AddCompleter(c completer.Completer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.completers = append(d.completers, c)
}

// RemoveCompleter drops target from the pool, e.g. once its LSP subserver
// has exited.
func (d *Dispatcher) RemoveCompleter(target completer.Completer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := d.completers[:0]
	for _, c := range d.completers {
		if c != target {
			out = append(out, c)
		}
	}
	d.completers = out
}

// snapshot copies the current completer pool under the read lock, so the
// rest of ComputeCandidates/OnEvent can run outside it.
func (d *Dispatcher) snapshot() []completer.Completer {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]completer.Completer(nil), d.completers...)
}

// ComputeCandidates applies the filename-first policy: the filename
// completer runs first, and if it should fire and returns any candidates,
// that response is final. Otherwise every generic completer that wants to
// fire runs concurrently (bounded by MaxConcurrentCompleters), their
// candidates concatenate in construction order, and the combined pool is
// funneled through the generic filter-and-sort.
func (d *Dispatcher) ComputeCandidates(ctx context.Context, req completer.Request) (Response, error) {
	if d.filename != nil && d.filename.ShouldUseNow(req) {
		cands, err := d.filename.ComputeCandidates(req)
		if err != nil {
			return Response{}, err
		}
		if len(cands) > 0 {
			startColumn := req.StartColumn
			if resolver, ok := d.filename.(completer.StartColumnResolver); ok {
				if resolved, ok := resolver.ResolveStartColumn(req); ok {
					startColumn = resolved
				}
			}
			return Response{Candidates: cands, CompletionStartColumn: startColumn + 1}, nil
		}
	}

	completers := d.snapshot()
	results := make([][]candidate.Candidate, len(completers))

	eg, gctx := errgroup.WithContext(ctx)
	if d.MaxConcurrentCompleters > 0 {
		eg.SetLimit(d.MaxConcurrentCompleters)
	}
	for i, c := range completers {
		i, c := i, c
		if !c.ShouldUseNow(req) {
			continue
		}
		eg.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			cands, err := c.ComputeCandidates(req)
			if err != nil {
				return err
			}
			results[i] = cands
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Response{}, err
	}

	var merged []candidate.Candidate
	for _, r := range results {
		merged = append(merged, r...)
	}

	maxCandidates := 0
	for _, c := range completers {
		if s := c.Settings(); s.MaxCandidates > maxCandidates {
			maxCandidates = s.MaxCandidates
		}
	}
	if maxCandidates == 0 {
		maxCandidates = len(merged)
	}

	ranked, err := completer.DefaultComputeCandidates(req.Query(), maxCandidates, func() ([]candidate.Candidate, error) {
		return merged, nil
	})
	if err != nil {
		return Response{}, err
	}
	return Response{Candidates: ranked, CompletionStartColumn: req.StartColumn + 1}, nil
}

// OnEvent fans event out to the filename completer and every generic
// completer in the pool.
func (d *Dispatcher) OnEvent(event completer.Event) {
	if d.filename != nil {
		d.filename.OnEvent(event)
	}
	for _, c := range d.snapshot() {
		c.OnEvent(event)
	}
}
