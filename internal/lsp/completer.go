package lsp

import (
	"context"
	"encoding/json"

	"github.com/standardbeagle/ycmd-go/internal/candidate"
	"github.com/standardbeagle/ycmd-go/internal/completer"
)

// TextDocumentIdentifier names an open buffer by its URI, per the LSP
// protocol.
type TextDocumentIdentifier struct {
	URI string `json:"uri"`
}

// Position is a zero-based line/character pair, per the LSP protocol.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// CompletionParams is textDocument/completion's request shape.
type CompletionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

// CompletionItem is one entry of textDocument/completion's response, cut
// down to the fields this backend maps onto a Candidate.
type CompletionItem struct {
	Label  string `json:"label"`
	Detail string `json:"detail,omitempty"`
}

// completionList is the CompletionList-shaped response
// textDocument/completion may return instead of a bare array.
type completionList struct {
	Items []CompletionItem `json:"items"`
}

// Completer adapts a running Subserver to the completer.Completer
// contract: ShouldUseNow relies on the shared default algorithm,
// while ComputeCandidates issues textDocument/completion and translates
// the result into ranked candidates.
type Completer struct {
	sub        *Subserver
	filetypes  []string
	settings   completer.Settings
	uriForPath func(path string) string
}

// New wraps sub as a completer.Completer for filetypes, using settings for
// its trigger table and thresholds. uriForPath converts a SimpleRequest's
// FilePath into the file:// URI the language server expects; a nil value
// defaults to prefixing "file://".
func New(sub *Subserver, filetypes []string, settings completer.Settings, uriForPath func(string) string) *Completer {
	if uriForPath == nil {
		uriForPath = func(path string) string { return "file://" + path }
	}
	return &Completer{sub: sub, filetypes: filetypes, settings: settings, uriForPath: uriForPath}
}

// SupportedFiletypes reports the filetypes this language server was
// configured for.
func (c *Completer) SupportedFiletypes() []string { return c.filetypes }

// Settings returns the completer's shared thresholds and trigger table.
func (c *Completer) Settings() completer.Settings { return c.settings }

// ShouldUseNow delegates to the shared trigger-matching default: LSP
// completers fire on the same filetype-trigger rules as any other
// completer.
func (c *Completer) ShouldUseNow(req completer.Request) bool {
	return completer.DefaultShouldUseNow(req, c.filetypes, c.settings.Triggers)
}

// OnEvent is a no-op: no event is forwarded to the subserver, and no
// textDocument/didOpen-style notification is sent, since such a payload
// needs the buffer's full contents, which completer.Event does not carry.
func (c *Completer) OnEvent(completer.Event) {}

// ComputeCandidates issues textDocument/completion at the request's
// cursor position and funnels the language server's completion items
// through the generic filter-and-sort.
func (c *Completer) ComputeCandidates(req completer.Request) ([]candidate.Candidate, error) {
	params := CompletionParams{
		TextDocument: TextDocumentIdentifier{URI: c.uriForPath(req.FilePath)},
		Position:     Position{Line: 0, Character: req.ColumnNum - 1},
	}

	out, err := c.sub.Request(context.Background(), "textDocument/completion", params)
	if err != nil {
		return nil, err
	}

	items, err := parseCompletionResult(out.Result)
	if err != nil {
		return nil, err
	}

	raw := make([]candidate.Candidate, 0, len(items))
	for _, item := range items {
		raw = append(raw, candidate.NewWithMenuInfo(item.Label, item.Detail))
	}

	return completer.DefaultComputeCandidates(req.Query(), c.settings.MaxCandidates, func() ([]candidate.Candidate, error) {
		return raw, nil
	})
}

// parseCompletionResult accepts either response shape textDocument/completion
// may return: a bare CompletionItem array, or a CompletionList object.
func parseCompletionResult(result json.RawMessage) ([]CompletionItem, error) {
	if len(result) == 0 || string(result) == "null" {
		return nil, nil
	}

	var items []CompletionItem
	if err := json.Unmarshal(result, &items); err == nil {
		return items, nil
	}

	var list completionList
	if err := json.Unmarshal(result, &list); err != nil {
		return nil, err
	}
	return list.Items, nil
}
