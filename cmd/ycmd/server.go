package main

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/standardbeagle/ycmd-go/internal/candidate"
	"github.com/standardbeagle/ycmd-go/internal/completer"
	"github.com/standardbeagle/ycmd-go/internal/dispatch"
	"github.com/standardbeagle/ycmd-go/internal/request"
	"github.com/standardbeagle/ycmd-go/internal/snippetcompleter"
)

// wireCandidate is the Candidate JSON shape external editors expect:
// insertion_text is mandatory, everything else is omitted when empty.
type wireCandidate struct {
	InsertionText string `json:"insertion_text"`
	ExtraMenuInfo string `json:"extra_menu_info,omitempty"`
}

type completionsResponse struct {
	Completions          []wireCandidate `json:"completions"`
	CompletionStartColumn int            `json:"completion_start_column"`
	Errors                []string       `json:"errors"`
}

// apiServer wires the dispatcher into the HTTP surface §6 names. Request
// authentication and transport framing are the responsibility of external
// collaborators (an HMAC-signing reverse proxy, typically) and are
// entirely out of scope here: this is the thin shim that makes the module
// a runnable server, not a tested operation.
type apiServer struct {
	dispatcher *dispatch.Dispatcher

	lastActivity atomic.Int64
}

func newAPIServer(d *dispatch.Dispatcher) *apiServer {
	s := &apiServer{dispatcher: d}
	s.touch()
	return s
}

func (s *apiServer) touch() {
	s.lastActivity.Store(time.Now().Unix())
}

func (s *apiServer) idleSeconds() int64 {
	return time.Now().Unix() - s.lastActivity.Load()
}

func (s *apiServer) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ready", s.handleBoolean)
	mux.HandleFunc("/healthy", s.handleBoolean)
	mux.HandleFunc("/completions", s.handleCompletions)
	mux.HandleFunc("/event_notification", s.handleEventNotification)
	mux.HandleFunc("/receive_messages", s.handleReceiveMessages)
	return mux
}

func (s *apiServer) handleBoolean(w http.ResponseWriter, r *http.Request) {
	s.touch()
	writeJSON(w, true)
}

// simpleRequestToCompleterRequest derives the (filetype, line, start_column,
// query) tuple §2's data-flow describes from the wire SimpleRequest.
func simpleRequestToCompleterRequest(sr request.SimpleRequest) (completer.Request, error) {
	line, err := sr.LineValue()
	if err != nil {
		return completer.Request{}, err
	}
	start, err := sr.StartColumn()
	if err != nil {
		return completer.Request{}, err
	}
	return completer.Request{
		Filetypes:   sr.Filetypes(),
		CurrentLine: line,
		StartColumn: start,
		ColumnNum:   sr.ColumnNum,
		FilePath:    sr.FilePath,
		WorkingDir:  sr.WorkingDir,
	}, nil
}

func (s *apiServer) handleCompletions(w http.ResponseWriter, r *http.Request) {
	s.touch()

	var sr request.SimpleRequest
	if err := json.NewDecoder(r.Body).Decode(&sr); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	req, err := simpleRequestToCompleterRequest(sr)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp, err := s.dispatcher.ComputeCandidates(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, completionsResponse{
		Completions:           toWireCandidates(resp.Candidates),
		CompletionStartColumn: resp.CompletionStartColumn,
		Errors:                []string{},
	})
}

func toWireCandidates(cands []candidate.Candidate) []wireCandidate {
	out := make([]wireCandidate, len(cands))
	for i, c := range cands {
		out[i] = wireCandidate{InsertionText: c.Text, ExtraMenuInfo: c.ExtraMenuInfo}
	}
	return out
}

func (s *apiServer) handleEventNotification(w http.ResponseWriter, r *http.Request) {
	s.touch()

	var body struct {
		EventName string          `json:"event_name"`
		Snippets  []snippetcompleter.Snippet `json:"snippets,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.dispatcher.OnEvent(completer.Event{Name: body.EventName, Data: body.Snippets})
	writeJSON(w, []any{})
}

// handleReceiveMessages is the long-poll endpoint: it has nothing to push
// (diagnostics streaming is out of scope), so it sleeps up to the spec's
// ~30s bound and reports the no-data sentinel, cancellably via the
// request's own context.
func (s *apiServer) handleReceiveMessages(w http.ResponseWriter, r *http.Request) {
	select {
	case <-time.After(30 * time.Second):
	case <-r.Context().Done():
	}
	writeJSON(w, true)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// watchIdleSuicide exits the process once idleSeconds have passed without
// an HTTP request, matching ycmd's own --idle-suicide-seconds behavior: an
// editor that crashed without shutting its subserver down cleanly
// shouldn't leave an orphaned server running forever.
func watchIdleSuicide(ctx context.Context, s *apiServer, idleSeconds int, onIdle func()) {
	if idleSeconds <= 0 {
		return
	}
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.idleSeconds() >= int64(idleSeconds) {
				onIdle()
				return
			}
		}
	}
}
