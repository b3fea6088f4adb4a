package http

import (
	"context"
	"net/http"
	"strings"

	"finapp/internal/api"
)

const (
	msgKBReady      = "Knowledge base ready."
	msgKBInitFailed = "Failed to initialize."
	msgSearchFailed = "Search failed."
	msgEnterQuery   = "Please enter a query."

	DefaultKBQuery = "How big should my emergency fund be?"
	DefaultTopK    = 4
	MinTopK        = 1
	MaxTopK        = 8
)

type kbView struct {
	Query    string
	TopK     int
	Advanced bool
}

func (s *Server) handleKBInit(w http.ResponseWriter, r *http.Request) {
	view := &resultView{}
	resp, err := s.call(r.Context(), "knowledge-base", api.PathKBInit, s.backend.KBInit)
	if applyResponse(view, resp, err, msgKBInitFailed) {
		view.Messages = append([]message{{Level: LevelSuccess, Text: msgKBReady}}, view.Messages...)
	}
	s.renderResult(w, r, view)
}

// handleKBSearch posts {query, topK} to the advanced or plain search endpoint.
func (s *Server) handleKBSearch(w http.ResponseWriter, r *http.Request) {
	if b := ParseFormOrFail(r); b != nil {
		b.Write(w)
		return
	}
	view := &resultView{}

	query := strings.TrimSpace(sanitizeInput(r.PostForm.Get("query")))
	advanced := ParseToggle(r.PostForm["advanced"], true)
	endpoint := api.PathKBSearch
	if advanced {
		endpoint = api.PathKBAdvanced
	}

	if query == "" {
		view.add(LevelWarning, msgEnterQuery)
		s.recordInvalid(r.Context(), "knowledge-base", endpoint)
		s.renderResult(w, r, view)
		return
	}

	req := api.SearchRequest{Query: query, TopK: ParseTopK(r.PostForm.Get("top_k"))}
	resp, err := s.call(r.Context(), "knowledge-base", endpoint, func(ctx context.Context) (*api.Response, error) {
		return s.backend.KBSearch(ctx, req, advanced)
	})
	applyResponse(view, resp, err, msgSearchFailed)
	s.renderResult(w, r, view)
}
