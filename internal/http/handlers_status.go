package http

import (
	"net/http"

	"finapp/internal/api"
)

const (
	msgAPIReachable = "API reachable."
	msgAPIError     = "API error."
)

type statusView struct {
	Level string
	Text  string
}

// handleAPIStatus is the sidebar "Test API connection" button.
func (s *Server) handleAPIStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := s.call(r.Context(), "sidebar", api.PathStatus, s.backend.Status)

	view := statusView{Level: LevelSuccess, Text: msgAPIReachable}
	switch {
	case err != nil:
		view = statusView{Level: LevelError, Text: connectionFailed(err)}
	case !resp.OK():
		view = statusView{Level: LevelError, Text: resp.ErrorMessage(msgAPIError)}
	}
	s.render(w, r, "api_status", view)
}
