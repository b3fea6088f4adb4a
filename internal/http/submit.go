package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"finapp/internal/api"
	"finapp/internal/events"
	"finapp/internal/middleware/trace"
)

// Message levels map to CSS classes of the result fragment.
const (
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelError   = "error"
	LevelInfo    = "info"
)

type message struct {
	Level string
	Text  string
}

// resultView is what every form action renders: messages first, then the
// statement summary when there is one, then the backend JSON.
type resultView struct {
	Messages []message
	Totals   *totalsView
	JSON     string
}

func (v *resultView) add(level, text string) {
	v.Messages = append(v.Messages, message{Level: level, Text: text})
}

func (v *resultView) HasJSON() bool { return v.JSON != "" }

// call performs one backend call and records it in the log and the event
// stream. It returns exactly what the backend call returned.
func (s *Server) call(ctx context.Context, page, endpoint string, fn func(context.Context) (*api.Response, error)) (*api.Response, error) {
	start := time.Now()
	resp, err := fn(ctx)
	took := time.Since(start)

	status := 0
	outcome := events.OutcomeOK
	switch {
	case err != nil:
		outcome = events.OutcomeTransport
	case !resp.OK():
		status = resp.StatusCode
		outcome = events.OutcomeAPIError
	default:
		status = resp.StatusCode
	}

	s.structlog.LogSubmission(ctx, page, endpoint, status, took.Milliseconds(), err)

	ev := events.NewSubmission(page, endpoint, outcome, status, took)
	ev.RequestID = trace.GetRequestID(ctx)
	s.events.Submit(ev)

	return resp, err
}

// applyResponse turns a backend reply into messages and JSON:
// a transport failure shows "API connection failed" and nothing else, an error
// status shows the backend's error or the fallback, success shows the body.
// It reports whether the call succeeded.
func applyResponse(view *resultView, resp *api.Response, err error, fallback string) bool {
	if err != nil {
		view.add(LevelError, connectionFailed(err))
		return false
	}
	if !resp.OK() {
		view.add(LevelError, resp.ErrorMessage(fallback))
		return false
	}
	view.JSON = resp.PrettyJSON()
	return true
}

func connectionFailed(err error) string {
	var te *api.TransportError
	if errors.As(err, &te) {
		return "API connection failed: " + te.Error()
	}
	return "API connection failed: " + err.Error()
}

func (s *Server) renderResult(w http.ResponseWriter, r *http.Request, view *resultView) {
	s.render(w, r, "result", view)
}

// recordInvalid logs a submission rejected before any backend call.
func (s *Server) recordInvalid(ctx context.Context, page, endpoint string) {
	ev := events.NewSubmission(page, endpoint, events.OutcomeInvalid, 0, 0)
	ev.RequestID = trace.GetRequestID(ctx)
	s.events.Submit(ev)
}
