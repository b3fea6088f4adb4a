package http

import (
	"encoding/json"
	"net/http"
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady reports not ready once shutdown has begun. It never calls the
// backend: an unreachable backend is shown in the UI, not hidden by the proxy.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !s.ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("shutting down"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

type metricsView struct {
	Requests struct {
		Total        int64 `json:"total"`
		InFlight     int64 `json:"in_flight"`
		ServerErrors int64 `json:"server_errors"`
		AvgMicros    int64 `json:"avg_response_us"`
	} `json:"requests"`
	RateLimit struct {
		Hits    int64 `json:"hits"`
		Clients int64 `json:"clients"`
	} `json:"rate_limit"`
	Security struct {
		Suspicious int64 `json:"suspicious"`
		Blocked    int64 `json:"blocked"`
	} `json:"security"`
	Sessions int `json:"sessions"`
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	var m metricsView

	tm := s.tracer.GetMetrics()
	m.Requests.Total = tm.TotalRequests
	m.Requests.InFlight = tm.InFlight
	m.Requests.ServerErrors = tm.ServerErrors
	m.Requests.AvgMicros = tm.AverageResponseTime.Microseconds()

	rm := s.rateLimiter.GetMetrics()
	m.RateLimit.Hits = rm.TotalHits
	m.RateLimit.Clients = rm.ClientCount

	dm := s.detector.GetMetrics()
	m.Security.Suspicious = dm.SuspiciousRequests
	m.Security.Blocked = dm.BlockedRequests

	m.Sessions = s.sessions.Size()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(m)
}
