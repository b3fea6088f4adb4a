package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Outcome of a backend submission.
const (
	OutcomeOK        = "ok"
	OutcomeAPIError  = "api_error"
	OutcomeTransport = "transport_error"
	OutcomeInvalid   = "invalid"
)

// Submission records one form submission forwarded to the backend. It
// carries no form contents, only what was called and how it went.
type Submission struct {
	ID         string    `json:"id"`
	RequestID  string    `json:"request_id,omitempty"`
	Page       string    `json:"page"`
	Endpoint   string    `json:"endpoint"`
	Outcome    string    `json:"outcome"`
	Status     int       `json:"status,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewSubmission stamps a submission with a fresh ID and the current time.
func NewSubmission(page, endpoint, outcome string, status int, took time.Duration) *Submission {
	return &Submission{
		ID:         uuid.NewString(),
		Page:       page,
		Endpoint:   endpoint,
		Outcome:    outcome,
		Status:     status,
		DurationMS: took.Milliseconds(),
		Timestamp:  time.Now().UTC(),
	}
}

func (s *Submission) ToJSON() ([]byte, error) {
	return json.Marshal(s)
}

func SubmissionFromJSON(data []byte) (*Submission, error) {
	var s Submission
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
