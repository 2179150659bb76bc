package http

import (
	"github.com/randomtoy/moonblock-go/internal/app"
	"github.com/randomtoy/moonblock-go/internal/domain"
)

// SingleRequest is the body of POST /v1/divination/single.
type SingleRequest struct {
	Complaint string `json:"complaint"`
	Outcome   string `json:"outcome"`
	Index     int    `json:"index"`
}

type SingleResponse struct {
	Text   string            `json:"text"`
	Source domain.CardSource `json:"source"`
}

// FinalRequest is the body of POST /v1/divination/final.
type FinalRequest struct {
	Complaint string   `json:"complaint"`
	Outcomes  []string `json:"outcomes"`
}

// RitualResponse wraps a sequencer snapshot. Accepted is false when the
// command was ignored in the current phase.
type RitualResponse struct {
	Accepted bool         `json:"accepted"`
	Ritual   app.Snapshot `json:"ritual"`
}

type ComplaintRequest struct {
	Text string `json:"text"`
}

type ComplaintsResponse struct {
	Complaints []domain.Complaint `json:"complaints"`
}

type ClockOutResponse struct {
	RemainingSeconds int64  `json:"remaining_seconds"`
	OffWork          bool   `json:"off_work"`
	Label            string `json:"label"`
}

type RoastResponse struct {
	Text string `json:"text"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
