package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultComplaint is used when the user starts a ritual without venting first.
const DefaultComplaint = "心中所念之事"

// MaxComplaintRunes bounds the complaint text sent to the text service.
const MaxComplaintRunes = 500

// ComplaintStatus tracks what the user did with a complaint before the ritual.
type ComplaintStatus string

const (
	StatusPending  ComplaintStatus = "PENDING"
	StatusShredded ComplaintStatus = "SHREDDED"
	StatusBurnt    ComplaintStatus = "BURNT"
)

// Complaint is one vented workplace grievance.
type Complaint struct {
	ID        string          `json:"id"`
	Text      string          `json:"text"`
	CreatedAt time.Time       `json:"created_at"`
	Status    ComplaintStatus `json:"status"`
}

// Destroyed reports whether the complaint was shredded or burnt.
func (c Complaint) Destroyed() bool {
	return c.Status == StatusShredded || c.Status == StatusBurnt
}

// NormalizeComplaint trims the text and enforces the length bound.
func NormalizeComplaint(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyComplaint
	}
	if utf8.RuneCountInString(text) > MaxComplaintRunes {
		return "", ErrComplaintTooLong
	}
	return text, nil
}

// ComplaintOrDefault is NormalizeComplaint for text-service requests, where a
// blank complaint means DefaultComplaint.
func ComplaintOrDefault(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return DefaultComplaint, nil
	}
	return NormalizeComplaint(text)
}
