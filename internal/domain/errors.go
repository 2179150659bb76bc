package domain

import (
	"errors"
	"fmt"
)

var (
	ErrServiceUnavailable    = errors.New("fortune service unavailable")
	ErrServiceTimeout        = errors.New("fortune service timed out")
	ErrServiceError          = errors.New("fortune service error")
	ErrVerdictMismatch       = fmt.Errorf("%w: verdict disagrees with classifier", ErrServiceError)
	ErrInvalidSessionState   = errors.New("invalid session state")
	ErrInvalidOutcome        = errors.New("invalid throw outcome")
	ErrWrongThrowCount       = errors.New("exactly 3 throw outcomes are required")
	ErrEmptyComplaint        = errors.New("complaint text is empty")
	ErrComplaintTooLong      = errors.New("complaint must be at most 500 characters")
	ErrComplaintNotFound     = errors.New("complaint not found")
	ErrComplaintNotDestroyed = errors.New("complaint must be shredded or burnt first")
	ErrComplaintNotCurrent   = errors.New("only the latest complaint can be destroyed")
	ErrComplaintDestroyed    = errors.New("complaint already destroyed")
)
