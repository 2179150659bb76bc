package ports

import (
	"context"

	"github.com/randomtoy/moonblock-go/internal/domain"
)

// ComplaintStore keeps the complaints vented during this process lifetime.
type ComplaintStore interface {
	Add(ctx context.Context, c domain.Complaint) error
	Get(ctx context.Context, id string) (domain.Complaint, error)
	SetStatus(ctx context.Context, id string, status domain.ComplaintStatus) (domain.Complaint, error)
	// List returns complaints newest first.
	List(ctx context.Context) ([]domain.Complaint, error)
}
