package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/randomtoy/moonblock-go/internal/domain"
	"github.com/randomtoy/moonblock-go/internal/ports"
)

// ComplaintDesk handles the venting step before a ritual: file a complaint,
// then shred or burn it. Only the most recently filed complaint is current.
type ComplaintDesk struct {
	store ports.ComplaintStore
	clock ports.Clock

	mu        sync.Mutex
	currentID string
}

func NewComplaintDesk(store ports.ComplaintStore, clock ports.Clock) *ComplaintDesk {
	return &ComplaintDesk{store: store, clock: clock}
}

// File records a new pending complaint and makes it current.
func (d *ComplaintDesk) File(ctx context.Context, text string) (domain.Complaint, error) {
	text, err := domain.NormalizeComplaint(text)
	if err != nil {
		return domain.Complaint{}, err
	}
	c := domain.Complaint{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: d.clock.Now(),
		Status:    domain.StatusPending,
	}
	if err := d.store.Add(ctx, c); err != nil {
		return domain.Complaint{}, fmt.Errorf("add complaint: %w", err)
	}

	d.mu.Lock()
	d.currentID = c.ID
	d.mu.Unlock()
	return c, nil
}

func (d *ComplaintDesk) Shred(ctx context.Context, id string) (domain.Complaint, error) {
	return d.destroy(ctx, id, domain.StatusShredded)
}

func (d *ComplaintDesk) Burn(ctx context.Context, id string) (domain.Complaint, error) {
	return d.destroy(ctx, id, domain.StatusBurnt)
}

// destroy only acts on the current complaint, and only once.
func (d *ComplaintDesk) destroy(ctx context.Context, id string, status domain.ComplaintStatus) (domain.Complaint, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, err := d.store.Get(ctx, id)
	if err != nil {
		return domain.Complaint{}, err
	}
	if id != d.currentID {
		return domain.Complaint{}, domain.ErrComplaintNotCurrent
	}
	if c.Destroyed() {
		return domain.Complaint{}, domain.ErrComplaintDestroyed
	}
	return d.store.SetStatus(ctx, id, status)
}

func (d *ComplaintDesk) History(ctx context.Context) ([]domain.Complaint, error) {
	return d.store.List(ctx)
}

// RitualComplaint returns the text the next ritual should be about. With no
// complaint on file it is DefaultComplaint; a filed complaint must have been
// destroyed first.
func (d *ComplaintDesk) RitualComplaint(ctx context.Context) (string, error) {
	d.mu.Lock()
	id := d.currentID
	d.mu.Unlock()

	if id == "" {
		return domain.DefaultComplaint, nil
	}
	c, err := d.store.Get(ctx, id)
	if err != nil {
		return "", fmt.Errorf("get current complaint: %w", err)
	}
	if !c.Destroyed() {
		return "", domain.ErrComplaintNotDestroyed
	}
	return c.Text, nil
}
