package memory_test

import (
	"context"
	"testing"

	"github.com/randomtoy/moonblock-go/internal/adapters/memory"
	"github.com/randomtoy/moonblock-go/internal/domain"
)

func TestComplaintStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := memory.NewComplaintStore()

	for _, id := range []string{"a", "b", "c"} {
		if err := s.Add(ctx, domain.Complaint{ID: id, Status: domain.StatusPending}); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got string
	for _, c := range list {
		got += c.ID
	}
	if got != "cba" {
		t.Errorf("expected order cba, got %s", got)
	}
}

func TestComplaintStore_SetStatus(t *testing.T) {
	ctx := context.Background()
	s := memory.NewComplaintStore()
	_ = s.Add(ctx, domain.Complaint{ID: "a", Text: "加班", Status: domain.StatusPending})

	c, err := s.SetStatus(ctx, "a", domain.StatusShredded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Status != domain.StatusShredded || c.Text != "加班" {
		t.Errorf("unexpected complaint: %+v", c)
	}

	stored, _ := s.Get(ctx, "a")
	if stored.Status != domain.StatusShredded {
		t.Errorf("status not persisted: %s", stored.Status)
	}

	if _, err := s.SetStatus(ctx, "zzz", domain.StatusBurnt); err != domain.ErrComplaintNotFound {
		t.Errorf("expected ErrComplaintNotFound, got %v", err)
	}
}
