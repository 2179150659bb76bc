package domain_test

import (
	"errors"
	"testing"

	"github.com/randomtoy/moonblock-go/internal/domain"
)

// deterministicRNG returns values from a pre-set sequence.
type deterministicRNG struct {
	values []int
	idx    int
}

func (r *deterministicRNG) Intn(n int) int {
	v := r.values[r.idx%len(r.values)] % n
	r.idx++
	return v
}

func TestThrowGenerator_Next(t *testing.T) {
	gen := domain.NewThrowGenerator(&deterministicRNG{values: []int{0, 1, 2, 3}})

	want := []domain.ThrowOutcome{domain.Affirm, domain.Doubt, domain.Deny, domain.Affirm}
	for i, w := range want {
		if got := gen.Next(); got != w {
			t.Errorf("throw %d: expected %s, got %s", i, w, got)
		}
	}
}

func TestThrowGenerator_CoversAllOutcomes(t *testing.T) {
	values := make([]int, 300)
	for i := range values {
		values[i] = i
	}
	gen := domain.NewThrowGenerator(&deterministicRNG{values: values})

	counts := make(map[domain.ThrowOutcome]int)
	for range 300 {
		counts[gen.Next()]++
	}
	for _, o := range domain.Outcomes {
		if counts[o] != 100 {
			t.Errorf("%s: expected 100 hits, got %d", o, counts[o])
		}
	}
}

func TestParseOutcomes(t *testing.T) {
	got, err := domain.ParseOutcomes([]string{"SHENG", "DOUBT", "YIN"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [3]domain.ThrowOutcome{domain.Affirm, domain.Doubt, domain.Deny}
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}

	if _, err := domain.ParseOutcomes([]string{"AFFIRM", "AFFIRM"}); !errors.Is(err, domain.ErrWrongThrowCount) {
		t.Errorf("expected ErrWrongThrowCount, got %v", err)
	}
	if _, err := domain.ParseOutcomes([]string{"AFFIRM", "AFFIRM", "HEADS"}); !errors.Is(err, domain.ErrInvalidOutcome) {
		t.Errorf("expected ErrInvalidOutcome, got %v", err)
	}
}
