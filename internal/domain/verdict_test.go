package domain_test

import (
	"testing"

	"github.com/randomtoy/moonblock-go/internal/domain"
)

func allSequences() [][3]domain.ThrowOutcome {
	var seqs [][3]domain.ThrowOutcome
	for _, a := range domain.Outcomes {
		for _, b := range domain.Outcomes {
			for _, c := range domain.Outcomes {
				seqs = append(seqs, [3]domain.ThrowOutcome{a, b, c})
			}
		}
	}
	return seqs
}

func TestClassify_Total(t *testing.T) {
	seqs := allSequences()
	if len(seqs) != 27 {
		t.Fatalf("expected 27 sequences, got %d", len(seqs))
	}
	for _, s := range seqs {
		if v := domain.Classify(s); !v.Valid() {
			t.Errorf("%v: invalid verdict %q", s, v)
		}
	}
}

func TestClassify_PermutationInvariant(t *testing.T) {
	perms := [][3]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	for _, s := range allSequences() {
		want := domain.Classify(s)
		for _, p := range perms {
			permuted := [3]domain.ThrowOutcome{s[p[0]], s[p[1]], s[p[2]]}
			if got := domain.Classify(permuted); got != want {
				t.Errorf("%v -> %s, but permutation %v -> %s", s, want, permuted, got)
			}
		}
	}
}

func TestClassify_Cases(t *testing.T) {
	A, D, N := domain.Affirm, domain.Doubt, domain.Deny
	tests := []struct {
		in   [3]domain.ThrowOutcome
		want domain.Verdict
	}{
		{[3]domain.ThrowOutcome{A, A, N}, domain.Proceed},
		{[3]domain.ThrowOutcome{A, A, A}, domain.Proceed},
		{[3]domain.ThrowOutcome{A, A, D}, domain.Proceed},
		{[3]domain.ThrowOutcome{N, N, A}, domain.Hold},
		{[3]domain.ThrowOutcome{N, N, N}, domain.Hold},
		{[3]domain.ThrowOutcome{A, D, N}, domain.Defer},
		{[3]domain.ThrowOutcome{D, D, D}, domain.Defer},
		{[3]domain.ThrowOutcome{D, D, A}, domain.Defer},
		{[3]domain.ThrowOutcome{D, D, N}, domain.Defer},
	}
	for _, tt := range tests {
		if got := domain.Classify(tt.in); got != tt.want {
			t.Errorf("Classify(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseVerdict(t *testing.T) {
	for raw, want := range map[string]domain.Verdict{
		"QUIT": domain.Proceed, "PROCEED": domain.Proceed,
		"STAY": domain.Hold, "HOLD": domain.Hold,
		"MAYBE": domain.Defer, "DEFER": domain.Defer,
	} {
		got, err := domain.ParseVerdict(raw)
		if err != nil || got != want {
			t.Errorf("ParseVerdict(%q) = %s, %v", raw, got, err)
		}
	}
	if _, err := domain.ParseVerdict("PERHAPS"); err != domain.ErrServiceError {
		t.Errorf("expected ErrServiceError, got %v", err)
	}
}
