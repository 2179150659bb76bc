package ports

import (
	"context"

	"github.com/randomtoy/moonblock-go/internal/domain"
)

// ThrowInput is what the text service needs to comment on one throw.
type ThrowInput struct {
	Complaint string
	Outcome   domain.ThrowOutcome
	Index     int
}

// CardInput is what the text service needs to write the final card.
type CardInput struct {
	Complaint string
	Outcomes  [domain.ThrowsPerRitual]domain.ThrowOutcome
}

// FortuneTeller generates commentary, typically via an LLM. Implementations
// must honour ctx cancellation and should return domain.ErrServiceUnavailable
// without dialing when they have no credential.
type FortuneTeller interface {
	CommentOnThrow(ctx context.Context, in ThrowInput) (string, error)
	ProduceCard(ctx context.Context, in CardInput) (domain.VerdictCard, error)
}

// FallbackBank holds the static texts used when the FortuneTeller fails.
type FallbackBank interface {
	// ThrowTexts returns every fallback comment for the outcome.
	ThrowTexts(o domain.ThrowOutcome) []string
	// Card returns the fallback card for the verdict, with Verdict set.
	Card(v domain.Verdict) domain.VerdictCard
	// Roasts returns the one-line roasts shown on the result page.
	Roasts() []string
}
