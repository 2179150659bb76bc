package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/randomtoy/moonblock-go/internal/domain"
	"github.com/randomtoy/moonblock-go/internal/ports"
)

// Timing holds the named delays and deadlines of the ritual.
type Timing struct {
	ThrowDwell       time.Duration
	FinalizeDelay    time.Duration
	PerThrowTimeout  time.Duration
	FinalCardTimeout time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		ThrowDwell:       800 * time.Millisecond,
		FinalizeDelay:    8 * time.Second,
		PerThrowTimeout:  5 * time.Second,
		FinalCardTimeout: 10 * time.Second,
	}
}

// Comment is the commentary for one throw and where it came from.
type Comment struct {
	Text   string
	Source domain.CardSource
}

// Oracle wraps a FortuneTeller with hard deadlines and the fallback bank.
// Its methods never fail: every error is absorbed into fallback text.
type Oracle struct {
	teller ports.FortuneTeller
	bank   ports.FallbackBank
	timing Timing
	logger *slog.Logger

	rngMu sync.Mutex
	rng   domain.RNG
}

// NewOracle builds an Oracle. A nil teller means the service is unavailable
// and every answer comes from the bank.
func NewOracle(teller ports.FortuneTeller, bank ports.FallbackBank, rng domain.RNG, timing Timing, logger *slog.Logger) *Oracle {
	return &Oracle{
		teller: teller,
		bank:   bank,
		timing: timing,
		logger: logger,
		rng:    rng,
	}
}

func (o *Oracle) CommentOnThrow(ctx context.Context, in ports.ThrowInput) Comment {
	text, err := o.askComment(ctx, in)
	if err == nil {
		return Comment{Text: text, Source: domain.SourceService}
	}
	o.logFailure(ctx, err, "throw", in.Index)
	return Comment{Text: o.FallbackComment(in.Outcome), Source: domain.SourceFallback}
}

func (o *Oracle) askComment(ctx context.Context, in ports.ThrowInput) (string, error) {
	if o.teller == nil {
		return "", domain.ErrServiceUnavailable
	}
	text, err := callWithTimeout(ctx, o.timing.PerThrowTimeout, func(ctx context.Context) (string, error) {
		return o.teller.CommentOnThrow(ctx, in)
	})
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("%w: empty commentary", domain.ErrServiceError)
	}
	return text, nil
}

// ProduceCard asks the service for the final card. The returned card is
// either entirely from the service or entirely from the fallback bank.
func (o *Oracle) ProduceCard(ctx context.Context, in ports.CardInput) domain.VerdictCard {
	card, err := o.askCard(ctx, in)
	if err == nil {
		card.Source = domain.SourceService
		return card
	}
	o.logFailure(ctx, err, "final", -1)
	return o.FallbackCard(in.Outcomes)
}

func (o *Oracle) askCard(ctx context.Context, in ports.CardInput) (domain.VerdictCard, error) {
	if o.teller == nil {
		return domain.VerdictCard{}, domain.ErrServiceUnavailable
	}
	card, err := callWithTimeout(ctx, o.timing.FinalCardTimeout, func(ctx context.Context) (domain.VerdictCard, error) {
		return o.teller.ProduceCard(ctx, in)
	})
	if err != nil {
		return domain.VerdictCard{}, err
	}
	if !card.Complete() {
		return domain.VerdictCard{}, fmt.Errorf("%w: incomplete card", domain.ErrServiceError)
	}
	if want := domain.Classify(in.Outcomes); card.Verdict != want {
		return domain.VerdictCard{}, fmt.Errorf("%w: got %s, want %s", domain.ErrVerdictMismatch, card.Verdict, want)
	}
	return card, nil
}

// FallbackComment picks a random bank entry for the outcome.
func (o *Oracle) FallbackComment(outcome domain.ThrowOutcome) string {
	texts := o.bank.ThrowTexts(outcome)
	if len(texts) == 0 {
		return outcome.Name()
	}
	return texts[o.intn(len(texts))]
}

// FallbackCard returns the bank card for the classified verdict.
func (o *Oracle) FallbackCard(outcomes [domain.ThrowsPerRitual]domain.ThrowOutcome) domain.VerdictCard {
	card := o.bank.Card(domain.Classify(outcomes))
	card.Source = domain.SourceFallback
	return card
}

// Roast returns a random one-liner from the bank.
func (o *Oracle) Roast() string {
	roasts := o.bank.Roasts()
	if len(roasts) == 0 {
		return ""
	}
	return roasts[o.intn(len(roasts))]
}

func (o *Oracle) intn(n int) int {
	o.rngMu.Lock()
	defer o.rngMu.Unlock()
	return o.rng.Intn(n)
}

func (o *Oracle) logFailure(ctx context.Context, err error, call string, index int) {
	if errors.Is(err, context.Canceled) {
		o.logger.DebugContext(ctx, "fortune call canceled", "call", call, "index", index)
		return
	}
	o.logger.WarnContext(ctx, "fortune service failed, using fallback",
		"call", call,
		"index", index,
		"class", failureClass(err),
		"error", err,
	)
}

func failureClass(err error) string {
	switch {
	case errors.Is(err, domain.ErrServiceUnavailable):
		return "unavailable"
	case errors.Is(err, domain.ErrServiceTimeout):
		return "timeout"
	default:
		return "service_error"
	}
}

// callWithTimeout runs call with a deadline and returns no later than the
// deadline even if call ignores its context.
func callWithTimeout[T any](ctx context.Context, d time.Duration, call func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := call(ctx)
		ch <- result{v: v, err: err}
	}()

	var zero T
	select {
	case r := <-ch:
		if r.err != nil {
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return zero, fmt.Errorf("%w after %s: %w", domain.ErrServiceTimeout, d, r.err)
			}
			return zero, r.err
		}
		return r.v, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, fmt.Errorf("%w after %s", domain.ErrServiceTimeout, d)
		}
		return zero, ctx.Err()
	}
}
