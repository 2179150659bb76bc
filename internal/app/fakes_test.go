package app_test

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/randomtoy/moonblock-go/internal/domain"
	"github.com/randomtoy/moonblock-go/internal/ports"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// seqRNG returns values from a fixed sequence, cycling.
type seqRNG struct {
	values []int
	idx    int
}

func (r *seqRNG) Intn(n int) int {
	v := r.values[r.idx%len(r.values)] % n
	r.idx++
	return v
}

// outcomesRNG makes a ThrowGenerator yield the given outcomes in order.
func outcomesRNG(outcomes ...domain.ThrowOutcome) *seqRNG {
	r := &seqRNG{}
	for _, o := range outcomes {
		r.values = append(r.values, slices.Index(domain.Outcomes[:], o))
	}
	return r
}

type fixedRNG struct{ val int }

func (r fixedRNG) Intn(n int) int { return r.val % n }

// fakeTeller answers with the configured funcs and counts calls.
type fakeTeller struct {
	comment func(ctx context.Context, in ports.ThrowInput) (string, error)
	card    func(ctx context.Context, in ports.CardInput) (domain.VerdictCard, error)

	mu         sync.Mutex
	throwCalls int
	cardCalls  int
}

func (f *fakeTeller) CommentOnThrow(ctx context.Context, in ports.ThrowInput) (string, error) {
	f.mu.Lock()
	f.throwCalls++
	f.mu.Unlock()
	return f.comment(ctx, in)
}

func (f *fakeTeller) ProduceCard(ctx context.Context, in ports.CardInput) (domain.VerdictCard, error) {
	f.mu.Lock()
	f.cardCalls++
	f.mu.Unlock()
	return f.card(ctx, in)
}

func (f *fakeTeller) calls() (throws, cards int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.throwCalls, f.cardCalls
}

func failingTeller(err error) *fakeTeller {
	return &fakeTeller{
		comment: func(context.Context, ports.ThrowInput) (string, error) { return "", err },
		card: func(context.Context, ports.CardInput) (domain.VerdictCard, error) {
			return domain.VerdictCard{}, err
		},
	}
}

// blockUntilDone never answers on its own; it returns when ctx ends.
func blockUntilDone(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

// fakeBank is a tiny FallbackBank with recognisable texts.
type fakeBank struct{}

func (fakeBank) ThrowTexts(o domain.ThrowOutcome) []string {
	return []string{string(o) + "-1", string(o) + "-2", string(o) + "-3", string(o) + "-4"}
}

func (fakeBank) Card(v domain.Verdict) domain.VerdictCard {
	s := string(v)
	return domain.VerdictCard{
		Title: s + " title", Subtitle: s + " subtitle", StampText: s + " stamp",
		Interpretation: s + " interpretation", SummaryText: s + " summary", Verdict: v,
	}
}

func (fakeBank) Roasts() []string { return []string{"roast"} }

// fakeClock fires timers only when the test advances it.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 17, 15, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) ports.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward and runs due callbacks on the caller's goroutine.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	slices.SortStableFunc(due, func(a, b *fakeTimer) int { return a.at.Compare(b.at) })
	for _, t := range due {
		t.f()
	}
}

// pending counts timers that have neither fired nor been stopped.
func (c *fakeClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
