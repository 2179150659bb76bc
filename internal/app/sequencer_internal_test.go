package app

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomtoy/moonblock-go/internal/domain"
	"github.com/randomtoy/moonblock-go/internal/ports"
)

type zeroRNG struct{}

func (zeroRNG) Intn(int) int { return 0 }

type emptyBank struct{}

func (emptyBank) ThrowTexts(domain.ThrowOutcome) []string { return nil }
func (emptyBank) Card(v domain.Verdict) domain.VerdictCard { return domain.VerdictCard{Verdict: v} }
func (emptyBank) Roasts() []string { return nil }

// stepClock runs the oldest pending callback on demand.
type stepClock struct {
	mu      sync.Mutex
	pending []func()
}

type noopTimer struct{}

func (noopTimer) Stop() bool { return false }

func (c *stepClock) Now() time.Time { return time.Time{} }

func (c *stepClock) AfterFunc(_ time.Duration, f func()) ports.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, f)
	return noopTimer{}
}

func (c *stepClock) fireNext() {
	c.mu.Lock()
	f := c.pending[0]
	c.pending = c.pending[1:]
	c.mu.Unlock()
	f()
}

func (s *Sequencer) armedTimers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func TestSequencer_FiredTimersAreForgotten(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := &stepClock{}
	oracle := NewOracle(nil, emptyBank{}, zeroRNG{}, DefaultTiming(), logger)
	seq := NewSequencer(oracle, domain.NewThrowGenerator(zeroRNG{}), DefaultTiming(), logger, WithClock(clock))
	t.Cleanup(seq.Close)

	_, err := seq.Begin("")
	require.NoError(t, err)
	for range domain.ThrowsPerRitual {
		_, err := seq.RequestThrow()
		require.NoError(t, err)
		assert.Equal(t, 1, seq.armedTimers())
		clock.fireNext()
	}
	// Only the finalize timer is left after the third settle.
	assert.Equal(t, 1, seq.armedTimers())

	clock.fireNext()
	assert.Zero(t, seq.armedTimers())
	require.Eventually(t, func() bool { return seq.Snapshot().Phase == PhaseComplete }, 2*time.Second, 5*time.Millisecond)
}
