package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/randomtoy/moonblock-go/internal/domain"
	"github.com/randomtoy/moonblock-go/internal/ports"
)

// Listener receives a snapshot after every state change. Deliveries can
// race each other; drop snapshots whose Revision is not newer than the last.
type Listener func(Snapshot)

// Sequencer drives the three-throw ritual for a single session.
//
// Every transition runs under mu and to completion. Timer callbacks and
// commentary fetches carry the id of the session that started them and are
// dropped if that session is no longer current.
type Sequencer struct {
	oracle   *Oracle
	gen      domain.ThrowGenerator
	clock    ports.Clock
	timing   Timing
	logger   *slog.Logger
	listener Listener

	mu       sync.Mutex
	session  *ritualSession
	ctx      context.Context // canceled when session is discarded
	cancel   context.CancelFunc
	timers   map[uint64]ports.Timer
	timerSeq uint64
	revision uint64

	inflight sync.WaitGroup
}

// SequencerOption customizes a Sequencer.
type SequencerOption func(*Sequencer)

// WithListener registers the presentation callback.
func WithListener(l Listener) SequencerOption {
	return func(s *Sequencer) { s.listener = l }
}

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c ports.Clock) SequencerOption {
	return func(s *Sequencer) { s.clock = c }
}

func NewSequencer(oracle *Oracle, gen domain.ThrowGenerator, timing Timing, logger *slog.Logger, opts ...SequencerOption) *Sequencer {
	s := &Sequencer{
		oracle: oracle,
		gen:    gen,
		clock:  SystemClock{},
		timing: timing,
		logger: logger,
		timers: make(map[uint64]ports.Timer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current state.
func (s *Sequencer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Begin starts a new ritual for complaint. It is only valid from IDLE.
func (s *Sequencer) Begin(complaint string) (Snapshot, error) {
	s.mu.Lock()
	if s.session != nil {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, domain.ErrInvalidSessionState
	}
	if complaint == "" {
		complaint = domain.DefaultComplaint
	}
	s.session = newRitualSession(complaint)
	s.ctx, s.cancel = context.WithCancel(context.Background())
	snap := s.commitLocked()
	s.mu.Unlock()

	s.logger.Info("ritual started", "session_id", snap.SessionID)
	s.emit(snap)
	return snap, nil
}

// RequestThrow casts the blocks. It is only valid from AWAITING_THROW;
// requests while a throw is in flight, after the third throw, or without a
// session are ignored and return ErrInvalidSessionState along with the
// unchanged snapshot.
func (s *Sequencer) RequestThrow() (Snapshot, error) {
	s.mu.Lock()
	sess := s.session
	if sess == nil || sess.phase != PhaseAwaitingThrow || len(sess.throws) >= domain.ThrowsPerRitual {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, domain.ErrInvalidSessionState
	}

	idx := len(sess.throws)
	outcome := s.gen.Next()
	sess.throws = append(sess.throws, domain.ThrowRecord{Index: idx, Outcome: outcome})
	sess.phase = PhaseThrowInFlight
	sess.lastThrow = -1

	s.fetchCommentLocked(sess, idx)
	id := sess.id
	s.scheduleLocked(s.timing.ThrowDwell, func() { s.settle(id, idx) })
	snap := s.commitLocked()
	s.mu.Unlock()

	s.logger.Debug("throw cast", "session_id", snap.SessionID, "index", idx, "outcome", outcome)
	s.emit(snap)
	return snap, nil
}

// Reset discards the current session from any phase. In-flight calls are
// canceled and their late results ignored.
func (s *Sequencer) Reset() Snapshot {
	s.mu.Lock()
	hadSession := s.session != nil
	s.discardLocked()
	snap := s.commitLocked()
	s.mu.Unlock()

	if hadSession {
		s.logger.Info("ritual reset")
	}
	s.emit(snap)
	return snap
}

// Close resets the sequencer and waits for in-flight calls to return.
func (s *Sequencer) Close() {
	s.mu.Lock()
	s.discardLocked()
	s.mu.Unlock()
	s.inflight.Wait()
}

func (s *Sequencer) settle(id uuid.UUID, idx int) {
	s.mu.Lock()
	sess := s.current(id)
	if sess == nil || sess.phase != PhaseThrowInFlight || len(sess.throws) != idx+1 {
		s.mu.Unlock()
		return
	}
	sess.phase = PhaseThrowSettled
	sess.lastThrow = idx
	snaps := []Snapshot{s.commitLocked()}
	if len(sess.throws) == domain.ThrowsPerRitual {
		s.scheduleLocked(s.timing.FinalizeDelay, func() { s.finalize(id) })
	} else {
		// The settled throw stays on display while the next one is awaited.
		sess.phase = PhaseAwaitingThrow
		snaps = append(snaps, s.commitLocked())
	}
	s.mu.Unlock()

	for _, snap := range snaps {
		s.emit(snap)
	}
}

func (s *Sequencer) finalize(id uuid.UUID) {
	s.mu.Lock()
	sess := s.current(id)
	if sess == nil || sess.phase != PhaseThrowSettled || len(sess.throws) != domain.ThrowsPerRitual {
		s.mu.Unlock()
		return
	}
	sess.phase = PhaseFinalizing
	sess.lastThrow = -1
	in := ports.CardInput{Complaint: sess.complaint, Outcomes: sess.outcomes()}
	ctx := s.ctx
	snap := s.commitLocked()
	s.inflight.Add(1)
	s.mu.Unlock()

	s.emit(snap)

	go func() {
		defer s.inflight.Done()
		card := s.oracle.ProduceCard(ctx, in)
		s.applyCard(id, card)
	}()
}

func (s *Sequencer) applyCard(id uuid.UUID, card domain.VerdictCard) {
	s.mu.Lock()
	sess := s.current(id)
	if sess == nil || sess.phase != PhaseFinalizing {
		s.mu.Unlock()
		return
	}
	sess.card = &card
	sess.phase = PhaseComplete
	snap := s.commitLocked()
	s.mu.Unlock()

	s.logger.Info("ritual complete",
		"session_id", snap.SessionID,
		"verdict", card.Verdict,
		"source", card.Source,
	)
	s.emit(snap)
}

func (s *Sequencer) fetchCommentLocked(sess *ritualSession, idx int) {
	id := sess.id
	in := ports.ThrowInput{Complaint: sess.complaint, Outcome: sess.throws[idx].Outcome, Index: idx}
	ctx := s.ctx
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		c := s.oracle.CommentOnThrow(ctx, in)
		s.applyComment(id, idx, c.Text)
	}()
}

func (s *Sequencer) applyComment(id uuid.UUID, idx int, text string) {
	s.mu.Lock()
	sess := s.current(id)
	if sess == nil || idx >= len(sess.throws) || sess.throws[idx].Commentary != nil {
		s.mu.Unlock()
		return
	}
	sess.throws[idx].Commentary = &text
	snap := s.commitLocked()
	s.mu.Unlock()

	s.emit(snap)
}

// current returns the session if it is still the one identified by id.
func (s *Sequencer) current(id uuid.UUID) *ritualSession {
	if s.session == nil || s.session.id != id {
		return nil
	}
	return s.session
}

// scheduleLocked arms a timer that forgets itself once it fires, so only
// pending timers are left for discardLocked to stop.
func (s *Sequencer) scheduleLocked(d time.Duration, f func()) {
	s.timerSeq++
	key := s.timerSeq
	s.timers[key] = s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, key)
		s.mu.Unlock()
		f()
	})
}

func (s *Sequencer) discardLocked() {
	if s.cancel != nil {
		s.cancel()
		s.ctx, s.cancel = nil, nil
	}
	for _, t := range s.timers {
		t.Stop()
	}
	clear(s.timers)
	s.session = nil
}

func (s *Sequencer) commitLocked() Snapshot {
	s.revision++
	return s.snapshotLocked()
}

func (s *Sequencer) snapshotLocked() Snapshot {
	if s.session == nil {
		return idleSnapshot(s.revision)
	}
	return s.session.snapshot(s.revision)
}

func (s *Sequencer) emit(snap Snapshot) {
	if s.listener != nil {
		s.listener(snap)
	}
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) AfterFunc(d time.Duration, f func()) ports.Timer {
	return time.AfterFunc(d, f)
}
