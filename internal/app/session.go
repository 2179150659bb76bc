package app

import (
	"github.com/google/uuid"

	"github.com/randomtoy/moonblock-go/internal/domain"
)

// Phase is where the ritual currently stands.
type Phase string

const (
	PhaseIdle          Phase = "IDLE"
	PhaseAwaitingThrow Phase = "AWAITING_THROW"
	PhaseThrowInFlight Phase = "THROW_IN_FLIGHT"
	PhaseThrowSettled  Phase = "THROW_SETTLED"
	PhaseFinalizing    Phase = "FINALIZING"
	PhaseComplete      Phase = "COMPLETE"
)

// ritualSession is one ritual attempt. It is owned by the Sequencer and
// never leaves it; callers see Snapshots.
type ritualSession struct {
	id        uuid.UUID
	complaint string
	throws    []domain.ThrowRecord
	card      *domain.VerdictCard
	phase     Phase
	// lastThrow is the index of the settled throw on display, or -1.
	lastThrow int
}

func newRitualSession(complaint string) *ritualSession {
	return &ritualSession{
		id:        uuid.New(),
		complaint: complaint,
		throws:    make([]domain.ThrowRecord, 0, domain.ThrowsPerRitual),
		phase:     PhaseAwaitingThrow,
		lastThrow: -1,
	}
}

func (s *ritualSession) outcomes() [domain.ThrowsPerRitual]domain.ThrowOutcome {
	var out [domain.ThrowsPerRitual]domain.ThrowOutcome
	for i, t := range s.throws {
		out[i] = t.Outcome
	}
	return out
}

// Snapshot is a read-only copy of the sequencer state.
type Snapshot struct {
	SessionID string               `json:"session_id,omitempty"`
	Complaint string               `json:"complaint,omitempty"`
	Phase     Phase                `json:"phase"`
	Throws    []domain.ThrowRecord `json:"throws"`
	LastThrow *domain.ThrowRecord  `json:"last_throw"`
	Card      *domain.VerdictCard  `json:"card"`

	// Revision increases with every state change.
	Revision uint64 `json:"revision"`
}

func (s *ritualSession) snapshot(rev uint64) Snapshot {
	snap := Snapshot{
		SessionID: s.id.String(),
		Complaint: s.complaint,
		Phase:     s.phase,
		Throws:    make([]domain.ThrowRecord, len(s.throws)),
		Revision:  rev,
	}
	for i, t := range s.throws {
		snap.Throws[i] = copyRecord(t)
	}
	if s.lastThrow >= 0 {
		last := snap.Throws[s.lastThrow]
		snap.LastThrow = &last
	}
	if s.card != nil {
		card := *s.card
		snap.Card = &card
	}
	return snap
}

func idleSnapshot(rev uint64) Snapshot {
	return Snapshot{Phase: PhaseIdle, Throws: []domain.ThrowRecord{}, Revision: rev}
}

func copyRecord(t domain.ThrowRecord) domain.ThrowRecord {
	if t.Commentary != nil {
		text := *t.Commentary
		t.Commentary = &text
	}
	return t
}
