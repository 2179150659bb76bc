package domain

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// ThrowOutcome is how the pair of moon blocks landed on a single throw.
type ThrowOutcome string

const (
	// Affirm is one face up, one face down.
	Affirm ThrowOutcome = "AFFIRM"
	// Doubt is both blocks in the "laughing" orientation.
	Doubt ThrowOutcome = "DOUBT"
	// Deny is both blocks in the opposite orientation.
	Deny ThrowOutcome = "DENY"
)

// Outcomes lists every throw outcome in a stable order.
var Outcomes = [...]ThrowOutcome{Affirm, Doubt, Deny}

func (o ThrowOutcome) Valid() bool {
	switch o {
	case Affirm, Doubt, Deny:
		return true
	}
	return false
}

// Verdict is the final recommendation drawn from three throws.
type Verdict string

const (
	Proceed Verdict = "PROCEED" // quit
	Hold    Verdict = "HOLD"    // stay
	Defer   Verdict = "DEFER"   // maybe
)

func (v Verdict) Valid() bool {
	switch v {
	case Proceed, Hold, Defer:
		return true
	}
	return false
}

// ThrowsPerRitual is the number of throws that make up one ritual.
const ThrowsPerRitual = 3

// ThrowRecord is one completed throw. Commentary is nil until the
// text service (or its fallback) answers.
type ThrowRecord struct {
	Index      int          `json:"index"`
	Outcome    ThrowOutcome `json:"outcome"`
	Commentary *string      `json:"commentary"`
}

// CardSource tells whether a card or comment came from the text service
// or from the static fallback bank.
type CardSource string

const (
	SourceService  CardSource = "service"
	SourceFallback CardSource = "fallback"
)

// VerdictCard is the final result card shown to the user.
type VerdictCard struct {
	Title          string     `json:"title" yaml:"title"`
	Subtitle       string     `json:"subtitle" yaml:"subtitle"`
	StampText      string     `json:"stamp" yaml:"stamp"`
	Interpretation string     `json:"interpretation" yaml:"interpretation"`
	SummaryText    string     `json:"summary" yaml:"summary"`
	Verdict        Verdict    `json:"verdict" yaml:"-"`
	Source         CardSource `json:"source" yaml:"-"`
}

// Complete reports whether every text field of the card is filled in.
func (c VerdictCard) Complete() bool {
	return c.Title != "" && c.Subtitle != "" && c.StampText != "" &&
		c.Interpretation != "" && c.SummaryText != "" && c.Verdict.Valid()
}
