package domain

// ThrowGenerator casts the moon blocks. It holds no state of its own and
// can be shared across sessions.
type ThrowGenerator struct {
	rng RNG
}

func NewThrowGenerator(rng RNG) ThrowGenerator {
	return ThrowGenerator{rng: rng}
}

// Next returns one outcome, uniformly distributed over Outcomes.
func (g ThrowGenerator) Next() ThrowOutcome {
	return Outcomes[g.rng.Intn(len(Outcomes))]
}

// ParseOutcome accepts the canonical symbols and the traditional names
// (SHENG, XIAO, YIN) used by older clients and by the language model.
func ParseOutcome(s string) (ThrowOutcome, error) {
	switch s {
	case "AFFIRM", "SHENG":
		return Affirm, nil
	case "DOUBT", "XIAO":
		return Doubt, nil
	case "DENY", "YIN":
		return Deny, nil
	}
	return "", ErrInvalidOutcome
}

// ParseOutcomes parses a full ritual worth of outcomes.
func ParseOutcomes(raw []string) ([ThrowsPerRitual]ThrowOutcome, error) {
	var out [ThrowsPerRitual]ThrowOutcome
	if len(raw) != ThrowsPerRitual {
		return out, ErrWrongThrowCount
	}
	for i, s := range raw {
		o, err := ParseOutcome(s)
		if err != nil {
			return out, err
		}
		out[i] = o
	}
	return out, nil
}

// Name returns the traditional Chinese name of the outcome.
func (o ThrowOutcome) Name() string {
	switch o {
	case Affirm:
		return "圣杯"
	case Deny:
		return "阴杯"
	default:
		return "笑杯"
	}
}
