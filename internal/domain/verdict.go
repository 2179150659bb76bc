package domain

// Classify maps three outcomes to a verdict. Only the counts matter:
// two or more Affirm wins, then two or more Deny, and anything else defers.
func Classify(outcomes [ThrowsPerRitual]ThrowOutcome) Verdict {
	var affirm, deny int
	for _, o := range outcomes {
		switch o {
		case Affirm:
			affirm++
		case Deny:
			deny++
		}
	}
	switch {
	case affirm >= 2:
		return Proceed
	case deny >= 2:
		return Hold
	default:
		return Defer
	}
}

// ParseVerdict accepts the canonical symbols and the QUIT/STAY/MAYBE names
// the language model is prompted with.
func ParseVerdict(s string) (Verdict, error) {
	switch s {
	case "PROCEED", "QUIT":
		return Proceed, nil
	case "HOLD", "STAY":
		return Hold, nil
	case "DEFER", "MAYBE":
		return Defer, nil
	}
	return "", ErrServiceError
}
