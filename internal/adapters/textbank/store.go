package textbank

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/randomtoy/moonblock-go/internal/domain"
)

//go:embed data/fallback.yaml
var fallbackYAML []byte

// minThrowTexts keeps the fallback comments from repeating too obviously.
const minThrowTexts = 4

type bankFile struct {
	Throws map[domain.ThrowOutcome][]string      `yaml:"throws"`
	Cards  map[domain.Verdict]domain.VerdictCard `yaml:"cards"`
	Roasts []string                              `yaml:"roasts"`
}

// Bank is the fallback text bank. It is immutable after Load.
type Bank struct {
	throws map[domain.ThrowOutcome][]string
	cards  map[domain.Verdict]domain.VerdictCard
	roasts []string
}

// Load parses the embedded bank.
func Load() (*Bank, error) {
	return Parse(fallbackYAML)
}

// Parse builds a bank from YAML and checks that every outcome and verdict
// is covered.
func Parse(raw []byte) (*Bank, error) {
	var f bankFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse fallback bank: %w", err)
	}

	for _, o := range domain.Outcomes {
		if n := len(f.Throws[o]); n < minThrowTexts {
			return nil, fmt.Errorf("fallback bank: %s has %d texts, need at least %d", o, n, minThrowTexts)
		}
	}
	for _, v := range []domain.Verdict{domain.Proceed, domain.Hold, domain.Defer} {
		card, ok := f.Cards[v]
		if !ok {
			return nil, fmt.Errorf("fallback bank: missing card for %s", v)
		}
		card.Verdict = v
		card.Source = domain.SourceFallback
		if !card.Complete() {
			return nil, fmt.Errorf("fallback bank: card for %s has empty fields", v)
		}
		f.Cards[v] = card
	}

	return &Bank{throws: f.Throws, cards: f.Cards, roasts: f.Roasts}, nil
}

func (b *Bank) ThrowTexts(o domain.ThrowOutcome) []string {
	return b.throws[o]
}

func (b *Bank) Card(v domain.Verdict) domain.VerdictCard {
	return b.cards[v]
}

func (b *Bank) Roasts() []string {
	return b.roasts
}
