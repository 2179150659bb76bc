package rng

import "math/rand/v2"

// Std delegates to math/rand/v2 (auto-seeded). It is safe for concurrent use.
type Std struct{}

func (Std) Intn(n int) int { return rand.IntN(n) }
