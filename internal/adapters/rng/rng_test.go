package rng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/randomtoy/moonblock-go/internal/adapters/rng"
	"github.com/randomtoy/moonblock-go/internal/domain"
)

var _ domain.RNG = rng.Std{}

func TestStd_InRange(t *testing.T) {
	seen := make(map[int]bool)
	for range 300 {
		v := rng.Std{}.Intn(3)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 3)
		seen[v] = true
	}
	assert.Len(t, seen, 3)
}
