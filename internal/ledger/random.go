package ledger

import (
	"math/rand/v2"

	"github.com/shopspring/decimal"
)

// Source supplies the randomness behind every synthesized figure
// (customer counts, padded counts, pay-out). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// NewSource returns a deterministic generator for the given seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Uniform draws a float uniformly from [lo, hi).
func Uniform(src Source, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + src.Float64()*(hi-lo)
}

// UniformAmount draws a money amount from [lo, hi) rounded to cents.
func UniformAmount(src Source, lo, hi float64) decimal.Decimal {
	return decimal.NewFromFloat(Uniform(src, lo, hi)).Round(2)
}

// IntBetween draws an integer uniformly from the closed range [lo, hi].
func IntBetween(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.IntN(hi-lo+1)
}
