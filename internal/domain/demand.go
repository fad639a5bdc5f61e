package domain

import (
	"math/rand/v2"
	"sync"
)

// RandomDemandSource draws demand coefficients uniformly at random.
// The generator is seeded once per process and shared by all requests.
type RandomDemandSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomDemandSource creates a demand source with a fresh random seed.
func NewRandomDemandSource() *RandomDemandSource {
	return &RandomDemandSource{
		mu:  sync.Mutex{},
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), //nolint:gosec // not security sensitive
	}
}

// Sample returns a coefficient in [minCoeff, maxCoeff].
func (s *RandomDemandSource) Sample(minCoeff, maxCoeff float64) float64 {
	if maxCoeff <= minCoeff {
		return minCoeff
	}

	s.mu.Lock()
	u := s.rng.Float64()
	s.mu.Unlock()

	return minCoeff + u*(maxCoeff-minCoeff)
}

// FixedDemand always returns the same coefficient regardless of the range.
type FixedDemand float64

// Sample returns the fixed coefficient.
func (f FixedDemand) Sample(_, _ float64) float64 {
	return float64(f)
}
