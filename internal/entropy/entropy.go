// Package entropy supplies the codec's collision-fallback random value
// search with an injectable randomness source, so the same code path is
// deterministic under test and OS-seeded in production.
package entropy

import "math/rand"

// Source draws pseudo-random values in [0, n) for the collision fallback.
type Source struct {
	rng *rand.Rand
}

// New wraps an existing *rand.Rand. Tests pass a seeded source; production
// callers pass rand.New(rand.NewSource(time.Now().UnixNano())) or similar.
func New(rng *rand.Rand) *Source {
	return &Source{rng: rng}
}

// Intn draws a value in [0, n).
func (s *Source) Intn(n int) int {
	return s.rng.Intn(n)
}
