// Package rng supplies the randomness used during game setup and epidemic
// restacks. The engine calls it in a fixed order so a recorded seed
// reproduces a full game; replay never touches it.
package rng

import "math/rand"

// Randomizer is the source of all in-game randomness. It works on indices
// so callers can shuffle or sample any slice type.
type Randomizer interface {
	// Shuffle permutes n elements using the provided swap callback.
	Shuffle(n int, swap func(i, j int))
	// Sample returns k distinct indices from [0, n), in draw order.
	// k is clamped to n.
	Sample(n, k int) []int
	// IntRange returns a value in [min, max], both bounds inclusive.
	IntRange(min, max int) int
}

type seeded struct {
	r *rand.Rand
}

// NewSeeded returns a Randomizer driven by a deterministic seed.
func NewSeeded(seed int64) Randomizer {
	return &seeded{r: rand.New(rand.NewSource(seed))}
}

func (s *seeded) Shuffle(n int, swap func(i, j int)) {
	s.r.Shuffle(n, swap)
}

func (s *seeded) Sample(n, k int) []int {
	if k > n {
		k = n
	}
	perm := s.r.Perm(n)
	return perm[:k]
}

func (s *seeded) IntRange(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + s.r.Intn(max-min+1)
}
