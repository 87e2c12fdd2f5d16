package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	seed int64
	r    *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{seed: seed, r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Seed returns the seed the generator was created or last reseeded with.
func (r *RNG) Seed() int64 { return r.seed }

// Reseed restarts the stream from the provided seed.
func (r *RNG) Reseed(seed int64) {
	r.seed = seed
	r.r = rand.New(rand.NewPCG(uint64(seed), 0))
}

// Bernoulli returns true with probability p.
func (r *RNG) Bernoulli(p float64) bool {
	return r.r.Float64() < p
}

// FillBernoulli fills buf with 0/1 values where each cell is 1 with probability p.
func FillBernoulli(r *RNG, buf []uint8, p float64) {
	for i := range buf {
		buf[i] = 0
		if r.Bernoulli(p) {
			buf[i] = 1
		}
	}
}
