// Package rng provides the deterministic xorshift64 stream behind every
// randomized decision in the dungeon: floor layout, encounter variety and
// per-enemy behaviour. Each subsystem owns its own stream; there is no
// shared or global state.
package rng

// XorShift is a deterministic pseudo-random number generator (xorshift64).
// The zero value is not usable; construct with New.
type XorShift struct {
	state uint64
}

// New creates a stream for the given seed. Seed 0 would lock the generator
// at zero forever, so it is remapped to 1.
func New(seed uint64) *XorShift {
	if seed == 0 {
		seed = 1
	}
	return &XorShift{state: seed}
}

// Next returns the next random uint64.
func (r *XorShift) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Range returns a random int in [min, max], both ends inclusive.
// Returns min when max <= min.
func (r *XorShift) Range(min, max int) int {
	if max <= min {
		return min
	}
	span := uint64(max-min) + 1
	return min + int(r.Next()%span)
}

// Intn returns a random int in [0, n).
func (r *XorShift) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float returns a random float64 in [0, 1).
func (r *XorShift) Float() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Chance reports true with probability p.
func (r *XorShift) Chance(p float64) bool {
	return r.Float() < p
}

// State returns the current internal state, for snapshots.
func (r *XorShift) State() uint64 {
	return r.state
}
