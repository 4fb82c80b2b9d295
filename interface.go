package bluenoise

// Rand is the source of randomness a sampler draws from.
// Implementations need not be safe for concurrent use; a sampler owns
// its Rand outright.
type Rand interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64

	// Range returns a uniform value in [lo, hi).
	Range(lo, hi float64) float64

	// Seed resets the generator so it replays the stream for seed.
	Seed(seed int64)

	// Clone returns an independent generator in the same state, so both
	// produce the same values from here on without affecting each other.
	Clone() Rand
}
