package bluenoise

import (
	"math"
	"math/rand/v2"
)

// pcgRand is the default Rand, a PCG generator from math/rand/v2.
type pcgRand struct {
	src *rand.PCG
	rng *rand.Rand
}

// NewRand returns a Rand seeded with the given value.
// The same seed always yields the same stream.
func NewRand(seed int64) Rand {
	src := rand.NewPCG(uint64(seed), pcgStream)
	return &pcgRand{src: src, rng: rand.New(src)}
}

// NewEntropyRand returns a Rand seeded from the runtime's (OS seeded)
// global generator, along with the seed used so a run can be replayed.
func NewEntropyRand() (Rand, int64) {
	seed := entropySeed()
	return NewRand(seed), seed
}

// pcgStream is the fixed second PCG word; only the first is user controlled.
const pcgStream = 0x9e3779b97f4a7c15

// entropySeed returns a random non-zero seed.
// Zero is reserved in Config to mean "pick one for me".
func entropySeed() int64 {
	for {
		if s := rand.Int64(); s != 0 {
			return s
		}
	}
}

// Float64 returns a uniform value in [0, 1).
func (r *pcgRand) Float64() float64 {
	return r.rng.Float64()
}

// Range returns a uniform value in [lo, hi).
func (r *pcgRand) Range(lo, hi float64) float64 {
	v := lo + r.rng.Float64()*(hi-lo)
	if v >= hi && hi > lo {
		// lo + u*(hi-lo) can round up to hi
		v = math.Nextafter(hi, lo)
	}
	return v
}

// Seed resets the generator to the start of the given seed's stream.
func (r *pcgRand) Seed(seed int64) {
	r.src.Seed(uint64(seed), pcgStream)
}

// Clone returns a generator that continues from the current state
// independently of r.
func (r *pcgRand) Clone() Rand {
	src := *r.src
	return &pcgRand{src: &src, rng: rand.New(&src)}
}
