package bluenoise

import (
	"iter"
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/bluenoise/internal/grid"
)

// torus is a [0,width)x[0,height) rectangle whose opposite edges meet.
type torus struct {
	width  float64
	height float64
}

// place wraps p back into the domain; nothing is ever rejected.
func (t *torus) place(p model2d.Coord) (model2d.Coord, bool) {
	return model2d.XY(wrap(p.X, t.width), wrap(p.Y, t.height)), true
}

// distSq takes the shorter way round on each axis.
func (t *torus) distSq(a, b model2d.Coord) float64 {
	d := b.Sub(a)
	d = model2d.XY(math.Abs(d.X), math.Abs(d.Y))
	d = d.Min(model2d.XY(t.width, t.height).Sub(d))
	return d.Dot(d)
}

func (t *torus) grid(radius float64) (*grid.Grid, error) {
	return grid.Periodic(t.width, t.height, radius)
}

// wrap reduces v into [0, extent).
func wrap(v, extent float64) float64 {
	v = math.Mod(v, extent)
	if v < 0 {
		v += extent
	}
	if v >= extent {
		// a tiny negative v plus extent can round to extent, which is 0
		v = 0
	}
	return v
}

// ToroidalSampler produces blue noise on a rectangle that wraps at the
// edges, so the points can be tiled without seams. It is a Sampler that
// measures distance & places candidates around the wrap.
type ToroidalSampler struct {
	inner *Sampler
}

// NewToroidal returns a ToroidalSampler for [0,Width)x[0,Height).
func NewToroidal(cfg *Config) (*ToroidalSampler, error) {
	valid, err := cfg.validate()
	if err != nil {
		return nil, err
	}
	s, err := newSampler(valid, &torus{width: valid.Width, height: valid.Height})
	if err != nil {
		return nil, err
	}
	return &ToroidalSampler{inner: s}, nil
}

// NewToroidalWithRand is NewToroidal drawing from the given rng rather
// than one made from cfg.Seed.
func NewToroidalWithRand(cfg *Config, rng Rand) (*ToroidalSampler, error) {
	if cfg == nil {
		return nil, errors.Wrap(ErrInvalidParameter, "nil config")
	}
	if rng == nil {
		return nil, errors.Wrap(ErrInvalidParameter, "nil rand")
	}
	c := *cfg
	c.Rand = rng
	return NewToroidal(&c)
}

// Next returns the next point, or false once no more points fit.
func (t *ToroidalSampler) Next() (model2d.Coord, bool) {
	return t.inner.Next()
}

// Take returns up to n points, fewer if the sampler runs out.
func (t *ToroidalSampler) Take(n int) []model2d.Coord {
	return t.inner.Take(n)
}

// Collect returns every remaining point.
func (t *ToroidalSampler) Collect() []model2d.Coord {
	return t.inner.Collect()
}

// All returns an iterator over the remaining points.
func (t *ToroidalSampler) All() iter.Seq[model2d.Coord] {
	return t.inner.All()
}

// Reset forgets every point so sampling starts over, keeping rng state.
func (t *ToroidalSampler) Reset() *ToroidalSampler {
	t.inner.Reset()
	return t
}

// WithSeed reseeds the rng. Points already produced are kept.
func (t *ToroidalSampler) WithSeed(seed int64) *ToroidalSampler {
	t.inner.WithSeed(seed)
	return t
}

// SetSamples sets the number of candidates tried around each parent.
func (t *ToroidalSampler) SetSamples(n int) error {
	return t.inner.SetSamples(n)
}

// SetMinRadius changes the minimum distance between points.
func (t *ToroidalSampler) SetMinRadius(r float64) error {
	return t.inner.SetMinRadius(r)
}

// Config returns the settings in use.
func (t *ToroidalSampler) Config() Config {
	return t.inner.Config()
}

// Seed returns the seed last applied to the rng.
func (t *ToroidalSampler) Seed() int64 {
	return t.inner.Seed()
}

// Len returns how many points have been produced since the last Reset.
func (t *ToroidalSampler) Len() int {
	return t.inner.Len()
}

// Exhausted returns true once no more points can be placed.
func (t *ToroidalSampler) Exhausted() bool {
	return t.inner.Exhausted()
}

// Clone returns an independent copy of the sampler.
func (t *ToroidalSampler) Clone() *ToroidalSampler {
	return &ToroidalSampler{inner: t.inner.Clone()}
}

// Distance returns the wrapped distance between two points in the domain.
func (t *ToroidalSampler) Distance(a, b model2d.Coord) float64 {
	return math.Sqrt(t.inner.space.distSq(a, b))
}
