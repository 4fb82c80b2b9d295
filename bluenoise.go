// Package bluenoise generates 2D points that are never closer than a given
// radius to one another (Poisson disk sampling), using Bridson's algorithm
// with a background grid so each candidate is checked in constant time.
//
// Points are produced lazily; call Next (or Take / All) for as many as you
// need. A Sampler covers a clamped rectangle, a ToroidalSampler a rectangle
// whose edges wrap, so its output can be tiled seamlessly.
package bluenoise

import (
	"iter"
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/bluenoise/internal/active"
	"github.com/voidshard/bluenoise/internal/grid"
)

// space decides how candidates relate to the domain: where they end up,
// how far apart two points are & how the background grid is laid out.
type space interface {
	// place maps a raw candidate into the domain, false if it should be
	// thrown away.
	place(p model2d.Coord) (model2d.Coord, bool)

	// distSq is the squared distance between two points in the domain.
	distSq(a, b model2d.Coord) float64

	// grid returns an empty background grid for the given radius.
	grid(radius float64) (*grid.Grid, error)
}

// rect is the plain clamped rectangle [0,width]x[0,height].
type rect struct {
	width  float64
	height float64
}

func (r *rect) place(p model2d.Coord) (model2d.Coord, bool) {
	if p.X < 0 || p.X > r.width || p.Y < 0 || p.Y > r.height {
		return p, false
	}
	return p, true
}

func (r *rect) distSq(a, b model2d.Coord) float64 {
	d := b.Sub(a)
	return d.Dot(d)
}

func (r *rect) grid(radius float64) (*grid.Grid, error) {
	return grid.Bounded(r.width, r.height, radius)
}

// Sampler produces blue noise inside a clamped rectangle.
// It is not safe for concurrent use.
type Sampler struct {
	cfg  Config
	seed int64

	space  space
	rng    Rand
	grid   *grid.Grid
	active *active.List

	// squared min radius, what the grid compares against
	radiusSq float64

	// started is set once the first point has been handed out,
	// exhausted once there are no active points left.
	started   bool
	exhausted bool
}

// New returns a Sampler for the [0,Width]x[0,Height] rectangle.
func New(cfg *Config) (*Sampler, error) {
	valid, err := cfg.validate()
	if err != nil {
		return nil, err
	}
	return newSampler(valid, &rect{width: valid.Width, height: valid.Height})
}

// newSampler builds the grid & rng for an already validated config.
func newSampler(cfg Config, sp space) (*Sampler, error) {
	g, err := sp.grid(cfg.MinRadius)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidParameter, "min radius %v over %vx%v: %v", cfg.MinRadius, cfg.Width, cfg.Height, err)
	}

	s := &Sampler{
		cfg:      cfg,
		seed:     cfg.Seed,
		space:    sp,
		grid:     g,
		active:   active.New(),
		radiusSq: cfg.MinRadius * cfg.MinRadius,
	}

	switch {
	case cfg.Rand != nil:
		s.rng = cfg.Rand
		s.seed, s.cfg.Seed = 0, 0
	case cfg.Seed != 0:
		s.rng = NewRand(cfg.Seed)
	default:
		s.rng, s.seed = NewEntropyRand()
		s.cfg.Seed = s.seed
	}
	s.cfg.Rand = nil // Config() hands out copies, our rng stays ours

	return s, nil
}

// Next returns the next point, or false once no more points fit.
// After returning false it always returns false until Reset.
func (s *Sampler) Next() (model2d.Coord, bool) {
	if s.exhausted {
		return model2d.Coord{}, false
	}

	if !s.started {
		// the grid is empty, anywhere will do
		s.started = true
		p := model2d.XY(s.rng.Range(0, s.cfg.Width), s.rng.Range(0, s.cfg.Height))
		s.accept(p)
		return p, true
	}

	for !s.active.IsEmpty() {
		i := s.active.PickRandom(s.rng.Float64())
		parent := s.active.At(i)

		for n := 0; n < s.cfg.MaxSamples; n++ {
			p, ok := s.space.place(s.nearby(parent))
			if !ok {
				continue
			}
			if s.grid.IsFarEnough(p, s.radiusSq, s.space.distSq) {
				s.accept(p)
				return p, true
			}
		}

		// nothing fits around this parent, it's done
		s.active.Remove(i)
	}

	s.exhausted = true
	return model2d.Coord{}, false
}

// nearby returns a random point in the annulus between one & two radii
// around parent.
// Angle then radius, each drawn fresh per attempt.
func (s *Sampler) nearby(parent model2d.Coord) model2d.Coord {
	theta := s.rng.Range(0, 2*math.Pi)
	r := s.rng.Range(s.cfg.MinRadius, 2*s.cfg.MinRadius)
	return parent.Add(model2d.XY(r*math.Cos(theta), r*math.Sin(theta)))
}

// accept records p in the grid & marks it as a potential parent.
func (s *Sampler) accept(p model2d.Coord) {
	s.grid.Insert(p)
	s.active.Push(p)
}

// Take returns up to n points, fewer if the sampler runs out.
func (s *Sampler) Take(n int) []model2d.Coord {
	out := []model2d.Coord{}
	for len(out) < n {
		p, ok := s.Next()
		if !ok {
			break
		}
		out = append(out, p)
	}
	return out
}

// Collect returns every remaining point.
func (s *Sampler) Collect() []model2d.Coord {
	out := []model2d.Coord{}
	for p := range s.All() {
		out = append(out, p)
	}
	return out
}

// All returns an iterator over the remaining points.
// Breaking out of the loop early leaves the sampler where it stopped.
func (s *Sampler) All() iter.Seq[model2d.Coord] {
	return func(yield func(model2d.Coord) bool) {
		for {
			p, ok := s.Next()
			if !ok || !yield(p) {
				return
			}
		}
	}
}

// Reset forgets every point so sampling starts over.
// The rng is not reset; call WithSeed too for a repeatable restart.
func (s *Sampler) Reset() *Sampler {
	s.grid.Clear()
	s.active.Clear()
	s.started = false
	s.exhausted = false
	return s
}

// WithSeed reseeds the rng. Points already produced are kept.
func (s *Sampler) WithSeed(seed int64) *Sampler {
	s.rng.Seed(seed)
	s.seed = seed
	s.cfg.Seed = seed
	return s
}

// SetSamples sets the number of candidates tried around each parent.
func (s *Sampler) SetSamples(n int) error {
	if n < 1 {
		return errors.Wrapf(ErrInvalidParameter, "max samples must be >= 1, got %d", n)
	}
	if s.started {
		return errors.Wrap(ErrConfigLocked, "max samples")
	}
	s.cfg.MaxSamples = n
	return nil
}

// SetMinRadius changes the minimum distance between points, rebuilding
// the background grid to suit.
func (s *Sampler) SetMinRadius(r float64) error {
	if !positive(r) {
		return errors.Wrapf(ErrInvalidParameter, "min radius must be > 0, got %v", r)
	}
	if s.started {
		return errors.Wrap(ErrConfigLocked, "min radius")
	}
	g, err := s.space.grid(r)
	if err != nil {
		return errors.Wrapf(ErrInvalidParameter, "min radius %v over %vx%v: %v", r, s.cfg.Width, s.cfg.Height, err)
	}
	s.grid = g
	s.cfg.MinRadius = r
	s.radiusSq = r * r
	return nil
}

// Config returns the settings in use, defaults filled in.
func (s *Sampler) Config() Config {
	return s.cfg
}

// Seed returns the seed last applied to the rng.
// This is 0 if a Rand was supplied & WithSeed hasn't been called since.
func (s *Sampler) Seed() int64 {
	return s.seed
}

// Len returns how many points have been produced since the last Reset.
func (s *Sampler) Len() int {
	return s.grid.Len()
}

// Exhausted returns true once no more points can be placed.
func (s *Sampler) Exhausted() bool {
	return s.exhausted
}

// Clone returns an independent copy of the sampler, rng state included;
// both will produce the same points from here on.
func (s *Sampler) Clone() *Sampler {
	cp := *s
	cp.rng = s.rng.Clone()
	cp.grid = s.grid.Clone()
	cp.active = s.active.Clone()
	return &cp
}
