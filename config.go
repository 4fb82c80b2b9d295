package bluenoise

import (
	"math"

	"github.com/pkg/errors"
)

// DefaultMaxSamples is the number of candidates tried around a parent
// before it is retired, if Config.MaxSamples is not set.
// Bridson suggests 30; a handful is far quicker and the result is
// visually indistinguishable.
const DefaultMaxSamples = 4

var (
	// ErrInvalidParameter implies a dimension, radius or sample count
	// that cannot produce a sensible grid.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrConfigLocked implies an attempt to change the radius or sample
	// count after points have been produced. Doing so would break the
	// spacing of points we've already handed out.
	ErrConfigLocked = errors.New("configuration cannot change once sampling has started")
)

// Config holds the settings for a sampler.
// Width, Height & MinRadius are required.
type Config struct {
	// Width & Height of the domain, points fall in [0,Width]x[0,Height]
	// (or [0,Width)x[0,Height) for a toroidal sampler).
	Width  float64
	Height float64

	// MinRadius is the minimum distance between any two points.
	MinRadius float64

	// MaxSamples is how many candidates we try around a parent point
	// before giving up on it. Higher values pack points more tightly at
	// the cost of speed. DefaultMaxSamples if 0.
	MaxSamples int

	// Seed for rng (random number chosen if not set).
	// Ignored if Rand is given.
	Seed int64

	// Rand, optional, supplies randomness directly.
	// The sampler takes ownership; don't share it.
	Rand Rand
}

// validate checks values & fills in defaults, returning a copy.
func (c *Config) validate() (Config, error) {
	if c == nil {
		return Config{}, errors.Wrap(ErrInvalidParameter, "nil config")
	}
	cfg := *c

	if !positive(cfg.Width) {
		return cfg, errors.Wrapf(ErrInvalidParameter, "width must be > 0, got %v", cfg.Width)
	}
	if !positive(cfg.Height) {
		return cfg, errors.Wrapf(ErrInvalidParameter, "height must be > 0, got %v", cfg.Height)
	}
	if !positive(cfg.MinRadius) {
		return cfg, errors.Wrapf(ErrInvalidParameter, "min radius must be > 0, got %v", cfg.MinRadius)
	}
	if cfg.MaxSamples < 0 {
		return cfg, errors.Wrapf(ErrInvalidParameter, "max samples must be >= 1, got %d", cfg.MaxSamples)
	}
	if cfg.MaxSamples == 0 {
		cfg.MaxSamples = DefaultMaxSamples
	}

	return cfg, nil
}

// positive returns if v is a finite number > 0
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
