// Package sim is the flappy simulation core: bird physics, obstacle
// spawning and scrolling, collision detection, scoring and the
// Menu/Playing/GameOver state machine, advanced one fixed tick at a time.
//
// The package is pure: no I/O, no clocks, no logging. All randomness comes
// from seeded generators owned by the World, so a seed plus the sequence of
// flap inputs reproduces a run exactly.
package sim

import "math/rand"

// Generator produces bounded pseudo-random values for obstacle gaps.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator with the given seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Reseed restarts the sequence from a new seed.
func (g *Generator) Reseed(seed int64) {
	g.rng.Seed(seed)
}

// Uniform returns a value in [lo, hi). An empty or inverted interval yields lo.
func (g *Generator) Uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Float64()*(hi-lo)
}

// Gap samples a gap size from [sizeMin, sizeMax] and a gap center such that
// the whole gap lies within [low, high]. The size is clamped to the available
// span, so the result never leaves the bounds regardless of the inputs.
func (g *Generator) Gap(sizeMin, sizeMax, low, high float64) (center, size float64) {
	span := max(high-low, 0)

	size = min(g.Uniform(sizeMin, sizeMax), span)
	size = max(size, 0)
	center = g.Uniform(low+size/2, high-size/2)
	return center, size
}
