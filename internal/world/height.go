package world

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// HeightFunc returns the surface height (block Y) of column (x, z). It
// must be a pure function of its arguments.
type HeightFunc func(x, z int) int

// SineHeight is the default rolling-hills surface:
// floor(sin(x*0.1) * cos(z*0.1) * 3).
func SineHeight(x, z int) int {
	return int(math.Floor(math.Sin(float64(x)*0.1) * math.Cos(float64(z)*0.1) * 3))
}

// FlatHeight returns a HeightFunc with a constant surface.
func FlatHeight(h int) HeightFunc {
	return func(int, int) int { return h }
}

// PerlinHeight returns a seeded Perlin-noise surface with roughly the same
// amplitude as SineHeight. The noise table is built once, so the returned
// function stays pure.
func PerlinHeight(seed int64) HeightFunc {
	const (
		alpha = 2.0
		beta  = 2.0
		n     = 3
		scale = 1.0 / 24.0
		amp   = 4.0
	)
	p := perlin.NewPerlin(alpha, beta, n, seed)
	return func(x, z int) int {
		v := p.Noise2D(float64(x)*scale, float64(z)*scale)
		return int(math.Floor(v * amp))
	}
}
