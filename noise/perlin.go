package noise

import (
	"github.com/aquilax/go-perlin"
)

// harmonic scaling between octaves: each octave doubles the frequency
const perlinBeta = 2.

var _ Field = (*Perlin)(nil) // assert interface conformance

// Perlin is a Field backed by github.com/aquilax/go-perlin.
type Perlin struct {
	detail
	noise *perlin.Perlin // built lazily, reset on configuration change
}

// NewPerlin returns a Perlin field with seed 0, one octave and a 0.5 falloff.
func NewPerlin() *Perlin { return &Perlin{detail: defaultDetail()} }

func (p *Perlin) Seed(seed int64) {
	p.seed = seed
	p.noise = nil
}

func (p *Perlin) ConfigureDetail(octaves int, falloff float64) {
	p.configure(octaves, falloff)
	p.noise = nil
}

// generator returns the underlying noise. go-perlin divides octave i
// by alpha^i, so alpha is the inverse of the falloff.
func (p *Perlin) generator() *perlin.Perlin {
	if p.noise != nil {
		return p.noise
	}
	octaves, alpha := p.octaves, 2.
	if p.falloff == 0 { // only the first octave contributes
		octaves = 1
	} else {
		alpha = 1 / p.falloff
	}
	p.noise = perlin.NewPerlin(alpha, perlinBeta, int32(octaves), p.seed)
	return p.noise
}

func (p *Perlin) Sample(x, y float64) float64 {
	return toUnit(p.generator().Noise2D(x, y) / p.amplitudes())
}
