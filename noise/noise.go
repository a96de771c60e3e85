// Provides the coherent noise fields used to orient
// the generated strokes.
//
// A Field is configured once per render pass (Seed, ConfigureDetail)
// and then sampled many times; sampling is deterministic for a given
// configuration.
package noise

import (
	"fmt"
	"math"
)

// Field is a seeded fractal noise function of the plane.
type Field interface {
	// Seed selects the pseudo random permutation.
	Seed(seed int64)
	// ConfigureDetail sets the number of octaves and the
	// amplitude falloff between two consecutive octaves.
	ConfigureDetail(octaves int, falloff float64)
	// Sample returns a value in [0, 1].
	Sample(x, y float64) float64
}

// Engine names a noise implementation.
type Engine string

const (
	PerlinEngine  Engine = "perlin"
	SimplexEngine Engine = "simplex"
)

// New returns a field of the given kind, configured with
// seed 0, one octave and a 0.5 falloff.
func New(engine Engine) (Field, error) {
	switch engine {
	case PerlinEngine, "":
		return NewPerlin(), nil
	case SimplexEngine:
		return NewSimplex(), nil
	default:
		return nil, fmt.Errorf("unsupported noise engine %q", engine)
	}
}

// detail is the configuration shared by the implementations
type detail struct {
	seed    int64
	octaves int
	falloff float64
}

func defaultDetail() detail { return detail{octaves: 1, falloff: 0.5} }

// configure clamps the octaves to at least 1 and
// the falloff to [0, 1].
func (d *detail) configure(octaves int, falloff float64) {
	if octaves < 1 {
		octaves = 1
	}
	if falloff < 0 || math.IsNaN(falloff) {
		falloff = 0
	} else if falloff > 1 {
		falloff = 1
	}
	d.octaves, d.falloff = octaves, falloff
}

// amplitudes returns the total of the octave amplitudes,
// used to bring a fractal sum back to [-1, 1]
func (d detail) amplitudes() float64 {
	var sum float64
	a := 1.
	for i := 0; i < d.octaves; i++ {
		sum += a
		a *= d.falloff
	}
	return sum
}

// toUnit maps v from [-1, 1] to [0, 1], clamping overflows.
func toUnit(v float64) float64 {
	u := (v + 1) / 2
	if u < 0 || math.IsNaN(u) {
		return 0
	}
	if u > 1 {
		return 1
	}
	return u
}
