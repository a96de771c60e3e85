package noise

import (
	"github.com/ojrac/opensimplex-go"
)

var _ Field = (*Simplex)(nil) // assert interface conformance

// Simplex is a Field summing octaves of OpenSimplex noise
// (fractal brownian motion).
type Simplex struct {
	detail
	noise opensimplex.Noise // built lazily, reset on seed change
}

// NewSimplex returns a Simplex field with seed 0, one octave and a 0.5 falloff.
func NewSimplex() *Simplex { return &Simplex{detail: defaultDetail()} }

func (s *Simplex) Seed(seed int64) {
	s.seed = seed
	s.noise = nil
}

func (s *Simplex) ConfigureDetail(octaves int, falloff float64) {
	s.configure(octaves, falloff)
}

func (s *Simplex) Sample(x, y float64) float64 {
	if s.noise == nil {
		s.noise = opensimplex.New(s.seed)
	}
	var total float64
	frequency, amplitude := 1., 1.
	for i := 0; i < s.octaves; i++ {
		total += s.noise.Eval2(x*frequency, y*frequency) * amplitude
		amplitude *= s.falloff
		frequency *= 2
	}
	return toUnit(total / s.amplitudes())
}
