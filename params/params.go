// Implements the render parameters: a flat set of named knobs
// with documented ranges, their defaults, and their persistence
// as a flat JSON object.
package params

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/benoitkugler/flowfield/noise"
)

// Parameter keys, as exposed to the control surface and
// stored in the settings file.
const (
	NoiseOctaves       = "noiseOctaves"
	NoiseFalloff       = "noiseFalloff"
	NoiseSeed          = "noiseSeed"
	NoiseDetalisation  = "noiseDetalisation"
	NoiseRotation      = "noiseRotation"
	NoiseIntensity     = "noiseIntensity"
	NoiseEngine        = "noiseEngine"
	PathInterval       = "pathInterval"
	PathPoints         = "pathPoints"
	PathPointDistance  = "pathPointDistance"
	DirectionIntensity = "directionIntensity"
	RenderOnCanvas     = "renderOnCanvas"
	UpdateOnEachChange = "updateOnEachChange"
	ExportName         = "exportName"
)

// ErrUnknownKey is returned when setting a parameter which does not exist.
var ErrUnknownKey = errors.New("unknown parameter")

// Parameters holds every knob of a render pass.
// Use Defaults to obtain a valid value; the zero value is not.
type Parameters struct {
	NoiseOctaves      int
	NoiseFalloff      float64
	NoiseSeed         int64
	NoiseDetalisation float64 // coordinate scale applied before sampling the noise
	NoiseRotation     float64 // in degrees
	NoiseIntensity    float64 // multiplier from noise value to angle, in radians
	NoiseEngine       noise.Engine

	PathInterval      float64 // arc length between two start points
	PathPoints        int     // steps per generated stroke
	PathPointDistance float64 // length of one step

	DirectionIntensity float64 // weight of the hint direction against the noise

	RenderOnCanvas     bool // start strokes at random canvas positions
	UpdateOnEachChange bool // render after every parameter commit

	ExportName string // base name of exported files
}

// Defaults returns the parameters used at first start
// and after a reset.
func Defaults() Parameters {
	return Parameters{
		NoiseOctaves:       8,
		NoiseFalloff:       0.44,
		NoiseSeed:          100,
		NoiseDetalisation:  0.003,
		NoiseRotation:      0,
		NoiseIntensity:     6.28,
		NoiseEngine:        noise.PerlinEngine,
		PathInterval:       2.5,
		PathPoints:         70,
		PathPointDistance:  3,
		DirectionIntensity: 0.5,
		ExportName:         "perlin-paths",
	}
}

// Kind distinguishes the value types of the knobs.
type Kind uint8

const (
	Number Kind = iota
	Bool
	Text
)

// Control describes one knob for a control panel.
// Min, Max and Step are only meaningful for numbers.
type Control struct {
	Key            string
	Kind           Kind
	Min, Max, Step float64
	Choices        []string // allowed values of a Text knob, if restricted
}

// Controls lists the knobs in display order.
var Controls = []Control{
	{Key: NoiseOctaves, Min: 1, Max: 10, Step: 1},
	{Key: NoiseFalloff, Min: 0, Max: 1, Step: 0.01},
	{Key: NoiseSeed, Min: 0, Max: 65000, Step: 1},
	{Key: NoiseDetalisation, Min: 0, Max: 0.2, Step: 0.001},
	{Key: NoiseRotation, Min: 0, Max: 360, Step: 10},
	{Key: NoiseIntensity, Min: 0.1, Max: 10, Step: 0.1},
	{Key: NoiseEngine, Kind: Text, Choices: []string{string(noise.PerlinEngine), string(noise.SimplexEngine)}},
	{Key: PathInterval, Min: 0.1, Max: 10, Step: 0.1},
	{Key: PathPoints, Min: 0, Max: 1000, Step: 10},
	{Key: PathPointDistance, Min: 0.01, Max: 10, Step: 0.01},
	{Key: DirectionIntensity, Min: 0, Max: 1, Step: 0.01},
	{Key: RenderOnCanvas, Kind: Bool},
	{Key: UpdateOnEachChange, Kind: Bool},
	{Key: ExportName, Kind: Text},
}

// Lookup returns the control for the given key.
func Lookup(key string) (Control, bool) {
	for _, c := range Controls {
		if c.Key == key {
			return c, true
		}
	}
	return Control{}, false
}

// Clamp brings v into [c.Min, c.Max]. NaN maps to c.Min.
func (c Control) Clamp(v float64) float64 {
	if math.IsNaN(v) || v < c.Min {
		return c.Min
	}
	if v > c.Max {
		return c.Max
	}
	return v
}

func clampKey(key string, v float64) float64 {
	c, _ := Lookup(key)
	return c.Clamp(v)
}

// Clamped returns a copy of p with every numeric knob
// brought into its documented range, and unknown text choices
// replaced by their default.
func (p Parameters) Clamped() Parameters {
	p.NoiseOctaves = int(clampKey(NoiseOctaves, float64(p.NoiseOctaves)))
	p.NoiseFalloff = clampKey(NoiseFalloff, p.NoiseFalloff)
	p.NoiseSeed = int64(clampKey(NoiseSeed, float64(p.NoiseSeed)))
	p.NoiseDetalisation = clampKey(NoiseDetalisation, p.NoiseDetalisation)
	p.NoiseRotation = clampKey(NoiseRotation, p.NoiseRotation)
	p.NoiseIntensity = clampKey(NoiseIntensity, p.NoiseIntensity)
	p.PathInterval = clampKey(PathInterval, p.PathInterval)
	p.PathPoints = int(clampKey(PathPoints, float64(p.PathPoints)))
	p.PathPointDistance = clampKey(PathPointDistance, p.PathPointDistance)
	p.DirectionIntensity = clampKey(DirectionIntensity, p.DirectionIntensity)
	if p.NoiseEngine != noise.PerlinEngine && p.NoiseEngine != noise.SimplexEngine {
		p.NoiseEngine = Defaults().NoiseEngine
	}
	return p
}

// Set commits one knob, given as a string (as typed on a command line).
// Numbers are clamped into their range.
func (p *Parameters) Set(key, value string) error {
	c, ok := Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	switch c.Kind {
	case Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
		p.setBool(key, b)
	case Text:
		p.setText(key, value)
	default:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
		p.setNumber(key, f)
	}
	return nil
}

func (p *Parameters) setNumber(key string, v float64) {
	v = clampKey(key, v)
	switch key {
	case NoiseOctaves:
		p.NoiseOctaves = int(math.Round(v))
	case NoiseFalloff:
		p.NoiseFalloff = v
	case NoiseSeed:
		p.NoiseSeed = int64(math.Round(v))
	case NoiseDetalisation:
		p.NoiseDetalisation = v
	case NoiseRotation:
		p.NoiseRotation = v
	case NoiseIntensity:
		p.NoiseIntensity = v
	case PathInterval:
		p.PathInterval = v
	case PathPoints:
		p.PathPoints = int(math.Round(v))
	case PathPointDistance:
		p.PathPointDistance = v
	case DirectionIntensity:
		p.DirectionIntensity = v
	}
}

func (p *Parameters) setBool(key string, b bool) {
	switch key {
	case RenderOnCanvas:
		p.RenderOnCanvas = b
	case UpdateOnEachChange:
		p.UpdateOnEachChange = b
	}
}

func (p *Parameters) setText(key, s string) {
	switch key {
	case NoiseEngine:
		p.NoiseEngine = noise.Engine(s)
		*p = p.Clamped()
	case ExportName:
		p.ExportName = s
	}
}
