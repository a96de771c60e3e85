// Implements the path walker, which grows the decorative strokes
// from sample points of a base path, following the blend of the
// hint direction and of a noise field.
package walker

import (
	"math"
	"math/rand"

	"github.com/benoitkugler/flowfield/geom"
	"github.com/benoitkugler/flowfield/noise"
	"github.com/benoitkugler/flowfield/params"
)

// Stroke is one generated line, belonging to a single render pass.
type Stroke struct {
	Points []geom.Point
	Offset float64 // arc length of the start point on the base path
}

// Director provides the hint direction along a base path.
// It is implemented by *hints.Interpolator.
type Director interface {
	Direction(offset float64) geom.Point
}

// Options holds the settings of a walk which are not render parameters.
type Options struct {
	// Canvas bounds the random start points when RenderOnCanvas is set.
	Canvas geom.Rect
	// Rand is the source of random start points. It must be non nil
	// when RenderOnCanvas is set.
	Rand *rand.Rand
	// Simplify, if non nil, post processes each stroke.
	Simplify func([]geom.Point) []geom.Point
}

// Generate walks the base path `path` and returns the generated strokes.
//
// Start points are taken every p.PathInterval (offsets 0, interval, ...
// strictly below the path length). From each start point, p.PathPoints
// points are produced, each step moving by the blend of the hint direction
// at the start offset and of the noise angle at the current point.
//
// The noise field must already be seeded and configured for the pass.
// A null path length or a non positive interval yields no stroke;
// strokes with no points are skipped.
func Generate(path geom.BasePath, dir Director, field noise.Field, p params.Parameters, opts Options) []Stroke {
	L := path.Length()
	if !(L > 0) || !(p.PathInterval > 0) || math.IsInf(L, 0) {
		return nil
	}
	var out []Stroke
	for i := 0; ; i++ {
		offset := float64(i) * p.PathInterval
		if offset >= L {
			break
		}
		start := path.PointAt(offset)
		if p.RenderOnCanvas && opts.Rand != nil {
			start = randomPoint(opts.Rand, opts.Canvas)
		}
		direction := dir.Direction(offset)

		points := Walk(start, direction, field, p)
		if len(points) == 0 {
			continue
		}
		if opts.Simplify != nil {
			points = opts.Simplify(points)
		}
		out = append(out, Stroke{Points: points, Offset: offset})
	}
	return out
}

// Walk returns the p.PathPoints successive points of one stroke
// starting at `start`, with the fixed hint `direction`.
func Walk(start, direction geom.Point, field noise.Field, p params.Parameters) []geom.Point {
	if p.PathPoints <= 0 {
		return nil
	}
	rotation := p.NoiseRotation * math.Pi / 180
	d := p.NoiseDetalisation
	hintPart := direction.Mul(p.DirectionIntensity)
	noiseWeight := 1 - p.DirectionIntensity

	points := make([]geom.Point, 0, p.PathPoints)
	current := start
	for step := 0; step < p.PathPoints; step++ {
		points = append(points, current)

		angle := p.NoiseIntensity*field.Sample(current.X*d, current.Y*d) + rotation
		// Y axis points down: a positive angle turns counterclockwise on screen
		noiseVector := geom.Pt(math.Cos(angle), -math.Sin(angle))
		blended := hintPart.Add(noiseVector.Mul(noiseWeight))
		current = current.Add(blended.Mul(p.PathPointDistance))
	}
	return points
}

// randomPoint returns an integer point uniformly chosen in `canvas`.
func randomPoint(rd *rand.Rand, canvas geom.Rect) geom.Point {
	return geom.Pt(
		canvas.X+math.Floor(rd.Float64()*canvas.W),
		canvas.Y+math.Floor(rd.Float64()*canvas.H),
	)
}
