package hints

import (
	"math"
	"sort"

	"github.com/benoitkugler/flowfield/geom"
)

// Assign dispatches each stroke to the base path it is drawn on:
// among the paths whose HitTest accepts the stroke start (or all the
// paths if none does), the one with the closest outline wins.
// Ties go to the first path. The result is indexed like `paths`.
func Assign(paths []geom.BasePath, strokes []Stroke) [][]Stroke {
	out := make([][]Stroke, len(paths))
	if len(paths) == 0 {
		return out
	}
	for _, st := range strokes {
		var candidates []int
		for i, path := range paths {
			if path.HitTest(st.Start) {
				candidates = append(candidates, i)
			}
		}
		if len(candidates) == 0 {
			for i := range paths {
				candidates = append(candidates, i)
			}
		}
		best, bestDist := candidates[0], math.Inf(1)
		for _, i := range candidates {
			if d := paths[i].NearestPoint(st.Start).Distance(st.Start); d < bestDist {
				best, bestDist = i, d
			}
		}
		out[best] = append(out[best], st)
	}
	return out
}

type anchor struct {
	offset float64
	vector geom.Point
}

// Interpolator computes hint directions along one base path.
// It is built once per path and per render pass by Prepare.
type Interpolator struct {
	anchors []anchor // sorted by offset
	length  float64  // arc length of the path
	scale   float64  // normalization factor, 0 without hints
}

// Prepare anchors `strokes` (already assigned to `path`) at the
// arc length of their start point, and computes the normalization
// scale, which is the largest absolute component of the hint vectors.
// Hints sharing the same offset keep their insertion order.
func Prepare(path geom.BasePath, strokes []Stroke) *Interpolator {
	in := &Interpolator{length: path.Length(), anchors: make([]anchor, len(strokes))}
	for i, st := range strokes {
		v := StrokeVector(st)
		in.anchors[i] = anchor{offset: path.OffsetOf(st.Start), vector: v}
		in.scale = math.Max(in.scale, math.Max(math.Abs(v.X), math.Abs(v.Y)))
	}
	sort.SliceStable(in.anchors, func(i, j int) bool { return in.anchors[i].offset < in.anchors[j].offset })
	return in
}

// Len returns the number of hints anchored on the path.
func (in *Interpolator) Len() int { return len(in.anchors) }

// Scale returns the normalization factor.
func (in *Interpolator) Scale() float64 { return in.scale }

// Offsets returns the sorted anchor offsets.
func (in *Interpolator) Offsets() []float64 {
	out := make([]float64, len(in.anchors))
	for i, a := range in.anchors {
		out[i] = a.offset
	}
	return out
}

// bracket returns the indices of the hints surrounding `offset`,
// going around the path if needed, and the blend parameter between them.
func (in *Interpolator) bracket(offset float64) (from, to int, t float64) {
	n := len(in.anchors)
	to = sort.Search(n, func(i int) bool { return in.anchors[i].offset > offset })
	if to == n {
		to = 0
	}
	from = (to - 1 + n) % n

	a, b := in.anchors[from].offset, in.anchors[to].offset
	var num, span float64
	if b > a {
		num, span = offset-a, b-a
	} else { // across the closing seam
		span = in.length - a + b
		if offset >= a {
			num = offset - a
		} else {
			num = offset - a + in.length
		}
	}
	if span == 0 || math.IsNaN(span) {
		return from, to, 0
	}
	return from, to, num / span
}

// Blend returns the interpolated hint vector at `offset`, before
// normalization. With a single hint its raw vector is returned,
// and without hints the zero vector.
func (in *Interpolator) Blend(offset float64) geom.Point {
	switch len(in.anchors) {
	case 0:
		return geom.Point{}
	case 1:
		return in.anchors[0].vector
	}
	from, to, t := in.bracket(offset)
	return in.anchors[from].vector.Lerp(in.anchors[to].vector, t)
}

// Direction returns the hint direction at `offset`: the blended vector
// divided by the normalization scale, so that components lie in [-1, 1].
// The single hint case is not normalized.
func (in *Interpolator) Direction(offset float64) geom.Point {
	v := in.Blend(offset)
	if len(in.anchors) <= 1 {
		return v
	}
	if in.scale == 0 {
		return geom.Point{}
	}
	return geom.Point{X: v.X / in.scale, Y: v.Y / in.scale}
}
