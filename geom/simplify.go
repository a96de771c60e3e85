package geom

// DefaultSimplifyTolerance is the maximal distance, in user units,
// between a simplified stroke and the original points.
const DefaultSimplifyTolerance = 0.25

// Simplify reduces the number of points of an open polyline while keeping
// every removed point within `tolerance` of the result
// (Ramer-Douglas-Peucker). The end points are always kept.
// A non positive tolerance returns a copy of the input.
func Simplify(points []Point, tolerance float64) []Point {
	if tolerance <= 0 || len(points) < 3 {
		return append([]Point(nil), points...)
	}
	keep := make([]bool, len(points))
	keep[0], keep[len(points)-1] = true, true

	// explicit stack: strokes may have up to a thousand points
	type span struct{ first, last int }
	stack := []span{{0, len(points) - 1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		maxDist, index := 0., -1
		for i := s.first + 1; i < s.last; i++ {
			if d := SegmentDistance(points[s.first], points[s.last], points[i]); d > maxDist {
				maxDist, index = d, i
			}
		}
		if index != -1 && maxDist > tolerance {
			keep[index] = true
			stack = append(stack, span{s.first, index}, span{index, s.last})
		}
	}

	out := make([]Point, 0, len(points))
	for i, k := range keep {
		if k {
			out = append(out, points[i])
		}
	}
	return out
}
