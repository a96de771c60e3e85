package svgpath

import (
	"math"
	"testing"

	"github.com/benoitkugler/flowfield/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadNumbers(t *testing.T) {
	for _, test := range []struct {
		in       string
		expected []float64
	}{
		{"10 20", []float64{10, 20}},
		{"10,20 , 30", []float64{10, 20, 30}},
		{"10-5.5.5", []float64{10, -5.5, .5}},
		{"1e2-3E-1", []float64{100, -0.3}},
		{"", nil},
	} {
		got, err := ReadNumbers(test.in)
		require.NoError(t, err, test.in)
		if test.expected == nil {
			assert.Empty(t, got)
		} else {
			assert.Equal(t, test.expected, got, test.in)
		}
	}
}

func TestParsePathSVG(t *testing.T) {
	for _, test := range []struct {
		d        string
		expected string
	}{
		{"M10 20 L30 40", "M10.000,20.000 L30.000,40.000"},
		{"m10 20 l5 5 h10 v-5 z", "M10.000,20.000 L15.000,25.000 L25.000,25.000 L25.000,20.000 Z"},
		{"M0 0 10 0 10 10", "M0.000,0.000 L10.000,0.000 L10.000,10.000"},
		{"M0 0 Q5 5 10 0 T20 0", "M0.000,0.000 Q5.000,5.000,10.000,0.000 Q15.000,-5.000,20.000,0.000"},
		{"M0 0 C0 5 10 5 10 0 S20 -5 20 0", "M0.000,0.000 C0.000,5.000,10.000,5.000,10.000,0.000 C10.000,-5.000,20.000,-5.000,20.000,0.000"},
		{"M0 0 L10 0 Z l0 10", "M0.000,0.000 L10.000,0.000 Z M0.000,0.000 L0.000,10.000"},
	} {
		p, err := ParsePath(test.d)
		require.NoError(t, err, test.d)
		assert.Equal(t, test.expected, p.ToSVGPath(), test.d)
	}
}

func TestParsePathErrors(t *testing.T) {
	for _, d := range []string{
		"M10",
		"M0 0 L1 2 3",
		"M0 0 Z 4",
		"M0 0 X 4 5",
		"M0 0 L1 --",
	} {
		_, err := ParsePath(d)
		assert.Error(t, err, d)
	}
}

func TestOffset(t *testing.T) {
	c := Cursor{OffsetX: 100, OffsetY: -10}
	require.NoError(t, c.CompilePath("M0 0 l5 0"))
	assert.Equal(t, "M100.000,-10.000 L105.000,-10.000", c.Path.ToSVGPath())
}

func TestMatrix(t *testing.T) {
	m := Identity.Translate(10, 0).Rotate(math.Pi / 2)
	x, y := m.Transform(1, 0)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 1, y, 1e-9)

	x, y = Identity.Scale(2, 3).Transform(1, 1)
	assert.Equal(t, 2., x)
	assert.Equal(t, 3., y)

	p := toFixedP(4, 8)
	q := Identity.Scale(0.5, 0.5).TFixed(p)
	assert.Equal(t, toFixedP(2, 4), q)
}

func distanceRange(points []geom.Point, center geom.Point) (lo, hi float64) {
	lo = math.Inf(1)
	for _, p := range points {
		d := p.Distance(center)
		lo, hi = math.Min(lo, d), math.Max(hi, d)
	}
	return lo, hi
}

func TestFlatten(t *testing.T) {
	p, err := ParsePath("M0 0 L10 0 L10 10 Z M20 20 L30 20")
	require.NoError(t, err)
	subs := p.Flatten(Identity, 0.1)
	require.Len(t, subs, 2)
	assert.True(t, subs[0].Closed)
	assert.Equal(t, []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, subs[0].Points)
	assert.False(t, subs[1].Closed)

	// transform applied
	subs = p.Flatten(Identity.Translate(1, 2), 0.1)
	assert.Equal(t, geom.Pt(1, 2), subs[0].Points[0])
}

func TestFlattenCurves(t *testing.T) {
	p, err := ParsePath("M0 0 C0 10 10 10 10 0")
	require.NoError(t, err)
	fine := p.Flatten(Identity, 0.01)
	require.Len(t, fine, 1)
	pts := fine[0].Points
	assert.Equal(t, geom.Pt(0, 0), pts[0])
	assert.Equal(t, geom.Pt(10, 0), pts[len(pts)-1])
	b := geom.BoundsOf(pts)
	assert.InDelta(t, 7.5, b.H, 0.05) // maximum of the curve at t = 0.5

	coarse := p.Flatten(Identity, 1)
	assert.Less(t, len(coarse[0].Points), len(pts))

	// flat enough for a single segment
	p, err = ParsePath("M0 0 Q5 10 10 0")
	require.NoError(t, err)
	subs := p.Flatten(Identity, 100)
	assert.Equal(t, []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, subs[0].Points)

	subs = p.Flatten(Identity, 0.01)
	assert.Greater(t, len(subs[0].Points), 4)
	assert.InDelta(t, 5, geom.BoundsOf(subs[0].Points).H, 0.05)
}

func TestArc(t *testing.T) {
	// half circle of radius 10 above the X axis
	p, err := ParsePath("M0 0 A10 10 0 0 1 20 0")
	require.NoError(t, err)
	subs := p.Flatten(Identity, 0.01)
	require.Len(t, subs, 1)
	pts := subs[0].Points
	lo, hi := distanceRange(pts, geom.Pt(10, 0))
	assert.InDelta(t, 10, lo, 0.1)
	assert.InDelta(t, 10, hi, 0.1)
	b := geom.BoundsOf(pts)
	assert.InDelta(t, -10, b.Y, 0.1)
	assert.InDelta(t, 0, b.Y+b.H, 0.1)

	// null radius: straight line
	p, err = ParsePath("M0 0 A0 10 0 0 1 20 0")
	require.NoError(t, err)
	assert.Equal(t, "M0.000,0.000 L20.000,0.000", p.ToSVGPath())
}

func TestShapes(t *testing.T) {
	var p Path
	p.AddEllipse(50, 50, 20, 10, 0)
	subs := p.Flatten(Identity, 0.01)
	require.Len(t, subs, 1)
	assert.True(t, subs[0].Closed)
	b := geom.BoundsOf(subs[0].Points)
	assert.InDelta(t, 30, b.X, 0.1)
	assert.InDelta(t, 40, b.W, 0.1)
	assert.InDelta(t, 40, b.Y, 0.1)
	assert.InDelta(t, 20, b.H, 0.1)

	p.Clear()
	p.AddRect(0, 0, 10, 5, 0)
	assert.Equal(t, "M0.000,0.000 L10.000,0.000 L10.000,5.000 L0.000,5.000 Z", p.ToSVGPath())

	p.Clear()
	p.AddRoundRect(0, 0, 20, 10, 2, 2, 0)
	subs = p.Flatten(Identity, 0.01)
	require.Len(t, subs, 1)
	b = geom.BoundsOf(subs[0].Points)
	assert.InDelta(t, 0, b.X, 0.1)
	assert.InDelta(t, 20, b.W, 0.1)
	assert.InDelta(t, 10, b.H, 0.1)
	for _, pt := range subs[0].Points { // rounded corner
		assert.Greater(t, pt.Distance(geom.Pt(0, 0)), 0.5)
	}
}

func TestFromPolyline(t *testing.T) {
	p := FromPolyline([]geom.Point{{X: 0, Y: 0}, {X: 1.5, Y: 2}}, true)
	assert.Equal(t, "M0.000,0.000 L1.500,2.000 Z", p.ToSVGPath())
	assert.Nil(t, FromPolyline(nil, false))

	subs := p.Flatten(Identity.Scale(2, 2), 1)
	require.Len(t, subs, 1)
	assert.Equal(t, []geom.Point{{X: 0, Y: 0}, {X: 3, Y: 4}}, subs[0].Points)
}
