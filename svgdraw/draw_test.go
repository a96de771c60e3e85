package svgdraw

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benoitkugler/flowfield"
	"github.com/benoitkugler/flowfield/geom"
	"github.com/benoitkugler/flowfield/svgicon"
	"github.com/benoitkugler/flowfield/walker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDrawing() flowfield.Drawing {
	layer := flowfield.Layer{Strokes: []walker.Stroke{
		{Points: []geom.Point{{X: 10, Y: 10}, {X: 20, Y: 15}, {X: 30, Y: 12.5}}},
		{Points: []geom.Point{{X: 50, Y: 50}, {X: 60, Y: 40}}},
		{Points: []geom.Point{{X: 5, Y: 5}}}, // dot
		{},
	}}
	base := []*geom.Polyline{geom.NewPolyline([]geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 80}}, true)}
	return layer.Drawing("perlin-paths", geom.Rect{W: 100, H: 80}, base)
}

func TestPathData(t *testing.T) {
	assert.Equal(t, "M1.000,2.000 L3.500,-4.000", pathData([]geom.Point{{X: 1, Y: 2}, {X: 3.5, Y: -4}}))
	assert.Equal(t, "M5.000,5.000 L5.000,5.000", pathData([]geom.Point{{X: 5, Y: 5}}))
}

func TestWriteReimport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleDrawing()))
	out := buf.String()
	assert.Contains(t, out, `viewBox="0 0 100 80"`)
	assert.Contains(t, out, "<title>perlin-paths</title>")

	icon, err := svgicon.ReadIconStream(strings.NewReader(out), svgicon.StrictErrorMode)
	require.NoError(t, err)
	paths := icon.BasePaths(0.25)
	assert.Len(t, icon.SVGPaths, 4) // base + 3 strokes, the empty one is skipped
	require.Len(t, paths, 3)        // the dot has no extent as base path
	assert.Equal(t, []geom.Point{{X: 10, Y: 10}, {X: 20, Y: 15}, {X: 30, Y: 12.5}}, paths[1].Points())
	assert.Equal(t, geom.Rect{W: 100, H: 80}, icon.Canvas(paths))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.svg")
	require.NoError(t, WriteFile(path, sampleDrawing()))
	icon, err := svgicon.ReadIcon(path, svgicon.IgnoreErrorMode)
	require.NoError(t, err)
	assert.Len(t, icon.SVGPaths, 4)

	assert.Error(t, WriteFile(filepath.Join(t.TempDir(), "missing", "out.svg"), sampleDrawing()))
}
