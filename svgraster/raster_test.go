package svgraster

import (
	"bytes"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/benoitkugler/flowfield"
	"github.com/benoitkugler/flowfield/geom"
	"github.com/benoitkugler/flowfield/walker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDrawing() flowfield.Drawing {
	layer := flowfield.Layer{Strokes: []walker.Stroke{
		{Points: []geom.Point{{X: 10, Y: 20}, {X: 90, Y: 20}}},
	}}
	base := []*geom.Polyline{geom.NewPolyline([]geom.Point{{X: 10, Y: 60}, {X: 90, Y: 60}}, false)}
	d := layer.Drawing("test", geom.Rect{W: 100, H: 80}, base)
	d.StrokeWidth = 4
	return d
}

func TestRender(t *testing.T) {
	img := Render(sampleDrawing(), 2)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 160, img.Bounds().Dy())

	onStroke := img.RGBAAt(100, 40)
	assert.Less(t, onStroke.R, uint8(0x40), "stroke is black")

	onBase := img.RGBAAt(100, 120)
	assert.Greater(t, onBase.R, onBase.G, "base is red")

	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, img.RGBAAt(100, 80), "background")
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, img.RGBAAt(2, 2))
}

func TestRenderEmpty(t *testing.T) {
	img := Render(flowfield.Drawing{}, 0)
	assert.Equal(t, 1, img.Bounds().Dx())
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, sampleDrawing(), 1))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())

	path := filepath.Join(t.TempDir(), "preview.png")
	require.NoError(t, WritePNGFile(path, sampleDrawing(), 1))
}
