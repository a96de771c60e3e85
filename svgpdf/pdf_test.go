package svgpdf

import (
	"bytes"
	"os"
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
		{Points: []geom.Point{{X: 10, Y: 20}, {X: 90, Y: 20}, {X: 95, Y: 30}}},
		{Points: []geom.Point{{X: 1, Y: 1}}},
	}}
	base := []*geom.Polyline{geom.NewPolyline([]geom.Point{{X: 10, Y: 60}, {X: 90, Y: 60}, {X: 50, Y: 70}}, true)}
	return layer.Drawing("pdf export", geom.Rect{X: 5, Y: 5, W: 200, H: 80}, base)
}

func TestDocument(t *testing.T) {
	pdf := NewDocument(sampleDrawing())
	require.NoError(t, pdf.Error())
	assert.Equal(t, 1, pdf.PageCount())
	w, h := pdf.GetPageSize()
	assert.InDelta(t, 200, w, 1e-6)
	assert.InDelta(t, 80, h, 1e-6)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleDrawing()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	path := filepath.Join(t.TempDir(), "out.pdf")
	require.NoError(t, WriteFile(path, sampleDrawing()))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, content)
}

func TestEmptyCanvas(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, flowfield.Drawing{}))
}
