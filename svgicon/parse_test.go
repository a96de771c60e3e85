package svgicon

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/benoitkugler/flowfield"
	"github.com/benoitkugler/flowfield/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func importString(t *testing.T, src string, mode ErrorMode) ([]*geom.Polyline, geom.Rect) {
	t.Helper()
	paths, canvas, err := Import(strings.NewReader(src), mode)
	require.NoError(t, err)
	return paths, canvas
}

func TestShapesAndGroups(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 100" width="400" height="200">
	<title>shapes</title>
	<rect x="10" y="10" width="20" height="30"/>
	<g transform="translate(100, 0)">
		<g transform="scale(2)">
			<path d="M0 0 L10 0 M0 10 L10 10"/>
		</g>
	</g>
	<polygon points="0,50 10,50 10,60"/>
	<line x1="0" y1="90" x2="50" y2="90"/>
</svg>`
	paths, canvas := importString(t, src, StrictErrorMode)
	assert.Equal(t, geom.Rect{W: 200, H: 100}, canvas)
	require.Len(t, paths, 5)

	assert.True(t, paths[0].Closed())
	assert.Equal(t, geom.Rect{X: 10, Y: 10, W: 20, H: 30}, paths[0].Bounds())
	assert.InDelta(t, 100, paths[0].Length(), 1e-9)

	// groups are unwrapped, transforms composed
	assert.Equal(t, []geom.Point{{X: 100, Y: 0}, {X: 120, Y: 0}}, paths[1].Points())
	assert.Equal(t, []geom.Point{{X: 100, Y: 20}, {X: 120, Y: 20}}, paths[2].Points())

	assert.True(t, paths[3].Closed())
	assert.False(t, paths[4].Closed())
}

func TestDiscardedContent(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg" width="50" height="50">
	<metadata><rect width="10" height="10"/></metadata>
	<text x="1" y="1">hello</text>
	<path d="M5 5"/>
	<path d="M1 1 L1 1 L1 1"/>
	<circle cx="25" cy="25" r="0"/>
	<circle cx="25" cy="25" r="10"/>
</svg>`
	paths, canvas := importString(t, src, IgnoreErrorMode)
	assert.Equal(t, geom.Rect{W: 50, H: 50}, canvas)
	require.Len(t, paths, 1)
	b := paths[0].Bounds()
	assert.InDelta(t, 15, b.X, 0.1)
	assert.InDelta(t, 20, b.W, 0.1)

	_, _, err := Import(strings.NewReader(src), StrictErrorMode)
	assert.Error(t, err)
}

func TestWarnings(t *testing.T) {
	var buf bytes.Buffer
	flowfield.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer flowfield.SetLogger(nil)

	src := `<svg xmlns="http://www.w3.org/2000/svg"><text>a</text><path d="M0 0 L1 1"/></svg>`
	paths, _ := importString(t, src, WarnErrorMode)
	assert.Len(t, paths, 1)
	assert.Contains(t, buf.String(), "cannot process svg element")
	assert.Contains(t, buf.String(), "element=text")
}

func TestUse(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 100 100">
	<defs>
		<path id="seg" d="M0 0 L10 0"/>
	</defs>
	<use xlink:href="#seg" x="5" y="7"/>
	<use href="#seg" transform="translate(0, 50)"/>
</svg>`
	paths, _ := importString(t, src, StrictErrorMode)
	require.Len(t, paths, 2)
	assert.Equal(t, []geom.Point{{X: 5, Y: 7}, {X: 15, Y: 7}}, paths[0].Points())
	assert.Equal(t, []geom.Point{{X: 0, Y: 50}, {X: 10, Y: 50}}, paths[1].Points())

	_, _, err := Import(strings.NewReader(`<svg><use href="#missing"/></svg>`), IgnoreErrorMode)
	assert.Error(t, err)
}

func TestInvalid(t *testing.T) {
	for _, src := range []string{
		"",
		"not xml at all",
		"<html><body/></html>",
		`<svg><path d="M0 0 L"/></svg>`,
		`<svg><g transform="rotate(1, 2)"/></svg>`,
		`<svg><rect width="abc" height="2"/></svg>`,
		`<svg><path d="M0 0 L1 1"`,
	} {
		_, err := ReadIconStream(strings.NewReader(src), IgnoreErrorMode)
		assert.True(t, errors.Is(err, ErrInvalidSVG), "%q: %v", src, err)
	}
}

func TestCharsetAndUnits(t *testing.T) {
	src := `<?xml version="1.0" encoding="ISO-8859-1"?>
<svg xmlns="http://www.w3.org/2000/svg" width="1in" height="72pt">
	<title>caf` + "\xe9" + `</title>
	<rect x="10%" y="0" width="50%" height="1cm"/>
</svg>`
	icon, err := ReadIconStream(strings.NewReader(src), StrictErrorMode)
	require.NoError(t, err)
	assert.Equal(t, []string{"café"}, icon.Titles)
	assert.Equal(t, 96., icon.ViewBox.W)
	assert.InDelta(t, 96, icon.ViewBox.H, 1e-9)
	paths := icon.BasePaths(0.25)
	require.Len(t, paths, 1)
	b := paths[0].Bounds()
	assert.InDelta(t, 9.6, b.X, 0.02)
	assert.InDelta(t, 48, b.W, 0.02)
	assert.InDelta(t, 96/2.54, b.H, 0.02)
}

func TestCanvasFromPaths(t *testing.T) {
	icon, err := ReadIconStream(strings.NewReader(`<svg><path d="M10 10 L30 50"/></svg>`), StrictErrorMode)
	require.NoError(t, err)
	paths := icon.BasePaths(0.25)
	assert.Equal(t, geom.Rect{X: 10, Y: 10, W: 20, H: 40}, icon.Canvas(paths))
}
