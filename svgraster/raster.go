// Implements a raster backend to preview drawings,
// by wrapping rasterx.
package svgraster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/benoitkugler/flowfield"
	"github.com/benoitkugler/flowfield/geom"
	"github.com/benoitkugler/flowfield/svgpath"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

var _ svgpath.Drawer = (*rasterx.Dasher)(nil) // assert interface conformance

// Renderer strokes polylines into an image.
type Renderer struct {
	dasher *rasterx.Dasher
	width  fixed.Int26_6    // stroke width, in pixels
	m      svgpath.Matrix2D // user space to pixels
}

// NewRenderer returns a renderer drawing into `img`, mapping `canvas`
// onto the image bounds origin with the given scale.
func NewRenderer(img draw.Image, canvas geom.Rect, scale, strokeWidth float64) *Renderer {
	b := img.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), img, b)
	return &Renderer{
		dasher: rasterx.NewDasher(b.Dx(), b.Dy(), scanner),
		width:  fixed.Int26_6(strokeWidth * scale * 64),
		m:      svgpath.Identity.Scale(scale, scale).Translate(-canvas.X, -canvas.Y),
	}
}

// Stroke draws each line with the color `c`. Lines with less
// than two points are ignored.
func (rd *Renderer) Stroke(lines [][]geom.Point, c color.Color) {
	for _, line := range lines {
		if len(line) < 2 {
			continue
		}
		rd.dasher.Clear()
		rd.dasher.SetStroke(rd.width, 4*64, rasterx.RoundCap, rasterx.RoundCap,
			rasterx.RoundGap, rasterx.Round, nil, 0)
		svgpath.FromPolyline(line, false).AddTo(rd.dasher, rd.m)
		rd.dasher.SetColor(c)
		rd.dasher.Draw()
	}
}

// Render rasterizes the drawing on a white background.
// The image is the canvas size times `scale` (1 if not positive).
func Render(d flowfield.Drawing, scale float64) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	w, h := int(math.Ceil(d.Canvas.W*scale)), int(math.Ceil(d.Canvas.H*scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	rd := NewRenderer(img, d.Canvas, scale, d.StrokeWidth)
	rd.Stroke(d.Base, d.BaseColor)
	rd.Stroke(d.Lines, d.StrokeColor)
	return img
}

// WritePNG renders the drawing and encodes it as PNG.
func WritePNG(w io.Writer, d flowfield.Drawing, scale float64) error {
	return png.Encode(w, Render(d, scale))
}

// WritePNGFile saves the preview of the drawing to `path`.
func WritePNGFile(path string, d flowfield.Drawing, scale float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create png file: %w", err)
	}
	if err = WritePNG(f, d, scale); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return f.Close()
}
