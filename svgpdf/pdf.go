// Implements a PDF backend to export drawings,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/benoitkugler/flowfield"
	"github.com/benoitkugler/flowfield/geom"
	"github.com/benoitkugler/flowfield/svgpath"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"
)

var _ svgpath.Drawer = pather{} // assert interface conformance

// pather implements the path commands
// on the current pdf page
type pather struct {
	pdf *gofpdf.Fpdf
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func (p pather) Start(a fixed.Point26_6) {
	p.pdf.MoveTo(fixedTof(a))
}

func (p pather) Line(b fixed.Point26_6) {
	p.pdf.LineTo(fixedTof(b))
}

func (p pather) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {
	cx, cy := fixedTof(b)
	x, y := fixedTof(c)
	p.pdf.CurveTo(cx, cy, x, y)
}

func (p pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
}

func (p pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

// Renderer strokes polylines on a pdf page.
type Renderer struct {
	pdf *gofpdf.Fpdf
	m   svgpath.Matrix2D // user space to page space
}

// NewRenderer return a renderer which will
// write to the current page of `pdf`, with `canvas`
// mapped to the page origin.
func NewRenderer(pdf *gofpdf.Fpdf, canvas geom.Rect) Renderer {
	return Renderer{pdf: pdf, m: svgpath.Identity.Translate(-canvas.X, -canvas.Y)}
}

// Stroke draws each line with the color `c` and the given width.
// Lines with less than two points are ignored.
func (rd Renderer) Stroke(lines [][]geom.Point, c color.RGBA, width float64) {
	rd.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	rd.pdf.SetLineWidth(width)
	rd.pdf.SetLineCapStyle("round")
	rd.pdf.SetLineJoinStyle("round")
	for _, line := range lines {
		if len(line) < 2 {
			continue
		}
		svgpath.FromPolyline(line, false).AddTo(pather{pdf: rd.pdf}, rd.m)
		rd.pdf.DrawPath("D")
	}
}

// NewDocument returns a one page document, whose page has the
// size of the canvas, one user unit being one point.
func NewDocument(d flowfield.Drawing) *gofpdf.Fpdf {
	w, h := d.Canvas.W, d.Canvas.H
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	// the portrait orientation keeps Wd and Ht as given
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetTitle(d.Name, true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	rd := NewRenderer(pdf, d.Canvas)
	rd.Stroke(d.Base, d.BaseColor, d.StrokeWidth)
	rd.Stroke(d.Lines, d.StrokeColor, d.StrokeWidth)
	return pdf
}

// Write outputs the drawing as a PDF document.
func Write(w io.Writer, d flowfield.Drawing) error {
	pdf := NewDocument(d)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

// WriteFile saves the drawing to the PDF file `path`.
func WriteFile(path string, d flowfield.Drawing) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create pdf file: %w", err)
	}
	if err = Write(f, d); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
