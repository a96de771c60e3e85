// Implements the SVG export of a drawing,
// by wrapping github.com/ajstarks/svgo.
package svgdraw

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"strings"

	"github.com/ajstarks/svgo"
	"github.com/benoitkugler/flowfield"
	"github.com/benoitkugler/flowfield/geom"
)

const lineStyle = `fill:none; stroke:%s; stroke-width:%g; stroke-linecap:round; stroke-linejoin:round`

// pathData returns the `d` attribute of the polyline `points`.
// A single point gives a zero length segment, drawn as a dot
// by the round caps.
func pathData(points []geom.Point) string {
	if len(points) == 1 {
		points = []geom.Point{points[0], points[0]}
	}
	var b strings.Builder
	for i, p := range points {
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString(" L")
		}
		fmt.Fprintf(&b, "%.3f,%.3f", p.X, p.Y)
	}
	return b.String()
}

func rgb(c color.RGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func writeGroup(canvas *svg.SVG, lines [][]geom.Point, c color.RGBA, width float64) {
	canvas.Gstyle(fmt.Sprintf(lineStyle, rgb(c), width))
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		canvas.Path(pathData(line))
	}
	canvas.Gend()
}

// Write outputs `d` as an SVG document, whose user space
// is the canvas of the drawing.
func Write(w io.Writer, d flowfield.Drawing) error {
	bw := bufio.NewWriter(w)
	canvas := svg.New(bw)
	width, height := int(math.Ceil(d.Canvas.W)), int(math.Ceil(d.Canvas.H))
	canvas.Start(width, height,
		fmt.Sprintf(`viewBox="%g %g %g %g"`, d.Canvas.X, d.Canvas.Y, d.Canvas.W, d.Canvas.H))
	if d.Name != "" {
		canvas.Title(d.Name)
	}
	if len(d.Base) > 0 {
		writeGroup(canvas, d.Base, d.BaseColor, d.StrokeWidth)
	}
	writeGroup(canvas, d.Lines, d.StrokeColor, d.StrokeWidth)
	canvas.End()
	return bw.Flush()
}

// WriteFile saves `d` to the SVG file `path`.
func WriteFile(path string, d flowfield.Drawing) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create svg file: %w", err)
	}
	if err = Write(f, d); err != nil {
		f.Close()
		return fmt.Errorf("failed to write svg: %w", err)
	}
	return f.Close()
}
