package svgpath

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"unicode"

	"golang.org/x/image/math/fixed"
)

var errParamMismatch = errors.New("svg path: parameter mismatch")

// Cursor compiles SVG path data (the `d` attribute of a <path>)
// into a Path.
type Cursor struct {
	Path Path
	// OffsetX and OffsetY are added to every emitted point,
	// as required by <use> elements.
	OffsetX, OffsetY float64

	points                 []float64
	placeX, placeY         float64
	cntlPtX, cntlPtY       float64
	pathStartX, pathStartY float64
	lastKey                byte
	inPath                 bool
}

// ParsePath compiles the path data `d`.
func ParsePath(d string) (Path, error) {
	var c Cursor
	err := c.CompilePath(d)
	return c.Path, err
}

// ReadNumbers parses a list of numbers in SVG syntax: separated by
// spaces or commas, with the separator omitted before a sign or
// a second decimal point ("10-5.5.5" is 10, -5.5, .5).
func ReadNumbers(s string) ([]float64, error) {
	var c Cursor
	err := c.readNumbers(s)
	return c.points, err
}

func (c *Cursor) reset() {
	c.Path = c.Path[:0]
	c.placeX, c.placeY = 0, 0
	c.cntlPtX, c.cntlPtY = 0, 0
	c.pathStartX, c.pathStartY = 0, 0
	c.lastKey = 0
	c.inPath = false
}

// readFloat splits numStr on its second and later decimal points
func (c *Cursor) readFloat(numStr string) error {
	last := 0
	isFirst := true
	for i, n := range numStr {
		if n == '.' {
			if isFirst {
				isFirst = false
				continue
			}
			f, err := strconv.ParseFloat(numStr[last:i], 64)
			if err != nil {
				return err
			}
			c.points = append(c.points, f)
			last = i
		}
	}
	f, err := strconv.ParseFloat(numStr[last:], 64)
	if err != nil {
		return err
	}
	c.points = append(c.points, f)
	return nil
}

// readNumbers replaces the cursor points by the numbers of `dataPoints`
func (c *Cursor) readNumbers(dataPoints string) error {
	lastIndex := -1
	c.points = c.points[:0]
	var lr rune
	for i, r := range dataPoints {
		isExp := r == 'e' || r == 'E'
		isExpSign := (r == '-' || r == '+') && (lr == 'e' || lr == 'E')
		if !unicode.IsDigit(r) && r != '.' && !isExp && !isExpSign {
			if lastIndex != -1 {
				if err := c.readFloat(dataPoints[lastIndex:i]); err != nil {
					return err
				}
			}
			if r == '-' || r == '+' {
				lastIndex = i
			} else {
				lastIndex = -1
			}
		} else if lastIndex == -1 {
			lastIndex = i
		}
		lr = r
	}
	if lastIndex != -1 && lastIndex != len(dataPoints) {
		if err := c.readFloat(dataPoints[lastIndex:]); err != nil {
			return err
		}
	}
	return nil
}

// CompilePath translates the path data `svgPath` into path
// operations, replacing the current content of c.Path.
func (c *Cursor) CompilePath(svgPath string) error {
	c.reset()
	lastIndex := -1
	for i, v := range svgPath {
		if unicode.IsLetter(v) && v != 'e' && v != 'E' {
			if lastIndex != -1 {
				if err := c.addSeg(svgPath[lastIndex:i]); err != nil {
					return err
				}
			}
			lastIndex = i
		}
	}
	if lastIndex != -1 {
		if err := c.addSeg(svgPath[lastIndex:]); err != nil {
			return err
		}
	}
	if c.inPath {
		c.Path.Stop(false)
	}
	return nil
}

func (c *Cursor) toFixed(x, y float64) fixed.Point26_6 {
	return toFixedP(x+c.OffsetX, y+c.OffsetY)
}

// ensureStart starts an implicit subpath at the current place,
// for drawing commands not preceded by a move
func (c *Cursor) ensureStart() {
	if !c.inPath {
		c.Path.Start(c.toFixed(c.placeX, c.placeY))
		c.pathStartX, c.pathStartY = c.placeX, c.placeY
		c.inPath = true
	}
}

func (c *Cursor) lineTo(x, y float64) {
	c.ensureStart()
	c.placeX, c.placeY = x, y
	c.Path.Line(c.toFixed(x, y))
}

func (c *Cursor) reflectControlQuad() {
	switch c.lastKey {
	case 'q', 'Q', 'T', 't':
		c.cntlPtX, c.cntlPtY = 2*c.placeX-c.cntlPtX, 2*c.placeY-c.cntlPtY
	default:
		c.cntlPtX, c.cntlPtY = c.placeX, c.placeY
	}
}

func (c *Cursor) reflectControlCube() {
	switch c.lastKey {
	case 'c', 'C', 's', 'S':
		c.cntlPtX, c.cntlPtY = 2*c.placeX-c.cntlPtX, 2*c.placeY-c.cntlPtY
	default:
		c.cntlPtX, c.cntlPtY = c.placeX, c.placeY
	}
}

// argCount is the number of numbers consumed by one repetition
// of each command
var argCount = map[byte]int{
	'z': 0, 'm': 2, 'l': 2, 'h': 1, 'v': 1,
	'q': 4, 't': 2, 'c': 6, 's': 4, 'a': 7,
}

// addSeg decodes one SVG segment (command letter and its numbers)
func (c *Cursor) addSeg(segString string) error {
	if err := c.readNumbers(segString[1:]); err != nil {
		return err
	}
	k := segString[0]
	lower := byte(unicode.ToLower(rune(k)))
	n, ok := argCount[lower]
	if !ok {
		return fmt.Errorf("svg path: unsupported command %q", k)
	}
	l := len(c.points)
	if n == 0 {
		if l != 0 {
			return errParamMismatch
		}
	} else if l == 0 || l%n != 0 {
		return errParamMismatch
	}
	rel := k == lower
	var dx, dy float64 // offset of relative coordinates

	switch lower {
	case 'z':
		if c.inPath {
			c.Path.Stop(true)
			c.placeX, c.placeY = c.pathStartX, c.pathStartY
			c.inPath = false
		}
	case 'm':
		for i := 0; i < l; i += 2 {
			if rel {
				dx, dy = c.placeX, c.placeY
			}
			x, y := c.points[i]+dx, c.points[i+1]+dy
			if i == 0 {
				if c.inPath {
					c.Path.Stop(false)
				}
				c.placeX, c.placeY = x, y
				c.pathStartX, c.pathStartY = x, y
				c.Path.Start(c.toFixed(x, y))
				c.inPath = true
			} else { // subsequent pairs are implicit lines
				c.lineTo(x, y)
			}
		}
	case 'l':
		for i := 0; i < l; i += 2 {
			if rel {
				dx, dy = c.placeX, c.placeY
			}
			c.lineTo(c.points[i]+dx, c.points[i+1]+dy)
		}
	case 'h':
		for _, x := range c.points {
			if rel {
				x += c.placeX
			}
			c.lineTo(x, c.placeY)
		}
	case 'v':
		for _, y := range c.points {
			if rel {
				y += c.placeY
			}
			c.lineTo(c.placeX, y)
		}
	case 'q':
		c.ensureStart()
		for i := 0; i < l; i += 4 {
			if rel {
				dx, dy = c.placeX, c.placeY
			}
			c.cntlPtX, c.cntlPtY = c.points[i]+dx, c.points[i+1]+dy
			c.placeX, c.placeY = c.points[i+2]+dx, c.points[i+3]+dy
			c.Path.QuadBezier(c.toFixed(c.cntlPtX, c.cntlPtY), c.toFixed(c.placeX, c.placeY))
			c.lastKey = k
		}
	case 't':
		c.ensureStart()
		for i := 0; i < l; i += 2 {
			if rel {
				dx, dy = c.placeX, c.placeY
			}
			c.reflectControlQuad()
			c.placeX, c.placeY = c.points[i]+dx, c.points[i+1]+dy
			c.Path.QuadBezier(c.toFixed(c.cntlPtX, c.cntlPtY), c.toFixed(c.placeX, c.placeY))
			c.lastKey = k
		}
	case 'c':
		c.ensureStart()
		for i := 0; i < l; i += 6 {
			if rel {
				dx, dy = c.placeX, c.placeY
			}
			x1, y1 := c.points[i]+dx, c.points[i+1]+dy
			c.cntlPtX, c.cntlPtY = c.points[i+2]+dx, c.points[i+3]+dy
			c.placeX, c.placeY = c.points[i+4]+dx, c.points[i+5]+dy
			c.Path.CubeBezier(c.toFixed(x1, y1), c.toFixed(c.cntlPtX, c.cntlPtY), c.toFixed(c.placeX, c.placeY))
			c.lastKey = k
		}
	case 's':
		c.ensureStart()
		for i := 0; i < l; i += 4 {
			if rel {
				dx, dy = c.placeX, c.placeY
			}
			c.reflectControlCube()
			x1, y1 := c.cntlPtX, c.cntlPtY
			c.cntlPtX, c.cntlPtY = c.points[i]+dx, c.points[i+1]+dy
			c.placeX, c.placeY = c.points[i+2]+dx, c.points[i+3]+dy
			c.Path.CubeBezier(c.toFixed(x1, y1), c.toFixed(c.cntlPtX, c.cntlPtY), c.toFixed(c.placeX, c.placeY))
			c.lastKey = k
		}
	case 'a':
		c.ensureStart()
		for i := 0; i < l; i += 7 {
			if rel {
				c.points[i+5] += c.placeX
				c.points[i+6] += c.placeY
			}
			c.arcTo(c.points[i : i+7])
		}
	}
	c.lastKey = k
	return nil
}

// arcTo adds an elliptical arc, degenerating to a line
// for null radii, and to nothing for a null chord
func (c *Cursor) arcTo(points []float64) {
	endX, endY := points[5], points[6]
	if endX == c.placeX && endY == c.placeY {
		return
	}
	points[0], points[1] = math.Abs(points[0]), math.Abs(points[1])
	if points[0] == 0 || points[1] == 0 {
		c.lineTo(endX, endY)
		return
	}
	cx, cy := findEllipseCenter(&points[0], &points[1], points[2]*math.Pi/180, c.placeX, c.placeY,
		endX, endY, points[4] == 0, points[3] == 0)
	q := &matrixAdder{M: Identity.Translate(c.OffsetX, c.OffsetY), path: &c.Path}
	c.placeX, c.placeY = addArc(q, points, cx, cy, c.placeX, c.placeY)
}
