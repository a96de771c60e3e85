package svgicon

import (
	"encoding/xml"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/flowfield"
	"github.com/benoitkugler/flowfield/svgpath"
)

var errParamMismatch = errors.New("svg parameter mismatch")

type (
	// iconCursor is used while parsing SVG files
	iconCursor struct {
		cursor     svgpath.Cursor // accumulates the geometry of the current element
		points     []float64
		curX, curY float64 // offset of the current <use> element
		errorMode  ErrorMode

		icon                            *SvgIcon
		styleStack                      []PathStyle
		inTitleText, inDescText, inDefs bool
		currentDef                      []definition
		skipDepth                       int // > 0 inside an unsupported element
	}

	// definition is used to store what's given in a def tag
	definition struct {
		ID, Tag string
		Attrs   []xml.Attr
	}
)

// getPoints reads the numbers of `dataPoints` into c.points
func (c *iconCursor) getPoints(dataPoints string) (err error) {
	c.points, err = svgpath.ReadNumbers(dataPoints)
	return err
}

// handleError reacts to an unsupported element `tag`, according to the error mode
func (c *iconCursor) handleError(tag string) error {
	switch c.errorMode {
	case StrictErrorMode:
		return errors.New("cannot process svg element " + tag)
	case WarnErrorMode:
		flowfield.Logger().Warn("cannot process svg element", "element", tag)
	}
	return nil
}

func (c *iconCursor) readTransformAttr(m1 svgpath.Matrix2D, k string) (svgpath.Matrix2D, error) {
	ln := len(c.points)
	switch k {
	case "rotate":
		if ln == 1 {
			m1 = m1.Rotate(c.points[0] * math.Pi / 180)
		} else if ln == 3 {
			m1 = m1.Translate(c.points[1], c.points[2]).
				Rotate(c.points[0]*math.Pi/180).
				Translate(-c.points[1], -c.points[2])
		} else {
			return m1, errParamMismatch
		}
	case "translate":
		if ln == 1 {
			m1 = m1.Translate(c.points[0], 0)
		} else if ln == 2 {
			m1 = m1.Translate(c.points[0], c.points[1])
		} else {
			return m1, errParamMismatch
		}
	case "skewx":
		if ln == 1 {
			m1 = m1.SkewX(c.points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "skewy":
		if ln == 1 {
			m1 = m1.SkewY(c.points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "scale":
		if ln == 1 {
			m1 = m1.Scale(c.points[0], c.points[0])
		} else if ln == 2 {
			m1 = m1.Scale(c.points[0], c.points[1])
		} else {
			return m1, errParamMismatch
		}
	case "matrix":
		if ln == 6 {
			m1 = m1.Mult(svgpath.Matrix2D{
				A: c.points[0],
				B: c.points[1],
				C: c.points[2],
				D: c.points[3],
				E: c.points[4],
				F: c.points[5]})
		} else {
			return m1, errParamMismatch
		}
	default:
		return m1, errParamMismatch
	}
	return m1, nil
}

// parseTransform composes the transform list `v` with the current transform
func (c *iconCursor) parseTransform(v string) (svgpath.Matrix2D, error) {
	ts := strings.Split(v, ")")
	m1 := c.styleStack[len(c.styleStack)-1].transform
	for _, t := range ts {
		t = strings.TrimSpace(t)
		t = strings.TrimLeft(t, ", ")
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return m1, errParamMismatch // badly formed transformation
		}
		err := c.getPoints(d[1])
		if err != nil {
			return m1, err
		}
		m1, err = c.readTransformAttr(m1, strings.ToLower(strings.TrimSpace(d[0])))
		if err != nil {
			return m1, err
		}
	}
	return m1, nil
}

// pushStyle reads the transform of an element, either
// as attribute or inside a style attribute, and push it on the style stack.
func (c *iconCursor) pushStyle(attrs []xml.Attr) error {
	curStyle := c.styleStack[len(c.styleStack)-1]
	for _, attr := range attrs {
		value := attr.Value
		switch strings.ToLower(attr.Name.Local) {
		case "style":
			value = ""
			for _, pair := range strings.Split(attr.Value, ";") {
				kv := strings.SplitN(pair, ":", 2)
				if len(kv) == 2 && strings.ToLower(strings.TrimSpace(kv[0])) == "transform" {
					value = strings.TrimSpace(kv[1])
				}
			}
			if value == "" {
				continue
			}
		case "transform":
		default:
			continue
		}
		m, err := c.parseTransform(value)
		if err != nil {
			return err
		}
		curStyle.transform = m
	}
	c.styleStack = append(c.styleStack, curStyle) // Push style onto stack
	return nil
}

// flushPath stores the geometry accumulated by the last element
func (c *iconCursor) flushPath() {
	if len(c.cursor.Path) == 0 {
		return
	}
	pathCopy := append(svgpath.Path{}, c.cursor.Path...)
	c.icon.SVGPaths = append(c.icon.SVGPaths,
		SvgPath{Path: pathCopy, Transform: c.styleStack[len(c.styleStack)-1].transform})
	c.cursor.Path.Clear()
}

func (c *iconCursor) readStartElement(se xml.StartElement) (err error) {
	if c.inDefs {
		ID := ""
		for _, attr := range se.Attr {
			if attr.Name.Local == "id" {
				ID = attr.Value
			}
		}
		if ID != "" && len(c.currentDef) > 0 {
			c.icon.defs[c.currentDef[0].ID] = c.currentDef
			c.currentDef = make([]definition, 0)
		}
		c.currentDef = append(c.currentDef, definition{
			ID:    ID,
			Tag:   se.Name.Local,
			Attrs: se.Attr,
		})
		return nil
	}
	df, ok := drawFuncs[se.Name.Local]
	if !ok {
		c.skipDepth = 1
		return c.handleError(se.Name.Local)
	}
	err = df(c, se.Attr)
	c.flushPath()
	return err
}

type percentageReference uint8

const (
	widthPercentage percentageReference = iota
	heightPercentage
	diagPercentage
)

// unitScales converts absolute units to user units (px)
var unitScales = map[string]float64{
	"px": 1,
	"pt": 4. / 3,
	"pc": 16,
	"mm": 96 / 25.4,
	"cm": 96 / 2.54,
	"in": 96,
}

// parseBasicFloat parses a number, with an optional absolute unit
func parseBasicFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	scale := 1.
	if len(s) > 2 {
		if f, ok := unitScales[s[len(s)-2:]]; ok {
			scale = f
			s = s[:len(s)-2]
		}
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return value * scale, err
}

// parseUnit parses a length, resolving percentages against the viewBox
func (c *iconCursor) parseUnit(s string, asPerc percentageReference) (float64, error) {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "%") {
		return parseBasicFloat(s)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "%")), 64)
	if err != nil {
		return 0, err
	}
	value /= 100
	vb := c.icon.ViewBox
	switch asPerc {
	case widthPercentage:
		return value * vb.W, nil
	case heightPercentage:
		return value * vb.H, nil
	default:
		return value * math.Sqrt(vb.W*vb.W+vb.H*vb.H) / math.Sqrt2, nil
	}
}
