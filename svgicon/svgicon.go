// Provides parsing of SVG images into base paths.
// SVG files are parsed into an abstract representation
// (paths and their transforms), which is then flattened
// into the polylines the flow field is grown from.
package svgicon

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/benoitkugler/flowfield/svgpath"
	"golang.org/x/net/html/charset"
)

// ErrInvalidSVG is returned (wrapped) when the input is not an SVG document
// or is malformed.
var ErrInvalidSVG = errors.New("invalid svg document")

// ErrorMode is the for setting how the parser reacts to unparsed elements
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unparsed SVG elements
	IgnoreErrorMode ErrorMode = iota

	// WarnErrorMode logs a warning message and skips unparsed SVG elements
	WarnErrorMode

	// StrictErrorMode returns an error on unparsed SVG elements
	StrictErrorMode
)

// PathStyle holds the state of the SVG style relevant
// to the geometry: only the transform is tracked.
type PathStyle struct {
	transform svgpath.Matrix2D // current transform
}

// SvgPath binds a transform to a path
type SvgPath struct {
	Path      svgpath.Path
	Transform svgpath.Matrix2D
}

// Bounds defines a bounding box, such as a viewport
// or a path extent.
type Bounds struct{ X, Y, W, H float64 }

// SvgIcon holds data from parsed SVGs.
// See the `BasePaths` method to use it.
type SvgIcon struct {
	ViewBox      Bounds
	Titles       []string // Title elements collect here
	Descriptions []string // Description elements collect here
	SVGPaths     []SvgPath
	Transform    svgpath.Matrix2D

	Width, Height string // top level width and height attributes

	defs map[string][]definition
}

// ReadIconStream reads the Icon from the given io.Reader
// This only supports a sub-set of SVG (shapes, paths, groups and <use>),
// which is enough to extract the geometry of most drawings.
// errMode determines if the icon ignores, errors out, or logs a warning
// if it does not handle an element found in the icon file.
// Malformed documents return an error wrapping ErrInvalidSVG.
func ReadIconStream(stream io.Reader, errMode ErrorMode) (*SvgIcon, error) {
	icon := &SvgIcon{defs: make(map[string][]definition), Transform: svgpath.Identity}
	cursor := &iconCursor{styleStack: []PathStyle{{transform: svgpath.Identity}}, icon: icon}
	cursor.errorMode = errMode
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	seenTag := false
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenTag {
					return nil, fmt.Errorf("%w: no svg element", ErrInvalidSVG)
				}
				break
			}
			return icon, fmt.Errorf("%w: %w", ErrInvalidSVG, err)
		}
		// Inspect the type of the XML token
		switch se := t.(type) {
		case xml.StartElement:
			if !seenTag && se.Name.Local != "svg" {
				return nil, fmt.Errorf("%w: unexpected root element <%s>", ErrInvalidSVG, se.Name.Local)
			}
			seenTag = true
			if cursor.skipDepth > 0 { // inside an unsupported element
				cursor.skipDepth++
				continue
			}
			// Reads the transform of the start element
			// and places it on top of the styleStack
			err = cursor.pushStyle(se.Attr)
			if err != nil {
				return icon, fmt.Errorf("%w: %w", ErrInvalidSVG, err)
			}
			err = cursor.readStartElement(se)
			if err != nil {
				return icon, fmt.Errorf("%w: %w", ErrInvalidSVG, err)
			}
		case xml.EndElement:
			if cursor.skipDepth > 0 {
				cursor.skipDepth--
				if cursor.skipDepth > 0 {
					continue
				}
			}
			// pop style
			cursor.styleStack = cursor.styleStack[:len(cursor.styleStack)-1]
			switch se.Name.Local {
			case "g":
				if cursor.inDefs {
					cursor.currentDef = append(cursor.currentDef, definition{
						Tag: "endg",
					})
				}
			case "title":
				cursor.inTitleText = false
			case "desc":
				cursor.inDescText = false
			case "defs":
				if len(cursor.currentDef) > 0 {
					cursor.icon.defs[cursor.currentDef[0].ID] = cursor.currentDef
					cursor.currentDef = make([]definition, 0)
				}
				cursor.inDefs = false
			}
		case xml.CharData:
			if cursor.inTitleText {
				icon.Titles[len(icon.Titles)-1] += string(se)
			}
			if cursor.inDescText {
				icon.Descriptions[len(icon.Descriptions)-1] += string(se)
			}
		}
	}
	return icon, nil
}

// ReadIcon reads the Icon from the named file
// See ReadIconStream for the supported subset.
func ReadIcon(iconFile string, errMode ErrorMode) (*SvgIcon, error) {
	fin, errf := os.Open(iconFile)
	if errf != nil {
		return nil, errf
	}
	defer fin.Close()
	return ReadIconStream(fin, errMode)
}
