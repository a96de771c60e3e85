// Command flowfield imports an SVG document, applies hint and
// parameter commands, renders the flow lines and exports them.
//
//	flowfield -svg shape.svg -hints hints.yaml -add-hint 10,20,30,20 -set pathInterval=5
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/benoitkugler/flowfield"
	"github.com/benoitkugler/flowfield/geom"
	"github.com/benoitkugler/flowfield/hints"
	"github.com/benoitkugler/flowfield/params"
	"github.com/benoitkugler/flowfield/svgdraw"
	"github.com/benoitkugler/flowfield/svgicon"
	"github.com/benoitkugler/flowfield/svgpath"
	"github.com/benoitkugler/flowfield/svgpdf"
	"github.com/benoitkugler/flowfield/svgraster"
)

// listFlag collects the values of a repeated flag
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, " ") }

func (l *listFlag) Set(s string) error {
	*l = append(*l, s)
	return nil
}

type options struct {
	svg, hints, settings string
	out, png, pdf        string
	scale                float64
	base, reset, strict  bool
	verbose              bool

	set, addHint, removeHint listFlag
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("flowfield", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.svg, "svg", "", "SVG document providing the base paths (required)")
	fs.StringVar(&opts.hints, "hints", "", "YAML hints document, updated by -add-hint and -remove-hint")
	fs.StringVar(&opts.settings, "settings", "", "JSON settings file, saved after each parameter change")
	fs.StringVar(&opts.out, "out", "", "SVG output file (default <exportName>.svg)")
	fs.StringVar(&opts.png, "png", "", "optional PNG preview file")
	fs.StringVar(&opts.pdf, "pdf", "", "optional PDF output file")
	fs.Float64Var(&opts.scale, "scale", 2, "scale of the PNG preview")
	fs.BoolVar(&opts.base, "base", false, "draw the base paths under the flow lines")
	fs.BoolVar(&opts.reset, "reset", false, "restore the default parameters before applying -set")
	fs.BoolVar(&opts.strict, "strict", false, "reject SVG documents with unsupported elements")
	fs.BoolVar(&opts.verbose, "v", false, "enable debug logs")
	fs.Var(&opts.set, "set", "parameter change `key=value` (repeatable)")
	fs.Var(&opts.addHint, "add-hint", "hint stroke `x0,y0,x1,y1` (repeatable)")
	fs.Var(&opts.removeHint, "remove-hint", "`id` of a hint stroke to remove (repeatable)")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.svg == "" {
		return opts, errors.New("missing -svg argument")
	}
	return opts, nil
}

// parseHint reads the start and end points of a hint stroke
func parseHint(s string) (start, end geom.Point, err error) {
	nums, err := svgpath.ReadNumbers(s)
	if err != nil {
		return start, end, fmt.Errorf("invalid hint %q: %w", s, err)
	}
	if len(nums) != 4 {
		return start, end, fmt.Errorf("invalid hint %q: expected 4 numbers, got %d", s, len(nums))
	}
	return geom.Pt(nums[0], nums[1]), geom.Pt(nums[2], nums[3]), nil
}

func loadBasePaths(path string, mode svgicon.ErrorMode) ([]*geom.Polyline, geom.Rect, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, geom.Rect{}, fmt.Errorf("failed to open svg: %w", err)
	}
	defer f.Close()
	return svgicon.Import(f, mode)
}

func run(opts options) error {
	mode := svgicon.WarnErrorMode
	if opts.strict {
		mode = svgicon.StrictErrorMode
	}
	polylines, canvas, err := loadBasePaths(opts.svg, mode)
	if err != nil {
		return err
	}
	basePaths := make([]geom.BasePath, len(polylines))
	for i, pl := range polylines {
		basePaths[i] = pl
	}

	p := params.Defaults()
	if opts.settings != "" {
		p, err = params.LoadFile(opts.settings)
		if errors.Is(err, params.ErrInvalidEntry) { // the other entries are still used
			flowfield.Logger().Warn("skipping settings", "file", opts.settings, "error", err)
		} else if err != nil {
			return err
		}
	}

	set := hints.NewSet()
	if opts.hints != "" {
		if set, err = hints.ReadFile(opts.hints); err != nil {
			return err
		}
	}

	session := flowfield.NewSession(p, set)
	session.SetBasePaths(basePaths, canvas)
	if opts.settings != "" {
		session.OnCommit = func(p params.Parameters) error { return p.SaveFile(opts.settings) }
	}

	if opts.reset {
		session.Reset()
	}
	for _, kv := range opts.set {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("invalid parameter change %q: expected key=value", kv)
		}
		if err := session.Set(key, value); err != nil {
			return err
		}
	}

	for _, id := range opts.removeHint {
		if err := session.RemoveHint(id); err != nil {
			return err
		}
	}
	for _, s := range opts.addHint {
		start, end, err := parseHint(s)
		if err != nil {
			return err
		}
		st := session.AddHint(start, end)
		flowfield.Logger().Debug("hint added", "id", st.ID)
	}
	if opts.hints != "" && len(opts.addHint)+len(opts.removeHint) > 0 {
		if err := hints.WriteFile(opts.hints, session.Hints()); err != nil {
			return err
		}
	}

	// commits render synchronously: no pass is running here
	layer, _ := session.Render()

	p = session.Parameters()
	var base []*geom.Polyline
	if opts.base {
		base = polylines
	}
	drawing := layer.Drawing(p.ExportName, canvas, base)

	out := opts.out
	if out == "" {
		out = p.ExportName + ".svg"
	}
	if err := svgdraw.WriteFile(out, drawing); err != nil {
		return err
	}
	flowfield.Logger().Info("drawing exported", "file", out)
	if opts.png != "" {
		if err := svgraster.WritePNGFile(opts.png, drawing, opts.scale); err != nil {
			return err
		}
		flowfield.Logger().Info("preview exported", "file", opts.png)
	}
	if opts.pdf != "" {
		if err := svgpdf.WriteFile(opts.pdf, drawing); err != nil {
			return err
		}
		flowfield.Logger().Info("pdf exported", "file", opts.pdf)
	}
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	flowfield.SetLogger(logger)

	if err == nil {
		err = run(opts)
	}
	if err != nil {
		logger.Error("flowfield failed", "error", err)
		os.Exit(1)
	}
}
