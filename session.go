// Package flowfield generates decorative line art: strokes are grown
// from sample points along imported base paths, each step following
// a blend of user drawn direction hints and of a coherent noise field.
//
// A Session owns the document (base paths, hints, parameters) and runs
// the render passes, one at a time.
package flowfield

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benoitkugler/flowfield/geom"
	"github.com/benoitkugler/flowfield/hints"
	"github.com/benoitkugler/flowfield/noise"
	"github.com/benoitkugler/flowfield/params"
	"github.com/benoitkugler/flowfield/walker"
)

// DefaultDelay is the time waited by RenderAfter before computing,
// leaving the caller a chance to show a busy state.
const DefaultDelay = 10 * time.Millisecond

// canvasSeed seeds the random starts of the renderOnCanvas mode.
// It is independent of the noise settings: with a full hint
// weight, the strokes do not change with the noise seed.
const canvasSeed = 1

// Layer is the output of one render pass.
type Layer struct {
	Strokes  []walker.Stroke
	Points   int // total number of points of the strokes
	Duration time.Duration
}

// Session holds a document and renders it.
//
// Hint and parameter mutations are safe for concurrent use and only
// affect the passes prepared after them.
type Session struct {
	// Delay is used by RenderAfter; zero means DefaultDelay.
	Delay time.Duration
	// OnCommit, if non nil, is called after each parameter commit,
	// typically to persist them.
	OnCommit func(params.Parameters) error

	mu     sync.Mutex
	params params.Parameters
	paths  []geom.BasePath
	canvas geom.Rect
	hints  *hints.Set

	rendering atomic.Bool

	layerMu sync.RWMutex
	layer   Layer
}

// NewSession returns a session with the given parameters (clamped)
// and hints, which may be nil.
func NewSession(p params.Parameters, h *hints.Set) *Session {
	if h == nil {
		h = hints.NewSet()
	}
	return &Session{params: p.Clamped(), hints: h}
}

// SetBasePaths replaces the base paths, as done on import.
// The canvas bounds the random starts of the renderOnCanvas mode.
func (s *Session) SetBasePaths(paths []geom.BasePath, canvas geom.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = append([]geom.BasePath(nil), paths...)
	s.canvas = canvas
}

// BasePaths returns the current base paths and canvas.
func (s *Session) BasePaths() ([]geom.BasePath, geom.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]geom.BasePath(nil), s.paths...), s.canvas
}

// Hints returns the hint set of the document.
func (s *Session) Hints() *hints.Set { return s.hints }

// AddHint records a new hint stroke.
func (s *Session) AddHint(start, end geom.Point) hints.Stroke {
	return s.hints.Add(start, end)
}

// RemoveHint deletes a hint stroke by ID.
func (s *Session) RemoveHint(id string) error {
	return s.hints.Remove(id)
}

// RemoveHintsNear erases the hints passing within `radius` of p.
func (s *Session) RemoveHintsNear(p geom.Point, radius float64) int {
	return s.hints.RemoveNear(p, radius)
}

// Parameters returns the current parameters.
func (s *Session) Parameters() params.Parameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// Set commits one parameter, given as text. On success, the parameters
// are passed to OnCommit and, if updateOnEachChange is enabled, a
// render pass is run.
func (s *Session) Set(key, value string) error {
	s.mu.Lock()
	err := s.params.Set(key, value)
	p := s.params
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.commit(p)
	return nil
}

// SetParameters replaces every parameter (after clamping) and commits them.
func (s *Session) SetParameters(p params.Parameters) {
	p = p.Clamped()
	s.mu.Lock()
	s.params = p
	s.mu.Unlock()
	s.commit(p)
}

// Reset restores the default parameters and commits them.
func (s *Session) Reset() { s.SetParameters(params.Defaults()) }

func (s *Session) commit(p params.Parameters) {
	if s.OnCommit != nil {
		if err := s.OnCommit(p); err != nil {
			Logger().Warn("saving parameters", "error", err)
		}
	}
	if p.UpdateOnEachChange {
		s.Render()
	}
}

// Layer returns the strokes of the last completed pass.
// It is empty while a pass is running.
func (s *Session) Layer() Layer {
	s.layerMu.RLock()
	defer s.layerMu.RUnlock()
	return s.layer
}

func (s *Session) publish(l Layer) {
	s.layerMu.Lock()
	s.layer = l
	s.layerMu.Unlock()
}

// Pass is a prepared render pass, holding a snapshot of the document.
// Compute must be called exactly once.
type Pass struct {
	session *Session

	params  params.Parameters
	paths   []geom.BasePath
	canvas  geom.Rect
	strokes []hints.Stroke
	field   noise.Field
}

// Prepare starts a pass: it takes the render lock, clears the layer,
// configures the noise and snapshots the document.
// If another pass is running, the request is dropped and false is returned.
func (s *Session) Prepare() (*Pass, bool) {
	if !s.rendering.CompareAndSwap(false, true) {
		Logger().Debug("render request dropped: a pass is running")
		return nil, false
	}
	s.publish(Layer{})

	s.mu.Lock()
	pass := &Pass{
		session: s,
		params:  s.params,
		paths:   append([]geom.BasePath(nil), s.paths...),
		canvas:  s.canvas,
	}
	s.mu.Unlock()
	pass.strokes = s.hints.Snapshot()

	field, err := noise.New(pass.params.NoiseEngine)
	if err != nil { // not reachable with clamped parameters
		field = noise.NewPerlin()
	}
	field.Seed(pass.params.NoiseSeed)
	field.ConfigureDetail(pass.params.NoiseOctaves, pass.params.NoiseFalloff)
	pass.field = field

	Logger().Debug("render pass prepared", "paths", len(pass.paths), "hints", len(pass.strokes))
	return pass, true
}

// Compute walks every base path, publishes the resulting layer
// and releases the render lock.
func (pass *Pass) Compute() Layer {
	defer pass.session.rendering.Store(false)

	start := time.Now()
	opts := walker.Options{
		Canvas:   pass.canvas,
		Simplify: func(pts []geom.Point) []geom.Point { return geom.Simplify(pts, geom.DefaultSimplifyTolerance) },
	}
	if pass.params.RenderOnCanvas {
		opts.Rand = rand.New(rand.NewSource(canvasSeed))
	}

	var layer Layer
	assigned := hints.Assign(pass.paths, pass.strokes)
	for i, path := range pass.paths {
		interp := hints.Prepare(path, assigned[i])
		strokes := walker.Generate(path, interp, pass.field, pass.params, opts)
		for _, st := range strokes {
			layer.Points += len(st.Points)
		}
		layer.Strokes = append(layer.Strokes, strokes...)
	}
	layer.Duration = time.Since(start)

	pass.session.publish(layer)
	Logger().Info("render pass done",
		"paths", len(pass.paths), "strokes", len(layer.Strokes),
		"points", layer.Points, "duration", layer.Duration)
	return layer
}

// Render runs a full pass synchronously. It returns false if
// another pass was running, in which case nothing is done.
func (s *Session) Render() (Layer, bool) {
	pass, ok := s.Prepare()
	if !ok {
		return Layer{}, false
	}
	return pass.Compute(), true
}

// RenderAfter prepares a pass right away and computes it after
// s.Delay, on a timer goroutine. `done`, if non nil, receives the layer.
// It returns false if the request was dropped.
func (s *Session) RenderAfter(done func(Layer)) bool {
	pass, ok := s.Prepare()
	if !ok {
		return false
	}
	delay := s.Delay
	if delay == 0 {
		delay = DefaultDelay
	}
	time.AfterFunc(delay, func() {
		layer := pass.Compute()
		if done != nil {
			done(layer)
		}
	})
	return true
}
