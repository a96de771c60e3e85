package flowfield

import (
	"errors"
	"testing"
	"time"

	"github.com/benoitkugler/flowfield/geom"
	"github.com/benoitkugler/flowfield/hints"
	"github.com/benoitkugler/flowfield/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession() *Session {
	p := params.Defaults()
	p.PathInterval = 10
	p.PathPoints = 20
	s := NewSession(p, nil)
	square := geom.NewPolyline([]geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}, true)
	line := geom.NewPolyline([]geom.Point{{X: 0, Y: 150}, {X: 100, Y: 150}}, false)
	s.SetBasePaths([]geom.BasePath{square, line}, geom.Rect{W: 200, H: 200})
	return s
}

func TestRender(t *testing.T) {
	s := testSession()
	layer, ok := s.Render()
	require.True(t, ok)
	assert.Len(t, layer.Strokes, 40+10)
	assert.Greater(t, layer.Points, 0)
	assert.Equal(t, layer, s.Layer())

	again, ok := s.Render()
	require.True(t, ok)
	assert.Equal(t, layer.Strokes, again.Strokes)
}

func TestOverlappingRenderDropped(t *testing.T) {
	s := testSession()
	pass, ok := s.Prepare()
	require.True(t, ok)

	_, ok = s.Render()
	assert.False(t, ok)
	assert.False(t, s.RenderAfter(nil))
	assert.Empty(t, s.Layer().Strokes, "layer is cleared while computing")

	pass.Compute()
	_, ok = s.Render()
	assert.True(t, ok)
}

func TestPassSnapshot(t *testing.T) {
	s := testSession()
	reference, ok := s.Render()
	require.True(t, ok)

	pass, ok := s.Prepare()
	require.True(t, ok)
	hint := s.AddHint(geom.Pt(0, 0), geom.Pt(30, 0))
	require.NoError(t, s.Set(params.NoiseSeed, "42"))
	layer := pass.Compute()
	assert.Equal(t, reference.Strokes, layer.Strokes)

	withHint, _ := s.Render()
	assert.NotEqual(t, reference.Strokes, withHint.Strokes)

	require.NoError(t, s.RemoveHint(hint.ID))
	assert.True(t, errors.Is(s.RemoveHint(hint.ID), hints.ErrNotFound))
}

func TestRenderAfter(t *testing.T) {
	s := testSession()
	s.Delay = time.Millisecond
	done := make(chan Layer, 1)
	require.True(t, s.RenderAfter(func(l Layer) { done <- l }))
	select {
	case l := <-done:
		assert.NotEmpty(t, l.Strokes)
	case <-time.After(5 * time.Second):
		t.Fatal("render not completed")
	}
}

func TestCommit(t *testing.T) {
	s := testSession()
	var saved []params.Parameters
	s.OnCommit = func(p params.Parameters) error {
		saved = append(saved, p)
		return nil
	}

	require.NoError(t, s.Set(params.PathPoints, "5000"))
	assert.Equal(t, 1000, s.Parameters().PathPoints)
	assert.True(t, errors.Is(s.Set("nope", "1"), params.ErrUnknownKey))
	require.Len(t, saved, 1)
	assert.Empty(t, s.Layer().Strokes, "no automatic render by default")

	require.NoError(t, s.Set(params.UpdateOnEachChange, "true"))
	assert.NotEmpty(t, s.Layer().Strokes)

	s.Reset()
	assert.Equal(t, params.Defaults(), s.Parameters())
	assert.Len(t, saved, 3)
}

func TestRemoveHintsNear(t *testing.T) {
	s := testSession()
	s.AddHint(geom.Pt(10, 10), geom.Pt(20, 10))
	s.AddHint(geom.Pt(80, 80), geom.Pt(90, 90))
	assert.Equal(t, 1, s.RemoveHintsNear(geom.Pt(15, 12), 3))
	assert.Equal(t, 1, s.Hints().Len())
}

func TestCanvasStartsIgnoreNoiseSeed(t *testing.T) {
	render := func(seed int64) Layer {
		p := params.Defaults()
		p.PathInterval = 10
		p.PathPoints = 5
		p.DirectionIntensity = 1
		p.RenderOnCanvas = true
		p.NoiseSeed = seed
		s := NewSession(p, nil)
		line := geom.NewPolyline([]geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}}, false)
		s.SetBasePaths([]geom.BasePath{line}, geom.Rect{W: 400, H: 400})
		s.AddHint(geom.Pt(20, 0), geom.Pt(20, 10))
		layer, ok := s.Render()
		require.True(t, ok)
		return layer
	}

	first, second := render(1), render(2)
	require.Len(t, first.Strokes, 10)
	assert.Equal(t, first.Strokes, second.Strokes)
	assert.Equal(t, first.Strokes, render(1).Strokes)
}
