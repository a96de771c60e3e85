// Implements the direction hints: user drawn strokes anchored
// along the base paths, and their interpolation by arc length.
package hints

import (
	"errors"
	"sync"

	"github.com/benoitkugler/flowfield/geom"
	"github.com/google/uuid"
)

// ErrNotFound is returned when removing a hint which is not in the set.
var ErrNotFound = errors.New("hint not found")

// Stroke is a directed segment drawn over the base paths.
type Stroke struct {
	ID         string
	Start, End geom.Point
}

// StrokeVector returns the raw displacement of a hint, End - Start.
func StrokeVector(s Stroke) geom.Point { return s.End.Sub(s.Start) }

// Set is the mutable collection of hints of a document.
// It is safe for concurrent use; render passes work on a Snapshot.
type Set struct {
	mu      sync.RWMutex
	strokes []Stroke // in insertion order
}

// NewSet returns a set initialized with a copy of `strokes`.
// Strokes without ID are given one.
func NewSet(strokes ...Stroke) *Set {
	s := &Set{}
	for _, st := range strokes {
		s.add(st)
	}
	return s
}

func (s *Set) add(st Stroke) Stroke {
	if st.ID == "" {
		st.ID = uuid.New().String()
	}
	s.strokes = append(s.strokes, st)
	return st
}

// Add registers a new hint from `start` to `end` and returns it.
func (s *Set) Add(start, end geom.Point) Stroke {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(Stroke{Start: start, End: end})
}

// Remove deletes the hint with the given ID.
func (s *Set) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, st := range s.strokes {
		if st.ID == id {
			s.strokes = append(s.strokes[:i], s.strokes[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// RemoveNear deletes every hint passing within `radius` of p,
// and returns the number of removed hints.
func (s *Set) RemoveNear(p geom.Point, radius float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.strokes[:0]
	for _, st := range s.strokes {
		if geom.SegmentDistance(st.Start, st.End, p) > radius {
			kept = append(kept, st)
		}
	}
	removed := len(s.strokes) - len(kept)
	s.strokes = kept
	return removed
}

// Clear removes every hint.
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strokes = nil
}

// Len returns the number of hints.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.strokes)
}

// Snapshot returns a copy of the hints, in insertion order.
func (s *Set) Snapshot() []Stroke {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Stroke(nil), s.strokes...)
}
