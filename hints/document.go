package hints

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/benoitkugler/flowfield/geom"
	"gopkg.in/yaml.v3"
)

// document is the on disk representation of a hint set
type document struct {
	Hints []strokeEntry `yaml:"hints"`
}

type strokeEntry struct {
	ID    string     `yaml:"id,omitempty"`
	Start [2]float64 `yaml:"start,flow"`
	End   [2]float64 `yaml:"end,flow"`
}

// ReadDocument parses a YAML list of hints:
//
//	hints:
//	  - id: 0b9e4e3a-...
//	    start: [10, 20]
//	    end: [30, 20]
//
// Missing IDs are generated.
func ReadDocument(r io.Reader) (*Set, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid hints document: %w", err)
	}
	strokes := make([]Stroke, len(doc.Hints))
	for i, e := range doc.Hints {
		strokes[i] = Stroke{
			ID:    e.ID,
			Start: geom.Pt(e.Start[0], e.Start[1]),
			End:   geom.Pt(e.End[0], e.End[1]),
		}
	}
	return NewSet(strokes...), nil
}

// WriteDocument serializes the current hints of `s` as YAML.
func WriteDocument(w io.Writer, s *Set) error {
	var doc document
	for _, st := range s.Snapshot() {
		doc.Hints = append(doc.Hints, strokeEntry{
			ID:    st.ID,
			Start: [2]float64{st.Start.X, st.Start.Y},
			End:   [2]float64{st.End.X, st.End.Y},
		})
	}
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode hints: %w", err)
	}
	return enc.Close()
}

// ReadFile reads a hints document. A missing file yields an empty set.
func ReadFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewSet(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open hints: %w", err)
	}
	defer f.Close()
	return ReadDocument(f)
}

// WriteFile saves a hints document.
func WriteFile(path string, s *Set) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create hints file: %w", err)
	}
	if err = WriteDocument(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
