package params

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Values returns the flat key/value mapping of p, as stored on disk.
func (p Parameters) Values() map[string]interface{} {
	return map[string]interface{}{
		NoiseOctaves:       p.NoiseOctaves,
		NoiseFalloff:       p.NoiseFalloff,
		NoiseSeed:          p.NoiseSeed,
		NoiseDetalisation:  p.NoiseDetalisation,
		NoiseRotation:      p.NoiseRotation,
		NoiseIntensity:     p.NoiseIntensity,
		NoiseEngine:        string(p.NoiseEngine),
		PathInterval:       p.PathInterval,
		PathPoints:         p.PathPoints,
		PathPointDistance:  p.PathPointDistance,
		DirectionIntensity: p.DirectionIntensity,
		RenderOnCanvas:     p.RenderOnCanvas,
		UpdateOnEachChange: p.UpdateOnEachChange,
		ExportName:         p.ExportName,
	}
}

// Save writes p as a flat JSON object.
func (p Parameters) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p.Values())
}

// ErrInvalidEntry is reported (wrapped) by Load for each stored
// value whose type does not match its parameter.
var ErrInvalidEntry = errors.New("invalid setting")

// Load reads a flat JSON object. Missing keys keep their default value
// and unknown keys are ignored. Entries with a wrong type are skipped
// (keeping the default) and reported in the returned error, alongside
// valid parameters: a non nil error with a nil decoding failure still
// comes with usable parameters, and errors.Is(err, ErrInvalidEntry) holds.
func Load(r io.Reader) (Parameters, error) {
	p := Defaults()
	var stored map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&stored); err != nil {
		if err == io.EOF { // empty storage
			return p, nil
		}
		return p, fmt.Errorf("invalid settings: %w", err)
	}

	var errs []error
	for _, c := range Controls {
		raw, ok := stored[c.Key]
		if !ok {
			continue
		}
		if err := p.decode(c, raw); err != nil {
			errs = append(errs, fmt.Errorf("%w %s: %w", ErrInvalidEntry, c.Key, err))
		}
	}
	return p.Clamped(), errors.Join(errs...)
}

func (p *Parameters) decode(c Control, raw json.RawMessage) error {
	switch c.Kind {
	case Bool:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return err
		}
		p.setBool(c.Key, b)
	case Text:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		p.setText(c.Key, s)
	default:
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return err
		}
		p.setNumber(c.Key, f)
	}
	return nil
}

// LoadFile reads the settings file at `path`.
// A missing file is not an error: defaults are returned.
func LoadFile(path string) (Parameters, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return Defaults(), fmt.Errorf("failed to open settings: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// SaveFile writes the settings file at `path`.
func (p Parameters) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create settings: %w", err)
	}
	if err = p.Save(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return f.Close()
}
