package frost

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"window-frost/internal/noise"
)

// fileConfig mirrors the game's frost asset. Growth keys sit at the top level;
// the optional grid keys override the defaults when present.
type fileConfig struct {
	Width      *int     `json:"Width,omitempty"`
	Height     *int     `json:"Height,omitempty"`
	Seed       *int64   `json:"Seed,omitempty"`
	Noise      *string  `json:"Noise,omitempty"`
	NoiseScale *float64 `json:"NoiseScale,omitempty"`
	Params
}

// LoadConfigFile reads a JSON frost asset over the defaults and validates it.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open frost config: %w", err)
	}
	defer f.Close()
	cfg, err := ParseConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes a JSON frost asset over the defaults and validates it.
// Unknown keys are rejected so typos in the asset surface immediately.
func ParseConfig(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("read frost config: %w", err)
	}
	cfg := DefaultConfig()
	fc := fileConfig{Params: cfg.Params}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		return Config{}, fmt.Errorf("%w: decode: %v", ErrInvalidConfig, err)
	}
	cfg.Params = fc.Params
	if fc.Width != nil {
		cfg.Width = *fc.Width
	}
	if fc.Height != nil {
		cfg.Height = *fc.Height
	}
	if fc.Seed != nil {
		cfg.Seed = *fc.Seed
	}
	if fc.Noise != nil {
		cfg.Noise = noise.Kind(*fc.Noise)
	}
	if fc.NoiseScale != nil {
		cfg.NoiseScale = *fc.NoiseScale
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
