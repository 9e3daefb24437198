package frost

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"window-frost/internal/noise"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("frost: invalid config")

// Params holds the growth tunables of one simulation instance.
type Params struct {
	GrowSpeed          float64 `json:"GrowSpeed"`
	FrostCount         int     `json:"FrostCount"`
	InitialSizeMin     float64 `json:"InitialSizeMin"`
	InitialSizeMax     float64 `json:"InitialSizeMax"`
	FrostIncreaseSpeed float64 `json:"FrostIncreaseSpeed"`
	InitialStrengthMin float64 `json:"InitialStrengthMin"`
	InitialStrengthMax float64 `json:"InitialStrengthMax"`

	// MeltRate is the fraction of intensity every cell loses per second before
	// accumulation. Zero disables melting, which keeps growth monotonic.
	MeltRate float64 `json:"MeltRate"`
}

// Config controls the frost field dimensions and its procedural sources.
type Config struct {
	Width  int
	Height int

	Seed int64

	Noise      noise.Kind
	NoiseScale float64

	Params Params
}

// Field dimensions used by the game window.
const (
	DefaultWidth  = 128
	DefaultHeight = 128
)

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Seed:       1337,
		Noise:      noise.KindSimplex,
		NoiseScale: 0.08,
		Params: Params{
			GrowSpeed:          2.0,
			FrostCount:         24,
			InitialSizeMin:     2,
			InitialSizeMax:     18,
			FrostIncreaseSpeed: 0.15,
			InitialStrengthMin: 0.1,
			InitialStrengthMax: 0.4,
		},
	}
}

// MaxCells bounds the field area.
const MaxCells = 1 << 24

// Validate reports the first malformed field. It never adjusts the config.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: field size %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Width > MaxCells/c.Height {
		return fmt.Errorf("%w: field size %dx%d exceeds %d cells", ErrInvalidConfig, c.Width, c.Height, MaxCells)
	}
	if !noise.Known(c.Noise) {
		return fmt.Errorf("%w: unknown noise kind %q", ErrInvalidConfig, c.Noise)
	}
	if !finite(c.NoiseScale) || c.NoiseScale <= 0 {
		return fmt.Errorf("%w: noise scale %v must be positive", ErrInvalidConfig, c.NoiseScale)
	}
	return c.Params.Validate()
}

// Validate reports the first malformed growth parameter.
func (p Params) Validate() error {
	if p.FrostCount < 0 {
		return fmt.Errorf("%w: frost count %d is negative", ErrInvalidConfig, p.FrostCount)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"grow speed", p.GrowSpeed},
		{"initial size min", p.InitialSizeMin},
		{"initial size max", p.InitialSizeMax},
		{"frost increase speed", p.FrostIncreaseSpeed},
		{"initial strength min", p.InitialStrengthMin},
		{"initial strength max", p.InitialStrengthMax},
		{"melt rate", p.MeltRate},
	} {
		if !finite(f.v) || f.v < 0 {
			return fmt.Errorf("%w: %s %v must be a non-negative number", ErrInvalidConfig, f.name, f.v)
		}
	}
	if p.InitialSizeMax < p.InitialSizeMin {
		return fmt.Errorf("%w: initial size max %v < min %v", ErrInvalidConfig, p.InitialSizeMax, p.InitialSizeMin)
	}
	if p.InitialStrengthMax < p.InitialStrengthMin {
		return fmt.Errorf("%w: initial strength max %v < min %v", ErrInvalidConfig, p.InitialStrengthMax, p.InitialStrengthMin)
	}
	if p.InitialStrengthMax > 1 {
		return fmt.Errorf("%w: initial strength max %v exceeds 1", ErrInvalidConfig, p.InitialStrengthMax)
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable values keep their defaults; range checks are left to Validate.
func FromMap(cfg map[string]string) Config {
	return ApplyMap(DefaultConfig(), cfg)
}

// ConfigFromMap resolves a validated config from a string map. The "config"
// key names a JSON asset used as the base instead of the defaults; the other
// keys override it as in FromMap.
func ConfigFromMap(cfg map[string]string) (Config, error) {
	base := DefaultConfig()
	if path := cfg["config"]; path != "" {
		loaded, err := LoadConfigFile(path)
		if err != nil {
			return Config{}, err
		}
		base = loaded
	}
	c := ApplyMap(base, cfg)
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// ApplyMap overrides c with the recognized keys of cfg.
func ApplyMap(c Config, cfg map[string]string) Config {
	if cfg == nil {
		return c
	}
	setInt(cfg, "w", &c.Width)
	setInt(cfg, "h", &c.Height)
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["noise"]; ok {
		c.Noise = noise.Kind(v)
	}
	setFloat(cfg, "noise_scale", &c.NoiseScale)
	setFloat(cfg, "grow_speed", &c.Params.GrowSpeed)
	setInt(cfg, "frost_count", &c.Params.FrostCount)
	setFloat(cfg, "initial_size_min", &c.Params.InitialSizeMin)
	setFloat(cfg, "initial_size_max", &c.Params.InitialSizeMax)
	setFloat(cfg, "frost_increase_speed", &c.Params.FrostIncreaseSpeed)
	setFloat(cfg, "initial_strength_min", &c.Params.InitialStrengthMin)
	setFloat(cfg, "initial_strength_max", &c.Params.InitialStrengthMax)
	setFloat(cfg, "melt_rate", &c.Params.MeltRate)
	return c
}

func setInt(cfg map[string]string, key string, dst *int) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

func setFloat(cfg map[string]string, key string, dst *float64) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = parsed
		}
	}
}
