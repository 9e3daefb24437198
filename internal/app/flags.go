package app

import (
	"flag"
	"fmt"
	"strconv"

	"window-frost/internal/core"
	"window-frost/internal/sims/frost"
)

// Config represents the command-line parameters shared by the viewers.
type Config struct {
	ConfigFile string
	Seed       int64
	Noise      string
	Scale      int
	TPS        int
	Probes     int
	Heater     float64
	Sound      bool
	LogLevel   string
	LogFile    string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Scale: 5, TPS: 60, Probes: 5, Heater: 48, Sound: true, LogLevel: "info"}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	c.BindCommon(fs)
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.Probes, "probes", c.Probes, "number of frost probes")
	fs.Float64Var(&c.Heater, "heater", c.Heater, "heater size in world units")
	fs.BoolVar(&c.Sound, "sound", c.Sound, "play freeze and thaw cues")
}

// BindCommon attaches only the simulation and logging flags, for headless
// tools.
func (c *Config) BindCommon(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "frost JSON asset (defaults when empty)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed override (0 keeps the configured seed)")
	fs.StringVar(&c.Noise, "noise", c.Noise, "growth bias noise: simplex or perlin")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "write logs to this file")
}

// SimOptions renders the simulation flags as the registry's key/value map.
// Unset flags are left out so the asset or the defaults apply.
func (c *Config) SimOptions() map[string]string {
	m := map[string]string{}
	if c.ConfigFile != "" {
		m["config"] = c.ConfigFile
	}
	if c.Seed != 0 {
		m["seed"] = strconv.FormatInt(c.Seed, 10)
	}
	if c.Noise != "" {
		m["noise"] = c.Noise
	}
	return m
}

// FrostConfig resolves the simulation config: the asset file or defaults,
// then the seed and noise overrides.
func (c *Config) FrostConfig() (frost.Config, error) {
	return frost.ConfigFromMap(c.SimOptions())
}

// NewSim builds the frost sim through the registry.
func (c *Config) NewSim() (*frost.Sim, error) {
	factory, err := core.Lookup(frost.Name)
	if err != nil {
		return nil, err
	}
	sim, err := factory(c.SimOptions())
	if err != nil {
		return nil, err
	}
	fs, ok := sim.(*frost.Sim)
	if !ok {
		return nil, fmt.Errorf("sim %q is %T, not a frost sim", frost.Name, sim)
	}
	return fs, nil
}

// Validate checks the viewer-side flags.
func (c *Config) Validate() error {
	if c.Scale <= 0 {
		return fmt.Errorf("scale %d must be positive", c.Scale)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("tps %d must be positive", c.TPS)
	}
	if c.Probes < 0 {
		return fmt.Errorf("probes %d must not be negative", c.Probes)
	}
	if c.Heater <= 0 {
		return fmt.Errorf("heater size %v must be positive", c.Heater)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
