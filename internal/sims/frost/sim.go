package frost

import (
	"log/slog"
	"strconv"

	"window-frost/internal/core"
)

// Name is the registry key of the frost sim.
const Name = "frost"

// Sim adapts a Simulation to core.Sim so the viewers and the registry can drive
// it. Changing a parameter rebuilds the simulation from scratch; a Simulation's
// config never changes after construction.
type Sim struct {
	cfg     Config
	sim     *Simulation
	display []uint8
}

var (
	_ core.Sim                       = (*Sim)(nil)
	_ core.ParameterControlsProvider = (*Sim)(nil)
	_ core.IntParameterSetter        = (*Sim)(nil)
	_ core.FloatParameterSetter      = (*Sim)(nil)
)

// NewSim builds a frost Sim from cfg.
func NewSim(cfg Config) (*Sim, error) {
	sim, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return &Sim{
		cfg:     cfg,
		sim:     sim,
		display: make([]uint8, cfg.Width*cfg.Height),
	}, nil
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return Name }

// Size reports the grid dimensions.
func (s *Sim) Size() core.Size { return s.sim.Size() }

// Simulation exposes the current frost simulation.
func (s *Sim) Simulation() *Simulation { return s.sim }

// Reset rebuilds the simulation. A zero seed reuses the configured one.
func (s *Sim) Reset(seed int64) {
	cfg := s.cfg
	if seed != 0 {
		cfg.Seed = seed
	}
	if err := s.rebuild(cfg); err != nil {
		slog.Warn("frost reset failed", "seed", seed, "error", err)
	}
}

func (s *Sim) rebuild(cfg Config) error {
	sim, err := New(cfg)
	if err != nil {
		return err
	}
	s.cfg = cfg
	s.sim = sim
	if n := cfg.Width * cfg.Height; len(s.display) != n {
		s.display = make([]uint8, n)
	}
	return nil
}

// Cells quantizes the intensity field to one byte per cell.
func (s *Sim) Cells() []uint8 {
	for i, v := range s.sim.Field() {
		s.display[i] = uint8(v*255 + 0.5)
	}
	return s.display
}

// Parameters reports the current configuration for the HUD.
func (s *Sim) Parameters() core.ParameterSnapshot {
	p := s.cfg.Params
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Field",
			Params: []core.Parameter{
				core.IntParam("w", "Width", s.cfg.Width),
				core.IntParam("h", "Height", s.cfg.Height),
				{Key: "seed", Label: "Seed", Type: core.ParamTypeInt, Value: strconv.FormatInt(s.cfg.Seed, 10)},
				{Key: "noise", Label: "Noise", Value: string(s.cfg.Noise)},
				core.FloatParam("noise_scale", "Noise scale", s.cfg.NoiseScale),
			},
		},
		{
			Name: "Growth",
			Params: []core.Parameter{
				core.FloatParam("grow_speed", "Grow speed", p.GrowSpeed),
				core.IntParam("frost_count", "Seed count", p.FrostCount),
				core.FloatParam("initial_size_min", "Initial size min", p.InitialSizeMin),
				core.FloatParam("initial_size_max", "Initial size max", p.InitialSizeMax),
				core.FloatParam("frost_increase_speed", "Frost increase speed", p.FrostIncreaseSpeed),
				core.FloatParam("initial_strength_min", "Initial strength min", p.InitialStrengthMin),
				core.FloatParam("initial_strength_max", "Initial strength max", p.InitialStrengthMax),
				core.FloatParam("melt_rate", "Melt rate", p.MeltRate),
			},
		},
		{
			Name: "State",
			Params: []core.Parameter{
				core.FloatParam("frozen", "Frozen share", s.sim.FrozenFraction()),
				core.FloatParam("elapsed", "Elapsed", s.sim.Elapsed()),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable parameters.
func (s *Sim) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "grow_speed", Label: "Grow speed", Type: core.ParamTypeFloat, Step: 0.25, Min: 0, Max: 20, HasMin: true, HasMax: true},
		{Key: "frost_count", Label: "Seeds", Type: core.ParamTypeInt, Step: 4, Min: 0, Max: 512, HasMin: true, HasMax: true},
		{Key: "initial_size_max", Label: "Max radius", Type: core.ParamTypeFloat, Step: 1, Min: 1, Max: 128, HasMin: true, HasMax: true},
		{Key: "frost_increase_speed", Label: "Strength rate", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 5, HasMin: true, HasMax: true},
		{Key: "melt_rate", Label: "Melt rate", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
	}
}

// SetIntParameter updates an integer tunable and rebuilds the simulation.
func (s *Sim) SetIntParameter(key string, value int) bool {
	cfg := s.cfg
	switch key {
	case "frost_count":
		cfg.Params.FrostCount = value
	default:
		return false
	}
	return s.apply(key, cfg)
}

// SetFloatParameter updates a float tunable and rebuilds the simulation.
func (s *Sim) SetFloatParameter(key string, value float64) bool {
	cfg := s.cfg
	switch key {
	case "grow_speed":
		cfg.Params.GrowSpeed = value
	case "initial_size_max":
		cfg.Params.InitialSizeMax = value
	case "frost_increase_speed":
		cfg.Params.FrostIncreaseSpeed = value
	case "melt_rate":
		cfg.Params.MeltRate = value
	default:
		return false
	}
	return s.apply(key, cfg)
}

func (s *Sim) apply(key string, cfg Config) bool {
	if err := s.rebuild(cfg); err != nil {
		slog.Debug("frost parameter rejected", "key", key, "error", err)
		return false
	}
	return true
}

func init() {
	core.Register(Name, func(m map[string]string) (core.Sim, error) {
		cfg, err := ConfigFromMap(m)
		if err != nil {
			return nil, err
		}
		sim, err := NewSim(cfg)
		if err != nil {
			return nil, err
		}
		return sim, nil
	})
}
