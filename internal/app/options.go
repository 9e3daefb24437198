package app

// DefaultHUDWidth is the width in pixels of the control panel right of the view.
const DefaultHUDWidth = 240

// Options configure the GUI game.
type Options struct {
	Scale      int
	TPS        int
	Probes     int
	HeaterSize float64
	Sound      bool
	HUDWidth   int
}

// Options converts the parsed flags into game options.
func (c *Config) Options() Options {
	return Options{
		Scale:      c.Scale,
		TPS:        c.TPS,
		Probes:     c.Probes,
		HeaterSize: c.Heater,
		Sound:      c.Sound,
		HUDWidth:   DefaultHUDWidth,
	}
}

func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.TPS <= 0 {
		o.TPS = 60
	}
	if o.HeaterSize <= 0 {
		o.HeaterSize = 48
	}
	if o.HUDWidth < 0 {
		o.HUDWidth = 0
	}
	return o
}
