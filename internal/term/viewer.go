// Package term renders the frost scene in a terminal with tcell. Each
// terminal cell shows two field rows using an upper half block.
package term

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"

	"window-frost/internal/audio"
	"window-frost/internal/core"
	"window-frost/internal/render"
	"window-frost/internal/scene"
	"window-frost/internal/sims/frost"
)

// CuePlayer plays a sound cue. *audio.Player satisfies it.
type CuePlayer interface {
	Play(audio.Cue) bool
}

// muter is implemented by cue players that can be silenced.
type muter interface {
	ToggleMute() bool
}

// Options configure a Viewer.
type Options struct {
	TPS        int
	HeaterSize float64
	Probes     int
}

const (
	halfBlock  = '▀'
	heaterRune = '░'
	probeRune  = '■'
	keyStep    = 2.0
	probeSize  = 6.0
)

var (
	heaterColor = tcell.NewRGBColor(255, 150, 60)
	frozenColor = tcell.NewRGBColor(0, 205, 249)
	thawedColor = tcell.NewRGBColor(240, 90, 90)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
)

// Viewer drives a scene from terminal input and draws it to a tcell screen.
type Viewer struct {
	screen  tcell.Screen
	scene   *scene.Scene
	clock   *core.FixedStep
	cues    CuePlayer
	opts    Options
	palette []tcell.Color

	target  frost.Vec2
	paused  bool
	freezes int
	thaws   int
}

// New wraps sim in a scene sized to the screen. cues may be nil.
func New(screen tcell.Screen, sim *frost.Simulation, opts Options, cues CuePlayer) *Viewer {
	if opts.TPS <= 0 {
		opts.TPS = 60
	}
	if opts.HeaterSize <= 0 {
		opts.HeaterSize = 8
	}
	v := &Viewer{
		screen:  screen,
		clock:   core.NewFixedStep(opts.TPS),
		cues:    cues,
		opts:    opts,
		palette: tcellPalette(render.FrostPalette()),
	}
	v.scene = scene.New(sim, v.viewport(), frost.Vec2{X: opts.HeaterSize, Y: opts.HeaterSize})
	v.placeProbes()
	return v
}

func tcellPalette(p []color.RGBA) []tcell.Color {
	out := make([]tcell.Color, len(p))
	for i, c := range p {
		out[i] = tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return out
}

// Scene exposes the driven scene.
func (v *Viewer) Scene() *scene.Scene { return v.scene }

// viewport covers every screen row but the status line, two world units per
// row so world space stays square.
func (v *Viewer) viewport() frost.Viewport {
	w, h := v.screen.Size()
	return frost.Viewport{Width: float64(w), Height: float64(max(h-1, 0) * 2)}
}

func (v *Viewer) placeProbes() { v.scene.SpreadProbes(v.opts.Probes, probeSize) }

// Tick advances the scene by dt and plays cues for probe transitions.
func (v *Viewer) Tick(dt float64) error {
	if v.paused {
		return nil
	}
	events, err := v.scene.Update(dt, v.target)
	if err != nil {
		return err
	}
	for _, e := range events {
		cue := audio.CueFreeze
		if e.Transition == scene.Thawed {
			cue = audio.CueThaw
			v.thaws++
		} else {
			v.freezes++
		}
		slog.Debug("probe transition", "probe", e.Probe.Name, "transition", e.Transition)
		if v.cues != nil {
			v.cues.Play(cue)
		}
	}
	return nil
}

// HandleEvent applies one input event. It reports false when the viewer
// should quit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			v.target.Y += keyStep
		case tcell.KeyDown:
			v.target.Y -= keyStep
		case tcell.KeyLeft:
			v.target.X -= keyStep
		case tcell.KeyRight:
			v.target.X += keyStep
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.paused = !v.paused
			case 'c':
				sim := v.scene.Sim
				sim.ClearRect(sim.Bounds())
			case 'r':
				v.reseed()
			case 'm':
				if m, ok := v.cues.(muter); ok {
					slog.Info("mute toggled", "muted", m.ToggleMute())
				}
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		v.target = v.scene.Viewport.ViewportToWorld(frost.Vec2{X: float64(x) + 0.5, Y: float64(2*y) + 1})
	case *tcell.EventResize:
		v.scene.Viewport = v.viewport()
		v.placeProbes()
		v.screen.Sync()
	}
	return true
}

func (v *Viewer) reseed() {
	cfg := v.scene.Sim.Config()
	cfg.Seed++
	sim, err := frost.New(cfg)
	if err != nil {
		slog.Warn("reseed failed", "seed", cfg.Seed, "error", err)
		return
	}
	v.scene.Sim = sim
	v.placeProbes()
	v.freezes, v.thaws = 0, 0
	slog.Info("reseeded", "seed", cfg.Seed)
}

// Draw renders the field, heater, probes and status line.
func (v *Viewer) Draw() {
	v.screen.Clear()
	sw, sh := v.screen.Size()
	rows := sh - 1
	sim := v.scene.Sim
	vp := v.scene.Viewport
	scale := sim.Scale(vp)
	size := sim.Size()

	sample := func(vx, vy int) tcell.Color {
		fx := int((float64(vx) + 0.5) * scale.X)
		fy := size.H - 1 - int((float64(vy)+0.5)*scale.Y)
		i := int(sim.At(fx, fy)*255 + 0.5)
		return v.palette[min(max(i, 0), len(v.palette)-1)]
	}
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < sw; cx++ {
			style := tcell.StyleDefault.Foreground(sample(cx, 2*cy)).Background(sample(cx, 2*cy+1))
			v.screen.SetContent(cx, cy, halfBlock, nil, style)
		}
	}

	v.drawBox(v.scene.Heater.Box(), heaterRune, heaterColor)
	for _, p := range v.scene.Probes {
		c := thawedColor
		if p.Frozen() {
			c = frozenColor
		}
		v.drawBox(p.Box, probeRune, c)
	}
	v.drawStatus(sw, sh)
}

// drawBox marks the terminal cells a world box covers, keeping the field
// colour underneath as background.
func (v *Viewer) drawBox(box frost.WorldRect, r rune, fg tcell.Color) {
	vp := v.scene.Viewport
	tl := vp.WorldToViewport(box.Pos)
	x0, x1 := int(tl.X), int(tl.X+box.Size.X)
	y0, y1 := int(tl.Y)/2, int(tl.Y+box.Size.Y)/2
	sw, sh := v.screen.Size()
	for y := max(y0, 0); y <= min(y1, sh-2); y++ {
		for x := max(x0, 0); x <= min(x1, sw-1); x++ {
			_, _, style, _ := v.screen.GetContent(x, y)
			_, bg, _ := style.Decompose()
			v.screen.SetContent(x, y, r, nil, tcell.StyleDefault.Foreground(fg).Background(bg))
		}
	}
}

func (v *Viewer) drawStatus(sw, sh int) {
	sim := v.scene.Sim
	state := "running"
	if v.paused {
		state = "paused"
	}
	line := fmt.Sprintf(" frost %5.1f%%  t %ss  probes %d/%d  freezes %s  thaws %s  %s  [arrows/mouse] heater [space] pause [c] clear [r] reseed [m] mute [q] quit",
		sim.FrozenFraction()*100,
		humanize.Ftoa(roundTenth(sim.Elapsed())),
		v.scene.FrozenProbes(), len(v.scene.Probes),
		humanize.Comma(int64(v.freezes)), humanize.Comma(int64(v.thaws)),
		state,
	)
	x := 0
	for _, r := range line {
		if x >= sw {
			break
		}
		v.screen.SetContent(x, sh-1, r, nil, statusStyle)
		x++
	}
	for ; x < sw; x++ {
		v.screen.SetContent(x, sh-1, ' ', nil, statusStyle)
	}
}

func roundTenth(v float64) float64 { return float64(int64(v*10+0.5)) / 10 }

// Run polls input and advances the scene at the configured rate until ctx is
// done or the user quits.
func (v *Viewer) Run(ctx context.Context) error {
	v.screen.EnableMouse()
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	frame := time.NewTicker(v.clock.Step())
	defer frame.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !v.HandleEvent(ev) {
				return nil
			}
		case <-frame.C:
			for n := v.clock.Due(); n > 0; n-- {
				if err := v.Tick(v.clock.Seconds()); err != nil {
					return err
				}
			}
			v.Draw()
			v.screen.Show()
		}
	}
}
