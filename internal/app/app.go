//go:build ebiten

package app

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"window-frost/internal/audio"
	"window-frost/internal/render"
	"window-frost/internal/scene"
	"window-frost/internal/sims/frost"
	"window-frost/internal/ui"
)

const probeSize = 24

var (
	heaterColor = color.RGBA{R: 255, G: 150, B: 60, A: 255}
	frozenColor = color.RGBA{R: 0, G: 205, B: 249, A: 255}
	thawedColor = color.RGBA{R: 240, G: 90, B: 90, A: 255}
)

// Game adapts the frost scene to the ebiten.Game interface. The heater
// follows the mouse across the frost view.
type Game struct {
	sim     *frost.Sim
	scene   *scene.Scene
	painter *render.FieldPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	cues    *cuePlayer

	opts     Options
	target   frost.Vec2
	paused   bool
	tickOnce bool
	freezes  int
	thaws    int
}

// New constructs a Game for the provided simulation.
func New(sim *frost.Sim, opts Options) (*Game, error) {
	opts = opts.withDefaults()
	size := sim.Size()
	g := &Game{
		sim:     sim,
		painter: render.NewFieldPainter(size.W, size.H),
		overlay: ui.NewOverlay(sim, float64(opts.Scale)),
		hud:     ui.NewHUD(sim, opts.HUDWidth),
		opts:    opts,
	}
	g.scene = scene.New(sim.Simulation(), g.viewport(), frost.Vec2{X: opts.HeaterSize, Y: opts.HeaterSize})
	g.scene.SpreadProbes(opts.Probes, probeSize)

	if opts.Sound {
		cues, err := newCuePlayer(audio.DefaultConfig())
		if err != nil {
			return nil, fmt.Errorf("prepare cues: %w", err)
		}
		g.cues = cues
	}
	return g, nil
}

// viewport is the frost view in screen pixels, left of the HUD.
func (g *Game) viewport() frost.Viewport {
	s := g.sim.Size()
	return frost.Viewport{Width: float64(s.W * g.opts.Scale), Height: float64(s.H * g.opts.Scale)}
}

// Reset rebuilds the simulation. A zero seed keeps the current one.
func (g *Game) Reset(seed int64) {
	g.sim.Reset(seed)
	g.tickOnce = false
	g.sync()
	slog.Info("reset", "seed", g.sim.Simulation().Config().Seed)
}

// sync points the scene at the current simulation, which HUD edits and
// resets replace.
func (g *Game) sync() {
	if g.scene.Sim == g.sim.Simulation() {
		return
	}
	g.scene.Sim = g.sim.Simulation()
	g.scene.SpreadProbes(g.opts.Probes, probeSize)
	g.freezes, g.thaws = 0, 0
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		sim := g.scene.Sim
		sim.ClearRect(sim.Bounds())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.cues.toggleMute()
	}

	g.overlay.Update()

	vp := g.scene.Viewport
	mx, my := ebiten.CursorPosition()
	if mx >= 0 && my >= 0 && float64(mx) < vp.Width && float64(my) < vp.Height {
		g.target = vp.ViewportToWorld(frost.Vec2{X: float64(mx) + 0.5, Y: float64(my) + 0.5})
	}

	g.hud.Update(int(vp.Width), g.status())
	g.sync()

	if g.paused && !g.tickOnce {
		return nil
	}
	g.tickOnce = false
	events, err := g.scene.Update(1/float64(g.opts.TPS), g.target)
	if err != nil {
		return err
	}
	for _, e := range events {
		cue := audio.CueFreeze
		if e.Transition == scene.Thawed {
			cue = audio.CueThaw
			g.thaws++
		} else {
			g.freezes++
		}
		slog.Debug("probe transition", "probe", e.Probe.Name, "transition", e.Transition)
		g.cues.Play(cue)
	}
	return nil
}

func (g *Game) status() ui.Status {
	sim := g.scene.Sim
	return ui.Status{
		Frozen:       sim.FrozenFraction(),
		Elapsed:      sim.Elapsed(),
		Probes:       len(g.scene.Probes),
		FrozenProbes: g.scene.FrozenProbes(),
		Freezes:      g.freezes,
		Thaws:        g.thaws,
		Paused:       g.paused,
		Muted:        g.cues.isMuted(),
	}
}

// Draw renders the frost, the world objects, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	sim := g.scene.Sim
	vp := g.scene.Viewport
	g.painter.Blit(screen, g.sim.Cells(), float64(g.opts.Scale))

	probeRects := make([]frost.Rect, 0, len(g.scene.Probes))
	for _, p := range g.scene.Probes {
		col := thawedColor
		if p.Frozen() {
			col = frozenColor
		}
		x, y, w, h := boxOnScreen(vp, p.Box)
		vector.DrawFilledRect(screen, x, y, w, h, col, false)
		probeRects = append(probeRects, sim.MapWorldRect(p.Box, vp))
	}
	hb := g.scene.Heater.Box()
	x, y, w, h := boxOnScreen(vp, hb)
	vector.StrokeRect(screen, x, y, w, h, 2, heaterColor, false)

	g.overlay.Draw(screen, vp, sim.MapWorldRect(hb, vp), probeRects)
	g.hud.Draw(screen, int(vp.Width), int(vp.Height))
}

// boxOnScreen converts a world box to screen pixels; Pos is its top-left.
func boxOnScreen(vp frost.Viewport, r frost.WorldRect) (x, y, w, h float32) {
	p := vp.WorldToViewport(r.Pos)
	return float32(p.X), float32(p.Y), float32(r.Size.X), float32(r.Size.Y)
}

// Layout returns the logical screen size: the frost view plus the HUD.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.opts.Scale + g.opts.HUDWidth, s.H * g.opts.Scale
}
