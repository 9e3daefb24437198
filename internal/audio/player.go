package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Player plays cues through the system speaker. Cues are synthesized once
// into buffers at Init.
type Player struct {
	mu      sync.Mutex
	cfg     Config
	buffers map[Cue]*beep.Buffer
	mixer   *beep.Mixer
	muted   bool
	ready   bool
}

// NewPlayer creates a player; call Init before Play.
func NewPlayer(cfg Config) *Player {
	return &Player{cfg: cfg, mixer: &beep.Mixer{}}
}

// Preload synthesizes every cue into memory without touching the speaker.
func (p *Player) Preload() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.preloadLocked()
}

func (p *Player) preloadLocked() error {
	if p.buffers != nil {
		return nil
	}
	format := beep.Format{SampleRate: p.cfg.SampleRate, NumChannels: 2, Precision: 2}
	buffers := make(map[Cue]*beep.Buffer, len(Cues))
	for _, c := range Cues {
		s, err := Streamer(c, p.cfg)
		if err != nil {
			return err
		}
		b := beep.NewBuffer(format)
		b.Append(s)
		buffers[c] = b
	}
	p.buffers = buffers
	return nil
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ready {
		return nil
	}
	if err := p.preloadLocked(); err != nil {
		return err
	}
	if err := speaker.Init(p.cfg.SampleRate, p.cfg.SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.ready = true
	return nil
}

// Play queues cue c. It reports false when the player is muted, not
// initialized, or c is unknown.
func (p *Player) Play(c Cue) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready || p.muted {
		return false
	}
	b, ok := p.buffers[c]
	if !ok {
		return false
	}
	speaker.Lock()
	p.mixer.Add(b.Streamer(0, b.Len()))
	speaker.Unlock()
	return true
}

// Len reports the buffered length of cue c in samples.
func (p *Player) Len(c Cue) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if b, ok := p.buffers[c]; ok {
		return b.Len()
	}
	return 0
}

// ToggleMute flips the mute state and returns the new value.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	return p.muted
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.ready = false
}
