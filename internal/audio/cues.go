// Package audio synthesizes the freeze and thaw cues the viewers play when a
// probe changes state.
package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// DefaultSampleRate is shared by the speaker player and the PCM renderer.
const DefaultSampleRate = beep.SampleRate(44100)

// Cue identifies a sound effect.
type Cue int

const (
	CueFreeze Cue = iota
	CueThaw
)

func (c Cue) String() string {
	switch c {
	case CueFreeze:
		return "freeze"
	case CueThaw:
		return "thaw"
	default:
		return fmt.Sprintf("cue(%d)", int(c))
	}
}

// Cues lists every cue in order.
var Cues = []Cue{CueFreeze, CueThaw}

// Config controls cue synthesis.
type Config struct {
	SampleRate beep.SampleRate
	Volume     float64
}

// DefaultConfig returns the standard cue settings.
func DefaultConfig() Config {
	return Config{SampleRate: DefaultSampleRate, Volume: 0.6}
}

const (
	noteDuration = 90 * time.Millisecond
	noteAttack   = 5 * time.Millisecond
	noteRelease  = 70 * time.Millisecond
)

// note describes one chime of a cue.
type note struct {
	freq     float64
	overtone float64
}

// Freeze descends B6 -> E6 with a bright overtone; thaw rises A4 -> E5.
var cueNotes = map[Cue][]note{
	CueFreeze: {{freq: 1975.53, overtone: 0.35}, {freq: 1318.51, overtone: 0.35}},
	CueThaw:   {{freq: 440.0, overtone: 0.15}, {freq: 659.25, overtone: 0.15}},
}

// Duration returns the length of cue c.
func Duration(c Cue) time.Duration {
	return time.Duration(len(cueNotes[c])) * noteDuration
}

// Streamer builds a fresh finite streamer for cue c.
func Streamer(c Cue, cfg Config) (beep.Streamer, error) {
	notes, ok := cueNotes[c]
	if !ok {
		return nil, fmt.Errorf("unknown cue %v", c)
	}
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", cfg.SampleRate)
	}
	seq := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		s, err := chime(n, cfg.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("%v cue: %w", c, err)
		}
		seq = append(seq, s)
	}
	return newVolume(beep.Seq(seq...), cfg.Volume), nil
}

func chime(n note, rate beep.SampleRate) (beep.Streamer, error) {
	fund, err := tone(n.freq, rate)
	if err != nil {
		return nil, err
	}
	over, err := tone(2*n.freq, rate)
	if err != nil {
		return nil, err
	}
	mixed := beep.Mix(newVolume(fund, 1-n.overtone), newVolume(over, n.overtone))
	return NewEnvelope(mixed, noteDuration, noteAttack, noteRelease, rate), nil
}

func tone(freq float64, rate beep.SampleRate) (beep.Streamer, error) {
	s, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, fmt.Errorf("sine %.2fHz: %w", freq, err)
	}
	return beep.Take(rate.N(noteDuration), s), nil
}

// newVolume scales s linearly. Zero or negative volume silences it.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with a linear attack and release and cuts it off after
// duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	rel := min(rate.N(release), total-att)
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.totalSamples {
		return 0, false
	}
	if left := e.totalSamples - e.position; len(samples) > left {
		samples = samples[:left]
	}
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }
