package audio

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constant streams a fixed value forever.
type constant float64

func (c constant) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{float64(c), float64(c)}
	}
	return len(samples), true
}

func (c constant) Err() error { return nil }

func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 256)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok || n == 0 {
			return out
		}
	}
}

func TestEnvelopeShape(t *testing.T) {
	rate := beep.SampleRate(1000)
	env := NewEnvelope(constant(1), 100*time.Millisecond, 10*time.Millisecond, 20*time.Millisecond, rate)
	out := drain(env)

	require.Len(t, out, 100)
	assert.Equal(t, 0.0, out[0][0])
	assert.InDelta(t, 0.5, out[5][0], 1e-9)
	assert.Equal(t, 1.0, out[50][0])
	assert.InDelta(t, 0.5, out[90][1], 1e-9)
	for i, s := range out {
		if s[0] < 0 || s[0] > 1 {
			t.Fatalf("sample %d = %v outside the envelope", i, s[0])
		}
	}
}

func TestCueStreamersAreFinite(t *testing.T) {
	cfg := DefaultConfig()
	for _, c := range Cues {
		s, err := Streamer(c, cfg)
		require.NoError(t, err, c.String())
		out := drain(s)
		assert.Equal(t, cfg.SampleRate.N(Duration(c)), len(out), c.String())

		var peak float64
		for _, f := range out {
			peak = max(peak, f[0], -f[0])
		}
		assert.Greater(t, peak, 0.1, "%v is audible", c)
		assert.LessOrEqual(t, peak, 1.0)
	}
}

func TestStreamerRejectsBadInput(t *testing.T) {
	_, err := Streamer(Cue(42), DefaultConfig())
	assert.Error(t, err)

	_, err = Streamer(CueFreeze, Config{SampleRate: 0, Volume: 1})
	assert.Error(t, err)
	assert.Equal(t, "cue(42)", Cue(42).String())
}

func TestRenderPCM16(t *testing.T) {
	pcm := RenderPCM16(constant(0.5), 10)
	require.Len(t, pcm, 40)
	l := int16(binary.LittleEndian.Uint16(pcm[0:]))
	r := int16(binary.LittleEndian.Uint16(pcm[2:]))
	assert.Equal(t, int16(16384), l)
	assert.Equal(t, l, r)

	clipped := RenderPCM16(constant(-3), 1)
	assert.Equal(t, int16(-32767), int16(binary.LittleEndian.Uint16(clipped)))
}

func TestCuePCM16Length(t *testing.T) {
	cfg := DefaultConfig()
	pcm, err := CuePCM16(CueThaw, cfg)
	require.NoError(t, err)
	assert.Len(t, pcm, cfg.SampleRate.N(Duration(CueThaw))*4)

	cfg.Volume = 0
	silent, err := CuePCM16(CueFreeze, cfg)
	require.NoError(t, err)
	for i, b := range silent {
		if b != 0 {
			t.Fatalf("byte %d = %d, muted cue should be silent", i, b)
		}
	}
}

func TestPlayerPreloadWithoutSpeaker(t *testing.T) {
	p := NewPlayer(DefaultConfig())
	require.NoError(t, p.Preload())
	assert.Equal(t, DefaultSampleRate.N(Duration(CueFreeze)), p.Len(CueFreeze))
	assert.False(t, p.Play(CueFreeze), "play before Init is a no-op")
	assert.True(t, p.ToggleMute())
	p.Close()
}
