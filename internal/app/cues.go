//go:build ebiten

package app

import (
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"window-frost/internal/audio"
)

// cuePlayer plays pre-rendered cues through ebiten's audio context, which
// owns the audio device in the GUI build.
type cuePlayer struct {
	ctx   *ebaudio.Context
	pcm   map[audio.Cue][]byte
	muted bool
}

func newCuePlayer(cfg audio.Config) (*cuePlayer, error) {
	p := &cuePlayer{
		ctx: ebaudio.NewContext(int(cfg.SampleRate)),
		pcm: make(map[audio.Cue][]byte, len(audio.Cues)),
	}
	for _, c := range audio.Cues {
		buf, err := audio.CuePCM16(c, cfg)
		if err != nil {
			return nil, err
		}
		p.pcm[c] = buf
	}
	return p, nil
}

// Play starts c and reports whether it was played.
func (p *cuePlayer) Play(c audio.Cue) bool {
	if p == nil || p.muted {
		return false
	}
	buf, ok := p.pcm[c]
	if !ok {
		return false
	}
	p.ctx.NewPlayerFromBytes(buf).Play()
	return true
}

func (p *cuePlayer) toggleMute() {
	if p != nil {
		p.muted = !p.muted
	}
}

func (p *cuePlayer) isMuted() bool { return p == nil || p.muted }
