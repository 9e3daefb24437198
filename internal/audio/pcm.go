package audio

import (
	"encoding/binary"
	"math"

	"github.com/gopxl/beep"
)

// RenderPCM16 drains s into signed 16-bit little-endian stereo frames, the
// layout ebiten's audio context plays. At most maxSamples frames are read.
func RenderPCM16(s beep.Streamer, maxSamples int) []byte {
	out := make([]byte, 0, maxSamples*4)
	buf := make([][2]float64, 512)
	for remaining := maxSamples; remaining > 0; {
		chunk := buf
		if remaining < len(chunk) {
			chunk = chunk[:remaining]
		}
		n, ok := s.Stream(chunk)
		for _, frame := range chunk[:n] {
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[1])))
		}
		remaining -= n
		if !ok || n == 0 {
			break
		}
	}
	return out
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(math.Round(v * math.MaxInt16))
}

// CuePCM16 synthesizes cue c and renders it to 16-bit stereo PCM.
func CuePCM16(c Cue, cfg Config) ([]byte, error) {
	s, err := Streamer(c, cfg)
	if err != nil {
		return nil, err
	}
	return RenderPCM16(s, cfg.SampleRate.N(Duration(c))), nil
}
