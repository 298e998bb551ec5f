package audio

import (
	"encoding/binary"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const sampleRate = 44100

// blip describes a short synthesized cue: a sine sweep with a linear fade.
type blip struct {
	from, to float64 // Hz
	seconds  float64
}

var cues = map[SoundID]blip{
	SndKill:    {from: 440, to: 220, seconds: 0.06},
	SndPickup:  {from: 880, to: 1320, seconds: 0.05},
	SndLevelUp: {from: 523, to: 1046, seconds: 0.35},
	SndDeath:   {from: 300, to: 60, seconds: 0.8},
	SndWhip:    {from: 1800, to: 600, seconds: 0.08},
	SndShot:    {from: 1200, to: 900, seconds: 0.04},
}

// ToneSink plays synthesized cues through an ebiten audio context.
type ToneSink struct {
	ctx *audio.Context
	pcm map[SoundID][]byte
}

// NewToneSink renders every cue once up front.
func NewToneSink() *ToneSink {
	s := &ToneSink{ctx: audio.NewContext(sampleRate), pcm: make(map[SoundID][]byte, len(cues))}
	for id, b := range cues {
		s.pcm[id] = render(b)
	}
	return s
}

func (s *ToneSink) Play(id SoundID, volume float64) {
	pcm, ok := s.pcm[id]
	if !ok {
		return
	}
	p := s.ctx.NewPlayerFromBytes(pcm)
	p.SetVolume(volume)
	p.Play()
}

// render produces 16-bit little-endian stereo samples.
func render(b blip) []byte {
	n := int(b.seconds * sampleRate)
	out := make([]byte, 0, n*4)
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n)
		freq := b.from + (b.to-b.from)*t
		phase += 2 * math.Pi * freq / sampleRate
		v := int16(math.Sin(phase) * (1 - t) * 0.3 * math.MaxInt16)
		out = binary.LittleEndian.AppendUint16(out, uint16(v))
		out = binary.LittleEndian.AppendUint16(out, uint16(v))
	}
	return out
}
