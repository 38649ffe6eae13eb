package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

// Oto plays the tone through ebitengine/oto. The player never stops; Read emits
// silence while the sink is disabled.
type Oto struct {
	ctx     *oto.Context
	player  *oto.Player
	wave    *SquareWave
	enabled atomic.Bool
}

// NewOto opens the default output device.
func NewOto(toneHz, volume float64) (*Oto, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("creating oto context: %w", err)
	}
	<-ready

	o := &Oto{
		ctx:  ctx,
		wave: NewSquareWave(toneHz, volume, SampleRate),
	}
	o.player = ctx.NewPlayer(o)
	o.player.Play()
	return o, nil
}

// Read fills p with signed 16-bit little endian mono samples. It is called from
// oto's own goroutine.
func (o *Oto) Read(p []byte) (int, error) {
	on := o.enabled.Load()
	n := len(p) &^ 1
	for i := 0; i < n; i += 2 {
		var sample int16
		s := o.wave.Next()
		if on {
			sample = int16(s * math.MaxInt16)
		}
		binary.LittleEndian.PutUint16(p[i:], uint16(sample))
	}
	return n, nil
}

// SetEnabled implements chip8.Audio.
func (o *Oto) SetEnabled(on bool) {
	o.enabled.Store(on)
}

// Close stops playback.
func (o *Oto) Close() error {
	return o.player.Close()
}
