package audio

import (
	"fmt"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

// Beep plays the tone through the faiface/beep speaker. The streamer runs for the
// lifetime of the sink and is paused while the sound timer is zero.
type Beep struct {
	ctrl   *beep.Ctrl
	closer func() error
}

// NewBeep starts the speaker with a square wave of toneHz at volume (0..1).
func NewBeep(toneHz, volume float64) (*Beep, error) {
	sr := beep.SampleRate(SampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/20)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}

	wave := NewSquareWave(toneHz, volume, SampleRate)
	tone := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			s := wave.Next()
			samples[i][0] = s
			samples[i][1] = s
		}
		return len(samples), true
	})

	return start(tone, nil), nil
}

// NewBeepFile loops an mp3 file, such as assets/beep.mp3, as the tone.
// volume is applied on top of the file's own level.
func NewBeepFile(path string, volume float64) (*Beep, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening beep file: %w", err)
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decoding beep file: %w", err)
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		_ = streamer.Close()
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}

	// volume 1 leaves the file untouched; every halving is one step of base 2
	attenuated := &effects.Volume{
		Streamer: beep.Loop(-1, streamer),
		Base:     2,
		Volume:   volumeExponent(volume),
		Silent:   volume == 0,
	}
	return start(attenuated, streamer.Close), nil
}

func start(s beep.Streamer, closer func() error) *Beep {
	ctrl := &beep.Ctrl{Streamer: s, Paused: true}
	speaker.Play(ctrl)
	return &Beep{ctrl: ctrl, closer: closer}
}

// SetEnabled implements chip8.Audio.
func (b *Beep) SetEnabled(on bool) {
	speaker.Lock()
	b.ctrl.Paused = !on
	speaker.Unlock()
}

// Close stops playback.
func (b *Beep) Close() error {
	speaker.Clear()
	if b.closer != nil {
		return b.closer()
	}
	return nil
}
