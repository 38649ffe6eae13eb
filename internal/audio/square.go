// Package audio implements the CHIP-8 buzzer. Sinks switch a continuous tone on and
// off; the VM decides when through chip8.Audio.
package audio

// SampleRate is the output rate of every sink.
const SampleRate = 44100

// SquareWave generates a square wave one sample at a time.
type SquareWave struct {
	amplitude float64
	period    float64 // in samples
	phase     float64 // position within the period, in samples
}

// NewSquareWave returns a wave of the given frequency and amplitude (0..1).
func NewSquareWave(freq, amplitude float64, sampleRate int) *SquareWave {
	return &SquareWave{
		amplitude: amplitude,
		period:    float64(sampleRate) / freq,
	}
}

// Next returns the next sample in -amplitude..amplitude.
func (w *SquareWave) Next() float64 {
	sample := w.amplitude
	if w.phase >= w.period/2 {
		sample = -w.amplitude
	}
	w.phase++
	if w.phase >= w.period {
		w.phase -= w.period
	}
	return sample
}
