package audio

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestSquareWave(t *testing.T) {
	// 4 samples per period: two high, two low
	w := NewSquareWave(1000, 0.5, 4000)
	want := []float64{0.5, 0.5, -0.5, -0.5, 0.5, 0.5, -0.5, -0.5}
	for _, expected := range want {
		assert.Equal(t, expected, w.Next())
	}
}

func TestSquareWaveBalanced(t *testing.T) {
	w := NewSquareWave(240, 1, SampleRate)
	sum := 0.0
	// a whole number of periods: 240 Hz for one second
	for range SampleRate {
		sum += w.Next()
	}
	assert.True(t, math.Abs(sum) < 2*float64(240))
}

func TestVolumeExponent(t *testing.T) {
	assert.Equal(t, 0.0, volumeExponent(1))
	assert.Equal(t, -1.0, volumeExponent(0.5))
	assert.Equal(t, -2.0, volumeExponent(0.25))
	assert.Equal(t, 0.0, volumeExponent(0))
}

func TestOtoRead(t *testing.T) {
	o := &Oto{wave: NewSquareWave(1000, 1, 4000)}
	buf := make([]byte, 9)

	n, err := o.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, 8, n)
	for i := 0; i < n; i += 2 {
		assert.Equal(t, uint16(0), binary.LittleEndian.Uint16(buf[i:]))
	}

	o.SetEnabled(true)
	n, err = o.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, 8, n)
	// the wave kept running while disabled, so this period starts high again
	assert.Equal(t, int16(math.MaxInt16), int16(binary.LittleEndian.Uint16(buf[0:])))
	assert.Equal(t, int16(math.MaxInt16), int16(binary.LittleEndian.Uint16(buf[2:])))
	assert.Equal(t, int16(-math.MaxInt16), int16(binary.LittleEndian.Uint16(buf[4:])))
	assert.Equal(t, int16(-math.MaxInt16), int16(binary.LittleEndian.Uint16(buf[6:])))
}

func TestSilent(t *testing.T) {
	var s Silent
	s.SetEnabled(true)
	assert.NoError(t, s.Close())
}
