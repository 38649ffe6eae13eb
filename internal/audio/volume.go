package audio

import "math"

// volumeExponent converts a linear gain in 0..1 to the base 2 exponent used by
// beep's effects.Volume.
func volumeExponent(gain float64) float64 {
	if gain <= 0 {
		return 0
	}
	return math.Log2(gain)
}
