package miptex

import "math/rand/v2"

// Base-level initialization policies for verification runs.
//
// Hardware linear sampling does not use IEEE float arithmetic; samplers run
// lower-precision interpolation formats that vary between GPU generations.
// Verifying linear filtering of float storage against an IEEE reference
// therefore needs base data without steep discontinuities, or interpolation
// error swamps the comparison. SmoothRamp provides such data; RandomTexels
// covers every other configuration.

// SmoothRamp fills a base level with the smooth surface
// f(i) = i * (i - width + 1), identical in every channel. The parabola is
// zero at both ends of the level and varies slowly between neighboring
// texels. Integer formats quantize to their storage range.
func SmoothRamp(width int, format Format) []Texel {
	out := make([]Texel, width)
	for i := range out {
		v := float64(i) * (float64(i) - float64(width) + 1)
		var t Texel
		for c := 0; c < format.Channels; c++ {
			t[c] = v
		}
		out[i] = format.Quantize(t)
	}
	return out
}

// RandomTexels fills a base level with deterministic pseudo-random values
// drawn from the format's storage range. The same seed always produces the
// same data, so failing cases reproduce standalone.
func RandomTexels(width int, format Format, seed uint64) []Texel {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]Texel, width)
	for i := range out {
		var t Texel
		for c := 0; c < format.Channels; c++ {
			t[c] = randomChannel(rng, format.Type)
		}
		out[i] = t
	}
	return out
}

func randomChannel(rng *rand.Rand, t ChannelType) float64 {
	minVal, maxVal, ok := t.storageRange()
	if !ok {
		// Float storage: spread over [0, 256) rounded to float32.
		return float64(rng.Float32() * 256)
	}
	span := uint64(maxVal-minVal) + 1
	return minVal + float64(rng.Uint64N(span))
}
