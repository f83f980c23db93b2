package miptex

import (
	"math"

	"github.com/chewxy/math32"
)

// FilterMode defines how neighboring texels combine into one sample.
type FilterMode uint8

const (
	// FilterNearest selects the single texel containing the coordinate.
	FilterNearest FilterMode = iota + 1

	// FilterLinear blends the two nearest texels with linear weights.
	FilterLinear
)

// String returns a string representation of the filter mode.
func (m FilterMode) String() string {
	switch m {
	case FilterNearest:
		return "Nearest"
	case FilterLinear:
		return "Linear"
	default:
		return "Unknown"
	}
}

// SampleLevel samples a level's texel array at a normalized coordinate in
// [0, 1) using the given filter, addressing and read modes. Out-of-range
// coordinates are legal and resolve through the addressing mode; border
// samples contribute zero in every channel.
//
// Element reads return storage-domain values; normalized reads convert to
// float before any filtering and the result stays float. Linear weights are
// computed in float32, matching hardware interpolation units; integer
// element results round back to storage afterwards.
//
// A width-1 level needs no special casing: under Clamp both linear taps
// resolve to the single texel, under Border one tap may fall outside.
func SampleLevel(texels []Texel, width int, format Format, coord float64,
	filter FilterMode, address AddressMode, read ReadMode) Texel {

	fetch := func(index int) Texel {
		idx, border := ResolveIndex(index, width, address)
		if border {
			return Texel{}
		}
		if read == ReadNormalizedFloat {
			return format.Normalize(texels[idx])
		}
		return texels[idx]
	}

	if filter == FilterNearest {
		return fetch(int(math.Floor(coord * float64(width))))
	}

	// Linear: taps straddle the texel centers at (i + 0.5) / width.
	pos := float32(coord)*float32(width) - 0.5
	i0f := math32.Floor(pos)
	frac := pos - i0f
	i0 := int(i0f)
	v0 := fetch(i0)
	v1 := fetch(i0 + 1)

	var out Texel
	for c := 0; c < format.Channels; c++ {
		out[c] = float64((1-frac)*float32(v0[c]) + frac*float32(v1[c]))
	}
	if read == ReadElement && format.Type.IsInteger() {
		out = format.Quantize(out)
	}
	return out
}
