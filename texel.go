package miptex

import (
	"fmt"
	"math"
	"strings"
)

// Texel is a fixed-width tuple of up to four numeric channels. Channels
// beyond a format's channel count are zero. Values are held as float64,
// which represents every supported storage type exactly (including the
// full uint32 range).
type Texel [4]float64

// FormatString renders the texel's active channels for diagnostics,
// e.g. "(12, 200, 3, 255)".
func (t Texel) FormatString(channels int) string {
	var b strings.Builder
	b.WriteByte('(')
	for c := 0; c < channels; c++ {
		if c > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%g", t[c])
	}
	b.WriteByte(')')
	return b.String()
}

// Equal reports exact per-channel equality over the first channels values.
func (t Texel) Equal(o Texel, channels int) bool {
	for c := 0; c < channels; c++ {
		if t[c] != o[c] {
			return false
		}
	}
	return true
}

// EqualWithin reports per-channel equality within an absolute tolerance
// over the first channels values.
func (t Texel) EqualWithin(o Texel, channels int, tol float64) bool {
	for c := 0; c < channels; c++ {
		if math.Abs(t[c]-o[c]) > tol {
			return false
		}
	}
	return true
}

// roundHalfAway rounds to the nearest integer with halves away from zero,
// the convention hardware conversion units use for storage writes.
func roundHalfAway(v float64) float64 {
	return math.Round(v)
}
