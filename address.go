package miptex

// AddressMode defines how out-of-range texel indices are resolved.
type AddressMode uint8

const (
	// AddressClamp saturates out-of-range indices to the nearest valid
	// texel (clamp-to-edge).
	AddressClamp AddressMode = iota + 1

	// AddressBorder substitutes a zero-valued border sample for any index
	// outside [0, width).
	AddressBorder
)

// String returns a string representation of the addressing mode.
func (m AddressMode) String() string {
	switch m {
	case AddressClamp:
		return "Clamp"
	case AddressBorder:
		return "Border"
	default:
		return "Unknown"
	}
}

// ResolveIndex maps a texel index onto a level of the given width according
// to the addressing mode. It returns the resolved index and whether the
// caller must substitute the border value instead of level data.
//
// Under AddressClamp the returned index is always valid and border is false.
// Under AddressBorder an in-range index passes through unchanged; an
// out-of-range index returns border=true and the index is meaningless.
//
// ResolveIndex is a pure function with no failure modes. Clamping is
// idempotent: resolving an already-resolved index is a no-op.
func ResolveIndex(index, width int, mode AddressMode) (resolved int, border bool) {
	if index >= 0 && index < width {
		return index, false
	}
	if mode == AddressBorder {
		return 0, true
	}
	if index < 0 {
		return 0, false
	}
	return width - 1, false
}
