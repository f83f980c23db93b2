package miptex

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"
)

// ChannelType identifies the storage representation of one texel channel.
type ChannelType uint8

const (
	// ChannelInt8 is an 8-bit signed integer channel.
	ChannelInt8 ChannelType = iota + 1

	// ChannelUint8 is an 8-bit unsigned integer channel.
	ChannelUint8

	// ChannelInt16 is a 16-bit signed integer channel.
	ChannelInt16

	// ChannelUint16 is a 16-bit unsigned integer channel.
	ChannelUint16

	// ChannelInt32 is a 32-bit signed integer channel.
	ChannelInt32

	// ChannelUint32 is a 32-bit unsigned integer channel.
	ChannelUint32

	// ChannelFloat32 is a 32-bit floating-point channel.
	ChannelFloat32
)

// String returns a string representation of the channel type.
func (c ChannelType) String() string {
	switch c {
	case ChannelInt8:
		return "int8"
	case ChannelUint8:
		return "uint8"
	case ChannelInt16:
		return "int16"
	case ChannelUint16:
		return "uint16"
	case ChannelInt32:
		return "int32"
	case ChannelUint32:
		return "uint32"
	case ChannelFloat32:
		return "float32"
	default:
		return "unknown"
	}
}

// IsInteger reports whether the channel stores integer values.
func (c ChannelType) IsInteger() bool {
	return c != ChannelFloat32 && c.valid()
}

// IsSigned reports whether the channel stores signed values.
// Float channels are signed.
func (c ChannelType) IsSigned() bool {
	switch c {
	case ChannelInt8, ChannelInt16, ChannelInt32, ChannelFloat32:
		return true
	default:
		return false
	}
}

// Bits returns the channel width in bits.
func (c ChannelType) Bits() int {
	switch c {
	case ChannelInt8, ChannelUint8:
		return 8
	case ChannelInt16, ChannelUint16:
		return 16
	case ChannelInt32, ChannelUint32, ChannelFloat32:
		return 32
	default:
		return 0
	}
}

func (c ChannelType) valid() bool {
	return c >= ChannelInt8 && c <= ChannelFloat32
}

// storageRange returns the representable [min, max] for integer channels.
// Float channels have no storage clamp and return (0, 0, false).
func (c ChannelType) storageRange() (minVal, maxVal float64, ok bool) {
	switch c {
	case ChannelInt8:
		return -128, 127, true
	case ChannelUint8:
		return 0, 255, true
	case ChannelInt16:
		return -32768, 32767, true
	case ChannelUint16:
		return 0, 65535, true
	case ChannelInt32:
		return -2147483648, 2147483647, true
	case ChannelUint32:
		return 0, 4294967295, true
	default:
		return 0, 0, false
	}
}

// normScale returns the divisor used when rescaling integer storage to the
// normalized float range. Unsigned channels map [0, scale] onto [0, 1];
// signed channels map [-scale, scale] onto [-1, 1] with the most negative
// storage value clamped to -1 (two's complement has one extra negative step).
func (c ChannelType) normScale() float32 {
	switch c {
	case ChannelInt8:
		return 127
	case ChannelUint8:
		return 255
	case ChannelInt16:
		return 32767
	case ChannelUint16:
		return 65535
	default:
		return 1
	}
}

// ReadMode selects how stored texel values are presented to the sampler.
type ReadMode uint8

const (
	// ReadElement returns the stored value unmodified.
	ReadElement ReadMode = iota + 1

	// ReadNormalizedFloat rescales integer storage to [0,1] (unsigned) or
	// [-1,1] (signed) on read. Only valid for 8- and 16-bit integer
	// channels, matching hardware sampler capabilities.
	ReadNormalizedFloat
)

// String returns a string representation of the read mode.
func (m ReadMode) String() string {
	switch m {
	case ReadElement:
		return "Element"
	case ReadNormalizedFloat:
		return "NormalizedFloat"
	default:
		return "Unknown"
	}
}

// Format describes a texture's per-texel storage: the channel count and the
// channel type. Channel count and type are uniform for a texture's lifetime.
type Format struct {
	// Channels is the number of channels per texel: 1, 2 or 4.
	Channels int

	// Type is the storage representation shared by all channels.
	Type ChannelType
}

// String returns a string representation of the format, e.g. "uint8x4".
func (f Format) String() string {
	return fmt.Sprintf("%sx%d", f.Type, f.Channels)
}

// Validate checks that the format itself is well-formed.
func (f Format) Validate() error {
	if f.Channels != 1 && f.Channels != 2 && f.Channels != 4 {
		return fmt.Errorf("%w: channel count %d (want 1, 2 or 4)",
			ErrUnsupportedConfiguration, f.Channels)
	}
	if !f.Type.valid() {
		return fmt.Errorf("%w: channel type %d", ErrUnsupportedConfiguration, f.Type)
	}
	return nil
}

// ValidateSampling checks that the format, read mode and filter mode form a
// supported combination. Combinations outside the matrix are rejected before
// any synthesis begins:
//   - normalized-float reads require 8- or 16-bit integer storage;
//   - linear filtering requires a float-valued read (float storage element
//     read, or a normalized read), as hardware filters only float returns.
func (f Format) ValidateSampling(read ReadMode, filter FilterMode) error {
	if err := f.Validate(); err != nil {
		return err
	}
	switch read {
	case ReadElement:
	case ReadNormalizedFloat:
		if !f.Type.IsInteger() {
			return fmt.Errorf("%w: normalized read of %s storage",
				ErrUnsupportedConfiguration, f.Type)
		}
		if f.Type.Bits() == 32 {
			return fmt.Errorf("%w: normalized read of 32-bit %s storage",
				ErrUnsupportedConfiguration, f.Type)
		}
	default:
		return fmt.Errorf("%w: read mode %d", ErrUnsupportedConfiguration, read)
	}
	switch filter {
	case FilterNearest:
	case FilterLinear:
		if read == ReadElement && f.Type.IsInteger() {
			return fmt.Errorf("%w: linear filtering of %s element read",
				ErrUnsupportedConfiguration, f.Type)
		}
	default:
		return fmt.Errorf("%w: filter mode %d", ErrUnsupportedConfiguration, filter)
	}
	return nil
}

// Normalize rescales a storage-domain texel to the normalized float range.
// The arithmetic is performed in float32 to match hardware conversion units.
// Non-integer formats pass through unchanged.
func (f Format) Normalize(t Texel) Texel {
	if !f.Type.IsInteger() {
		return t
	}
	scale := f.Type.normScale()
	var out Texel
	for c := 0; c < f.Channels; c++ {
		v := float32(t[c]) / scale
		if f.Type.IsSigned() && v < -1 {
			v = -1
		}
		out[c] = float64(v)
	}
	return out
}

// Denormalize converts a normalized float texel back to storage values,
// clamping to the normalized range and rounding to the nearest integer.
// The inverse of Normalize up to one quantization step.
func (f Format) Denormalize(t Texel) Texel {
	if !f.Type.IsInteger() {
		return t
	}
	scale := f.Type.normScale()
	lo := float32(0)
	if f.Type.IsSigned() {
		lo = -1
	}
	var out Texel
	for c := 0; c < f.Channels; c++ {
		v := float32(t[c])
		if v < lo {
			v = lo
		}
		if v > 1 {
			v = 1
		}
		out[c] = float64(math32.Round(v * scale))
	}
	return out
}

// Quantize rounds a texel to representable storage values, clamping integer
// channels to their storage range. Float formats pass through unchanged.
func (f Format) Quantize(t Texel) Texel {
	minVal, maxVal, ok := f.Type.storageRange()
	if !ok {
		return t
	}
	var out Texel
	for c := 0; c < f.Channels; c++ {
		v := roundHalfAway(t[c])
		if v < minVal {
			v = minVal
		}
		if v > maxVal {
			v = maxVal
		}
		out[c] = v
	}
	return out
}

// TextureFormat maps the format and read mode to the corresponding WebGPU
// texture format for device descriptors. 16-bit normalized formats have no
// core WebGPU equivalent and map to TextureFormatUndefined; backends fall
// back to the integer format plus shader-side normalization for those.
func (f Format) TextureFormat(read ReadMode) gputypes.TextureFormat {
	type key struct {
		t    ChannelType
		n    int
		norm bool
	}
	norm := read == ReadNormalizedFloat
	switch (key{f.Type, f.Channels, norm}) {
	case key{ChannelInt8, 1, false}:
		return gputypes.TextureFormatR8Sint
	case key{ChannelInt8, 2, false}:
		return gputypes.TextureFormatRG8Sint
	case key{ChannelInt8, 4, false}:
		return gputypes.TextureFormatRGBA8Sint
	case key{ChannelUint8, 1, false}:
		return gputypes.TextureFormatR8Uint
	case key{ChannelUint8, 2, false}:
		return gputypes.TextureFormatRG8Uint
	case key{ChannelUint8, 4, false}:
		return gputypes.TextureFormatRGBA8Uint
	case key{ChannelInt16, 1, false}:
		return gputypes.TextureFormatR16Sint
	case key{ChannelInt16, 2, false}:
		return gputypes.TextureFormatRG16Sint
	case key{ChannelInt16, 4, false}:
		return gputypes.TextureFormatRGBA16Sint
	case key{ChannelUint16, 1, false}:
		return gputypes.TextureFormatR16Uint
	case key{ChannelUint16, 2, false}:
		return gputypes.TextureFormatRG16Uint
	case key{ChannelUint16, 4, false}:
		return gputypes.TextureFormatRGBA16Uint
	case key{ChannelInt32, 1, false}:
		return gputypes.TextureFormatR32Sint
	case key{ChannelInt32, 2, false}:
		return gputypes.TextureFormatRG32Sint
	case key{ChannelInt32, 4, false}:
		return gputypes.TextureFormatRGBA32Sint
	case key{ChannelUint32, 1, false}:
		return gputypes.TextureFormatR32Uint
	case key{ChannelUint32, 2, false}:
		return gputypes.TextureFormatRG32Uint
	case key{ChannelUint32, 4, false}:
		return gputypes.TextureFormatRGBA32Uint
	case key{ChannelFloat32, 1, false}:
		return gputypes.TextureFormatR32Float
	case key{ChannelFloat32, 2, false}:
		return gputypes.TextureFormatRG32Float
	case key{ChannelFloat32, 4, false}:
		return gputypes.TextureFormatRGBA32Float
	case key{ChannelInt8, 1, true}:
		return gputypes.TextureFormatR8Snorm
	case key{ChannelInt8, 2, true}:
		return gputypes.TextureFormatRG8Snorm
	case key{ChannelInt8, 4, true}:
		return gputypes.TextureFormatRGBA8Snorm
	case key{ChannelUint8, 1, true}:
		return gputypes.TextureFormatR8Unorm
	case key{ChannelUint8, 2, true}:
		return gputypes.TextureFormatRG8Unorm
	case key{ChannelUint8, 4, true}:
		return gputypes.TextureFormatRGBA8Unorm
	default:
		return gputypes.TextureFormatUndefined
	}
}
