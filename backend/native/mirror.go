//go:build !nogpu

package native

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/gogpu/miptex"
	types "github.com/gogpu/gputypes"
)

// CPU mirror of sample1d.wgsl. All arithmetic is float32 so the mirror
// reproduces what the shader computes, operation for operation.

// vec4 is the GPU-compatible texel layout, matching vec4<f32> in the shader.
type vec4 [4]float32

// configFor builds the dispatch configuration for a chain descriptor.
func configFor(desc miptex.ChainDescriptor, srcWidth, dstWidth int) gpuConfig {
	cfg := gpuConfig{
		SrcWidth: uint32(srcWidth),
		DstWidth: uint32(dstWidth),
		Channels: uint32(desc.Format.Channels),
	}
	if desc.Filter == miptex.FilterLinear {
		cfg.FilterMode = 1
	}
	if desc.Address == miptex.AddressBorder {
		cfg.AddressMode = 1
	}
	if desc.Read == miptex.ReadNormalizedFloat {
		cfg.Normalize = 1
		cfg.NormScale = normScale(desc.Format.Type)
		if desc.Format.Type.IsSigned() {
			cfg.IsSigned = 1
		}
	}
	return cfg
}

// normScale returns the storage-to-normalized divisor for a channel type.
func normScale(t miptex.ChannelType) float32 {
	switch t.Bits() {
	case 8:
		if t.IsSigned() {
			return 127
		}
		return 255
	case 16:
		if t.IsSigned() {
			return 32767
		}
		return 65535
	default:
		return 1
	}
}

// resolveIndex mirrors resolve_index: -1 marks a border texel.
func (c gpuConfig) resolveIndex(index, width int32) int32 {
	if index >= 0 && index < width {
		return index
	}
	if c.AddressMode == 1 {
		return -1
	}
	if index < 0 {
		return 0
	}
	return width - 1
}

// fetch mirrors the shader's fetch: address resolution plus read mode.
func (c gpuConfig) fetch(src []vec4, index, width int32) vec4 {
	resolved := c.resolveIndex(index, width)
	if resolved < 0 {
		return vec4{}
	}
	v := src[resolved]
	if c.Normalize == 1 {
		for ch := range v {
			v[ch] /= c.NormScale
			if c.IsSigned == 1 && v[ch] < -1 {
				v[ch] = -1
			}
		}
	}
	return v
}

// sampleAt mirrors sample_at: nearest or linear at a normalized coordinate.
func (c gpuConfig) sampleAt(src []vec4, coord float32, width int32) vec4 {
	if c.FilterMode == 0 {
		index := int32(math32.Floor(coord * float32(width)))
		return c.fetch(src, index, width)
	}
	pos := coord*float32(width) - 0.5
	i0 := math32.Floor(pos)
	frac := pos - i0
	v0 := c.fetch(src, int32(i0), width)
	v1 := c.fetch(src, int32(i0)+1, width)
	var out vec4
	for ch := range out {
		out[ch] = (1-frac)*v0[ch] + frac*v1[ch]
	}
	return out
}

// Element reads on 32-bit integer storage exceed f32's 24-bit mantissa, so
// the vec4 payload path would round stored values. Those configurations are
// nearest-only (linear filtering of integer element reads is rejected up
// front), and a nearest fetch never does arithmetic on the payload: the
// mirror moves texels straight from the exact level data, keeping only the
// index math in f32 to match the shader.

// needsExactFetch reports whether sampling must bypass the f32 payload path.
func needsExactFetch(desc miptex.ChainDescriptor) bool {
	return desc.Read == miptex.ReadElement &&
		desc.Format.Type.IsInteger() && desc.Format.Type.Bits() == 32
}

// sampleExact performs a nearest fetch from the exact texel data.
func (c gpuConfig) sampleExact(src []miptex.Texel, coord float32, width int32) miptex.Texel {
	index := c.resolveIndex(int32(math32.Floor(coord*float32(width))), width)
	if index < 0 {
		return miptex.Texel{}
	}
	return src[index]
}

// levelToVec4 converts mirror level data to the shader's buffer layout.
func levelToVec4(format miptex.Format, texels []miptex.Texel) []vec4 {
	out := make([]vec4, len(texels))
	for i, t := range texels {
		for c := 0; c < format.Channels; c++ {
			out[i][c] = float32(t[c])
		}
	}
	return out
}

// texelFromVec4 widens a shader result back to the texel domain.
func texelFromVec4(v vec4) miptex.Texel {
	var t miptex.Texel
	for c := range v {
		t[c] = float64(v[c])
	}
	return t
}

// textureFormat maps a format and read mode to the HAL texture format.
// 16-bit normalized formats have no core WebGPU equivalent; they fall back
// to the integer format with shader-side normalization.
func textureFormat(f miptex.Format, read miptex.ReadMode) types.TextureFormat {
	if read == miptex.ReadNormalizedFloat && f.Type.Bits() == 8 {
		switch f.Channels {
		case 1:
			if f.Type.IsSigned() {
				return types.TextureFormatR8Snorm
			}
			return types.TextureFormatR8Unorm
		case 2:
			if f.Type.IsSigned() {
				return types.TextureFormatRG8Snorm
			}
			return types.TextureFormatRG8Unorm
		default:
			if f.Type.IsSigned() {
				return types.TextureFormatRGBA8Snorm
			}
			return types.TextureFormatRGBA8Unorm
		}
	}

	switch f.Type {
	case miptex.ChannelInt8:
		return pick(f.Channels, types.TextureFormatR8Sint, types.TextureFormatRG8Sint, types.TextureFormatRGBA8Sint)
	case miptex.ChannelUint8:
		return pick(f.Channels, types.TextureFormatR8Uint, types.TextureFormatRG8Uint, types.TextureFormatRGBA8Uint)
	case miptex.ChannelInt16:
		return pick(f.Channels, types.TextureFormatR16Sint, types.TextureFormatRG16Sint, types.TextureFormatRGBA16Sint)
	case miptex.ChannelUint16:
		return pick(f.Channels, types.TextureFormatR16Uint, types.TextureFormatRG16Uint, types.TextureFormatRGBA16Uint)
	case miptex.ChannelInt32:
		return pick(f.Channels, types.TextureFormatR32Sint, types.TextureFormatRG32Sint, types.TextureFormatRGBA32Sint)
	case miptex.ChannelUint32:
		return pick(f.Channels, types.TextureFormatR32Uint, types.TextureFormatRG32Uint, types.TextureFormatRGBA32Uint)
	default:
		return pick(f.Channels, types.TextureFormatR32Float, types.TextureFormatRG32Float, types.TextureFormatRGBA32Float)
	}
}

func pick(channels int, r, rg, rgba types.TextureFormat) types.TextureFormat {
	switch channels {
	case 1:
		return r
	case 2:
		return rg
	default:
		return rgba
	}
}

// Byte serialization for texture upload.

// levelToBytes packs storage-domain texels into the texture's byte layout.
func levelToBytes(format miptex.Format, texels []miptex.Texel) []byte {
	bytesPerChannel := format.Type.Bits() / 8
	stride := format.Channels * bytesPerChannel
	buf := make([]byte, len(texels)*stride)
	for i, t := range texels {
		off := i * stride
		for c := 0; c < format.Channels; c++ {
			writeChannel(buf, off+c*bytesPerChannel, format.Type, t[c])
		}
	}
	return buf
}

func writeChannel(buf []byte, offset int, t miptex.ChannelType, v float64) {
	switch t {
	case miptex.ChannelInt8, miptex.ChannelUint8:
		buf[offset] = byte(int64(v))
	case miptex.ChannelInt16, miptex.ChannelUint16:
		writeUint16(buf, offset, uint16(int64(v)))
	case miptex.ChannelFloat32:
		writeUint32(buf, offset, math.Float32bits(float32(v)))
	default:
		writeUint32(buf, offset, uint32(int64(v)))
	}
}

func writeUint16(buf []byte, offset int, val uint16) {
	buf[offset] = byte(val)
	buf[offset+1] = byte(val >> 8)
}

func writeUint32(buf []byte, offset int, val uint32) {
	buf[offset] = byte(val)
	buf[offset+1] = byte(val >> 8)
	buf[offset+2] = byte(val >> 16)
	buf[offset+3] = byte(val >> 24)
}
