package miptex

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{Format{Channels: 4, Type: ChannelUint8}, "uint8x4"},
		{Format{Channels: 1, Type: ChannelFloat32}, "float32x1"},
		{Format{Channels: 2, Type: ChannelInt16}, "int16x2"},
	}
	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormatValidate(t *testing.T) {
	valid := Format{Channels: 2, Type: ChannelInt32}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate(%v) = %v", valid, err)
	}

	for _, f := range []Format{
		{Channels: 3, Type: ChannelUint8},
		{Channels: 0, Type: ChannelUint8},
		{Channels: 1, Type: 0},
		{Channels: 1, Type: 99},
	} {
		if err := f.Validate(); !errors.Is(err, ErrUnsupportedConfiguration) {
			t.Errorf("Validate(%v) = %v, want ErrUnsupportedConfiguration", f, err)
		}
	}
}

func TestValidateSampling(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		read    ReadMode
		filter  FilterMode
		wantErr bool
	}{
		{"int element nearest", Format{1, ChannelInt32}, ReadElement, FilterNearest, false},
		{"float element linear", Format{4, ChannelFloat32}, ReadElement, FilterLinear, false},
		{"uint8 normalized linear", Format{2, ChannelUint8}, ReadNormalizedFloat, FilterLinear, false},
		{"int16 normalized nearest", Format{1, ChannelInt16}, ReadNormalizedFloat, FilterNearest, false},
		{"int element linear", Format{1, ChannelUint16}, ReadElement, FilterLinear, true},
		{"float normalized", Format{1, ChannelFloat32}, ReadNormalizedFloat, FilterNearest, true},
		{"int32 normalized", Format{1, ChannelInt32}, ReadNormalizedFloat, FilterNearest, true},
		{"uint32 normalized", Format{4, ChannelUint32}, ReadNormalizedFloat, FilterLinear, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.format.ValidateSampling(tt.read, tt.filter)
			if tt.wantErr && !errors.Is(err, ErrUnsupportedConfiguration) {
				t.Errorf("ValidateSampling = %v, want ErrUnsupportedConfiguration", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateSampling = %v, want nil", err)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		in     float64
		want   float64
	}{
		{"uint8 max", Format{1, ChannelUint8}, 255, 1},
		{"uint8 zero", Format{1, ChannelUint8}, 0, 0},
		{"int8 max", Format{1, ChannelInt8}, 127, 1},
		{"int8 min clamps", Format{1, ChannelInt8}, -128, -1},
		{"int8 -127", Format{1, ChannelInt8}, -127, -1},
		{"uint16 max", Format{1, ChannelUint16}, 65535, 1},
		{"int16 max", Format{1, ChannelInt16}, 32767, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.format.Normalize(Texel{tt.in})
			if got[0] != tt.want {
				t.Errorf("Normalize(%g) = %g, want %g", tt.in, got[0], tt.want)
			}
		})
	}
}

// Denormalize(Normalize(v)) recovers every representable storage value
// exactly, except -128 which clamps to -127 by design of the signed
// mapping.
func TestNormalizeRoundTrip(t *testing.T) {
	format := Format{Channels: 1, Type: ChannelInt8}
	for v := -127; v <= 127; v++ {
		in := Texel{float64(v)}
		out := format.Denormalize(format.Normalize(in))
		if out[0] != in[0] {
			t.Errorf("round trip of %d = %g", v, out[0])
		}
	}
	out := format.Denormalize(format.Normalize(Texel{-128}))
	if out[0] != -127 {
		t.Errorf("round trip of -128 = %g, want -127", out[0])
	}
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		in     float64
		want   float64
	}{
		{"rounds half away", Format{1, ChannelUint8}, 10.5, 11},
		{"rounds down", Format{1, ChannelUint8}, 10.4, 10},
		{"clamps high", Format{1, ChannelUint8}, 300, 255},
		{"clamps low", Format{1, ChannelInt8}, -200, -128},
		{"negative half away", Format{1, ChannelInt8}, -2.5, -3},
		{"float passthrough", Format{1, ChannelFloat32}, 10.4, 10.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.format.Quantize(Texel{tt.in})
			if got[0] != tt.want {
				t.Errorf("Quantize(%g) = %g, want %g", tt.in, got[0], tt.want)
			}
		})
	}
}

func TestTextureFormat(t *testing.T) {
	tests := []struct {
		format Format
		read   ReadMode
		want   gputypes.TextureFormat
	}{
		{Format{1, ChannelInt8}, ReadElement, gputypes.TextureFormatR8Sint},
		{Format{4, ChannelUint8}, ReadNormalizedFloat, gputypes.TextureFormatRGBA8Unorm},
		{Format{2, ChannelInt8}, ReadNormalizedFloat, gputypes.TextureFormatRG8Snorm},
		{Format{4, ChannelFloat32}, ReadElement, gputypes.TextureFormatRGBA32Float},
		{Format{1, ChannelUint32}, ReadElement, gputypes.TextureFormatR32Uint},
		// 16-bit normalized has no core WebGPU equivalent.
		{Format{1, ChannelUint16}, ReadNormalizedFloat, gputypes.TextureFormatUndefined},
	}
	for _, tt := range tests {
		if got := tt.format.TextureFormat(tt.read); got != tt.want {
			t.Errorf("%v.TextureFormat(%v) = %v, want %v", tt.format, tt.read, got, tt.want)
		}
	}
}

func TestTexelEqualWithin(t *testing.T) {
	a := Texel{1, 2, 3, 4}
	b := Texel{1.0005, 2, 3, 400}
	if !a.EqualWithin(b, 1, 0.001) {
		t.Error("first channel should match within tolerance")
	}
	if a.EqualWithin(b, 4, 0.001) {
		t.Error("fourth channel should exceed tolerance")
	}
	if got := a.FormatString(2); got != "(1, 2)" {
		t.Errorf("FormatString(2) = %q, want %q", got, "(1, 2)")
	}
}
