package miptex

import (
	"errors"
	"testing"
)

func TestSynthesizeStepValues(t *testing.T) {
	format := Format{Channels: 1, Type: ChannelFloat32}
	src := floatLevel(10, 20, 30, 40)

	// dst width 2: texel 0 samples at 0.25 -> source index 1, texel 1
	// samples at 0.75 -> source index 3.
	dst := SynthesizeStep(src, 4, format, ReadElement)
	if len(dst) != 2 {
		t.Fatalf("len(dst) = %d, want 2", len(dst))
	}
	if dst[0][0] != 20 || dst[1][0] != 40 {
		t.Errorf("dst = [%g, %g], want [20, 40]", dst[0][0], dst[1][0])
	}
}

func TestSynthesizeStepOddWidth(t *testing.T) {
	format := Format{Channels: 1, Type: ChannelFloat32}
	src := floatLevel(1, 2, 3, 4, 5)

	// dst width 2: coords 0.25 and 0.75 -> source indices 1 and 3.
	dst := SynthesizeStep(src, 5, format, ReadElement)
	if len(dst) != 2 || dst[0][0] != 2 || dst[1][0] != 4 {
		t.Errorf("dst = %v, want values 2 and 4", dst)
	}
}

func TestSynthesizeStepNormalized(t *testing.T) {
	format := Format{Channels: 1, Type: ChannelUint8}
	src := []Texel{{0}, {255}}

	// dst width 1: coord 0.5 -> source index 1; the normalized value 1.0
	// converts back to storage 255.
	dst := SynthesizeStep(src, 2, format, ReadNormalizedFloat)
	if len(dst) != 1 || dst[0][0] != 255 {
		t.Errorf("dst = %v, want [255]", dst)
	}
}

func TestSynthesizeChainShape(t *testing.T) {
	format := Format{Channels: 1, Type: ChannelFloat32}

	tests := []struct {
		baseWidth int
		widths    []int
	}{
		{23, []int{23, 11, 5, 2, 1}},
		{1, []int{1}},
		{2, []int{2, 1}},
		{263, []int{263, 131, 65, 32, 16, 8, 4, 2, 1}},
	}
	for _, tt := range tests {
		base := make([]Texel, tt.baseWidth)
		c, err := Synthesize(base, format, ReadElement)
		if err != nil {
			t.Fatalf("Synthesize(width %d): %v", tt.baseWidth, err)
		}
		if c.NumLevels() != len(tt.widths) {
			t.Fatalf("width %d: %d levels, want %d", tt.baseWidth, c.NumLevels(), len(tt.widths))
		}
		for i, want := range tt.widths {
			if got := c.Level(i).Width; got != want {
				t.Errorf("width %d level %d: width %d, want %d", tt.baseWidth, i, got, want)
			}
		}
		if err := c.VerifyLaws(); err != nil {
			t.Errorf("width %d: VerifyLaws: %v", tt.baseWidth, err)
		}
	}
}

func TestSynthesizeRejectsInvalid(t *testing.T) {
	if _, err := Synthesize(nil, Format{Channels: 1, Type: ChannelFloat32}, ReadElement); !errors.Is(err, ErrLevelOutOfRange) {
		t.Errorf("empty base: %v, want ErrLevelOutOfRange", err)
	}
	base := make([]Texel, 4)
	if _, err := Synthesize(base, Format{Channels: 1, Type: ChannelFloat32}, ReadNormalizedFloat); !errors.Is(err, ErrUnsupportedConfiguration) {
		t.Errorf("normalized float storage: %v, want ErrUnsupportedConfiguration", err)
	}
}

func TestSynthesizeOptions(t *testing.T) {
	format := Format{Channels: 1, Type: ChannelFloat32}
	src := floatLevel(0, 100)

	// Linear synthesis at dst coord 0.5 lands on pos 0.5 in the source:
	// halfway between the two texels.
	dst := SynthesizeStep(src, 2, format, ReadElement, WithSynthesisFilter(FilterLinear))
	if dst[0][0] != 50 {
		t.Errorf("linear synthesis = %g, want 50", dst[0][0])
	}
}
