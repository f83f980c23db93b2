package miptex

import "testing"

func TestSmoothRamp(t *testing.T) {
	format := Format{Channels: 2, Type: ChannelFloat32}
	const width = 23

	ramp := SmoothRamp(width, format)
	if len(ramp) != width {
		t.Fatalf("len = %d, want %d", len(ramp), width)
	}
	// The parabola i*(i-width+1) is zero at both ends.
	if ramp[0][0] != 0 || ramp[width-1][0] != 0 {
		t.Errorf("endpoints = %g, %g, want 0, 0", ramp[0][0], ramp[width-1][0])
	}
	// Channels carry the same value.
	for i, tx := range ramp {
		if tx[0] != tx[1] {
			t.Errorf("texel %d channels differ: %g != %g", i, tx[0], tx[1])
		}
	}
	// Interior values are negative (the parabola opens upward with roots
	// at the ends).
	if ramp[width/2][0] >= 0 {
		t.Errorf("midpoint = %g, want negative", ramp[width/2][0])
	}
}

func TestSmoothRampQuantizes(t *testing.T) {
	format := Format{Channels: 1, Type: ChannelInt8}
	ramp := SmoothRamp(67, format)
	for i, tx := range ramp {
		if tx[0] < -128 || tx[0] > 127 {
			t.Errorf("texel %d = %g outside int8 storage range", i, tx[0])
		}
	}
}

func TestRandomTexelsDeterministic(t *testing.T) {
	format := Format{Channels: 4, Type: ChannelUint16}
	a := RandomTexels(131, format, 7)
	b := RandomTexels(131, format, 7)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("texel %d differs between identical seeds", i)
		}
	}

	c := RandomTexels(131, format, 8)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical data")
	}
}

func TestRandomTexelsRange(t *testing.T) {
	tests := []struct {
		format   Format
		min, max float64
	}{
		{Format{Channels: 1, Type: ChannelInt8}, -128, 127},
		{Format{Channels: 1, Type: ChannelUint8}, 0, 255},
		{Format{Channels: 2, Type: ChannelInt16}, -32768, 32767},
	}
	for _, tt := range tests {
		data := RandomTexels(263, tt.format, 1)
		for i, tx := range data {
			for c := 0; c < tt.format.Channels; c++ {
				if tx[c] < tt.min || tx[c] > tt.max {
					t.Errorf("%v texel %d ch %d = %g outside [%g, %g]",
						tt.format, i, c, tx[c], tt.min, tt.max)
				}
			}
		}
	}
}
