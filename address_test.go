package miptex

import "testing"

func TestResolveIndex(t *testing.T) {
	tests := []struct {
		name       string
		index      int
		width      int
		mode       AddressMode
		want       int
		wantBorder bool
	}{
		{"in range", 3, 8, AddressClamp, 3, false},
		{"first", 0, 8, AddressClamp, 0, false},
		{"last", 7, 8, AddressClamp, 7, false},
		{"clamp below", -1, 8, AddressClamp, 0, false},
		{"clamp far below", -100, 8, AddressClamp, 0, false},
		{"clamp above", 8, 8, AddressClamp, 7, false},
		{"clamp far above", 1000, 8, AddressClamp, 7, false},
		{"border below", -1, 8, AddressBorder, 0, true},
		{"border above", 8, 8, AddressBorder, 0, true},
		{"border in range", 5, 8, AddressBorder, 5, false},
		{"width one clamp", 4, 1, AddressClamp, 0, false},
		{"width one border", 1, 1, AddressBorder, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, border := ResolveIndex(tt.index, tt.width, tt.mode)
			if got != tt.want || border != tt.wantBorder {
				t.Errorf("ResolveIndex(%d, %d, %v) = (%d, %v), want (%d, %v)",
					tt.index, tt.width, tt.mode, got, border, tt.want, tt.wantBorder)
			}
		})
	}
}

// Clamp resolution is idempotent: resolving an already-resolved index is a
// no-op.
func TestResolveIndexClampIdempotent(t *testing.T) {
	const width = 23
	for index := -30; index < 60; index++ {
		first, border := ResolveIndex(index, width, AddressClamp)
		if border {
			t.Fatalf("clamp resolution of %d reported border", index)
		}
		second, _ := ResolveIndex(first, width, AddressClamp)
		if second != first {
			t.Errorf("ResolveIndex not idempotent: %d -> %d -> %d", index, first, second)
		}
	}
}

func TestAddressModeString(t *testing.T) {
	if AddressClamp.String() != "Clamp" || AddressBorder.String() != "Border" {
		t.Errorf("unexpected AddressMode strings: %q, %q",
			AddressClamp.String(), AddressBorder.String())
	}
}
