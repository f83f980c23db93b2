package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/miptex"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    miptex.Format
		wantErr bool
	}{
		{"uint8x4", miptex.Format{Channels: 4, Type: miptex.ChannelUint8}, false},
		{"int16x2", miptex.Format{Channels: 2, Type: miptex.ChannelInt16}, false},
		{"float32x1", miptex.Format{Channels: 1, Type: miptex.ChannelFloat32}, false},
		{"uint8", miptex.Format{}, true},
		{"uint8x3", miptex.Format{}, true},
		{"int64x1", miptex.Format{}, true},
	}
	for _, tt := range tests {
		got, err := parseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestLoadCases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[case]]
name = "smoke"
base_width = 23
offset = 0.49
format = "uint8x4"
read = "element"
filter = "nearest"
address = "clamp"

[[case]]
base_width = 67
offset = -0.3
format = "int16x1"
read = "normalized"
filter = "linear"
address = "border"
seed = 7
`), 0o644))

	cases, err := loadCases(path)
	require.NoError(t, err)
	require.Len(t, cases, 2)

	assert.Equal(t, "smoke", cases[0].Name)
	assert.Equal(t, 23, cases[0].BaseWidth)
	assert.Equal(t, miptex.Format{Channels: 4, Type: miptex.ChannelUint8}, cases[0].Format)
	assert.Equal(t, miptex.ReadElement, cases[0].Read)

	assert.NotEmpty(t, cases[1].Name) // defaulted from the parameters
	assert.Equal(t, miptex.ReadNormalizedFloat, cases[1].Read)
	assert.Equal(t, miptex.FilterLinear, cases[1].Filter)
	assert.Equal(t, miptex.AddressBorder, cases[1].Address)
	assert.Equal(t, uint64(7), cases[1].Seed)
}

func TestLoadCasesRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"bad toml", "[[case\n"},
		{"bad format", "[[case]]\nbase_width = 23\nformat = \"nope\"\n"},
		{"unsupported combo", "[[case]]\nbase_width = 23\nformat = \"uint8x1\"\nfilter = \"linear\"\n"},
		{"bad width", "[[case]]\nbase_width = 0\nformat = \"uint8x1\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))
			_, err := loadCases(path)
			assert.Error(t, err)
		})
	}
}
