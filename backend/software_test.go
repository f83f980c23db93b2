package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/miptex"
)

func testDescriptor() miptex.ChainDescriptor {
	return miptex.ChainDescriptor{
		BaseWidth: 23,
		Format:    miptex.Format{Channels: 1, Type: miptex.ChannelUint8},
		Read:      miptex.ReadElement,
		Filter:    miptex.FilterNearest,
		Address:   miptex.AddressClamp,
	}
}

func TestSoftwareDeviceGeometry(t *testing.T) {
	dev := NewSoftwareDevice()

	id, err := dev.AllocateChain(testDescriptor())
	require.NoError(t, err)
	require.NotEqual(t, miptex.InvalidChainID, id)
	defer dev.FreeChain(id)

	wantWidths := []int{23, 11, 5, 2, 1}
	for level, want := range wantWidths {
		w, err := dev.LevelWidth(id, level)
		require.NoError(t, err)
		assert.Equal(t, want, w, "level %d", level)
	}

	_, err = dev.LevelWidth(id, len(wantWidths))
	assert.ErrorIs(t, err, miptex.ErrLevelOutOfRange)
}

func TestSoftwareDeviceRejectsInvalidDescriptor(t *testing.T) {
	dev := NewSoftwareDevice()
	desc := testDescriptor()
	desc.Filter = miptex.FilterLinear // integer element + linear
	_, err := dev.AllocateChain(desc)
	require.ErrorIs(t, err, miptex.ErrUnsupportedConfiguration)
}

func TestSoftwareDeviceUnknownChain(t *testing.T) {
	dev := NewSoftwareDevice()

	_, err := dev.LevelWidth(42, 0)
	assert.ErrorIs(t, err, miptex.ErrUnknownChain)
	_, err = dev.ReadLevel(42, 0)
	assert.ErrorIs(t, err, miptex.ErrUnknownChain)
	err = dev.WriteLevel(42, 0, nil)
	assert.ErrorIs(t, err, miptex.ErrUnknownChain)
	err = dev.SynthesizeLevel(42, 0)
	assert.ErrorIs(t, err, miptex.ErrUnknownChain)
	_, err = dev.Sample(42, 0, []float64{0.5})
	assert.ErrorIs(t, err, miptex.ErrUnknownChain)

	// Freeing an unknown chain is a no-op.
	dev.FreeChain(42)
}

func TestSoftwareDeviceWriteReadRoundTrip(t *testing.T) {
	dev := NewSoftwareDevice()
	id, err := dev.AllocateChain(testDescriptor())
	require.NoError(t, err)
	defer dev.FreeChain(id)

	base := miptex.RandomTexels(23, testDescriptor().Format, 3)
	require.NoError(t, dev.WriteLevel(id, 0, base))

	got, err := dev.ReadLevel(id, 0)
	require.NoError(t, err)
	assert.Equal(t, base, got)

	// Readback is a copy: mutating it must not affect device storage.
	got[0][0]++
	again, err := dev.ReadLevel(id, 0)
	require.NoError(t, err)
	assert.Equal(t, base, again)
}

func TestSoftwareDeviceWriteLengthMismatch(t *testing.T) {
	dev := NewSoftwareDevice()
	id, err := dev.AllocateChain(testDescriptor())
	require.NoError(t, err)
	defer dev.FreeChain(id)

	err = dev.WriteLevel(id, 0, make([]miptex.Texel, 5))
	require.ErrorIs(t, err, miptex.ErrContractViolation)
}

func TestSoftwareDeviceSynthesisMatchesReference(t *testing.T) {
	desc := testDescriptor()
	dev := NewSoftwareDevice()
	id, err := dev.AllocateChain(desc)
	require.NoError(t, err)
	defer dev.FreeChain(id)

	base := miptex.RandomTexels(desc.BaseWidth, desc.Format, 11)
	require.NoError(t, dev.WriteLevel(id, 0, base))
	for l := 0; l+1 < desc.LevelCount(); l++ {
		require.NoError(t, dev.SynthesizeLevel(id, l))
	}

	ref, err := miptex.Synthesize(base, desc.Format, desc.Read)
	require.NoError(t, err)
	for l := 0; l < desc.LevelCount(); l++ {
		got, err := dev.ReadLevel(id, l)
		require.NoError(t, err)
		assert.Equal(t, ref.Level(l).Texels, got, "level %d", l)
	}
}

func TestSoftwareDeviceSample(t *testing.T) {
	desc := testDescriptor()
	dev := NewSoftwareDevice()
	id, err := dev.AllocateChain(desc)
	require.NoError(t, err)
	defer dev.FreeChain(id)

	base := miptex.RandomTexels(desc.BaseWidth, desc.Format, 5)
	require.NoError(t, dev.WriteLevel(id, 0, base))

	coords := []float64{0.0, 0.5, 0.99, -0.1, 1.3}
	got, err := dev.Sample(id, 0, coords)
	require.NoError(t, err)
	require.Len(t, got, len(coords))
	for i, coord := range coords {
		want := miptex.SampleLevel(base, desc.BaseWidth, desc.Format, coord,
			desc.Filter, desc.Address, desc.Read)
		assert.Equal(t, want, got[i], "coord %g", coord)
	}

	// Fractional and out-of-range LODs are rejected.
	_, err = dev.Sample(id, 0.5, coords)
	assert.ErrorIs(t, err, miptex.ErrLevelOutOfRange)
	_, err = dev.Sample(id, 99, coords)
	assert.ErrorIs(t, err, miptex.ErrLevelOutOfRange)
}
