package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/miptex"
)

// fakeBackend is a minimal backend for registry tests.
type fakeBackend struct {
	name string
}

func (b *fakeBackend) Name() string                      { return b.name }
func (b *fakeBackend) Init() error                       { return nil }
func (b *fakeBackend) Close()                            {}
func (b *fakeBackend) NewDevice() (miptex.Device, error) { return NewSoftwareDevice(), nil }

func TestRegistry(t *testing.T) {
	const name = "test-backend"
	Register(name, func() Backend { return &fakeBackend{name: name} })
	defer Unregister(name)

	assert.True(t, IsRegistered(name))
	assert.Contains(t, Available(), name)

	b := Get(name)
	require.NotNil(t, b)
	assert.Equal(t, name, b.Name())

	Unregister(name)
	assert.False(t, IsRegistered(name))
	assert.Nil(t, Get(name))
}

// The software backend registers itself on import and is always available.
func TestSoftwareRegistered(t *testing.T) {
	assert.True(t, IsRegistered(BackendSoftware))

	b := Default()
	require.NotNil(t, b)
}

func TestInitDefault(t *testing.T) {
	b, err := InitDefault()
	require.NoError(t, err)
	defer b.Close()

	dev, err := b.NewDevice()
	require.NoError(t, err)
	require.NotNil(t, dev)
}

func TestSoftwareBackendRequiresInit(t *testing.T) {
	b := NewSoftwareBackend()
	_, err := b.NewDevice()
	require.ErrorIs(t, err, ErrNotInitialized)

	require.NoError(t, b.Init())
	dev, err := b.NewDevice()
	require.NoError(t, err)
	require.NotNil(t, dev)
	b.Close()
}
