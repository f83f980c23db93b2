package backend

import (
	"fmt"
	"sync"

	"github.com/gogpu/miptex"
)

// SoftwareBackend is a CPU-based device backend. Its devices run the
// reference engine's own synthesis and sampling kernels, making the
// software device a self-consistency oracle: any mismatch the harness
// finds against it is a bug in the harness or the engine, not a device
// difference.
type SoftwareBackend struct {
	initialized bool
}

// init registers the software backend on package import.
func init() {
	Register(BackendSoftware, func() Backend {
		return &SoftwareBackend{}
	})
}

// NewSoftwareBackend creates a new software device backend.
func NewSoftwareBackend() *SoftwareBackend {
	return &SoftwareBackend{}
}

// Name returns the backend identifier.
func (b *SoftwareBackend) Name() string {
	return BackendSoftware
}

// Init initializes the backend.
func (b *SoftwareBackend) Init() error {
	b.initialized = true
	return nil
}

// Close releases all backend resources.
func (b *SoftwareBackend) Close() {
	b.initialized = false
}

// NewDevice creates a software device. Devices are independent; chains
// allocated on one are not visible to another.
func (b *SoftwareBackend) NewDevice() (miptex.Device, error) {
	if !b.initialized {
		return nil, ErrNotInitialized
	}
	return NewSoftwareDevice(), nil
}

// softwareChain is one allocated chain: its descriptor plus per-level
// storage in the texel domain.
type softwareChain struct {
	desc   miptex.ChainDescriptor
	levels [][]miptex.Texel
}

// SoftwareDevice implements miptex.Device on the reference engine.
// Safe for concurrent use.
type SoftwareDevice struct {
	mu     sync.Mutex
	chains map[miptex.ChainID]*softwareChain
	nextID miptex.ChainID
}

// NewSoftwareDevice creates an empty software device.
func NewSoftwareDevice() *SoftwareDevice {
	return &SoftwareDevice{
		chains: make(map[miptex.ChainID]*softwareChain),
	}
}

// AllocateChain allocates per-level storage following the halving formula.
func (d *SoftwareDevice) AllocateChain(desc miptex.ChainDescriptor) (miptex.ChainID, error) {
	if err := desc.Validate(); err != nil {
		return miptex.InvalidChainID, err
	}
	levels := make([][]miptex.Texel, desc.LevelCount())
	width := desc.BaseWidth
	for i := range levels {
		levels[i] = make([]miptex.Texel, width)
		width = miptex.NextWidth(width)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	id := d.nextID
	d.chains[id] = &softwareChain{desc: desc, levels: levels}
	return id, nil
}

// LevelWidth returns the allocated width of a level.
func (d *SoftwareDevice) LevelWidth(id miptex.ChainID, level int) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, err := d.chain(id)
	if err != nil {
		return 0, err
	}
	if level < 0 || level >= len(c.levels) {
		return 0, fmt.Errorf("%w: level %d of %d", miptex.ErrLevelOutOfRange, level, len(c.levels))
	}
	return len(c.levels[level]), nil
}

// FreeChain releases the chain. Freeing an unknown chain is a no-op.
func (d *SoftwareDevice) FreeChain(id miptex.ChainID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.chains, id)
}

// WriteLevel copies texels into a level's storage.
func (d *SoftwareDevice) WriteLevel(id miptex.ChainID, level int, texels []miptex.Texel) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, err := d.chain(id)
	if err != nil {
		return err
	}
	if level < 0 || level >= len(c.levels) {
		return fmt.Errorf("%w: level %d of %d", miptex.ErrLevelOutOfRange, level, len(c.levels))
	}
	if len(texels) != len(c.levels[level]) {
		return fmt.Errorf("%w: write of %d texels to level %d (width %d)",
			miptex.ErrContractViolation, len(texels), level, len(c.levels[level]))
	}
	copy(c.levels[level], texels)
	return nil
}

// SynthesizeLevel derives level srcLevel+1 from srcLevel with the
// reference decimation.
func (d *SoftwareDevice) SynthesizeLevel(id miptex.ChainID, srcLevel int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, err := d.chain(id)
	if err != nil {
		return err
	}
	if srcLevel < 0 || srcLevel+1 >= len(c.levels) {
		return fmt.Errorf("%w: synthesis from level %d of %d",
			miptex.ErrLevelOutOfRange, srcLevel, len(c.levels))
	}
	src := c.levels[srcLevel]
	next := miptex.SynthesizeStep(src, len(src), c.desc.Format, c.desc.Read)
	copy(c.levels[srcLevel+1], next)
	return nil
}

// ReadLevel returns a copy of a level's storage.
func (d *SoftwareDevice) ReadLevel(id miptex.ChainID, level int) ([]miptex.Texel, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, err := d.chain(id)
	if err != nil {
		return nil, err
	}
	if level < 0 || level >= len(c.levels) {
		return nil, fmt.Errorf("%w: level %d of %d", miptex.ErrLevelOutOfRange, level, len(c.levels))
	}
	out := make([]miptex.Texel, len(c.levels[level]))
	copy(out, c.levels[level])
	return out, nil
}

// Sample evaluates the chain's sampler at the given coordinates, using the
// filter, address and read modes from the chain's descriptor.
func (d *SoftwareDevice) Sample(id miptex.ChainID, lod float64, coords []float64) ([]miptex.Texel, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, err := d.chain(id)
	if err != nil {
		return nil, err
	}
	level := int(lod)
	if float64(level) != lod || level < 0 || level >= len(c.levels) {
		return nil, fmt.Errorf("%w: lod %g of %d levels",
			miptex.ErrLevelOutOfRange, lod, len(c.levels))
	}
	data := c.levels[level]
	out := make([]miptex.Texel, len(coords))
	for i, coord := range coords {
		out[i] = miptex.SampleLevel(data, len(data), c.desc.Format, coord,
			c.desc.Filter, c.desc.Address, c.desc.Read)
	}
	return out, nil
}

// chain looks up a chain; the caller holds d.mu.
func (d *SoftwareDevice) chain(id miptex.ChainID) (*softwareChain, error) {
	c, ok := d.chains[id]
	if !ok {
		return nil, fmt.Errorf("%w: chain %d", miptex.ErrUnknownChain, id)
	}
	return c, nil
}
