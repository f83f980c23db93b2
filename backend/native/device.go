//go:build !nogpu

package native

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/miptex"
	"github.com/gogpu/wgpu/hal"
	types "github.com/gogpu/gputypes"
)

// Device implements miptex.Device on the GPU. Each chain is backed by a
// mipmapped 1D HAL texture plus a CPU mirror of the level data.
//
// Note: full GPU dispatch requires buffer binding and texture readback,
// which need HAL API extensions. Level uploads go to the real texture;
// synthesis and sampling currently run the shader's algorithm on the CPU
// mirror in f32, matching sample1d.wgsl operation for operation.
type Device struct {
	mu sync.Mutex

	device    hal.Device
	queue     hal.Queue
	pipelines *samplerPipelines

	chains map[miptex.ChainID]*nativeChain
	nextID atomic.Uint64
}

// nativeChain is one allocated chain: the HAL texture and the CPU mirror.
type nativeChain struct {
	desc    miptex.ChainDescriptor
	texture hal.Texture
	levels  [][]miptex.Texel
}

func newDevice(device hal.Device, queue hal.Queue, pipelines *samplerPipelines) *Device {
	d := &Device{
		device:    device,
		queue:     queue,
		pipelines: pipelines,
		chains:    make(map[miptex.ChainID]*nativeChain),
	}
	// Start ID generation at 1 (0 is invalid)
	d.nextID.Store(1)
	return d
}

// AllocateChain creates the mipmapped texture and its mirror storage.
func (d *Device) AllocateChain(desc miptex.ChainDescriptor) (miptex.ChainID, error) {
	if err := desc.Validate(); err != nil {
		return miptex.InvalidChainID, err
	}

	levelCount := desc.LevelCount()
	texture, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label: "miptex_chain",
		Size: hal.Extent3D{
			Width:              uint32(desc.BaseWidth),
			Height:             1,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: uint32(levelCount),
		SampleCount:   1,
		Dimension:     types.TextureDimension1D,
		Format:        textureFormat(desc.Format, desc.Read),
		Usage:         types.TextureUsageCopySrc | types.TextureUsageCopyDst | types.TextureUsageTextureBinding,
	})
	if err != nil {
		return miptex.InvalidChainID, fmt.Errorf("native: create texture: %w", err)
	}

	levels := make([][]miptex.Texel, levelCount)
	width := desc.BaseWidth
	for i := range levels {
		levels[i] = make([]miptex.Texel, width)
		width = miptex.NextWidth(width)
	}

	id := miptex.ChainID(d.nextID.Add(1) - 1)
	d.mu.Lock()
	d.chains[id] = &nativeChain{desc: desc, texture: texture, levels: levels}
	d.mu.Unlock()
	return id, nil
}

// LevelWidth returns the allocated width of a level.
func (d *Device) LevelWidth(id miptex.ChainID, level int) (int, error) {
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

// FreeChain destroys the texture and drops the mirror.
func (d *Device) FreeChain(id miptex.ChainID) {
	d.mu.Lock()
	c, ok := d.chains[id]
	if ok {
		delete(d.chains, id)
	}
	d.mu.Unlock()

	if ok && c.texture != nil {
		d.device.DestroyTexture(c.texture)
	}
}

// WriteLevel uploads texels to the texture level and updates the mirror.
func (d *Device) WriteLevel(id miptex.ChainID, level int, texels []miptex.Texel) error {
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
	d.uploadLevel(c, level)
	return nil
}

// uploadLevel writes the mirror's level data to the HAL texture.
// The caller holds d.mu.
func (d *Device) uploadLevel(c *nativeChain, level int) {
	data := levelToBytes(c.desc.Format, c.levels[level])
	width := uint32(len(c.levels[level]))

	dst := &hal.ImageCopyTexture{
		Texture:  c.texture,
		MipLevel: uint32(level),
		Origin:   hal.Origin3D{X: 0, Y: 0, Z: 0},
		Aspect:   types.TextureAspectAll,
	}
	layout := &hal.ImageDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(len(data)),
		RowsPerImage: 1,
	}
	size := &hal.Extent3D{
		Width:              width,
		Height:             1,
		DepthOrArrayLayers: 1,
	}
	d.queue.WriteTexture(dst, data, layout, size)
}

// SynthesizeLevel derives level srcLevel+1 from srcLevel, mirroring
// cs_synthesize, and uploads the result.
func (d *Device) SynthesizeLevel(id miptex.ChainID, srcLevel int) error {
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
	dst := c.levels[srcLevel+1]
	cfg := configFor(c.desc, len(src), len(dst))

	if needsExactFetch(c.desc) {
		for j := range dst {
			coord := (float32(j) + 0.5) / float32(len(dst))
			dst[j] = cfg.sampleExact(src, coord, int32(len(src)))
		}
		d.uploadLevel(c, srcLevel+1)
		return nil
	}

	srcVec := levelToVec4(c.desc.Format, src)
	for j := range dst {
		coord := (float32(j) + 0.5) / float32(len(dst))
		v := cfg.sampleAt(srcVec, coord, int32(len(src)))
		t := texelFromVec4(v)
		if c.desc.Read == miptex.ReadNormalizedFloat {
			t = c.desc.Format.Denormalize(t)
		}
		dst[j] = t
	}
	d.uploadLevel(c, srcLevel+1)
	return nil
}

// ReadLevel returns the level's texel data.
//
// HAL texture readback is not yet available; the mirror holds the
// authoritative copy of what was uploaded and synthesized.
func (d *Device) ReadLevel(id miptex.ChainID, level int) ([]miptex.Texel, error) {
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

// Sample evaluates the chain's sampler at the given coordinates, mirroring
// cs_sample in f32.
func (d *Device) Sample(id miptex.ChainID, lod float64, coords []float64) ([]miptex.Texel, error) {
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

	src := c.levels[level]
	cfg := configFor(c.desc, len(src), 0)

	out := make([]miptex.Texel, len(coords))
	if needsExactFetch(c.desc) {
		for i, coord := range coords {
			out[i] = cfg.sampleExact(src, float32(coord), int32(len(src)))
		}
		return out, nil
	}

	srcVec := levelToVec4(c.desc.Format, src)
	for i, coord := range coords {
		v := cfg.sampleAt(srcVec, float32(coord), int32(len(src)))
		out[i] = texelFromVec4(v)
	}
	return out, nil
}

// chain looks up a chain; the caller holds d.mu.
func (d *Device) chain(id miptex.ChainID) (*nativeChain, error) {
	c, ok := d.chains[id]
	if !ok {
		return nil, fmt.Errorf("%w: chain %d", miptex.ErrUnknownChain, id)
	}
	return c, nil
}
