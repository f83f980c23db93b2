//go:build !nogpu

// Package native provides a pure Go GPU device backend using gogpu/wgpu.
package native

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/miptex"
	"github.com/gogpu/miptex/backend"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// NativeBackend is the GPU device backend. It owns the HAL instance and
// device; the devices it creates share them.
type NativeBackend struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	pipelines *samplerPipelines

	initialized bool
}

// init registers the native backend on package import.
func init() {
	backend.Register(backend.BackendNative, func() backend.Backend {
		return &NativeBackend{}
	})
}

// NewNativeBackend creates a new GPU device backend.
func NewNativeBackend() *NativeBackend {
	return &NativeBackend{}
}

// Name returns the backend identifier.
func (b *NativeBackend) Name() string {
	return backend.BackendNative
}

// Init brings up a standalone Vulkan device and builds the sampling
// pipelines. Returns an error if no usable adapter is present, letting
// backend.InitDefault fall back to the software backend.
func (b *NativeBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	halBackend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("native: vulkan backend not available")
	}
	instance, err := halBackend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("native: create instance: %w", err)
	}
	b.instance = instance

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		b.instance = nil
		return fmt.Errorf("native: no GPU adapters found")
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		b.instance = nil
		return fmt.Errorf("native: open device: %w", err)
	}
	b.device = openDev.Device
	b.queue = openDev.Queue

	pipelines, err := newSamplerPipelines(b.device)
	if err != nil {
		b.destroyLocked()
		return err
	}
	b.pipelines = pipelines

	b.initialized = true
	miptex.Logger().Info("native: GPU initialized", "adapter", selected.Info.Name)
	return nil
}

// Close releases all GPU resources held by the backend.
func (b *NativeBackend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.destroyLocked()
	b.initialized = false
}

func (b *NativeBackend) destroyLocked() {
	if b.pipelines != nil {
		b.pipelines.Destroy()
		b.pipelines = nil
	}
	if b.device != nil {
		b.device.Destroy()
		b.device = nil
	}
	if b.instance != nil {
		b.instance.Destroy()
		b.instance = nil
	}
	b.queue = nil
}

// NewDevice creates a device backed by the shared HAL device and the
// compiled sampling pipelines.
func (b *NativeBackend) NewDevice() (miptex.Device, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}
	return newDevice(b.device, b.queue, b.pipelines), nil
}
