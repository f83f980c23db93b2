package backend

import (
	"errors"

	"github.com/gogpu/miptex"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// Backend name constants.
const (
	// BackendSoftware is the name of the CPU-based software backend.
	BackendSoftware = "software"
	// BackendNative is the name of the pure Go GPU backend (gogpu/wgpu).
	BackendNative = "native"
)

// Backend is the interface for device backends. It abstracts where mipmap
// chains live and who runs synthesis and sampling, allowing the harness to
// verify multiple implementations (software, GPU via wgpu) uniformly.
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type Backend interface {
	// Name returns the backend identifier (e.g., "software", "native").
	Name() string

	// Init initializes the backend.
	// This should be called before creating any devices.
	Init() error

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()

	// NewDevice creates a device for the harness to drive. Each device
	// owns its chains independently; devices from the same backend may
	// share underlying GPU state.
	NewDevice() (miptex.Device, error)
}
