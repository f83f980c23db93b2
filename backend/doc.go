// Package backend provides a pluggable device backend abstraction.
//
// The backend package allows the miptex harness to verify multiple device
// implementations behind one interface: the software device (the reference
// engine driving itself, always available) and the native GPU device via
// gogpu/wgpu.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// The software backend is automatically registered on import:
//
//	import _ "github.com/gogpu/miptex/backend"
//
// The native backend registers itself when its package is imported:
//
//	import _ "github.com/gogpu/miptex/backend/native"
//
// # Backend Selection
//
// Use Default() to get the best available backend, or Get() to request
// a specific backend by name:
//
//	// Get the default (best available) backend
//	b := backend.Default()
//
//	// Or request a specific backend
//	b := backend.Get("software")
//
// # Usage with Harness
//
// A backend produces devices that implement miptex.Device:
//
//	b, err := backend.InitDefault()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	dev, err := b.NewDevice()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	h := miptex.NewHarness(dev)
//	report, err := h.Run(c)
//
// # Available Backends
//
// - "software": the reference engine as its own device (always available)
// - "native": pure Go GPU device via gogpu/wgpu
package backend
