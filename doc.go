// Package miptex provides a reference texture-sampling and mipmap-synthesis
// engine for validating GPU sampler output.
//
// # Overview
//
// miptex models, on the CPU, what a hardware texture unit is expected to
// produce when sampling a 1D mipmapped texture: mipmap chain synthesis,
// level-of-detail selection, nearest/linear filtering, and clamp/border
// addressing. The reference results are compared against "observed" samples
// produced by a device executor, turning any sampler implementation into a
// testable black box.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/miptex"
//	    "github.com/gogpu/miptex/backend"
//	)
//
//	b, err := backend.InitDefault()
//	if err != nil { ... }
//	defer b.Close()
//
//	dev, err := b.NewDevice()
//	if err != nil { ... }
//
//	h := miptex.NewHarness(dev)
//	report, err := h.Run(miptex.Case{
//	    Name:      "uint8x4 nearest clamp",
//	    BaseWidth: 23,
//	    Offset:    0.49,
//	    Format:    miptex.Format{Channels: 4, Type: miptex.ChannelUint8},
//	    Read:      miptex.ReadElement,
//	    Filter:    miptex.FilterNearest,
//	    Address:   miptex.AddressClamp,
//	})
//
// # Architecture
//
// The library is organized into:
//   - Public API: Chain, Level, Texel, Format, SampleRequest, Harness
//   - Reference engine: addressing resolver, filter kernel, LOD model,
//     mipmap synthesis
//   - Backends: software (self-consistency oracle), native (gogpu/wgpu)
//
// # Coordinate System
//
// Sample coordinates are normalized to [0, 1) relative to a level's width.
// A texel index i at a level of width w corresponds to the normalized
// coordinate (i + 0.5) / w at the texel center.
package miptex

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
