package miptex

import "errors"

// Common errors reported by the reference engine and harness.
var (
	// ErrContractViolation is returned when a device collaborator reports
	// state inconsistent with the documented mipmap contract (for example
	// a level width that disagrees with the halving formula). It indicates
	// a broken device, not a sampling mismatch, and aborts the current case.
	ErrContractViolation = errors.New("miptex: device contract violation")

	// ErrUnsupportedConfiguration is returned when a format, filter and
	// addressing combination falls outside the supported matrix, such as a
	// normalized-float read of float storage or linear filtering of an
	// integer element read. Rejected before any synthesis begins.
	ErrUnsupportedConfiguration = errors.New("miptex: unsupported sampling configuration")

	// ErrUnknownChain is returned by device implementations when a chain
	// handle does not refer to a live allocation.
	ErrUnknownChain = errors.New("miptex: unknown chain handle")

	// ErrLevelOutOfRange is returned when a level index is outside the
	// chain's [0, NumLevels) range.
	ErrLevelOutOfRange = errors.New("miptex: mip level out of range")
)
