package miptex

// Collaborator interfaces for the device under test.
//
// The reference engine treats the device as a black-box oracle: the harness
// allocates a chain, uploads base data, drives per-level synthesis, reads
// levels back and requests samples. Whatever the device returns is the
// "observed" data verified against the reference model. Resources are
// addressed through opaque handles; each implementation maintains its own
// mapping between handles and backing storage.

// ChainID is an opaque handle to a device-side mipmap chain.
type ChainID uint64

// InvalidChainID is the zero value, representing an invalid/null chain.
const InvalidChainID ChainID = 0

// ChainDescriptor describes a mipmap chain allocation, including the
// sampler state bound to the chain's texture object for its lifetime.
type ChainDescriptor struct {
	// BaseWidth is the width of level 0 in texels.
	BaseWidth int

	// Levels is the mip level count. Zero means the full chain,
	// 1 + floor(log2(BaseWidth)).
	Levels int

	// Format is the per-texel storage format.
	Format Format

	// Read selects element or normalized-float presentation on sample.
	Read ReadMode

	// Filter is the interpolation policy of the bound sampler.
	Filter FilterMode

	// Address is the out-of-range policy of the bound sampler.
	Address AddressMode
}

// LevelCount returns the effective level count of the descriptor.
func (d ChainDescriptor) LevelCount() int {
	if d.Levels > 0 {
		return d.Levels
	}
	return LevelCount(d.BaseWidth)
}

// Validate rejects descriptors outside the supported matrix.
func (d ChainDescriptor) Validate() error {
	if d.BaseWidth < 1 {
		return ErrLevelOutOfRange
	}
	return d.Format.ValidateSampling(d.Read, d.Filter)
}

// Allocator allocates device-side mipmap chains and reports per-level
// geometry. The harness cross-checks every reported width against the
// halving formula; disagreement is a contract violation that aborts the
// current case.
type Allocator interface {
	// AllocateChain allocates a chain and its level storage.
	AllocateChain(desc ChainDescriptor) (ChainID, error)

	// LevelWidth returns the width the device reports for a level.
	LevelWidth(id ChainID, level int) (int, error)

	// FreeChain releases the chain and all its levels.
	FreeChain(id ChainID)
}

// Executor runs device-side work against an allocated chain. The numeric
// computation happens off the reference engine; the engine only supplies
// inputs and treats outputs as observed data to verify.
type Executor interface {
	// WriteLevel uploads storage-domain texels to a level.
	WriteLevel(id ChainID, level int, texels []Texel) error

	// SynthesizeLevel populates level srcLevel+1 by sampling srcLevel,
	// the device-side equivalent of SynthesizeStep.
	SynthesizeLevel(id ChainID, srcLevel int) error

	// ReadLevel reads a level back as storage-domain texels.
	ReadLevel(id ChainID, level int) ([]Texel, error)

	// Sample samples the chain's texture at the given normalized
	// coordinates and integer-valued LOD, under the sampler state from
	// the chain's descriptor. Results are in the read domain: storage
	// values for element reads, floats for normalized reads.
	Sample(id ChainID, lod float64, coords []float64) ([]Texel, error)
}

// Device is a complete collaborator: allocation plus execution.
type Device interface {
	Allocator
	Executor
}
