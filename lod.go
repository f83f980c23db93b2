package miptex

import (
	"fmt"
	"math"
)

// SampleRequest describes one reference sample query against a chain.
// Requests are transient: constructed per query and never mutated.
type SampleRequest struct {
	// Coord is the normalized sample coordinate relative to the selected
	// level's width. Values outside [0, 1) resolve through Address.
	Coord float64

	// LOD selects the mip level. The per-level verification path requires
	// an exact integer-valued level; Chain.SampleLOD accepts fractional
	// values and blends between adjacent levels.
	LOD float64

	// Filter is the interpolation policy.
	Filter FilterMode

	// Address is the out-of-range index policy.
	Address AddressMode

	// Read selects element or normalized-float presentation.
	Read ReadMode
}

// Sample evaluates the request against the chain at an exact integer LOD.
// This is the reference model the verification driver compares hardware
// output against: the LOD dispatches to the filter kernel on that level.
func (c *Chain) Sample(req SampleRequest) (Texel, error) {
	if err := c.format.ValidateSampling(req.Read, req.Filter); err != nil {
		return Texel{}, err
	}
	lod := int(req.LOD)
	if float64(lod) != req.LOD || lod < 0 || lod >= c.NumLevels() {
		return Texel{}, fmt.Errorf("%w: lod %g of %d levels",
			ErrLevelOutOfRange, req.LOD, c.NumLevels())
	}
	lv := &c.levels[lod]
	return SampleLevel(lv.Texels, lv.Width, c.format, req.Coord,
		req.Filter, req.Address, req.Read), nil
}

// SampleLOD evaluates the request allowing a fractional LOD, blending
// linearly between the two adjacent integer levels (trilinear when Filter
// is Linear). LOD values are clamped to the chain's level range.
//
// The per-level verification driver does not use this path; it exists for
// callers that model full hardware LOD selection.
func (c *Chain) SampleLOD(req SampleRequest) (Texel, error) {
	if err := c.format.ValidateSampling(req.Read, req.Filter); err != nil {
		return Texel{}, err
	}
	lod := req.LOD
	if lod < 0 {
		lod = 0
	}
	if maxLOD := float64(c.NumLevels() - 1); lod > maxLOD {
		lod = maxLOD
	}
	lo := int(math.Floor(lod))
	frac := lod - float64(lo)
	loLevel := &c.levels[lo]
	sample := SampleLevel(loLevel.Texels, loLevel.Width, c.format, req.Coord,
		req.Filter, req.Address, req.Read)
	if frac == 0 {
		return sample, nil
	}
	hiLevel := &c.levels[lo+1]
	hi := SampleLevel(hiLevel.Texels, hiLevel.Width, c.format, req.Coord,
		req.Filter, req.Address, req.Read)
	var out Texel
	for ch := 0; ch < c.format.Channels; ch++ {
		out[ch] = (1-frac)*sample[ch] + frac*hi[ch]
	}
	if req.Read == ReadElement && c.format.Type.IsInteger() {
		out = c.format.Quantize(out)
	}
	return out, nil
}
