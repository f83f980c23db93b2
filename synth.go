package miptex

// SynthesisOption configures mipmap synthesis.
type SynthesisOption func(*synthOptions)

// synthOptions holds optional synthesis configuration.
type synthOptions struct {
	filter  FilterMode
	address AddressMode
}

// defaultSynthOptions returns the default synthesis configuration:
// point sampling under clamp addressing, the decimation a renderer is
// expected to apply when populating levels from normalized coordinates.
func defaultSynthOptions() synthOptions {
	return synthOptions{
		filter:  FilterNearest,
		address: AddressClamp,
	}
}

// WithSynthesisFilter overrides the filter used to sample the source level
// when deriving the next one.
func WithSynthesisFilter(m FilterMode) SynthesisOption {
	return func(o *synthOptions) {
		o.filter = m
	}
}

// WithSynthesisAddress overrides the addressing mode used during synthesis.
func WithSynthesisAddress(m AddressMode) SynthesisOption {
	return func(o *synthOptions) {
		o.address = m
	}
}

// SynthesizeStep derives the next coarser level from a source level. Each
// output texel j is the source sampled at the normalized coordinate
// (j + 0.5) / newWidth. Normalized reads sample in the float domain and
// convert back to storage; element reads carry storage values through.
//
// Downsampling by point-sampling normalized coordinates mirrors how a
// texture unit populates levels; renderers are free to use other methods
// (such as a 2-tap box average), so exact equality with any particular
// vendor's decimation is not implied.
func SynthesizeStep(src []Texel, srcWidth int, format Format, read ReadMode,
	opts ...SynthesisOption) []Texel {

	o := defaultSynthOptions()
	for _, opt := range opts {
		opt(&o)
	}

	dstWidth := NextWidth(srcWidth)
	dst := make([]Texel, dstWidth)
	for j := range dst {
		coord := (float64(j) + 0.5) / float64(dstWidth)
		s := SampleLevel(src, srcWidth, format, coord, o.filter, o.address, read)
		if read == ReadNormalizedFloat {
			s = format.Denormalize(s)
		}
		dst[j] = s
	}
	return dst
}

// Synthesize builds a full mipmap chain from a base level, deriving each
// coarser level with SynthesizeStep until the width reaches 1. The base
// slice becomes level 0 and is not copied.
//
// Postcondition: the chain satisfies Chain.VerifyLaws — its length is
// 1 + floor(log2(len(base))) and each level is half its predecessor's
// width, floored at 1.
func Synthesize(base []Texel, format Format, read ReadMode,
	opts ...SynthesisOption) (*Chain, error) {

	o := defaultSynthOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := format.ValidateSampling(read, o.filter); err != nil {
		return nil, err
	}
	if len(base) == 0 {
		return nil, ErrLevelOutOfRange
	}

	c := &Chain{format: format}
	c.levels = append(c.levels, Level{Index: 0, Width: len(base), Texels: base})

	width := len(base)
	for width != 1 {
		src := &c.levels[len(c.levels)-1]
		next := SynthesizeStep(src.Texels, src.Width, format, read,
			WithSynthesisFilter(o.filter), WithSynthesisAddress(o.address))
		width = len(next)
		c.levels = append(c.levels, Level{Index: len(c.levels), Width: width, Texels: next})
	}
	return c, nil
}
