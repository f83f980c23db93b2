package miptex

import (
	"fmt"
	"log/slog"
	"math"
)

// Tolerance bounds the allowed difference between an expected and an
// observed sample, per channel: |e - o| <= Abs + Rel*max(|e|, |o|).
// The zero value demands exact equality.
type Tolerance struct {
	// Abs is the absolute bound.
	Abs float64

	// Rel is the relative bound, scaled by the larger magnitude.
	Rel float64
}

// Allows reports whether observed is acceptably close to expected over the
// first channels values.
func (t Tolerance) Allows(expected, observed Texel, channels int) bool {
	for c := 0; c < channels; c++ {
		bound := t.Abs + t.Rel*math.Max(math.Abs(expected[c]), math.Abs(observed[c]))
		if math.Abs(expected[c]-observed[c]) > bound {
			return false
		}
	}
	return true
}

// DefaultTolerance returns the comparison policy for a sampling
// configuration.
//
// Integer element reads and float nearest reads return stored values
// untouched, so they compare exactly. Interpolating paths allow for the
// reduced subtexel precision of hardware samplers, which quantize the
// linear weight to roughly 8 fractional bits; normalized conversions allow
// one float32 rounding step on top.
func DefaultTolerance(format Format, read ReadMode, filter FilterMode) Tolerance {
	switch {
	case filter == FilterLinear && read == ReadNormalizedFloat:
		return Tolerance{Abs: 1.0 / 256}
	case filter == FilterLinear:
		return Tolerance{Abs: 1e-6, Rel: 1.0 / 256}
	case read == ReadNormalizedFloat:
		return Tolerance{Abs: 1e-5}
	default:
		return Tolerance{}
	}
}

// Mismatch is a structured record of one failed comparison. It carries
// enough context to reproduce the failing sample standalone.
type Mismatch struct {
	// Level is the mip level that was sampled.
	Level int

	// Index is the texel index the coordinate was derived from.
	Index int

	// Coord is the normalized sample coordinate.
	Coord float64

	// Expected is the reference model's prediction.
	Expected Texel

	// Observed is the device's output.
	Observed Texel

	// Source is the level data the expectation was computed from.
	Source []Texel

	// Channels is the format's channel count, for rendering.
	Channels int
}

// String renders the mismatch with full context.
func (m Mismatch) String() string {
	src := "?"
	if m.Index >= 0 && m.Index < len(m.Source) {
		src = m.Source[m.Index].FormatString(m.Channels)
	}
	return fmt.Sprintf("level %d: index %d -> coord %g, observed %s, expected %s, source[%d]=%s",
		m.Level, m.Index, m.Coord,
		m.Observed.FormatString(m.Channels), m.Expected.FormatString(m.Channels),
		m.Index, src)
}

// Verifier compares observed device samples against the reference model
// for one fixed sampling configuration.
type Verifier struct {
	format  Format
	read    ReadMode
	filter  FilterMode
	address AddressMode
	tol     Tolerance
	logger  *slog.Logger
}

// VerifierOption configures a Verifier.
type VerifierOption func(*Verifier)

// WithTolerance overrides the default comparison tolerance.
func WithTolerance(t Tolerance) VerifierOption {
	return func(v *Verifier) {
		v.tol = t
	}
}

// WithVerifierLogger sets the reporting sink for this verifier, overriding
// the package logger. Mismatches log at Warn, matches at Debug.
func WithVerifierLogger(l *slog.Logger) VerifierOption {
	return func(v *Verifier) {
		if l != nil {
			v.logger = l
		}
	}
}

// NewVerifier creates a verifier for the given sampling configuration.
// Unsupported configurations are rejected up front.
func NewVerifier(format Format, read ReadMode, filter FilterMode,
	address AddressMode, opts ...VerifierOption) (*Verifier, error) {

	if err := format.ValidateSampling(read, filter); err != nil {
		return nil, err
	}
	v := &Verifier{
		format:  format,
		read:    read,
		filter:  filter,
		address: address,
		tol:     DefaultTolerance(format, read, filter),
		logger:  Logger(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Tolerance returns the verifier's comparison policy.
func (v *Verifier) Tolerance() Tolerance {
	return v.tol
}

// VerifyLevel checks every observed sample of one level against the
// reference model. For each texel index i the expected value is the source
// data sampled at (i + offset) / width. Every mismatch in the level is
// recorded and reported before returning; the caller decides whether to
// fail fast across levels.
//
// The observed slice must hold exactly one sample per texel; a length
// disagreement is a device contract violation, not a sampling mismatch.
func (v *Verifier) VerifyLevel(level int, source []Texel, observed []Texel,
	offset float64) ([]Mismatch, error) {

	width := len(source)
	if len(observed) != width {
		return nil, fmt.Errorf("%w: level %d returned %d samples (want %d)",
			ErrContractViolation, level, len(observed), width)
	}

	var mismatches []Mismatch
	for i := 0; i < width; i++ {
		coord := (float64(i) + offset) / float64(width)
		expected := SampleLevel(source, width, v.format, coord,
			v.filter, v.address, v.read)
		if v.tol.Allows(expected, observed[i], v.format.Channels) {
			v.logger.Debug("sample matched",
				"level", level, "index", i, "coord", coord,
				"value", observed[i].FormatString(v.format.Channels))
			continue
		}
		m := Mismatch{
			Level:    level,
			Index:    i,
			Coord:    coord,
			Expected: expected,
			Observed: observed[i],
			Source:   source,
			Channels: v.format.Channels,
		}
		mismatches = append(mismatches, m)
		v.logger.Warn("sampling mismatch",
			"level", level, "index", i, "coord", coord,
			"expected", expected.FormatString(v.format.Channels),
			"observed", observed[i].FormatString(v.format.Channels),
			"source", source[i].FormatString(v.format.Channels))
	}
	return mismatches, nil
}
