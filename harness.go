package miptex

import (
	"fmt"
	"log/slog"
)

// Case is one verification scenario: a base width, a sampling
// configuration and the coordinate offset applied to every texel index.
type Case struct {
	// Name identifies the case in reports and logs.
	Name string

	// BaseWidth is the width of the base level in texels.
	BaseWidth int

	// Offset is added to each texel index before normalizing, so that
	// level L is sampled at (i + Offset) / width(L). Offsets outside
	// (-0.5, 0.5) push nearest sampling across texel boundaries and, near
	// the level edges, out of range entirely, exercising the address mode.
	Offset float64

	// Format is the per-texel storage format.
	Format Format

	// Read selects element or normalized-float presentation.
	Read ReadMode

	// Filter is the sampler's interpolation policy.
	Filter FilterMode

	// Address is the sampler's out-of-range policy.
	Address AddressMode

	// Seed drives the pseudo-random base pattern. Zero selects a
	// deterministic default derived from the case geometry.
	Seed uint64
}

// Validate rejects cases outside the supported matrix.
func (c Case) Validate() error {
	if c.BaseWidth < 1 {
		return fmt.Errorf("%w: base width %d", ErrLevelOutOfRange, c.BaseWidth)
	}
	return c.Format.ValidateSampling(c.Read, c.Filter)
}

// Descriptor returns the chain allocation matching the case.
func (c Case) Descriptor() ChainDescriptor {
	return ChainDescriptor{
		BaseWidth: c.BaseWidth,
		Format:    c.Format,
		Read:      c.Read,
		Filter:    c.Filter,
		Address:   c.Address,
	}
}

// BaseLevel generates the base-level data for the case. Linear filtering
// of float storage gets the smooth ramp; every other configuration gets
// seeded random texels. See pattern.go for why.
func (c Case) BaseLevel() []Texel {
	if c.Filter == FilterLinear && c.Format.Type == ChannelFloat32 {
		return SmoothRamp(c.BaseWidth, c.Format)
	}
	return RandomTexels(c.BaseWidth, c.Format, c.seed())
}

func (c Case) seed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	s := uint64(c.BaseWidth)
	s = s*31 + uint64(c.Format.Type)
	s = s*31 + uint64(c.Format.Channels)
	s = s*31 + uint64(c.Read)<<8
	s = s*31 + uint64(c.Address)<<16
	return s | 1
}

// String returns a compact description of the case.
func (c Case) String() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("%s %s %s/%s w=%d off=%g",
		c.Format, c.Read, c.Filter, c.Address, c.BaseWidth, c.Offset)
}

// Report is the outcome of running one case: every sample taken and every
// mismatch found, across all levels of the chain.
type Report struct {
	// Case is the scenario that produced this report.
	Case Case

	// Levels is the number of mip levels verified.
	Levels int

	// Samples is the total number of samples compared.
	Samples int

	// Mismatches holds every failed comparison, in level/index order.
	Mismatches []Mismatch
}

// Failed reports whether any sample mismatched.
func (r *Report) Failed() bool {
	return len(r.Mismatches) > 0
}

// Harness drives a device through the full verification flow: allocate a
// chain, upload the base level, synthesize the remaining levels on the
// device, read everything back, and verify every per-level sample against
// the reference model computed from the observed data.
type Harness struct {
	dev        Device
	logger     *slog.Logger
	tol        *Tolerance
	crossCheck bool
}

// HarnessOption configures a Harness.
type HarnessOption func(*Harness)

// WithHarnessLogger sets the harness's log sink, overriding the package
// logger. The logger also propagates to per-case verifiers.
func WithHarnessLogger(l *slog.Logger) HarnessOption {
	return func(h *Harness) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithCaseTolerance overrides the per-configuration default tolerance for
// every case the harness runs.
func WithCaseTolerance(t Tolerance) HarnessOption {
	return func(h *Harness) {
		h.tol = &t
	}
}

// WithSynthesisCrossCheck additionally compares each device-synthesized
// level against the reference Synthesize output, exactly. This is only
// meaningful for devices expected to reproduce the reference decimation
// bit-for-bit (such as the software backend); hardware decimation may
// legitimately differ.
func WithSynthesisCrossCheck() HarnessOption {
	return func(h *Harness) {
		h.crossCheck = true
	}
}

// NewHarness creates a harness around a device.
func NewHarness(dev Device, opts ...HarnessOption) *Harness {
	h := &Harness{
		dev:    dev,
		logger: Logger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes one case end to end and returns its report. A non-nil error
// means the flow itself broke (invalid case, device failure, or a contract
// violation in the device's geometry or readback); sampling disagreements
// are not errors, they land in the report's Mismatches.
func (h *Harness) Run(c Case) (*Report, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	h.logger.Info("running case", "case", c.String())

	desc := c.Descriptor()
	id, err := h.dev.AllocateChain(desc)
	if err != nil {
		return nil, fmt.Errorf("miptex: allocate chain: %w", err)
	}
	defer h.dev.FreeChain(id)

	// The device's reported geometry must follow the halving formula
	// before any data moves.
	levels := desc.LevelCount()
	width := c.BaseWidth
	for l := 0; l < levels; l++ {
		got, err := h.dev.LevelWidth(id, l)
		if err != nil {
			return nil, fmt.Errorf("miptex: level %d width: %w", l, err)
		}
		if got != width {
			return nil, fmt.Errorf("%w: device reports level %d width %d (want %d)",
				ErrContractViolation, l, got, width)
		}
		width = NextWidth(width)
	}

	base := c.BaseLevel()
	if err := h.dev.WriteLevel(id, 0, base); err != nil {
		return nil, fmt.Errorf("miptex: write base level: %w", err)
	}
	for l := 0; l+1 < levels; l++ {
		if err := h.dev.SynthesizeLevel(id, l); err != nil {
			return nil, fmt.Errorf("miptex: synthesize level %d: %w", l+1, err)
		}
	}

	// Read every level back. The observed data is the source of truth for
	// expectations: sampling is verified against what the device actually
	// holds, so a synthesis difference cannot masquerade as a sampling bug.
	data := make([][]Texel, levels)
	for l := range data {
		d, err := h.dev.ReadLevel(id, l)
		if err != nil {
			return nil, fmt.Errorf("miptex: read level %d: %w", l, err)
		}
		data[l] = d
	}
	chain, err := ChainFromLevels(c.Format, data)
	if err != nil {
		return nil, err
	}

	report := &Report{Case: c, Levels: levels}
	if h.crossCheck {
		if err := h.crossCheckSynthesis(base, chain, report); err != nil {
			return nil, err
		}
	}

	vOpts := []VerifierOption{WithVerifierLogger(h.logger)}
	if h.tol != nil {
		vOpts = append(vOpts, WithTolerance(*h.tol))
	}
	verifier, err := NewVerifier(c.Format, c.Read, c.Filter, c.Address, vOpts...)
	if err != nil {
		return nil, err
	}

	for l := 0; l < levels; l++ {
		lv := chain.Level(l)
		coords := make([]float64, lv.Width)
		for i := range coords {
			coords[i] = (float64(i) + c.Offset) / float64(lv.Width)
		}
		observed, err := h.dev.Sample(id, float64(l), coords)
		if err != nil {
			return nil, fmt.Errorf("miptex: sample level %d: %w", l, err)
		}
		mm, err := verifier.VerifyLevel(l, lv.Texels, observed, c.Offset)
		if err != nil {
			return nil, err
		}
		report.Mismatches = append(report.Mismatches, mm...)
		report.Samples += len(coords)
	}

	h.logger.Info("case finished", "case", c.String(),
		"levels", report.Levels, "samples", report.Samples,
		"mismatches", len(report.Mismatches))
	return report, nil
}

// RunAll runs every case and returns the reports. Execution continues past
// failing cases; the error is non-nil only when a case's flow broke.
func (h *Harness) RunAll(cases []Case) ([]*Report, error) {
	reports := make([]*Report, 0, len(cases))
	for _, c := range cases {
		r, err := h.Run(c)
		if err != nil {
			return reports, fmt.Errorf("miptex: case %q: %w", c.String(), err)
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// crossCheckSynthesis recomputes the chain with the reference decimation
// and records any texel the device synthesized differently.
func (h *Harness) crossCheckSynthesis(base []Texel, observed *Chain, report *Report) error {
	ref, err := Synthesize(base, observed.Format(), report.Case.Read)
	if err != nil {
		return err
	}
	for l := 1; l < observed.NumLevels(); l++ {
		want := ref.Level(l)
		got := observed.Level(l)
		for i := 0; i < want.Width; i++ {
			if want.Texels[i] == got.Texels[i] {
				continue
			}
			report.Mismatches = append(report.Mismatches, Mismatch{
				Level:    l,
				Index:    i,
				Coord:    (float64(i) + 0.5) / float64(want.Width),
				Expected: want.Texels[i],
				Observed: got.Texels[i],
				Source:   ref.Level(l - 1).Texels,
				Channels: observed.Format().Channels,
			})
			h.logger.Warn("synthesis mismatch",
				"level", l, "index", i,
				"expected", want.Texels[i].FormatString(observed.Format().Channels),
				"observed", got.Texels[i].FormatString(observed.Format().Channels))
		}
	}
	return nil
}

// DefaultCases returns the standard verification matrix: nearest and linear
// filtering under clamp and border addressing, across every supported
// channel type and count, with offsets chosen to land samples inside,
// between and outside texels.
func DefaultCases() []Case {
	intTypes := []ChannelType{
		ChannelInt8, ChannelUint8, ChannelInt16, ChannelUint16,
		ChannelInt32, ChannelUint32,
	}
	normTypes := []ChannelType{
		ChannelInt8, ChannelUint8, ChannelInt16, ChannelUint16,
	}
	channels := []int{1, 2, 4}

	type section struct {
		width   int
		offset  float64
		filter  FilterMode
		address AddressMode
	}
	elementSections := []section{
		{23, 0.49, FilterNearest, AddressClamp},
		{67, -0.3, FilterNearest, AddressClamp},
		{131, 0.15, FilterNearest, AddressBorder},
		{263, 0.96, FilterNearest, AddressBorder},
	}
	normSections := []section{
		{23, -0.9, FilterNearest, AddressClamp},
		{131, 0.15, FilterNearest, AddressClamp},
		{67, -0.3, FilterLinear, AddressClamp},
		{263, 0.13, FilterLinear, AddressClamp},
		{131, -0.34, FilterNearest, AddressBorder},
		{23, 0.4, FilterNearest, AddressBorder},
		{263, 0.96, FilterLinear, AddressBorder},
		{67, -0.67, FilterLinear, AddressBorder},
	}
	floatSections := []section{
		{23, 0.0, FilterLinear, AddressClamp},
		{23, -0.67, FilterLinear, AddressClamp},
		{263, 0.13, FilterLinear, AddressClamp},
		{131, 0.96, FilterLinear, AddressBorder},
		{67, -0.97, FilterLinear, AddressBorder},
	}

	var cases []Case
	add := func(t ChannelType, n int, read ReadMode, s section) {
		c := Case{
			BaseWidth: s.width,
			Offset:    s.offset,
			Format:    Format{Channels: n, Type: t},
			Read:      read,
			Filter:    s.filter,
			Address:   s.address,
		}
		c.Name = c.String()
		cases = append(cases, c)
	}

	// Element reads: every integer type plus float, nearest only for the
	// integer types (linear needs a float-valued read).
	for _, s := range elementSections {
		for _, n := range channels {
			for _, t := range intTypes {
				add(t, n, ReadElement, s)
			}
			add(ChannelFloat32, n, ReadElement, s)
		}
	}
	// Normalized reads: 8- and 16-bit integer storage, nearest and linear.
	for _, s := range normSections {
		for _, n := range channels {
			for _, t := range normTypes {
				add(t, n, ReadNormalizedFloat, s)
			}
		}
	}
	// Float element reads under linear filtering.
	for _, s := range floatSections {
		for _, n := range channels {
			add(ChannelFloat32, n, ReadElement, s)
		}
	}
	return cases
}
