package miptex

import (
	"fmt"
	"math"
)

// Level is one mip level: an ordered texel array plus its index in the
// chain. Level 0 is the base (finest) level. A Level is owned exclusively
// by the chain that created it.
type Level struct {
	// Index is the level's position in the chain, 0 = base.
	Index int

	// Width is the texel count at this level.
	Width int

	// Texels holds the level data in storage-domain values.
	Texels []Texel
}

// Chain is a full mipmap chain: progressively half-resolution versions of a
// base level, down to width 1.
//
// Invariants: NumLevels == 1 + floor(log2(baseWidth)); each level's width is
// max(1, previous>>1); the final level has width 1.
type Chain struct {
	format Format
	levels []Level
}

// LevelCount returns the number of mip levels for a base width:
// 1 + floor(log2(baseWidth)). A base width of 1 yields a single level.
func LevelCount(baseWidth int) int {
	if baseWidth < 1 {
		return 0
	}
	return 1 + int(math.Floor(math.Log2(float64(baseWidth))))
}

// NextWidth returns the width of the level following one of width w:
// max(1, w>>1).
func NextWidth(w int) int {
	if n := w >> 1; n > 0 {
		return n
	}
	return 1
}

// ChainFromLevels assembles a chain from externally produced level data
// (typically device readback). The widths must follow the halving formula
// for the base width; any disagreement is a contract violation on the part
// of whoever produced the data.
func ChainFromLevels(format Format, levels [][]Texel) (*Chain, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	if len(levels) == 0 || len(levels[0]) == 0 {
		return nil, fmt.Errorf("%w: empty base level", ErrContractViolation)
	}
	baseWidth := len(levels[0])
	if want := LevelCount(baseWidth); len(levels) != want {
		return nil, fmt.Errorf("%w: %d levels for base width %d (want %d)",
			ErrContractViolation, len(levels), baseWidth, want)
	}
	c := &Chain{format: format, levels: make([]Level, len(levels))}
	width := baseWidth
	for i, data := range levels {
		if len(data) != width {
			return nil, fmt.Errorf("%w: level %d width %d (want %d)",
				ErrContractViolation, i, len(data), width)
		}
		c.levels[i] = Level{Index: i, Width: width, Texels: data}
		width = NextWidth(width)
	}
	return c, nil
}

// Format returns the chain's texel format.
func (c *Chain) Format() Format {
	return c.format
}

// NumLevels returns the number of levels in the chain.
func (c *Chain) NumLevels() int {
	if c == nil {
		return 0
	}
	return len(c.levels)
}

// BaseWidth returns the width of level 0.
func (c *Chain) BaseWidth() int {
	if c == nil || len(c.levels) == 0 {
		return 0
	}
	return c.levels[0].Width
}

// Level returns the level at the given index, or nil if out of range.
func (c *Chain) Level(n int) *Level {
	if c == nil || n < 0 || n >= len(c.levels) {
		return nil
	}
	return &c.levels[n]
}

// VerifyLaws checks the chain against its structural invariants: the
// chain-length law, the monotone-halving law, and the final width of 1.
func (c *Chain) VerifyLaws() error {
	if c.NumLevels() == 0 {
		return fmt.Errorf("%w: empty chain", ErrContractViolation)
	}
	if want := LevelCount(c.BaseWidth()); c.NumLevels() != want {
		return fmt.Errorf("%w: chain has %d levels for base width %d (want %d)",
			ErrContractViolation, c.NumLevels(), c.BaseWidth(), want)
	}
	for i := 1; i < len(c.levels); i++ {
		if want := NextWidth(c.levels[i-1].Width); c.levels[i].Width != want {
			return fmt.Errorf("%w: level %d width %d (want %d)",
				ErrContractViolation, i, c.levels[i].Width, want)
		}
	}
	if last := c.levels[len(c.levels)-1].Width; last != 1 {
		return fmt.Errorf("%w: final level width %d (want 1)", ErrContractViolation, last)
	}
	return nil
}
