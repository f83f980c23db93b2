package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/miptex"
)

// caseFile is the TOML layout of a case file:
//
//	[[case]]
//	name = "uint8x4 nearest clamp"
//	base_width = 23
//	offset = 0.49
//	format = "uint8x4"
//	read = "element"
//	filter = "nearest"
//	address = "clamp"
type caseFile struct {
	Cases []caseConfig `toml:"case"`
}

type caseConfig struct {
	Name      string  `toml:"name"`
	BaseWidth int     `toml:"base_width"`
	Offset    float64 `toml:"offset"`
	Format    string  `toml:"format"`
	Read      string  `toml:"read"`
	Filter    string  `toml:"filter"`
	Address   string  `toml:"address"`
	Seed      uint64  `toml:"seed"`
}

// loadCases reads and validates a TOML case file.
func loadCases(path string) ([]miptex.Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file caseFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(file.Cases) == 0 {
		return nil, fmt.Errorf("%s: no cases defined", path)
	}

	cases := make([]miptex.Case, 0, len(file.Cases))
	for i, cc := range file.Cases {
		c, err := cc.toCase()
		if err != nil {
			return nil, fmt.Errorf("%s: case %d: %w", path, i+1, err)
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func (cc caseConfig) toCase() (miptex.Case, error) {
	format, err := parseFormat(cc.Format)
	if err != nil {
		return miptex.Case{}, err
	}
	read, err := parseRead(cc.Read)
	if err != nil {
		return miptex.Case{}, err
	}
	filter, err := parseFilter(cc.Filter)
	if err != nil {
		return miptex.Case{}, err
	}
	address, err := parseAddress(cc.Address)
	if err != nil {
		return miptex.Case{}, err
	}

	c := miptex.Case{
		Name:      cc.Name,
		BaseWidth: cc.BaseWidth,
		Offset:    cc.Offset,
		Format:    format,
		Read:      read,
		Filter:    filter,
		Address:   address,
		Seed:      cc.Seed,
	}
	if c.Name == "" {
		c.Name = c.String()
	}
	return c, c.Validate()
}

// parseFormat parses a format string such as "uint8x4" or "float32x1".
func parseFormat(s string) (miptex.Format, error) {
	typeName, channels, ok := strings.Cut(s, "x")
	if !ok {
		return miptex.Format{}, fmt.Errorf("format %q: want <type>x<channels>", s)
	}
	var t miptex.ChannelType
	switch typeName {
	case "int8":
		t = miptex.ChannelInt8
	case "uint8":
		t = miptex.ChannelUint8
	case "int16":
		t = miptex.ChannelInt16
	case "uint16":
		t = miptex.ChannelUint16
	case "int32":
		t = miptex.ChannelInt32
	case "uint32":
		t = miptex.ChannelUint32
	case "float32":
		t = miptex.ChannelFloat32
	default:
		return miptex.Format{}, fmt.Errorf("format %q: unknown channel type %q", s, typeName)
	}
	var n int
	switch channels {
	case "1":
		n = 1
	case "2":
		n = 2
	case "4":
		n = 4
	default:
		return miptex.Format{}, fmt.Errorf("format %q: channel count %q (want 1, 2 or 4)", s, channels)
	}
	return miptex.Format{Channels: n, Type: t}, nil
}

func parseRead(s string) (miptex.ReadMode, error) {
	switch s {
	case "", "element":
		return miptex.ReadElement, nil
	case "normalized":
		return miptex.ReadNormalizedFloat, nil
	default:
		return 0, fmt.Errorf("read mode %q (want element or normalized)", s)
	}
}

func parseFilter(s string) (miptex.FilterMode, error) {
	switch s {
	case "", "nearest":
		return miptex.FilterNearest, nil
	case "linear":
		return miptex.FilterLinear, nil
	default:
		return 0, fmt.Errorf("filter mode %q (want nearest or linear)", s)
	}
}

func parseAddress(s string) (miptex.AddressMode, error) {
	switch s {
	case "", "clamp":
		return miptex.AddressClamp, nil
	case "border":
		return miptex.AddressBorder, nil
	default:
		return 0, fmt.Errorf("address mode %q (want clamp or border)", s)
	}
}
