// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bytesize provides a semantic byte-count type for stream
// limits and chunk sizes.
//
// [Size] is a signed 64-bit count of bytes. It exists so that APIs
// taking a limit or a chunk size say so in their signature instead of
// taking a bare int64, and so that narrowing to a platform int is an
// explicit, fallible step rather than a silent truncation.
package bytesize

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// Size is a count of bytes.
type Size int64

// Binary (IEC) size units.
const (
	Byte Size = 1
	KiB       = 1024 * Byte
	MiB       = 1024 * KiB
	GiB       = 1024 * MiB
	TiB       = 1024 * GiB
	PiB       = 1024 * TiB
)

// Max is the largest representable size. APIs treat it as "unbounded
// in practice": no real stream reaches it.
const Max Size = math.MaxInt64

// Bytes returns the size as a plain int64.
func (s Size) Bytes() int64 { return int64(s) }

// Int narrows the size to a platform int, for sizing buffers and
// slices. It fails on negative sizes and on sizes exceeding the
// platform's int range.
func (s Size) Int() (int, error) {
	if s < 0 {
		return 0, fmt.Errorf("negative size %d", int64(s))
	}
	if int64(s) > int64(math.MaxInt) {
		return 0, fmt.Errorf("size %s overflows int", s)
	}
	return int(s), nil
}

// String renders the size in IEC form ("64 KiB", "1.5 GiB"). Negative
// sizes render as a plain byte count.
func (s Size) String() string {
	if s < 0 {
		return strconv.FormatInt(int64(s), 10) + " B"
	}
	return humanize.IBytes(uint64(s))
}

// Parse reads a size from a string. It accepts plain byte counts
// ("2097152"), SI forms ("1.5 MB"), and IEC forms ("64KiB").
func Parse(text string) (Size, error) {
	n, err := humanize.ParseBytes(text)
	if err != nil {
		return 0, fmt.Errorf("parsing size %q: %w", text, err)
	}
	if n > math.MaxInt64 {
		return 0, fmt.Errorf("size %q overflows int64", text)
	}
	return Size(n), nil
}

// Set implements pflag.Value so sizes can be given on the command line
// as "--limit 64KiB".
func (s *Size) Set(text string) error {
	parsed, err := Parse(text)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Type implements pflag.Value.
func (s *Size) Type() string { return "size" }

// UnmarshalYAML implements yaml.Unmarshaler so sizes in config files
// can be written as "64KiB" or plain integers.
func (s *Size) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("size must be a scalar value")
	}
	parsed, err := Parse(node.Value)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
