// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/bytestream/lib/bytesize"
)

// Config mirrors the command line flags. A config file supplies
// defaults; explicitly set flags override them.
type Config struct {
	// In is the input path, "-" for stdin.
	In string `yaml:"in"`

	// Out is the output path, "-" for stdout.
	Out string `yaml:"out"`

	// Limit caps the content size. Zero means unlimited.
	Limit bytesize.Size `yaml:"limit"`

	// Strict fails the run when the input exceeds Limit instead of
	// truncating silently.
	Strict bool `yaml:"strict"`

	// Decompress names the codec the input is compressed with.
	Decompress string `yaml:"decompress"`

	// Compress names the codec to compress the output with.
	Compress string `yaml:"compress"`

	// Manifest is the path the CBOR chunk manifest is written to.
	// Empty disables manifest output.
	Manifest string `yaml:"manifest"`

	// Chunk is the manifest chunking interval.
	Chunk bytesize.Size `yaml:"chunk"`

	// Digest prints the content digest to stderr after the run.
	Digest bool `yaml:"digest"`
}

// Default returns the configuration used when no config file and no
// flags are given.
func Default() Config {
	return Config{
		In:         "-",
		Out:        "-",
		Decompress: "none",
		Compress:   "none",
		Chunk:      64 * bytesize.KiB,
	}
}

// LoadFile reads a YAML config file over the defaults. Keys absent
// from the file keep their default values.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
