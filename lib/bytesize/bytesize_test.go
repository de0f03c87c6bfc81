// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bytesize

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Size
	}{
		{"0", 0},
		{"2097152", 2 * MiB},
		{"64KiB", 64 * KiB},
		{"64 KiB", 64 * KiB},
		{"1.5 MiB", 1572864},
		{"42 MB", 42_000_000},
		{"1GiB", GiB},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, input := range []string{"", "abc", "12XB", "9EiB"} {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", input)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		size Size
		want string
	}{
		{0, "0 B"},
		{512 * Byte, "512 B"},
		{64 * KiB, "64 KiB"},
		{GiB, "1.0 GiB"},
		{-1, "-1 B"},
	}
	for _, tt := range tests {
		if got := tt.size.String(); got != tt.want {
			t.Errorf("Size(%d).String() = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func TestInt(t *testing.T) {
	n, err := Size(42).Int()
	if err != nil {
		t.Fatalf("Int: %v", err)
	}
	if n != 42 {
		t.Errorf("Int = %d, want 42", n)
	}
	if _, err := Size(-1).Int(); err == nil {
		t.Error("Int on negative size succeeded, want error")
	}
}

func TestFlagValue(t *testing.T) {
	var s Size
	if err := s.Set("4KiB"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if s != 4*KiB {
		t.Errorf("Set = %d, want %d", s, 4*KiB)
	}
	if err := s.Set("bogus"); err == nil {
		t.Error("Set(bogus) succeeded, want error")
	}
	if s.Type() != "size" {
		t.Errorf("Type = %q, want %q", s.Type(), "size")
	}
}

func TestUnmarshalYAML(t *testing.T) {
	var cfg struct {
		Limit Size `yaml:"limit"`
		Chunk Size `yaml:"chunk"`
	}
	doc := "limit: 64KiB\nchunk: 2097152\n"
	if err := yaml.Unmarshal([]byte(doc), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cfg.Limit != 64*KiB {
		t.Errorf("limit = %d, want %d", cfg.Limit, 64*KiB)
	}
	if cfg.Chunk != 2*MiB {
		t.Errorf("chunk = %d, want %d", cfg.Chunk, 2*MiB)
	}

	if err := yaml.Unmarshal([]byte("limit: [1, 2]\n"), &cfg); err == nil {
		t.Error("unmarshal of sequence into size succeeded, want error")
	}
}
