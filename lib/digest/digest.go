// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest computes BLAKE3 content digests of byte streams.
//
// [Sum] is the 32-byte digest used throughout the module. [Reader]
// and [Writer] tee bytes through a hasher as they pass, so a digest
// falls out of a pipeline without a second pass over the data.
// [Manifest] describes a stream as a sequence of fixed-size chunks
// with per-chunk digests, for verifying copies later.
package digest

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/zeebo/blake3"
)

// Sum is a 32-byte BLAKE3 digest.
type Sum [32]byte

// SumBytes computes the digest of data in one call.
func SumBytes(data []byte) Sum {
	return Sum(blake3.Sum256(data))
}

// String returns the canonical lowercase hex form.
func (s Sum) String() string {
	return hex.EncodeToString(s[:])
}

// MarshalText implements encoding.TextMarshaler. Sums serialize as
// hex text strings in CBOR, JSON, and YAML.
func (s Sum) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(s[:])), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Sum) UnmarshalText(text []byte) error {
	parsed, err := ParseSum(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSum parses a 64-character hex string into a Sum.
func ParseSum(hexString string) (Sum, error) {
	var sum Sum
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return sum, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != 32 {
		return sum, fmt.Errorf("digest is %d bytes, want 32", len(decoded))
	}
	copy(sum[:], decoded)
	return sum, nil
}

// Reader tees everything read from a source through a BLAKE3 hasher.
type Reader struct {
	source io.Reader
	hasher *blake3.Hasher
	count  int64
}

// NewReader wraps source so its bytes are hashed as they are read.
func NewReader(source io.Reader) *Reader {
	return &Reader{source: source, hasher: blake3.New()}
}

func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.source.Read(p)
	if n > 0 {
		// blake3 Write never fails.
		r.hasher.Write(p[:n])
		r.count += int64(n)
	}
	return n, err
}

// Sum returns the digest of all bytes read so far.
func (r *Reader) Sum() Sum {
	var sum Sum
	copy(sum[:], r.hasher.Sum(nil))
	return sum
}

// BytesRead returns how many bytes have been read so far.
func (r *Reader) BytesRead() int64 { return r.count }

// Writer tees everything written to a destination through a BLAKE3
// hasher.
type Writer struct {
	destination io.Writer
	hasher      *blake3.Hasher
	count       int64
}

// NewWriter wraps destination so its bytes are hashed as they are
// written.
func NewWriter(destination io.Writer) *Writer {
	return &Writer{destination: destination, hasher: blake3.New()}
}

func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.destination.Write(p)
	if n > 0 {
		w.hasher.Write(p[:n])
		w.count += int64(n)
	}
	return n, err
}

// Sum returns the digest of all bytes written so far.
func (w *Writer) Sum() Sum {
	var sum Sum
	copy(sum[:], w.hasher.Sum(nil))
	return sum
}

// BytesWritten returns how many bytes have been written so far.
func (w *Writer) BytesWritten() int64 { return w.count }
