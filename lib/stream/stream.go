// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"errors"
	"io"
)

// Reader is the blocking byte-stream contract implemented by the
// adapters in this package. It extends [io.Reader] with single-byte
// reads, skipping, a non-blocking buffered-byte count, and closing.
type Reader interface {
	io.Reader
	io.ByteReader
	io.Closer

	// Skip discards up to n bytes and returns the count discarded.
	// Like [bufio.Reader.Discard], a skip cut short carries the
	// error that ended it (io.EOF when the stream ran out).
	Skip(n int64) (int64, error)

	// Available reports how many bytes can be read without
	// blocking. Zero means "none or unknown", not end of stream.
	Available() (int, error)
}

// Marker is the optional mark/reset capability a source may offer.
// Adapters forward Mark and Reset to the source when it implements
// this interface.
type Marker interface {
	// Mark records the current position. readLimit bounds how many
	// bytes may be read before Reset stops being honored.
	Mark(readLimit int)

	// Reset rewinds to the most recently marked position.
	Reset() error
}

// ErrMarkUnsupported is returned by Reset on adapters whose source has
// no mark/reset support.
var ErrMarkUnsupported = errors.New("stream: mark/reset not supported")

// skipper and availabler mirror the corresponding [Reader] methods,
// for sniffing optional capabilities on a plain [io.Reader] source.
type skipper interface {
	Skip(n int64) (int64, error)
}

type availabler interface {
	Available() (int, error)
}

// readByte reads one byte from r, using the source's own ReadByte
// when it has one.
func readByte(r io.Reader) (byte, error) {
	if br, ok := r.(io.ByteReader); ok {
		return br.ReadByte()
	}
	var one [1]byte
	if _, err := io.ReadFull(r, one[:]); err != nil {
		return 0, err
	}
	return one[0], nil
}

// skipReader discards n bytes from r, using the source's own Skip
// when it has one. Like [io.CopyN], it returns io.EOF when r ends
// before n bytes.
func skipReader(r io.Reader, n int64) (int64, error) {
	if s, ok := r.(skipper); ok {
		return s.Skip(n)
	}
	return io.CopyN(io.Discard, r, n)
}

// available reports r's non-blocking readable count when r can report
// one, and zero otherwise.
func available(r io.Reader) int {
	if a, ok := r.(availabler); ok {
		if n, err := a.Available(); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

// closeReader closes r when it is a closer.
func closeReader(r io.Reader) error {
	if c, ok := r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
