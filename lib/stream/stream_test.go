// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"errors"
	"io"
	"strings"
	"testing"
)

// plainReader hides every capability of the wrapped reader except
// Read.
type plainReader struct {
	r io.Reader
}

func (p plainReader) Read(b []byte) (int, error) { return p.r.Read(b) }

// markableReader is an in-memory source with mark/reset support.
type markableReader struct {
	data []byte
	pos  int
	mark int
}

func (m *markableReader) Read(p []byte) (int, error) {
	if m.pos >= len(m.data) {
		return 0, io.EOF
	}
	n := copy(p, m.data[m.pos:])
	m.pos += n
	return n, nil
}

func (m *markableReader) Mark(readLimit int) { m.mark = m.pos }

func (m *markableReader) Reset() error {
	m.pos = m.mark
	return nil
}

// countingReader counts Read calls on the wrapped reader.
type countingReader struct {
	r     io.Reader
	calls int
}

func (c *countingReader) Read(p []byte) (int, error) {
	c.calls++
	return c.r.Read(p)
}

// availableReader reports a fixed non-blocking count.
type availableReader struct {
	io.Reader
	n int
}

func (a availableReader) Available() (int, error) { return a.n, nil }

// recordingCloser remembers whether Close was called.
type recordingCloser struct {
	io.Reader
	closed bool
}

func (rc *recordingCloser) Close() error {
	rc.closed = true
	return nil
}

// recordingSkipper records Skip calls and serves them from memory.
type recordingSkipper struct {
	io.Reader
	skipCalls int
}

func (rs *recordingSkipper) Skip(n int64) (int64, error) {
	rs.skipCalls++
	return io.CopyN(io.Discard, rs.Reader, n)
}

func TestReadByteFallback(t *testing.T) {
	// A source without ReadByte still serves single-byte reads.
	source := plainReader{strings.NewReader("ab")}

	c, err := readByte(source)
	if err != nil || c != 'a' {
		t.Fatalf("readByte = (%q, %v), want ('a', nil)", c, err)
	}
	c, err = readByte(source)
	if err != nil || c != 'b' {
		t.Fatalf("readByte = (%q, %v), want ('b', nil)", c, err)
	}
	if _, err := readByte(source); err != io.EOF {
		t.Fatalf("readByte at end = %v, want io.EOF", err)
	}
}

func TestReadByteUsesSourceImplementation(t *testing.T) {
	// strings.Reader has its own ReadByte; the helper must defer to
	// it rather than allocating a read.
	source := strings.NewReader("x")
	c, err := readByte(source)
	if err != nil || c != 'x' {
		t.Fatalf("readByte = (%q, %v), want ('x', nil)", c, err)
	}
}

func TestSkipReaderFallback(t *testing.T) {
	source := plainReader{strings.NewReader("abcdefgh")}

	skipped, err := skipReader(source, 5)
	if skipped != 5 || err != nil {
		t.Fatalf("skipReader = (%d, %v), want (5, nil)", skipped, err)
	}

	// Skipping past the end reports io.EOF with the short count.
	skipped, err = skipReader(source, 10)
	if skipped != 3 || err != io.EOF {
		t.Fatalf("skipReader past end = (%d, %v), want (3, io.EOF)", skipped, err)
	}
}

func TestSkipReaderUsesSourceSkip(t *testing.T) {
	source := &recordingSkipper{Reader: strings.NewReader("abcdef")}

	if _, err := skipReader(source, 3); err != nil {
		t.Fatalf("skipReader: %v", err)
	}
	if source.skipCalls != 1 {
		t.Errorf("source Skip called %d times, want 1", source.skipCalls)
	}
}

func TestAvailableFallback(t *testing.T) {
	if n := available(plainReader{strings.NewReader("abc")}); n != 0 {
		t.Errorf("available on plain reader = %d, want 0", n)
	}
	if n := available(availableReader{Reader: strings.NewReader("abc"), n: 3}); n != 3 {
		t.Errorf("available = %d, want 3", n)
	}
}

func TestCloseReaderFallback(t *testing.T) {
	if err := closeReader(plainReader{strings.NewReader("")}); err != nil {
		t.Errorf("closeReader on plain reader = %v, want nil", err)
	}

	source := &recordingCloser{Reader: strings.NewReader("")}
	if err := closeReader(source); err != nil {
		t.Errorf("closeReader = %v", err)
	}
	if !source.closed {
		t.Error("closeReader did not forward to the source")
	}
}

func TestCloseReaderPropagatesError(t *testing.T) {
	closeErr := errors.New("close failed")
	if err := closeReader(failingCloser{err: closeErr}); !errors.Is(err, closeErr) {
		t.Errorf("closeReader = %v, want %v", err, closeErr)
	}
}

// failingCloser fails Close with a fixed error.
type failingCloser struct {
	err error
}

func (f failingCloser) Read(p []byte) (int, error) { return 0, io.EOF }
func (f failingCloser) Close() error               { return f.err }
