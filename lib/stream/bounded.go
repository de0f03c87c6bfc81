// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"errors"
	"io"

	"github.com/bureau-foundation/bytestream/lib/bytesize"
)

// ErrLimitExceeded is the error a [Fail] policy raises when its
// factory is nil.
var ErrLimitExceeded = errors.New("stream: byte limit exceeded")

// ExceedPolicy decides what a non-empty read observes once a
// [BoundedReader] has delivered its full byte budget. The zero value
// is the [Truncate] policy.
type ExceedPolicy struct {
	newError func() error
}

// Truncate returns the policy that ends the stream silently at the
// limit: at-limit reads yield [io.EOF], exactly as if the source had
// ended there.
//
// The first at-limit read consumes one extra byte from the source (the
// probe byte) and discards it, so a source longer than the limit
// advances by limit+1 bytes in total. Callers tracking the source's
// position must account for that byte; callers marking the source for
// a later reset must mark with limit+1 bytes of readahead. A source
// error raised by the probe propagates to the caller.
func Truncate() ExceedPolicy { return ExceedPolicy{} }

// Fail returns the policy that reports an error at the limit: at-limit
// reads invoke newError and return its result unchanged, so callers
// can match the error with [errors.Is] or [errors.As] against their
// own types. The factory runs lazily, only when a read actually hits
// the limit, and the source is never touched at or past the limit.
//
// A nil newError falls back to [ErrLimitExceeded].
func Fail(newError func() error) ExceedPolicy {
	if newError == nil {
		newError = func() error { return ErrLimitExceeded }
	}
	return ExceedPolicy{newError: newError}
}

// BoundedReader caps the bytes readable from a source at a fixed
// limit. Within the budget every operation is a transparent
// passthrough, including short reads and source errors. Once the
// budget is spent, the configured [ExceedPolicy] decides whether the
// stream ends ([Truncate]) or reads fail ([Fail]).
//
// The adapter never requests more than the remaining budget from the
// source in a single call, so the source is never over-read past the
// limit, with the single exception of the Truncate probe byte.
type BoundedReader struct {
	source    io.Reader
	remaining int64
	policy    ExceedPolicy
	probed    bool
}

var (
	_ Reader = (*BoundedReader)(nil)
	_ Marker = (*BoundedReader)(nil)
)

// Bound wraps source with a byte budget of limit. Negative limits
// behave as zero: the policy applies to the first non-empty read.
func Bound(source io.Reader, limit bytesize.Size, policy ExceedPolicy) *BoundedReader {
	remaining := limit.Bytes()
	if remaining < 0 {
		remaining = 0
	}
	return &BoundedReader{source: source, remaining: remaining, policy: policy}
}

// Read fills p from the source, never beyond the remaining budget.
// Zero-length reads return (0, nil) even at the limit. A read that
// exactly exhausts the budget returns its count without error; the
// policy fires on the next non-empty read.
func (b *BoundedReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if b.remaining <= 0 {
		return 0, b.exceed()
	}
	if int64(len(p)) > b.remaining {
		p = p[:b.remaining]
	}
	n, err := b.source.Read(p)
	b.remaining -= int64(n)
	return n, err
}

// ReadByte reads one byte within the budget.
func (b *BoundedReader) ReadByte() (byte, error) {
	if b.remaining <= 0 {
		return 0, b.exceed()
	}
	c, err := readByte(b.source)
	if err == nil {
		b.remaining--
	}
	return c, err
}

// Skip discards up to min(n, remaining) bytes from the source and
// returns the count discarded. A skip capped by the budget is not an
// error; at-limit skips evaluate the policy like reads.
func (b *BoundedReader) Skip(n int64) (int64, error) {
	if n <= 0 {
		return 0, nil
	}
	if b.remaining <= 0 {
		return 0, b.exceed()
	}
	if n > b.remaining {
		n = b.remaining
	}
	skipped, err := skipReader(b.source, n)
	b.remaining -= skipped
	return skipped, err
}

// Available reports the source's non-blocking readable count capped at
// the remaining budget. It never evaluates the exceed policy.
func (b *BoundedReader) Available() (int, error) {
	if b.remaining <= 0 {
		return 0, nil
	}
	n := available(b.source)
	if int64(n) > b.remaining {
		n = int(b.remaining)
	}
	return n, nil
}

// Close closes the source when the source is a closer.
func (b *BoundedReader) Close() error {
	return closeReader(b.source)
}

// Mark forwards to the source when it supports marking and is a no-op
// otherwise. Under the [Truncate] policy, callers that intend to
// reset past the limit must pass at least limit+1 as readLimit to
// cover the probe byte.
func (b *BoundedReader) Mark(readLimit int) {
	if m, ok := b.source.(Marker); ok {
		m.Mark(readLimit)
	}
}

// Reset rewinds the source to its marked position. The byte budget is
// not restored: the adapter's counter is independent of the source's
// position.
func (b *BoundedReader) Reset() error {
	m, ok := b.source.(Marker)
	if !ok {
		return ErrMarkUnsupported
	}
	return m.Reset()
}

// Remaining returns the bytes still readable before the policy
// applies.
func (b *BoundedReader) Remaining() int64 { return b.remaining }

// exceed runs the policy for a non-empty read at the limit.
func (b *BoundedReader) exceed() error {
	if b.policy.newError != nil {
		return b.policy.newError()
	}
	if !b.probed {
		b.probed = true
		// One-shot probe: consume the byte the truncation cut
		// off. The byte is never delivered to the caller.
		var probe [1]byte
		if _, err := b.source.Read(probe[:]); err != nil && err != io.EOF {
			return err
		}
	}
	return io.EOF
}
