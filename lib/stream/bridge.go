// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"io"
	"sync/atomic"
)

// Producer writes a stream's content to w. A non-nil return marks the
// bridged stream as failed.
type Producer func(w io.Writer) error

// Decorator wraps the write end of a bridge before the producer runs,
// typically to compress or otherwise transform the produced bytes.
// The bridge closes the returned writer when the producer finishes,
// on every exit path.
type Decorator func(w io.WriteCloser) (io.WriteCloser, error)

// ProducerError reports that a bridged producer failed. Once captured,
// every operation on the [BridgedReader] returns the same instance;
// the underlying failure is reachable through Unwrap.
type ProducerError struct {
	Cause error
}

func (e *ProducerError) Error() string {
	return "stream: producer failed: " + e.Cause.Error()
}

func (e *ProducerError) Unwrap() error { return e.Cause }

// BridgedReader adapts push-style production (code that writes to an
// [io.Writer]) to pull-style reading. The producer runs as a single
// task on the supplied [Executor] and writes into a bounded in-process
// pipe; reads pull from the other end. The pipe buffers a fixed number
// of segments, so a producer ahead of its consumer blocks until the
// consumer catches up.
//
// The first failure anywhere in production is latched, and every
// subsequent operation returns that same [*ProducerError], even when
// unread bytes are still buffered. The reader itself is not safe for
// concurrent use.
type BridgedReader struct {
	pipe    *pipe
	failure atomic.Pointer[ProducerError]
}

var _ Reader = (*BridgedReader)(nil)

// Bridge schedules produce on executor and returns a reader over the
// bytes it writes. Construction returns immediately; production
// proceeds concurrently, throttled by the pipe's buffer.
func Bridge(executor Executor, produce Producer) *BridgedReader {
	// A nil decorator cannot fail construction.
	reader, _ := BridgeThrough(executor, nil, produce)
	return reader
}

// BridgeThrough is [Bridge] with a decorator applied to the pipe's
// write end before the producer is scheduled. The decorator runs
// synchronously on the calling goroutine; when it fails, its error is
// returned unchanged, both pipe ends are closed, and no task is ever
// submitted to the executor.
func BridgeThrough(executor Executor, decorate Decorator, produce Producer) (*BridgedReader, error) {
	p := newPipe()
	w := p.writer()
	if decorate != nil {
		decorated, err := decorate(w)
		if err != nil {
			p.closeWrite()
			p.closeRead()
			return nil, err
		}
		w = decorated
	}
	reader := &BridgedReader{pipe: p}
	executor.Execute(func() {
		reader.runProducer(w, produce)
	})
	return reader, nil
}

// runProducer drives produce and publishes its outcome. The decorated
// writer is closed on every exit path, and a close error counts as a
// producer failure. The failure is latched before the write side
// closes so a reader woken by the close observes it.
func (r *BridgedReader) runProducer(w io.WriteCloser, produce Producer) {
	err := produce(w)
	if closeErr := w.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		r.failure.CompareAndSwap(nil, &ProducerError{Cause: err})
	}
	r.pipe.closeWrite()
}

// Read returns produced bytes in write order. Once the producer has
// failed, Read returns the captured [ProducerError] and abandons any
// bytes still buffered.
func (r *BridgedReader) Read(p []byte) (int, error) {
	if err := r.failed(); err != nil {
		return 0, err
	}
	n, err := r.pipe.read(p)
	if err == io.EOF {
		// The write side closed under us; surface a failure that
		// raced the close instead of a clean end of stream.
		if ferr := r.failed(); ferr != nil {
			return n, ferr
		}
	}
	return n, err
}

// ReadByte returns the next produced byte, blocking like Read.
func (r *BridgedReader) ReadByte() (byte, error) {
	if err := r.failed(); err != nil {
		return 0, err
	}
	c, err := r.pipe.readByte()
	if err == io.EOF {
		if ferr := r.failed(); ferr != nil {
			return 0, ferr
		}
	}
	return c, err
}

// Skip discards n produced bytes, blocking for production like Read.
// A skip cut short by the end of the stream returns [io.EOF] with the
// count discarded.
func (r *BridgedReader) Skip(n int64) (int64, error) {
	if err := r.failed(); err != nil {
		return 0, err
	}
	skipped, err := r.pipe.skip(n)
	if err == io.EOF {
		if ferr := r.failed(); ferr != nil {
			return skipped, ferr
		}
	}
	return skipped, err
}

// Available reports the bytes currently buffered in the pipe without
// blocking. A captured producer failure is returned even when buffered
// bytes remain.
func (r *BridgedReader) Available() (int, error) {
	if err := r.failed(); err != nil {
		return 0, err
	}
	return r.pipe.available()
}

// Close closes the read end, abandoning buffered bytes and unblocking
// a producer stuck writing, which then observes [io.ErrClosedPipe].
// The producer task itself is not cancelled. A failure captured before
// or during the close is returned from Close as well.
func (r *BridgedReader) Close() error {
	r.pipe.closeRead()
	if err := r.failed(); err != nil {
		return err
	}
	return nil
}

// failed returns the latched producer failure, always the same
// instance once set.
func (r *BridgedReader) failed() error {
	if perr := r.failure.Load(); perr != nil {
		return perr
	}
	return nil
}
