// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/valyala/bytebufferpool"
)

const (
	// pipeSegmentSize is the number of bytes copied into each pipe
	// segment. Larger writes are split across segments.
	pipeSegmentSize = 4096

	// pipeSegmentCount is the number of segments the pipe buffers
	// before writes block.
	pipeSegmentCount = 8
)

// pipe is a bounded, in-process, single-producer single-consumer byte
// conduit. The write side copies data into pooled segments and queues
// them on a buffered channel; the read side drains segments in FIFO
// order, so bytes arrive exactly once and in write order.
//
// Closing the write side ends the stream: reads drain the buffered
// bytes and then return [io.EOF]. Closing the read side abandons
// buffered bytes and makes pending and future writes fail with
// [io.ErrClosedPipe]. There are no timeouts and no cancellation.
//
// Neither side supports concurrent use of itself.
type pipe struct {
	segments     chan *bytebufferpool.ByteBuffer
	readerClosed chan struct{}

	closeWriteOnce sync.Once
	closeReadOnce  sync.Once

	// writeClosed is owned by the write side; it guards against
	// sending on the closed segments channel.
	writeClosed bool

	// buffered counts bytes queued but not yet consumed.
	buffered atomic.Int64

	// current is the segment the read side is consuming.
	current    *bytebufferpool.ByteBuffer
	currentOff int
}

func newPipe() *pipe {
	return &pipe{
		segments:     make(chan *bytebufferpool.ByteBuffer, pipeSegmentCount),
		readerClosed: make(chan struct{}),
	}
}

// writer returns the write end of the pipe.
func (p *pipe) writer() io.WriteCloser { return pipeWriter{p} }

// pipeWriter adapts the pipe's write side to [io.WriteCloser] so it
// can be handed to producers and wrapped by decorators.
type pipeWriter struct{ p *pipe }

func (w pipeWriter) Write(b []byte) (int, error) { return w.p.write(b) }

func (w pipeWriter) Close() error {
	w.p.closeWrite()
	return nil
}

// write copies b into pooled segments and queues them, blocking while
// the pipe is full. It fails with [io.ErrClosedPipe] once the read
// side has closed, reporting how many bytes were queued first.
func (p *pipe) write(b []byte) (int, error) {
	if p.writeClosed {
		return 0, io.ErrClosedPipe
	}
	written := 0
	for len(b) > 0 {
		select {
		case <-p.readerClosed:
			return written, io.ErrClosedPipe
		default:
		}
		n := len(b)
		if n > pipeSegmentSize {
			n = pipeSegmentSize
		}
		segment := bytebufferpool.Get()
		segment.Write(b[:n])
		// Count before the send: the reader may drain the segment the
		// instant it lands, and its decrement must find the increment
		// already applied.
		p.buffered.Add(int64(n))
		select {
		case p.segments <- segment:
			written += n
			b = b[n:]
		case <-p.readerClosed:
			p.buffered.Add(-int64(n))
			bytebufferpool.Put(segment)
			return written, io.ErrClosedPipe
		}
	}
	return written, nil
}

// closeWrite ends the stream. Buffered segments remain readable;
// after they drain, reads return [io.EOF]. Safe to call repeatedly.
func (p *pipe) closeWrite() {
	p.closeWriteOnce.Do(func() {
		p.writeClosed = true
		close(p.segments)
	})
}

// read copies buffered bytes into b, blocking until data arrives, the
// write side closes, or the read side closes.
func (p *pipe) read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	if err := p.fill(); err != nil {
		return 0, err
	}
	n := copy(b, p.current.B[p.currentOff:])
	p.advance(n)
	return n, nil
}

// readByte consumes one buffered byte, blocking like read.
func (p *pipe) readByte() (byte, error) {
	if err := p.fill(); err != nil {
		return 0, err
	}
	c := p.current.B[p.currentOff]
	p.advance(1)
	return c, nil
}

// skip discards n buffered bytes, blocking for more like read. A skip
// cut short by the end of the stream returns [io.EOF] alongside the
// count discarded.
func (p *pipe) skip(n int64) (int64, error) {
	var skipped int64
	for skipped < n {
		if err := p.fill(); err != nil {
			return skipped, err
		}
		take := len(p.current.B) - p.currentOff
		if int64(take) > n-skipped {
			take = int(n - skipped)
		}
		p.advance(take)
		skipped += int64(take)
	}
	return skipped, nil
}

// available reports the bytes queued and not yet consumed, without
// blocking.
func (p *pipe) available() (int, error) {
	select {
	case <-p.readerClosed:
		return 0, io.ErrClosedPipe
	default:
		return int(p.buffered.Load()), nil
	}
}

// closeRead abandons buffered data and unblocks a writer stuck on a
// full pipe. Safe to call repeatedly.
func (p *pipe) closeRead() {
	p.closeReadOnce.Do(func() {
		close(p.readerClosed)
		if p.current != nil {
			bytebufferpool.Put(p.current)
			p.current = nil
			p.currentOff = 0
		}
	})
}

// fill ensures current holds unread bytes, receiving the next segment
// when the slot is empty. It returns [io.EOF] after the write side
// closed and all segments drained, and [io.ErrClosedPipe] once the
// read side closed.
func (p *pipe) fill() error {
	if p.current != nil {
		return nil
	}
	select {
	case <-p.readerClosed:
		return io.ErrClosedPipe
	default:
	}
	select {
	case segment, ok := <-p.segments:
		if !ok {
			return io.EOF
		}
		p.current = segment
		p.currentOff = 0
		return nil
	case <-p.readerClosed:
		return io.ErrClosedPipe
	}
}

// advance marks n bytes of the current segment consumed, recycling the
// segment once it is spent.
func (p *pipe) advance(n int) {
	p.currentOff += n
	p.buffered.Add(-int64(n))
	if p.currentOff == len(p.current.B) {
		bytebufferpool.Put(p.current)
		p.current = nil
		p.currentOff = 0
	}
}
