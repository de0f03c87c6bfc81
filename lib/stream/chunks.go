// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/bureau-foundation/bytestream/lib/bytesize"
)

// MaxChunkSize is the largest chunk a [ChunkIterator] will allocate.
// Chunks are single contiguous buffers; 2 GiB - 1 keeps the bound
// identical across 32- and 64-bit platforms.
const MaxChunkSize = bytesize.Size(math.MaxInt32)

// ErrOversizedChunk rejects chunk sizes beyond [MaxChunkSize] at
// construction time.
var ErrOversizedChunk = errors.New("stream: chunk size exceeds maximum buffer size")

// ChunkIterator slices a source reader into consecutive fixed-size
// chunks. Every chunk except possibly the last has exactly the
// configured size, regardless of how the source fragments its reads,
// and concatenating all chunks reproduces the source bytes exactly.
//
// The iterator reads at most one chunk ahead and never closes the
// source; after exhaustion the caller may keep using the source.
type ChunkIterator struct {
	source    io.Reader
	chunkSize int
	cached    []byte
	done      bool
	err       error
}

// Chunks returns an iterator over consecutive chunkSize-byte chunks
// of source. The size must be positive and at most [MaxChunkSize];
// oversized values fail with [ErrOversizedChunk] before any source
// read happens.
func Chunks(source io.Reader, chunkSize bytesize.Size) (*ChunkIterator, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if chunkSize > MaxChunkSize {
		return nil, fmt.Errorf("chunk size %s: %w", chunkSize, ErrOversizedChunk)
	}
	return &ChunkIterator{source: source, chunkSize: int(chunkSize)}, nil
}

// More reports whether another chunk is available, reading one chunk
// ahead when the lookahead slot is empty. It is idempotent: repeated
// calls read at most one chunk ahead. After a source read error More
// reports false; the error itself comes from [ChunkIterator.Next].
func (it *ChunkIterator) More() bool {
	if it.cached != nil {
		return true
	}
	if it.done || it.err != nil {
		return false
	}
	buf := make([]byte, it.chunkSize)
	n, err := io.ReadFull(it.source, buf)
	switch {
	case err == nil:
		it.cached = buf
	case errors.Is(err, io.ErrUnexpectedEOF):
		// Short final chunk: only the bytes actually read, never
		// stale buffer tail.
		it.cached = buf[:n]
	case errors.Is(err, io.EOF):
		it.done = true
	default:
		it.err = fmt.Errorf("reading %d-byte chunk: %w", it.chunkSize, err)
	}
	return it.cached != nil
}

// Next returns the next chunk as a freshly allocated buffer the caller
// may retain or mutate. It returns [io.EOF] once the source is
// exhausted. A source read error is latched: every subsequent call
// returns the same error.
func (it *ChunkIterator) Next() ([]byte, error) {
	if !it.More() {
		if it.err != nil {
			return nil, it.err
		}
		return nil, io.EOF
	}
	chunk := it.cached
	it.cached = nil
	return chunk, nil
}
