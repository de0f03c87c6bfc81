// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"fmt"
	"io"

	"github.com/bureau-foundation/bytestream/lib/bytesize"
	"github.com/bureau-foundation/bytestream/lib/codec"
	"github.com/bureau-foundation/bytestream/lib/stream"
)

// Manifest describes a stream as consecutive fixed-size chunks with
// per-chunk digests plus a whole-content digest. Encoded manifests
// use deterministic CBOR, so the same content always produces the
// same manifest bytes.
type Manifest struct {
	// ChunkSize is the chunking interval in bytes. Every chunk
	// except possibly the last covers exactly this many bytes.
	ChunkSize int64 `json:"chunk_size"`

	// Size is the total content length in bytes.
	Size int64 `json:"size"`

	// Content is the digest of the entire stream.
	Content Sum `json:"content"`

	// Chunks holds one digest per chunk, in stream order.
	Chunks []Sum `json:"chunks"`
}

// BuildManifest consumes source in a single pass and returns its
// manifest.
func BuildManifest(source io.Reader, chunkSize bytesize.Size) (*Manifest, error) {
	hashed := NewReader(source)
	chunks, err := stream.Chunks(hashed, chunkSize)
	if err != nil {
		return nil, err
	}
	manifest := &Manifest{ChunkSize: chunkSize.Bytes()}
	for {
		chunk, err := chunks.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("building manifest: %w", err)
		}
		manifest.Chunks = append(manifest.Chunks, SumBytes(chunk))
	}
	manifest.Size = hashed.BytesRead()
	manifest.Content = hashed.Sum()
	return manifest, nil
}

// Verify re-reads a stream and checks it against the manifest. It
// reports the first difference found: a chunk whose digest differs
// (by index), a chunk count mismatch, a size mismatch, or a
// whole-content digest mismatch. A nil return means the stream is
// byte-identical to the one the manifest was built from.
func (m *Manifest) Verify(source io.Reader) error {
	hashed := NewReader(source)
	chunks, err := stream.Chunks(hashed, bytesize.Size(m.ChunkSize))
	if err != nil {
		return err
	}
	index := 0
	for {
		chunk, err := chunks.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("verifying stream: %w", err)
		}
		if index >= len(m.Chunks) {
			return fmt.Errorf("stream has more than %d chunks", len(m.Chunks))
		}
		if got := SumBytes(chunk); got != m.Chunks[index] {
			return fmt.Errorf("chunk %d: digest %s does not match manifest %s",
				index, got, m.Chunks[index])
		}
		index++
	}
	if index != len(m.Chunks) {
		return fmt.Errorf("stream has %d chunks, manifest has %d", index, len(m.Chunks))
	}
	if hashed.BytesRead() != m.Size {
		return fmt.Errorf("stream is %d bytes, manifest says %d", hashed.BytesRead(), m.Size)
	}
	if got := hashed.Sum(); got != m.Content {
		return fmt.Errorf("content digest %s does not match manifest %s", got, m.Content)
	}
	return nil
}

// EncodeManifest serializes m as deterministic CBOR.
func EncodeManifest(m *Manifest) ([]byte, error) {
	return codec.Marshal(m)
}

// DecodeManifest deserializes a CBOR-encoded manifest.
func DecodeManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := codec.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	return &m, nil
}
