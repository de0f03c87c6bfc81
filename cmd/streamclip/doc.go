// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Streamclip copies a byte stream through a configurable pipeline:
// decompress, bound, digest, compress. It is a shell building block
// for capping unbounded streams, converting between compression
// codecs, and recording chunk manifests for later verification.
//
// The content digest and the manifest always describe the logical
// content, the bytes after decompression and bounding, so they stay
// stable when the output is recompressed with a different codec.
//
// Exit codes:
//
//	0  success
//	1  error (bad flags, I/O failure, or --strict limit exceeded)
package main
