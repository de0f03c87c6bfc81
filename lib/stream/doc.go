// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package stream provides adapters for reading byte streams under
// limits, in fixed-size chunks, and across the push/pull boundary.
// All adapters implement [Reader], a small blocking contract extending
// [io.Reader] with single-byte reads, skipping, a non-blocking
// buffered count, and closing. Constructors accept a plain [io.Reader]
// and pick up optional source capabilities (ReadByte, Skip, Available,
// Close, mark/reset) by type assertion.
//
// The package offers three adapters:
//
//   - Bounding: [Bound] caps how many bytes can be read from a source.
//     An [ExceedPolicy] decides what happens at the cap: [Truncate]
//     ends the stream silently as if the source stopped there, while
//     [Fail] raises a caller-supplied error, leaving the source
//     untouched past the limit. Truncation consumes a single probe
//     byte beyond the limit; see [Truncate] for the accounting rules.
//
//   - Chunking: [Chunks] iterates a source as consecutive fixed-size
//     chunks with one-slot lookahead. Only the final chunk may be
//     short, no matter how the source fragments its reads. Chunk
//     buffers are freshly allocated, so callers may retain them.
//
//   - Bridging: [Bridge] turns push-style production (a function
//     writing to an [io.Writer]) into a pull-style reader, connected
//     by a bounded in-process pipe that applies backpressure to a
//     producer running ahead of its consumer. Producers run on a
//     caller-supplied [Executor]. The first production failure is
//     latched and every subsequent operation returns that same
//     [*ProducerError]. [BridgeThrough] additionally wraps the write
//     end with a [Decorator], for compressing or transforming the
//     produced bytes before they enter the pipe.
//
// None of the adapters are safe for concurrent use by multiple
// readers; the bridge synchronizes only the producer/consumer handoff
// inside the pipe.
package stream
