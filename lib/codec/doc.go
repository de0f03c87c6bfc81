// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the module's standard CBOR encoding
// configuration.
//
// Chunk manifests and any other records written to disk or passed
// between processes are encoded as CBOR (RFC 8949) with Core
// Deterministic Encoding: sorted map keys, smallest integer encoding,
// no indefinite-length items. Same logical data always produces
// identical bytes, so encoded manifests can themselves be hashed and
// compared.
//
// This package exists so that every consumer encodes identically
// without duplicating configuration. For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations:
//
//	encoder := codec.NewEncoder(w)
//	decoder := codec.NewDecoder(r)
//
// Struct types use `json` tags: fxamacker/cbor v2 reads json tags as
// fallback when cbor tags are absent, so one tag controls field
// naming and omitempty for both formats.
package codec
