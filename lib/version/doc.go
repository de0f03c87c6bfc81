// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for bytestream
// binaries.
//
// Release builds inject [Version], [GitCommit], [GitDirty], and
// [BuildTime] via -ldflags -X. Plain `go build` binaries fall back to
// the VCS metadata the Go toolchain stamps into module builds, so
// --version stays meaningful in development too.
//
// [Info] formats the metadata as a one-line summary; [Full] adds the
// Go runtime version and platform for --version output.
package version
