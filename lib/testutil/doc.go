// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// [RequireReceive] and [RequireClosed] wrap channel waits in a timeout
// so that concurrency tests cannot hang a test run: a bridge or pipe
// test that deadlocks fails with a message instead of stalling until
// the suite timeout.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no dependencies on the rest of the module.
package testutil
