// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build metadata, overridable at build time via -ldflags -X, for
// example:
//
//	go build -ldflags "-X github.com/bureau-foundation/bytestream/lib/version.Version=1.2.0"
//
// When not overridden, the VCS fields fall back to the build info the
// Go toolchain stamps into module builds.
var (
	// Version is the semantic version, set manually for releases.
	Version = "0.1.0-dev"

	// GitCommit is the short git SHA of the build.
	GitCommit = ""

	// GitDirty is "true" when the worktree had uncommitted changes.
	GitDirty = ""

	// BuildTime is the UTC timestamp of the build.
	BuildTime = ""
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if GitCommit == "" {
				GitCommit = setting.Value
				if len(GitCommit) > 12 {
					GitCommit = GitCommit[:12]
				}
			}
		case "vcs.modified":
			if GitDirty == "" {
				GitDirty = setting.Value
			}
		case "vcs.time":
			if BuildTime == "" {
				BuildTime = setting.Value
			}
		}
	}
}

// Info returns a one-line summary of the version metadata.
func Info() string {
	commit := GitCommit
	if commit == "" {
		commit = "unknown"
	}
	if GitDirty == "true" {
		commit += "-dirty"
	}
	built := BuildTime
	if built == "" {
		built = "unknown"
	}
	return fmt.Sprintf("%s (%s, %s)", Version, commit, built)
}

// Full returns [Info] plus the Go runtime version and platform.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
