// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Release builds stamp these with -ldflags -X, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/depcrawl/lib/version.GitCommit=$(git rev-parse --short HEAD)" ./cmd/depcrawl
//
// A plain "go install" leaves GitCommit, GitDirty, and BuildTime unset;
// the VCS stamp the toolchain embeds is used instead.
var (
	// Version is the depcrawl release, bumped by hand when tagging.
	Version = "0.1.0-dev"

	// GitCommit is the short SHA depcrawl was built from.
	GitCommit = ""

	// GitDirty is "true" when the work tree had uncommitted changes.
	GitDirty = ""

	// BuildTime is the UTC build (or commit) timestamp.
	BuildTime = ""
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// shortCommitLength matches "git rev-parse --short".
const shortCommitLength = 7

// stamp returns the commit, dirty flag, and time to report, preferring
// the -ldflags values and falling back to the embedded VCS settings.
func stamp() (commit string, dirty bool, built string) {
	commit, dirty, built = GitCommit, GitDirty == "true", BuildTime
	if commit != "" {
		return commit, dirty, orUnknown(built)
	}

	info, ok := readBuildInfo()
	if !ok {
		return "unknown", dirty, orUnknown(built)
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			commit = setting.Value
			if len(commit) > shortCommitLength {
				commit = commit[:shortCommitLength]
			}
		case "vcs.modified":
			dirty = setting.Value == "true"
		case "vcs.time":
			if built == "" {
				built = setting.Value
			}
		}
	}
	return orUnknown(commit), dirty, orUnknown(built)
}

func orUnknown(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

// Info returns "<version> (<commit>[-dirty], <time>)", the first line of
// "depcrawl version".
func Info() string {
	commit, dirty, built := stamp()
	if dirty {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s (%s, %s)", Version, commit, built)
}

// Full is Info followed by the Go toolchain and platform.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns the release version alone, as sent in the User-Agent.
func Short() string {
	return Version
}

// Commit returns the short commit SHA, or "unknown".
func Commit() string {
	commit, _, _ := stamp()
	return commit
}
