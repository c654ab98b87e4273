// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
)

// These variables are set via -ldflags at build time, for example:
//
//	go build -ldflags "-X github.com/greentic-ai/greentic-types/lib/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.6.0-dev"
)

// Info returns a formatted version string suitable for --version output.
func Info() string {
	dirty := ""
	if GitDirty == "true" {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, GitCommit, dirty, BuildTime)
}

// Full returns detailed version information including the Go version
// and the schema set fingerprint.
func Full() string {
	fingerprint, err := Fingerprint()
	if err != nil {
		fingerprint = "unavailable: " + err.Error()
	}
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s\n  Schemas: %d (%s)",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH, len(SchemaSet()), fingerprint)
}

// Short returns just the version number.
func Short() string {
	return Version
}

// Commit returns the git commit SHA.
func Commit() string {
	return GitCommit
}
