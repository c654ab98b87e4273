// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build information and the schema set
// compiled into a greentic-types binary.
//
// # Build information
//
// Four package-level variables are injected at build time via
// -ldflags -X:
//
//   - [GitCommit] -- short git SHA of the build
//   - [GitDirty] -- "true" if there were uncommitted changes
//   - [BuildTime] -- UTC timestamp of the build
//   - [Version] -- semantic version string (set manually for releases)
//
// These default to "unknown" / "0.6.0-dev" when not injected, which
// occurs during development builds and test runs.
//
// Formatting functions produce human-readable version strings:
//
//   - [Info] -- "0.6.0-dev (abc1234, 2026-02-10T...)" for --version
//   - [Full] -- Info plus Go version, GOOS/GOARCH and schema fingerprint
//   - [Short] -- just the version number
//   - [Commit] -- just the git SHA
//
// # Schema set
//
// Two builds can exchange envelopes only for schemas both have
// compiled in. [SchemaSet] lists this build's registry entries,
// [Fingerprint] condenses them to a short stable id, and [Compare]
// reports which entries another build lacks or adds.
package version
