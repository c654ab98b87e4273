// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework for greentic-types.
//
// A [Command] is a node in a tree: either a group with Subcommands or
// a leaf with a Run function. [Command.Execute] dispatches on the first
// positional argument, parses the leaf's pflag flag set, and suggests
// the nearest command or flag name on a typo.
//
// Leaves that exit non-zero after writing their own output (validate
// finding errors, schemas detecting incompatibility) return an
// [ExitError] so main does not print a second error line.
//
// [ReadInput] and [WriteBinary] handle the file-or-stdin convention and
// the hex-on-terminal rule for binary output.
package cli
