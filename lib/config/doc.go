// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the greentic-types
// harness.
//
// Configuration is loaded from a single file specified by either the
// GREENTIC_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search. Files ending in ".toml" are read as
// TOML; anything else is read as YAML.
//
// The configuration file supports environment-specific sections
// (development, staging, production) that override base values when
// [Config].Environment matches. Production defaults are stricter:
// envelopes are decoded in strict mode, logs are JSON, and batch
// adaptation stops at the first failing document.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${GREENTIC_ROOT}, and ${VAR:-default} patterns are expanded.
// No other environment variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Codec, Log, Adapter, Paths
//   - [Default] -- returns a Config with development defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
package config
