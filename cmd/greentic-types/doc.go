// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

// greentic-types is a local harness over the greentic-types libraries.
//
// Subcommands:
//
//	adapt      migrate legacy component QA documents to 0.6.0 specs
//	validate   decode an envelope and run its descriptor checks
//	decode     show any canonical CBOR item as JSON or diagnostic notation
//	envelope   inspect an envelope header or wrap a JSON body in one
//	schemas    list compiled schemas, or compare with another build
//	version    print build information
//
// Every leaf accepts --config. Without it, GREENTIC_CONFIG is used when
// set, and built-in defaults otherwise. Binary output written to a
// terminal is hex encoded.
package main
