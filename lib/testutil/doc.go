// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for greentic-types
// packages.
//
// [Fixture] reads a committed byte fixture from the calling package's
// testdata directory. Fixtures pin canonical encodings: a test decodes
// the fixture, re-encodes the result, and requires byte equality.
//
// [HexBytes] turns an annotated hex literal into bytes, so expected
// encodings can be written one CBOR item per line:
//
//	want := testutil.HexBytes(t, `
//		a2          # map(2)
//		62 6f6b f5  # "ok": true
//	`)
//
// [RequireErrorIs] and [RequireBytes] fail the test with a readable
// message when an error does not wrap a sentinel or when two encodings
// differ; the latter reports the offset of the first differing byte.
//
// [WriteTemp] writes a file into a per-test temporary directory.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no greentic-types dependencies.
package testutil
