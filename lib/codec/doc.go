// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec is the canonical binary codec shared by every
// descriptor type in this module.
//
// All persisted and transmitted descriptors are CBOR (RFC 8949). The
// encoder is pinned to one canonical form so that the same logical
// value produces the same bytes in every process, on every platform,
// forever:
//
//   - map keys (and struct fields) are ordered bytewise by their own
//     encoded form, which for text keys means shorter keys first and
//     equal-length keys in byte order (RFC 8949 §4.2.1)
//   - integers use the shortest head
//   - floating-point numbers are always 64-bit, NaN is a single bit
//     pattern, and no float is narrowed to 16 or 32 bits
//   - lengths are always definite
//   - a map with a repeated key cannot be encoded
//   - nil and empty slices and maps encode identically
//
// Typed values are encoded with [Marshal] and decoded with [Unmarshal].
// Untyped data is carried as a [Value], the closed sum type over every
// CBOR item the module accepts:
//
//	data, err := codec.Marshal(describe)
//	value, err := codec.Decode(data)
//
// # Decode modes
//
// Decoding is lenient by default: any well-formed item is accepted,
// including unsorted maps, over-long integer heads, narrower floats
// and indefinite-length items. [Strict] mode additionally requires the
// input to be byte-for-byte what [Marshal] would have produced and
// fails with [ErrNonCanonicalEncoding] otherwise. Fixture tests and the
// validate tool use strict mode; runtime consumers use lenient mode so
// that traffic from other producers is tolerated.
//
// Malformed input (truncation, trailing bytes, duplicate map keys,
// invalid UTF-8, non-text map keys, unsupported simple values) always
// fails with [ErrMalformedEncoding] in both modes. A well-formed item
// that does not fit the Go destination fails with [ErrTypeMismatch].
//
// # Struct tags
//
// Descriptor types carry `json` tags only. fxamacker/cbor reads `json`
// tags when `cbor` tags are absent, so one tag controls the field name
// and omitempty behavior for both the canonical CBOR form and the JSON
// rendering used by tooling. Unknown fields are ignored on decode so
// that additive schema evolution never breaks older readers.
//
// # Identifiers
//
// [Digest128] and [EncodeBase32] build the content-derived identifiers
// used for schema ids and locale tag ids.
package codec
