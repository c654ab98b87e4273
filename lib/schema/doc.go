// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema identifies the schema documents that descriptors
// point at.
//
// An [ID] is derived from the canonical CBOR of a schema document, so
// every producer publishing the same document arrives at the same id.
// A [Source] references a schema either by id or by carrying the
// document inline; QA setup contracts use it for their question spec
// and answers schema.
//
// The versioned descriptor types themselves live in subpackages:
// v060/pack, v060/component, and v060/qa.
package schema
