// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/greentic-ai/greentic-types/lib/codec"
)

// idPrefix marks a content-derived schema id. The version segment
// changes only if the derivation changes.
const idPrefix = "schema:v1:"

// ErrInvalidID is returned by [ParseID] for malformed ids.
var ErrInvalidID = errors.New("schema: invalid schema id")

// ID identifies a schema document by content: "schema:v1:" followed by
// the Crockford base32 digest of the document's canonical CBOR. Two
// producers that publish the same schema arrive at the same id.
type ID string

// DeriveID computes the id of a canonical schema document. Input that
// is not canonical is rejected rather than silently normalized, since
// the id must match what every other producer derives from the same
// bytes.
func DeriveID(canonical []byte) (ID, error) {
	if err := codec.EnsureCanonical(canonical); err != nil {
		return "", fmt.Errorf("schema: deriving id: %w", err)
	}
	return ID(idPrefix + codec.Digest128(canonical).String()), nil
}

// DeriveIDFor canonically encodes v and returns its id.
func DeriveIDFor(v any) (ID, error) {
	encoded, err := codec.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("schema: encoding schema document: %w", err)
	}
	return ID(idPrefix + codec.Digest128(encoded).String()), nil
}

// ParseID validates the prefix and digest of an id. Lower-case digests
// are accepted and returned in upper case.
func ParseID(value string) (ID, error) {
	encoded, ok := strings.CutPrefix(value, idPrefix)
	if !ok {
		return "", fmt.Errorf("%w: %q must begin with %s", ErrInvalidID, value, idPrefix)
	}
	digest, err := codec.DecodeBase32(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	if len(digest) != len(codec.Digest{}) {
		return "", fmt.Errorf("%w: digest is %d bytes, want %d", ErrInvalidID, len(digest), len(codec.Digest{}))
	}
	return ID(idPrefix + strings.ToUpper(encoded)), nil
}

func (id ID) String() string { return string(id) }

// Matches reports whether canonical is the document id identifies.
func (id ID) Matches(canonical []byte) bool {
	derived, err := DeriveID(canonical)
	return err == nil && derived == id
}
