// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var (
	// ErrMalformedEncoding is returned for input that is not a single
	// well-formed, supported CBOR item: truncated or corrupt bytes,
	// trailing data, duplicate map keys, invalid UTF-8, non-text map
	// keys, or simple values other than false, true and null. It is
	// never repaired.
	ErrMalformedEncoding = errors.New("codec: malformed encoding")

	// ErrNonCanonicalEncoding is returned by strict decoding when the
	// input is well-formed but differs from its canonical encoding.
	ErrNonCanonicalEncoding = errors.New("codec: non-canonical encoding")

	// ErrTypeMismatch is returned when a well-formed item cannot be
	// decoded into the requested Go type.
	ErrTypeMismatch = errors.New("codec: type mismatch")
)

// MalformedError carries the detail behind an [ErrMalformedEncoding].
type MalformedError struct {
	Reason string
	Err    error
}

func (e *MalformedError) Error() string {
	switch {
	case e.Reason != "" && e.Err != nil:
		return fmt.Sprintf("codec: malformed encoding: %s: %v", e.Reason, e.Err)
	case e.Reason != "":
		return "codec: malformed encoding: " + e.Reason
	case e.Err != nil:
		return fmt.Sprintf("codec: malformed encoding: %v", e.Err)
	}
	return ErrMalformedEncoding.Error()
}

func (e *MalformedError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedEncoding}
	}
	return []error{ErrMalformedEncoding, e.Err}
}

// DuplicateKeyError reports a map that repeats a key. It is returned
// both when encoding a [Value] built with a repeated key and when
// decoding input that repeats one.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("codec: malformed encoding: duplicate map key %q", e.Key)
}

func (e *DuplicateKeyError) Unwrap() error { return ErrMalformedEncoding }

// TagContentError reports a tagged [Value] whose content is not of the
// type its tag number requires. Decoding such an item fails as
// malformed, so encoding one does too.
type TagContentError struct {
	Number  uint64
	Content Kind
}

func (e *TagContentError) Error() string {
	return fmt.Sprintf("codec: malformed encoding: tag %d cannot wrap %s content", e.Number, e.Content)
}

func (e *TagContentError) Unwrap() error { return ErrMalformedEncoding }

// TypeMismatchError wraps the decoder's description of an item that
// does not fit its destination.
type TypeMismatchError struct {
	Err error
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("codec: type mismatch: %v", e.Err)
}

func (e *TypeMismatchError) Unwrap() []error { return []error{ErrTypeMismatch, e.Err} }

// NonCanonicalError locates the first byte at which input diverges
// from its canonical encoding.
type NonCanonicalError struct {
	// Offset is the index of the first differing byte, or the length
	// of the shorter encoding when one is a prefix of the other.
	Offset int

	InputLength     int
	CanonicalLength int
}

func (e *NonCanonicalError) Error() string {
	return fmt.Sprintf("codec: non-canonical encoding: first difference at byte %d (input %d bytes, canonical %d bytes)",
		e.Offset, e.InputLength, e.CanonicalLength)
}

func (e *NonCanonicalError) Unwrap() error { return ErrNonCanonicalEncoding }

// classifyDecodeError maps errors from the underlying decoder onto the
// package taxonomy. Errors already classified pass through unchanged.
func classifyDecodeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrMalformedEncoding) || errors.Is(err, ErrTypeMismatch) || errors.Is(err, ErrNonCanonicalEncoding) {
		return err
	}

	var invalidTarget *cbor.InvalidUnmarshalError
	if errors.As(err, &invalidTarget) {
		return err
	}

	var duplicate *cbor.DupMapKeyError
	if errors.As(err, &duplicate) {
		return &DuplicateKeyError{Key: fmt.Sprint(duplicate.Key)}
	}

	var typeErr *cbor.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &TypeMismatchError{Err: err}
	}

	return &MalformedError{Err: err}
}

// firstDifference returns the index of the first byte at which a and b
// differ, or the shorter length when one is a prefix of the other.
func firstDifference(a, b []byte) int {
	limit := min(len(a), len(b))
	for i := range limit {
		if a[i] != b[i] {
			return i
		}
	}
	return limit
}
