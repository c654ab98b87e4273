// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import "slices"

// Payload is one encoded CBOR item carried opaquely inside another
// structure, such as an envelope body or an inline schema. It encodes
// as a CBOR byte string.
type Payload []byte

// Decode decodes the payload into a [Value] in lenient mode.
func (p Payload) Decode() (Value, error) {
	return Decode(p)
}

// DecodeMode decodes the payload into a [Value] using mode.
func (p Payload) DecodeMode(mode Mode) (Value, error) {
	return DecodeMode(p, mode)
}

// Unmarshal decodes the payload into v using mode.
func (p Payload) Unmarshal(v any, mode Mode) error {
	return UnmarshalMode(p, v, mode)
}

// EnsureCanonical reports whether the payload is canonical.
func (p Payload) EnsureCanonical() error {
	return EnsureCanonical(p)
}

// Canonicalize returns the canonical form of the payload.
func (p Payload) Canonicalize() (Payload, error) {
	canonical, err := Canonicalize(p)
	if err != nil {
		return nil, err
	}
	return Payload(canonical), nil
}

// Clone returns a copy that does not share memory with p.
func (p Payload) Clone() Payload {
	return slices.Clone(p)
}

// NewPayload canonically encodes v.
func NewPayload(v any) (Payload, error) {
	data, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	return Payload(data), nil
}

// Blob is an opaque payload labelled with its media type, for CBOR
// carried alongside other formats.
type Blob struct {
	ContentType string  `json:"content_type"`
	Bytes       Payload `json:"bytes"`
}

// NewBlob canonically encodes v into a blob of the given content type.
func NewBlob(contentType string, v any) (Blob, error) {
	payload, err := NewPayload(v)
	if err != nil {
		return Blob{}, err
	}
	return Blob{ContentType: contentType, Bytes: payload}, nil
}
