// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

// Package envelope wraps a canonically encoded descriptor with the
// identity of the schema it conforms to.
//
// An envelope is the unit that crosses process and storage
// boundaries. Its header (kind, schema, version) is enough to route
// and to reject the body without decoding it: [DecodeBody] consults
// the registry before touching the body bytes, so an envelope naming
// an unknown schema fails cleanly with [ErrUnknownSchema].
//
// The wire form is a CBOR map:
//
//	{"body": h'...', "kind": "pack", "schema": "greentic.pack.describe@0.6.0", "version": 1}
//
// with the body carried as a byte string holding its own canonical
// encoding.
package envelope

import (
	"errors"
	"fmt"
	"strings"

	"github.com/greentic-ai/greentic-types/lib/codec"
	"github.com/greentic-ai/greentic-types/lib/registry"
)

// ErrUnknownSchema is returned when an envelope's (schema, version)
// pair is not in the registry.
var ErrUnknownSchema = errors.New("envelope: unknown schema")

// ErrSchemaMismatch is returned when an envelope's header and the
// requested body type disagree, or when the body does not have the
// shape of that type.
var ErrSchemaMismatch = errors.New("envelope: schema mismatch")

// UnknownSchemaError names the (schema, version) pair that is not
// registered.
type UnknownSchemaError struct {
	Schema  string
	Version uint32
}

func (e *UnknownSchemaError) Error() string {
	return fmt.Sprintf("envelope: unknown schema %s version %d", e.Schema, e.Version)
}

func (e *UnknownSchemaError) Unwrap() error { return ErrUnknownSchema }

// Body is implemented by every descriptor type that can travel in an
// envelope. Both methods must work on the zero value.
type Body interface {
	// SchemaName returns the pinned schema id, e.g.
	// "greentic.pack.describe@0.6.0".
	SchemaName() string

	// SchemaKind returns the registry kind, e.g. "pack".
	SchemaKind() string
}

// Envelope is a typed, canonically encoded payload. Treat it as
// immutable: construct it with [New] or [Decode].
type Envelope struct {
	// Kind is the descriptor kind. It is either a registry kind
	// ("pack") or a dotted refinement of one ("pack.describe").
	Kind string `json:"kind"`

	// Schema is the schema id the body conforms to.
	Schema string `json:"schema"`

	// Version is the schema version.
	Version uint32 `json:"version"`

	// Body is the canonical encoding of the payload.
	Body codec.Payload `json:"body"`
}

// New canonically encodes body and wraps it. The header is not checked
// against the registry; that happens when the body is decoded.
func New(kind, schema string, version uint32, body any) (Envelope, error) {
	payload, err := codec.NewPayload(body)
	if err != nil {
		return Envelope{}, fmt.Errorf("envelope: encoding %s body: %w", schema, err)
	}
	return Envelope{Kind: kind, Schema: schema, Version: version, Body: payload}, nil
}

// For builds an envelope for a [Body], taking the kind and schema from
// the body type. The version is 1, the version under which every
// pinned schema id is registered.
func For(body Body) (Envelope, error) {
	return New(body.SchemaKind(), body.SchemaName(), 1, body)
}

// Encode returns the canonical encoding of the whole envelope.
func (e Envelope) Encode() ([]byte, error) {
	return codec.Marshal(e)
}

// Decode decodes an envelope header and keeps the body bytes as they
// are. It does not consult the registry.
func Decode(data []byte) (Envelope, error) {
	return DecodeMode(data, codec.Lenient)
}

// DecodeMode decodes an envelope. In strict mode the whole envelope,
// body included, must be canonical.
func DecodeMode(data []byte, mode codec.Mode) (Envelope, error) {
	var envelope Envelope
	if err := codec.UnmarshalMode(data, &envelope, mode); err != nil {
		return Envelope{}, fmt.Errorf("envelope: %w", err)
	}
	if mode == codec.Strict {
		if err := envelope.EnsureCanonical(); err != nil {
			return Envelope{}, err
		}
	}
	return envelope, nil
}

// EnsureCanonical verifies that the body bytes are canonical.
func (e Envelope) EnsureCanonical() error {
	if err := e.Body.EnsureCanonical(); err != nil {
		return fmt.Errorf("envelope: %s body: %w", e.Schema, err)
	}
	return nil
}

// Def returns the registry entry the header names.
func (e Envelope) Def() (registry.SchemaDef, error) {
	def, ok := registry.Lookup(e.Schema, e.Version)
	if !ok {
		return registry.SchemaDef{}, &UnknownSchemaError{Schema: e.Schema, Version: e.Version}
	}
	return def, nil
}

// DecodeBody decodes the body of e as T in lenient mode.
func DecodeBody[T Body](e Envelope) (T, error) {
	return DecodeBodyMode[T](e, codec.Lenient)
}

// DecodeBodyMode decodes the body of e as T. The header is checked
// against the registry and against T before the body is read:
//
//   - an unregistered (schema, version) is an [*UnknownSchemaError];
//   - a kind that is neither the registered kind nor a refinement of
//     it, or a T that does not describe the envelope's schema, is
//     [ErrSchemaMismatch];
//   - a body whose shape does not fit T is [ErrSchemaMismatch] and a
//     body that is not valid CBOR is [codec.ErrMalformedEncoding].
func DecodeBodyMode[T Body](e Envelope, mode codec.Mode) (T, error) {
	var body T

	def, err := e.Def()
	if err != nil {
		return body, err
	}
	if !kindMatches(e.Kind, def.Kind) {
		return body, fmt.Errorf("%w: envelope kind %q is not registered kind %q", ErrSchemaMismatch, e.Kind, def.Kind)
	}
	if body.SchemaKind() != def.Kind {
		return body, fmt.Errorf("%w: %T has kind %q, %s has kind %q", ErrSchemaMismatch, body, body.SchemaKind(), def, def.Kind)
	}
	if name := body.SchemaName(); name != def.ID && registry.BareID(name) != def.ID {
		return body, fmt.Errorf("%w: %T describes %s, envelope carries %s", ErrSchemaMismatch, body, name, def)
	}

	if err := e.Body.Unmarshal(&body, mode); err != nil {
		var zero T
		if errors.Is(err, codec.ErrTypeMismatch) {
			return zero, fmt.Errorf("%w: %s body: %w", ErrSchemaMismatch, def, err)
		}
		return zero, fmt.Errorf("envelope: %s body: %w", def, err)
	}
	return body, nil
}

// kindMatches reports whether kind is registered or a dotted
// refinement of registered.
func kindMatches(kind, registered string) bool {
	return kind == registered || strings.HasPrefix(kind, registered+".")
}
