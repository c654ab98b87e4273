// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/greentic-ai/greentic-types/lib/codec"
)

// Source says where a schema document comes from. Exactly one field
// is set.
type Source struct {
	// SchemaID references a published schema by content id.
	SchemaID ID `json:"schema_id,omitempty"`

	// InlineCBOR carries the canonical schema document itself.
	InlineCBOR codec.Payload `json:"inline_cbor,omitempty"`

	// InlineJSON carries a JSON rendering of the schema. It is
	// informative only and never used to derive an id.
	InlineJSON string `json:"inline_json,omitempty"`

	// RefURI points at a schema hosted elsewhere.
	RefURI string `json:"ref_uri,omitempty"`

	// RefPackPath points at a file inside the pack, relative to the
	// pack root.
	RefPackPath string `json:"ref_pack_path,omitempty"`
}

// FromID returns a source referencing a schema id.
func FromID(id ID) Source { return Source{SchemaID: id} }

// Inline returns a source carrying the canonical encoding of document.
func Inline(document any) (Source, error) {
	payload, err := codec.NewPayload(document)
	if err != nil {
		return Source{}, err
	}
	return Source{InlineCBOR: payload}, nil
}

// Validate checks that exactly one field is set and well formed.
func (s Source) Validate() error {
	set := 0
	var errs []error
	if s.SchemaID != "" {
		set++
		if _, err := ParseID(string(s.SchemaID)); err != nil {
			errs = append(errs, err)
		}
	}
	if len(s.InlineCBOR) > 0 {
		set++
		if err := s.InlineCBOR.EnsureCanonical(); err != nil {
			errs = append(errs, fmt.Errorf("inline_cbor: %w", err))
		}
	}
	if s.InlineJSON != "" {
		set++
		if !json.Valid([]byte(s.InlineJSON)) {
			errs = append(errs, errors.New("inline_json is not valid JSON"))
		}
	}
	if s.RefURI != "" {
		set++
		parsed, err := url.Parse(s.RefURI)
		if err != nil || parsed.Scheme == "" {
			errs = append(errs, fmt.Errorf("ref_uri %q is not an absolute URI", s.RefURI))
		}
	}
	if s.RefPackPath != "" {
		set++
		cleaned := path.Clean(s.RefPackPath)
		if path.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
			errs = append(errs, fmt.Errorf("ref_pack_path %q escapes the pack root", s.RefPackPath))
		}
	}
	if set != 1 {
		errs = append(errs, fmt.Errorf("exactly one source must be set, found %d", set))
	}
	if len(errs) > 0 {
		return fmt.Errorf("schema: invalid source: %w", errors.Join(errs...))
	}
	return nil
}

// ID returns the schema id the source resolves to without I/O: the
// referenced id, or the id derived from inline CBOR. References that
// need fetching report false.
func (s Source) ID() (ID, bool) {
	switch {
	case s.SchemaID != "":
		return s.SchemaID, true
	case len(s.InlineCBOR) > 0:
		id, err := DeriveID(s.InlineCBOR)
		return id, err == nil
	}
	return "", false
}
