// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

// Package adapter migrates legacy, loosely typed descriptor documents
// into the current typed schemas.
//
// Each [Adapter] handles one (legacy schema, current schema) pair. It
// parses the legacy document into an untyped tree that never leaves
// this package, maps every field onto the typed descriptor, and
// returns the canonical encoding of the result together with a report
// of anything it skipped. User-facing strings become [i18n.Text]
// values whose keys are derived deterministically from where the
// string was found, so adapting the same document twice yields the
// same bytes.
//
// Adaptation is all or nothing per document: a document that lacks a
// field needed to establish identity (a question without an id, an
// option without a value) fails with an [*AdaptationError] and produces
// no output.
package adapter

import (
	"errors"
	"fmt"
	"slices"

	"github.com/greentic-ai/greentic-types/lib/diagnostic"
	"github.com/greentic-ai/greentic-types/lib/i18n"
	"github.com/greentic-ai/greentic-types/lib/schema/v060/qa"
)

// ErrAdaptation is wrapped by every [*AdaptationError].
var ErrAdaptation = errors.New("adapter: adaptation failed")

// AdaptationError names the legacy field that prevented adaptation.
type AdaptationError struct {
	// Path locates the field, e.g. "questions[2].id". Empty means
	// the document as a whole.
	Path string

	Reason string

	// Err is the underlying parse or encode error, if any.
	Err error
}

func (e *AdaptationError) Error() string {
	path := e.Path
	if path == "" {
		path = "document"
	}
	if e.Err != nil {
		return fmt.Sprintf("adapter: %s: %s: %v", path, e.Reason, e.Err)
	}
	return fmt.Sprintf("adapter: %s: %s", path, e.Reason)
}

func (e *AdaptationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrAdaptation}
	}
	return []error{ErrAdaptation, e.Err}
}

// Adapter migrates documents of one legacy schema into one current
// schema. Implementations are stateless and safe for concurrent use.
type Adapter interface {
	// Name is a short stable identifier, used on the command line.
	Name() string

	// Source is the legacy schema id the adapter reads.
	Source() string

	// Target is the registry schema id the adapter produces.
	Target() string

	// Adapt migrates one document for the given mode.
	Adapt(mode qa.Mode, document []byte) (Result, error)
}

// Result is a successful adaptation.
type Result struct {
	// Bytes is the canonical encoding of the target schema.
	Bytes []byte

	// Report lists the non-fatal findings: ignored fields, inferred
	// values, and warnings from validating the output.
	Report diagnostic.Report
}

// adapters is the compiled adapter table.
var adapters = []Adapter{
	ComponentQA{},
}

// Lookup returns the adapter for a (source, target) pair.
func Lookup(source, target string) (Adapter, bool) {
	for _, adapter := range adapters {
		if adapter.Source() == source && adapter.Target() == target {
			return adapter, true
		}
	}
	return nil, false
}

// ByName returns the adapter with the given name.
func ByName(name string) (Adapter, bool) {
	for _, adapter := range adapters {
		if adapter.Name() == name {
			return adapter, true
		}
	}
	return nil, false
}

// All returns every adapter in table order.
func All() []Adapter {
	return slices.Clone(adapters)
}

// BatchResult is the outcome for one document of a batch. Exactly one
// of Result and Err is meaningful.
type BatchResult struct {
	Index  int
	Result Result
	Err    error
}

// AdaptBatch adapts each document independently. A document that
// fails does not stop the others; results are in input order.
func AdaptBatch(adapter Adapter, mode qa.Mode, documents [][]byte) []BatchResult {
	results := make([]BatchResult, len(documents))
	for index, document := range documents {
		result, err := adapter.Adapt(mode, document)
		results[index] = BatchResult{Index: index, Result: result, Err: err}
	}
	return results
}

// text builds a localizable string for a legacy field. A missing
// literal yields a key-only text.
func text(key string, literal string, present bool) i18n.Text {
	if !present {
		return i18n.KeyOnly(key)
	}
	return i18n.NewText(key, literal)
}
