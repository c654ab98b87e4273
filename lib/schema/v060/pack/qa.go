// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package pack

import (
	"slices"

	"github.com/greentic-ai/greentic-types/lib/diagnostic"
	"github.com/greentic-ai/greentic-types/lib/registry"
	"github.com/greentic-ai/greentic-types/lib/schema/v060/qa"
)

// QaSpec is the question specification of a pack for one mode. It
// encodes exactly like [qa.Spec].
type QaSpec struct {
	qa.Spec
}

// SchemaName implements the envelope body contract.
func (QaSpec) SchemaName() string { return registry.PackQA }

// SchemaKind implements the envelope body contract.
func (QaSpec) SchemaKind() string { return registry.KindPack }

// ValidationResult is the outcome of validating a pack, as reported
// by a pack validator.
type ValidationResult struct {
	// OK is true when no issue has Error severity.
	OK     bool                    `json:"ok"`
	Issues []diagnostic.Diagnostic `json:"issues"`
}

// ResultFromReport summarizes a report.
func ResultFromReport(report diagnostic.Report) ValidationResult {
	return ValidationResult{OK: !report.HasErrors(), Issues: slices.Clone(report.Diagnostics)}
}

// SchemaName implements the envelope body contract.
func (ValidationResult) SchemaName() string { return registry.PackValidation }

// SchemaKind implements the envelope body contract.
func (ValidationResult) SchemaKind() string { return registry.KindPack }
