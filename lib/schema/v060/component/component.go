// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

// Package component defines the v0.6.0 component descriptors. A
// component is the executable unit inside a pack: it describes itself
// with [Describe], asks questions through [QaSpec], and exchanges
// [RunInput] and [RunOutput] with the host on every invocation.
package component

import (
	"fmt"

	"github.com/greentic-ai/greentic-types/lib/codec"
	"github.com/greentic-ai/greentic-types/lib/diagnostic"
	"github.com/greentic-ai/greentic-types/lib/i18n"
	"github.com/greentic-ai/greentic-types/lib/registry"
	"github.com/greentic-ai/greentic-types/lib/schema/v060/qa"
)

// Info identifies a component.
type Info struct {
	ID          string     `json:"id"`
	Version     string     `json:"version"`
	Role        string     `json:"role"`
	DisplayName *i18n.Text `json:"display_name"`
}

// Describe is the self-description of a component. Capabilities are
// plain ids; the order is the component's own and is preserved.
type Describe struct {
	Info                 Info                   `json:"info"`
	ProvidedCapabilities []string               `json:"provided_capabilities"`
	RequiredCapabilities []string               `json:"required_capabilities"`
	Metadata             map[string]codec.Value `json:"metadata"`

	// Setup is present when the component can be configured through
	// a question flow.
	Setup *qa.SetupContract `json:"setup,omitempty"`
}

// SchemaName implements the envelope body contract.
func (Describe) SchemaName() string { return registry.ComponentDescribe }

// SchemaKind implements the envelope body contract.
func (Describe) SchemaKind() string { return registry.KindComponent }

// Validate checks the structure of the descriptor.
func (d Describe) Validate() diagnostic.Report {
	report := diagnostic.Report{Subject: d.Info.ID, SubjectVersion: d.Info.Version}

	if d.Info.ID == "" {
		report.Errorf("COMPONENT_ID_EMPTY", "info.id", "component id is required")
	}
	if d.Info.Version == "" {
		report.Errorf("COMPONENT_VERSION_EMPTY", "info.version", "component version is required")
	}
	if d.Info.DisplayName != nil {
		if err := d.Info.DisplayName.Validate(); err != nil {
			report.Errorf("I18N_INVALID_KEY", "info.display_name", "%v", err)
		}
	}
	validateCapabilities(&report, "provided_capabilities", d.ProvidedCapabilities)
	validateCapabilities(&report, "required_capabilities", d.RequiredCapabilities)

	if d.Setup != nil {
		if err := d.Setup.Validate(); err != nil {
			report.Errorf("COMPONENT_SETUP_INVALID", "setup", "%v", err)
		}
	}
	return report
}

func validateCapabilities(report *diagnostic.Report, path string, ids []string) {
	seen := make(map[string]bool, len(ids))
	for index, id := range ids {
		itemPath := fmt.Sprintf("%s[%d]", path, index)
		switch {
		case id == "":
			report.Errorf("COMPONENT_CAPABILITY_EMPTY", itemPath, "capability id is empty")
		case seen[id]:
			report.Errorf("COMPONENT_DUPLICATE_CAPABILITY", itemPath, "capability %q listed twice", id)
		}
		seen[id] = true
	}
}

// QaSpec is the question specification of a component for one mode.
// It encodes exactly like [qa.Spec].
type QaSpec struct {
	qa.Spec
}

// SchemaName implements the envelope body contract.
func (QaSpec) SchemaName() string { return registry.ComponentQA }

// SchemaKind implements the envelope body contract.
func (QaSpec) SchemaKind() string { return registry.KindComponent }

// RunInput carries the named input values of one invocation.
type RunInput struct {
	Values map[string]codec.Value `json:"values"`
}

// RunOutput carries the named output values of one invocation.
type RunOutput struct {
	Values map[string]codec.Value `json:"values"`
}

// Value returns the named input value.
func (in RunInput) Value(name string) (codec.Value, bool) {
	value, ok := in.Values[name]
	return value, ok
}

// Value returns the named output value.
func (out RunOutput) Value(name string) (codec.Value, bool) {
	value, ok := out.Values[name]
	return value, ok
}
