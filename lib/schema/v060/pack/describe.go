// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

// Package pack defines the v0.6.0 pack descriptors: what a pack is
// ([Info]), which capabilities it provides and requires ([Describe]),
// the questions it asks ([QaSpec]), and the outcome of validating it
// ([ValidationResult]).
//
// Every type here is encoded with lib/codec and travels in an envelope
// under the schema ids declared in lib/registry.
package pack

import (
	"fmt"

	"github.com/greentic-ai/greentic-types/lib/codec"
	"github.com/greentic-ai/greentic-types/lib/diagnostic"
	"github.com/greentic-ai/greentic-types/lib/i18n"
	"github.com/greentic-ai/greentic-types/lib/registry"
)

// Info identifies a pack.
type Info struct {
	// ID is the pack's reverse-DNS identifier, e.g.
	// "greentic.messaging.telegram".
	ID string `json:"id"`

	// Version is the pack's semantic version.
	Version string `json:"version"`

	// Role says what the pack is for, e.g. "provider" or
	// "application". The set of roles is open.
	Role string `json:"role"`

	// DisplayName is the localizable human-readable name.
	DisplayName *i18n.Text `json:"display_name"`
}

// CapabilityDescriptor declares one capability a pack provides or
// requires. The descriptor says what shape the capability takes, not
// what it does.
type CapabilityDescriptor struct {
	// CapabilityID names the capability, e.g. "greentic.cap.kv".
	// It must not be empty.
	CapabilityID string `json:"capability_id"`

	// VersionReq is a semantic version requirement, e.g. "^1.2".
	VersionReq string `json:"version_req"`

	// Metadata refines the capability.
	Metadata *CapabilityMetadata `json:"metadata"`
}

// Validate checks that the descriptor names a capability.
func (d CapabilityDescriptor) Validate() error {
	if d.CapabilityID == "" {
		return fmt.Errorf("pack: capability_id is required")
	}
	return nil
}

// CapabilityMetadata is free-form refinement of a capability. The map
// fields hold structured values so they canonicalize like every other
// field.
type CapabilityMetadata struct {
	Tags         []string               `json:"tags"`
	Supports     map[string]codec.Value `json:"supports"`
	Constraints  map[string]codec.Value `json:"constraints"`
	QualityHints map[string]codec.Value `json:"quality_hints"`
	Regions      []string               `json:"regions"`
	Compliance   map[string]codec.Value `json:"compliance"`
	Hints        map[string]codec.Value `json:"hints"`
}

// Describe is the full self-description of a pack.
type Describe struct {
	Info Info `json:"info"`

	// ProvidedCapabilities and RequiredCapabilities are sets keyed
	// by capability id; see [CapabilitySet].
	ProvidedCapabilities CapabilitySet `json:"provided_capabilities"`
	RequiredCapabilities CapabilitySet `json:"required_capabilities"`

	// UnitsSummary counts the units (flows, components, assets) the
	// pack ships, keyed by unit type.
	UnitsSummary map[string]codec.Value `json:"units_summary"`

	Metadata map[string]codec.Value `json:"metadata"`
}

// SchemaName implements the envelope body contract.
func (Describe) SchemaName() string { return registry.PackDescribe }

// SchemaKind implements the envelope body contract.
func (Describe) SchemaKind() string { return registry.KindPack }

// Validate checks the structure of the descriptor.
func (d Describe) Validate() diagnostic.Report {
	report := diagnostic.Report{Subject: d.Info.ID, SubjectVersion: d.Info.Version}

	if d.Info.ID == "" {
		report.Errorf("PACK_ID_EMPTY", "info.id", "pack id is required")
	}
	if d.Info.Version == "" {
		report.Errorf("PACK_VERSION_EMPTY", "info.version", "pack version is required")
	}
	if d.Info.Role == "" {
		report.Warnf("PACK_ROLE_EMPTY", "info.role", "pack role is not set")
	}
	if d.Info.DisplayName != nil {
		if err := d.Info.DisplayName.Validate(); err != nil {
			report.Errorf("I18N_INVALID_KEY", "info.display_name", "%v", err)
		}
	}

	d.ProvidedCapabilities.validate(&report, "provided_capabilities")
	d.RequiredCapabilities.validate(&report, "required_capabilities")
	return report
}
