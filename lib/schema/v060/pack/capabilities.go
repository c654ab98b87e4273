// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package pack

import (
	"fmt"
	"slices"

	"github.com/greentic-ai/greentic-types/lib/codec"
	"github.com/greentic-ai/greentic-types/lib/diagnostic"
)

// CapabilitySet is a set of capability descriptors keyed by capability
// id. It encodes as a map from capability id to the rest of the
// descriptor, so the encoding does not depend on the order in which
// descriptors were added: canonical key ordering fixes it. A set that
// names the same capability twice cannot be encoded.
//
// Decoded sets are in canonical key order; [CapabilitySet.Sorted]
// puts a hand-built set in the same order.
type CapabilitySet []CapabilityDescriptor

// capabilityEntry is a descriptor without its id, which is the map key.
type capabilityEntry struct {
	VersionReq string              `json:"version_req"`
	Metadata   *CapabilityMetadata `json:"metadata"`
}

// MarshalCBOR implements cbor.Marshaler.
func (s CapabilitySet) MarshalCBOR() ([]byte, error) {
	entries := make(map[string]capabilityEntry, len(s))
	for _, descriptor := range s {
		if err := descriptor.Validate(); err != nil {
			return nil, err
		}
		if _, exists := entries[descriptor.CapabilityID]; exists {
			return nil, &codec.DuplicateKeyError{Key: descriptor.CapabilityID}
		}
		entries[descriptor.CapabilityID] = capabilityEntry{
			VersionReq: descriptor.VersionReq,
			Metadata:   descriptor.Metadata,
		}
	}
	return codec.Marshal(entries)
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (s *CapabilitySet) UnmarshalCBOR(data []byte) error {
	var entries map[string]capabilityEntry
	if err := codec.Unmarshal(data, &entries); err != nil {
		return err
	}
	set := make(CapabilitySet, 0, len(entries))
	for id, entry := range entries {
		set = append(set, CapabilityDescriptor{
			CapabilityID: id,
			VersionReq:   entry.VersionReq,
			Metadata:     entry.Metadata,
		})
	}
	*s = set.Sorted()
	return nil
}

// Sorted returns a copy of the set in canonical key order.
func (s CapabilitySet) Sorted() CapabilitySet {
	sorted := slices.Clone(s)
	slices.SortStableFunc(sorted, func(a, b CapabilityDescriptor) int {
		return codec.CompareKeys(a.CapabilityID, b.CapabilityID)
	})
	return sorted
}

// Get returns the descriptor for a capability id.
func (s CapabilitySet) Get(id string) (CapabilityDescriptor, bool) {
	for _, descriptor := range s {
		if descriptor.CapabilityID == id {
			return descriptor, true
		}
	}
	return CapabilityDescriptor{}, false
}

// IDs returns the capability ids in set order.
func (s CapabilitySet) IDs() []string {
	ids := make([]string, len(s))
	for i, descriptor := range s {
		ids[i] = descriptor.CapabilityID
	}
	return ids
}

func (s CapabilitySet) validate(report *diagnostic.Report, path string) {
	seen := make(map[string]bool, len(s))
	for index, descriptor := range s {
		itemPath := fmt.Sprintf("%s[%d]", path, index)
		if descriptor.CapabilityID == "" {
			report.Errorf("PACK_CAPABILITY_ID_EMPTY", itemPath+".capability_id", "capability_id is required")
			continue
		}
		if seen[descriptor.CapabilityID] {
			report.Errorf("PACK_DUPLICATE_CAPABILITY", itemPath+".capability_id", "capability %q listed twice", descriptor.CapabilityID)
		}
		seen[descriptor.CapabilityID] = true
		if descriptor.VersionReq == "" {
			report.Warnf("PACK_VERSION_REQ_EMPTY", itemPath+".version_req", "capability %q has no version requirement", descriptor.CapabilityID)
		}
	}
}
