// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

// Package registry is the compiled table of schema identities that an
// envelope body may declare.
//
// The table is append-only. An entry, once released, is never edited
// or removed, because persisted envelopes reference it forever. A new
// schema revision is a new entry. There is no runtime registration:
// supporting a new schema means adding a line to [table] and shipping
// a new build.
package registry

import (
	"slices"
	"strconv"
	"strings"
)

// Kinds of descriptor a schema can describe.
const (
	KindPack       = "pack"
	KindComponent  = "component"
	KindDiagnostic = "diagnostic"
)

// Schema identifiers for the v0.6.0 descriptor set, pinned to their
// release.
const (
	PackDescribe       = "greentic.pack.describe@0.6.0"
	PackQA             = "greentic.pack.qa@0.6.0"
	PackValidation     = "greentic.pack.validation@0.6.0"
	ComponentDescribe  = "greentic.component.describe@0.6.0"
	ComponentQA        = "greentic.component.qa@0.6.0"
	DiagnosticReport   = "greentic.diagnostic.report@0.6.0"
	descriptorRevision = 6
)

// SchemaDef identifies one schema revision and the kind of descriptor
// it describes.
type SchemaDef struct {
	ID      string `json:"id"`
	Version uint32 `json:"version"`
	Kind    string `json:"kind"`
}

// String returns "id/version".
func (d SchemaDef) String() string {
	return d.ID + "/" + strconv.FormatUint(uint64(d.Version), 10)
}

// table lists every supported schema. Append only.
//
// Each v0.6.0 descriptor is reachable three ways: by its pinned id at
// version 1, by its bare family id at the descriptor revision number,
// and by its pinned id at the descriptor revision number. The last
// form is what the first producers of these envelopes wrote.
var table = []SchemaDef{
	{ID: PackDescribe, Version: 1, Kind: KindPack},
	{ID: PackQA, Version: 1, Kind: KindPack},
	{ID: PackValidation, Version: 1, Kind: KindPack},
	{ID: ComponentDescribe, Version: 1, Kind: KindComponent},
	{ID: ComponentQA, Version: 1, Kind: KindComponent},

	{ID: "greentic.pack.describe", Version: descriptorRevision, Kind: KindPack},
	{ID: "greentic.pack.qa", Version: descriptorRevision, Kind: KindPack},
	{ID: "greentic.pack.validation", Version: descriptorRevision, Kind: KindPack},
	{ID: "greentic.component.describe", Version: descriptorRevision, Kind: KindComponent},
	{ID: "greentic.component.qa", Version: descriptorRevision, Kind: KindComponent},

	{ID: DiagnosticReport, Version: 1, Kind: KindDiagnostic},

	{ID: PackDescribe, Version: descriptorRevision, Kind: KindPack},
	{ID: PackQA, Version: descriptorRevision, Kind: KindPack},
	{ID: PackValidation, Version: descriptorRevision, Kind: KindPack},
	{ID: ComponentDescribe, Version: descriptorRevision, Kind: KindComponent},
	{ID: ComponentQA, Version: descriptorRevision, Kind: KindComponent},
}

// Lookup returns the entry for (id, version).
func Lookup(id string, version uint32) (SchemaDef, bool) {
	for _, def := range table {
		if def.ID == id && def.Version == version {
			return def, true
		}
	}
	return SchemaDef{}, false
}

// All returns a copy of every entry in table order.
func All() []SchemaDef {
	return slices.Clone(table)
}

// Versions returns the registered versions of id in ascending order.
func Versions(id string) []uint32 {
	var versions []uint32
	for _, def := range table {
		if def.ID == id {
			versions = append(versions, def.Version)
		}
	}
	slices.Sort(versions)
	return versions
}

// BareID strips the "@release" suffix from a pinned schema id.
func BareID(id string) string {
	bare, _, _ := strings.Cut(id, "@")
	return bare
}
