// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/greentic-ai/greentic-types/lib/codec"
	"github.com/greentic-ai/greentic-types/lib/registry"
)

// SchemaSet returns the registry entries compiled into this build,
// in registry order.
func SchemaSet() []registry.SchemaDef {
	return registry.All()
}

// Fingerprint returns "schemas:v1:" followed by the base32 digest of
// the canonical encoding of the schema set, sorted by id and version.
// Builds with the same fingerprint accept the same envelopes.
func Fingerprint() (string, error) {
	return FingerprintOf(SchemaSet())
}

// FingerprintOf fingerprints an arbitrary schema set. Order does not
// matter.
func FingerprintOf(defs []registry.SchemaDef) (string, error) {
	sorted := slices.Clone(defs)
	slices.SortFunc(sorted, compareDefs)
	encoded, err := codec.Marshal(sorted)
	if err != nil {
		return "", fmt.Errorf("encoding schema set: %w", err)
	}
	return "schemas:v1:" + codec.Digest128(encoded).String(), nil
}

// SchemaDiff describes how another build's schema set differs from
// this one.
type SchemaDiff struct {
	// Missing lists entries this build has and the other lacks.
	// Envelopes of these schemas cannot be sent to the other build.
	Missing []registry.SchemaDef `json:"missing"`

	// Extra lists entries the other build has and this one lacks.
	// Envelopes of these schemas from the other build will fail here
	// with an unknown-schema error.
	Extra []registry.SchemaDef `json:"extra"`

	// KindChanged lists entries present in both with different
	// kinds, as this build registers them. An append-only registry
	// never produces these; they indicate a corrupted peer.
	KindChanged []registry.SchemaDef `json:"kind_changed"`
}

// Compatible reports whether both sets are identical.
func (d *SchemaDiff) Compatible() bool {
	return len(d.Missing) == 0 && len(d.Extra) == 0 && len(d.KindChanged) == 0
}

// Compare compares this build's schema set against other.
func Compare(other []registry.SchemaDef) *SchemaDiff {
	return CompareSets(SchemaSet(), other)
}

// CompareSets compares two schema sets. Results are sorted by id and
// version.
func CompareSets(current, other []registry.SchemaDef) *SchemaDiff {
	type identity struct {
		id      string
		version uint32
	}
	index := func(defs []registry.SchemaDef) map[identity]registry.SchemaDef {
		byIdentity := make(map[identity]registry.SchemaDef, len(defs))
		for _, def := range defs {
			byIdentity[identity{def.ID, def.Version}] = def
		}
		return byIdentity
	}
	currentIndex, otherIndex := index(current), index(other)

	diff := &SchemaDiff{}
	for key, def := range currentIndex {
		peer, ok := otherIndex[key]
		switch {
		case !ok:
			diff.Missing = append(diff.Missing, def)
		case peer.Kind != def.Kind:
			diff.KindChanged = append(diff.KindChanged, def)
		}
	}
	for key, def := range otherIndex {
		if _, ok := currentIndex[key]; !ok {
			diff.Extra = append(diff.Extra, def)
		}
	}
	slices.SortFunc(diff.Missing, compareDefs)
	slices.SortFunc(diff.Extra, compareDefs)
	slices.SortFunc(diff.KindChanged, compareDefs)
	return diff
}

func compareDefs(a, b registry.SchemaDef) int {
	return cmp.Or(strings.Compare(a.ID, b.ID), cmp.Compare(a.Version, b.Version))
}
