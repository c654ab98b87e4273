// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"slices"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		version  uint32
		wantKind string
		wantOK   bool
	}{
		{"pinned pack describe", PackDescribe, 1, KindPack, true},
		{"bare pack describe", "greentic.pack.describe", 6, KindPack, true},
		{"component qa", ComponentQA, 1, KindComponent, true},
		{"pinned component qa at revision", ComponentQA, 6, KindComponent, true},
		{"pinned pack validation at revision", PackValidation, 6, KindPack, true},
		{"diagnostic report", DiagnosticReport, 1, KindDiagnostic, true},
		{"wrong version", PackDescribe, 2, "", false},
		{"unknown id", "does.not.exist", 99, "", false},
		{"empty", "", 0, "", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			def, ok := Lookup(test.id, test.version)
			if ok != test.wantOK {
				t.Fatalf("Lookup ok = %v, want %v", ok, test.wantOK)
			}
			if def.Kind != test.wantKind {
				t.Errorf("Kind = %q, want %q", def.Kind, test.wantKind)
			}
		})
	}
}

func TestTableEntriesUnique(t *testing.T) {
	pairs := make(map[string]bool)
	for _, def := range All() {
		if def.ID == "" || def.Kind == "" {
			t.Errorf("incomplete entry %+v", def)
		}
		key := def.String()
		if pairs[key] {
			t.Errorf("duplicate (id, version) %s", key)
		}
		pairs[key] = true
	}
}

func TestAllReturnsCopy(t *testing.T) {
	entries := All()
	entries[0].Kind = "tampered"
	if def, _ := Lookup(entries[0].ID, entries[0].Version); def.Kind == "tampered" {
		t.Error("All exposes the compiled table")
	}
}

func TestVersions(t *testing.T) {
	if got := Versions("greentic.pack.qa"); !slices.Equal(got, []uint32{6}) {
		t.Errorf("Versions(greentic.pack.qa) = %v", got)
	}
	if got := Versions(ComponentDescribe); !slices.Equal(got, []uint32{1, 6}) {
		t.Errorf("Versions(%s) = %v", ComponentDescribe, got)
	}
	if got := Versions("does.not.exist"); len(got) != 0 {
		t.Errorf("Versions(does.not.exist) = %v", got)
	}
}

func TestBareID(t *testing.T) {
	if got := BareID(PackDescribe); got != "greentic.pack.describe" {
		t.Errorf("BareID = %q", got)
	}
	if got := BareID("plain"); got != "plain" {
		t.Errorf("BareID(plain) = %q", got)
	}
}

func TestSchemaDefString(t *testing.T) {
	def := SchemaDef{ID: "greentic.pack.describe", Version: 6, Kind: KindPack}
	if got := def.String(); got != "greentic.pack.describe/6" {
		t.Errorf("String = %q", got)
	}
}
