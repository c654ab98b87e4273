// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/greentic-ai/greentic-types/lib/codec"
	"github.com/greentic-ai/greentic-types/lib/diagnostic"
	"github.com/greentic-ai/greentic-types/lib/i18n"
	"github.com/greentic-ai/greentic-types/lib/registry"
	"github.com/greentic-ai/greentic-types/lib/schema/v060/component"
	"github.com/greentic-ai/greentic-types/lib/schema/v060/pack"
	"github.com/greentic-ai/greentic-types/lib/schema/v060/qa"
)

func samplePack() pack.Describe {
	return pack.Describe{
		Info: pack.Info{ID: "greentic.demo", Version: "0.6.0", Role: "application"},
		ProvidedCapabilities: pack.CapabilitySet{
			{CapabilityID: "greentic.cap.demo", VersionReq: "^1"},
		},
		RequiredCapabilities: pack.CapabilitySet{},
		UnitsSummary:         map[string]codec.Value{"flows": codec.Int(1)},
		Metadata:             map[string]codec.Value{},
	}
}

func TestEnvelopeWireForm(t *testing.T) {
	envelope, err := New(registry.KindPack, registry.PackValidation, 1, pack.ValidationResult{OK: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	data, err := envelope.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "a4" +
		"64626f6479" + "4d" + "a2626f6bf56669737375657380" + // body: h'{"ok": true, "issues": []}'
		"646b696e64" + "647061636b" + // kind: "pack"
		"66736368656d61" + "781e677265656e7469632e7061636b2e76616c69646174696f6e40302e362e30" +
		"6776657273696f6e" + "01"
	if got := hex.EncodeToString(data); got != want {
		t.Errorf("encoding =\n%s\nwant\n%s", got, want)
	}

	decoded, err := DecodeMode(data, codec.Strict)
	if err != nil {
		t.Fatalf("DecodeMode(strict): %v", err)
	}
	if decoded.Kind != registry.KindPack || decoded.Schema != registry.PackValidation || decoded.Version != 1 {
		t.Errorf("header = %q %q %d", decoded.Kind, decoded.Schema, decoded.Version)
	}
	if !bytes.Equal(decoded.Body, envelope.Body) {
		t.Errorf("body = %x, want %x", decoded.Body, envelope.Body)
	}
}

func TestPackDescribeThroughEnvelope(t *testing.T) {
	body := samplePack()
	envelope, err := New("pack.describe", registry.PackDescribe, 1, body)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	data, err := envelope.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got, err := DecodeBody[pack.Describe](decoded)
	if err != nil {
		t.Fatalf("DecodeBody: %v", err)
	}

	want, err := codec.Marshal(body)
	if err != nil {
		t.Fatalf("Marshal(body): %v", err)
	}
	again, err := codec.Marshal(got)
	if err != nil {
		t.Fatalf("Marshal(decoded): %v", err)
	}
	if !bytes.Equal(want, again) {
		t.Errorf("body changed:\n%x\n%x", want, again)
	}
	if got.Info.ID != "greentic.demo" || len(got.ProvidedCapabilities) != 1 {
		t.Errorf("decoded body = %+v", got)
	}
}

func TestForUsesBodyIdentity(t *testing.T) {
	var report diagnostic.Report
	report.Errorf("PACK_ID_EMPTY", "info.id", "pack id is required")
	envelope, err := For(report)
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	if envelope.Kind != registry.KindDiagnostic || envelope.Schema != registry.DiagnosticReport || envelope.Version != 1 {
		t.Errorf("header = %q %q %d", envelope.Kind, envelope.Schema, envelope.Version)
	}
	decoded, err := DecodeBody[diagnostic.Report](envelope)
	if err != nil {
		t.Fatalf("DecodeBody: %v", err)
	}
	if !decoded.HasErrors() || decoded.Diagnostics[0].Code != "PACK_ID_EMPTY" {
		t.Errorf("decoded report = %+v", decoded)
	}
}

func TestBareSchemaID(t *testing.T) {
	envelope, err := New(registry.KindPack, registry.BareID(registry.PackDescribe), 6, samplePack())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := DecodeBody[pack.Describe](envelope); err != nil {
		t.Errorf("DecodeBody under the bare id: %v", err)
	}
}

func TestPinnedSchemaAtRevision(t *testing.T) {
	spec := component.QaSpec{Spec: qa.Spec{
		Mode:      qa.ModeDefault,
		Title:     i18n.NewText("component.qa.default.title", "Default"),
		Questions: []qa.Question{},
	}}
	envelope, err := New(registry.KindComponent, registry.ComponentQA, 6, spec)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	data, err := envelope.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decodedEnvelope, err := DecodeMode(data, codec.Strict)
	if err != nil {
		t.Fatalf("DecodeMode: %v", err)
	}
	decoded, err := DecodeBody[component.QaSpec](decodedEnvelope)
	if err != nil {
		t.Fatalf("DecodeBody under %s version 6: %v", registry.ComponentQA, err)
	}
	if decoded.Mode != qa.ModeDefault {
		t.Errorf("Mode = %q", decoded.Mode)
	}
	if err := decodedEnvelope.EnsureCanonical(); err != nil {
		t.Errorf("EnsureCanonical: %v", err)
	}
}

func TestUnknownSchema(t *testing.T) {
	envelope := Envelope{
		Kind:    registry.KindPack,
		Schema:  "does.not.exist",
		Version: 99,
		// Not CBOR at all: the registry check must come first.
		Body: codec.Payload{0xff, 0xff},
	}
	_, err := DecodeBody[pack.Describe](envelope)
	if !errors.Is(err, ErrUnknownSchema) {
		t.Fatalf("error = %v, want ErrUnknownSchema", err)
	}
	var unknown *UnknownSchemaError
	if !errors.As(err, &unknown) || unknown.Schema != "does.not.exist" || unknown.Version != 99 {
		t.Errorf("UnknownSchemaError = %+v", unknown)
	}

	// A registered id at an unregistered version is also unknown.
	envelope.Schema = registry.PackDescribe
	if _, err := DecodeBody[pack.Describe](envelope); !errors.Is(err, ErrUnknownSchema) {
		t.Errorf("version 99: error = %v, want ErrUnknownSchema", err)
	}
}

func TestSchemaMismatch(t *testing.T) {
	packEnvelope, err := New("pack.describe", registry.PackDescribe, 1, samplePack())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name    string
		decode  func(Envelope) error
		modify  func(*Envelope)
		wantErr string
	}{
		{
			name:    "wrong body type",
			decode:  func(e Envelope) error { _, err := DecodeBody[component.Describe](e); return err },
			modify:  func(*Envelope) {},
			wantErr: "has kind",
		},
		{
			name:    "same kind, different schema",
			decode:  func(e Envelope) error { _, err := DecodeBody[pack.QaSpec](e); return err },
			modify:  func(*Envelope) {},
			wantErr: "describes greentic.pack.qa@0.6.0",
		},
		{
			name:    "kind does not match registry",
			decode:  func(e Envelope) error { _, err := DecodeBody[pack.Describe](e); return err },
			modify:  func(e *Envelope) { e.Kind = "component" },
			wantErr: "not registered kind",
		},
		{
			name:    "kind prefix without dot",
			decode:  func(e Envelope) error { _, err := DecodeBody[pack.Describe](e); return err },
			modify:  func(e *Envelope) { e.Kind = "packages" },
			wantErr: "not registered kind",
		},
		{
			name:   "body shape does not fit",
			decode: func(e Envelope) error { _, err := DecodeBody[pack.Describe](e); return err },
			modify: func(e *Envelope) {
				// "info" is a text string instead of a map.
				e.Body = codec.Payload{0xa1, 0x64, 'i', 'n', 'f', 'o', 0x61, 'x'}
			},
			wantErr: "schema mismatch",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			envelope := packEnvelope
			test.modify(&envelope)
			err := test.decode(envelope)
			if !errors.Is(err, ErrSchemaMismatch) {
				t.Fatalf("error = %v, want ErrSchemaMismatch", err)
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("error = %q, want substring %q", err, test.wantErr)
			}
		})
	}
}

func TestMalformedBody(t *testing.T) {
	envelope := Envelope{
		Kind:    registry.KindPack,
		Schema:  registry.PackDescribe,
		Version: 1,
		Body:    codec.Payload{0xa1, 0x64, 'i', 'n'},
	}
	_, err := DecodeBody[pack.Describe](envelope)
	if !errors.Is(err, codec.ErrMalformedEncoding) {
		t.Fatalf("error = %v, want ErrMalformedEncoding", err)
	}
	if errors.Is(err, ErrSchemaMismatch) {
		t.Errorf("malformed body reported as schema mismatch: %v", err)
	}
}

func TestStrictBody(t *testing.T) {
	// {"ok": true, "issues": []} with the keys out of canonical order.
	envelope := Envelope{
		Kind:    registry.KindPack,
		Schema:  registry.PackValidation,
		Version: 1,
		Body:    codec.Payload{0xa2, 0x66, 'i', 's', 's', 'u', 'e', 's', 0x80, 0x62, 'o', 'k', 0xf5},
	}
	if _, err := DecodeBodyMode[pack.ValidationResult](envelope, codec.Strict); !errors.Is(err, codec.ErrNonCanonicalEncoding) {
		t.Errorf("strict: error = %v, want ErrNonCanonicalEncoding", err)
	}
	if err := envelope.EnsureCanonical(); !errors.Is(err, codec.ErrNonCanonicalEncoding) {
		t.Errorf("EnsureCanonical: error = %v, want ErrNonCanonicalEncoding", err)
	}
	result, err := DecodeBodyMode[pack.ValidationResult](envelope, codec.Lenient)
	if err != nil {
		t.Fatalf("lenient: %v", err)
	}
	if !result.OK {
		t.Error("lenient decode lost ok")
	}

	data, err := envelope.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := DecodeMode(data, codec.Strict); !errors.Is(err, codec.ErrNonCanonicalEncoding) {
		t.Errorf("DecodeMode(strict): error = %v, want ErrNonCanonicalEncoding", err)
	}
	if _, err := Decode(data); err != nil {
		t.Errorf("Decode: %v", err)
	}
}

func TestUnknownFieldsAreIgnored(t *testing.T) {
	current, err := codec.Marshal(samplePack())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	value, err := codec.Decode(current)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	// A newer producer added a top-level field and a field inside info.
	info, _ := value.Get("info")
	entries := value.Entries()
	for i := range entries {
		if entries[i].Key == "info" {
			entries[i].Value = codec.Map(append(info.Entries(), codec.Entry{Key: "maintainer", Value: codec.Text("ops")})...)
		}
	}
	entries = append(entries, codec.Entry{Key: "signatures", Value: codec.Array(codec.Bytes([]byte{1, 2}))})
	future, err := codec.Encode(codec.Map(entries...))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	envelope := Envelope{Kind: "pack.describe", Schema: registry.PackDescribe, Version: 1, Body: future}
	got, err := DecodeBodyMode[pack.Describe](envelope, codec.Strict)
	if err != nil {
		t.Fatalf("DecodeBodyMode: %v", err)
	}
	again, err := codec.Marshal(got)
	if err != nil {
		t.Fatalf("Marshal(decoded): %v", err)
	}
	if !bytes.Equal(again, current) {
		t.Errorf("known fields changed:\n%x\n%x", again, current)
	}
}

func TestNewRejectsUnencodableBody(t *testing.T) {
	body := pack.Describe{
		ProvidedCapabilities: pack.CapabilitySet{
			{CapabilityID: "x", VersionReq: "1"},
			{CapabilityID: "x", VersionReq: "2"},
		},
	}
	_, err := New(registry.KindPack, registry.PackDescribe, 1, body)
	if !errors.Is(err, codec.ErrMalformedEncoding) {
		t.Errorf("error = %v, want ErrMalformedEncoding", err)
	}
}
