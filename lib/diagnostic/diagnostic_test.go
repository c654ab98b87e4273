// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package diagnostic

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/greentic-ai/greentic-types/lib/codec"
	"github.com/greentic-ai/greentic-types/lib/i18n"
)

func TestSeverityOrder(t *testing.T) {
	if !(Info < Warn && Warn < Error) {
		t.Fatal("severities are not ordered Info < Warn < Error")
	}
}

func TestSeverityText(t *testing.T) {
	for _, severity := range []Severity{Info, Warn, Error} {
		text, err := severity.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", severity, err)
		}
		var parsed Severity
		if err := parsed.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if parsed != severity {
			t.Errorf("parsed %v, want %v", parsed, severity)
		}
	}

	var parsed Severity
	if err := parsed.UnmarshalText([]byte("warning")); err != nil || parsed != Warn {
		t.Errorf("warning synonym: %v, %v", parsed, err)
	}
	if err := parsed.UnmarshalText([]byte("fatal")); !errors.Is(err, codec.ErrTypeMismatch) {
		t.Errorf("unknown severity error = %v", err)
	}
	if _, err := Severity(9).MarshalText(); err == nil {
		t.Error("MarshalText accepted an unknown severity")
	}
}

func sampleReport() Report {
	report := Report{Subject: "greentic.demo", SubjectVersion: "1.2.0"}
	report.Infof("LEGACY_FIELD_IGNORED", "extra", "field %q ignored", "extra")
	report.Warnf("QA_MISSING_LABEL", "questions[0]", "question has no label")
	report.Push(New(Error, "QA_DUPLICATE_QUESTION", "questions[1].id", "duplicate id %q", "q1").
		WithHint(i18n.NewText("diagnostic.hint.rename", "rename one of the questions")).
		WithData(codec.Map(codec.Entry{Key: "id", Value: codec.Text("q1")})))
	return report
}

func TestReportCounts(t *testing.T) {
	report := sampleReport()

	if !report.HasErrors() {
		t.Error("HasErrors = false with an Error diagnostic present")
	}
	counts := report.Counts()
	if counts != (Counts{Info: 1, Warn: 1, Error: 1}) || counts.Total() != 3 {
		t.Errorf("Counts = %+v", counts)
	}
	if highest, ok := report.Max(); !ok || highest != Error {
		t.Errorf("Max = %v, %v", highest, ok)
	}
	if got := len(report.Filter(Warn)); got != 2 {
		t.Errorf("Filter(Warn) returned %d diagnostics", got)
	}
	if got := report.Codes(); !slices.Equal(got, []string{"LEGACY_FIELD_IGNORED", "QA_MISSING_LABEL", "QA_DUPLICATE_QUESTION"}) {
		t.Errorf("Codes = %v", got)
	}
}

func TestReportWithoutErrors(t *testing.T) {
	var report Report
	if report.HasErrors() {
		t.Error("empty report has errors")
	}
	if _, ok := report.Max(); ok {
		t.Error("Max reported a severity for an empty report")
	}

	report.Warnf("W", "", "warning only")
	if report.HasErrors() {
		t.Error("warning counted as error")
	}

	var other Report
	other.Errorf("E", "", "error")
	report.Merge(other)
	if !report.HasErrors() || len(report.Diagnostics) != 2 {
		t.Errorf("Merge: %+v", report)
	}
}

func TestReportCopiesDoNotShareAppends(t *testing.T) {
	base := Report{Diagnostics: make([]Diagnostic, 0, 8)}
	base.Infof("A", "", "a")
	base.Infof("B", "", "b")
	base.Infof("C", "", "c")

	copied := base
	copied.Errorf("MINE", "", "pushed onto the copy")
	base.Infof("OTHER", "", "pushed onto the original")

	if got := copied.Codes(); !slices.Equal(got, []string{"A", "B", "C", "MINE"}) {
		t.Errorf("copy codes = %v", got)
	}
	if !copied.HasErrors() {
		t.Error("copy lost its Error diagnostic")
	}
	if got := base.Codes(); !slices.Equal(got, []string{"A", "B", "C", "OTHER"}) {
		t.Errorf("original codes = %v", got)
	}
	if base.HasErrors() {
		t.Error("original picked up the copy's Error diagnostic")
	}
}

func TestNewDerivesMessageKey(t *testing.T) {
	d := New(Warn, "QA_UNKNOWN_KIND", "questions[0].kind", "kind %q is not supported", "slider")
	if d.Message.Key != "diagnostic.QA_UNKNOWN_KIND" {
		t.Errorf("Message.Key = %q", d.Message.Key)
	}
	if d.Message.FallbackText() != `kind "slider" is not supported` {
		t.Errorf("Message.Fallback = %q", d.Message.FallbackText())
	}
	if d.String() != `warn QA_UNKNOWN_KIND at questions[0].kind: kind "slider" is not supported` {
		t.Errorf("String = %q", d.String())
	}
}

func TestReportCanonicalRoundtrip(t *testing.T) {
	report := sampleReport()

	data, err := codec.Marshal(report)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded Report
	if err := codec.UnmarshalStrict(data, &decoded); err != nil {
		t.Fatalf("UnmarshalStrict: %v", err)
	}
	again, err := codec.Marshal(decoded)
	if err != nil {
		t.Fatalf("Marshal decoded: %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Errorf("roundtrip changed bytes")
	}

	last := decoded.Diagnostics[2]
	if last.Severity != Error || last.Hint == nil || last.Data == nil {
		t.Fatalf("decoded diagnostic = %+v", last)
	}
	if id, _ := last.Data.Get("id"); !id.Equal(codec.Text("q1")) {
		t.Errorf("Data = %v", last.Data)
	}

	value, err := codec.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	diagnostics, _ := value.Get("diagnostics")
	first, _ := diagnostics.Index(0)
	severity, _ := first.Get("severity")
	if text, _ := severity.AsText(); text != "info" {
		t.Errorf("severity encoded as %v, want text \"info\"", severity)
	}
}
