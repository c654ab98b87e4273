// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package diagnostic

import (
	"slices"
	"testing"

	"github.com/greentic-ai/greentic-types/lib/codec"
	"github.com/greentic-ai/greentic-types/lib/testutil"
)

func TestReportFixture(t *testing.T) {
	t.Parallel()

	data := testutil.Fixture(t, "report.cbor")

	var report Report
	if err := codec.UnmarshalStrict(data, &report); err != nil {
		t.Fatalf("UnmarshalStrict: %v", err)
	}
	if report.Subject != "demo-pack" || report.SubjectVersion != "" {
		t.Errorf("subject = %q version = %q", report.Subject, report.SubjectVersion)
	}
	if got, want := report.Codes(), []string{"PACK_ROLE_EMPTY", "PACK_DUPLICATE_CAPABILITY"}; !slices.Equal(got, want) {
		t.Errorf("Codes() = %v, want %v", got, want)
	}
	if !report.HasErrors() {
		t.Error("fixture report should carry an error")
	}
	if report.Diagnostics[0].Severity != Warn || report.Diagnostics[0].Path != "info.role" {
		t.Errorf("first diagnostic = %v", report.Diagnostics[0])
	}

	encoded, err := codec.Marshal(report)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	testutil.RequireBytes(t, encoded, data, "re-encoding report.cbor")
}
