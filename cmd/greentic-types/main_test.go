// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/greentic-ai/greentic-types/lib/config"
	"github.com/greentic-ai/greentic-types/lib/testutil"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// invoke runs the harness with built-in default configuration.
func invoke(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Setenv(config.EnvVar, "")
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func requireExit(t *testing.T, got result, want int) {
	t.Helper()
	if got.code != want {
		t.Fatalf("exit code = %d, want %d\nstdout: %s\nstderr: %s", got.code, want, got.stdout, got.stderr)
	}
}

func TestVersionShort(t *testing.T) {
	got := invoke(t, "", "version", "--short")
	requireExit(t, got, 0)
	if strings.TrimSpace(got.stdout) == "" {
		t.Error("version --short printed nothing")
	}
}

func TestUnknownCommandSuggests(t *testing.T) {
	got := invoke(t, "", "adpt")
	requireExit(t, got, 1)
	if !strings.Contains(got.stderr, `did you mean "adapt"`) {
		t.Errorf("stderr = %q", got.stderr)
	}
}

func TestAdaptJSON(t *testing.T) {
	got := invoke(t, "", "adapt", "--json", "--mode", "setup", "testdata/component.yaml")
	requireExit(t, got, 0)
	for _, want := range []string{
		`"mode": "setup"`,
		`"key": "legacy.component.v0_5.q1.label"`,
		`"fallback": "What is your name?"`,
		`"key": "legacy.component.v0_5.region.option.eu"`,
	} {
		if !strings.Contains(got.stdout, want) {
			t.Errorf("output missing %s:\n%s", want, got.stdout)
		}
	}
}

func TestAdaptIsDeterministic(t *testing.T) {
	first := invoke(t, "", "adapt", "--mode", "upgrade", "testdata/component.yaml")
	second := invoke(t, "", "adapt", "--mode", "upgrade", "testdata/component.yaml")
	requireExit(t, first, 0)
	requireExit(t, second, 0)
	if first.stdout == "" || first.stdout != second.stdout {
		t.Errorf("outputs differ or are empty: %x vs %x", first.stdout, second.stdout)
	}
}

func TestAdaptEnvelopeValidates(t *testing.T) {
	output := filepath.Join(t.TempDir(), "setup.cbor")
	requireExit(t, invoke(t, "", "adapt", "--envelope", "-o", output, "testdata/component.yaml"), 0)

	got := invoke(t, "", "validate", "--strict", output)
	requireExit(t, got, 0)
	if !strings.Contains(got.stdout, "0 error(s)") {
		t.Errorf("validate output = %q", got.stdout)
	}

	inspected := invoke(t, "", "envelope", "inspect", output)
	requireExit(t, inspected, 0)
	if !strings.Contains(inspected.stdout, "greentic.component.qa@0.6.0") {
		t.Errorf("inspect output = %q", inspected.stdout)
	}
}

func TestAdaptBatchContinuesPastFailures(t *testing.T) {
	directory := filepath.Join(t.TempDir(), "out")
	got := invoke(t, "", "adapt", "-o", directory, "testdata/broken.json", "testdata/component.yaml")
	requireExit(t, got, 1)
	if !strings.Contains(got.stderr, "adaptation failed") || !strings.Contains(got.stderr, "question has no id") {
		t.Errorf("stderr = %q", got.stderr)
	}
	if _, err := os.Stat(filepath.Join(directory, "component.cbor")); err != nil {
		t.Errorf("good document was not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(directory, "broken.cbor")); !os.IsNotExist(err) {
		t.Errorf("broken document produced output: %v", err)
	}
}

func TestAdaptRejectsCollidingOutputs(t *testing.T) {
	copied := testutil.WriteTemp(t, "other/component.yaml", testutil.Fixture(t, "component.yaml"))
	directory := filepath.Join(t.TempDir(), "out")

	got := invoke(t, "", "adapt", "-o", directory, "testdata/component.yaml", copied)
	requireExit(t, got, 1)
	if !strings.Contains(got.stderr, "would both be written to component.cbor") {
		t.Errorf("stderr = %q", got.stderr)
	}
	if _, err := os.Stat(directory); !os.IsNotExist(err) {
		t.Errorf("output directory was created: %v", err)
	}
}

func TestAdaptRejectsUnknownMode(t *testing.T) {
	got := invoke(t, "", "adapt", "--mode", "install", "testdata/component.yaml")
	requireExit(t, got, 1)
	if !strings.Contains(got.stderr, `unknown mode "install"`) {
		t.Errorf("stderr = %q", got.stderr)
	}
}

func TestValidateResultEnvelope(t *testing.T) {
	got := invoke(t, "", "validate", "--result", "testdata/pack-validation.cbor")
	requireExit(t, got, 0)
	testutil.RequireBytes(t, []byte(got.stdout), testutil.Fixture(t, "pack-validation.cbor"))
}

func TestDecode(t *testing.T) {
	got := invoke(t, "a2 61 62 01 61 61 02", "decode", "--hex")
	requireExit(t, got, 0)
	if got.stdout != "{\n  \"a\": 2,\n  \"b\": 1\n}\n" {
		t.Errorf("decode = %q", got.stdout)
	}

	strict := invoke(t, "a2 61 62 01 61 61 02", "decode", "--hex", "--strict")
	requireExit(t, strict, 1)
	if !strings.Contains(strict.stderr, "error:") {
		t.Errorf("stderr = %q", strict.stderr)
	}

	diag := invoke(t, "a1 61 61 01 f5", "decode", "--hex", "--diag")
	requireExit(t, diag, 0)
	if diag.stdout != "{\"a\": 1}\ntrue\n" {
		t.Errorf("diag = %q", diag.stdout)
	}
}

func TestEnvelopeWrap(t *testing.T) {
	got := invoke(t, `{"ok": true, "issues": []}`, "envelope", "wrap", "--schema", "greentic.pack.validation@0.6.0")
	requireExit(t, got, 0)
	testutil.RequireBytes(t, []byte(got.stdout), testutil.Fixture(t, "pack-validation.cbor"))

	unknown := invoke(t, `{}`, "envelope", "wrap", "--schema", "does.not.exist", "--version", "99")
	requireExit(t, unknown, 1)
	if !strings.Contains(unknown.stderr, "unknown schema does.not.exist version 99") {
		t.Errorf("stderr = %q", unknown.stderr)
	}
}

func TestSchemasCompare(t *testing.T) {
	listing := invoke(t, "", "schemas", "--json")
	requireExit(t, listing, 0)
	same := testutil.WriteTemp(t, "same.json", []byte(listing.stdout))

	got := invoke(t, "", "schemas", "--compare", same)
	requireExit(t, got, 0)
	if !strings.Contains(got.stdout, "identical") {
		t.Errorf("compare output = %q", got.stdout)
	}

	newer := testutil.WriteTemp(t, "newer.json", []byte(`[{"id": "does.not.exist", "version": 99, "kind": "pack"}]`))
	got = invoke(t, "", "schemas", "--compare", newer)
	requireExit(t, got, 1)
	if !strings.Contains(got.stdout, "+ does.not.exist/99 (pack): only in the other build") {
		t.Errorf("compare output = %q", got.stdout)
	}
}

func TestConfigFlag(t *testing.T) {
	path := testutil.WriteTemp(t, "greentic.yaml", []byte("environment: development\nlog:\n  format: xml\n"))
	got := invoke(t, "", "schemas", "--config", path)
	requireExit(t, got, 1)
	if !strings.Contains(got.stderr, "invalid config") {
		t.Errorf("stderr = %q", got.stderr)
	}
}
