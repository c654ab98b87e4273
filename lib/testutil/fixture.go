// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Fixture reads testdata/<name> relative to the test's working
// directory, which is the package directory under go test.
func Fixture(t *testing.T, name string) []byte {
	t.Helper()
	path := filepath.Join("testdata", name)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading fixture %s: %v", path, err)
	}
	return data
}

// FixtureNames lists the files in testdata matching pattern, e.g.
// "*.cbor", as names accepted by [Fixture]. Fails the test when
// nothing matches so a misplaced fixture directory is noticed.
func FixtureNames(t *testing.T, pattern string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("testdata", pattern))
	if err != nil {
		t.Fatalf("globbing testdata/%s: %v", pattern, err)
	}
	if len(matches) == 0 {
		t.Fatalf("no fixtures match testdata/%s", pattern)
	}
	names := make([]string, len(matches))
	for i, match := range matches {
		names[i] = filepath.Base(match)
	}
	return names
}

// HexBytes decodes a hex literal. Whitespace is ignored and a "#"
// starts a comment that runs to the end of the line.
func HexBytes(t T, annotated string) []byte {
	t.Helper()
	var digits strings.Builder
	for line := range strings.Lines(annotated) {
		if index := strings.IndexByte(line, '#'); index >= 0 {
			line = line[:index]
		}
		for _, field := range strings.Fields(line) {
			digits.WriteString(field)
		}
	}
	data, err := hex.DecodeString(digits.String())
	if err != nil {
		t.Fatalf("invalid hex literal: %v", err)
	}
	return data
}

// WriteTemp writes data to name inside a fresh temporary directory and
// returns the file's path. The directory is removed when the test
// completes.
func WriteTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}
