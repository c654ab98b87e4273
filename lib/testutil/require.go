// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
)

// T is the subset of testing.TB the require helpers use.
type T interface {
	Helper()
	Fatalf(format string, args ...any)
}

// RequireErrorIs fails the test unless errors.Is(err, target).
//
//	testutil.RequireErrorIs(t, err, codec.ErrNonCanonicalEncoding, "strict decode of %s", name)
func RequireErrorIs(t T, err, target error, msgAndArgs ...any) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error wrapping %v, got nil: %s", target, formatMessage(msgAndArgs))
		return
	}
	if !errors.Is(err, target) {
		t.Fatalf("error %q does not wrap %v: %s", err, target, formatMessage(msgAndArgs))
	}
}

// RequireBytes fails the test unless got equals want, reporting both
// in hex and the offset of the first difference.
func RequireBytes(t T, got, want []byte, msgAndArgs ...any) {
	t.Helper()
	if bytes.Equal(got, want) {
		return
	}
	offset := 0
	for offset < len(got) && offset < len(want) && got[offset] == want[offset] {
		offset++
	}
	t.Fatalf("bytes differ at offset %d: %s\n got: %s\nwant: %s",
		offset, formatMessage(msgAndArgs), hex.EncodeToString(got), hex.EncodeToString(want))
}

// formatMessage formats optional message arguments into a string.
// Accepts either a single string or a format string followed by args.
func formatMessage(msgAndArgs []any) string {
	if len(msgAndArgs) == 0 {
		return "(no message)"
	}
	if len(msgAndArgs) == 1 {
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprintf("%v", msgAndArgs[0])
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprintf("%v", msgAndArgs)
}
