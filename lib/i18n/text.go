// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

// Package i18n holds the localization primitives shared by every
// descriptor schema: [Text], the (key, fallback) pair that replaces
// every user-facing string, deterministic key construction for
// migrated content, and normalized locale tags with stable ids.
package i18n

import (
	"fmt"
	"strings"
)

// Text is localizable text: a stable translation key plus the best
// known literal, used when no translation exists for the key.
//
// Descriptor schemas never carry a bare user-facing string; they carry
// a Text.
type Text struct {
	Key      string  `json:"key"`
	Fallback *string `json:"fallback"`
}

// NewText returns a Text with a fallback literal. An empty fallback is
// kept: the empty string is a legitimate literal.
func NewText(key, fallback string) Text {
	return Text{Key: key, Fallback: &fallback}
}

// KeyOnly returns a Text with no fallback.
func KeyOnly(key string) Text {
	return Text{Key: key}
}

// Keys returns the translation keys this text references.
func (t Text) Keys() []string {
	return []string{t.Key}
}

// FallbackText returns the fallback literal, or "" when absent.
func (t Text) FallbackText() string {
	if t.Fallback == nil {
		return ""
	}
	return *t.Fallback
}

// Resolve returns the translation of Key from lookup, falling back to
// the fallback literal and finally to the key itself.
func (t Text) Resolve(lookup func(key string) (string, bool)) string {
	if lookup != nil {
		if translated, ok := lookup(t.Key); ok {
			return translated
		}
	}
	if t.Fallback != nil {
		return *t.Fallback
	}
	return t.Key
}

// Equal reports whether both texts have the same key and fallback.
func (t Text) Equal(other Text) bool {
	if t.Key != other.Key {
		return false
	}
	if t.Fallback == nil || other.Fallback == nil {
		return t.Fallback == nil && other.Fallback == nil
	}
	return *t.Fallback == *other.Fallback
}

// Validate checks that the key is present and well formed.
func (t Text) Validate() error {
	if t.Key == "" {
		return fmt.Errorf("i18n: text key is empty")
	}
	if strings.TrimSpace(t.Key) != t.Key || strings.ContainsAny(t.Key, " \t\n") {
		return fmt.Errorf("i18n: text key %q contains whitespace", t.Key)
	}
	return nil
}

func (t Text) String() string {
	if t.Fallback == nil {
		return t.Key
	}
	return fmt.Sprintf("%s (%q)", t.Key, *t.Fallback)
}

// Key builds the deterministic translation key
// "<namespace>.<version>.<owner>.<field>[.<variant>...]" used for text
// synthesized from untyped sources. An empty owner is skipped, which
// is how document-level fields (title, description) are keyed.
//
// Key is a pure function of its inputs.
func Key(namespace, version, owner, field string, variant ...string) string {
	segments := make([]string, 0, 4+len(variant))
	segments = append(segments, namespace, version)
	if owner != "" {
		segments = append(segments, owner)
	}
	segments = append(segments, field)
	segments = append(segments, variant...)
	return strings.Join(segments, ".")
}
