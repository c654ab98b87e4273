// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package i18n

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/greentic-ai/greentic-types/lib/codec"
)

// tagIDPrefix marks a locale tag id. The version segment changes only
// if the derivation changes.
const tagIDPrefix = "i18n:v1:"

// ErrInvalidTagID is returned by [ParseTagID] for malformed ids.
var ErrInvalidTagID = errors.New("i18n: invalid tag id")

// Tag is a normalized BCP 47 locale tag, e.g. "en-GB" or
// "sr-Latn-RS". Construct it with [NormalizeTag].
type Tag string

// NormalizeTag parses a BCP 47 tag in any casing and returns its
// canonical form ("en-gb" becomes "en-GB").
func NormalizeTag(input string) (Tag, error) {
	parsed, err := language.Parse(strings.TrimSpace(input))
	if err != nil {
		return "", fmt.Errorf("i18n: invalid locale tag %q: %w", input, err)
	}
	return Tag(parsed.String()), nil
}

// MustTag is NormalizeTag for compile-time constants. It panics on
// invalid input.
func MustTag(input string) Tag {
	tag, err := NormalizeTag(input)
	if err != nil {
		panic(err)
	}
	return tag
}

func (t Tag) String() string { return string(t) }

// Language returns the parsed language.Tag.
func (t Tag) Language() language.Tag {
	return language.Make(string(t))
}

// ID returns the stable identifier of the tag: "i18n:v1:" followed by
// the base32 digest of the tag's canonical CBOR encoding.
func (t Tag) ID() (TagID, error) {
	encoded, err := codec.Marshal(string(t))
	if err != nil {
		return "", fmt.Errorf("i18n: encoding tag %q: %w", t, err)
	}
	return TagID(tagIDPrefix + codec.Digest128(encoded).String()), nil
}

// TagID is the content-derived identifier of a [Tag].
type TagID string

// ParseTagID validates the prefix and digest of an id.
func ParseTagID(value string) (TagID, error) {
	encoded, ok := strings.CutPrefix(value, tagIDPrefix)
	if !ok {
		return "", fmt.Errorf("%w: %q must begin with %s", ErrInvalidTagID, value, tagIDPrefix)
	}
	digest, err := codec.DecodeBase32(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidTagID, err)
	}
	if len(digest) != len(codec.Digest{}) {
		return "", fmt.Errorf("%w: digest is %d bytes, want %d", ErrInvalidTagID, len(digest), len(codec.Digest{}))
	}
	return TagID(tagIDPrefix + strings.ToUpper(encoded)), nil
}

func (id TagID) String() string { return string(id) }

// Direction is the writing direction of a locale.
type Direction string

const (
	LeftToRight Direction = "ltr"
	RightToLeft Direction = "rtl"
)

// rtlScripts lists the scripts written right to left.
var rtlScripts = map[string]bool{
	"Arab": true, "Hebr": true, "Thaa": true, "Syrc": true,
	"Nkoo": true, "Adlm": true, "Rohg": true, "Mand": true,
}

// DirectionOf infers the writing direction from the tag's most likely
// script.
func DirectionOf(tag Tag) Direction {
	script, _ := tag.Language().Script()
	if rtlScripts[script.String()] {
		return RightToLeft
	}
	return LeftToRight
}

// MinimalProfile is the locale information gathered during setup,
// before a full localization bundle is available.
type MinimalProfile struct {
	Language         string    `json:"language"`
	Region           string    `json:"region,omitempty"`
	Script           string    `json:"script,omitempty"`
	Direction        Direction `json:"direction"`
	Calendar         string    `json:"calendar"`
	Currency         string    `json:"currency"`
	DecimalSeparator string    `json:"decimal_separator"`
	Timezone         string    `json:"timezone,omitempty"`
}

// ProfileFor derives a profile from a tag. Calendar defaults to
// "gregory" and the decimal separator to "."; the currency is taken
// from the tag's region where one is known.
func ProfileFor(tag Tag) MinimalProfile {
	parsed := tag.Language()
	base, _ := parsed.Base()
	profile := MinimalProfile{
		Language:         base.String(),
		Direction:        DirectionOf(tag),
		Calendar:         "gregory",
		DecimalSeparator: ".",
	}
	if region, confidence := parsed.Region(); confidence == language.Exact {
		profile.Region = region.String()
	}
	if script, confidence := parsed.Script(); confidence == language.Exact {
		profile.Script = script.String()
	}
	if calendar := parsed.TypeForKey("ca"); calendar != "" {
		profile.Calendar = calendar
	}
	if region, _ := parsed.Region(); region.IsCountry() {
		if unit, ok := currency.FromRegion(region); ok {
			profile.Currency = unit.String()
		}
	}
	return profile
}

// Validate checks the required profile fields.
func (p MinimalProfile) Validate() error {
	var errs []error
	if p.Language == "" {
		errs = append(errs, errors.New("language is required"))
	}
	switch p.Direction {
	case LeftToRight, RightToLeft:
	default:
		errs = append(errs, fmt.Errorf("direction %q must be ltr or rtl", p.Direction))
	}
	if p.Calendar == "" {
		errs = append(errs, errors.New("calendar is required"))
	}
	if len(p.Currency) != 3 {
		errs = append(errs, fmt.Errorf("currency %q must be an ISO 4217 code", p.Currency))
	}
	if p.DecimalSeparator == "" {
		errs = append(errs, errors.New("decimal_separator is required"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("i18n: invalid profile: %w", errors.Join(errs...))
	}
	return nil
}
