// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"math"
	"slices"
	"strings"
)

// Kind identifies which variant a [Value] holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindBytes
	KindText
	KindArray
	KindMap
	KindTag
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBytes:
		return "bytes"
	case KindText:
		return "text"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindTag:
		return "tag"
	default:
		return "unknown"
	}
}

// canonicalNaN is the only NaN bit pattern a Value ever holds.
const canonicalNaN = 0x7FF8000000000000

// Value is an immutable structured value: null, boolean, integer,
// float, byte string, text string, array, text-keyed map, or tagged
// value. The zero Value is null.
//
// Integers span the union of int64 and uint64: values that fit int64
// are stored signed, larger unsigned values are stored unsigned, so
// Int(5) and Uint(5) are the same value.
//
// Map entries keep their construction order, but that order carries no
// meaning: [Value.Equal] ignores it and encoding sorts keys
// canonically. Decoded maps list their entries in canonical key order.
type Value struct {
	kind Kind

	boolean bool

	// integer holds every KindInt value that fits int64. When large
	// is set the value is unsigned and held in unsigned instead.
	integer  int64
	unsigned uint64
	large    bool

	float float64

	// text holds KindText and KindBytes contents. Strings are
	// immutable, so byte strings never alias caller memory.
	text string

	// items holds array elements, or the single tagged content.
	items   []Value
	entries []Entry
	tag     uint64
}

// Entry is one key/value pair of a map [Value].
type Entry struct {
	Key   string
	Value Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Int returns a signed integer value.
func Int(i int64) Value { return Value{kind: KindInt, integer: i} }

// Uint returns an unsigned integer value.
func Uint(u uint64) Value {
	if u <= math.MaxInt64 {
		return Value{kind: KindInt, integer: int64(u)}
	}
	return Value{kind: KindInt, unsigned: u, large: true}
}

// Float returns a floating-point value. Every NaN is normalized to a
// single quiet NaN so that equal values encode identically.
func Float(f float64) Value {
	if math.IsNaN(f) {
		f = math.Float64frombits(canonicalNaN)
	}
	return Value{kind: KindFloat, float: f}
}

// Bytes returns a byte string value holding a copy of b.
func Bytes(b []byte) Value { return Value{kind: KindBytes, text: string(b)} }

// Text returns a text string value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Array returns an array value holding a copy of items.
func Array(items ...Value) Value {
	return Value{kind: KindArray, items: slices.Clone(items)}
}

// Map returns a map value holding a copy of entries. Entries with the
// same key are kept; encoding such a value fails with
// [DuplicateKeyError].
func Map(entries ...Entry) Value {
	return Value{kind: KindMap, entries: slices.Clone(entries)}
}

// MapOf returns a map value from a Go map, with entries in canonical
// key order.
func MapOf(m map[string]Value) Value {
	entries := make([]Entry, 0, len(m))
	for key, value := range m {
		entries = append(entries, Entry{Key: key, Value: value})
	}
	sortEntries(entries)
	return Value{kind: KindMap, entries: entries}
}

// Tag returns content wrapped in CBOR tag number. Tags 0 to 3 are
// defined by RFC 8949 and restrict their content: tag 0 wraps text,
// tag 1 an integer or float, and tags 2 and 3 a byte string. Encoding
// a tag whose content breaks that rule fails with [TagContentError].
func Tag(number uint64, content Value) Value {
	return Value{kind: KindTag, tag: number, items: []Value{content}}
}

// checkTagContent applies the RFC 8949 content rules for tags 0 to 3.
func checkTagContent(number uint64, content Value) error {
	var ok bool
	switch number {
	case 0:
		ok = content.kind == KindText
	case 1:
		ok = content.kind == KindInt || content.kind == KindFloat
	case 2, 3:
		ok = content.kind == KindBytes
	default:
		return nil
	}
	if !ok {
		return &TagContentError{Number: number, Content: content.kind}
	}
	return nil
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

// AsInt returns v as an int64. It fails for non-integers and for
// unsigned values above math.MaxInt64.
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindInt || v.large {
		return 0, false
	}
	return v.integer, true
}

// AsUint returns v as a uint64. It fails for non-integers and negative
// integers.
func (v Value) AsUint() (uint64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	if v.large {
		return v.unsigned, true
	}
	if v.integer < 0 {
		return 0, false
	}
	return uint64(v.integer), true
}

// AsFloat returns the float held by v.
func (v Value) AsFloat() (float64, bool) {
	return v.float, v.kind == KindFloat
}

// AsText returns the text string held by v.
func (v Value) AsText() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.text, true
}

// AsBytes returns a copy of the byte string held by v.
func (v Value) AsBytes() ([]byte, bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	return []byte(v.text), true
}

// Items returns a copy of the elements of an array value.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return slices.Clone(v.items)
}

// Entries returns a copy of the entries of a map value.
func (v Value) Entries() []Entry {
	if v.kind != KindMap {
		return nil
	}
	return slices.Clone(v.entries)
}

// Keys returns the keys of a map value in canonical order.
func (v Value) Keys() []string {
	if v.kind != KindMap {
		return nil
	}
	keys := make([]string, len(v.entries))
	for i, entry := range v.entries {
		keys[i] = entry.Key
	}
	slices.SortFunc(keys, CompareKeys)
	return keys
}

// Get returns the value stored under key in a map value.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	for _, entry := range v.entries {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return Value{}, false
}

// Index returns the i-th element of an array value.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.items) {
		return Value{}, false
	}
	return v.items[i], true
}

// Len returns the number of elements of an array, entries of a map,
// or bytes of a text or byte string. It is zero for other kinds.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindMap:
		return len(v.entries)
	case KindText, KindBytes:
		return len(v.text)
	}
	return 0
}

// TagNumber returns the tag number and content of a tagged value.
func (v Value) TagNumber() (uint64, Value, bool) {
	if v.kind != KindTag {
		return 0, Value{}, false
	}
	return v.tag, v.items[0], true
}

// Equal reports whether v and other are the same logical value. Map
// entry order is ignored and floats compare by bit pattern, so Equal
// agrees with byte equality of the canonical encodings.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolean == other.boolean
	case KindInt:
		return v.large == other.large && v.integer == other.integer && v.unsigned == other.unsigned
	case KindFloat:
		return math.Float64bits(v.float) == math.Float64bits(other.float)
	case KindBytes, KindText:
		return v.text == other.text
	case KindArray:
		return slices.EqualFunc(v.items, other.items, Value.Equal)
	case KindMap:
		if len(v.entries) != len(other.entries) {
			return false
		}
		for _, entry := range v.entries {
			match, ok := other.Get(entry.Key)
			if !ok || !entry.Value.Equal(match) {
				return false
			}
		}
		return true
	case KindTag:
		return v.tag == other.tag && v.items[0].Equal(other.items[0])
	}
	return false
}

// String returns the diagnostic notation of v (RFC 8949 §8).
func (v Value) String() string {
	data, err := v.MarshalCBOR()
	if err != nil {
		return "<" + err.Error() + ">"
	}
	notation, err := Diagnose(data)
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return notation
}

// CompareKeys orders two map keys by their canonical encodings: a
// shorter key sorts first, and keys of equal length compare bytewise.
func CompareKeys(a, b string) int {
	if len(a) != len(b) {
		// The encoded head grows with the length, so a shorter
		// string always has a bytewise-smaller encoding.
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func sortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return CompareKeys(a.Key, b.Key)
	})
}
