// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"slices"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/greentic-ai/greentic-types/lib/testutil"
)

func sampleValue() Value {
	return Map(
		Entry{"name", Text("demo")},
		Entry{"count", Int(-42)},
		Entry{"huge", Uint(math.MaxUint64)},
		Entry{"ratio", Float(0.25)},
		Entry{"blob", Bytes([]byte{0x00, 0xff})},
		Entry{"flags", Array(Bool(true), Bool(false), Null())},
		Entry{"nested", Map(Entry{"z", Int(1)}, Entry{"a", Array()})},
		Entry{"marker", Tag(1000, Text("variant"))},
	)
}

func TestValueRoundtrip(t *testing.T) {
	original := sampleValue()

	data, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := DecodeStrict(data)
	if err != nil {
		t.Fatalf("DecodeStrict: %v", err)
	}
	if !decoded.Equal(original) {
		t.Errorf("roundtrip mismatch:\n got %v\nwant %v", decoded, original)
	}

	again, err := Encode(decoded)
	if err != nil {
		t.Fatalf("second Encode: %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Errorf("re-encoding changed bytes: %x != %x", data, again)
	}
}

func TestDecodedMapEntriesInCanonicalOrder(t *testing.T) {
	decoded, err := Decode(testutil.HexBytes(t, "a3 62626201 616303 616102"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	var keys []string
	for _, entry := range decoded.Entries() {
		keys = append(keys, entry.Key)
	}
	if strings.Join(keys, ",") != "a,c,bb" {
		t.Errorf("entry order = %v, want [a c bb]", keys)
	}
}

func TestValueEqual(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Value
		equal bool
	}{
		{"int and uint", Int(5), Uint(5), true},
		{"int sign", Int(-5), Int(5), false},
		{"int vs float", Int(1), Float(1), false},
		{"text vs bytes", Text("a"), Bytes([]byte("a")), false},
		{"map order ignored",
			Map(Entry{"a", Int(1)}, Entry{"b", Int(2)}),
			Map(Entry{"b", Int(2)}, Entry{"a", Int(1)}), true},
		{"map value differs",
			Map(Entry{"a", Int(1)}),
			Map(Entry{"a", Int(2)}), false},
		{"array order matters", Array(Int(1), Int(2)), Array(Int(2), Int(1)), false},
		{"nan equals nan", Float(math.NaN()), Float(math.Float64frombits(0x7ff8000000000001)), true},
		{"negative zero", Float(0), Float(math.Copysign(0, -1)), false},
		{"zero value is null", Value{}, Null(), true},
		{"tag number", Tag(1, Int(0)), Tag(2, Int(0)), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.a.Equal(test.b); got != test.equal {
				t.Errorf("Equal = %v, want %v", got, test.equal)
			}
			if got := test.b.Equal(test.a); got != test.equal {
				t.Errorf("reversed Equal = %v, want %v", got, test.equal)
			}
		})
	}
}

func TestEqualValuesEncodeIdentically(t *testing.T) {
	a := MapOf(map[string]Value{"x": Int(1), "yy": Uint(2), "z": Float(math.NaN())})
	b := Map(Entry{"z", Float(math.NaN())}, Entry{"yy", Int(2)}, Entry{"x", Uint(1)})
	if !a.Equal(b) {
		t.Fatal("values not equal")
	}
	encodedA, err := Encode(a)
	if err != nil {
		t.Fatal(err)
	}
	encodedB, err := Encode(b)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(encodedA, encodedB) {
		t.Errorf("equal values encode differently: %x != %x", encodedA, encodedB)
	}
}

func TestValueAccessors(t *testing.T) {
	value := sampleValue()

	name, ok := value.Get("name")
	if !ok {
		t.Fatal("Get(name) missing")
	}
	if text, ok := name.AsText(); !ok || text != "demo" {
		t.Errorf("name = %v", name)
	}

	count, _ := value.Get("count")
	if i, ok := count.AsInt(); !ok || i != -42 {
		t.Errorf("count AsInt = %d, %v", i, ok)
	}
	if _, ok := count.AsUint(); ok {
		t.Error("negative integer converted to uint")
	}

	huge, _ := value.Get("huge")
	if _, ok := huge.AsInt(); ok {
		t.Error("MaxUint64 converted to int64")
	}
	if u, ok := huge.AsUint(); !ok || u != math.MaxUint64 {
		t.Errorf("huge AsUint = %d, %v", u, ok)
	}

	if got := value.Keys(); !slices.Equal(got, []string{"blob", "huge", "name", "count", "flags", "ratio", "marker", "nested"}) {
		t.Errorf("Keys = %v", got)
	}

	marker, _ := value.Get("marker")
	number, content, ok := marker.TagNumber()
	if !ok || number != 1000 || !content.Equal(Text("variant")) {
		t.Errorf("TagNumber = %d, %v, %v", number, content, ok)
	}

	if _, ok := value.Get("absent"); ok {
		t.Error("Get(absent) found a value")
	}
	if _, ok := Text("x").Get("x"); ok {
		t.Error("Get on a non-map found a value")
	}
}

func TestValueImmutable(t *testing.T) {
	raw := []byte{1, 2, 3}
	value := Bytes(raw)
	raw[0] = 9
	if got, _ := value.AsBytes(); got[0] != 1 {
		t.Error("Bytes aliases its argument")
	}

	got, _ := value.AsBytes()
	got[1] = 9
	if again, _ := value.AsBytes(); again[1] != 2 {
		t.Error("AsBytes exposes internal storage")
	}

	items := []Value{Int(1)}
	array := Array(items...)
	items[0] = Int(2)
	if first, _ := array.Index(0); !first.Equal(Int(1)) {
		t.Error("Array aliases its argument")
	}
}

func TestFromAnyJSON(t *testing.T) {
	decoder := json.NewDecoder(strings.NewReader(
		`{"count": 3, "big": 18446744073709551615, "ratio": 1.5, "list": ["a", null, true]}`))
	decoder.UseNumber()
	var tree any
	if err := decoder.Decode(&tree); err != nil {
		t.Fatal(err)
	}

	value, err := FromAny(tree)
	if err != nil {
		t.Fatalf("FromAny: %v", err)
	}
	want := Map(
		Entry{"count", Int(3)},
		Entry{"big", Uint(math.MaxUint64)},
		Entry{"ratio", Float(1.5)},
		Entry{"list", Array(Text("a"), Null(), Bool(true))},
	)
	if !value.Equal(want) {
		t.Errorf("FromAny = %v, want %v", value, want)
	}
}

func TestFromAnyYAML(t *testing.T) {
	var tree any
	source := "title: Setup\ncount: 2\nitems:\n  - x\n  - 1.5\n"
	if err := yaml.Unmarshal([]byte(source), &tree); err != nil {
		t.Fatal(err)
	}
	value, err := FromAny(tree)
	if err != nil {
		t.Fatalf("FromAny: %v", err)
	}
	want := Map(
		Entry{"title", Text("Setup")},
		Entry{"count", Int(2)},
		Entry{"items", Array(Text("x"), Float(1.5))},
	)
	if !value.Equal(want) {
		t.Errorf("FromAny = %v, want %v", value, want)
	}
}

func TestFromAnyRejects(t *testing.T) {
	if _, err := FromAny(map[any]any{1: "x"}); err == nil {
		t.Error("FromAny accepted a non-string map key")
	}
	if _, err := FromAny(struct{}{}); err == nil {
		t.Error("FromAny accepted a struct")
	}
}

func TestToAnyJSON(t *testing.T) {
	value := Map(
		Entry{"n", Int(-1)},
		Entry{"list", Array(Text("a"), Null())},
		Entry{"nan", Float(math.NaN())},
	)
	rendered, err := json.Marshal(ToAny(value))
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	if string(rendered) != `{"list":["a",null],"n":-1,"nan":"NaN"}` {
		t.Errorf("rendered %s", rendered)
	}
}

func TestValueFieldsInStructs(t *testing.T) {
	type holder struct {
		Data     Value            `json:"data"`
		Optional *Value           `json:"optional,omitempty"`
		Extra    map[string]Value `json:"extra"`
	}

	original := holder{
		Data:  Array(Int(1), Text("two")),
		Extra: map[string]Value{"k": Null()},
	}
	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded holder
	if err := UnmarshalStrict(data, &decoded); err != nil {
		t.Fatalf("UnmarshalStrict: %v", err)
	}
	if !decoded.Data.Equal(original.Data) {
		t.Errorf("Data = %v", decoded.Data)
	}
	if decoded.Optional != nil {
		t.Errorf("Optional = %v, want nil", decoded.Optional)
	}
	if extra, ok := decoded.Extra["k"]; !ok || !extra.IsNull() {
		t.Errorf("Extra = %v", decoded.Extra)
	}
}

func TestMarshalNestedDuplicateKey(t *testing.T) {
	type holder struct {
		Data Value `json:"data"`
	}
	_, err := Marshal(holder{Data: Map(Entry{"a", Null()}, Entry{"a", Null()})})
	if !errors.Is(err, ErrMalformedEncoding) {
		t.Errorf("error = %v, want ErrMalformedEncoding", err)
	}
}

func TestDigestAndBase32(t *testing.T) {
	// BLAKE3 of the empty input starts af1349b9f5f9a1a6a0404dea36dcc949.
	digest := Digest128(nil)
	if got := digest.String(); got != "NW9MKEFNZ6GTD8209QN3DQ6994" {
		t.Errorf("Digest128(nil) = %s", got)
	}

	decoded, err := DecodeBase32("nw9mkefnz6gtd8209qn3dq6994")
	if err != nil {
		t.Fatalf("DecodeBase32 lower case: %v", err)
	}
	if !bytes.Equal(decoded, digest[:]) {
		t.Errorf("decoded %x, want %x", decoded, digest[:])
	}

	if got := EncodeBase32([]byte("hi")); got != "D1MG" {
		t.Errorf("EncodeBase32(hi) = %s", got)
	}
	if _, err := DecodeBase32("NW9MKEFNZ6GTD8209QN3DQ699U"); err == nil {
		t.Error("DecodeBase32 accepted a character outside the alphabet")
	}
}

func TestPayload(t *testing.T) {
	payload, err := NewPayload(map[string]int{"b": 1, "a": 2})
	if err != nil {
		t.Fatal(err)
	}
	if err := payload.EnsureCanonical(); err != nil {
		t.Errorf("EnsureCanonical: %v", err)
	}

	unsorted := Payload(testutil.HexBytes(t, "a2 616201 616102"))
	if err := unsorted.EnsureCanonical(); !errors.Is(err, ErrNonCanonicalEncoding) {
		t.Errorf("EnsureCanonical(unsorted) = %v", err)
	}
	canonical, err := unsorted.Canonicalize()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(canonical, payload) {
		t.Errorf("Canonicalize = %x, want %x", canonical, payload)
	}
}
