// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// CBOR major types, from the top three bits of an item's initial byte.
const (
	majorUnsigned = 0
	majorNegative = 1
	majorBytes    = 2
	majorText     = 3
	majorArray    = 4
	majorMap      = 5
	majorTag      = 6
	majorSimple   = 7
)

// Initial bytes of the major type 7 items a Value can hold.
const (
	simpleFalse   = 0xf4
	simpleTrue    = 0xf5
	simpleNull    = 0xf6
	simpleFloat16 = 0xf9
	simpleFloat32 = 0xfa
	simpleFloat64 = 0xfb
)

// MarshalCBOR encodes v canonically. It fails with [DuplicateKeyError]
// if v, or any value nested in it, is a map with a repeated key.
func (v Value) MarshalCBOR() ([]byte, error) {
	native, err := v.native()
	if err != nil {
		return nil, err
	}
	return encMode.Marshal(native)
}

// native converts v into the Go representation the encoder handles
// directly. Tagged content is pre-encoded into a cbor.RawTag so that it
// follows the same rules as every other Value.
func (v Value) native() (any, error) {
	switch v.kind {
	case KindNull:
		return nil, nil
	case KindBool:
		return v.boolean, nil
	case KindInt:
		if v.large {
			return v.unsigned, nil
		}
		return v.integer, nil
	case KindFloat:
		return v.float, nil
	case KindBytes:
		return []byte(v.text), nil
	case KindText:
		return v.text, nil
	case KindArray:
		items := make([]any, len(v.items))
		for i, item := range v.items {
			converted, err := item.native()
			if err != nil {
				return nil, err
			}
			items[i] = converted
		}
		return items, nil
	case KindMap:
		entries := make(map[string]any, len(v.entries))
		for _, entry := range v.entries {
			if _, exists := entries[entry.Key]; exists {
				return nil, &DuplicateKeyError{Key: entry.Key}
			}
			converted, err := entry.Value.native()
			if err != nil {
				return nil, err
			}
			entries[entry.Key] = converted
		}
		return entries, nil
	case KindTag:
		if err := checkTagContent(v.tag, v.items[0]); err != nil {
			return nil, err
		}
		content, err := v.items[0].MarshalCBOR()
		if err != nil {
			return nil, err
		}
		return cbor.RawTag{Number: v.tag, Content: content}, nil
	}
	return nil, fmt.Errorf("codec: cannot encode value of kind %d", v.kind)
}

// UnmarshalCBOR decodes a single well-formed CBOR item into v. Map
// entries are stored in canonical key order.
func (v *Value) UnmarshalCBOR(data []byte) error {
	if len(data) == 0 {
		return &MalformedError{Reason: "empty input"}
	}

	switch data[0] >> 5 {
	case majorUnsigned:
		var u uint64
		if err := decMode.Unmarshal(data, &u); err != nil {
			return classifyDecodeError(err)
		}
		*v = Uint(u)

	case majorNegative:
		var i int64
		if err := decMode.Unmarshal(data, &i); err != nil {
			var typeErr *cbor.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				return &MalformedError{Reason: "negative integer below the int64 range"}
			}
			return classifyDecodeError(err)
		}
		*v = Int(i)

	case majorBytes:
		var b []byte
		if err := decMode.Unmarshal(data, &b); err != nil {
			return classifyDecodeError(err)
		}
		*v = Bytes(b)

	case majorText:
		var s string
		if err := decMode.Unmarshal(data, &s); err != nil {
			return classifyDecodeError(err)
		}
		*v = Text(s)

	case majorArray:
		var raw []cbor.RawMessage
		if err := decMode.Unmarshal(data, &raw); err != nil {
			return classifyDecodeError(err)
		}
		items := make([]Value, len(raw))
		for i, element := range raw {
			if err := items[i].UnmarshalCBOR(element); err != nil {
				return err
			}
		}
		*v = Value{kind: KindArray, items: items}

	case majorMap:
		var raw map[string]cbor.RawMessage
		if err := decMode.Unmarshal(data, &raw); err != nil {
			var typeErr *cbor.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				return &MalformedError{Reason: "map key is not a text string"}
			}
			return classifyDecodeError(err)
		}
		entries := make([]Entry, 0, len(raw))
		for key, element := range raw {
			entry := Entry{Key: key}
			if err := entry.Value.UnmarshalCBOR(element); err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		sortEntries(entries)
		*v = Value{kind: KindMap, entries: entries}

	case majorTag:
		var raw cbor.RawTag
		if err := decMode.Unmarshal(data, &raw); err != nil {
			return classifyDecodeError(err)
		}
		var content Value
		if err := content.UnmarshalCBOR(raw.Content); err != nil {
			return err
		}
		*v = Tag(raw.Number, content)

	case majorSimple:
		switch data[0] {
		case simpleFalse:
			*v = Bool(false)
		case simpleTrue:
			*v = Bool(true)
		case simpleNull:
			*v = Null()
		case simpleFloat16, simpleFloat32, simpleFloat64:
			var f float64
			if err := decMode.Unmarshal(data, &f); err != nil {
				return classifyDecodeError(err)
			}
			*v = Float(f)
		default:
			return &MalformedError{Reason: fmt.Sprintf("unsupported simple value 0x%02x", data[0])}
		}
	}
	return nil
}

