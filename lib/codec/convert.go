// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// FromAny converts an untyped Go tree, as produced by encoding/json
// (with or without UseNumber), gopkg.in/yaml.v3, or a CBOR decode into
// any, into a [Value]. Go maps produce entries in canonical key order.
// Map keys must be strings; a YAML mapping with non-string keys is
// rejected rather than stringified.
func FromAny(x any) (Value, error) {
	switch typed := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return typed, nil
	case bool:
		return Bool(typed), nil
	case int:
		return Int(int64(typed)), nil
	case int8:
		return Int(int64(typed)), nil
	case int16:
		return Int(int64(typed)), nil
	case int32:
		return Int(int64(typed)), nil
	case int64:
		return Int(typed), nil
	case uint:
		return Uint(uint64(typed)), nil
	case uint8:
		return Uint(uint64(typed)), nil
	case uint16:
		return Uint(uint64(typed)), nil
	case uint32:
		return Uint(uint64(typed)), nil
	case uint64:
		return Uint(typed), nil
	case float32:
		return Float(float64(typed)), nil
	case float64:
		return Float(typed), nil
	case json.Number:
		return fromNumber(typed)
	case string:
		return Text(typed), nil
	case []byte:
		return Bytes(typed), nil
	case time.Time:
		return Text(typed.UTC().Format(time.RFC3339Nano)), nil
	case []any:
		items := make([]Value, len(typed))
		for i, element := range typed {
			converted, err := FromAny(element)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			items[i] = converted
		}
		return Value{kind: KindArray, items: items}, nil
	case []Value:
		return Array(typed...), nil
	case map[string]any:
		entries := make([]Entry, 0, len(typed))
		for key, element := range typed {
			converted, err := FromAny(element)
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", key, err)
			}
			entries = append(entries, Entry{Key: key, Value: converted})
		}
		sortEntries(entries)
		return Value{kind: KindMap, entries: entries}, nil
	case map[any]any:
		entries := make([]Entry, 0, len(typed))
		for key, element := range typed {
			text, ok := key.(string)
			if !ok {
				return Value{}, fmt.Errorf("codec: map key %v (%T) is not a string", key, key)
			}
			converted, err := FromAny(element)
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", text, err)
			}
			entries = append(entries, Entry{Key: text, Value: converted})
		}
		sortEntries(entries)
		return Value{kind: KindMap, entries: entries}, nil
	case map[string]Value:
		return MapOf(typed), nil
	case []string:
		items := make([]Value, len(typed))
		for i, element := range typed {
			items[i] = Text(element)
		}
		return Value{kind: KindArray, items: items}, nil
	}
	return Value{}, fmt.Errorf("codec: cannot convert %T to a value", x)
}

// fromNumber keeps integers integral: a JSON number without a fraction
// or exponent becomes an integer when it fits int64 or uint64.
func fromNumber(number json.Number) (Value, error) {
	text := number.String()
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Int(i), nil
	}
	if u, err := strconv.ParseUint(text, 10, 64); err == nil {
		return Uint(u), nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Value{}, fmt.Errorf("codec: invalid number %q: %w", text, err)
	}
	return Float(f), nil
}

// ToAny converts v into plain Go values suitable for encoding/json:
// integers become int64 or uint64, maps become map[string]any, and a
// tagged value becomes {"tag": number, "value": content}. Non-finite
// floats become their string names since JSON cannot carry them.
func ToAny(v Value) any {
	switch v.kind {
	case KindBool:
		return v.boolean
	case KindInt:
		if v.large {
			return v.unsigned
		}
		return v.integer
	case KindFloat:
		switch {
		case math.IsNaN(v.float):
			return "NaN"
		case math.IsInf(v.float, 1):
			return "Infinity"
		case math.IsInf(v.float, -1):
			return "-Infinity"
		}
		return v.float
	case KindBytes:
		return []byte(v.text)
	case KindText:
		return v.text
	case KindArray:
		items := make([]any, len(v.items))
		for i, item := range v.items {
			items[i] = ToAny(item)
		}
		return items
	case KindMap:
		entries := make(map[string]any, len(v.entries))
		for _, entry := range v.entries {
			entries[entry.Key] = ToAny(entry.Value)
		}
		return entries
	case KindTag:
		return map[string]any{"tag": v.tag, "value": ToAny(v.items[0])}
	}
	return nil
}
