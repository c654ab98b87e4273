// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"fmt"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the canonical encoder. It starts from Core Deterministic
// Encoding (RFC 8949 §4.2) and pins floats to 64 bits, so a float
// value has exactly one representation regardless of its magnitude.
var encMode cbor.EncMode

// decMode accepts any well-formed CBOR, rejects duplicate map keys,
// and ignores unknown struct fields.
var decMode cbor.DecMode

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.ShortestFloat = cbor.ShortestFloatNone
	encOptions.NaNConvert = cbor.NaNConvertNone
	encOptions.InfConvert = cbor.InfConvertNone
	// A nil and an empty slice are the same logical value and must
	// produce the same bytes.
	encOptions.NilContainers = cbor.NilContainerAsEmpty
	// Enumerations (severity, question mode) serialize as text via
	// MarshalText.
	encOptions.TextMarshaler = cbor.TextMarshalerTextString
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
		// Map keys are always text. For any-typed destinations pick
		// map[string]any rather than the CBOR default of
		// map[any]any, which encoding/json cannot handle.
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Mode selects how strictly input is checked on decode.
type Mode uint8

const (
	// Lenient accepts any well-formed input.
	Lenient Mode = iota

	// Strict accepts only input that is exactly the canonical
	// encoding of the decoded value.
	Strict
)

func (m Mode) String() string {
	switch m {
	case Lenient:
		return "lenient"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	switch m {
	case Lenient, Strict:
		return []byte(m.String()), nil
	}
	return nil, fmt.Errorf("codec: unknown decode mode %d", uint8(m))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "lenient", "":
		*m = Lenient
	case "strict":
		*m = Strict
	default:
		return fmt.Errorf("codec: unknown decode mode %q (expected lenient or strict)", text)
	}
	return nil
}

// Marshal encodes v canonically.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v in lenient mode.
func Unmarshal(data []byte, v any) error {
	return classifyDecodeError(decMode.Unmarshal(data, v))
}

// UnmarshalStrict decodes CBOR data into v after verifying that data is
// canonical. Nothing is written to v when the check fails.
func UnmarshalStrict(data []byte, v any) error {
	if err := EnsureCanonical(data); err != nil {
		return err
	}
	return Unmarshal(data, v)
}

// UnmarshalMode decodes data into v using the given mode.
func UnmarshalMode(data []byte, v any, mode Mode) error {
	if mode == Strict {
		return UnmarshalStrict(data, v)
	}
	return Unmarshal(data, v)
}

// Encode canonically encodes a [Value].
func Encode(v Value) ([]byte, error) {
	return v.MarshalCBOR()
}

// Decode decodes a single CBOR item into a [Value] in lenient mode.
func Decode(data []byte) (Value, error) {
	var value Value
	if err := Unmarshal(data, &value); err != nil {
		return Value{}, err
	}
	return value, nil
}

// DecodeStrict decodes a single CBOR item into a [Value], failing with
// [ErrNonCanonicalEncoding] unless data is canonical.
func DecodeStrict(data []byte) (Value, error) {
	value, err := Decode(data)
	if err != nil {
		return Value{}, err
	}
	if err := compareCanonical(data, value); err != nil {
		return Value{}, err
	}
	return value, nil
}

// DecodeMode decodes data into a [Value] using the given mode.
func DecodeMode(data []byte, mode Mode) (Value, error) {
	if mode == Strict {
		return DecodeStrict(data)
	}
	return Decode(data)
}

// Canonicalize re-encodes any well-formed input into canonical form.
func Canonicalize(data []byte) ([]byte, error) {
	value, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Encode(value)
}

// EnsureCanonical returns nil if data is the canonical encoding of the
// value it holds. Otherwise it returns a *[NonCanonicalError], or an
// [ErrMalformedEncoding] error if data cannot be decoded at all.
func EnsureCanonical(data []byte) error {
	value, err := Decode(data)
	if err != nil {
		return err
	}
	return compareCanonical(data, value)
}

func compareCanonical(data []byte, value Value) error {
	canonical, err := Encode(value)
	if err != nil {
		return err
	}
	if bytes.Equal(data, canonical) {
		return nil
	}
	return &NonCanonicalError{
		Offset:          firstDifference(data, canonical),
		InputLength:     len(data),
		CanonicalLength: len(canonical),
	}
}

// Decoder reads a sequence of CBOR items from a stream.
type Decoder = cbor.Decoder

// RawMessage is an encoded CBOR item whose decoding is deferred.
type RawMessage = cbor.RawMessage

// NewDecoder returns a lenient decoder reading from r. Use it for CBOR
// sequences (RFC 8742); each Decode call consumes one item.
func NewDecoder(r io.Reader) *Decoder {
	return decMode.NewDecoder(r)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for the
// entire contents of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

// DiagnoseFirst returns the CBOR diagnostic notation for the first
// data item in data, along with the remaining unconsumed bytes. Use
// this to process CBOR sequences one item at a time.
func DiagnoseFirst(data []byte) (string, []byte, error) {
	return cbor.DiagnoseFirst(data)
}
