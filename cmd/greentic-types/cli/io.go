// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"unicode"

	"golang.org/x/term"

	"github.com/greentic-ai/greentic-types/lib/codec"
)

// ReadInput reads the file named by path, or stdin when path is "" or
// "-". With hexMode the input is hex text; whitespace is ignored.
func ReadInput(path string, stdin io.Reader, hexMode bool) ([]byte, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	if hexMode {
		return decodeHexInput(data)
	}
	return data, nil
}

func decodeHexInput(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	if len(cleaned) == 0 {
		return nil, fmt.Errorf("empty input after stripping whitespace from hex")
	}

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	count, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded[:count], nil
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// WriteBinary writes data to w. Terminals, and any writer when asHex
// is set, get lowercase hex followed by a newline instead of raw bytes.
func WriteBinary(w io.Writer, data []byte, asHex bool) error {
	if asHex || IsTerminal(w) {
		_, err := fmt.Fprintln(w, hex.EncodeToString(data))
		return err
	}
	_, err := w.Write(data)
	return err
}

// WriteJSON writes v as indented JSON. The value takes the CBOR path
// first (encode, decode to a generic value) so that types carrying
// codec values render the same way their wire form reads.
func WriteJSON(w io.Writer, v any) error {
	encoded, err := codec.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	value, err := codec.Decode(encoded)
	if err != nil {
		return fmt.Errorf("decoding output: %w", err)
	}
	return WriteValueJSON(w, value)
}

// WriteValueJSON writes a generic value as indented JSON.
func WriteValueJSON(w io.Writer, value codec.Value) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(codec.ToAny(value))
}
