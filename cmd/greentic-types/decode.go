// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/greentic-ai/greentic-types/cmd/greentic-types/cli"
	"github.com/greentic-ai/greentic-types/lib/codec"
)

type decodeParams struct {
	strict bool
	hex    bool
	diag   bool
}

func (a *app) decodeCommand() *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Show a CBOR item as JSON or diagnostic notation",
		Description: `Decode one CBOR item and write it as JSON. Byte strings appear as
base64 and tagged items as {"tag": n, "value": ...}.

With --diag, write RFC 8949 diagnostic notation instead, one line per
item of a CBOR sequence. Diagnostic notation preserves the distinction
between integers and floats and between byte and text strings.

With --strict, input that is not the canonical encoding of its value
is rejected with the offset of the first non-canonical byte.`,
		Usage: "greentic-types decode [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Decode hex from a test vector",
				Command:     "echo 'a1 65 616c706861 01' | greentic-types decode --hex",
			},
			{
				Description: "Check a fixture is canonical",
				Command:     "greentic-types decode --strict --diag describe.cbor",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := a.flagSet("decode")
			flagSet.BoolVar(&params.strict, "strict", false, "require canonical encoding")
			flagSet.BoolVarP(&params.hex, "hex", "x", false, "treat input as hex-encoded CBOR")
			flagSet.BoolVar(&params.diag, "diag", false, "write diagnostic notation")
			return flagSet
		},
		Run: func(args []string) error {
			path, err := oneInput("decode", args)
			if err != nil {
				return err
			}
			return a.decode(params, path)
		},
	}
}

func (a *app) decode(params decodeParams, path string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	mode := cfg.Codec.DecodeMode
	if params.strict {
		mode = codec.Strict
	}
	if path != "" {
		path = cfg.FixturePath(path)
	}

	data, err := cli.ReadInput(path, a.stdin, params.hex)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected CBOR data")
	}

	if params.diag {
		return a.diagnose(data, mode)
	}

	value, err := codec.DecodeMode(data, mode)
	if err != nil {
		return err
	}
	return cli.WriteValueJSON(a.stdout, value)
}

// diagnose writes the diagnostic notation of each item in a CBOR
// sequence on its own line. In strict mode each item must be
// canonical on its own.
func (a *app) diagnose(data []byte, mode codec.Mode) error {
	remaining := data
	for len(remaining) > 0 {
		offset := len(data) - len(remaining)
		notation, rest, err := codec.DiagnoseFirst(remaining)
		if err != nil {
			return fmt.Errorf("diagnose CBOR at byte %d: %w", offset, err)
		}
		if mode == codec.Strict {
			if err := codec.EnsureCanonical(remaining[:len(remaining)-len(rest)]); err != nil {
				return fmt.Errorf("item at byte %d: %w", offset, err)
			}
		}
		if _, err := fmt.Fprintln(a.stdout, notation); err != nil {
			return err
		}
		remaining = rest
	}
	return nil
}
