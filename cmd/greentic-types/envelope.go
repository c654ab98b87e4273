// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/greentic-ai/greentic-types/cmd/greentic-types/cli"
	"github.com/greentic-ai/greentic-types/lib/codec"
	"github.com/greentic-ai/greentic-types/lib/envelope"
	"github.com/greentic-ai/greentic-types/lib/registry"
)

func (a *app) envelopeCommand() *cli.Command {
	return &cli.Command{
		Name:    "envelope",
		Summary: "Inspect or build schema envelopes",
		Subcommands: []*cli.Command{
			a.envelopeInspectCommand(),
			a.envelopeWrapCommand(),
		},
	}
}

type inspectParams struct {
	strict bool
	hex    bool
	json   bool
}

func (a *app) envelopeInspectCommand() *cli.Command {
	var params inspectParams

	return &cli.Command{
		Name:    "inspect",
		Summary: "Show an envelope header and its body",
		Description: `Decode an envelope and show its kind, schema id, version, whether the
registry knows the (schema, version) pair, and the body as JSON.

Unknown schemas are shown rather than rejected, so envelopes produced
by a newer build can still be looked at.`,
		Usage: "greentic-types envelope inspect [flags] [file]",
		Flags: func() *pflag.FlagSet {
			flagSet := a.flagSet("envelope inspect")
			flagSet.BoolVar(&params.strict, "strict", false, "require canonical encoding")
			flagSet.BoolVarP(&params.hex, "hex", "x", false, "treat input as hex-encoded CBOR")
			flagSet.BoolVar(&params.json, "json", false, "write the whole envelope as JSON")
			return flagSet
		},
		Run: func(args []string) error {
			path, err := oneInput("envelope inspect", args)
			if err != nil {
				return err
			}
			return a.inspect(params, path)
		},
	}
}

func (a *app) inspect(params inspectParams, path string) error {
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
	decoded, err := envelope.DecodeMode(data, mode)
	if err != nil {
		return err
	}
	body, err := decoded.Body.DecodeMode(mode)
	if err != nil {
		return fmt.Errorf("envelope body: %w", err)
	}

	registered := "yes"
	def, err := decoded.Def()
	switch {
	case errors.Is(err, envelope.ErrUnknownSchema):
		registered = "no"
	case err != nil:
		return err
	case def.Kind != decoded.Kind:
		registered = "yes, as kind " + def.Kind
	}

	if params.json {
		return cli.WriteValueJSON(a.stdout, codec.MapOf(map[string]codec.Value{
			"kind":       codec.Text(decoded.Kind),
			"schema":     codec.Text(decoded.Schema),
			"version":    codec.Uint(uint64(decoded.Version)),
			"registered": codec.Bool(registered != "no"),
			"body":       body,
		}))
	}

	tw := tabwriter.NewWriter(a.stdout, 2, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "kind:\t%s\n", decoded.Kind)
	fmt.Fprintf(tw, "schema:\t%s\n", decoded.Schema)
	fmt.Fprintf(tw, "version:\t%d\n", decoded.Version)
	fmt.Fprintf(tw, "registered:\t%s\n", registered)
	fmt.Fprintf(tw, "body:\t%d bytes, %s\n", len(decoded.Body), codec.Digest128(decoded.Body))
	if err := tw.Flush(); err != nil {
		return err
	}
	return cli.WriteValueJSON(a.stdout, body)
}

type wrapParams struct {
	kind         string
	schema       string
	version      uint32
	allowUnknown bool
	hex          bool
}

func (a *app) envelopeWrapCommand() *cli.Command {
	var params wrapParams

	return &cli.Command{
		Name:    "wrap",
		Summary: "Wrap a JSON body in an envelope",
		Description: `Read a JSON value, encode it canonically as the body of an envelope,
and write the envelope.

The (schema, version) pair must be registered unless --allow-unknown
is given. The kind defaults to the registered kind.`,
		Usage: "greentic-types envelope wrap --schema <id> [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Build a validation result envelope",
				Command:     `echo '{"ok":true,"issues":[]}' | greentic-types envelope wrap --schema ` + registry.PackValidation,
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := a.flagSet("envelope wrap")
			flagSet.StringVar(&params.kind, "kind", "", "envelope kind (default: the registered kind)")
			flagSet.StringVar(&params.schema, "schema", "", "schema id (required)")
			flagSet.Uint32Var(&params.version, "version", 1, "schema version")
			flagSet.BoolVar(&params.allowUnknown, "allow-unknown", false, "allow schemas the registry does not know")
			flagSet.BoolVarP(&params.hex, "hex", "x", false, "write hex instead of raw bytes")
			return flagSet
		},
		Run: func(args []string) error {
			path, err := oneInput("envelope wrap", args)
			if err != nil {
				return err
			}
			if params.schema == "" {
				return fmt.Errorf("--schema is required")
			}
			return a.wrap(params, path)
		},
	}
}

func (a *app) wrap(params wrapParams, path string) error {
	if _, err := a.loadConfig(); err != nil {
		return err
	}

	kind := params.kind
	def, ok := registry.Lookup(params.schema, params.version)
	switch {
	case ok && kind == "":
		kind = def.Kind
	case !ok && !params.allowUnknown:
		return &envelope.UnknownSchemaError{Schema: params.schema, Version: params.version}
	case !ok && kind == "":
		return fmt.Errorf("--kind is required for an unregistered schema")
	}

	data, err := cli.ReadInput(path, a.stdin, false)
	if err != nil {
		return err
	}
	body, err := parseJSON(data)
	if err != nil {
		return err
	}

	wrapped, err := envelope.New(kind, params.schema, params.version, body)
	if err != nil {
		return err
	}
	encoded, err := wrapped.Encode()
	if err != nil {
		return err
	}
	return cli.WriteBinary(a.stdout, encoded, params.hex)
}

// parseJSON reads exactly one JSON value, keeping numbers exact.
func parseJSON(data []byte) (codec.Value, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var parsed any
	if err := decoder.Decode(&parsed); err != nil {
		return codec.Value{}, fmt.Errorf("parsing JSON body: %w", err)
	}
	if _, err := decoder.Token(); err != io.EOF {
		return codec.Value{}, fmt.Errorf("parsing JSON body: trailing data after the first value")
	}
	return codec.FromAny(parsed)
}
