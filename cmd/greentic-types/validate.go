// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/greentic-ai/greentic-types/cmd/greentic-types/cli"
	"github.com/greentic-ai/greentic-types/lib/codec"
	"github.com/greentic-ai/greentic-types/lib/diagnostic"
	"github.com/greentic-ai/greentic-types/lib/envelope"
	"github.com/greentic-ai/greentic-types/lib/registry"
	"github.com/greentic-ai/greentic-types/lib/schema/v060/component"
	"github.com/greentic-ai/greentic-types/lib/schema/v060/pack"
)

type validateParams struct {
	strict bool
	hex    bool
	json   bool
	result bool
}

func (a *app) validateCommand() *cli.Command {
	var params validateParams

	return &cli.Command{
		Name:    "validate",
		Summary: "Decode an envelope and check its descriptor",
		Description: `Decode an envelope, decode its body as the registered descriptor type,
and run that descriptor's checks. Exits 1 when any error-severity
diagnostic is found.

Decoding is lenient unless --strict is given or codec.decode_mode is
strict in the config file. Strict decoding additionally requires the
envelope and its body to be canonical.

With --result, the findings are written as a pack validation envelope
instead of text.`,
		Usage: "greentic-types validate [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Validate a pack describe envelope",
				Command:     "greentic-types validate --strict describe.cbor",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := a.flagSet("validate")
			flagSet.BoolVar(&params.strict, "strict", false, "require canonical encoding")
			flagSet.BoolVarP(&params.hex, "hex", "x", false, "treat input as hex-encoded CBOR")
			flagSet.BoolVar(&params.json, "json", false, "write the report as JSON")
			flagSet.BoolVar(&params.result, "result", false, "write a "+registry.PackValidation+" envelope")
			return flagSet
		},
		Run: func(args []string) error {
			path, err := oneInput("validate", args)
			if err != nil {
				return err
			}
			return a.validate(params, path)
		},
	}
}

func (a *app) validate(params validateParams, path string) error {
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
	report, err := validateEnvelope(decoded, mode)
	if err != nil {
		return err
	}

	switch {
	case params.result:
		wrapped, err := envelope.For(pack.ResultFromReport(report))
		if err != nil {
			return err
		}
		encoded, err := wrapped.Encode()
		if err != nil {
			return err
		}
		if err := cli.WriteBinary(a.stdout, encoded, params.hex); err != nil {
			return err
		}
	case params.json:
		if err := cli.WriteJSON(a.stdout, report); err != nil {
			return err
		}
	default:
		printReport(a.stdout, report)
	}

	if report.HasErrors() {
		return &cli.ExitError{Code: 1}
	}
	return nil
}

// validateEnvelope decodes the body as its registered type and runs
// that type's checks. Bodies that are themselves findings (validation
// results, diagnostic reports) are returned as the report.
func validateEnvelope(e envelope.Envelope, mode codec.Mode) (diagnostic.Report, error) {
	def, err := e.Def()
	if err != nil {
		return diagnostic.Report{}, err
	}

	switch registry.BareID(def.ID) {
	case registry.BareID(registry.PackDescribe):
		body, err := envelope.DecodeBodyMode[pack.Describe](e, mode)
		if err != nil {
			return diagnostic.Report{}, err
		}
		return body.Validate(), nil

	case registry.BareID(registry.PackQA):
		body, err := envelope.DecodeBodyMode[pack.QaSpec](e, mode)
		if err != nil {
			return diagnostic.Report{}, err
		}
		return body.Validate(), nil

	case registry.BareID(registry.PackValidation):
		body, err := envelope.DecodeBodyMode[pack.ValidationResult](e, mode)
		if err != nil {
			return diagnostic.Report{}, err
		}
		return diagnostic.Report{Diagnostics: body.Issues}, nil

	case registry.BareID(registry.ComponentDescribe):
		body, err := envelope.DecodeBodyMode[component.Describe](e, mode)
		if err != nil {
			return diagnostic.Report{}, err
		}
		return body.Validate(), nil

	case registry.BareID(registry.ComponentQA):
		body, err := envelope.DecodeBodyMode[component.QaSpec](e, mode)
		if err != nil {
			return diagnostic.Report{}, err
		}
		return body.Validate(), nil

	case registry.BareID(registry.DiagnosticReport):
		return envelope.DecodeBodyMode[diagnostic.Report](e, mode)
	}
	return diagnostic.Report{}, fmt.Errorf("no checks defined for %s", def)
}
