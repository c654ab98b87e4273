// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/greentic-ai/greentic-types/cmd/greentic-types/cli"
	"github.com/greentic-ai/greentic-types/lib/adapter"
	"github.com/greentic-ai/greentic-types/lib/codec"
	"github.com/greentic-ai/greentic-types/lib/envelope"
	"github.com/greentic-ai/greentic-types/lib/registry"
	"github.com/greentic-ai/greentic-types/lib/schema/v060/qa"
)

type adaptParams struct {
	mode     string
	source   string
	target   string
	output   string
	envelope bool
	hex      bool
	json     bool
}

func (a *app) adaptCommand() *cli.Command {
	var params adaptParams

	return &cli.Command{
		Name:    "adapt",
		Summary: "Migrate legacy QA documents to the current schema",
		Description: `Read legacy component QA documents (JSON, JSON with comments, or YAML)
and write the canonical CBOR encoding of the adapted question spec.

The mode selects which section of the legacy document is migrated. It
defaults to adapter.mode from the config file (setup unless configured).

With one document, output goes to --output or stdout. With several,
each result is written to <dir>/<name>.cbor where <dir> is --output or
paths.output from the config file. A document that cannot be adapted
is reported and skipped; with adapter.fail_fast, processing stops at
the first failure.

Non-fatal findings (ignored legacy fields, inferred kinds, missing
titles) are logged at info and warn level.`,
		Usage: "greentic-types adapt [flags] <document>...",
		Examples: []cli.Example{
			{
				Description: "Adapt the setup questions and print them as JSON",
				Command:     "greentic-types adapt --json component.yaml",
			},
			{
				Description: "Adapt the upgrade questions into an envelope",
				Command:     "greentic-types adapt --mode upgrade --envelope -o upgrade.cbor component.json",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := a.flagSet("adapt")
			flagSet.StringVar(&params.mode, "mode", "", "QA mode: default, setup, upgrade, remove")
			flagSet.StringVar(&params.source, "source", adapter.ComponentQASource, "legacy schema id")
			flagSet.StringVar(&params.target, "target", registry.ComponentQA, "target schema id")
			flagSet.StringVarP(&params.output, "output", "o", "", "output file, or directory for several documents")
			flagSet.BoolVar(&params.envelope, "envelope", false, "wrap the result in an envelope")
			flagSet.BoolVarP(&params.hex, "hex", "x", false, "write hex instead of raw bytes")
			flagSet.BoolVar(&params.json, "json", false, "write the adapted spec as JSON")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("adapt requires at least one document")
			}
			if params.json && params.envelope {
				return fmt.Errorf("--json and --envelope cannot be combined")
			}
			return a.adapt(params, args)
		},
	}
}

func (a *app) adapt(params adaptParams, paths []string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	logger := cfg.Logger(a.stderr).With("command", "adapt")

	migrator, ok := adapter.Lookup(params.source, params.target)
	if !ok {
		return fmt.Errorf("no adapter from %s to %s", params.source, params.target)
	}

	mode := cfg.Adapter.Mode
	if params.mode != "" {
		if mode, err = qa.ParseMode(params.mode); err != nil {
			return err
		}
	}

	documents := make([][]byte, len(paths))
	for index, path := range paths {
		if documents[index], err = cli.ReadInput(path, a.stdin, false); err != nil {
			return err
		}
	}

	results := adapter.AdaptBatch(migrator, mode, documents)

	if len(results) == 1 {
		result := results[0]
		if result.Err != nil {
			return fmt.Errorf("%s: %w", paths[0], result.Err)
		}
		logReport(logger, paths[0], result.Result.Report)
		output, err := a.renderAdapted(params, migrator, result.Result.Bytes)
		if err != nil {
			return err
		}
		if params.output == "" {
			return writeOutput(a.stdout, output, params)
		}
		return os.WriteFile(params.output, output, 0644)
	}

	names, err := outputNames(paths, params.json)
	if err != nil {
		return err
	}

	directory := params.output
	if directory == "" {
		if err := cfg.EnsurePaths(); err != nil {
			return err
		}
		directory = cfg.Paths.Output
	} else if err := os.MkdirAll(directory, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", directory, err)
	}

	failed := 0
	for _, result := range results {
		path := paths[result.Index]
		if result.Err != nil {
			failed++
			logger.Error("adaptation failed", "document", path, "error", result.Err)
			if cfg.Adapter.FailFast {
				break
			}
			continue
		}
		logReport(logger, path, result.Result.Report)

		output, err := a.renderAdapted(params, migrator, result.Result.Bytes)
		if err != nil {
			return err
		}
		destination := filepath.Join(directory, names[result.Index])
		if err := os.WriteFile(destination, output, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", destination, err)
		}
		logger.Info("adapted", "document", path, "output", destination, "mode", string(mode))
	}

	if failed > 0 {
		return &cli.ExitError{Code: 1}
	}
	return nil
}

// renderAdapted turns the canonical body into the requested output
// form: raw body bytes, an envelope, or JSON text.
func (a *app) renderAdapted(params adaptParams, migrator adapter.Adapter, body []byte) ([]byte, error) {
	switch {
	case params.json:
		value, err := codec.Decode(body)
		if err != nil {
			return nil, err
		}
		var buffer strings.Builder
		if err := cli.WriteValueJSON(&buffer, value); err != nil {
			return nil, err
		}
		return []byte(buffer.String()), nil

	case params.envelope:
		def, ok := registry.Lookup(migrator.Target(), 1)
		if !ok {
			return nil, &envelope.UnknownSchemaError{Schema: migrator.Target(), Version: 1}
		}
		wrapped := envelope.Envelope{
			Kind:    def.Kind,
			Schema:  def.ID,
			Version: def.Version,
			Body:    codec.Payload(body),
		}
		return wrapped.Encode()
	}
	return body, nil
}

func writeOutput(w io.Writer, output []byte, params adaptParams) error {
	if params.json {
		_, err := w.Write(output)
		return err
	}
	return cli.WriteBinary(w, output, params.hex)
}

// outputNames returns the output file name of each input, failing when
// two inputs would write the same file.
func outputNames(paths []string, asJSON bool) ([]string, error) {
	names := make([]string, len(paths))
	sources := make(map[string]string, len(paths))
	for index, path := range paths {
		name := outputName(path, asJSON)
		if previous, exists := sources[name]; exists {
			return nil, fmt.Errorf("%s and %s would both be written to %s", previous, path, name)
		}
		sources[name] = path
		names[index] = name
	}
	return names, nil
}

// outputName maps "dir/component.yaml" to "component.cbor".
func outputName(path string, asJSON bool) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if asJSON {
		return name + ".json"
	}
	return name + ".cbor"
}
