// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/greentic-ai/greentic-types/cmd/greentic-types/cli"
	"github.com/greentic-ai/greentic-types/lib/registry"
	"github.com/greentic-ai/greentic-types/lib/version"
)

// schemaListing is the --json form of "schemas", and the input format
// of "schemas --compare".
type schemaListing struct {
	Fingerprint string               `json:"fingerprint"`
	Schemas     []registry.SchemaDef `json:"schemas"`
}

func (a *app) schemasCommand() *cli.Command {
	var (
		asJSON  bool
		compare string
	)

	return &cli.Command{
		Name:    "schemas",
		Summary: "List compiled schemas or compare with another build",
		Description: `List every (schema id, version) pair this build accepts, with the
kind of descriptor each describes and the fingerprint of the set.

With --compare, read another build's "schemas --json" output and report
entries one build has and the other lacks. Exits 1 when the sets
differ.`,
		Usage: "greentic-types schemas [--json] [--compare file]",
		Examples: []cli.Example{
			{
				Description: "Check a deployed build accepts the same envelopes",
				Command:     "ssh host greentic-types schemas --json > remote.json && greentic-types schemas --compare remote.json",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := a.flagSet("schemas")
			flagSet.BoolVar(&asJSON, "json", false, "output as JSON")
			flagSet.StringVar(&compare, "compare", "", "another build's schemas --json output")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("schemas takes no positional arguments, got %q", args[0])
			}
			if _, err := a.loadConfig(); err != nil {
				return err
			}
			if compare != "" {
				return a.compareSchemas(compare, asJSON)
			}
			return a.listSchemas(asJSON)
		},
	}
}

func (a *app) listSchemas(asJSON bool) error {
	fingerprint, err := version.Fingerprint()
	if err != nil {
		return err
	}
	listing := schemaListing{Fingerprint: fingerprint, Schemas: version.SchemaSet()}
	if asJSON {
		return cli.WriteJSON(a.stdout, listing)
	}

	tw := tabwriter.NewWriter(a.stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "SCHEMA\tVERSION\tKIND\n")
	for _, def := range listing.Schemas {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", def.ID, def.Version, def.Kind)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "\nfingerprint: %s\n", fingerprint)
	return nil
}

func (a *app) compareSchemas(path string, asJSON bool) error {
	data, err := cli.ReadInput(path, a.stdin, false)
	if err != nil {
		return err
	}
	other, err := parseListing(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	diff := version.Compare(other.Schemas)
	if asJSON {
		if err := cli.WriteJSON(a.stdout, diff); err != nil {
			return err
		}
	} else {
		printSchemaDiff(a.stdout, diff)
	}

	if !diff.Compatible() {
		return &cli.ExitError{Code: 1}
	}
	return nil
}

// parseListing accepts either a full listing or a bare array of
// schema entries.
func parseListing(data []byte) (schemaListing, error) {
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		var defs []registry.SchemaDef
		if err := json.Unmarshal(trimmed, &defs); err != nil {
			return schemaListing{}, err
		}
		return schemaListing{Schemas: defs}, nil
	}
	var listing schemaListing
	if err := json.Unmarshal(trimmed, &listing); err != nil {
		return schemaListing{}, err
	}
	return listing, nil
}

func printSchemaDiff(w io.Writer, diff *version.SchemaDiff) {
	if diff.Compatible() {
		fmt.Fprintln(w, "schema sets are identical")
		return
	}
	for _, def := range diff.Missing {
		fmt.Fprintf(w, "- %s (%s): only in this build\n", def, def.Kind)
	}
	for _, def := range diff.Extra {
		fmt.Fprintf(w, "+ %s (%s): only in the other build\n", def, def.Kind)
	}
	for _, def := range diff.KindChanged {
		fmt.Fprintf(w, "! %s: kind differs (here %s)\n", def, def.Kind)
	}
}

func (a *app) versionCommand() *cli.Command {
	var short bool

	return &cli.Command{
		Name:    "version",
		Summary: "Print build information",
		Flags: func() *pflag.FlagSet {
			flagSet := a.flagSet("version")
			flagSet.BoolVar(&short, "short", false, "print only the version number")
			return flagSet
		},
		Run: func(args []string) error {
			if short {
				fmt.Fprintln(a.stdout, version.Short())
				return nil
			}
			fmt.Fprintf(a.stdout, "greentic-types %s\n", version.Full())
			return nil
		},
	}
}
