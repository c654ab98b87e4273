// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/greentic-ai/greentic-types/cmd/greentic-types/cli"
	"github.com/greentic-ai/greentic-types/lib/config"
	"github.com/greentic-ai/greentic-types/lib/diagnostic"
)

// app carries the process streams and the flags shared by every leaf
// command.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
}

func (a *app) root() *cli.Command {
	return &cli.Command{
		Name:       "greentic-types",
		Summary:    "Inspect, adapt, and validate greentic descriptors",
		HelpOutput: a.stderr,
		Subcommands: []*cli.Command{
			a.adaptCommand(),
			a.validateCommand(),
			a.decodeCommand(),
			a.envelopeCommand(),
			a.schemasCommand(),
			a.versionCommand(),
		},
	}
}

// flagSet returns a flag set with --config already bound.
func (a *app) flagSet(name string) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.StringVar(&a.configPath, "config", "", "config file (default $"+config.EnvVar+", else built-in defaults)")
	return flagSet
}

// loadConfig resolves the configuration for one command invocation.
func (a *app) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case a.configPath != "":
		cfg, err = config.LoadFile(a.configPath)
	case os.Getenv(config.EnvVar) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// logReport logs every diagnostic at the level matching its severity.
func logReport(logger *slog.Logger, document string, report diagnostic.Report) {
	for _, d := range report.Diagnostics {
		level := slog.LevelInfo
		switch d.Severity {
		case diagnostic.Warn:
			level = slog.LevelWarn
		case diagnostic.Error:
			level = slog.LevelError
		}
		logger.Log(context.Background(), level, d.Message.Resolve(nil),
			"document", document,
			"code", d.Code,
			"path", d.Path,
		)
	}
}

func printReport(w io.Writer, report diagnostic.Report) {
	for _, d := range report.Diagnostics {
		fmt.Fprintln(w, d.String())
	}
	counts := report.Counts()
	fmt.Fprintf(w, "%d error(s), %d warning(s), %d info\n", counts.Error, counts.Warn, counts.Info)
}

// oneInput returns the single optional positional argument.
func oneInput(command string, args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", nil
	case 1:
		return args[0], nil
	}
	return "", fmt.Errorf("%s takes at most one input file, got %d arguments", command, len(args))
}
