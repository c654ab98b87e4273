// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/greentic-ai/greentic-types/lib/codec"
	"github.com/greentic-ai/greentic-types/lib/schema/v060/qa"
)

// EnvVar names the environment variable read by [Load].
const EnvVar = "GREENTIC_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Config is the master configuration for the harness.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment" toml:"environment"`

	// Codec configures how envelopes and fixtures are decoded.
	Codec CodecConfig `yaml:"codec" toml:"codec"`

	// Log configures the slog handler.
	Log LogConfig `yaml:"log" toml:"log"`

	// Adapter configures legacy document adaptation.
	Adapter AdapterConfig `yaml:"adapter" toml:"adapter"`

	// Paths configures directory locations.
	Paths PathsConfig `yaml:"paths" toml:"paths"`

	// Per-environment overrides, applied after the base config is
	// loaded.
	Development *ConfigOverrides `yaml:"development,omitempty" toml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty" toml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty" toml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Codec   *CodecConfig      `yaml:"codec,omitempty" toml:"codec,omitempty"`
	Log     *LogOverrides     `yaml:"log,omitempty" toml:"log,omitempty"`
	Adapter *AdapterOverrides `yaml:"adapter,omitempty" toml:"adapter,omitempty"`
	Paths   *PathsConfig      `yaml:"paths,omitempty" toml:"paths,omitempty"`
}

// CodecConfig configures decoding.
type CodecConfig struct {
	// DecodeMode is "lenient" or "strict". Strict decoding rejects
	// valid but non-canonical input.
	// Default: lenient (development), strict (production)
	DecodeMode codec.Mode `yaml:"decode_mode" toml:"decode_mode"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is the minimum level logged: debug, info, warn, error.
	// Default: info
	Level slog.Level `yaml:"level" toml:"level"`

	// Format is "text" or "json".
	// Default: text (development), json (production)
	Format string `yaml:"format" toml:"format"`
}

// LogOverrides is [LogConfig] with every field optional.
type LogOverrides struct {
	Level  *slog.Level `yaml:"level,omitempty" toml:"level,omitempty"`
	Format string      `yaml:"format,omitempty" toml:"format,omitempty"`
}

// AdapterConfig configures legacy adaptation.
type AdapterConfig struct {
	// Mode is the QA mode used when none is given on the command
	// line.
	// Default: setup
	Mode qa.Mode `yaml:"mode" toml:"mode"`

	// FailFast stops a batch at the first document that cannot be
	// adapted. Documents already adapted are still written.
	// Default: false (development), true (production)
	FailFast bool `yaml:"fail_fast" toml:"fail_fast"`
}

// AdapterOverrides is [AdapterConfig] with every field optional.
type AdapterOverrides struct {
	Mode     qa.Mode `yaml:"mode,omitempty" toml:"mode,omitempty"`
	FailFast *bool   `yaml:"fail_fast,omitempty" toml:"fail_fast,omitempty"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// Root is the base directory for harness data.
	Root string `yaml:"root" toml:"root"`

	// Fixtures is where committed canonical fixtures are read from.
	// Relative fixture names on the command line resolve against it.
	Fixtures string `yaml:"fixtures" toml:"fixtures"`

	// Output is where adapted documents are written when no explicit
	// output path is given.
	Output string `yaml:"output" toml:"output"`
}

// Default returns the default configuration.
// These defaults are used as a base before loading the config file.
// They exist primarily to ensure all fields have sensible zero-values,
// not as a fallback - the config file is required.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultRoot := filepath.Join(homeDir, ".cache", "greentic-types")

	return &Config{
		Environment: Development,
		Codec:       CodecConfig{DecodeMode: codec.Lenient},
		Log:         LogConfig{Level: slog.LevelInfo, Format: "text"},
		Adapter:     AdapterConfig{Mode: qa.ModeSetup},
		Paths: PathsConfig{
			Root:     defaultRoot,
			Fixtures: filepath.Join(defaultRoot, "fixtures"),
			Output:   filepath.Join(defaultRoot, "out"),
		},
	}
}

// Load loads configuration from the GREENTIC_CONFIG environment
// variable.
//
// There are no fallbacks or defaults - if GREENTIC_CONFIG is not set,
// this fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvVar)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your greentic-types config file, or use --config flag", EnvVar)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
//
// The config file is the single source of truth. Environment variables
// do not override config values. The only expansion performed is
// ${HOME} and similar path variables for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		meta, err := toml.Decode(string(data), c)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("parsing %s: unknown keys %v", path, undecoded)
		}
		return nil
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
		// Production defaults: strict decoding, machine-readable logs.
		if overrides == nil {
			failFast := true
			overrides = &ConfigOverrides{
				Codec:   &CodecConfig{DecodeMode: codec.Strict},
				Log:     &LogOverrides{Format: "json"},
				Adapter: &AdapterOverrides{FailFast: &failFast},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Codec != nil {
		// The zero mode is lenient, so an override always applies.
		c.Codec.DecodeMode = overrides.Codec.DecodeMode
	}

	if overrides.Log != nil {
		if overrides.Log.Level != nil {
			c.Log.Level = *overrides.Log.Level
		}
		if overrides.Log.Format != "" {
			c.Log.Format = overrides.Log.Format
		}
	}

	if overrides.Adapter != nil {
		if overrides.Adapter.Mode != "" {
			c.Adapter.Mode = overrides.Adapter.Mode
		}
		if overrides.Adapter.FailFast != nil {
			c.Adapter.FailFast = *overrides.Adapter.FailFast
		}
	}

	if overrides.Paths != nil {
		if overrides.Paths.Root != "" {
			c.Paths.Root = overrides.Paths.Root
		}
		if overrides.Paths.Fixtures != "" {
			c.Paths.Fixtures = overrides.Paths.Fixtures
		}
		if overrides.Paths.Output != "" {
			c.Paths.Output = overrides.Paths.Output
		}
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"GREENTIC_ROOT": c.Paths.Root,
		"HOME":          os.Getenv("HOME"),
	}

	c.Paths.Root = expandVars(c.Paths.Root, vars)
	vars["GREENTIC_ROOT"] = c.Paths.Root // Update for dependent paths.

	c.Paths.Fixtures = expandVars(c.Paths.Fixtures, vars)
	c.Paths.Output = expandVars(c.Paths.Output, vars)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Codec.DecodeMode != codec.Lenient && c.Codec.DecodeMode != codec.Strict {
		errs = append(errs, fmt.Errorf("codec.decode_mode must be lenient or strict"))
	}

	formats := []string{"text", "json"}
	if !slices.Contains(formats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of: %v", formats))
	}

	if !c.Adapter.Mode.IsKnown() {
		errs = append(errs, fmt.Errorf("adapter.mode must be one of: %v", qa.Modes))
	}

	if c.Paths.Root == "" {
		errs = append(errs, fmt.Errorf("paths.root is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// FixturePath resolves a fixture name. Absolute paths and paths that
// exist relative to the working directory are returned unchanged;
// anything else is joined onto Paths.Fixtures.
func (c *Config) FixturePath(name string) string {
	if filepath.IsAbs(name) || c.Paths.Fixtures == "" {
		return name
	}
	if _, err := os.Stat(name); err == nil {
		return name
	}
	return filepath.Join(c.Paths.Fixtures, name)
}

// EnsurePaths creates the output directory if it doesn't exist.
func (c *Config) EnsurePaths() error {
	if c.Paths.Output == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.Output, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", c.Paths.Output, err)
	}
	return nil
}

// Logger builds the slog logger described by the config, writing to w.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	options := &slog.HandlerOptions{Level: c.Log.Level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, options))
	}
	return slog.New(slog.NewTextHandler(w, options))
}
