// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

// Package diagnostic defines severity-tagged findings and the reports
// that aggregate them. Structural validators and legacy adapters both
// report through these types, so a report can be persisted, wrapped
// in an envelope, and rendered by any consumer.
package diagnostic

import (
	"fmt"
	"slices"

	"github.com/greentic-ai/greentic-types/lib/codec"
	"github.com/greentic-ai/greentic-types/lib/i18n"
	"github.com/greentic-ai/greentic-types/lib/registry"
)

// Severity orders findings: Info < Warn < Error.
type Severity uint8

const (
	Info Severity = iota
	Warn
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("Severity(%d)", uint8(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	switch s {
	case Info, Warn, Error:
		return []byte(s.String()), nil
	}
	return nil, fmt.Errorf("diagnostic: unknown severity %d", uint8(s))
}

// UnmarshalText implements encoding.TextUnmarshaler. "warning" is
// accepted as a synonym for "warn".
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "info":
		*s = Info
	case "warn", "warning":
		*s = Warn
	case "error":
		*s = Error
	default:
		return fmt.Errorf("%w: unknown severity %q", codec.ErrTypeMismatch, text)
	}
	return nil
}

// Diagnostic is one finding. Code is a stable machine-readable
// identifier (e.g. "QA_DUPLICATE_QUESTION"); Message and Hint are
// localizable. Path locates the finding inside the validated document
// using dotted field names and bracketed indices ("questions[2].id").
type Diagnostic struct {
	Severity Severity     `json:"severity"`
	Code     string       `json:"code"`
	Message  i18n.Text    `json:"message"`
	Path     string       `json:"path,omitempty"`
	Hint     *i18n.Text   `json:"hint,omitempty"`
	Data     *codec.Value `json:"data,omitempty"`
}

// New returns a diagnostic whose message key is derived from the code:
// "diagnostic.<code>" with the formatted text as fallback.
func New(severity Severity, code, path, format string, args ...any) Diagnostic {
	return Diagnostic{
		Severity: severity,
		Code:     code,
		Message:  i18n.NewText("diagnostic."+code, fmt.Sprintf(format, args...)),
		Path:     path,
	}
}

// WithHint returns a copy of d carrying hint.
func (d Diagnostic) WithHint(hint i18n.Text) Diagnostic {
	d.Hint = &hint
	return d
}

// WithData returns a copy of d carrying structured detail.
func (d Diagnostic) WithData(data codec.Value) Diagnostic {
	d.Data = &data
	return d
}

func (d Diagnostic) String() string {
	location := ""
	if d.Path != "" {
		location = " at " + d.Path
	}
	return fmt.Sprintf("%s %s%s: %s", d.Severity, d.Code, location, d.Message.Resolve(nil))
}

// Counts tallies diagnostics by severity.
type Counts struct {
	Info  int `json:"info"`
	Warn  int `json:"warn"`
	Error int `json:"error"`
}

// Total returns the number of diagnostics counted.
func (c Counts) Total() int { return c.Info + c.Warn + c.Error }

// Report aggregates diagnostics about one subject, typically a pack or
// component identified by id and version. Diagnostics are only ever
// appended; contained diagnostics are never modified.
type Report struct {
	Subject        string       `json:"subject,omitempty"`
	SubjectVersion string       `json:"subject_version,omitempty"`
	Diagnostics    []Diagnostic `json:"diagnostics"`
}

// SchemaName implements the envelope body contract.
func (Report) SchemaName() string { return registry.DiagnosticReport }

// SchemaKind implements the envelope body contract.
func (Report) SchemaKind() string { return registry.KindDiagnostic }

// Push appends diagnostics to the report. Copies of a report never
// share appended storage.
func (r *Report) Push(diagnostics ...Diagnostic) {
	r.Diagnostics = append(slices.Clip(r.Diagnostics), diagnostics...)
}

// Infof appends an Info diagnostic.
func (r *Report) Infof(code, path, format string, args ...any) {
	r.Push(New(Info, code, path, format, args...))
}

// Warnf appends a Warn diagnostic.
func (r *Report) Warnf(code, path, format string, args ...any) {
	r.Push(New(Warn, code, path, format, args...))
}

// Errorf appends an Error diagnostic.
func (r *Report) Errorf(code, path, format string, args ...any) {
	r.Push(New(Error, code, path, format, args...))
}

// Merge appends every diagnostic of other.
func (r *Report) Merge(other Report) {
	r.Push(other.Diagnostics...)
}

// HasErrors reports whether any diagnostic has Error severity.
func (r Report) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Counts tallies the diagnostics by severity.
func (r Report) Counts() Counts {
	var counts Counts
	for _, d := range r.Diagnostics {
		switch d.Severity {
		case Info:
			counts.Info++
		case Warn:
			counts.Warn++
		case Error:
			counts.Error++
		}
	}
	return counts
}

// Max returns the highest severity in the report, and false if the
// report is empty.
func (r Report) Max() (Severity, bool) {
	if len(r.Diagnostics) == 0 {
		return Info, false
	}
	highest := Info
	for _, d := range r.Diagnostics {
		highest = max(highest, d.Severity)
	}
	return highest, true
}

// Filter returns the diagnostics at or above minimum, in order.
func (r Report) Filter(minimum Severity) []Diagnostic {
	var filtered []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity >= minimum {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// Codes returns the code of every diagnostic, in order.
func (r Report) Codes() []string {
	codes := make([]string, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		codes[i] = d.Code
	}
	return codes
}
