// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package qa

import (
	"errors"
	"fmt"

	"github.com/greentic-ai/greentic-types/lib/codec"
	"github.com/greentic-ai/greentic-types/lib/i18n"
	"github.com/greentic-ai/greentic-types/lib/schema"
)

// SetupContract describes how a component is configured: where its
// question spec lives, the schema its answers must satisfy, worked
// examples, and what setup produces.
type SetupContract struct {
	QASpec        schema.Source    `json:"qa_spec"`
	AnswersSchema *schema.Source   `json:"answers_schema"`
	Examples      []ExampleAnswers `json:"examples"`
	Outputs       []SetupOutput    `json:"outputs"`
}

// ExampleAnswers is a named, complete answer document.
type ExampleAnswers struct {
	Title   i18n.Text     `json:"title"`
	Answers codec.Payload `json:"answers_cbor"`
	Notes   *i18n.Text    `json:"notes"`
}

// OutputKind names what a setup run produces.
type OutputKind string

const (
	// OutputConfigOnly means setup only produces the answer document.
	OutputConfigOnly OutputKind = "config_only"

	// OutputTemplateScaffold means setup renders a template into the
	// workspace.
	OutputTemplateScaffold OutputKind = "template_scaffold"
)

// SetupOutput is one artifact of a setup run. TemplateRef and
// OutputLayout are set only for template scaffolds.
type SetupOutput struct {
	Kind         OutputKind `json:"kind"`
	TemplateRef  string     `json:"template_ref,omitempty"`
	OutputLayout string     `json:"output_layout,omitempty"`
}

// Validate checks the sources, that each example is a canonical
// answer map, and that outputs are complete.
func (c SetupContract) Validate() error {
	var errs []error
	if err := c.QASpec.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("qa_spec: %w", err))
	}
	if c.AnswersSchema != nil {
		if err := c.AnswersSchema.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("answers_schema: %w", err))
		}
	}
	for index, example := range c.Examples {
		if _, err := ValidateAnswers(example.Answers, PolicyRequireCanonical); err != nil {
			errs = append(errs, fmt.Errorf("examples[%d]: %w", index, err))
		}
	}
	for index, output := range c.Outputs {
		switch output.Kind {
		case OutputConfigOnly:
			if output.TemplateRef != "" || output.OutputLayout != "" {
				errs = append(errs, fmt.Errorf("outputs[%d]: config_only output cannot name a template", index))
			}
		case OutputTemplateScaffold:
			if output.TemplateRef == "" || output.OutputLayout == "" {
				errs = append(errs, fmt.Errorf("outputs[%d]: template_scaffold needs template_ref and output_layout", index))
			}
		default:
			errs = append(errs, fmt.Errorf("outputs[%d]: unknown kind %q", index, output.Kind))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("qa: invalid setup contract: %w", errors.Join(errs...))
	}
	return nil
}
