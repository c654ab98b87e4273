// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

// Package qa defines the v0.6.0 question-and-answer specification
// shared by pack and component descriptors. A [Spec] is the ordered,
// localizable list of questions a host asks when setting up,
// upgrading, or removing a pack or component, together with default
// answers.
package qa

import (
	"fmt"
	"slices"

	"github.com/greentic-ai/greentic-types/lib/codec"
	"github.com/greentic-ai/greentic-types/lib/diagnostic"
	"github.com/greentic-ai/greentic-types/lib/i18n"
)

// Mode is the lifecycle operation a spec is asked for.
type Mode string

const (
	// ModeDefault is the spec used when no operation is specified.
	ModeDefault Mode = "default"

	// ModeSetup is asked when the pack or component is first
	// installed.
	ModeSetup Mode = "setup"

	// ModeUpgrade is asked when moving an installed instance to a
	// newer release.
	ModeUpgrade Mode = "upgrade"

	// ModeRemove is asked before an instance is uninstalled.
	ModeRemove Mode = "remove"
)

// Modes lists every mode in declaration order.
var Modes = []Mode{ModeDefault, ModeSetup, ModeUpgrade, ModeRemove}

// ParseMode returns the mode named by s.
func ParseMode(s string) (Mode, error) {
	mode := Mode(s)
	if !mode.IsKnown() {
		return "", fmt.Errorf("qa: unknown mode %q (expected default, setup, upgrade, or remove)", s)
	}
	return mode, nil
}

// IsKnown reports whether m is one of the defined modes.
func (m Mode) IsKnown() bool {
	return slices.Contains(Modes, m)
}

// Spec is a localizable question list for one [Mode].
type Spec struct {
	// Mode is the operation this spec is asked for.
	Mode Mode `json:"mode"`

	// Title names the question flow.
	Title i18n.Text `json:"title"`

	// Description is an optional introduction shown before the
	// first question.
	Description *i18n.Text `json:"description"`

	// Questions are asked in slice order. The order is part of the
	// contract and survives encoding unchanged.
	Questions []Question `json:"questions"`

	// Defaults maps question ids to default answers.
	Defaults map[string]codec.Value `json:"defaults"`
}

// Question is one prompt.
type Question struct {
	// ID is unique within the spec and keys the answer map.
	ID string `json:"id"`

	Label i18n.Text  `json:"label"`
	Help  *i18n.Text `json:"help"`

	// Error is shown when an answer fails validation.
	Error *i18n.Text `json:"error"`

	Kind     QuestionKind `json:"kind"`
	Required bool         `json:"required"`

	// Default is the answer assumed when none is given. A null
	// default is the same as no default.
	Default *codec.Value `json:"default"`
}

// Question returns the question with the given id.
func (s Spec) Question(id string) (Question, bool) {
	for _, question := range s.Questions {
		if question.ID == id {
			return question, true
		}
	}
	return Question{}, false
}

// I18nKeys returns every translation key the spec references: title,
// description, each question's label, help and error text, and each
// choice option label. Keys are deduplicated and sorted.
func (s Spec) I18nKeys() []string {
	keys := []string{s.Title.Key}
	if s.Description != nil {
		keys = append(keys, s.Description.Key)
	}
	for _, question := range s.Questions {
		keys = append(keys, question.Label.Key)
		if question.Help != nil {
			keys = append(keys, question.Help.Key)
		}
		if question.Error != nil {
			keys = append(keys, question.Error.Key)
		}
		for _, option := range question.Kind.Options {
			keys = append(keys, option.Label.Key)
		}
	}
	slices.Sort(keys)
	return slices.Compact(keys)
}

// Validate checks the structure of the spec. It never fails fast: every
// finding is reported.
func (s Spec) Validate() diagnostic.Report {
	var report diagnostic.Report

	if !s.Mode.IsKnown() {
		report.Errorf("QA_UNKNOWN_MODE", "mode", "mode %q is not one of default, setup, upgrade, remove", s.Mode)
	}
	validateText(&report, "title", s.Title)
	if s.Description != nil {
		validateText(&report, "description", *s.Description)
	}

	seen := make(map[string]int, len(s.Questions))
	for index, question := range s.Questions {
		path := fmt.Sprintf("questions[%d]", index)
		if question.ID == "" {
			report.Errorf("QA_QUESTION_ID_EMPTY", path+".id", "question id is empty")
		} else if first, duplicate := seen[question.ID]; duplicate {
			report.Errorf("QA_DUPLICATE_QUESTION", path+".id", "question id %q already used by questions[%d]", question.ID, first)
		} else {
			seen[question.ID] = index
		}

		validateText(&report, path+".label", question.Label)
		if question.Help != nil {
			validateText(&report, path+".help", *question.Help)
		}
		if question.Error != nil {
			validateText(&report, path+".error", *question.Error)
		}
		question.Kind.validate(&report, path+".kind")

		if question.Default != nil && !question.Default.IsNull() && !question.Kind.Accepts(*question.Default) {
			report.Warnf("QA_DEFAULT_KIND_MISMATCH", path+".default", "default %s does not fit a %s question", question.Default, question.Kind.Type)
		}
	}

	for _, id := range sortedKeys(s.Defaults) {
		question, ok := s.Question(id)
		if !ok {
			report.Warnf("QA_DEFAULT_UNKNOWN_QUESTION", "defaults."+id, "default given for unknown question %q", id)
			continue
		}
		value := s.Defaults[id]
		if !value.IsNull() && !question.Kind.Accepts(value) {
			report.Warnf("QA_DEFAULT_KIND_MISMATCH", "defaults."+id, "default %s does not fit a %s question", value, question.Kind.Type)
		}
	}

	return report
}

func validateText(report *diagnostic.Report, path string, text i18n.Text) {
	if err := text.Validate(); err != nil {
		report.Errorf("I18N_INVALID_KEY", path, "%v", err)
	}
}

func sortedKeys(m map[string]codec.Value) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, codec.CompareKeys)
	return keys
}
