// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package qa

import (
	"errors"
	"fmt"

	"github.com/greentic-ai/greentic-types/lib/codec"
	"github.com/greentic-ai/greentic-types/lib/diagnostic"
)

// ErrAnswersNotMap is returned when an answer document is not a map.
var ErrAnswersNotMap = errors.New("qa: answers must be a CBOR map")

// CanonicalPolicy controls how [ValidateAnswers] treats the encoding
// of an answer document.
type CanonicalPolicy uint8

const (
	// PolicyOff accepts any well-formed encoding and returns the
	// input unchanged.
	PolicyOff CanonicalPolicy = iota

	// PolicyRequireCanonical rejects input that is not canonical.
	PolicyRequireCanonical

	// PolicyCanonicalize accepts any well-formed encoding and returns
	// its canonical form.
	PolicyCanonicalize
)

// ValidateAnswers checks that answers is a well-formed CBOR map and
// applies policy to its encoding. The returned payload is the input,
// or its canonical form under PolicyCanonicalize.
func ValidateAnswers(answers codec.Payload, policy CanonicalPolicy) (codec.Payload, error) {
	value, err := answers.Decode()
	if err != nil {
		return nil, err
	}
	if value.Kind() != codec.KindMap {
		return nil, fmt.Errorf("%w, got %s", ErrAnswersNotMap, value.Kind())
	}

	switch policy {
	case PolicyOff:
		return answers, nil
	case PolicyRequireCanonical:
		if err := answers.EnsureCanonical(); err != nil {
			return nil, err
		}
		return answers, nil
	case PolicyCanonicalize:
		return answers.Canonicalize()
	}
	return nil, fmt.Errorf("qa: unknown canonical policy %d", policy)
}

// CheckAnswers reports how well answers fits the spec: required
// questions without an answer or default, answers of the wrong type,
// choice answers outside the options, and answers to unknown
// questions.
func (s Spec) CheckAnswers(answers codec.Value) diagnostic.Report {
	var report diagnostic.Report
	if answers.Kind() != codec.KindMap {
		report.Errorf("QA_ANSWERS_NOT_MAP", "", "answers must be a map, got %s", answers.Kind())
		return report
	}

	for _, question := range s.Questions {
		answer, ok := answers.Get(question.ID)
		if !ok || answer.IsNull() {
			if question.Required && !s.hasDefault(question) {
				report.Errorf("QA_ANSWER_MISSING", question.ID, "required question %q has no answer", question.ID)
			}
			continue
		}
		if question.Kind.Accepts(answer) {
			continue
		}
		if question.Kind.Type == KindChoice && answer.Kind() == codec.KindText {
			report.Errorf("QA_ANSWER_UNKNOWN_OPTION", question.ID, "answer %s is not an option of %q", answer, question.ID)
			continue
		}
		report.Errorf("QA_ANSWER_TYPE", question.ID, "answer %s does not fit a %s question", answer, question.Kind.Type)
	}

	for _, key := range answers.Keys() {
		if _, ok := s.Question(key); !ok {
			report.Warnf("QA_ANSWER_UNKNOWN", key, "answer given for unknown question %q", key)
		}
	}
	return report
}

func (s Spec) hasDefault(question Question) bool {
	if question.Default != nil && !question.Default.IsNull() {
		return true
	}
	value, ok := s.Defaults[question.ID]
	return ok && !value.IsNull()
}
