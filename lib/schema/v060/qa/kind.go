// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package qa

import (
	"fmt"

	"github.com/greentic-ai/greentic-types/lib/codec"
	"github.com/greentic-ai/greentic-types/lib/diagnostic"
	"github.com/greentic-ai/greentic-types/lib/i18n"
)

// KindType names the answer type of a question.
type KindType string

const (
	KindText   KindType = "text"
	KindChoice KindType = "choice"
	KindNumber KindType = "number"
	KindBool   KindType = "bool"
)

// QuestionKind is the answer type of a question. It encodes as a map
// tagged by "type"; choice questions also carry "options", which is
// present even when empty. Other kinds never carry options.
type QuestionKind struct {
	Type    KindType
	Options []ChoiceOption
}

// ChoiceOption is one allowed answer of a choice question.
type ChoiceOption struct {
	Value string    `json:"value"`
	Label i18n.Text `json:"label"`
}

// Text returns the kind of a free-text question.
func Text() QuestionKind { return QuestionKind{Type: KindText} }

// Number returns the kind of a numeric question.
func Number() QuestionKind { return QuestionKind{Type: KindNumber} }

// Bool returns the kind of a yes/no question.
func Bool() QuestionKind { return QuestionKind{Type: KindBool} }

// Choice returns the kind of a question answered by one of options.
func Choice(options ...ChoiceOption) QuestionKind {
	return QuestionKind{Type: KindChoice, Options: options}
}

type choiceKindWire struct {
	Type    KindType       `json:"type"`
	Options []ChoiceOption `json:"options"`
}

type plainKindWire struct {
	Type KindType `json:"type"`
}

// MarshalCBOR implements cbor.Marshaler.
func (k QuestionKind) MarshalCBOR() ([]byte, error) {
	if k.Type == KindChoice {
		return codec.Marshal(choiceKindWire{Type: k.Type, Options: k.Options})
	}
	if len(k.Options) > 0 {
		return nil, fmt.Errorf("qa: %s question cannot carry choice options", k.Type)
	}
	return codec.Marshal(plainKindWire{Type: k.Type})
}

// UnmarshalCBOR implements cbor.Unmarshaler. Options on a non-choice
// kind are ignored like any other unknown field.
func (k *QuestionKind) UnmarshalCBOR(data []byte) error {
	var wire choiceKindWire
	if err := codec.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.Type == "" {
		return fmt.Errorf("%w: question kind has no type", codec.ErrTypeMismatch)
	}
	*k = QuestionKind{Type: wire.Type}
	if wire.Type == KindChoice {
		k.Options = wire.Options
	}
	return nil
}

// Option returns the option with the given value.
func (k QuestionKind) Option(value string) (ChoiceOption, bool) {
	for _, option := range k.Options {
		if option.Value == value {
			return option, true
		}
	}
	return ChoiceOption{}, false
}

// Accepts reports whether value is a well-typed answer for the kind.
// Choice answers must name one of the options.
func (k QuestionKind) Accepts(value codec.Value) bool {
	switch k.Type {
	case KindText:
		return value.Kind() == codec.KindText
	case KindNumber:
		return value.Kind() == codec.KindInt || value.Kind() == codec.KindFloat
	case KindBool:
		return value.Kind() == codec.KindBool
	case KindChoice:
		text, ok := value.AsText()
		if !ok {
			return false
		}
		_, ok = k.Option(text)
		return ok
	}
	return false
}

func (k QuestionKind) validate(report *diagnostic.Report, path string) {
	switch k.Type {
	case KindText, KindNumber, KindBool:
		return
	case KindChoice:
	default:
		report.Errorf("QA_UNKNOWN_KIND", path+".type", "question kind %q is not one of text, choice, number, bool", k.Type)
		return
	}

	if len(k.Options) == 0 {
		report.Warnf("QA_CHOICE_WITHOUT_OPTIONS", path+".options", "choice question has no options")
	}
	seen := make(map[string]bool, len(k.Options))
	for index, option := range k.Options {
		optionPath := fmt.Sprintf("%s.options[%d]", path, index)
		if option.Value == "" {
			report.Errorf("QA_OPTION_VALUE_EMPTY", optionPath+".value", "choice option value is empty")
		} else if seen[option.Value] {
			report.Errorf("QA_DUPLICATE_OPTION", optionPath+".value", "choice option %q listed twice", option.Value)
		}
		seen[option.Value] = true
		validateText(report, optionPath+".label", option.Label)
	}
}
