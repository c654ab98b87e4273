// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package adapter

import (
	"fmt"

	"github.com/greentic-ai/greentic-types/lib/codec"
	"github.com/greentic-ai/greentic-types/lib/diagnostic"
	"github.com/greentic-ai/greentic-types/lib/i18n"
	"github.com/greentic-ai/greentic-types/lib/registry"
	"github.com/greentic-ai/greentic-types/lib/schema/v060/component"
	"github.com/greentic-ai/greentic-types/lib/schema/v060/qa"
)

// ComponentQASource is the legacy schema read by [ComponentQA].
const ComponentQASource = "greentic.component.qa@0.5.0"

// Key segments for text synthesized from v0.5 component documents.
const (
	componentNamespace = "legacy.component"
	componentVersion   = "v0_5"
)

// Fields understood at each level of a v0.5 document.
var (
	documentFields = []string{"title", "description", "questions", "setup", "upgrade", "remove"}
	sectionFields  = []string{"title", "description", "questions"}
	questionFields = []string{"id", "label", "help", "error", "kind", "required", "default", "choices"}
	choiceFields   = []string{"value", "label"}
)

// ComponentQA migrates v0.5 component question documents to the
// v0.6.0 component QA spec.
//
// A v0.5 document looks like:
//
//	title: Setup
//	description: Connect the component
//	questions:
//	  - id: region
//	    label: Region
//	    kind: choice
//	    required: true
//	    default: eu
//	    choices:
//	      - {value: eu, label: Europe}
//	      - {value: us, label: United States}
//	upgrade:
//	  title: Upgrade
//	  questions: [...]
//
// Setup and default modes read the top-level questions, or a "setup"
// section when there are none. Upgrade and remove modes read the
// section of the same name; without one, the result has the document's
// title and description and no questions. A section is either an
// object with its own title, description and questions, or a bare list
// of questions.
type ComponentQA struct{}

func (ComponentQA) Name() string   { return "component-qa-v0_5" }
func (ComponentQA) Source() string { return ComponentQASource }
func (ComponentQA) Target() string { return registry.ComponentQA }

// Adapt implements [Adapter].
func (adapter ComponentQA) Adapt(mode qa.Mode, document []byte) (Result, error) {
	spec, report, err := AdaptComponentQA(mode, document)
	if err != nil {
		return Result{}, err
	}
	data, err := codec.Marshal(spec)
	if err != nil {
		return Result{}, &AdaptationError{Reason: "encoding " + adapter.Target(), Err: err}
	}
	return Result{Bytes: data, Report: report}, nil
}

// AdaptComponentQA maps a v0.5 component question document onto a
// typed spec for mode.
func AdaptComponentQA(mode qa.Mode, document []byte) (component.QaSpec, diagnostic.Report, error) {
	if !mode.IsKnown() {
		return component.QaSpec{}, diagnostic.Report{}, fmt.Errorf("adapter: unknown mode %q", mode)
	}
	tree, err := parseDocument(document)
	if err != nil {
		return component.QaSpec{}, diagnostic.Report{}, err
	}
	root, err := asObject(tree, "")
	if err != nil {
		return component.QaSpec{}, diagnostic.Report{}, err
	}

	m := componentMapper{report: diagnostic.Report{Subject: ComponentQASource}}
	spec, err := m.mapDocument(mode, root)
	if err != nil {
		return component.QaSpec{}, diagnostic.Report{}, err
	}

	// The output must be a valid spec. Anything the structural
	// validator rejects (duplicate option values, ids that cannot form
	// a translation key) fails the document.
	validation := spec.Validate()
	for _, finding := range validation.Diagnostics {
		if finding.Severity == diagnostic.Error {
			return component.QaSpec{}, diagnostic.Report{}, &AdaptationError{Path: finding.Path, Reason: finding.Message.FallbackText()}
		}
	}
	m.report.Merge(validation)
	return component.QaSpec{Spec: spec}, m.report, nil
}

type componentMapper struct {
	report diagnostic.Report
}

// section is the part of the document a mode reads.
type section struct {
	// name is the section's key segment; empty for the top level.
	name        string
	object      map[string]any
	questions   []any
	questionsAt string
}

func (m *componentMapper) mapDocument(mode qa.Mode, root map[string]any) (qa.Spec, error) {
	reportIgnored(&m.report, "", root, documentFields...)

	chosen, err := m.selectSection(mode, root)
	if err != nil {
		return qa.Spec{}, err
	}

	spec := qa.Spec{
		Mode:      mode,
		Questions: []qa.Question{},
		Defaults:  map[string]codec.Value{},
	}
	if spec.Title, spec.Description, err = m.heading(root, chosen); err != nil {
		return qa.Spec{}, err
	}

	firstIndex := make(map[string]int, len(chosen.questions))
	for index, raw := range chosen.questions {
		path := indexPath(chosen.questionsAt, index)
		question, err := m.mapQuestion(raw, path)
		if err != nil {
			return qa.Spec{}, err
		}
		if first, duplicate := firstIndex[question.ID]; duplicate {
			return qa.Spec{}, &AdaptationError{
				Path:   fieldPath(path, "id"),
				Reason: fmt.Sprintf("duplicate question id %q (first used at %s)", question.ID, indexPath(chosen.questionsAt, first)),
			}
		}
		firstIndex[question.ID] = index

		if question.Default != nil {
			spec.Defaults[question.ID] = *question.Default
		}
		spec.Questions = append(spec.Questions, question)
	}
	return spec, nil
}

func (m *componentMapper) selectSection(mode qa.Mode, root map[string]any) (section, error) {
	name := string(mode)
	if mode == qa.ModeSetup || mode == qa.ModeDefault {
		if _, ok := root["questions"]; ok {
			questions, err := asList(root["questions"], "questions")
			return section{questions: questions, questionsAt: "questions"}, err
		}
		name = string(qa.ModeSetup)
	}

	raw, ok := root[name]
	if !ok || raw == nil {
		return section{}, nil
	}
	if list, isList := raw.([]any); isList {
		return section{name: name, questions: list, questionsAt: name}, nil
	}
	object, err := asObject(raw, name)
	if err != nil {
		return section{}, &AdaptationError{Path: name, Reason: "a section must be an object or a list of questions"}
	}
	reportIgnored(&m.report, name, object, sectionFields...)
	questionsAt := fieldPath(name, "questions")
	questions, err := asList(object["questions"], questionsAt)
	if err != nil {
		return section{}, err
	}
	return section{name: name, object: object, questions: questions, questionsAt: questionsAt}, nil
}

// heading resolves the title and description. A section's own title
// or description takes precedence over the document's.
func (m *componentMapper) heading(root map[string]any, chosen section) (i18n.Text, *i18n.Text, error) {
	title, err := m.localized(root, chosen, "title")
	if err != nil {
		return i18n.Text{}, nil, err
	}
	if title == nil {
		m.report.Warnf("LEGACY_TITLE_MISSING", "title", "document has no title")
		keyOnly := i18n.KeyOnly(i18n.Key(componentNamespace, componentVersion, "", "title"))
		title = &keyOnly
	}
	description, err := m.localized(root, chosen, "description")
	if err != nil {
		return i18n.Text{}, nil, err
	}
	return *title, description, nil
}

// localized reads a heading field from the chosen section, falling
// back to the top level of the document.
func (m *componentMapper) localized(root map[string]any, chosen section, field string) (*i18n.Text, error) {
	if chosen.object != nil {
		literal, present, err := stringField(chosen.object, chosen.name, field)
		if err != nil {
			return nil, err
		}
		if present {
			localized := i18n.NewText(i18n.Key(componentNamespace, componentVersion, chosen.name, field), literal)
			return &localized, nil
		}
	}
	literal, present, err := stringField(root, "", field)
	if err != nil || !present {
		return nil, err
	}
	localized := i18n.NewText(i18n.Key(componentNamespace, componentVersion, "", field), literal)
	return &localized, nil
}

func (m *componentMapper) mapQuestion(raw any, path string) (qa.Question, error) {
	object, err := asObject(raw, path)
	if err != nil {
		return qa.Question{}, err
	}
	reportIgnored(&m.report, path, object, questionFields...)

	id, present, err := stringField(object, path, "id")
	if err != nil {
		return qa.Question{}, err
	}
	if !present || id == "" {
		return qa.Question{}, &AdaptationError{Path: fieldPath(path, "id"), Reason: "question has no id"}
	}
	key := func(field string, variant ...string) string {
		return i18n.Key(componentNamespace, componentVersion, id, field, variant...)
	}

	question := qa.Question{ID: id}

	label, present, err := stringField(object, path, "label")
	if err != nil {
		return qa.Question{}, err
	}
	if !present {
		m.report.Warnf("LEGACY_LABEL_MISSING", fieldPath(path, "label"), "question %q has no label", id)
	}
	question.Label = text(key("label"), label, present)

	for _, field := range []string{"help", "error"} {
		literal, present, err := stringField(object, path, field)
		if err != nil {
			return qa.Question{}, err
		}
		if !present {
			continue
		}
		localized := i18n.NewText(key(field), literal)
		if field == "help" {
			question.Help = &localized
		} else {
			question.Error = &localized
		}
	}

	if question.Required, err = boolField(object, path, "required"); err != nil {
		return qa.Question{}, err
	}
	if question.Kind, err = m.mapKind(object, path, id); err != nil {
		return qa.Question{}, err
	}

	if raw := object["default"]; raw != nil {
		value, err := codec.FromAny(raw)
		if err != nil {
			return qa.Question{}, &AdaptationError{Path: fieldPath(path, "default"), Reason: "default cannot be represented", Err: err}
		}
		question.Default = &value
	}
	return question, nil
}

func (m *componentMapper) mapKind(object map[string]any, path, id string) (qa.QuestionKind, error) {
	kindName, present, err := stringField(object, path, "kind")
	if err != nil {
		return qa.QuestionKind{}, err
	}
	_, hasChoices := object["choices"]
	if !present {
		kindName = string(qa.KindText)
		if hasChoices {
			kindName = string(qa.KindChoice)
		}
		m.report.Infof("LEGACY_KIND_INFERRED", fieldPath(path, "kind"), "question %q has no kind; using %s", id, kindName)
	}

	switch qa.KindType(kindName) {
	case qa.KindText, qa.KindNumber, qa.KindBool:
		if hasChoices {
			m.report.Warnf("LEGACY_CHOICES_IGNORED", fieldPath(path, "choices"), "question %q is a %s question; its choices were ignored", id, kindName)
		}
		return qa.QuestionKind{Type: qa.KindType(kindName)}, nil
	case qa.KindChoice:
	default:
		return qa.QuestionKind{}, &AdaptationError{Path: fieldPath(path, "kind"), Reason: fmt.Sprintf("unknown question kind %q", kindName)}
	}

	choicesPath := fieldPath(path, "choices")
	choices, err := asList(object["choices"], choicesPath)
	if err != nil {
		return qa.QuestionKind{}, err
	}
	options := make([]qa.ChoiceOption, 0, len(choices))
	for index, raw := range choices {
		optionPath := indexPath(choicesPath, index)
		choice, err := asObject(raw, optionPath)
		if err != nil {
			return qa.QuestionKind{}, err
		}
		reportIgnored(&m.report, optionPath, choice, choiceFields...)

		if choice["value"] == nil {
			return qa.QuestionKind{}, &AdaptationError{Path: fieldPath(optionPath, "value"), Reason: "choice has no value"}
		}
		value, err := scalarText(choice["value"], fieldPath(optionPath, "value"))
		if err != nil {
			return qa.QuestionKind{}, err
		}
		if value == "" {
			return qa.QuestionKind{}, &AdaptationError{Path: fieldPath(optionPath, "value"), Reason: "choice has no value"}
		}

		label, present, err := stringField(choice, optionPath, "label")
		if err != nil {
			return qa.QuestionKind{}, err
		}
		if !present {
			m.report.Warnf("LEGACY_LABEL_MISSING", fieldPath(optionPath, "label"), "choice %q of question %q has no label", value, id)
		}
		options = append(options, qa.ChoiceOption{
			Value: value,
			Label: text(i18n.Key(componentNamespace, componentVersion, id, "option", value), label, present),
		})
	}
	return qa.Choice(options...), nil
}
