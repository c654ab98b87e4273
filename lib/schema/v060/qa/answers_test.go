// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package qa

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/greentic-ai/greentic-types/lib/codec"
	"github.com/greentic-ai/greentic-types/lib/i18n"
	"github.com/greentic-ai/greentic-types/lib/schema"
)

func TestValidateAnswersPolicies(t *testing.T) {
	// {_ "a": 1} as an indefinite-length map.
	indefinite := codec.Payload{0xbf, 0x61, 'a', 0x01, 0xff}
	canonical := codec.Payload{0xa1, 0x61, 'a', 0x01}

	result, err := ValidateAnswers(indefinite, PolicyOff)
	if err != nil || !bytes.Equal(result, indefinite) {
		t.Errorf("PolicyOff = %x, %v", result, err)
	}

	_, err = ValidateAnswers(indefinite, PolicyRequireCanonical)
	if !errors.Is(err, codec.ErrNonCanonicalEncoding) {
		t.Errorf("PolicyRequireCanonical error = %v", err)
	}

	result, err = ValidateAnswers(indefinite, PolicyCanonicalize)
	if err != nil || !bytes.Equal(result, canonical) {
		t.Errorf("PolicyCanonicalize = %x, %v", result, err)
	}

	text, _ := codec.NewPayload("string")
	if _, err := ValidateAnswers(text, PolicyOff); !errors.Is(err, ErrAnswersNotMap) {
		t.Errorf("non-map error = %v", err)
	}
	if _, err := ValidateAnswers(codec.Payload{0xa1}, PolicyOff); !errors.Is(err, codec.ErrMalformedEncoding) {
		t.Errorf("truncated error = %v", err)
	}
}

func TestCheckAnswers(t *testing.T) {
	tests := []struct {
		name    string
		answers codec.Value
		want    []string
	}{
		{"complete", codec.Map(
			codec.Entry{Key: "name", Value: codec.Text("demo")},
			codec.Entry{Key: "region", Value: codec.Text("us")},
			codec.Entry{Key: "replicas", Value: codec.Int(3)},
		), nil},
		{"region falls back to default", codec.Map(
			codec.Entry{Key: "name", Value: codec.Text("demo")},
		), nil},
		{"missing required", codec.Map(), []string{"QA_ANSWER_MISSING"}},
		{"wrong type", codec.Map(
			codec.Entry{Key: "name", Value: codec.Int(1)},
			codec.Entry{Key: "replicas", Value: codec.Text("3")},
		), []string{"QA_ANSWER_TYPE", "QA_ANSWER_TYPE"}},
		{"unknown option", codec.Map(
			codec.Entry{Key: "name", Value: codec.Text("demo")},
			codec.Entry{Key: "region", Value: codec.Text("apac")},
		), []string{"QA_ANSWER_UNKNOWN_OPTION"}},
		{"unknown answer", codec.Map(
			codec.Entry{Key: "name", Value: codec.Text("demo")},
			codec.Entry{Key: "color", Value: codec.Text("red")},
		), []string{"QA_ANSWER_UNKNOWN"}},
		{"not a map", codec.Array(), []string{"QA_ANSWERS_NOT_MAP"}},
	}

	spec := validSpec()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			report := spec.CheckAnswers(test.answers)
			if got := report.Codes(); !slices.Equal(got, test.want) && !(len(got) == 0 && len(test.want) == 0) {
				t.Errorf("codes = %v, want %v", got, test.want)
			}
		})
	}
}

func TestSetupContractValidate(t *testing.T) {
	answers, err := codec.NewPayload(map[string]any{"region": "eu"})
	if err != nil {
		t.Fatal(err)
	}
	valid := func() SetupContract {
		return SetupContract{
			QASpec: schema.Source{RefPackPath: "qa/setup.cbor"},
			Examples: []ExampleAnswers{
				{Title: i18n.NewText("demo.example.eu", "European install"), Answers: answers},
			},
			Outputs: []SetupOutput{
				{Kind: OutputConfigOnly},
				{Kind: OutputTemplateScaffold, TemplateRef: "templates/app", OutputLayout: "src/"},
			},
		}
	}

	tests := []struct {
		name    string
		modify  func(*SetupContract)
		wantErr string
	}{
		{"valid", func(*SetupContract) {}, ""},
		{"missing qa spec", func(c *SetupContract) { c.QASpec = schema.Source{} }, "qa_spec"},
		{"bad answers schema", func(c *SetupContract) { c.AnswersSchema = &schema.Source{RefURI: "relative"} }, "answers_schema"},
		{"example not a map", func(c *SetupContract) { c.Examples[0].Answers = codec.Payload{0x01} }, "examples[0]"},
		{"scaffold without template", func(c *SetupContract) { c.Outputs[1].TemplateRef = "" }, "outputs[1]"},
		{"config with template", func(c *SetupContract) { c.Outputs[0].TemplateRef = "x" }, "outputs[0]"},
		{"unknown output", func(c *SetupContract) { c.Outputs[0].Kind = "binary" }, "unknown kind"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			contract := valid()
			test.modify(&contract)
			err := contract.Validate()
			if test.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !bytes.Contains([]byte(err.Error()), []byte(test.wantErr)) {
				t.Errorf("error = %v, want substring %q", err, test.wantErr)
			}
		})
	}
}
