// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package adapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/greentic-ai/greentic-types/lib/diagnostic"
)

// parseDocument reads a legacy document. JSON is tried first, with
// comments and trailing commas allowed; anything that is not JSON is
// read as YAML. Numbers from JSON stay as json.Number so integers keep
// their exact value.
func parseDocument(document []byte) (any, error) {
	if len(bytes.TrimSpace(document)) == 0 {
		return nil, &AdaptationError{Reason: "document is empty"}
	}

	stripped := jsonc.ToJSON(document)
	if json.Valid(stripped) {
		decoder := json.NewDecoder(bytes.NewReader(stripped))
		decoder.UseNumber()
		var tree any
		if err := decoder.Decode(&tree); err != nil {
			return nil, &AdaptationError{Reason: "parsing JSON", Err: err}
		}
		return tree, nil
	}

	var tree any
	if err := yaml.Unmarshal(document, &tree); err != nil {
		return nil, &AdaptationError{Reason: "document is neither JSON nor YAML", Err: err}
	}
	return tree, nil
}

func fieldPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func indexPath(parent string, index int) string {
	return fmt.Sprintf("%s[%d]", parent, index)
}

// asObject returns value as a string-keyed object.
func asObject(value any, path string) (map[string]any, error) {
	switch object := value.(type) {
	case map[string]any:
		return object, nil
	case map[any]any:
		converted := make(map[string]any, len(object))
		for key, item := range object {
			name, ok := key.(string)
			if !ok {
				return nil, &AdaptationError{Path: path, Reason: fmt.Sprintf("object key %v is not a string", key)}
			}
			converted[name] = item
		}
		return converted, nil
	default:
		return nil, &AdaptationError{Path: path, Reason: fmt.Sprintf("expected an object, found %s", describe(value))}
	}
}

// asList returns value as a list. A missing or null value is an empty
// list.
func asList(value any, path string) ([]any, error) {
	switch list := value.(type) {
	case nil:
		return nil, nil
	case []any:
		return list, nil
	default:
		return nil, &AdaptationError{Path: path, Reason: fmt.Sprintf("expected a list, found %s", describe(value))}
	}
}

// stringField returns a string field. Absent and null fields report
// present=false.
func stringField(object map[string]any, parent, name string) (value string, present bool, err error) {
	raw, ok := object[name]
	if !ok || raw == nil {
		return "", false, nil
	}
	value, ok = raw.(string)
	if !ok {
		return "", false, &AdaptationError{Path: fieldPath(parent, name), Reason: fmt.Sprintf("expected a string, found %s", describe(raw))}
	}
	return value, true, nil
}

func boolField(object map[string]any, parent, name string) (bool, error) {
	raw, ok := object[name]
	if !ok || raw == nil {
		return false, nil
	}
	value, ok := raw.(bool)
	if !ok {
		return false, &AdaptationError{Path: fieldPath(parent, name), Reason: fmt.Sprintf("expected true or false, found %s", describe(raw))}
	}
	return value, nil
}

// scalarText renders a legacy scalar as the string a newer schema
// expects. Choice values were free scalars in older documents.
func scalarText(value any, path string) (string, error) {
	switch scalar := value.(type) {
	case string:
		return scalar, nil
	case json.Number:
		return scalar.String(), nil
	case bool:
		return strconv.FormatBool(scalar), nil
	case int:
		return strconv.Itoa(scalar), nil
	case int64:
		return strconv.FormatInt(scalar, 10), nil
	case uint64:
		return strconv.FormatUint(scalar, 10), nil
	case float64:
		return strconv.FormatFloat(scalar, 'g', -1, 64), nil
	default:
		return "", &AdaptationError{Path: path, Reason: fmt.Sprintf("expected a scalar, found %s", describe(value))}
	}
}

// reportIgnored records one Info diagnostic per field of object that
// is not in known, in sorted order.
func reportIgnored(report *diagnostic.Report, parent string, object map[string]any, known ...string) {
	for _, name := range slices.Sorted(maps.Keys(object)) {
		if slices.Contains(known, name) {
			continue
		}
		report.Infof("LEGACY_FIELD_IGNORED", fieldPath(parent, name), "field %q is not part of the legacy schema and was ignored", name)
	}
}

func describe(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case json.Number, int, int64, uint64, float64:
		return "a number"
	case []any:
		return "a list"
	case map[string]any, map[any]any:
		return "an object"
	default:
		return fmt.Sprintf("%T", value)
	}
}
