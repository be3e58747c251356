package decorator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/2lambda123/accordproject-concerto/pkg/core"
	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// ParseCommandSet reads a command set written in JSON or YAML.
// The returned set keeps the parsed payload for structural validation.
func ParseCommandSet(data []byte) (*CommandSet, error) {
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, &StructuralValidationError{Err: err}
	}
	return CommandSetFromMap(doc)
}

// CommandSetFromMap decodes a command set from a JSON object graph.
// Unknown fields are left to structural validation.
func CommandSetFromMap(doc map[string]any) (*CommandSet, error) {
	if doc == nil {
		return nil, &StructuralValidationError{Err: errors.New("empty document")}
	}

	var set CommandSet
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		DecodeHook: mapstructure.DecodeHookFuncType(decodeDecorator),
		Result:     &set,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(doc); err != nil {
		return nil, &StructuralValidationError{Err: err}
	}
	set.raw = doc
	return &set, nil
}

var decoratorType = reflect.TypeOf(core.Decorator{})

// decodeDecorator hands decorator objects to the metamodel JSON decoder so
// argument literals keep their kinds.
func decodeDecorator(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != decoratorType || data == nil {
		return data, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var d core.Decorator
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decorator: %w", err)
	}
	return d, nil
}

// decodeDocument parses a JSON or YAML object. JSON is decoded with
// encoding/json so numbers stay float64.
func decodeDocument(data []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty document")
	}
	var doc map[string]any
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc == nil {
		return nil, errors.New("empty document")
	}
	return doc, nil
}
