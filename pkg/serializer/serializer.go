// Package serializer validates JSON object graphs against the declarations
// loaded into a model manager.
//
// Objects are plain decoded JSON or YAML values (map[string]any, []any,
// string, bool and numbers). Each object names its type with "$class";
// nested objects may omit it when the declared type is concrete.
package serializer

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"time"

	"github.com/2lambda123/accordproject-concerto/pkg/core"
	"github.com/2lambda123/accordproject-concerto/pkg/modelmanager"
)

// ClassKey is the discriminator field of every serialized object.
const ClassKey = "$class"

// Serializer validates object graphs against a model manager.
type Serializer struct {
	mm *modelmanager.ModelManager
}

// New creates a serializer bound to a model manager.
func New(mm *modelmanager.ModelManager) *Serializer {
	return &Serializer{mm: mm}
}

// FromJSON validates a root object and returns its fully qualified type.
// The root must carry "$class".
func (s *Serializer) FromJSON(obj map[string]any) (string, error) {
	class, ok := obj[ClassKey].(string)
	if !ok || class == "" {
		return "", &ValidationError{Path: "$", Message: "missing $class"}
	}
	if err := s.validateObject("$", obj, ""); err != nil {
		return "", err
	}
	return class, nil
}

// FromJSONAs validates a root object as an instance of fqn.
// A missing root "$class" is accepted when fqn is concrete.
func (s *Serializer) FromJSONAs(obj map[string]any, fqn string) error {
	return s.validateObject("$", obj, fqn)
}

// validateObject checks obj against its own "$class" or the expected type.
func (s *Serializer) validateObject(path string, obj map[string]any, expected string) error {
	decl, err := s.resolveClass(path, obj, expected)
	if err != nil {
		return err
	}

	props := decl.GetProperties()
	known := make(map[string]core.Property, len(props))
	for _, p := range props {
		known[p.Name] = p
	}

	// Sorted for deterministic error reporting.
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if k == ClassKey {
			continue
		}
		if _, ok := known[k]; !ok {
			return &ValidationError{
				Path:    path,
				Message: fmt.Sprintf("unexpected property %q for type %s", k, decl.FullyQualifiedName()),
			}
		}
	}

	for _, p := range props {
		fieldPath := path + "." + p.Name
		v, present := obj[p.Name]
		if !present || v == nil {
			if !p.IsOptional {
				return &ValidationError{
					Path:    fieldPath,
					Message: fmt.Sprintf("missing required property of type %s", decl.FullyQualifiedName()),
				}
			}
			continue
		}
		if err := s.validateField(fieldPath, decl.PropertyOwner(p.Name), p, v); err != nil {
			return err
		}
	}
	return nil
}

// resolveClass finds the declaration an object must satisfy.
func (s *Serializer) resolveClass(path string, obj map[string]any, expected string) (*modelmanager.ClassDeclaration, error) {
	raw, hasClass := obj[ClassKey]
	if !hasClass {
		if expected == "" {
			return nil, &ValidationError{Path: path, Message: "missing $class"}
		}
		decl, err := s.mm.GetType(expected)
		if err != nil {
			return nil, &ValidationError{Path: path, Message: err.Error()}
		}
		if decl.IsAbstract() {
			return nil, &ValidationError{
				Path:    path,
				Message: fmt.Sprintf("$class is required for abstract type %s", expected),
			}
		}
		return decl, nil
	}

	class, ok := raw.(string)
	if !ok {
		return nil, &ValidationError{Path: path, Message: fmt.Sprintf("$class must be a string, got %s", describe(raw))}
	}
	decl, err := s.mm.GetType(class)
	if err != nil {
		return nil, &ValidationError{Path: path, Message: err.Error()}
	}
	if decl.IsAbstract() {
		return nil, &ValidationError{Path: path, Message: fmt.Sprintf("cannot instantiate abstract type %s", class)}
	}
	if decl.Kind() == core.DeclarationEnum || decl.Kind() == core.DeclarationMap || decl.Kind().IsScalar() {
		return nil, &ValidationError{Path: path, Message: fmt.Sprintf("type %s cannot be an object", class)}
	}
	if expected != "" && !decl.IsSubtypeOf(expected) {
		return nil, &ValidationError{
			Path:    path,
			Message: fmt.Sprintf("type %s is not assignable to %s", class, expected),
		}
	}
	return decl, nil
}

// validateField checks one property value, unrolling arrays.
func (s *Serializer) validateField(path string, owner *modelmanager.ClassDeclaration, p core.Property, v any) error {
	if !p.IsArray {
		return s.validateValue(path, owner, p, v)
	}
	items, ok := v.([]any)
	if !ok {
		return &ValidationError{Path: path, Message: fmt.Sprintf("expected an array, got %s", describe(v))}
	}
	for i, item := range items {
		if err := s.validateValue(fmt.Sprintf("%s[%d]", path, i), owner, p, item); err != nil {
			return err
		}
	}
	return nil
}

func (s *Serializer) validateValue(path string, owner *modelmanager.ClassDeclaration, p core.Property, v any) error {
	switch p.Kind {
	case core.PropertyObject:
		return s.validateTyped(path, owner, p, v)
	case core.PropertyRelationship:
		if _, ok := v.(string); !ok {
			return &ValidationError{Path: path, Message: fmt.Sprintf("expected a relationship identifier, got %s", describe(v))}
		}
		return nil
	case core.PropertyEnum:
		return &ValidationError{Path: path, Message: "enum values cannot appear as object fields"}
	default:
		return checkPrimitive(path, p.Kind, v)
	}
}

// validateTyped checks a value whose type is another declaration.
func (s *Serializer) validateTyped(path string, owner *modelmanager.ClassDeclaration, p core.Property, v any) error {
	if p.Type == nil {
		return &ValidationError{Path: path, Message: "object property has no type"}
	}
	fqn, err := owner.ModelFile().ResolveTypeName(*p.Type)
	if err != nil {
		return &ValidationError{Path: path, Message: err.Error()}
	}
	decl, err := s.mm.GetType(fqn)
	if err != nil {
		return &ValidationError{Path: path, Message: err.Error()}
	}

	switch {
	case decl.Kind() == core.DeclarationEnum:
		str, ok := v.(string)
		if !ok {
			return &ValidationError{Path: path, Message: fmt.Sprintf("expected a %s value, got %s", fqn, describe(v))}
		}
		if values := decl.EnumValues(); !slices.Contains(values, str) {
			return &ValidationError{
				Path:    path,
				Message: fmt.Sprintf("invalid enum value %q for %s, must be one of: %v", str, fqn, values),
			}
		}
		return nil
	case decl.Kind().IsScalar():
		kind, _ := decl.Kind().ScalarKind()
		return checkPrimitive(path, kind, v)
	case decl.Kind() == core.DeclarationMap:
		// entries are not checked against the key and value types
		if _, ok := v.(map[string]any); !ok {
			return &ValidationError{Path: path, Message: fmt.Sprintf("expected a %s map, got %s", fqn, describe(v))}
		}
		return nil
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return &ValidationError{Path: path, Message: fmt.Sprintf("expected an object of type %s, got %s", fqn, describe(v))}
	}
	return s.validateObject(path, obj, fqn)
}

// checkPrimitive checks a value against a primitive property kind.
func checkPrimitive(path string, kind core.PropertyKind, v any) error {
	ok := false
	switch kind {
	case core.PropertyString:
		_, ok = v.(string)
	case core.PropertyBoolean:
		_, ok = v.(bool)
	case core.PropertyInteger, core.PropertyLong:
		ok = isInteger(v)
	case core.PropertyDouble:
		_, ok = toFloat(v)
	case core.PropertyDateTime:
		ok = isDateTime(v)
	}
	if !ok {
		return &ValidationError{
			Path:    path,
			Message: fmt.Sprintf("expected %s, got %s", primitiveName(kind), describe(v)),
		}
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint:
		return float64(n), true
	}
	return 0, false
}

func isInteger(v any) bool {
	f, ok := toFloat(v)
	return ok && f == math.Trunc(f) && !math.IsInf(f, 0)
}

func isDateTime(v any) bool {
	switch t := v.(type) {
	case time.Time:
		return true
	case string:
		_, err := time.Parse(time.RFC3339, t)
		return err == nil
	}
	return false
}

func primitiveName(kind core.PropertyKind) string {
	switch kind {
	case core.PropertyString:
		return "a String"
	case core.PropertyBoolean:
		return "a Boolean"
	case core.PropertyInteger:
		return "an Integer"
	case core.PropertyLong:
		return "a Long"
	case core.PropertyDouble:
		return "a Double"
	case core.PropertyDateTime:
		return "a DateTime"
	default:
		return kind.String()
	}
}

// describe names the JSON type of a decoded value for error messages.
func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case map[string]any:
		return "an object"
	case []any:
		return "an array"
	}
	if _, ok := toFloat(v); ok {
		return fmt.Sprintf("the number %v", v)
	}
	return fmt.Sprintf("%T", v)
}
