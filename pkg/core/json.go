package core

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// This file implements the Concerto metamodel JSON encoding of the AST.
// Every node carries a "$class" discriminator; the tagged kinds of the Go
// types are rendered back to their canonical "$class" strings on output.
//
// Slices are encoded through pointers so that an empty sequence ("[]")
// survives a round trip distinct from an absent one.

// InvalidClassError is returned when a node's "$class" is missing or does not
// name the expected metamodel type.
type InvalidClassError struct {
	Node  string // Node being decoded, e.g., "Property"
	Class string // The offending "$class" value ("" when missing)
}

func (e *InvalidClassError) Error() string {
	if e.Class == "" {
		return fmt.Sprintf("missing $class for %s", e.Node)
	}
	return fmt.Sprintf("invalid $class %q for %s", e.Class, e.Node)
}

// Extra holds the metamodel fields of a node that the AST does not model,
// keyed by JSON field name. Decoding captures them and encoding writes them
// back, so validators, default values, identifiers and source locations
// survive a decorate or extract pass untouched.
type Extra map[string]json.RawMessage

// Clone returns a deep copy of the fields.
func (e Extra) Clone() Extra {
	if e == nil {
		return nil
	}
	out := make(Extra, len(e))
	for k, v := range e {
		out[k] = slices.Clone(v)
	}
	return out
}

// Fields known to the encoder of each node. Anything else lands in Extra.
var (
	modelFields       = []string{"$class", "decorators", "namespace", "imports", "declarations"}
	importFields      = []string{"$class", "namespace", "name", "types"}
	declarationFields = []string{"$class", "name", "isAbstract", "superType", "decorators", "properties"}
	propertyFields    = []string{"$class", "name", "isArray", "isOptional", "type", "decorators"}
	decoratorFields   = []string{"$class", "name", "arguments"}
)

// decodeExtra returns the fields of the JSON object data not listed in known.
func decodeExtra(data []byte, known []string) (Extra, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	maps.DeleteFunc(all, func(k string, _ json.RawMessage) bool {
		return slices.Contains(known, k)
	})
	if len(all) == 0 {
		return nil, nil
	}
	return Extra(all), nil
}

// marshalWithExtra encodes v and adds the extra fields it does not set itself.
func marshalWithExtra(v any, extra Extra) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for k, raw := range extra {
		if _, ok := all[k]; !ok {
			all[k] = raw
		}
	}
	return json.Marshal(all)
}

func slicePtr[T any](s []T) *[]T {
	if s == nil {
		return nil
	}
	return &s
}

func sliceVal[T any](p *[]T) []T {
	if p == nil {
		return nil
	}
	return *p
}

// checkClass accepts an absent "$class" or one naming the expected type.
func checkClass(node, class, want string) error {
	if class == "" {
		return nil
	}
	if short, ok := shortClassName(class); !ok || short != want {
		return &InvalidClassError{Node: node, Class: class}
	}
	return nil
}

// =============================================================================
// Models / Model / Import
// =============================================================================

type modelsJSON struct {
	Class  string  `json:"$class"`
	Models []Model `json:"models"`
}

// MarshalJSON implements json.Marshaler.
func (m Models) MarshalJSON() ([]byte, error) {
	models := m.Models
	if models == nil {
		models = []Model{}
	}
	return json.Marshal(modelsJSON{Class: ClassName("Models"), Models: models})
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Models) UnmarshalJSON(data []byte) error {
	var w modelsJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if err := checkClass("Models", w.Class, "Models"); err != nil {
		return err
	}
	m.Models = w.Models
	return nil
}

type modelJSON struct {
	Class        string         `json:"$class"`
	Decorators   *[]Decorator   `json:"decorators,omitempty"`
	Namespace    string         `json:"namespace"`
	Imports      *[]Import      `json:"imports,omitempty"`
	Declarations *[]Declaration `json:"declarations,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (m Model) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(modelJSON{
		Class:        ClassName("Model"),
		Decorators:   slicePtr(m.Decorators),
		Namespace:    m.Namespace,
		Imports:      slicePtr(m.Imports),
		Declarations: slicePtr(m.Declarations),
	}, m.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Model) UnmarshalJSON(data []byte) error {
	var w modelJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if err := checkClass("Model", w.Class, "Model"); err != nil {
		return err
	}
	extra, err := decodeExtra(data, modelFields)
	if err != nil {
		return err
	}
	*m = Model{
		Namespace:    w.Namespace,
		Imports:      sliceVal(w.Imports),
		Decorators:   sliceVal(w.Decorators),
		Declarations: sliceVal(w.Declarations),
		Extra:        extra,
	}
	return nil
}

type importJSON struct {
	Class     string    `json:"$class"`
	Namespace string    `json:"namespace"`
	Name      string    `json:"name,omitempty"`
	Types     *[]string `json:"types,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (i Import) MarshalJSON() ([]byte, error) {
	w := importJSON{Class: i.Kind.String(), Namespace: i.Namespace}
	switch i.Kind {
	case ImportType:
		if len(i.Types) > 0 {
			w.Name = i.Types[0]
		}
	case ImportTypes:
		w.Types = slicePtr(i.Types)
	}
	return marshalWithExtra(w, i.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *Import) UnmarshalJSON(data []byte) error {
	var w importJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	kind, ok := ParseImportKind(w.Class)
	if !ok {
		return &InvalidClassError{Node: "Import", Class: w.Class}
	}
	extra, err := decodeExtra(data, importFields)
	if err != nil {
		return err
	}
	*i = Import{Kind: kind, Namespace: w.Namespace, Extra: extra}
	switch kind {
	case ImportType:
		i.Types = []string{w.Name}
	case ImportTypes:
		i.Types = sliceVal(w.Types)
	}
	return nil
}

// =============================================================================
// Declaration / Property / TypeIdentifier
// =============================================================================

type declarationJSON struct {
	Class      string          `json:"$class"`
	Name       string          `json:"name"`
	IsAbstract bool            `json:"isAbstract,omitempty"`
	SuperType  *TypeIdentifier `json:"superType,omitempty"`
	Decorators *[]Decorator    `json:"decorators,omitempty"`
	Properties *[]Property     `json:"properties,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (d Declaration) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(declarationJSON{
		Class:      d.Kind.String(),
		Name:       d.Name,
		IsAbstract: d.IsAbstract,
		SuperType:  d.SuperType,
		Decorators: slicePtr(d.Decorators),
		Properties: slicePtr(d.Properties),
	}, d.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Declaration) UnmarshalJSON(data []byte) error {
	var w declarationJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	kind, ok := ParseDeclarationKind(w.Class)
	if !ok {
		return &InvalidClassError{Node: "Declaration " + w.Name, Class: w.Class}
	}
	extra, err := decodeExtra(data, declarationFields)
	if err != nil {
		return err
	}
	*d = Declaration{
		Kind:       kind,
		Name:       w.Name,
		IsAbstract: w.IsAbstract,
		SuperType:  w.SuperType,
		Decorators: sliceVal(w.Decorators),
		Properties: sliceVal(w.Properties),
		Extra:      extra,
	}
	return nil
}

type propertyJSON struct {
	Class      string          `json:"$class"`
	Name       string          `json:"name"`
	IsArray    bool            `json:"isArray,omitempty"`
	IsOptional bool            `json:"isOptional,omitempty"`
	Type       *TypeIdentifier `json:"type,omitempty"`
	Decorators *[]Decorator    `json:"decorators,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (p Property) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(propertyJSON{
		Class:      p.Kind.String(),
		Name:       p.Name,
		IsArray:    p.IsArray,
		IsOptional: p.IsOptional,
		Type:       p.Type,
		Decorators: slicePtr(p.Decorators),
	}, p.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Property) UnmarshalJSON(data []byte) error {
	var w propertyJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	kind, ok := ParsePropertyKind(w.Class)
	if !ok {
		return &InvalidClassError{Node: "Property " + w.Name, Class: w.Class}
	}
	extra, err := decodeExtra(data, propertyFields)
	if err != nil {
		return err
	}
	*p = Property{
		Kind:       kind,
		Name:       w.Name,
		IsArray:    w.IsArray,
		IsOptional: w.IsOptional,
		Type:       w.Type,
		Decorators: sliceVal(w.Decorators),
		Extra:      extra,
	}
	return nil
}

type typeIdentifierJSON struct {
	Class        string `json:"$class"`
	Name         string `json:"name"`
	Namespace    string `json:"namespace,omitempty"`
	ResolvedName string `json:"resolvedName,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (t TypeIdentifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(typeIdentifierJSON{
		Class:        ClassName("TypeIdentifier"),
		Name:         t.Name,
		Namespace:    t.Namespace,
		ResolvedName: t.ResolvedName,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *TypeIdentifier) UnmarshalJSON(data []byte) error {
	var w typeIdentifierJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if err := checkClass("TypeIdentifier", w.Class, "TypeIdentifier"); err != nil {
		return err
	}
	*t = TypeIdentifier{Name: w.Name, Namespace: w.Namespace, ResolvedName: w.ResolvedName}
	return nil
}

// =============================================================================
// Decorator / DecoratorArgument
// =============================================================================

type decoratorJSON struct {
	Class     string               `json:"$class"`
	Name      string               `json:"name"`
	Arguments *[]DecoratorArgument `json:"arguments,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (d Decorator) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(decoratorJSON{
		Class:     ClassName("Decorator"),
		Name:      d.Name,
		Arguments: slicePtr(d.Arguments),
	}, d.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Decorator) UnmarshalJSON(data []byte) error {
	var w decoratorJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if err := checkClass("Decorator", w.Class, "Decorator"); err != nil {
		return err
	}
	extra, err := decodeExtra(data, decoratorFields)
	if err != nil {
		return err
	}
	*d = Decorator{Name: w.Name, Arguments: sliceVal(w.Arguments), Extra: extra}
	return nil
}

type argumentJSON struct {
	Class   string          `json:"$class"`
	Value   json.RawMessage `json:"value,omitempty"`
	Type    *TypeIdentifier `json:"type,omitempty"`
	IsArray bool            `json:"isArray,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (a DecoratorArgument) MarshalJSON() ([]byte, error) {
	w := argumentJSON{Class: a.Kind.String()}
	if a.Kind == ArgumentTypeReference {
		t, ok := a.Value.(TypeIdentifier)
		if !ok {
			return nil, fmt.Errorf("decorator type reference holds %T, want TypeIdentifier", a.Value)
		}
		w.Type = &t
		w.IsArray = a.IsArray
		return json.Marshal(w)
	}
	raw, err := json.Marshal(a.Value)
	if err != nil {
		return nil, err
	}
	w.Value = raw
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *DecoratorArgument) UnmarshalJSON(data []byte) error {
	var w argumentJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	kind, ok := ParseArgumentKind(w.Class)
	if !ok {
		return &InvalidClassError{Node: "DecoratorArgument", Class: w.Class}
	}
	*a = DecoratorArgument{Kind: kind}
	switch kind {
	case ArgumentString:
		var s string
		if err := json.Unmarshal(w.Value, &s); err != nil {
			return fmt.Errorf("decorator string argument: %w", err)
		}
		a.Value = s
	case ArgumentNumber:
		var n float64
		if err := json.Unmarshal(w.Value, &n); err != nil {
			return fmt.Errorf("decorator number argument: %w", err)
		}
		a.Value = n
	case ArgumentBoolean:
		var b bool
		if err := json.Unmarshal(w.Value, &b); err != nil {
			return fmt.Errorf("decorator boolean argument: %w", err)
		}
		a.Value = b
	case ArgumentTypeReference:
		if w.Type == nil {
			return fmt.Errorf("decorator type reference: missing type")
		}
		a.Value = *w.Type
		a.IsArray = w.IsArray
	}
	return nil
}

// String renders the argument value as plain text.
func (a DecoratorArgument) String() string {
	switch v := a.Value.(type) {
	case TypeIdentifier:
		if v.Namespace != "" {
			return v.Namespace + "." + v.Name
		}
		return v.Name
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
