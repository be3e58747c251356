package decorator

import (
	"encoding/json"
	"fmt"

	"github.com/2lambda123/accordproject-concerto/pkg/core"
)

// CommandsNamespace is the namespace of the command set schema.
const CommandsNamespace = "org.accordproject.decoratorcommands@0.3.0"

// Reserved decorator names that carry vocabulary rather than metadata.
const (
	TermDecorator            = "Term"
	TermDescriptionDecorator = "Term_description"
)

// DefaultVersion is the command set version used for unversioned namespaces.
const DefaultVersion = "1.0.0"

func commandsClass(name string) string {
	return CommandsNamespace + "." + name
}

// isVocabulary reports whether a decorator name is reserved for vocabularies.
func isVocabulary(name string) bool {
	return name == TermDecorator || name == TermDescriptionDecorator
}

// CommandType is the merge policy of a command.
type CommandType string

// Command types.
const (
	Upsert CommandType = "UPSERT"
	Append CommandType = "APPEND"
)

// IsValid reports whether t is a known command type.
func (t CommandType) IsValid() bool {
	return t == Upsert || t == Append
}

// CommandTarget selects the AST elements a command applies to.
// Empty fields are wildcards.
type CommandTarget struct {
	Namespace   string   `json:"namespace,omitempty"`
	Declaration string   `json:"declaration,omitempty"`
	Property    string   `json:"property,omitempty"`
	Properties  []string `json:"properties,omitempty"`
	// Type is the "$class" of the property kind to select
	Type string `json:"type,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (t CommandTarget) MarshalJSON() ([]byte, error) {
	type alias CommandTarget
	return json.Marshal(struct {
		Class string `json:"$class"`
		alias
	}{commandsClass("CommandTarget"), alias(t)})
}

// propertySelector returns the property name or names the target selects,
// or nil when the target does not narrow properties.
func (t CommandTarget) propertySelector() any {
	if t.Property != "" {
		return t.Property
	}
	if len(t.Properties) > 0 {
		return t.Properties
	}
	return nil
}

// Command attaches one decorator to every element its target matches.
type Command struct {
	Target    CommandTarget  `json:"target"`
	Decorator core.Decorator `json:"decorator"`
	Type      CommandType    `json:"type"`
}

// MarshalJSON implements json.Marshaler.
func (c Command) MarshalJSON() ([]byte, error) {
	type alias Command
	return json.Marshal(struct {
		Class string `json:"$class"`
		alias
	}{commandsClass("Command"), alias(c)})
}

// String returns the command as JSON, for error messages.
func (c Command) String() string {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Sprintf("%+v", struct {
			Target    CommandTarget
			Decorator string
			Type      CommandType
		}{c.Target, c.Decorator.Name, c.Type})
	}
	return string(data)
}

// CommandSetReference names another command set. References are recorded
// but never resolved.
type CommandSetReference struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// MarshalJSON implements json.Marshaler.
func (r CommandSetReference) MarshalJSON() ([]byte, error) {
	type alias CommandSetReference
	return json.Marshal(struct {
		Class string `json:"$class"`
		alias
	}{commandsClass("DecoratorCommandSetReference"), alias(r)})
}

// CommandSet is a named, versioned, ordered list of commands.
type CommandSet struct {
	Name     string                `json:"name"`
	Version  string                `json:"version"`
	Includes []CommandSetReference `json:"includes,omitempty"`
	Commands []Command             `json:"commands"`

	// raw is the payload the set was parsed from, if any
	raw map[string]any
}

// MarshalJSON implements json.Marshaler.
func (s CommandSet) MarshalJSON() ([]byte, error) {
	type alias CommandSet
	a := alias(s)
	if a.Commands == nil {
		a.Commands = []Command{}
	}
	return json.Marshal(struct {
		Class string `json:"$class"`
		alias
	}{commandsClass("DecoratorCommandSet"), a})
}

// Payload returns the set as a JSON object graph.
// Sets parsed from a payload return that payload unchanged.
func (s *CommandSet) Payload() (map[string]any, error) {
	if s.raw != nil {
		return s.raw, nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FileName returns "<name>@<version>.json".
func (s *CommandSet) FileName() string {
	return s.Name + "@" + s.Version + ".json"
}
