package decorator

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for missing inputs.
var (
	ErrNilModelManager = errors.New("decorator: nil model manager")
	ErrNilCommandSet   = errors.New("decorator: nil command set")
	ErrNilModels       = errors.New("decorator: nil models")
)

// StructuralValidationError is returned when a command set payload does not
// match the command set schema.
type StructuralValidationError struct {
	Err error
}

func (e *StructuralValidationError) Error() string {
	return fmt.Sprintf("invalid decorator command set: %v", e.Err)
}

func (e *StructuralValidationError) Unwrap() error {
	return e.Err
}

// ConflictingTargetError is returned when a target sets both property and
// properties.
type ConflictingTargetError struct {
	Command string // Offending command as JSON
}

func (e *ConflictingTargetError) Error() string {
	return fmt.Sprintf("decorator command sets both property and properties on its target: %s", e.Command)
}

// UnknownTypeError is returned when target.type does not resolve.
type UnknownTypeError struct {
	Type    string
	Command string
	Err     error
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("decorator command refers to unknown type %q: %s", e.Type, e.Command)
}

func (e *UnknownTypeError) Unwrap() error {
	return e.Err
}

// UnknownNamespaceError is returned when target.namespace matches no model,
// versioned or not.
type UnknownNamespaceError struct {
	Namespace string
	Command   string
}

func (e *UnknownNamespaceError) Error() string {
	return fmt.Sprintf("decorator command refers to unknown namespace %q: %s", e.Namespace, e.Command)
}

// UnknownDeclarationError is returned when target.declaration does not exist
// in the target namespace.
type UnknownDeclarationError struct {
	Namespace   string
	Declaration string
	Command     string
}

func (e *UnknownDeclarationError) Error() string {
	return fmt.Sprintf("decorator command refers to unknown declaration %q in namespace %q: %s",
		e.Declaration, e.Namespace, e.Command)
}

// UnknownPropertyError is returned when target properties are not exposed by
// the target declaration. Properties lists every missing name.
type UnknownPropertyError struct {
	Declaration string
	Properties  []string
	Command     string
}

func (e *UnknownPropertyError) Error() string {
	noun := "property"
	if len(e.Properties) > 1 {
		noun = "properties"
	}
	return fmt.Sprintf("decorator command refers to unknown %s %s on declaration %q: %s",
		noun, quoteAll(e.Properties), e.Declaration, e.Command)
}

// UnknownCommandTypeError is returned when a command's type is neither
// UPSERT nor APPEND.
type UnknownCommandTypeError struct {
	Type    CommandType
	Command string
}

func (e *UnknownCommandTypeError) Error() string {
	return fmt.Sprintf("unknown decorator command type %q: %s", e.Type, e.Command)
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}
