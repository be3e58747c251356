package modelmanager

import "fmt"

// NamespaceError is returned when a model's namespace cannot be loaded.
type NamespaceError struct {
	Namespace string
	Reason    string
}

func (e *NamespaceError) Error() string {
	return fmt.Sprintf("namespace %q: %s", e.Namespace, e.Reason)
}

// DuplicateTypeError is returned when a model declares the same name twice.
type DuplicateTypeError struct {
	Namespace string
	Name      string
}

func (e *DuplicateTypeError) Error() string {
	return fmt.Sprintf("duplicate declaration %q in namespace %q", e.Name, e.Namespace)
}

// TypeNotFoundError is returned when a type reference cannot be resolved.
type TypeNotFoundError struct {
	Type    string
	Reason  string
	Context string // what was being resolved, e.g., "CommandTarget.type"
}

func (e *TypeNotFoundError) Error() string {
	msg := fmt.Sprintf("type %q not found", e.Type)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Context != "" {
		return e.Context + ": " + msg
	}
	return msg
}
