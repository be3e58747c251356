package serializer

import "fmt"

// ValidationError reports where an object graph violates its schema.
type ValidationError struct {
	Path    string // JSON path of the offending value, e.g., "$.commands[0].type"
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}
