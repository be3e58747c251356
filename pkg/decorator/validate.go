package decorator

import (
	"fmt"

	"github.com/2lambda123/accordproject-concerto/pkg/core"
	"github.com/2lambda123/accordproject-concerto/pkg/modelmanager"
	"github.com/2lambda123/accordproject-concerto/pkg/namespace"
	"github.com/2lambda123/accordproject-concerto/pkg/serializer"
)

// Validate checks the shape of a command set against the command set schema.
//
// It builds a strict model manager holding the built-in schema plus models,
// so the returned manager can resolve caller types in ValidateCommand.
// Caller models must carry valid semantic versions. Models in a schema
// namespace are skipped.
func Validate(set *CommandSet, models ...core.Model) (*modelmanager.ModelManager, error) {
	if set == nil {
		return nil, ErrNilCommandSet
	}

	mm := modelmanager.New(modelmanager.WithStrict(true))
	if err := mm.AddModels(Schema()...); err != nil {
		return nil, fmt.Errorf("failed to load command set schema: %w", err)
	}
	for _, m := range models {
		if isSchemaNamespace(m.Namespace) {
			continue
		}
		if _, err := mm.AddModel(m); err != nil {
			return nil, fmt.Errorf("failed to load model %q: %w", m.Namespace, err)
		}
	}

	payload, err := set.Payload()
	if err != nil {
		return nil, &StructuralValidationError{Err: err}
	}
	class, err := serializer.New(mm).FromJSON(payload)
	if err != nil {
		return nil, &StructuralValidationError{Err: err}
	}
	if want := commandsClass("DecoratorCommandSet"); class != want {
		return nil, &StructuralValidationError{Err: fmt.Errorf("expected %s, got %s", want, class)}
	}
	return mm, nil
}

// ValidateCommand checks that a command's target refers to types known to mm.
//
// Checks run in order: conflicting property/properties, type, namespace,
// declaration, property, properties. Declaration and property checks only
// run when the target names a namespace.
func ValidateCommand(mm *modelmanager.ModelManager, cmd Command) error {
	if mm == nil {
		return ErrNilModelManager
	}
	t := cmd.Target

	if t.Property != "" && len(t.Properties) > 0 {
		return &ConflictingTargetError{Command: cmd.String()}
	}

	if t.Type != "" {
		if err := mm.ResolveType("DecoratorCommand.type", t.Type); err != nil {
			return &UnknownTypeError{Type: t.Type, Command: cmd.String(), Err: err}
		}
	}

	if t.Namespace == "" {
		return nil
	}
	file := lookupModelFile(mm, t.Namespace)
	if file == nil {
		return &UnknownNamespaceError{Namespace: t.Namespace, Command: cmd.String()}
	}

	if t.Declaration == "" {
		return nil
	}
	decl, ok := file.GetType(t.Declaration)
	if !ok {
		return &UnknownDeclarationError{
			Namespace:   file.Namespace(),
			Declaration: t.Declaration,
			Command:     cmd.String(),
		}
	}

	names := t.Properties
	if t.Property != "" {
		names = []string{t.Property}
	}
	var missing []string
	for _, name := range names {
		if decl.GetProperty(name) == nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &UnknownPropertyError{
			Declaration: decl.FullyQualifiedName(),
			Properties:  missing,
			Command:     cmd.String(),
		}
	}
	return nil
}

// lookupModelFile finds the model file for ns, falling back to any loaded
// model whose unversioned namespace matches.
func lookupModelFile(mm *modelmanager.ModelManager, ns string) *modelmanager.ModelFile {
	if f := mm.GetModelFile(ns); f != nil {
		return f
	}
	if files := mm.FindModelFiles(namespace.Unversioned(ns)); len(files) > 0 {
		return files[0]
	}
	return nil
}
