package decorator

import (
	"log/slog"

	"github.com/2lambda123/accordproject-concerto/pkg/core"
	"github.com/2lambda123/accordproject-concerto/pkg/modelmanager"
)

// DecorateOptions controls DecorateModels and DecorateAst.
type DecorateOptions struct {
	// Validate checks the command set shape before applying it.
	Validate bool
	// ValidateCommands checks every command target against the models.
	// It implies Validate.
	ValidateCommands bool
	// Logger receives debug output; nil discards it.
	Logger *slog.Logger
}

// loggerOrDiscard returns l, or a logger that drops everything when l is nil.
func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

// DecorateModels applies a command set to the models of mm and returns a new
// model manager holding the decorated copy. mm is not modified.
func DecorateModels(mm *modelmanager.ModelManager, set *CommandSet, opts DecorateOptions) (*modelmanager.ModelManager, error) {
	if mm == nil {
		return nil, ErrNilModelManager
	}
	work := mm.GetAst()
	if err := validateSet(set, work.Models, opts); err != nil {
		return nil, err
	}
	if err := applyCommandSet(work, set, loggerOrDiscard(opts.Logger)); err != nil {
		return nil, err
	}
	return modelmanager.FromAst(work, modelmanager.WithStrict(mm.IsStrict()))
}

// DecorateAst applies a command set to a copy of ast and returns the copy.
func DecorateAst(ast *core.Models, set *CommandSet, opts DecorateOptions) (*core.Models, error) {
	if ast == nil {
		return nil, ErrNilModels
	}
	if err := validateSet(set, ast.Models, opts); err != nil {
		return nil, err
	}
	work := ast.Clone()
	if err := applyCommandSet(work, set, loggerOrDiscard(opts.Logger)); err != nil {
		return nil, err
	}
	return work, nil
}

// validateSet runs the validation requested by opts to completion.
func validateSet(set *CommandSet, models []core.Model, opts DecorateOptions) error {
	if set == nil {
		return ErrNilCommandSet
	}
	if !opts.Validate && !opts.ValidateCommands {
		return nil
	}
	mm, err := Validate(set, models...)
	if err != nil {
		return err
	}
	if !opts.ValidateCommands {
		return nil
	}
	for _, cmd := range set.Commands {
		if err := ValidateCommand(mm, cmd); err != nil {
			return err
		}
	}
	return nil
}

// applyCommandSet walks models, then declarations, then commands.
func applyCommandSet(work *core.Models, set *CommandSet, logger *slog.Logger) error {
	logger.Debug("applying command set", "name", set.Name, "version", set.Version, "commands", len(set.Commands))

	for mi := range work.Models {
		model := &work.Models[mi]
		for di := range model.Declarations {
			decl := &model.Declarations[di]
			for _, cmd := range set.Commands {
				if err := executeCommand(model.Namespace, decl, cmd, logger); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func executeCommand(ns string, decl *core.Declaration, cmd Command, logger *slog.Logger) error {
	t := cmd.Target
	if !matchesNamespace(t.Namespace, ns) || !matchesDeclaration(t, decl) {
		return nil
	}

	if t.propertySelector() == nil && t.Type == "" {
		decorators, err := applyDecorator(decl.Decorators, cmd)
		if err != nil {
			return err
		}
		decl.Decorators = decorators
		logger.Debug("decorated declaration",
			"namespace", ns,
			"declaration", decl.Name,
			"decorator", cmd.Decorator.Name,
			"type", cmd.Type)
		return nil
	}

	// Scalars have no properties to decorate.
	if !decl.HasProperties() {
		return nil
	}
	for pi := range decl.Properties {
		if err := executePropertyCommand(&decl.Properties[pi], cmd); err != nil {
			return err
		}
	}
	return nil
}

func executePropertyCommand(prop *core.Property, cmd Command) error {
	if !matchesProperty(cmd.Target, prop) {
		return nil
	}
	decorators, err := applyDecorator(prop.Decorators, cmd)
	if err != nil {
		return err
	}
	prop.Decorators = decorators
	return nil
}

// applyDecorator merges the command's decorator into decorators.
//
// UPSERT replaces every decorator with the same name, or appends when there
// is none. APPEND always appends.
func applyDecorator(decorators []core.Decorator, cmd Command) ([]core.Decorator, error) {
	switch cmd.Type {
	case Upsert:
		replaced := false
		for i := range decorators {
			if decorators[i].Name == cmd.Decorator.Name {
				decorators[i] = cmd.Decorator.Clone()
				replaced = true
			}
		}
		if !replaced {
			decorators = append(decorators, cmd.Decorator.Clone())
		}
		return decorators, nil
	case Append:
		return append(decorators, cmd.Decorator.Clone()), nil
	default:
		return decorators, &UnknownCommandTypeError{Type: cmd.Type, Command: cmd.String()}
	}
}
