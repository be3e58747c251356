package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2lambda123/accordproject-concerto/internal/cli/config"
	"github.com/2lambda123/accordproject-concerto/internal/loader"
	"github.com/2lambda123/accordproject-concerto/pkg/core"
	"github.com/2lambda123/accordproject-concerto/pkg/decorator"
)

// DecorateOptions holds options for the decorate command.
type DecorateOptions struct {
	CommandFiles []string
}

// NewDecorateCommand creates the decorate command.
func NewDecorateCommand() *cobra.Command {
	opts := &DecorateOptions{}

	cmd := &cobra.Command{
		Use:   "decorate <model-path>...",
		Short: "Apply decorator command sets to models",
		Long: `Apply one or more decorator command sets to a set of models.

Model paths may be files or directories. Command sets are applied in the
order given, each to the result of the previous one. The decorated models
are printed as a metamodel document, or written one file per namespace
when --output-dir is set.`,
		Example: `  # Apply a command set and print the result
  concerto decorate models/ --commands ui.json

  # Apply two sets with full validation, writing files to out/
  concerto decorate model.json -c base.yaml -c ui.yaml --validate-commands --output-dir out`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecorate(cmd, args, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.CommandFiles, "commands", "c", nil, "Decorator command set file (repeatable, applied in order)")
	cmd.Flags().Bool("validate", false, "Validate command sets against the command set schema")
	cmd.Flags().Bool("validate-commands", false, "Also check every command target against the models")
	_ = cmd.MarkFlagRequired("commands")

	return cmd
}

func runDecorate(cmd *cobra.Command, args []string, opts *DecorateOptions) error {
	ctx := cmd.Context()
	cfg := config.GetConfig(ctx)
	logger := config.GetLogger(ctx)

	ast, err := loader.LoadModels(ctx, args...)
	if err != nil {
		return fmt.Errorf("failed to load models: %w", err)
	}
	logger.Debug("loaded models", "count", len(ast.Models))

	for _, path := range opts.CommandFiles {
		set, err := loader.LoadCommandSet(path)
		if err != nil {
			return err
		}
		ast, err = decorator.DecorateAst(ast, set, decorator.DecorateOptions{
			Validate:         cfg.Validate,
			ValidateCommands: cfg.ValidateCommands,
			Logger:           logger,
		})
		if err != nil {
			return fmt.Errorf("failed to apply %s: %w", path, err)
		}
		logger.Info("applied command set", "name", set.Name, "version", set.Version, "file", path)
	}

	if cfg.OutputDir == "" {
		return writeJSON(cmd.OutOrStdout(), ast)
	}
	files, err := writeModels(cfg.OutputDir, ast)
	if err != nil {
		return err
	}
	return reportWritten(cmd, cfg, files)
}

// writeModels writes one metamodel document per namespace.
func writeModels(dir string, ast *core.Models) ([]string, error) {
	files := make([]string, 0, len(ast.Models))
	for _, m := range ast.Models {
		path, err := writeJSONFile(dir, m.Namespace+".json", m)
		if err != nil {
			return nil, err
		}
		files = append(files, path)
	}
	return files, nil
}
