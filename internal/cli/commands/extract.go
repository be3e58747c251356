package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/2lambda123/accordproject-concerto/internal/cli/config"
	"github.com/2lambda123/accordproject-concerto/internal/loader"
	"github.com/2lambda123/accordproject-concerto/pkg/decorator"
	"github.com/2lambda123/accordproject-concerto/pkg/modelmanager"
)

// modelsSubdir receives undecorated models so they do not collide with
// command set files of the same name.
const modelsSubdir = "models"

// NewExtractCommand creates the extract command.
func NewExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <model-path>...",
		Short: "Extract decorators into command sets and vocabularies",
		Long: `Extract the decorators of a set of models.

For every decorated namespace this writes a command set named
<name>@<version>.json and a vocabulary document named
<namespace>_<locale>.voc. With --remove-decorators the models are also
written without the extracted decorators, under models/.`,
		Example: `  # Extract into the current directory
  concerto extract models/

  # French vocabularies, stripped models, into out/
  concerto extract models/ --locale fr --remove-decorators --output-dir out`,
		Args: cobra.MinimumNArgs(1),
		RunE: runExtract,
	}

	cmd.Flags().Bool("remove-decorators", false, "Also write the models without their decorators")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.GetConfig(ctx)
	logger := config.GetLogger(ctx)

	ast, err := loader.LoadModels(ctx, args...)
	if err != nil {
		return fmt.Errorf("failed to load models: %w", err)
	}
	mm, err := modelmanager.FromAst(ast)
	if err != nil {
		return fmt.Errorf("failed to load models: %w", err)
	}

	res, err := decorator.ExtractDecorators(mm, decorator.ExtractOptions{
		RemoveDecoratorsFromModel: cfg.RemoveDecorators,
		Locale:                    cfg.Locale,
		Logger:                    logger,
	})
	if err != nil {
		return err
	}

	dir := cfg.OutputDir
	if dir == "" {
		dir = "."
	}

	var files []string
	for _, set := range res.CommandSets {
		path, err := writeJSONFile(dir, set.FileName(), set)
		if err != nil {
			return err
		}
		files = append(files, path)
	}
	for i, ns := range res.Index.Namespaces() {
		path, err := writeOutputFile(dir, decorator.VocabularyFileName(ns, cfg.Locale), []byte(res.Vocabularies[i]))
		if err != nil {
			return err
		}
		files = append(files, path)
	}
	if cfg.RemoveDecorators {
		written, err := writeModels(filepath.Join(dir, modelsSubdir), res.ModelManager.GetAst())
		if err != nil {
			return err
		}
		files = append(files, written...)
	}

	logger.Info("extracted decorators", "namespaces", res.Index.Len(), "files", len(files))
	return reportWritten(cmd, cfg, files)
}
