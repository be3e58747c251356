package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/2lambda123/accordproject-concerto/internal/cli/config"
	"github.com/2lambda123/accordproject-concerto/internal/loader"
	"github.com/2lambda123/accordproject-concerto/pkg/core"
	"github.com/2lambda123/accordproject-concerto/pkg/decorator"
)

// ValidateOptions holds options for the validate command.
type ValidateOptions struct {
	ModelPaths []string
}

// CheckResult is the outcome of one validation check. Command is the
// 1-based position of the command in its set, or 0 for checks of the
// whole set.
type CheckResult struct {
	File      string `json:"file"`
	Set       string `json:"set,omitempty"`
	Command   int    `json:"command"`
	Decorator string `json:"decorator,omitempty"`
	Type      string `json:"type,omitempty"`
	Target    string `json:"target,omitempty"`
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <command-set>...",
		Short: "Validate decorator command sets",
		Long: `Validate decorator command sets against the command set schema.

When models are given with --models, every command target is also checked
against them: its type, namespace, declaration and properties must exist.
Model namespaces must be versioned.`,
		Example: `  # Check the shape of a command set
  concerto validate ui.json

  # Check the targets of several sets against models
  concerto validate base.yaml ui.json --models models/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.ModelPaths, "models", "m", nil, "Model file or directory to check targets against (repeatable)")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string, opts *ValidateOptions) error {
	ctx := cmd.Context()
	cfg := config.GetConfig(ctx)
	logger := config.GetLogger(ctx)

	var models []core.Model
	if len(opts.ModelPaths) > 0 {
		ast, err := loader.LoadModels(ctx, opts.ModelPaths...)
		if err != nil {
			return fmt.Errorf("failed to load models: %w", err)
		}
		models = ast.Models
	}

	var results []CheckResult
	for _, path := range args {
		results = append(results, validateFile(path, models)...)
	}

	failed := 0
	for _, r := range results {
		if !r.OK {
			failed++
		}
	}
	logger.Debug("validated command sets", "files", len(args), "checks", len(results), "failed", failed)

	w := cmd.OutOrStdout()
	if cfg.IsJSON() {
		if err := writeJSON(w, results); err != nil {
			return err
		}
	} else {
		renderResults(w, results)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(results))
	}
	return nil
}

// validateFile checks one command set file. Targets are only checked when
// models are given.
func validateFile(path string, models []core.Model) []CheckResult {
	set, err := loader.LoadCommandSet(path)
	if err != nil {
		return []CheckResult{{File: path, Error: err.Error()}}
	}
	setName := set.Name + "@" + set.Version

	mm, err := decorator.Validate(set, models...)
	if err != nil {
		return []CheckResult{{File: path, Set: setName, Error: err.Error()}}
	}
	if len(models) == 0 {
		return []CheckResult{{File: path, Set: setName, OK: true}}
	}

	results := make([]CheckResult, 0, len(set.Commands))
	for i, c := range set.Commands {
		r := CheckResult{
			File:      path,
			Set:       setName,
			Command:   i + 1,
			Decorator: c.Decorator.Name,
			Type:      string(c.Type),
			Target:    describeTarget(c.Target),
			OK:        true,
		}
		if err := decorator.ValidateCommand(mm, c); err != nil {
			r.OK = false
			r.Error = err.Error()
		}
		results = append(results, r)
	}
	return results
}

// describeTarget renders the non-wildcard fields of a target.
func describeTarget(t decorator.CommandTarget) string {
	var parts []string
	add := func(key, value string) {
		if value != "" {
			parts = append(parts, key+"="+value)
		}
	}
	add("namespace", t.Namespace)
	add("declaration", t.Declaration)
	add("property", t.Property)
	if len(t.Properties) > 0 {
		add("properties", strings.Join(t.Properties, ","))
	}
	add("type", t.Type)
	if len(parts) == 0 {
		return "*"
	}
	return strings.Join(parts, " ")
}

func renderResults(w io.Writer, results []CheckResult) {
	titleCaser := cases.Title(language.English)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Set", "#", "Decorator", "Type", "Target", "Status"})

	var failures []CheckResult
	for _, r := range results {
		set := r.Set
		if set == "" {
			set = r.File
		}
		num := "-"
		if r.Command > 0 {
			num = fmt.Sprint(r.Command)
		}
		status := successStyle.Render("OK")
		if !r.OK {
			status = errorStyle.Render("FAIL")
			failures = append(failures, r)
		}
		t.AppendRow(table.Row{set, num, r.Decorator, titleCaser.String(strings.ToLower(r.Type)), r.Target, status})
	}
	t.Render()

	for _, r := range failures {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", errorStyle.Render("error"), r.File, r.Error)
	}
	_, _ = fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d checks, %d failed", len(results), len(failures))))
}
