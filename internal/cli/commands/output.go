package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/2lambda123/accordproject-concerto/internal/cli/config"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
)

var (
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
)

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeOutputFile writes data to dir/name, creating parent directories.
func writeOutputFile(dir, name string, data []byte) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	//nolint:gosec // generated documents are meant to be shared
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// writeJSONFile marshals v with indentation and writes it to dir/name.
func writeJSONFile(dir, name string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return writeOutputFile(dir, name, append(data, '\n'))
}

// writtenFiles is the JSON report of commands that generate files.
type writtenFiles struct {
	Files []string `json:"files"`
}

// reportWritten prints the generated file paths.
func reportWritten(cmd *cobra.Command, cfg *config.Config, files []string) error {
	w := cmd.OutOrStdout()
	if cfg.IsJSON() {
		if files == nil {
			files = []string{}
		}
		return writeJSON(w, writtenFiles{Files: files})
	}
	if len(files) == 0 {
		_, _ = fmt.Fprintln(w, mutedStyle.Render("nothing to write"))
		return nil
	}
	for _, f := range files {
		_, _ = fmt.Fprintf(w, "%s %s\n", successStyle.Render("wrote"), f)
	}
	return nil
}
