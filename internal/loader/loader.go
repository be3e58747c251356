// Package loader reads Concerto models and decorator command sets from disk.
//
// Models are metamodel JSON documents, or the same documents written in
// YAML. A document is either a single Model or a Models root holding several.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/2lambda123/accordproject-concerto/pkg/core"
	"github.com/2lambda123/accordproject-concerto/pkg/decorator"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// modelExtensions lists the file extensions read as model documents.
var modelExtensions = []string{".json", ".yaml", ".yml"}

// IsModelFile reports whether path has a model document extension.
func IsModelFile(path string) bool {
	return slices.Contains(modelExtensions, strings.ToLower(filepath.Ext(path)))
}

// ParseModels decodes a model document. file is used in errors only.
func ParseModels(data []byte, file string) ([]core.Model, error) {
	raw, err := toJSON(data)
	if err != nil {
		return nil, &ParseError{File: file, Message: err.Error()}
	}

	var probe struct {
		Class string `json:"$class"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, &ParseError{File: file, Message: fmt.Sprintf("expected an object: %v", err)}
	}

	if strings.HasSuffix(probe.Class, ".Models") {
		var models core.Models
		if err := json.Unmarshal(raw, &models); err != nil {
			return nil, &ParseError{File: file, Message: err.Error()}
		}
		return models.Models, nil
	}

	var model core.Model
	if err := json.Unmarshal(raw, &model); err != nil {
		return nil, &ParseError{File: file, Message: err.Error()}
	}
	if model.Namespace == "" {
		return nil, &ParseError{File: file, Message: "model has no namespace"}
	}
	return []core.Model{model}, nil
}

// LoadModelFile reads and decodes one model document.
func LoadModelFile(path string) ([]core.Model, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}
	return ParseModels(data, path)
}

// LoadModels reads every model document named by paths. Directories are
// walked for files with a model extension. Files are decoded concurrently;
// the result keeps path order, then file order.
func LoadModels(ctx context.Context, paths ...string) (*core.Models, error) {
	files, err := expand(paths)
	if err != nil {
		return nil, err
	}

	results := make([][]core.Model, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			models, err := LoadModelFile(file)
			if err != nil {
				return err
			}
			results[i] = models
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &core.Models{Models: []core.Model{}}
	for _, models := range results {
		out.Models = append(out.Models, models...)
	}
	return out, nil
}

// expand replaces directories in paths with the model files below them,
// sorted by name.
func expand(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && IsModelFile(path) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", p, err)
		}
		slices.Sort(found)
		files = append(files, found...)
	}
	return files, nil
}

// LoadCommandSet reads a command set written in JSON or YAML.
func LoadCommandSet(path string) (*decorator.CommandSet, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read command set: %w", err)
	}
	set, err := decorator.ParseCommandSet(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// toJSON converts a JSON or YAML document to JSON.
func toJSON(data []byte) ([]byte, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, fmt.Errorf("empty document")
	}
	if strings.HasPrefix(trimmed, "{") {
		return []byte(trimmed), nil
	}
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(trimmed), &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return json.Marshal(doc)
}

// ParseError reports a model document that could not be decoded.
type ParseError struct {
	File    string
	Message string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}
