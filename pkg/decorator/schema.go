package decorator

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sync"

	"github.com/2lambda123/accordproject-concerto/pkg/core"
	"gopkg.in/yaml.v3"
)

//go:embed schema/*.yaml
var schemaFS embed.FS

// schemaFiles lists the built-in schema documents in load order.
var schemaFiles = []string{"metamodel.yaml", "decoratorcommands.yaml"}

var loadSchema = sync.OnceValues(func() ([]core.Model, error) {
	models := make([]core.Model, 0, len(schemaFiles))
	for _, name := range schemaFiles {
		data, err := schemaFS.ReadFile(path.Join("schema", name))
		if err != nil {
			return nil, err
		}
		m, err := decodeModel(data)
		if err != nil {
			return nil, fmt.Errorf("schema %s: %w", name, err)
		}
		models = append(models, m)
	}
	return models, nil
})

// Schema returns the built-in models that describe command sets: a subset of
// the Concerto metamodel and the decorator command set namespace.
func Schema() []core.Model {
	models, err := loadSchema()
	if err != nil {
		panic(fmt.Sprintf("decorator: malformed built-in schema: %v", err))
	}
	out := make([]core.Model, len(models))
	for i, m := range models {
		out[i] = m.Clone()
	}
	return out
}

// isSchemaNamespace reports whether ns belongs to the built-in schema.
func isSchemaNamespace(ns string) bool {
	return ns == core.MetaModelNamespace || ns == CommandsNamespace
}

// decodeModel reads a metamodel document written in YAML or JSON.
func decodeModel(data []byte) (core.Model, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return core.Model{}, err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return core.Model{}, err
	}
	var m core.Model
	if err := json.Unmarshal(raw, &m); err != nil {
		return core.Model{}, err
	}
	return m, nil
}
