// Package modelmanager provides an in-memory Concerto type system.
// It indexes model files by namespace and declarations by fully qualified
// name, and answers the type and property queries that command validation
// and structural validation need.
package modelmanager

import (
	"errors"
	"fmt"
	"sync"

	"github.com/2lambda123/accordproject-concerto/pkg/core"
	"github.com/2lambda123/accordproject-concerto/pkg/namespace"
)

// ModelManager maps namespaces to model files for type resolution.
type ModelManager struct {
	mu sync.RWMutex

	strict bool

	// files holds model files in insertion order
	files []*ModelFile

	// byNamespace maps full namespaces to files: "org.acme@1.0.0" → *ModelFile
	byNamespace map[string]*ModelFile
}

// Option configures a ModelManager.
type Option func(*ModelManager)

// WithStrict requires every model namespace to carry a semantic version.
func WithStrict(strict bool) Option {
	return func(m *ModelManager) {
		m.strict = strict
	}
}

// New creates a new empty model manager.
func New(opts ...Option) *ModelManager {
	m := &ModelManager{
		byNamespace: make(map[string]*ModelFile),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// FromAst creates a model manager holding a copy of every model in ast.
func FromAst(ast *core.Models, opts ...Option) (*ModelManager, error) {
	m := New(opts...)
	if ast == nil {
		return m, nil
	}
	if err := m.AddModels(ast.Models...); err != nil {
		return nil, err
	}
	return m, nil
}

// IsStrict reports whether the manager requires versioned namespaces.
func (m *ModelManager) IsStrict() bool {
	return m.strict
}

// AddModel adds a copy of the model to the manager.
func (m *ModelManager) AddModel(model core.Model) (*ModelFile, error) {
	ns := namespace.Parse(model.Namespace)
	if ns.Name == "" {
		return nil, &NamespaceError{Namespace: model.Namespace, Reason: "namespace is required"}
	}
	if m.strict && !ns.HasValidVersion() {
		return nil, &NamespaceError{
			Namespace: model.Namespace,
			Reason:    "strict mode requires a semantic version, e.g. " + ns.Name + "@1.0.0",
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byNamespace[model.Namespace]; exists {
		return nil, &NamespaceError{Namespace: model.Namespace, Reason: "namespace already loaded"}
	}

	f, err := newModelFile(m, model.Clone())
	if err != nil {
		return nil, err
	}
	m.files = append(m.files, f)
	m.byNamespace[model.Namespace] = f
	return f, nil
}

// AddModels adds each model in order, stopping at the first failure.
func (m *ModelManager) AddModels(models ...core.Model) error {
	for _, model := range models {
		if _, err := m.AddModel(model); err != nil {
			return err
		}
	}
	return nil
}

// GetModelFile returns the model file for an exact namespace, or nil.
func (m *ModelManager) GetModelFile(ns string) *ModelFile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.byNamespace[ns]
}

// GetModelFiles returns all model files in insertion order.
func (m *ModelManager) GetModelFiles() []*ModelFile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*ModelFile, len(m.files))
	copy(out, m.files)
	return out
}

// FindModelFiles returns the model files whose unversioned namespace matches
// the unversioned form of ns.
func (m *ModelManager) FindModelFiles(ns string) []*ModelFile {
	name := namespace.Unversioned(ns)
	var out []*ModelFile
	for _, f := range m.GetModelFiles() {
		if namespace.Unversioned(f.Namespace()) == name {
			out = append(out, f)
		}
	}
	return out
}

// Namespaces returns the namespaces of all model files in insertion order.
func (m *ModelManager) Namespaces() []string {
	files := m.GetModelFiles()
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Namespace()
	}
	return out
}

// GetType returns the declaration with the given fully qualified name.
func (m *ModelManager) GetType(fqn string) (*ClassDeclaration, error) {
	ns, name := namespace.SplitQualified(fqn)
	f := m.GetModelFile(ns)
	if f == nil {
		return nil, &TypeNotFoundError{Type: fqn, Reason: fmt.Sprintf("namespace %q is not loaded", ns)}
	}
	decl, ok := f.GetType(name)
	if !ok {
		return nil, &TypeNotFoundError{Type: fqn, Reason: fmt.Sprintf("no declaration %q in %s", name, ns)}
	}
	return decl, nil
}

// ResolveType checks that typeName names a loaded declaration.
// The context describes the reference being resolved and is used in errors.
func (m *ModelManager) ResolveType(context, typeName string) error {
	_, err := m.GetType(typeName)
	var nf *TypeNotFoundError
	if errors.As(err, &nf) {
		nf.Context = context
	}
	return err
}

// GetAst returns a deep copy of every loaded model.
func (m *ModelManager) GetAst() *core.Models {
	files := m.GetModelFiles()
	ast := &core.Models{Models: make([]core.Model, 0, len(files))}
	for _, f := range files {
		ast.Models = append(ast.Models, f.model.Clone())
	}
	return ast
}

// Count returns the number of loaded model files.
func (m *ModelManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}
