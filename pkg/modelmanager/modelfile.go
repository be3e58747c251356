package modelmanager

import (
	"fmt"

	"github.com/2lambda123/accordproject-concerto/pkg/core"
	"github.com/2lambda123/accordproject-concerto/pkg/namespace"
)

// ModelFile is a model loaded into a ModelManager.
type ModelFile struct {
	mm    *ModelManager
	model core.Model

	// byName maps declaration names to their ClassDeclaration
	byName map[string]*ClassDeclaration
}

func newModelFile(mm *ModelManager, model core.Model) (*ModelFile, error) {
	f := &ModelFile{
		mm:     mm,
		model:  model,
		byName: make(map[string]*ClassDeclaration, len(model.Declarations)),
	}
	for i := range f.model.Declarations {
		decl := &f.model.Declarations[i]
		if _, dup := f.byName[decl.Name]; dup {
			return nil, &DuplicateTypeError{Namespace: model.Namespace, Name: decl.Name}
		}
		f.byName[decl.Name] = &ClassDeclaration{file: f, decl: decl}
	}
	return f, nil
}

// Namespace returns the full namespace of the model file.
func (f *ModelFile) Namespace() string {
	return f.model.Namespace
}

// Model returns a deep copy of the underlying model.
func (f *ModelFile) Model() core.Model {
	return f.model.Clone()
}

// GetType returns the local declaration with the given short name.
func (f *ModelFile) GetType(name string) (*ClassDeclaration, bool) {
	d, ok := f.byName[name]
	return d, ok
}

// ResolveTypeName returns the fully qualified name of a type referenced from
// this file. Explicit namespaces win, then local declarations, then imports.
func (f *ModelFile) ResolveTypeName(t core.TypeIdentifier) (string, error) {
	if t.Namespace != "" {
		return namespace.Qualify(t.Namespace, t.Name), nil
	}
	if _, ok := f.byName[t.Name]; ok {
		return namespace.Qualify(f.Namespace(), t.Name), nil
	}
	for _, imp := range f.model.Imports {
		switch imp.Kind {
		case core.ImportAll:
			if other := f.mm.GetModelFile(imp.Namespace); other != nil {
				if _, ok := other.GetType(t.Name); ok {
					return namespace.Qualify(imp.Namespace, t.Name), nil
				}
			}
		default:
			for _, name := range imp.Types {
				if name == t.Name {
					return namespace.Qualify(imp.Namespace, t.Name), nil
				}
			}
		}
	}
	return "", &TypeNotFoundError{
		Type:   t.Name,
		Reason: fmt.Sprintf("not declared in or imported into %s", f.Namespace()),
	}
}

// ClassDeclaration is a declaration resolved inside a ModelManager.
type ClassDeclaration struct {
	file *ModelFile
	decl *core.Declaration
}

// Name returns the short name of the declaration.
func (c *ClassDeclaration) Name() string { return c.decl.Name }

// Namespace returns the namespace of the declaring model file.
func (c *ClassDeclaration) Namespace() string { return c.file.Namespace() }

// FullyQualifiedName returns "namespace.Name".
func (c *ClassDeclaration) FullyQualifiedName() string {
	return namespace.Qualify(c.file.Namespace(), c.decl.Name)
}

// Kind returns the declaration kind.
func (c *ClassDeclaration) Kind() core.DeclarationKind { return c.decl.Kind }

// IsAbstract reports whether the declaration is abstract.
func (c *ClassDeclaration) IsAbstract() bool { return c.decl.IsAbstract }

// ModelFile returns the declaring model file.
func (c *ClassDeclaration) ModelFile() *ModelFile { return c.file }

// Declaration returns a deep copy of the underlying AST node.
func (c *ClassDeclaration) Declaration() core.Declaration { return c.decl.Clone() }

// SuperType returns the parent declaration, or nil when there is none.
func (c *ClassDeclaration) SuperType() (*ClassDeclaration, error) {
	if c.decl.SuperType == nil {
		return nil, nil
	}
	fqn, err := c.file.ResolveTypeName(*c.decl.SuperType)
	if err != nil {
		return nil, err
	}
	return c.file.mm.GetType(fqn)
}

// maxTypeDepth bounds super type walks so a cyclic model cannot loop forever.
const maxTypeDepth = 64

// lineage returns the declaration followed by its super types, nearest first.
func (c *ClassDeclaration) lineage() []*ClassDeclaration {
	out := []*ClassDeclaration{c}
	cur := c
	for i := 0; i < maxTypeDepth; i++ {
		parent, err := cur.SuperType()
		if err != nil || parent == nil {
			break
		}
		out = append(out, parent)
		cur = parent
	}
	return out
}

// GetProperties returns inherited properties first, then declared ones.
func (c *ClassDeclaration) GetProperties() []core.Property {
	chain := c.lineage()
	var out []core.Property
	for i := len(chain) - 1; i >= 0; i-- {
		for _, p := range chain[i].decl.Properties {
			out = append(out, p.Clone())
		}
	}
	return out
}

// GetProperty returns the named property, searching super types, or nil.
func (c *ClassDeclaration) GetProperty(name string) *core.Property {
	for _, d := range c.lineage() {
		if p, ok := d.decl.Property(name); ok {
			cp := p.Clone()
			return &cp
		}
	}
	return nil
}

// PropertyOwner returns the declaration in the lineage that declares name,
// or nil when no such property exists.
func (c *ClassDeclaration) PropertyOwner(name string) *ClassDeclaration {
	for _, d := range c.lineage() {
		if _, ok := d.decl.Property(name); ok {
			return d
		}
	}
	return nil
}

// IsSubtypeOf reports whether the declaration is fqn or inherits from it.
func (c *ClassDeclaration) IsSubtypeOf(fqn string) bool {
	for _, d := range c.lineage() {
		if d.FullyQualifiedName() == fqn {
			return true
		}
	}
	return false
}

// EnumValues returns the value names of an enum declaration.
func (c *ClassDeclaration) EnumValues() []string {
	if c.decl.Kind != core.DeclarationEnum {
		return nil
	}
	out := make([]string, 0, len(c.decl.Properties))
	for _, p := range c.decl.Properties {
		out = append(out, p.Name)
	}
	return out
}
