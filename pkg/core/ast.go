package core

// Models is the root of a metamodel AST: every model known to a type system.
type Models struct {
	Models []Model
}

// Model is a single model file: a namespace and the declarations it owns.
type Model struct {
	// Namespace is the dotted namespace, optionally suffixed with @version
	Namespace string
	// Imports are the types this model brings in from other namespaces
	Imports []Import
	// Decorators are the model-level decorators
	Decorators []Decorator
	// Declarations are the types declared in this namespace, in source order
	Declarations []Declaration
	Extra        Extra
}

// Import brings types from another namespace into scope.
type Import struct {
	Kind      ImportKind
	Namespace string
	// Types lists the imported names (one for ImportType, none for ImportAll)
	Types []string
	Extra Extra
}

// Declaration is a named type definition inside a namespace.
type Declaration struct {
	Kind       DeclarationKind
	Name       string
	IsAbstract bool
	// SuperType is the parent declaration, if any
	SuperType  *TypeIdentifier
	Decorators []Decorator
	// Properties is nil for declarations that cannot own properties
	// (scalars and maps).
	Properties []Property
	// Extra carries fields such as identified, key and value
	Extra Extra
}

// Property is a named, typed member of a declaration.
type Property struct {
	Kind       PropertyKind
	Name       string
	IsArray    bool
	IsOptional bool
	// Type is the referenced declaration for object and relationship properties
	Type       *TypeIdentifier
	Decorators []Decorator
	// Extra carries fields such as defaultValue, validator and lengthValidator
	Extra Extra
}

// TypeIdentifier names a declaration, optionally qualified by namespace.
type TypeIdentifier struct {
	Name      string
	Namespace string
	// ResolvedName is set by resolvers that qualify references
	ResolvedName string
}

// Decorator is a named metadata annotation with optional ordered arguments.
type Decorator struct {
	Name      string
	Arguments []DecoratorArgument
	Extra     Extra
}

// DecoratorArgument is a literal argument of a decorator.
//
// Value holds a string for ArgumentString, a float64 for ArgumentNumber,
// a bool for ArgumentBoolean and a TypeIdentifier for ArgumentTypeReference.
type DecoratorArgument struct {
	Kind    ArgumentKind
	Value   any
	IsArray bool // only meaningful for type references
}

// StringArg returns a string decorator argument.
func StringArg(s string) DecoratorArgument {
	return DecoratorArgument{Kind: ArgumentString, Value: s}
}

// NumberArg returns a number decorator argument.
func NumberArg(n float64) DecoratorArgument {
	return DecoratorArgument{Kind: ArgumentNumber, Value: n}
}

// BooleanArg returns a boolean decorator argument.
func BooleanArg(b bool) DecoratorArgument {
	return DecoratorArgument{Kind: ArgumentBoolean, Value: b}
}

// TypeReferenceArg returns a type reference decorator argument.
func TypeReferenceArg(t TypeIdentifier, isArray bool) DecoratorArgument {
	return DecoratorArgument{Kind: ArgumentTypeReference, Value: t, IsArray: isArray}
}

// HasProperties reports whether the declaration exposes a properties sequence.
func (d *Declaration) HasProperties() bool {
	return d.Properties != nil
}

// Property returns the declared (not inherited) property with the given name.
func (d *Declaration) Property(name string) (*Property, bool) {
	for i := range d.Properties {
		if d.Properties[i].Name == name {
			return &d.Properties[i], true
		}
	}
	return nil, false
}

// Declaration returns the declaration with the given name.
func (m *Model) Declaration(name string) (*Declaration, bool) {
	for i := range m.Declarations {
		if m.Declarations[i].Name == name {
			return &m.Declarations[i], true
		}
	}
	return nil, false
}

// =============================================================================
// Cloning
// =============================================================================
//
// Clones preserve nil-ness of slices so that an absent decorator sequence
// stays absent and an emptied one stays empty.

// Clone returns a deep copy of the AST.
func (m *Models) Clone() *Models {
	if m == nil {
		return nil
	}
	out := &Models{}
	if m.Models != nil {
		out.Models = make([]Model, len(m.Models))
		for i := range m.Models {
			out.Models[i] = m.Models[i].Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the model.
func (m Model) Clone() Model {
	out := m
	if m.Imports != nil {
		out.Imports = make([]Import, len(m.Imports))
		for i, imp := range m.Imports {
			out.Imports[i] = imp
			out.Imports[i].Types = cloneStrings(imp.Types)
			out.Imports[i].Extra = imp.Extra.Clone()
		}
	}
	out.Decorators = CloneDecorators(m.Decorators)
	out.Extra = m.Extra.Clone()
	if m.Declarations != nil {
		out.Declarations = make([]Declaration, len(m.Declarations))
		for i := range m.Declarations {
			out.Declarations[i] = m.Declarations[i].Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the declaration.
func (d Declaration) Clone() Declaration {
	out := d
	out.SuperType = d.SuperType.Clone()
	out.Decorators = CloneDecorators(d.Decorators)
	out.Extra = d.Extra.Clone()
	if d.Properties != nil {
		out.Properties = make([]Property, len(d.Properties))
		for i := range d.Properties {
			out.Properties[i] = d.Properties[i].Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the property.
func (p Property) Clone() Property {
	out := p
	out.Type = p.Type.Clone()
	out.Decorators = CloneDecorators(p.Decorators)
	out.Extra = p.Extra.Clone()
	return out
}

// Clone returns a copy of the type identifier.
func (t *TypeIdentifier) Clone() *TypeIdentifier {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// Clone returns a deep copy of the decorator.
func (d Decorator) Clone() Decorator {
	out := Decorator{Name: d.Name, Extra: d.Extra.Clone()}
	if d.Arguments != nil {
		// Argument values are immutable scalars or TypeIdentifier values.
		out.Arguments = make([]DecoratorArgument, len(d.Arguments))
		copy(out.Arguments, d.Arguments)
	}
	return out
}

// CloneDecorators returns a deep copy of a decorator sequence.
func CloneDecorators(ds []Decorator) []Decorator {
	if ds == nil {
		return nil
	}
	out := make([]Decorator, len(ds))
	for i := range ds {
		out[i] = ds[i].Clone()
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
