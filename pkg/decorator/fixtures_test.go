package decorator

import (
	"testing"

	"github.com/2lambda123/accordproject-concerto/pkg/core"
	"github.com/2lambda123/accordproject-concerto/pkg/modelmanager"
	"github.com/stretchr/testify/require"
)

const acmeNS = "org.acme@1.0.0"

// acmeModel is a versioned model with inheritance, an enum and a scalar.
func acmeModel() core.Model {
	return core.Model{
		Namespace: acmeNS,
		Declarations: []core.Declaration{
			{
				Kind:       core.DeclarationConcept,
				Name:       "Party",
				IsAbstract: true,
				Properties: []core.Property{{Kind: core.PropertyString, Name: "id"}},
			},
			{
				Kind:      core.DeclarationConcept,
				Name:      "Person",
				SuperType: &core.TypeIdentifier{Name: "Party"},
				Properties: []core.Property{
					{Kind: core.PropertyString, Name: "name"},
					{Kind: core.PropertyInteger, Name: "age"},
					{Kind: core.PropertyObject, Name: "address", Type: &core.TypeIdentifier{Name: "Address"}},
				},
			},
			{
				Kind:       core.DeclarationConcept,
				Name:       "Address",
				Properties: []core.Property{{Kind: core.PropertyString, Name: "city"}},
			},
			{
				Kind: core.DeclarationEnum,
				Name: "Color",
				Properties: []core.Property{
					{Kind: core.PropertyEnum, Name: "RED"},
					{Kind: core.PropertyEnum, Name: "BLUE"},
				},
			},
			{Kind: core.DeclarationStringScalar, Name: "Email"},
		},
	}
}

func acmeManager(t *testing.T) *modelmanager.ModelManager {
	t.Helper()
	mm := modelmanager.New()
	require.NoError(t, mm.AddModels(acmeModel()))
	return mm
}

// declarationIn returns a copy of a declaration from mm.
func declarationIn(t *testing.T, mm *modelmanager.ModelManager, fqn string) core.Declaration {
	t.Helper()
	decl, err := mm.GetType(fqn)
	require.NoError(t, err)
	return decl.Declaration()
}

func propertyOf(t *testing.T, decl core.Declaration, name string) core.Property {
	t.Helper()
	p, ok := decl.Property(name)
	require.True(t, ok, "property %s not found on %s", name, decl.Name)
	return *p
}

func upsert(target CommandTarget, name string, args ...core.DecoratorArgument) Command {
	return Command{Target: target, Decorator: core.Decorator{Name: name, Arguments: args}, Type: Upsert}
}

func appendCmd(target CommandTarget, name string, args ...core.DecoratorArgument) Command {
	return Command{Target: target, Decorator: core.Decorator{Name: name, Arguments: args}, Type: Append}
}

func commandSet(cmds ...Command) *CommandSet {
	return &CommandSet{Name: "test", Version: "1.0.0", Commands: cmds}
}

func decoratorNames(ds []core.Decorator) []string {
	var out []string
	for _, d := range ds {
		out = append(out, d.Name)
	}
	return out
}
