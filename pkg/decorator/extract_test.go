package decorator

import (
	"testing"

	"github.com/2lambda123/accordproject-concerto/internal/testutil"
	"github.com/2lambda123/accordproject-concerto/pkg/core"
	"github.com/2lambda123/accordproject-concerto/pkg/modelmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decoratedModel carries model, declaration and property decorators,
// including vocabulary ones.
func decoratedModel() core.Model {
	m := acmeModel()
	m.Decorators = []core.Decorator{{Name: "Version", Arguments: []core.DecoratorArgument{core.NumberArg(2)}}}
	person := &m.Declarations[1]
	person.Decorators = []core.Decorator{
		{Name: TermDecorator, Arguments: []core.DecoratorArgument{core.StringArg("A person")}},
		{Name: TermDescriptionDecorator, Arguments: []core.DecoratorArgument{core.StringArg("A human being")}},
		{Name: "Form", Arguments: []core.DecoratorArgument{core.StringArg("card")}},
	}
	person.Properties[1].Decorators = []core.Decorator{
		{Name: TermDecorator, Arguments: []core.DecoratorArgument{core.StringArg("Age")}},
		{Name: "Range", Arguments: []core.DecoratorArgument{core.NumberArg(0), core.NumberArg(150)}},
	}
	person.Properties[2].Decorators = []core.Decorator{
		{Name: "Ref", Arguments: []core.DecoratorArgument{core.TypeReferenceArg(core.TypeIdentifier{Name: "Address"}, false)}},
	}
	m.Declarations[2].Decorators = []core.Decorator{}
	return m
}

func decoratedManager(t *testing.T) *modelmanager.ModelManager {
	t.Helper()
	mm := modelmanager.New()
	require.NoError(t, mm.AddModels(decoratedModel()))
	return mm
}

func TestExtractAst_Index(t *testing.T) {
	ast := &core.Models{Models: []core.Model{decoratedModel()}}
	_, idx := ExtractAst(ast, false)

	assert.Equal(t, []string{acmeNS}, idx.Namespaces())
	entries := idx.Entries(acmeNS)
	require.Len(t, entries, 4)

	assert.Equal(t, ExtractedEntry{Declaration: "", Property: "", Decorators: ast.Models[0].Decorators}, entries[0])
	assert.Equal(t, "Person", entries[1].Declaration)
	assert.Equal(t, "", entries[1].Property)
	assert.Equal(t, []string{TermDecorator, TermDescriptionDecorator, "Form"}, decoratorNames(entries[1].Decorators))
	assert.Equal(t, "age", entries[2].Property)
	assert.Equal(t, "address", entries[3].Property)
}

func TestExtractAst_NoBucketsForUndecoratedNamespaces(t *testing.T) {
	plain := acmeModel()
	plain.Namespace = "org.plain@1.0.0"
	ast := &core.Models{Models: []core.Model{plain, decoratedModel()}}

	_, idx := ExtractAst(ast, false)
	assert.Equal(t, []string{acmeNS}, idx.Namespaces())
	assert.Empty(t, idx.Entries("org.plain@1.0.0"))
}

func TestExtractAst_Remove(t *testing.T) {
	ast := &core.Models{Models: []core.Model{decoratedModel()}}
	out, idx := ExtractAst(ast, true)

	m := out.Models[0]
	assert.Empty(t, m.Decorators)
	for _, d := range m.Declarations {
		assert.Empty(t, d.Decorators, d.Name)
		for _, p := range d.Properties {
			assert.Empty(t, p.Decorators, d.Name+"."+p.Name)
		}
	}
	// Undecorated nodes stay undecorated rather than gaining empty lists.
	assert.Nil(t, m.Declarations[0].Decorators)

	// The index keeps the pre-removal snapshot and the input is untouched.
	assert.Equal(t, []string{TermDecorator, "Range"}, decoratorNames(idx.Entries(acmeNS)[2].Decorators))
	assert.Len(t, ast.Models[0].Declarations[1].Decorators, 3)
}

func TestExtractAst_Nil(t *testing.T) {
	out, idx := ExtractAst(nil, true)
	assert.Nil(t, out)
	assert.Equal(t, 0, idx.Len())
}

func TestExtractionIndex_SnapshotsAreDetached(t *testing.T) {
	ds := []core.Decorator{{Name: "A", Arguments: []core.DecoratorArgument{core.StringArg("x")}}}
	idx := NewExtractionIndex()
	idx.Record("ns", "D", "", ds)
	idx.Record("ns", "E", "", nil)

	ds[0].Arguments[0] = core.StringArg("changed")
	entries := idx.Entries("ns")
	require.Len(t, entries, 1)
	assert.Equal(t, "x", entries[0].Decorators[0].Arguments[0].Value)
}

func TestExtractDecorators(t *testing.T) {
	mm := decoratedManager(t)
	res, err := ExtractDecorators(mm, ExtractOptions{RemoveDecoratorsFromModel: true, Logger: testutil.NewTestLogger(t)})
	require.NoError(t, err)

	require.Len(t, res.CommandSets, 1)
	set := res.CommandSets[0]
	assert.Equal(t, "org.acme", set.Name)
	assert.Equal(t, "1.0.0", set.Version)
	assert.Equal(t, []string{"Version", "Form", "Range", "Ref"}, commandNames(set))

	require.Len(t, res.Vocabularies, 1)
	assert.Contains(t, res.Vocabularies[0], "locale: en\n")

	person := declarationIn(t, res.ModelManager, acmeNS+".Person")
	assert.Empty(t, person.Decorators)
	assert.Len(t, declarationIn(t, mm, acmeNS+".Person").Decorators, 3)

	_, err = ExtractDecorators(nil, ExtractOptions{})
	assert.ErrorIs(t, err, ErrNilModelManager)
}

func TestExtractDecorators_CommandSetsValidate(t *testing.T) {
	mm := decoratedManager(t)
	res, err := ExtractDecorators(mm, ExtractOptions{})
	require.NoError(t, err)

	vmm, err := Validate(res.CommandSets[0], decoratedModel())
	require.NoError(t, err)
	for _, cmd := range res.CommandSets[0].Commands {
		assert.NoError(t, ValidateCommand(vmm, cmd))
	}
}

func commandNames(set *CommandSet) []string {
	var out []string
	for _, c := range set.Commands {
		out = append(out, c.Decorator.Name)
	}
	return out
}

// withoutVocabulary drops Term decorators and normalises empty decorator
// lists to nil, the form a round trip is compared in.
func withoutVocabulary(m core.Model) core.Model {
	m = m.Clone()
	strip := func(ds []core.Decorator) []core.Decorator {
		var out []core.Decorator
		for _, d := range ds {
			if !isVocabulary(d.Name) {
				out = append(out, d)
			}
		}
		return out
	}
	m.Decorators = nil
	for di := range m.Declarations {
		d := &m.Declarations[di]
		d.Decorators = strip(d.Decorators)
		for pi := range d.Properties {
			d.Properties[pi].Decorators = strip(d.Properties[pi].Decorators)
		}
	}
	return m
}

func TestExtractThenDecorate_RoundTrip(t *testing.T) {
	original := decoratedModel()
	original.Decorators = nil // see TestExtractThenDecorate_ModelDecoratorsMoveToDeclarations
	mm := modelmanager.New()
	require.NoError(t, mm.AddModels(original))

	res, err := ExtractDecorators(mm, ExtractOptions{RemoveDecoratorsFromModel: true})
	require.NoError(t, err)
	require.Len(t, res.CommandSets, 1)

	out, err := DecorateModels(res.ModelManager, res.CommandSets[0], DecorateOptions{Validate: true, ValidateCommands: true})
	require.NoError(t, err)

	got := out.GetModelFile(acmeNS).Model()
	assert.Equal(t, withoutVocabulary(original), withoutVocabulary(got))
}

func TestExtractThenDecorate_ModelDecoratorsMoveToDeclarations(t *testing.T) {
	mm := modelmanager.New()
	require.NoError(t, mm.AddModels(decoratedModel()))

	res, err := ExtractDecorators(mm, ExtractOptions{RemoveDecoratorsFromModel: true})
	require.NoError(t, err)
	require.Len(t, res.CommandSets, 1)

	var modelLevel []Command
	for _, cmd := range res.CommandSets[0].Commands {
		if cmd.Decorator.Name == "Version" {
			modelLevel = append(modelLevel, cmd)
		}
	}
	require.Len(t, modelLevel, 1)
	assert.Equal(t, CommandTarget{Namespace: acmeNS}, modelLevel[0].Target)

	out, err := DecorateModels(res.ModelManager, res.CommandSets[0], DecorateOptions{ValidateCommands: true})
	require.NoError(t, err)

	// a namespace-only target selects every declaration, never the model
	got := out.GetModelFile(acmeNS).Model()
	assert.Empty(t, got.Decorators)
	for _, decl := range got.Declarations {
		names := decoratorNames(decl.Decorators)
		assert.Equal(t, 1, countOf(names, "Version"), "declaration %s", decl.Name)
		for _, p := range decl.Properties {
			assert.NotContains(t, decoratorNames(p.Decorators), "Version", "property %s.%s", decl.Name, p.Name)
		}
	}
}

func countOf(names []string, name string) int {
	n := 0
	for _, s := range names {
		if s == name {
			n++
		}
	}
	return n
}
