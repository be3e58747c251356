package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleModel() Model {
	return Model{
		Namespace: "org.acme@1.0.0",
		Imports: []Import{
			{Kind: ImportType, Namespace: "org.base@1.0.0", Types: []string{"Base"}},
		},
		Declarations: []Declaration{
			{
				Kind:       DeclarationConcept,
				Name:       "Person",
				SuperType:  &TypeIdentifier{Name: "Base", Namespace: "org.base@1.0.0"},
				Decorators: []Decorator{{Name: "Term", Arguments: []DecoratorArgument{StringArg("A person")}}},
				Properties: []Property{
					{Kind: PropertyString, Name: "name"},
					{Kind: PropertyInteger, Name: "age", IsOptional: true, Decorators: []Decorator{{Name: "Range"}}},
					{Kind: PropertyObject, Name: "address", Type: &TypeIdentifier{Name: "Address"}},
				},
			},
			{Kind: DeclarationStringScalar, Name: "SSN"},
		},
	}
}

func TestModels_Clone_IsDeep(t *testing.T) {
	orig := &Models{Models: []Model{sampleModel()}}
	clone := orig.Clone()
	require.Equal(t, orig, clone)

	clone.Models[0].Declarations[0].Decorators[0].Name = "Changed"
	clone.Models[0].Declarations[0].Properties[1].Decorators = append(clone.Models[0].Declarations[0].Properties[1].Decorators, Decorator{Name: "X"})
	clone.Models[0].Declarations[0].SuperType.Name = "Other"
	clone.Models[0].Declarations[0].Properties[2].Type.Name = "Elsewhere"
	clone.Models[0].Imports[0].Types[0] = "Mutated"

	assert.Equal(t, "Term", orig.Models[0].Declarations[0].Decorators[0].Name)
	assert.Len(t, orig.Models[0].Declarations[0].Properties[1].Decorators, 1)
	assert.Equal(t, "Base", orig.Models[0].Declarations[0].SuperType.Name)
	assert.Equal(t, "Address", orig.Models[0].Declarations[0].Properties[2].Type.Name)
	assert.Equal(t, "Base", orig.Models[0].Imports[0].Types[0])
}

func TestClone_PreservesNilAndEmpty(t *testing.T) {
	d := Declaration{Kind: DeclarationConcept, Name: "A", Decorators: []Decorator{}}
	c := d.Clone()
	assert.NotNil(t, c.Decorators)
	assert.Empty(t, c.Decorators)
	assert.Nil(t, c.Properties)
	assert.False(t, c.HasProperties())
}

func TestModel_Lookups(t *testing.T) {
	m := sampleModel()

	decl, ok := m.Declaration("Person")
	require.True(t, ok)
	assert.True(t, decl.HasProperties())

	prop, ok := decl.Property("age")
	require.True(t, ok)
	assert.Equal(t, PropertyInteger, prop.Kind)

	_, ok = decl.Property("missing")
	assert.False(t, ok)
	_, ok = m.Declaration("Missing")
	assert.False(t, ok)
}

func TestModels_JSONRoundTrip(t *testing.T) {
	orig := Models{Models: []Model{sampleModel()}}
	orig.Models[0].Declarations[0].Properties[0].Decorators = []Decorator{
		{Name: "Form", Arguments: []DecoratorArgument{
			StringArg("text"),
			NumberArg(3),
			BooleanArg(true),
			TypeReferenceArg(TypeIdentifier{Name: "Person"}, true),
		}},
	}

	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var got Models
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, orig, got)
}

func TestDeclaration_UnmarshalJSON(t *testing.T) {
	data := `{
		"$class": "concerto.metamodel@1.0.0.ConceptDeclaration",
		"name": "Bar",
		"properties": [
			{"$class": "concerto.metamodel@1.0.0.StringProperty", "name": "label"},
			{"$class": "concerto.metamodel@1.0.0.ObjectProperty", "name": "child",
			 "type": {"$class": "concerto.metamodel@1.0.0.TypeIdentifier", "name": "Child"}, "isArray": true}
		]
	}`

	var d Declaration
	require.NoError(t, json.Unmarshal([]byte(data), &d))
	assert.Equal(t, DeclarationConcept, d.Kind)
	require.Len(t, d.Properties, 2)
	assert.Equal(t, PropertyObject, d.Properties[1].Kind)
	assert.True(t, d.Properties[1].IsArray)
	assert.Equal(t, "Child", d.Properties[1].Type.Name)
	assert.Nil(t, d.Decorators)
}

func TestUnmarshalJSON_InvalidClass(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		target any
	}{
		{"missing property class", `{"name": "x"}`, &Property{}},
		{"foreign declaration class", `{"$class": "org.acme.Thing", "name": "x"}`, &Declaration{}},
		{"unknown argument class", `{"$class": "concerto.metamodel@1.0.0.DecoratorDate", "value": "x"}`, &DecoratorArgument{}},
		{"wrong decorator class", `{"$class": "concerto.metamodel@1.0.0.Model", "name": "x"}`, &Decorator{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := json.Unmarshal([]byte(tt.data), tt.target)
			var classErr *InvalidClassError
			assert.ErrorAs(t, err, &classErr)
		})
	}
}

func TestDecoratorArgument_String(t *testing.T) {
	assert.Equal(t, "Age", StringArg("Age").String())
	assert.Equal(t, "2.5", NumberArg(2.5).String())
	assert.Equal(t, "true", BooleanArg(true).String())
	assert.Equal(t, "org.acme.Person", TypeReferenceArg(TypeIdentifier{Name: "Person", Namespace: "org.acme"}, false).String())
}

func TestDeclaration_JSONRoundTrip_KeepsUnmodelledFields(t *testing.T) {
	data := `{
		"$class": "concerto.metamodel@1.0.0.ConceptDeclaration",
		"name": "Bar",
		"identified": {"$class": "concerto.metamodel@1.0.0.IdentifiedBy", "name": "id"},
		"location": {"$class": "concerto.metamodel@1.0.0.Range", "start": {"line": 1}},
		"decorators": [
			{"$class": "concerto.metamodel@1.0.0.Decorator", "name": "Hidden",
			 "location": {"$class": "concerto.metamodel@1.0.0.Range", "start": {"line": 2}}}
		],
		"properties": [
			{"$class": "concerto.metamodel@1.0.0.StringProperty", "name": "id",
			 "defaultValue": "x",
			 "validator": {"$class": "concerto.metamodel@1.0.0.StringRegexValidator", "pattern": "^a", "flags": ""},
			 "lengthValidator": {"$class": "concerto.metamodel@1.0.0.StringLengthValidator", "maxLength": 10}},
			{"$class": "concerto.metamodel@1.0.0.IntegerProperty", "name": "age",
			 "validator": {"$class": "concerto.metamodel@1.0.0.IntegerDomainValidator", "lower": 0, "upper": 150}},
			{"$class": "concerto.metamodel@1.0.0.ObjectProperty", "name": "child",
			 "type": {"$class": "concerto.metamodel@1.0.0.TypeIdentifier", "name": "Child", "resolvedName": "org.acme@1.0.0.Child"}}
		]
	}`

	var d Declaration
	require.NoError(t, json.Unmarshal([]byte(data), &d))
	assert.Contains(t, d.Extra, "identified")
	assert.Contains(t, d.Extra, "location")
	assert.Contains(t, d.Decorators[0].Extra, "location")
	assert.Contains(t, d.Properties[0].Extra, "validator")
	assert.Equal(t, "org.acme@1.0.0.Child", d.Properties[2].Type.ResolvedName)

	// decorating a copy leaves the unmodelled fields in place
	clone := d.Clone()
	clone.Properties[0].Decorators = append(clone.Properties[0].Decorators, Decorator{Name: "Form", Arguments: []DecoratorArgument{StringArg("text")}})
	clone.Properties[0].Extra["defaultValue"] = json.RawMessage(`"y"`)
	assert.JSONEq(t, `"x"`, string(d.Properties[0].Extra["defaultValue"]))

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, data, string(out))

	decorated, err := json.Marshal(clone)
	require.NoError(t, err)
	var back Declaration
	require.NoError(t, json.Unmarshal(decorated, &back))
	require.Len(t, back.Properties[0].Decorators, 1)
	assert.Equal(t, "Form", back.Properties[0].Decorators[0].Name)
	assert.JSONEq(t, `{"$class": "concerto.metamodel@1.0.0.IntegerDomainValidator", "lower": 0, "upper": 150}`,
		string(back.Properties[1].Extra["validator"]))
	assert.Contains(t, back.Extra, "identified")
}

func TestDeclaration_MapDeclaration(t *testing.T) {
	data := `{
		"$class": "concerto.metamodel@1.0.0.MapDeclaration",
		"name": "Dictionary",
		"key": {"$class": "concerto.metamodel@1.0.0.StringMapKeyType"},
		"value": {"$class": "concerto.metamodel@1.0.0.ObjectMapValueType",
		          "type": {"$class": "concerto.metamodel@1.0.0.TypeIdentifier", "name": "Person"}}
	}`

	var d Declaration
	require.NoError(t, json.Unmarshal([]byte(data), &d))
	assert.Equal(t, DeclarationMap, d.Kind)
	assert.False(t, d.HasProperties())
	assert.Contains(t, d.Extra, "key")
	assert.Contains(t, d.Extra, "value")

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, data, string(out))
}

func TestModel_JSONRoundTrip_KeepsModelFields(t *testing.T) {
	data := `{
		"$class": "concerto.metamodel@1.0.0.Model",
		"namespace": "org.acme@1.0.0",
		"sourceUri": "acme.cto",
		"concertoVersion": "^3.0.0",
		"imports": [
			{"$class": "concerto.metamodel@1.0.0.ImportType", "namespace": "org.base@1.0.0", "name": "Base",
			 "uri": "https://models.example.com/base.cto"}
		],
		"declarations": []
	}`

	var m Model
	require.NoError(t, json.Unmarshal([]byte(data), &m))
	assert.Contains(t, m.Extra, "sourceUri")
	assert.Contains(t, m.Imports[0].Extra, "uri")

	out, err := json.Marshal(m.Clone())
	require.NoError(t, err)
	assert.JSONEq(t, data, string(out))
}
