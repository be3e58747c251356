package core

import "strings"

// MetaModelNamespace is the namespace of the Concerto metamodel.
// Canonical "$class" strings of AST nodes live in this namespace.
const MetaModelNamespace = "concerto.metamodel@1.0.0"

// metaModelName is MetaModelNamespace without its version.
const metaModelName = "concerto.metamodel"

// ClassName returns the canonical "$class" of a metamodel type.
func ClassName(short string) string {
	return MetaModelNamespace + "." + short
}

// shortClassName strips the metamodel namespace from a "$class" string.
// Any metamodel version is accepted, as is a bare short name.
func shortClassName(class string) (string, bool) {
	i := strings.LastIndex(class, ".")
	if i < 0 {
		return class, class != ""
	}
	ns, _, _ := strings.Cut(class[:i], "@")
	if ns != metaModelName {
		return "", false
	}
	return class[i+1:], true
}

// =============================================================================
// DeclarationKind
// =============================================================================

// DeclarationKind discriminates the declaration variants of a model.
type DeclarationKind int

// Declaration kinds.
const (
	DeclarationConcept DeclarationKind = iota
	DeclarationAsset
	DeclarationParticipant
	DeclarationTransaction
	DeclarationEvent
	DeclarationEnum
	DeclarationStringScalar
	DeclarationIntegerScalar
	DeclarationLongScalar
	DeclarationDoubleScalar
	DeclarationBooleanScalar
	DeclarationDateTimeScalar
	DeclarationMap
)

var declarationKindNames = [...]string{
	DeclarationConcept:        "ConceptDeclaration",
	DeclarationAsset:          "AssetDeclaration",
	DeclarationParticipant:    "ParticipantDeclaration",
	DeclarationTransaction:    "TransactionDeclaration",
	DeclarationEvent:          "EventDeclaration",
	DeclarationEnum:           "EnumDeclaration",
	DeclarationStringScalar:   "StringScalar",
	DeclarationIntegerScalar:  "IntegerScalar",
	DeclarationLongScalar:     "LongScalar",
	DeclarationDoubleScalar:   "DoubleScalar",
	DeclarationBooleanScalar:  "BooleanScalar",
	DeclarationDateTimeScalar: "DateTimeScalar",
	DeclarationMap:            "MapDeclaration",
}

// String returns the canonical "$class" of the declaration kind.
func (k DeclarationKind) String() string {
	if k < 0 || int(k) >= len(declarationKindNames) {
		return "unknown"
	}
	return ClassName(declarationKindNames[k])
}

// ParseDeclarationKind converts a "$class" string to a DeclarationKind.
// Returns the kind and true if valid, or DeclarationConcept and false if not.
func ParseDeclarationKind(class string) (DeclarationKind, bool) {
	short, ok := shortClassName(class)
	if !ok {
		return DeclarationConcept, false
	}
	for k, name := range declarationKindNames {
		if name == short {
			return DeclarationKind(k), true
		}
	}
	return DeclarationConcept, false
}

// IsScalar reports whether declarations of this kind are scalars.
func (k DeclarationKind) IsScalar() bool {
	_, ok := k.ScalarKind()
	return ok
}

// ScalarKind returns the primitive property kind a scalar declaration wraps.
func (k DeclarationKind) ScalarKind() (PropertyKind, bool) {
	switch k {
	case DeclarationStringScalar:
		return PropertyString, true
	case DeclarationIntegerScalar:
		return PropertyInteger, true
	case DeclarationLongScalar:
		return PropertyLong, true
	case DeclarationDoubleScalar:
		return PropertyDouble, true
	case DeclarationBooleanScalar:
		return PropertyBoolean, true
	case DeclarationDateTimeScalar:
		return PropertyDateTime, true
	default:
		return PropertyString, false
	}
}

// =============================================================================
// PropertyKind
// =============================================================================

// PropertyKind discriminates the property variants of a declaration.
type PropertyKind int

// Property kinds.
const (
	PropertyString PropertyKind = iota
	PropertyInteger
	PropertyLong
	PropertyDouble
	PropertyBoolean
	PropertyDateTime
	PropertyObject
	PropertyRelationship
	PropertyEnum
)

var propertyKindNames = [...]string{
	PropertyString:       "StringProperty",
	PropertyInteger:      "IntegerProperty",
	PropertyLong:         "LongProperty",
	PropertyDouble:       "DoubleProperty",
	PropertyBoolean:      "BooleanProperty",
	PropertyDateTime:     "DateTimeProperty",
	PropertyObject:       "ObjectProperty",
	PropertyRelationship: "RelationshipProperty",
	PropertyEnum:         "EnumProperty",
}

// String returns the canonical "$class" of the property kind.
// Command targets select properties by comparing against this form.
func (k PropertyKind) String() string {
	if k < 0 || int(k) >= len(propertyKindNames) {
		return "unknown"
	}
	return ClassName(propertyKindNames[k])
}

// ParsePropertyKind converts a "$class" string to a PropertyKind.
func ParsePropertyKind(class string) (PropertyKind, bool) {
	short, ok := shortClassName(class)
	if !ok {
		return PropertyString, false
	}
	for k, name := range propertyKindNames {
		if name == short {
			return PropertyKind(k), true
		}
	}
	return PropertyString, false
}

// HasType reports whether properties of this kind reference a declared type.
func (k PropertyKind) HasType() bool {
	return k == PropertyObject || k == PropertyRelationship
}

// =============================================================================
// ArgumentKind
// =============================================================================

// ArgumentKind discriminates decorator argument literals.
type ArgumentKind int

// Decorator argument kinds.
const (
	ArgumentString ArgumentKind = iota
	ArgumentNumber
	ArgumentBoolean
	ArgumentTypeReference
)

var argumentKindNames = [...]string{
	ArgumentString:        "DecoratorString",
	ArgumentNumber:        "DecoratorNumber",
	ArgumentBoolean:       "DecoratorBoolean",
	ArgumentTypeReference: "DecoratorTypeReference",
}

// String returns the canonical "$class" of the argument kind.
func (k ArgumentKind) String() string {
	if k < 0 || int(k) >= len(argumentKindNames) {
		return "unknown"
	}
	return ClassName(argumentKindNames[k])
}

// ParseArgumentKind converts a "$class" string to an ArgumentKind.
func ParseArgumentKind(class string) (ArgumentKind, bool) {
	short, ok := shortClassName(class)
	if !ok {
		return ArgumentString, false
	}
	for k, name := range argumentKindNames {
		if name == short {
			return ArgumentKind(k), true
		}
	}
	return ArgumentString, false
}

// =============================================================================
// ImportKind
// =============================================================================

// ImportKind discriminates the import statements of a model.
type ImportKind int

// Import kinds.
const (
	ImportAll ImportKind = iota
	ImportType
	ImportTypes
)

var importKindNames = [...]string{
	ImportAll:   "ImportAll",
	ImportType:  "ImportType",
	ImportTypes: "ImportTypes",
}

// String returns the canonical "$class" of the import kind.
func (k ImportKind) String() string {
	if k < 0 || int(k) >= len(importKindNames) {
		return "unknown"
	}
	return ClassName(importKindNames[k])
}

// ParseImportKind converts a "$class" string to an ImportKind.
func ParseImportKind(class string) (ImportKind, bool) {
	short, ok := shortClassName(class)
	if !ok {
		return ImportAll, false
	}
	for k, name := range importKindNames {
		if name == short {
			return ImportKind(k), true
		}
	}
	return ImportAll, false
}
