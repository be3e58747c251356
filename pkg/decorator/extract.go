package decorator

import (
	"log/slog"

	"github.com/2lambda123/accordproject-concerto/pkg/core"
	"github.com/2lambda123/accordproject-concerto/pkg/modelmanager"
)

// DefaultLocale is the vocabulary locale used when none is given.
const DefaultLocale = "en"

// ExtractedEntry is a snapshot of the decorators of one AST element.
// Declaration and Property are empty for model-level decorators; Property is
// empty for declaration-level decorators.
type ExtractedEntry struct {
	Declaration string
	Property    string
	Decorators  []core.Decorator
}

// ExtractionIndex maps namespaces to the decorator snapshots recorded for
// them, in recording order. Namespaces without entries are absent.
type ExtractionIndex struct {
	order   []string
	buckets map[string][]ExtractedEntry
}

// NewExtractionIndex creates an empty index.
func NewExtractionIndex() *ExtractionIndex {
	return &ExtractionIndex{buckets: make(map[string][]ExtractedEntry)}
}

// Record appends a snapshot of decorators under ns.
// Empty decorator sequences are not recorded.
func (x *ExtractionIndex) Record(ns, declaration, property string, decorators []core.Decorator) {
	if len(decorators) == 0 {
		return
	}
	if _, ok := x.buckets[ns]; !ok {
		x.order = append(x.order, ns)
	}
	x.buckets[ns] = append(x.buckets[ns], ExtractedEntry{
		Declaration: declaration,
		Property:    property,
		Decorators:  core.CloneDecorators(decorators),
	})
}

// Namespaces returns the recorded namespaces in first-recorded order.
func (x *ExtractionIndex) Namespaces() []string {
	out := make([]string, len(x.order))
	copy(out, x.order)
	return out
}

// Entries returns the entries recorded under ns.
func (x *ExtractionIndex) Entries(ns string) []ExtractedEntry {
	entries := x.buckets[ns]
	out := make([]ExtractedEntry, len(entries))
	copy(out, entries)
	return out
}

// Len returns the number of namespaces in the index.
func (x *ExtractionIndex) Len() int {
	return len(x.order)
}

// ExtractOptions controls ExtractDecorators.
type ExtractOptions struct {
	// RemoveDecoratorsFromModel strips recorded decorators from the result.
	RemoveDecoratorsFromModel bool
	// Locale of the vocabulary documents; empty means DefaultLocale.
	Locale string
	// Logger receives debug output; nil discards it.
	Logger *slog.Logger
}

// ExtractResult holds everything ExtractDecorators produces.
type ExtractResult struct {
	// ModelManager holds the (possibly undecorated) copy of the models.
	ModelManager *modelmanager.ModelManager
	// CommandSets has one command set per decorated namespace.
	CommandSets []*CommandSet
	// Vocabularies has one vocabulary document per decorated namespace.
	Vocabularies []string
	Index        *ExtractionIndex
}

// ExtractDecorators collects the decorators of mm into command sets and
// vocabularies. mm is not modified.
func ExtractDecorators(mm *modelmanager.ModelManager, opts ExtractOptions) (*ExtractResult, error) {
	if mm == nil {
		return nil, ErrNilModelManager
	}
	logger := loggerOrDiscard(opts.Logger)
	locale := opts.Locale
	if locale == "" {
		locale = DefaultLocale
	}

	work := mm.GetAst()
	idx := extractInto(work, opts.RemoveDecoratorsFromModel)
	logger.Debug("extracted decorators", "namespaces", idx.Len(), "removed", opts.RemoveDecoratorsFromModel)

	out, err := modelmanager.FromAst(work, modelmanager.WithStrict(mm.IsStrict()))
	if err != nil {
		return nil, err
	}
	return &ExtractResult{
		ModelManager: out,
		CommandSets:  CompileCommandSets(idx),
		Vocabularies: CompileVocabularies(idx, locale),
		Index:        idx,
	}, nil
}

// ExtractAst records the decorators of a copy of ast. When remove is set the
// returned copy has every recorded decorator sequence emptied.
func ExtractAst(ast *core.Models, remove bool) (*core.Models, *ExtractionIndex) {
	if ast == nil {
		return nil, NewExtractionIndex()
	}
	work := ast.Clone()
	return work, extractInto(work, remove)
}

// extractInto walks work in place: model, then each declaration followed by
// its properties.
func extractInto(work *core.Models, remove bool) *ExtractionIndex {
	idx := NewExtractionIndex()
	take := func(ns, declaration, property string, decorators *[]core.Decorator) {
		if len(*decorators) == 0 {
			return
		}
		idx.Record(ns, declaration, property, *decorators)
		if remove {
			*decorators = (*decorators)[:0]
		}
	}

	for mi := range work.Models {
		model := &work.Models[mi]
		take(model.Namespace, "", "", &model.Decorators)
		for di := range model.Declarations {
			decl := &model.Declarations[di]
			take(model.Namespace, decl.Name, "", &decl.Decorators)
			for pi := range decl.Properties {
				prop := &decl.Properties[pi]
				take(model.Namespace, decl.Name, prop.Name, &prop.Decorators)
			}
		}
	}
	return idx
}
