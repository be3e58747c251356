package decorator

import (
	"fmt"
	"strings"

	"github.com/2lambda123/accordproject-concerto/pkg/core"
)

// declarationVocab collects the vocabulary of one declaration.
type declarationVocab struct {
	name           string
	term           string
	hasTerm        bool
	description    string
	hasDescription bool
	properties     []*propertyVocab
}

type propertyVocab struct {
	name           string
	term           string
	hasDescription bool
}

func (d *declarationVocab) property(name string) *propertyVocab {
	for _, p := range d.properties {
		if p.name == name {
			return p
		}
	}
	p := &propertyVocab{name: name}
	d.properties = append(d.properties, p)
	return p
}

// CompileVocabularies renders one vocabulary document per namespace in idx,
// in index order, from the Term and Term_description decorators.
//
// A declaration appears only when it has a Term. A property's description
// line repeats the description of its declaration.
func CompileVocabularies(idx *ExtractionIndex, locale string) []string {
	out := make([]string, 0, idx.Len())
	for _, ns := range idx.Namespaces() {
		out = append(out, renderVocabulary(ns, locale, collectVocabs(idx.Entries(ns))))
	}
	return out
}

// collectVocabs groups vocabulary decorators by declaration, in first
// appearance order. Model-level entries carry no declaration and are skipped.
func collectVocabs(entries []ExtractedEntry) []*declarationVocab {
	var decls []*declarationVocab
	byName := make(map[string]*declarationVocab)

	for _, e := range entries {
		if e.Declaration == "" || !hasVocabulary(e.Decorators) {
			continue
		}
		d, ok := byName[e.Declaration]
		if !ok {
			d = &declarationVocab{name: e.Declaration}
			byName[e.Declaration] = d
			decls = append(decls, d)
		}

		if e.Property != "" {
			p := d.property(e.Property)
			for _, dec := range e.Decorators {
				switch dec.Name {
				case TermDecorator:
					p.term = firstArgument(dec)
				case TermDescriptionDecorator:
					p.hasDescription = true
				}
			}
			continue
		}
		for _, dec := range e.Decorators {
			switch dec.Name {
			case TermDecorator:
				d.term, d.hasTerm = firstArgument(dec), true
			case TermDescriptionDecorator:
				d.description, d.hasDescription = firstArgument(dec), true
			}
		}
	}
	return decls
}

func renderVocabulary(ns, locale string, decls []*declarationVocab) string {
	var b strings.Builder
	fmt.Fprintf(&b, "locale: %s\n", locale)
	fmt.Fprintf(&b, "namespace: %s\n", ns)
	b.WriteString("declarations:\n")

	for _, d := range decls {
		if !d.hasTerm {
			continue
		}
		fmt.Fprintf(&b, "  - %s: %s\n", d.name, d.term)
		if d.hasDescription {
			fmt.Fprintf(&b, "    description: %s\n", d.description)
		}
		if len(d.properties) == 0 {
			continue
		}
		b.WriteString("    properties:\n")
		for _, p := range d.properties {
			fmt.Fprintf(&b, "      - %s: %s\n", p.name, p.term)
			if p.hasDescription {
				fmt.Fprintf(&b, "        description: %s\n", d.description)
			}
		}
	}
	return b.String()
}

func hasVocabulary(decorators []core.Decorator) bool {
	for _, d := range decorators {
		if isVocabulary(d.Name) {
			return true
		}
	}
	return false
}

// firstArgument renders the first argument of a decorator as text.
func firstArgument(d core.Decorator) string {
	if len(d.Arguments) == 0 {
		return ""
	}
	return d.Arguments[0].String()
}

// VocabularyFileName returns "<namespace>_<locale>.voc".
func VocabularyFileName(ns, locale string) string {
	return ns + "_" + locale + ".voc"
}
