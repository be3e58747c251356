package decorator

import (
	"slices"

	"github.com/2lambda123/accordproject-concerto/pkg/core"
	"github.com/2lambda123/accordproject-concerto/pkg/namespace"
)

// Matches reports whether a target field selects any of the candidates.
//
// test may be nil, a string or a []string. nil, "" and an empty slice are
// wildcards and match everything. A string matches when it is one of the
// candidates; a slice matches when it shares at least one value with them.
func Matches(test any, candidates []string) bool {
	switch v := test.(type) {
	case nil:
		return true
	case string:
		return v == "" || slices.Contains(candidates, v)
	case []string:
		if len(v) == 0 {
			return true
		}
		for _, s := range v {
			if slices.Contains(candidates, s) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// matchesNamespace accepts a target namespace written with or without the
// version of the model namespace.
func matchesNamespace(target, ns string) bool {
	return Matches(target, []string{ns, namespace.Unversioned(ns)})
}

func matchesDeclaration(target CommandTarget, decl *core.Declaration) bool {
	return Matches(target.Declaration, []string{decl.Name})
}

func matchesProperty(target CommandTarget, prop *core.Property) bool {
	return Matches(target.propertySelector(), []string{prop.Name}) &&
		Matches(target.Type, []string{prop.Kind.String()})
}
