package decorator

import "github.com/2lambda123/accordproject-concerto/pkg/namespace"

// CompileCommandSets turns an extraction index into one command set per
// namespace, in index order.
//
// Every recorded decorator except Term and Term_description becomes an
// UPSERT command targeting the element it was recorded on. Unversioned
// namespaces produce sets versioned DefaultVersion.
func CompileCommandSets(idx *ExtractionIndex) []*CommandSet {
	out := make([]*CommandSet, 0, idx.Len())
	for _, ns := range idx.Namespaces() {
		parsed := namespace.Parse(ns)
		version := parsed.Version
		if version == "" {
			version = DefaultVersion
		}

		set := &CommandSet{Name: parsed.Name, Version: version, Commands: []Command{}}
		for _, entry := range idx.Entries(ns) {
			target := CommandTarget{
				Namespace:   ns,
				Declaration: entry.Declaration,
				Property:    entry.Property,
			}
			for _, d := range entry.Decorators {
				if isVocabulary(d.Name) {
					continue
				}
				set.Commands = append(set.Commands, Command{
					Target:    target,
					Decorator: d.Clone(),
					Type:      Upsert,
				})
			}
		}
		out = append(out, set)
	}
	return out
}
