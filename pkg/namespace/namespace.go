// Package namespace parses and compares Concerto namespaces.
//
// A namespace is a dotted identifier optionally suffixed with @version,
// e.g. "org.acme" or "org.acme@1.2.0".
package namespace

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Namespace is a parsed namespace.
type Namespace struct {
	Name    string
	Version string // empty when unversioned
}

// Parse splits a namespace into its name and optional version.
func Parse(ns string) Namespace {
	name, version, _ := strings.Cut(ns, "@")
	return Namespace{Name: name, Version: version}
}

// String renders the namespace back to its "name@version" form.
func (n Namespace) String() string {
	if n.Version == "" {
		return n.Name
	}
	return n.Name + "@" + n.Version
}

// IsVersioned reports whether the namespace carries a version.
func (n Namespace) IsVersioned() bool {
	return n.Version != ""
}

// HasValidVersion reports whether the version is a valid semantic version.
func (n Namespace) HasValidVersion() bool {
	return n.Version != "" && semver.IsValid("v"+n.Version)
}

// Unversioned returns the namespace name without its version.
func Unversioned(ns string) string {
	return Parse(ns).Name
}

// SameName reports whether two namespaces are equal once versions are dropped.
func SameName(a, b string) bool {
	return Unversioned(a) == Unversioned(b)
}

// Qualify joins a namespace and a type name into a fully qualified name.
func Qualify(ns, name string) string {
	return ns + "." + name
}

// SplitQualified splits a fully qualified type name into namespace and name.
// Versions contain dots, so the split happens at the last dot.
func SplitQualified(fqn string) (ns, name string) {
	i := strings.LastIndex(fqn, ".")
	if i < 0 {
		return "", fqn
	}
	return fqn[:i], fqn[i+1:]
}
