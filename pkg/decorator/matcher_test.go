package decorator

import (
	"testing"

	"github.com/2lambda123/accordproject-concerto/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	candidates := []string{"a", "b"}

	tests := []struct {
		name string
		test any
		want bool
	}{
		{"nil is a wildcard", nil, true},
		{"empty string is a wildcard", "", true},
		{"empty slice is a wildcard", []string{}, true},
		{"nil slice is a wildcard", []string(nil), true},
		{"member", "a", true},
		{"non member", "c", false},
		{"intersecting slice", []string{"c", "b"}, true},
		{"disjoint slice", []string{"c", "d"}, false},
		{"unsupported type", 42, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.test, candidates))
		})
	}
}

func TestMatches_Laws(t *testing.T) {
	candidateSets := [][]string{nil, {}, {"x"}, {"x", "y", "z"}}
	values := []string{"x", "y", "w"}

	for _, c := range candidateSets {
		assert.True(t, Matches(nil, c), "wildcard law for %v", c)
		assert.True(t, Matches("", c), "wildcard law for %v", c)
		assert.True(t, Matches([]string{}, c), "empty slice is a wildcard for %v", c)

		for _, v := range values {
			assert.Equal(t, contains(c, v), Matches(v, c), "scalar law for %q in %v", v, c)
		}
		for _, pair := range [][]string{{"x", "w"}, {"w", "v"}, {"y", "z"}} {
			want := contains(c, pair[0]) || contains(c, pair[1])
			assert.Equal(t, want, Matches(pair, c), "set law for %v in %v", pair, c)
		}
	}
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func TestMatchesNamespace(t *testing.T) {
	assert.True(t, matchesNamespace("", "org.foo@2.0.0"))
	assert.True(t, matchesNamespace("org.foo", "org.foo@2.0.0"))
	assert.True(t, matchesNamespace("org.foo@2.0.0", "org.foo@2.0.0"))
	assert.False(t, matchesNamespace("org.foo@1.0.0", "org.foo@2.0.0"))
	assert.False(t, matchesNamespace("org.bar", "org.foo@2.0.0"))
	assert.True(t, matchesNamespace("org.foo", "org.foo"))
}

func TestMatchesProperty(t *testing.T) {
	age := &core.Property{Kind: core.PropertyInteger, Name: "age"}

	tests := []struct {
		name   string
		target CommandTarget
		want   bool
	}{
		{"no selector", CommandTarget{}, true},
		{"by name", CommandTarget{Property: "age"}, true},
		{"other name", CommandTarget{Property: "name"}, false},
		{"by list", CommandTarget{Properties: []string{"name", "age"}}, true},
		{"list without it", CommandTarget{Properties: []string{"name"}}, false},
		{"empty list", CommandTarget{Properties: []string{}}, true},
		{"by type", CommandTarget{Type: core.PropertyInteger.String()}, true},
		{"other type", CommandTarget{Type: core.PropertyString.String()}, false},
		{"name and type", CommandTarget{Property: "age", Type: core.PropertyInteger.String()}, true},
		{"name but wrong type", CommandTarget{Property: "age", Type: core.PropertyString.String()}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchesProperty(tt.target, age))
		})
	}
}
