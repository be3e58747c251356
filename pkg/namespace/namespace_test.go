package namespace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		ns          string
		wantName    string
		wantVersion string
	}{
		{"org.foo", "org.foo", ""},
		{"org.foo@2.0.0", "org.foo", "2.0.0"},
		{"concerto.metamodel@1.0.0", "concerto.metamodel", "1.0.0"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.ns, func(t *testing.T) {
			got := Parse(tt.ns)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.wantVersion, got.Version)
			assert.Equal(t, tt.ns, got.String())
		})
	}
}

func TestNamespace_HasValidVersion(t *testing.T) {
	assert.True(t, Parse("org.foo@1.0.0").HasValidVersion())
	assert.True(t, Parse("org.foo@0.3.0-beta.1").HasValidVersion())
	assert.False(t, Parse("org.foo@latest").HasValidVersion())
	assert.False(t, Parse("org.foo").HasValidVersion())
	assert.False(t, Parse("org.foo").IsVersioned())
}

func TestSameName(t *testing.T) {
	assert.True(t, SameName("org.foo", "org.foo@2.0.0"))
	assert.True(t, SameName("org.foo@1.0.0", "org.foo@2.0.0"))
	assert.False(t, SameName("org.foo", "org.foobar"))
	assert.Equal(t, "org.foo", Unversioned("org.foo@2.0.0"))
}

func TestSplitQualified(t *testing.T) {
	ns, name := SplitQualified("org.foo@1.0.0.Bar")
	assert.Equal(t, "org.foo@1.0.0", ns)
	assert.Equal(t, "Bar", name)

	ns, name = SplitQualified("Bar")
	assert.Equal(t, "", ns)
	assert.Equal(t, "Bar", name)

	assert.Equal(t, "org.foo@1.0.0.Bar", Qualify("org.foo@1.0.0", "Bar"))
}
