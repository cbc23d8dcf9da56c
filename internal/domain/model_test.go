package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pomlint/pomlint/internal/domain"
)

func TestCoordinate_Key(t *testing.T) {
	c := domain.Coordinate{GroupID: "org.springframework", ArtifactID: "spring-core", Version: "5.3.20"}
	assert.Equal(t, "org.springframework:spring-core", c.Key())
	assert.Equal(t, "org.springframework:spring-core:5.3.20", c.String())
}

func TestCoordinate_String_NoVersion(t *testing.T) {
	c := domain.Coordinate{GroupID: "com.acme", ArtifactID: "acme-core"}
	assert.Equal(t, "com.acme:acme-core", c.String())
}

func TestPluginEntry_EffectiveGroupID(t *testing.T) {
	p := domain.PluginEntry{Coordinate: domain.Coordinate{ArtifactID: "maven-compiler-plugin"}}
	assert.Equal(t, "org.apache.maven.plugins", p.EffectiveGroupID())
	assert.Equal(t, "org.apache.maven.plugins:maven-compiler-plugin", p.Coords())

	p.GroupID = "org.jacoco"
	assert.Equal(t, "org.jacoco", p.EffectiveGroupID())
}

func TestProjectDescriptor_EffectivePackaging(t *testing.T) {
	d := &domain.ProjectDescriptor{}
	assert.Equal(t, "jar", d.EffectivePackaging())

	d.Packaging = "war"
	assert.Equal(t, "war", d.EffectivePackaging())
}

func TestProjectDescriptor_Inheritance(t *testing.T) {
	d := &domain.ProjectDescriptor{
		ArtifactID: "child",
		Parent: &domain.ParentRef{
			Coordinate: domain.Coordinate{GroupID: "com.acme", ArtifactID: "parent", Version: "2.0.0"},
		},
	}

	assert.Equal(t, "com.acme", d.EffectiveGroupID())
	assert.Equal(t, "2.0.0", d.EffectiveVersion())
	assert.Equal(t, "com.acme:child:2.0.0", d.GAV().String())

	d.GroupID = "com.acme.child"
	d.Version = "3.0.0"
	assert.Equal(t, "com.acme.child", d.EffectiveGroupID())
	assert.Equal(t, "3.0.0", d.EffectiveVersion())
}

func TestProjectDescriptor_Inheritance_NoParent(t *testing.T) {
	d := &domain.ProjectDescriptor{ArtifactID: "orphan"}
	assert.Empty(t, d.EffectiveGroupID())
	assert.Empty(t, d.EffectiveVersion())
}

func TestProjectDescriptor_Clone(t *testing.T) {
	d := &domain.ProjectDescriptor{
		GroupID:    "com.acme",
		ArtifactID: "acme-core",
		Version:    "1.0.0",
		Parent:     &domain.ParentRef{Coordinate: domain.Coordinate{GroupID: "com.acme"}},
		Modules:    []string{"core"},
		Dependencies: []domain.DependencyEntry{
			{Coordinate: domain.Coordinate{GroupID: "junit", ArtifactID: "junit", Version: "4.13.2"}},
		},
		Properties: map[string]string{"java.version": "17"},
	}

	clone := d.Clone()
	clone.GroupID = "changed"
	clone.Parent.GroupID = "changed"
	clone.Modules[0] = "changed"
	clone.Dependencies[0].Version = "changed"
	clone.Properties["java.version"] = "21"

	assert.Equal(t, "com.acme", d.GroupID)
	assert.Equal(t, "com.acme", d.Parent.GroupID)
	assert.Equal(t, "core", d.Modules[0])
	assert.Equal(t, "4.13.2", d.Dependencies[0].Version)
	assert.Equal(t, "17", d.Properties["java.version"])
}
