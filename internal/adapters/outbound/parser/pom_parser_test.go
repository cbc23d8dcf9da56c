package parser_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pomlint/pomlint/internal/adapters/outbound/parser"
	"github.com/pomlint/pomlint/internal/domain"
)

const fixtureRoot = "../../../../testdata"

func TestPOMParser_Parse_ValidDescriptor(t *testing.T) {
	p := parser.New()

	d, err := p.Parse(filepath.Join(fixtureRoot, "valid", "pom.xml"))
	require.NoError(t, err)

	assert.Equal(t, "4.0.0", d.ModelVersion)
	assert.Equal(t, "com.acme", d.GroupID)
	assert.Equal(t, "acme-service", d.ArtifactID)
	assert.Equal(t, "1.4.2", d.Version)
	assert.Equal(t, "jar", d.Packaging)
	assert.Nil(t, d.Parent)

	require.Len(t, d.Dependencies, 2)
	assert.Equal(t, "org.slf4j:slf4j-api:2.0.9", d.Dependencies[0].String())
	assert.Equal(t, "test", d.Dependencies[1].Scope)
	assert.False(t, d.Dependencies[0].Managed)

	require.Len(t, d.Plugins, 2)
	assert.Equal(t, "maven-compiler-plugin", d.Plugins[0].ArtifactID)

	assert.Equal(t, "UTF-8", d.Properties["project.build.sourceEncoding"])
	assert.Equal(t, "17", d.Properties["java.version"])
}

func TestPOMParser_Parse_ParentAndModules(t *testing.T) {
	p := parser.New()

	d, err := p.Parse(filepath.Join(fixtureRoot, "multimodule", "pom.xml"))
	require.NoError(t, err)

	assert.Equal(t, "pom", d.Packaging)
	assert.Equal(t, []string{"core", "api"}, d.Modules)
	require.Len(t, d.DependencyManagement, 1)
	assert.True(t, d.DependencyManagement[0].Managed)

	child, err := p.Parse(filepath.Join(fixtureRoot, "multimodule", "core", "pom.xml"))
	require.NoError(t, err)

	require.NotNil(t, child.Parent)
	assert.Equal(t, "com.acme.platform", child.Parent.GroupID)
	assert.Equal(t, "2.0.0", child.Parent.Version)
	assert.Equal(t, "com.acme.platform", child.EffectiveGroupID())
	assert.False(t, child.Parent.RelativePathSet, "absent relativePath stays unset")
}

func TestPOMParser_Parse_EmptyRelativePath(t *testing.T) {
	dir := t.TempDir()
	pom := filepath.Join(dir, "pom.xml")
	content := `<?xml version="1.0" encoding="UTF-8"?>
<project>
    <modelVersion>4.0.0</modelVersion>
    <parent>
        <groupId>com.acme</groupId>
        <artifactId>parent</artifactId>
        <version>1.0.0</version>
        <relativePath/>
    </parent>
    <artifactId>child</artifactId>
</project>
`
	require.NoError(t, os.WriteFile(pom, []byte(content), 0644))

	p := parser.New()
	d, err := p.Parse(pom)
	require.NoError(t, err)

	require.NotNil(t, d.Parent)
	assert.True(t, d.Parent.RelativePathSet)
	assert.Empty(t, d.Parent.RelativePath)

	// The empty element must survive a rewrite.
	require.NoError(t, p.Write(d))
	data, err := os.ReadFile(pom)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<relativePath></relativePath>")
}

func TestPOMParser_Parse_Malformed(t *testing.T) {
	p := parser.New()

	_, err := p.Parse(filepath.Join(fixtureRoot, "malformed", "pom.xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing descriptor")
}

func TestPOMParser_Parse_MissingFile(t *testing.T) {
	p := parser.New()

	_, err := p.Parse(filepath.Join(t.TempDir(), "pom.xml"))
	assert.Error(t, err)
}

func TestPOMParser_WriteRoundTrip(t *testing.T) {
	p := parser.New()

	original, err := p.Parse(filepath.Join(fixtureRoot, "valid", "pom.xml"))
	require.NoError(t, err)

	out := original.Clone()
	out.Path = filepath.Join(t.TempDir(), "pom.xml")
	out.GroupID = "com.acme.rewritten"
	require.NoError(t, p.Write(out))

	reparsed, err := p.Parse(out.Path)
	require.NoError(t, err)

	assert.Equal(t, "com.acme.rewritten", reparsed.GroupID)
	assert.Equal(t, original.ArtifactID, reparsed.ArtifactID)
	assert.Equal(t, original.Properties, reparsed.Properties)
	assert.Len(t, reparsed.Dependencies, len(original.Dependencies))
	assert.Len(t, reparsed.Plugins, len(original.Plugins))
}

func TestPOMParser_Write_EmitsXMLHeader(t *testing.T) {
	p := parser.New()
	d := &domain.ProjectDescriptor{
		Path:         filepath.Join(t.TempDir(), "pom.xml"),
		ModelVersion: domain.ModelVersion,
		GroupID:      "com.acme",
		ArtifactID:   "app",
		Version:      "1.0.0",
	}

	require.NoError(t, p.Write(d))

	data, err := os.ReadFile(d.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, string(data), "<modelVersion>4.0.0</modelVersion>")
}
