package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DescriptorFileName is the filename the resolver expects for each module's
// descriptor.
const DescriptorFileName = "pom.xml"

// ProjectGraph links the descriptors of one validation run: each descriptor
// to its locally resolved parent and to the descriptor paths its module list
// implies. The graph is acyclic; a cycle in parent references is reported as
// a finding, not a crash. Unresolved external parents are not errors; the
// resolver never consults a remote repository.
type ProjectGraph struct {
	descriptors map[string]*ProjectDescriptor
	parents     map[string]*ProjectDescriptor
	children    map[string][]string
	findings    map[string]*ValidationResult
}

// BuildProjectGraph resolves parent/child links across the full descriptor
// set and records graph-integrity findings per descriptor path. Module and
// parent checks probe the filesystem relative to each descriptor's directory.
func BuildProjectGraph(descriptors []*ProjectDescriptor) *ProjectGraph {
	g := &ProjectGraph{
		descriptors: make(map[string]*ProjectDescriptor, len(descriptors)),
		parents:     make(map[string]*ProjectDescriptor),
		children:    make(map[string][]string),
		findings:    make(map[string]*ValidationResult),
	}

	for _, d := range descriptors {
		g.descriptors[cleanPath(d.Path)] = d
	}

	for _, d := range descriptors {
		g.resolveModules(d)
		g.resolveParent(d)
	}

	g.checkCycles(descriptors)
	return g
}

// Descriptor returns the descriptor registered for path, if any.
func (g *ProjectGraph) Descriptor(path string) *ProjectDescriptor {
	return g.descriptors[cleanPath(path)]
}

// Parent returns the locally resolved parent descriptor for path, or nil
// when the parent is external to the validated set.
func (g *ProjectGraph) Parent(path string) *ProjectDescriptor {
	return g.parents[cleanPath(path)]
}

// ModulePaths returns the expected child descriptor paths for path.
func (g *ProjectGraph) ModulePaths(path string) []string {
	return g.children[cleanPath(path)]
}

// Findings returns the graph-integrity findings recorded for path.
func (g *ProjectGraph) Findings(path string) ValidationResult {
	if r := g.findings[cleanPath(path)]; r != nil {
		return *r
	}
	return ValidationResult{}
}

func (g *ProjectGraph) resultFor(path string) *ValidationResult {
	key := cleanPath(path)
	if g.findings[key] == nil {
		g.findings[key] = &ValidationResult{}
	}
	return g.findings[key]
}

func (g *ProjectGraph) resolveModules(d *ProjectDescriptor) {
	if len(d.Modules) == 0 {
		return
	}

	result := g.resultFor(d.Path)
	baseDir := filepath.Dir(d.Path)

	if d.EffectivePackaging() != "pom" {
		result.AddWarning(NewIssueWithSuggestion(SeverityWarning, RuleAggregatorPack,
			fmt.Sprintf("Descriptor with modules should have packaging 'pom', found: %s", d.EffectivePackaging()),
			"Change <packaging> to pom"))
	}

	seen := make(map[string]bool, len(d.Modules))
	for _, module := range d.Modules {
		if seen[module] {
			result.AddError(NewIssueWithSuggestion(SeverityError, RuleDuplicateModule,
				fmt.Sprintf("Duplicate module reference: %s", module),
				fmt.Sprintf("Remove the duplicate <module>%s</module> entry", module)))
			continue
		}
		seen[module] = true

		moduleDir := filepath.Join(baseDir, module)
		modulePOM := filepath.Join(moduleDir, DescriptorFileName)
		g.children[cleanPath(d.Path)] = append(g.children[cleanPath(d.Path)], modulePOM)

		info, err := os.Stat(moduleDir)
		if err != nil || !info.IsDir() {
			result.AddError(NewIssueWithSuggestion(SeverityError, RuleMissingModuleDir,
				fmt.Sprintf("Module directory does not exist: %s", module),
				"Create the module directory or remove the module reference"))
			continue
		}

		if _, err := os.Stat(modulePOM); err != nil {
			result.AddError(NewIssueWithSuggestion(SeverityError, RuleMissingModulePOM,
				fmt.Sprintf("Module %q does not contain a %s", module, DescriptorFileName),
				"Add a descriptor to the module or remove the module reference"))
		}
	}

	result.AddInfo(NewIssue(SeverityInfo, RuleModuleInfo,
		fmt.Sprintf("Multi-module project with %d modules", len(d.Modules))))
}

func (g *ProjectGraph) resolveParent(d *ProjectDescriptor) {
	if d.Parent == nil {
		return
	}

	result := g.resultFor(d.Path)
	parent := d.Parent
	baseDir := filepath.Dir(d.Path)

	coordinateFields := []struct {
		field string
		value string
	}{
		{"groupId", parent.GroupID},
		{"artifactId", parent.ArtifactID},
		{"version", parent.Version},
	}
	for _, f := range coordinateFields {
		if isBlank(f.value) {
			result.AddError(NewIssueWithSuggestion(SeverityError, RuleParentCoordinate,
				fmt.Sprintf("Parent %s is missing", f.field),
				fmt.Sprintf("Add <%s> to the <parent> section", f.field)))
		}
	}

	var parentPath string
	switch {
	case parent.RelativePath != "":
		parentPath = filepath.Join(baseDir, parent.RelativePath)
		// A relativePath may point at a named POM file directly.
		if !strings.HasSuffix(parentPath, DescriptorFileName) {
			parentPath = filepath.Join(parentPath, DescriptorFileName)
		}
		if _, err := os.Stat(parentPath); err != nil {
			result.AddWarning(NewIssueWithSuggestion(SeverityWarning, RuleParentPath,
				fmt.Sprintf("Parent descriptor not found at relative path: %s", parent.RelativePath),
				"Verify the relativePath or remove it to use repository resolution"))
			parentPath = ""
		}
	case parent.RelativePathSet:
		// An explicitly empty <relativePath/> tells Maven to resolve the
		// parent from the repository only. Never link it locally.
	default:
		parentPath = filepath.Join(filepath.Dir(baseDir), DescriptorFileName)
		if _, err := os.Stat(parentPath); err != nil {
			parentPath = ""
		} else {
			result.AddInfo(NewIssueWithSuggestion(SeverityInfo, RuleParentPath,
				"Using default parent relative path ../"+DescriptorFileName,
				"Consider explicitly setting <relativePath>../"+DescriptorFileName+"</relativePath>"))
		}
	}

	if parentPath != "" {
		if resolved := g.descriptors[cleanPath(parentPath)]; resolved != nil {
			g.parents[cleanPath(d.Path)] = resolved
		}
	}

	if !isBlank(d.Version) && !isBlank(parent.Version) &&
		d.Version != parent.Version && !containsPropertyRef(d.Version) {
		result.AddWarning(NewIssueWithSuggestion(SeverityWarning, RuleVersionAlignment,
			fmt.Sprintf("Module version (%s) differs from parent version (%s)", d.Version, parent.Version),
			"Consider aligning versions or using ${project.parent.version}"))
	}
}

// checkCycles walks parent links within the validated set. A cycle is
// reported once, on the descriptor where the walk first closes the loop.
func (g *ProjectGraph) checkCycles(descriptors []*ProjectDescriptor) {
	for _, d := range descriptors {
		visited := map[string]bool{cleanPath(d.Path): true}
		current := g.parents[cleanPath(d.Path)]
		for current != nil {
			key := cleanPath(current.Path)
			if visited[key] {
				g.resultFor(d.Path).AddError(NewIssue(SeverityError, RuleParentCoordinate,
					fmt.Sprintf("Parent reference cycle involving %s", current.Path)))
				break
			}
			visited[key] = true
			current = g.parents[key]
		}
	}
}

func cleanPath(path string) string {
	return filepath.Clean(path)
}

func containsPropertyRef(s string) bool {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '$' && s[i+1] == '{' {
			return true
		}
	}
	return false
}
