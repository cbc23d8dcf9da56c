package rules

import (
	"github.com/pomlint/pomlint/internal/domain"
)

// MultiModuleRule surfaces the Project Graph Resolver's findings for the
// descriptor (module directory/descriptor existence, duplicate modules,
// parent path resolution, aggregator packaging) and warns when an
// aggregator manages nothing centrally.
type MultiModuleRule struct{}

func (MultiModuleRule) ID() string { return NameMultiModule }

func (MultiModuleRule) Evaluate(d *domain.ProjectDescriptor, ctx Context) domain.ValidationResult {
	var result domain.ValidationResult

	if ctx.Graph != nil {
		result.Merge(ctx.Graph.Findings(d.Path))
	}

	if len(d.Modules) > 0 && len(d.DependencyManagement) == 0 && len(d.PluginManagement) == 0 {
		result.AddWarning(domain.NewIssueWithSuggestion(domain.SeverityWarning, domain.RuleBareAggregator,
			"Multi-module aggregator has neither dependencyManagement nor pluginManagement",
			"Parent descriptors typically manage versions centrally for child modules"))
	}

	return result
}
