// Package rules holds the validation rule units. Each rule is an
// independent, stateless check over one descriptor plus graph context;
// rules never return errors; on malformed or missing optional sections
// they degrade to INFO or no-op.
package rules

import (
	"fmt"

	"github.com/pomlint/pomlint/internal/domain"
)

// Context carries the cross-descriptor state a rule may consult.
type Context struct {
	Graph *domain.ProjectGraph
}

// Parent returns the locally resolved parent descriptor for path, or nil.
func (c Context) Parent(path string) *domain.ProjectDescriptor {
	if c.Graph == nil {
		return nil
	}
	return c.Graph.Parent(path)
}

// Rule is one validation unit. Evaluate must be total over well-formed
// descriptors; rule order has no correctness effect, only presentation
// order.
type Rule interface {
	ID() string
	Evaluate(d *domain.ProjectDescriptor, ctx Context) domain.ValidationResult
}

// Rule names, used by profile selection and .pomlint.yaml custom profiles.
const (
	NameStructure   = "structure"
	NameDependency  = "dependency"
	NameProperty    = "property"
	NamePlugin      = "plugin"
	NameVersion     = "version"
	NameMultiModule = "multimodule"
)

var registry = map[string]func() Rule{
	NameStructure:   func() Rule { return StructureRule{} },
	NameDependency:  func() Rule { return DependencyRule{} },
	NameProperty:    func() Rule { return PropertyRule{} },
	NamePlugin:      func() Rule { return PluginRule{} },
	NameVersion:     func() Rule { return VersionRule{} },
	NameMultiModule: func() Rule { return MultiModuleRule{} },
}

var profileRules = map[domain.Profile][]string{
	domain.ProfileStrict: {
		NameStructure, NameDependency, NameProperty, NamePlugin,
		NameVersion, NameMultiModule,
	},
	domain.ProfileStandard: {
		NameStructure, NameDependency, NameProperty, NamePlugin,
		NameMultiModule,
	},
	domain.ProfileMinimal: {
		NameStructure, NameDependency, NameMultiModule,
	},
}

// ForProfile returns the rule pipeline the profile selects, in its fixed
// presentation order. The custom profile runs the named rules; unknown
// names are skipped.
func ForProfile(profile domain.Profile, custom []string) []Rule {
	names, ok := profileRules[profile]
	if !ok {
		names = custom
	}
	out := make([]Rule, 0, len(names))
	for _, name := range names {
		if build, known := registry[name]; known {
			out = append(out, build())
		}
	}
	return out
}

// KnownRuleNames lists every registered rule name.
func KnownRuleNames() []string {
	return []string{
		NameStructure, NameDependency, NameProperty, NamePlugin,
		NameVersion, NameMultiModule,
	}
}

// Evaluate runs one rule behind a recover guard so a faulty rule degrades
// to a single internal-fault ERROR instead of destroying the descriptor's
// whole report.
func Evaluate(r Rule, d *domain.ProjectDescriptor, ctx Context) (result domain.ValidationResult) {
	defer func() {
		if rec := recover(); rec != nil {
			result = domain.ValidationResult{}
			result.AddError(domain.NewIssue(domain.SeverityError, domain.RuleInternalFault,
				fmt.Sprintf("Rule %s failed: %v", r.ID(), rec)))
		}
	}()
	return r.Evaluate(d, ctx)
}

// Pipeline runs the rules in order and concatenates their results.
func Pipeline(ruleSet []Rule, d *domain.ProjectDescriptor, ctx Context) domain.ValidationResult {
	var merged domain.ValidationResult
	for _, r := range ruleSet {
		merged.Merge(Evaluate(r, d, ctx))
	}
	return merged
}
