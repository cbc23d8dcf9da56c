package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pomlint/pomlint/internal/domain"
)

// conflictEntry is the projection of a dependency or plugin the conflict
// detector groups on.
type conflictEntry struct {
	key     string
	version string
}

// detectConflicts groups entries by groupId:artifactId and reports, per
// group of size >1, exactly one duplicate ERROR and, when the group's
// distinct non-empty version set exceeds one, exactly one additional
// version-conflict ERROR listing the full set. A duplicate with identical
// versions is still flagged but never reports a spurious conflict.
func detectConflicts(entries []conflictEntry, kind, listLabel string, result *domain.ValidationResult) {
	groups := make(map[string][]conflictEntry)
	var order []string
	for _, e := range entries {
		if _, seen := groups[e.key]; !seen {
			order = append(order, e.key)
		}
		groups[e.key] = append(groups[e.key], e)
	}

	for _, key := range order {
		group := groups[key]
		if len(group) < 2 {
			continue
		}

		result.AddError(domain.NewIssueWithSuggestion(domain.SeverityError, domain.RuleDuplicateEntry,
			fmt.Sprintf("Duplicate %s %s: %s", listLabel, kind, key),
			fmt.Sprintf("Remove duplicate %s declarations, keep only one", kind)).
			WithSubject(key))

		versionSet := make(map[string]bool)
		for _, e := range group {
			if e.version != "" {
				versionSet[e.version] = true
			}
		}
		if len(versionSet) > 1 {
			versions := make([]string, 0, len(versionSet))
			for v := range versionSet {
				versions = append(versions, v)
			}
			sort.Strings(versions)
			result.AddError(domain.NewIssueWithSuggestion(domain.SeverityError, domain.RuleVersionConflict,
				fmt.Sprintf("Version conflict for %s: [%s]", key, strings.Join(versions, ", ")),
				"Choose one version and remove the others, or control the version centrally in management").
				WithSubject(key))
		}
	}
}

func dependencyConflictEntries(deps []domain.DependencyEntry) []conflictEntry {
	out := make([]conflictEntry, len(deps))
	for i, d := range deps {
		out[i] = conflictEntry{key: d.Key(), version: d.Version}
	}
	return out
}

func pluginConflictEntries(plugins []domain.PluginEntry) []conflictEntry {
	out := make([]conflictEntry, len(plugins))
	for i, p := range plugins {
		out[i] = conflictEntry{key: p.Coords(), version: p.Version}
	}
	return out
}
