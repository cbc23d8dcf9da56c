package domain

import "fmt"

// Severity classifies a validation issue. Levels form a total order
// error < warning < info < all; a level includes everything at or below
// its rank, so filtering can never remove errors.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeverityAll     Severity = "all"
)

var severityRank = map[Severity]int{
	SeverityError:   1,
	SeverityWarning: 2,
	SeverityInfo:    3,
	SeverityAll:     4,
}

// Includes reports whether issues of severity other are surfaced at
// level s.
func (s Severity) Includes(other Severity) bool {
	return severityRank[s] >= severityRank[other]
}

// ParseSeverity parses a CLI severity value. Unknown values are rejected
// rather than silently defaulted, so typos surface immediately.
func ParseSeverity(value string) (Severity, error) {
	switch Severity(value) {
	case SeverityError, SeverityWarning, SeverityInfo, SeverityAll:
		return Severity(value), nil
	}
	return "", fmt.Errorf("unknown severity %q (expected error, warning, info, or all)", value)
}

// RuleID tags every issue with the check that produced it. Fix dispatch
// switches on this tag, never on message text.
type RuleID string

const (
	RuleModelVersion       RuleID = "structure/model-version"
	RuleMissingGroupID     RuleID = "structure/missing-group-id"
	RuleMissingArtifactID  RuleID = "structure/missing-artifact-id"
	RuleMissingVersion     RuleID = "structure/missing-version"
	RuleInheritedField     RuleID = "structure/inherited-field"
	RuleUnknownPackaging   RuleID = "structure/unknown-packaging"
	RuleBareAggregator     RuleID = "structure/bare-aggregator"
	RuleProjectInfo        RuleID = "structure/project-info"
	RuleDuplicateEntry     RuleID = "conflict/duplicate"
	RuleVersionConflict    RuleID = "conflict/version"
	RuleDepMissingField    RuleID = "dependency/missing-field"
	RuleSnapshotVersion    RuleID = "dependency/snapshot-version"
	RuleVersionRange       RuleID = "dependency/version-range"
	RuleDeprecatedKeyword  RuleID = "dependency/deprecated-keyword"
	RuleInvalidScope       RuleID = "dependency/invalid-scope"
	RuleUnmanagedNoVersion RuleID = "dependency/unmanaged-no-version"
	RuleRedundantPin       RuleID = "dependency/redundant-pin"
	RuleProblematicDep     RuleID = "dependency/problematic"
	RuleTestScope          RuleID = "dependency/test-scope"
	RuleDependencyInfo     RuleID = "dependency/info"
	RuleMissingProperty    RuleID = "property/missing"
	RuleNonUTF8Encoding    RuleID = "property/non-utf8"
	RuleCompilerMismatch   RuleID = "property/compiler-mismatch"
	RuleJavaVersion        RuleID = "property/java-version"
	RulePropertyInfo       RuleID = "property/info"
	RulePluginMissingField RuleID = "plugin/missing-field"
	RulePluginNoVersion    RuleID = "plugin/unmanaged-no-version"
	RuleCorePluginPin      RuleID = "plugin/core-no-version"
	RulePluginRedundantPin RuleID = "plugin/redundant-pin"
	RuleDeprecatedPlugin   RuleID = "plugin/deprecated"
	RuleRecommendedPlugin  RuleID = "plugin/recommended"
	RulePluginInfo         RuleID = "plugin/info"
	RuleVersionFormat      RuleID = "version/format"
	RuleVersionPractice    RuleID = "version/practice"
	RuleVersionInfo        RuleID = "version/info"
	RuleDuplicateModule    RuleID = "module/duplicate"
	RuleMissingModuleDir   RuleID = "module/missing-dir"
	RuleMissingModulePOM   RuleID = "module/missing-descriptor"
	RuleAggregatorPack     RuleID = "module/aggregator-packaging"
	RuleParentCoordinate   RuleID = "module/parent-coordinate"
	RuleParentPath         RuleID = "module/parent-path"
	RuleVersionAlignment   RuleID = "module/version-alignment"
	RuleModuleInfo         RuleID = "module/info"
	RuleParseFailure       RuleID = "parse/failure"
	RuleInternalFault      RuleID = "internal/fault"
)

// ValidationIssue is one finding produced by a rule. Severity is fixed at
// creation and never reclassified.
type ValidationIssue struct {
	Severity   Severity `json:"severity"`
	Rule       RuleID   `json:"rule"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`

	// Subject is the stable reference the issue points at: a property name,
	// a groupId:artifactId key, or a module name. Fix dispatch reads this,
	// never the rendered message.
	Subject string `json:"subject,omitempty"`
}

// NewIssue creates an issue without a suggestion.
func NewIssue(sev Severity, rule RuleID, message string) ValidationIssue {
	return ValidationIssue{Severity: sev, Rule: rule, Message: message}
}

// NewIssueWithSuggestion creates an issue carrying a fix suggestion.
func NewIssueWithSuggestion(sev Severity, rule RuleID, message, suggestion string) ValidationIssue {
	return ValidationIssue{Severity: sev, Rule: rule, Message: message, Suggestion: suggestion}
}

// WithSubject returns a copy of the issue tagged with a subject reference.
func (i ValidationIssue) WithSubject(subject string) ValidationIssue {
	i.Subject = subject
	return i
}

// HasSuggestion reports whether the issue carries a fix suggestion.
func (i ValidationIssue) HasSuggestion() bool {
	return !isBlank(i.Suggestion)
}

// ValidationResult holds the classified findings for one descriptor as
// three disjoint ordered lists.
type ValidationResult struct {
	Errors   []ValidationIssue `json:"errors"`
	Warnings []ValidationIssue `json:"warnings"`
	Infos    []ValidationIssue `json:"infos"`
}

func (r *ValidationResult) AddError(issue ValidationIssue) {
	issue.Severity = SeverityError
	r.Errors = append(r.Errors, issue)
}

func (r *ValidationResult) AddWarning(issue ValidationIssue) {
	issue.Severity = SeverityWarning
	r.Warnings = append(r.Warnings, issue)
}

func (r *ValidationResult) AddInfo(issue ValidationIssue) {
	issue.Severity = SeverityInfo
	r.Infos = append(r.Infos, issue)
}

// Add routes an issue to the list matching its severity.
func (r *ValidationResult) Add(issue ValidationIssue) {
	switch issue.Severity {
	case SeverityError:
		r.Errors = append(r.Errors, issue)
	case SeverityWarning:
		r.Warnings = append(r.Warnings, issue)
	default:
		r.Infos = append(r.Infos, issue)
	}
}

// Merge appends all issues from other, preserving order within each list.
func (r *ValidationResult) Merge(other ValidationResult) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Infos = append(r.Infos, other.Infos...)
}

// IsValid reports whether validation passed. Warnings and infos do not
// affect validity.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// TotalIssues counts errors plus warnings.
func (r *ValidationResult) TotalIssues() int {
	return len(r.Errors) + len(r.Warnings)
}

// AllIssues returns errors, warnings, then infos as a single slice.
func (r *ValidationResult) AllIssues() []ValidationIssue {
	out := make([]ValidationIssue, 0, len(r.Errors)+len(r.Warnings)+len(r.Infos))
	out = append(out, r.Errors...)
	out = append(out, r.Warnings...)
	out = append(out, r.Infos...)
	return out
}

// FilterSeverity projects the result down to the issues surfaced at the
// given level. Errors always survive.
func (r *ValidationResult) FilterSeverity(level Severity) ValidationResult {
	out := ValidationResult{Errors: r.Errors}
	if level.Includes(SeverityWarning) {
		out.Warnings = r.Warnings
	}
	if level.Includes(SeverityInfo) {
		out.Infos = r.Infos
	}
	return out
}
