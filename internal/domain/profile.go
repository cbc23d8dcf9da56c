package domain

import "fmt"

// Profile names a subset of validation rules to run. Profile selection and
// severity filtering are independent projections: the profile decides which
// rules execute, the severity level decides which produced issues surface.
type Profile string

const (
	ProfileStrict   Profile = "strict"
	ProfileStandard Profile = "standard"
	ProfileMinimal  Profile = "minimal"
	ProfileCustom   Profile = "custom"
)

// ParseProfile parses a CLI profile value. Unknown values are rejected.
func ParseProfile(value string) (Profile, error) {
	switch Profile(value) {
	case ProfileStrict, ProfileStandard, ProfileMinimal, ProfileCustom:
		return Profile(value), nil
	}
	return "", fmt.Errorf("unknown profile %q (expected strict, standard, minimal, or custom)", value)
}

// LintConfig is the optional project-level configuration read from
// .pomlint.yaml. The zero value is a usable default.
type LintConfig struct {
	// Profile overrides the default profile when the CLI does not set one.
	Profile string `yaml:"profile,omitempty"`

	// Severity overrides the default surfaced-severity level.
	Severity string `yaml:"severity,omitempty"`

	// CustomRules lists the rule names run under the custom profile.
	CustomRules []string `yaml:"custom_rules,omitempty"`

	// ExcludePaths are directory names skipped during descriptor discovery,
	// in addition to the built-in skip list.
	ExcludePaths []string `yaml:"exclude_paths,omitempty"`
}

// DefaultConfig returns the configuration used when no .pomlint.yaml exists.
func DefaultConfig() LintConfig {
	return LintConfig{}
}

// Validate rejects unknown profile or severity names before they are merged,
// catching typos in the user's raw input.
func (c LintConfig) Validate() error {
	if c.Profile != "" {
		if _, err := ParseProfile(c.Profile); err != nil {
			return err
		}
	}
	if c.Severity != "" {
		if _, err := ParseSeverity(c.Severity); err != nil {
			return err
		}
	}
	return nil
}
