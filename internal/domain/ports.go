package domain

// DescriptorParser builds a ProjectDescriptor from a POM file on disk.
type DescriptorParser interface {
	Parse(path string) (*ProjectDescriptor, error)
}

// DescriptorWriter persists a descriptor back to its path as a whole-file
// replacement. Original formatting and comments are not preserved.
type DescriptorWriter interface {
	Write(d *ProjectDescriptor) error
}

// DescriptorScanner discovers POM files under a root directory.
type DescriptorScanner interface {
	Discover(root string, recursive bool, excludes ...string) ([]string, error)
}

// ConfigLoader reads the project-level lint configuration.
type ConfigLoader interface {
	Load(projectPath string) (LintConfig, error)
}

// GitInfo reports version-control metadata for the validated tree.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
}
