package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pomlint/pomlint/internal/domain"
	"gopkg.in/yaml.v3"
)

const fileName = ".pomlint.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .pomlint.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .pomlint.yaml from projectPath.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.LintConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.LintConfig{}, err
	}

	var cfg domain.LintConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.LintConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	// Validate the raw input before use so typos in profile or
	// severity names are rejected early.
	if err := cfg.Validate(); err != nil {
		return domain.LintConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return cfg, nil
}
