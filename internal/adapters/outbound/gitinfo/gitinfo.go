// Package gitinfo reports the revision of a validated project tree so
// reports can pin findings to a commit.
package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// Resolver implements domain.GitInfo on top of go-git.
type Resolver struct{}

func New() *Resolver { return &Resolver{} }

// IsGitRepo reports whether projectPath is the root of a git checkout.
func (r *Resolver) IsGitRepo(projectPath string) bool {
	_, err := git.PlainOpen(projectPath)
	return err == nil
}

// CommitHash returns the full hash of HEAD for the checkout at projectPath.
func (r *Resolver) CommitHash(projectPath string) (string, error) {
	repo, err := git.PlainOpen(projectPath)
	if err != nil {
		return "", fmt.Errorf("opening repository at %s: %w", projectPath, err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}

	return head.Hash().String(), nil
}
