// Package vcs fetches source trees from version control.
package vcs

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// VCS defines the interface for version control operations.
type VCS interface {
	// Clone checks out exactly ref of remote into dir.
	// ref can be a branch or a tag. Only that ref is fetched, with a
	// history depth of one. dir must not exist or be empty.
	Clone(ctx context.Context, remote, ref, dir string) error
}

// Backend names accepted by New.
const (
	Git   = "git"
	GoGit = "go-git"
)

// New returns the VCS backend called name.
func New(name string) (VCS, error) {
	switch name {
	case "", Git:
		return NewGitVCS(), nil
	case GoGit:
		return NewGoGitVCS(), nil
	default:
		return nil, fmt.Errorf("unsupported vcs backend: %s", name)
	}
}

// gitVCS implements VCS by running the git executable.
type gitVCS struct {
	git string
}

// GitOption configures gitVCS.
type GitOption func(*gitVCS)

// WithGitPath sets a custom git executable path.
func WithGitPath(path string) GitOption {
	return func(g *gitVCS) {
		g.git = path
	}
}

// NewGitVCS creates a new git VCS instance.
func NewGitVCS(opts ...GitOption) VCS {
	g := &gitVCS{git: "git"}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *gitVCS) Clone(ctx context.Context, remote, ref, dir string) error {
	args := []string{"clone", "--quiet", "--depth", "1", "--single-branch", "--branch", ref, "--", remote, dir}
	if err := g.run(ctx, "", args...); err != nil {
		return fmt.Errorf("clone: %w", err)
	}
	return nil
}

func (g *gitVCS) run(ctx context.Context, dir string, args ...string) error {
	_, err := g.output(ctx, dir, args...)
	return err
}

func (g *gitVCS) output(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, g.git, args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("%s", msg)
		}
		return "", err
	}
	return stdout.String(), nil
}
