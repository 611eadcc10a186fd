package vcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// goGitVCS implements VCS with the pure Go git client, for hosts without a
// git executable.
type goGitVCS struct {
	progress io.Writer
}

// GoGitOption configures goGitVCS.
type GoGitOption func(*goGitVCS)

// WithProgress streams remote progress messages to w.
func WithProgress(w io.Writer) GoGitOption {
	return func(g *goGitVCS) {
		g.progress = w
	}
}

// NewGoGitVCS creates a VCS backed by go-git.
func NewGoGitVCS(opts ...GoGitOption) VCS {
	g := &goGitVCS{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Clone tries ref as a branch first, then as a tag. A fully qualified
// "refs/..." name is used as is.
func (g *goGitVCS) Clone(ctx context.Context, remote, ref, dir string) error {
	if strings.HasPrefix(ref, "refs/") {
		return g.clone(ctx, remote, plumbing.ReferenceName(ref), dir)
	}
	var err error
	for _, name := range []plumbing.ReferenceName{
		plumbing.NewBranchReferenceName(ref),
		plumbing.NewTagReferenceName(ref),
	} {
		err = g.clone(ctx, remote, name, dir)
		if err == nil || !isRefNotFound(err) {
			return err
		}
		// go-git may leave a partial repository behind.
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			return rmErr
		}
	}
	return fmt.Errorf("ref %s not found in %s: %w", ref, remote, err)
}

func (g *goGitVCS) clone(ctx context.Context, remote string, name plumbing.ReferenceName, dir string) error {
	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:           remote,
		ReferenceName: name,
		SingleBranch:  true,
		Depth:         1,
		Progress:      g.progress,
	})
	if err != nil {
		return fmt.Errorf("clone %s: %w", name.Short(), err)
	}
	return nil
}

func isRefNotFound(err error) bool {
	return errors.Is(err, plumbing.ErrReferenceNotFound) ||
		errors.Is(err, git.NoMatchingRefSpecError{})
}
