// Package workspace materializes source trees under a workspace root.
package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goplus/ngxbuild/internal/vcs"
)

// CloneError reports a checkout that did not succeed.
type CloneError struct {
	URL  string
	Ref  string
	Dest string
	Err  error
}

func (e *CloneError) Error() string {
	return fmt.Sprintf("failed to clone %s@%s into %s: %v", e.URL, e.Ref, e.Dest, e.Err)
}

func (e *CloneError) Unwrap() error {
	return e.Err
}

// Cloner performs destructive clones: the destination is always removed
// before the checkout, so repeated runs never merge into a stale tree.
type Cloner struct {
	vcs vcs.VCS
}

// NewCloner creates a Cloner fetching through v.
func NewCloner(v vcs.VCS) *Cloner {
	return &Cloner{vcs: v}
}

// Clone checks out ref of url into root/name and returns the destination.
// name must stay inside root. Any failure is a *CloneError.
func (c *Cloner) Clone(ctx context.Context, root, url, ref, name string) (string, error) {
	dest := filepath.Join(root, name)
	fail := func(err error) (string, error) {
		return "", &CloneError{URL: url, Ref: ref, Dest: dest, Err: err}
	}
	if !filepath.IsLocal(name) {
		return fail(fmt.Errorf("destination %q escapes workspace root %s", name, root))
	}
	if err := os.RemoveAll(dest); err != nil {
		return fail(err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fail(err)
	}
	if err := c.vcs.Clone(ctx, url, ref, dest); err != nil {
		return fail(err)
	}
	return dest, nil
}
