// Package sourceset turns an ordered list of source specifications into a
// workspace and the configure flags that wire it into the primary build.
package sourceset

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/goplus/ngxbuild/internal/deps"
	"github.com/goplus/ngxbuild/internal/source"
)

// ErrNoSources is returned when no primary source is given.
var ErrNoSources = errors.New("no sources specified")

// Role says how an entry takes part in the build.
type Role int

const (
	// Primary is the tree that is configured and compiled.
	Primary Role = iota
	// Additional is a module wired in with --add-module.
	Additional
	// Dependency is a library wired in with a --with-<lib> option.
	Dependency
)

func (r Role) String() string {
	switch r {
	case Primary:
		return "primary"
	case Additional:
		return "module"
	case Dependency:
		return "dependency"
	}
	return "unknown"
}

// Entry is one source spec with its role and destination resolved.
type Entry struct {
	Spec source.Spec
	Role Role
	Dir  string // destination under the workspace root
	Flag string // configure flag contributed, empty for Primary
}

// Plan assigns roles and destinations. The first spec is Primary; later
// specs are Dependency when c recognizes their URL, otherwise Additional.
func Plan(specs []source.Spec, root string, c *deps.Classifier) []Entry {
	entries := make([]Entry, 0, len(specs))
	for i, spec := range specs {
		e := Entry{
			Spec: spec,
			Dir:  filepath.Join(root, spec.DirName()),
		}
		switch flag, ok := c.Classify(spec.URL, e.Dir); {
		case i == 0:
			e.Role = Primary
		case ok:
			e.Role = Dependency
			e.Flag = flag
		default:
			e.Role = Additional
			// Join drops any trailing separator of the subdir.
			e.Flag = "--add-module=" + filepath.Join(e.Dir, spec.Subdir)
		}
		entries = append(entries, e)
	}
	return entries
}

// Cloner materializes one source tree under the workspace root.
type Cloner interface {
	Clone(ctx context.Context, root, url, ref, name string) (string, error)
}

// Options configures Process.
type Options struct {
	Root       string           // workspace root
	NoClone    bool             // compute names and flags only
	Cloner     Cloner           // required unless NoClone
	Classifier *deps.Classifier // defaults to deps.New()
	Logger     *log.Logger      // defaults to log.Default()
}

// Result is the outcome of processing a source set.
type Result struct {
	PrimaryDir string
	Flags      []string // in input order
	Entries    []Entry
}

// Process clones every spec in order and collects the configure flags.
// The first clone failure aborts the run; trees already cloned are kept.
func Process(ctx context.Context, specs []source.Spec, opts Options) (*Result, error) {
	if len(specs) == 0 {
		return nil, ErrNoSources
	}
	if !opts.NoClone && opts.Cloner == nil {
		return nil, errors.New("sourceset: no cloner configured")
	}
	c := opts.Classifier
	if c == nil {
		c = deps.New()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	res := &Result{Entries: Plan(specs, opts.Root, c)}
	for _, e := range res.Entries {
		logger.Debug("source", "role", e.Role, "spec", e.Spec, "dir", e.Dir)
		if opts.NoClone {
			if _, err := os.Stat(e.Dir); err != nil {
				logger.Warn("Source not in workspace", "dir", e.Dir)
			}
		} else {
			logger.Info("Cloning", "url", e.Spec.URL, "ref", e.Spec.Ref)
			if _, err := opts.Cloner.Clone(ctx, opts.Root, e.Spec.URL, e.Spec.Ref, e.Spec.DirName()); err != nil {
				return nil, err
			}
		}
		if e.Role == Primary {
			res.PrimaryDir = e.Dir
			continue
		}
		res.Flags = append(res.Flags, e.Flag)
	}
	return res, nil
}
