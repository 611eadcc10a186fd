package internal

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goplus/ngxbuild/internal/env"
	"github.com/goplus/ngxbuild/internal/source"
	"github.com/goplus/ngxbuild/internal/sourceset"
	"github.com/goplus/ngxbuild/internal/vcs"
	"github.com/goplus/ngxbuild/internal/workspace"
	"github.com/goplus/ngxbuild/pkgs/buildsys/autotools"
	"github.com/spf13/cobra"
)

type buildOptions struct {
	workspace     string
	configureOpts []string
	noClone       bool
	cloneOnly     bool
	install       bool
	jobs          int
	vcs           string
	env           []string // KEY=VALUE
	verbose       bool
}

func runBuild(cmd *cobra.Command, o *buildOptions, args []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	v, err := newVCS(cmd, o)
	if err != nil {
		return &ArgumentError{Err: err}
	}
	envVars, err := parseEnv(o.env)
	if err != nil {
		return &ArgumentError{Err: err}
	}
	root, err := workspaceRoot(o.workspace)
	if err != nil {
		return fmt.Errorf("failed to resolve workspace: %w", err)
	}

	p := newProgress(logger)
	res, err := sourceset.Process(ctx, source.ParseAll(args), sourceset.Options{
		Root:    root,
		NoClone: o.noClone,
		Cloner:  workspace.NewCloner(v),
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	p.done("Workspace ready", "primary", res.PrimaryDir, "flags", strings.Join(res.Flags, " "))
	if o.cloneOnly {
		return nil
	}

	// Derived flags first; user options may override them.
	flags := append(append([]string(nil), res.Flags...), o.configureOpts...)

	at := autotools.New(ctx, res.PrimaryDir)
	at.Jobs = o.jobs
	for _, kv := range envVars {
		at.Env(kv[0], kv[1])
	}
	at.SetStdout(cmd.OutOrStdout())
	at.SetStderr(cmd.ErrOrStderr())

	p = newProgress(logger)
	if err := at.Clean(); err != nil {
		logger.Warn("Clean skipped", "err", err)
	}
	logger.Info("Configuring", "dir", res.PrimaryDir)
	logger.Debug("configure", "flags", strings.Join(flags, " "))
	if err := at.Configure(flags...); err != nil {
		return err
	}
	logger.Info("Building", "jobs", o.jobs)
	if err := at.Build(); err != nil {
		return err
	}
	if o.install {
		logger.Info("Installing")
		if err := at.Install(); err != nil {
			return err
		}
	}
	p.done("Build finished", "dir", res.PrimaryDir)
	return nil
}

// newVCS returns the clone backend. go-git streams remote progress to
// stderr in verbose mode; the git CLI runs quietly.
func newVCS(cmd *cobra.Command, o *buildOptions) (vcs.VCS, error) {
	if o.vcs == vcs.GoGit && o.verbose {
		return vcs.NewGoGitVCS(vcs.WithProgress(cmd.ErrOrStderr())), nil
	}
	return vcs.New(o.vcs)
}

// parseEnv splits KEY=VALUE assignments, keeping their order.
func parseEnv(assignments []string) ([][2]string, error) {
	vars := make([][2]string, 0, len(assignments))
	for _, a := range assignments {
		k, v, ok := strings.Cut(a, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --env %q: want KEY=VALUE", a)
		}
		vars = append(vars, [2]string{k, v})
	}
	return vars, nil
}

// workspaceRoot returns the absolute workspace root. Configure runs inside
// the primary tree, so flags must not hold relative paths.
func workspaceRoot(flag string) (string, error) {
	if flag == "" {
		return env.WorkspaceDir()
	}
	return filepath.Abs(flag)
}
