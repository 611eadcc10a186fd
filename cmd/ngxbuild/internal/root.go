package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/goplus/ngxbuild/internal/options"
	"github.com/spf13/cobra"
)

// ArgumentError reports invalid command-line syntax. Nothing has been
// cloned or built when it is returned.
type ArgumentError struct {
	Err error
}

func (e *ArgumentError) Error() string {
	return e.Err.Error()
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

func newRootCmd() *cobra.Command {
	var (
		o      buildOptions
		config string
	)

	rootCmd := &cobra.Command{
		Use:   "ngxbuild [flags] SOURCE [MODULE...]",
		Short: "ngxbuild fetches nginx and its modules and builds them",
		Long: `ngxbuild clones an nginx source tree plus any modules and libraries at
pinned refs into a workspace, derives the configure flags that wire them in,
then runs make clean, configure and make in the nginx tree.

Each SOURCE or MODULE is URL[@REF[,SUBDIR]]. REF defaults to master. SUBDIR
is where a module keeps its config file. Repositories whose URL contains
pcre, zlib, libatomic or openssl are passed as --with-<lib>=DIR; others
become --add-module=DIR[/SUBDIR].`,
		Example: `  ngxbuild https://github.com/nginx/nginx.git@release-1.25.3 \
    https://github.com/nbs-system/naxsi.git@1.3,naxsi_src \
    https://github.com/PCRE2Project/pcre2.git@pcre2-10.42 \
    -o --with-http_ssl_module

  ngxbuild -c build.yml --no-clone`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return &ArgumentError{Err: errors.New("missing SOURCE argument")}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if o.verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// options.Expand strips every standalone form of -c/--config,
			// so a value here came from a grouped shorthand like -nc FILE.
			if config != "" {
				return &ArgumentError{Err: fmt.Errorf("options file %s not read: give -c/--config on its own, not grouped with other flags", config)}
			}
			return runBuild(cmd, &o, args)
		},
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &ArgumentError{Err: err}
	})

	flags := rootCmd.Flags()
	flags.StringVarP(&o.workspace, "workspace", "w", "", "workspace root (default $NGXBUILD_WORKSPACE or the user cache dir)")
	flags.StringArrayVarP(&o.configureOpts, "opt", "o", nil, "extra configure option, passed verbatim after derived flags (repeatable)")
	flags.BoolVarP(&o.noClone, "no-clone", "n", false, "reuse the existing workspace instead of cloning")
	flags.BoolVar(&o.cloneOnly, "clone-only", false, "stop after the workspace is ready")
	flags.BoolVar(&o.install, "install", false, "run make install after building")
	flags.IntVarP(&o.jobs, "jobs", "j", 0, "parallel make jobs")
	flags.StringVar(&o.vcs, "vcs", "git", "clone backend: git or go-git")
	flags.StringArrayVarP(&o.env, "env", "e", nil, "KEY=VALUE set for configure and make, e.g. CC=clang (repeatable)")
	flags.StringVarP(&config, "config", "c", "", "read arguments from an options file (plain, .yaml or .toml)")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "enable verbose logging and clone progress")
	return rootCmd
}

// Execute runs ngxbuild with the process arguments and exits non-zero on
// failure. This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// execute merges options files into args once, then parses and runs them.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	err := func() error {
		merged, err := options.Expand(args)
		if err != nil {
			if errors.Is(err, options.ErrMissingValue) {
				return &ArgumentError{Err: err}
			}
			return err
		}
		rootCmd := newRootCmd()
		rootCmd.SetArgs(merged)
		rootCmd.SetOut(stdout)
		rootCmd.SetErr(stderr)
		return rootCmd.ExecuteContext(ctx)
	}()
	if err != nil {
		report(stderr, err)
	}
	return err
}

func report(w io.Writer, err error) {
	fmt.Fprintln(w, "Error:", err)
	var argErr *ArgumentError
	if errors.As(err, &argErr) {
		fmt.Fprintln(w, "Run 'ngxbuild --help' for usage.")
	}
}
