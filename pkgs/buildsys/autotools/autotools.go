package autotools

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/goplus/ngxbuild/pkgs/buildsys"
)

// ErrNoConfigure is returned when the source tree has no configure script.
var ErrNoConfigure = errors.New("no configure script found")

// AutoTools drives configure-and-make builds in the source tree itself,
// the way nginx builds into objs/.
type AutoTools struct {
	SourceDir string
	Jobs      int // make -j value, 0 leaves it to make

	ctx    context.Context
	env    map[string]string
	stdout io.Writer
	stderr io.Writer
}

var _ buildsys.BuildSystem = (*AutoTools)(nil)

// New creates an AutoTools helper for sourceDir. Commands are killed when
// ctx is done.
func New(ctx context.Context, sourceDir string) *AutoTools {
	return &AutoTools{
		SourceDir: sourceDir,
		ctx:       ctx,
		env:       map[string]string{},
		stdout:    os.Stdout,
		stderr:    os.Stderr,
	}
}

// Env sets an environment variable for every command run by a.
func (a *AutoTools) Env(key, value string) {
	if a.env == nil {
		a.env = map[string]string{}
	}
	a.env[key] = value
}

// SetStdout redirects command output.
func (a *AutoTools) SetStdout(w io.Writer) {
	a.stdout = w
}

// SetStderr redirects command diagnostics.
func (a *AutoTools) SetStderr(w io.Writer) {
	a.stderr = w
}

// ConfigureScript returns the configure script relative to SourceDir:
// "./configure" for release trees, "auto/configure" for git checkouts.
func (a *AutoTools) ConfigureScript() (string, error) {
	for _, script := range []string{"configure", filepath.Join("auto", "configure")} {
		if info, err := os.Stat(filepath.Join(a.SourceDir, script)); err == nil && !info.IsDir() {
			if !strings.Contains(script, string(filepath.Separator)) {
				script = "./" + script
			}
			return script, nil
		}
	}
	return "", ErrNoConfigure
}

// Clean runs make clean. On a fresh checkout there is nothing to clean and
// this fails; callers are expected to treat the error as a warning.
func (a *AutoTools) Clean() error {
	return a.step(buildsys.StepClean, "make", "clean")
}

// Configure runs the configure script with args, in order.
func (a *AutoTools) Configure(args ...string) error {
	script, err := a.ConfigureScript()
	if err != nil {
		return &buildsys.StepError{Step: buildsys.StepConfigure, Err: err}
	}
	return a.step(buildsys.StepConfigure, script, args...)
}

// Build runs make (or provided args) in the source directory.
func (a *AutoTools) Build(args ...string) error {
	if len(args) == 0 {
		args = append([]string{"make"}, a.jobsArgs()...)
	}
	return a.step(buildsys.StepBuild, args[0], args[1:]...)
}

// Install runs make install (or provided args) in the source directory.
func (a *AutoTools) Install(args ...string) error {
	cmdArgs := []string{"make", "install"}
	if len(args) > 0 {
		cmdArgs = args
	}
	return a.step(buildsys.StepInstall, cmdArgs[0], cmdArgs[1:]...)
}

func (a *AutoTools) jobsArgs() []string {
	if a.Jobs <= 0 {
		return nil
	}
	return []string{"-j" + strconv.Itoa(a.Jobs)}
}

func (a *AutoTools) step(name, bin string, args ...string) error {
	if err := a.run(bin, args); err != nil {
		return &buildsys.StepError{Step: name, Err: err}
	}
	return nil
}

func (a *AutoTools) run(bin string, args []string) error {
	ctx := a.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = a.SourceDir
	cmd.Stdout = a.stdout
	cmd.Stderr = a.stderr
	if len(a.env) > 0 {
		cmd.Env = mergeEnv(os.Environ(), a.env)
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", strings.Join(append([]string{bin}, args...), " "), err)
	}
	return nil
}

func mergeEnv(base []string, override map[string]string) []string {
	envMap := make(map[string]string, len(base))
	for _, kv := range base {
		if k, v, ok := strings.Cut(kv, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range override {
		envMap[k] = v
	}
	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+envMap[k])
	}
	return out
}
