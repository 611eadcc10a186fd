// Package options merges options files into the command line.
//
// An options file is read once, before flag parsing, and its arguments are
// placed in front of the remaining command-line arguments, so anything given
// on the command line wins for single-valued flags.
package options

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrMissingValue is returned when --config is the last argument.
var ErrMissingValue = errors.New("flag needs an argument: --config")

// ErrNested is returned when an options file itself names an options file.
var ErrNested = errors.New("options file cannot reference another options file")

// File is the structured form of an options file (YAML or TOML).
type File struct {
	Workspace string   `yaml:"workspace" toml:"workspace"`
	VCS       string   `yaml:"vcs" toml:"vcs"`
	Source    string   `yaml:"source" toml:"source"`
	Modules   []string `yaml:"modules" toml:"modules"`
	Configure []string `yaml:"configure" toml:"configure"`
	NoClone   bool     `yaml:"no_clone" toml:"no_clone"`
	CloneOnly bool     `yaml:"clone_only" toml:"clone_only"`
	Install   bool     `yaml:"install" toml:"install"`
	Jobs      int      `yaml:"jobs" toml:"jobs"`

	// Env is set for configure and make, e.g. CC or CFLAGS.
	Env map[string]string `yaml:"env" toml:"env"`
}

// Args converts f to command-line arguments.
func (f *File) Args() []string {
	var args []string
	if f.Workspace != "" {
		args = append(args, "--workspace="+f.Workspace)
	}
	if f.VCS != "" {
		args = append(args, "--vcs="+f.VCS)
	}
	if f.NoClone {
		args = append(args, "--no-clone")
	}
	if f.CloneOnly {
		args = append(args, "--clone-only")
	}
	if f.Install {
		args = append(args, "--install")
	}
	if f.Jobs > 0 {
		args = append(args, "--jobs="+strconv.Itoa(f.Jobs))
	}
	keys := make([]string, 0, len(f.Env))
	for k := range f.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "--env="+k+"="+f.Env[k])
	}
	for _, opt := range f.Configure {
		args = append(args, "--opt="+opt)
	}
	if f.Source != "" {
		args = append(args, f.Source)
	}
	return append(args, f.Modules...)
}

// Expand replaces every -c/--config FILE in args with nothing and returns
// the arguments of those files, in order, followed by the rest of args.
// Scanning stops at "--".
func Expand(args []string) ([]string, error) {
	var fileArgs, rest []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			rest = append(rest, args[i:]...)
			break
		}
		path, ok, err := configValue(args, &i)
		if err != nil {
			return nil, err
		}
		if !ok {
			rest = append(rest, arg)
			continue
		}
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		fileArgs = append(fileArgs, loaded...)
	}
	return append(fileArgs, rest...), nil
}

// configValue reports whether args[*i] is a config flag and returns its
// value, advancing *i past a separate value argument.
func configValue(args []string, i *int) (string, bool, error) {
	arg := args[*i]
	switch {
	case arg == "-c" || arg == "--config":
		if *i+1 >= len(args) {
			return "", false, ErrMissingValue
		}
		*i++
		return args[*i], true, nil
	case strings.HasPrefix(arg, "--config="):
		return strings.TrimPrefix(arg, "--config="), true, nil
	case strings.HasPrefix(arg, "-c") && !strings.HasPrefix(arg, "--"):
		return strings.TrimPrefix(strings.TrimPrefix(arg, "-c"), "="), true, nil
	}
	return "", false, nil
}

// Load reads an options file. ".yaml", ".yml" and ".toml" files use the
// structured File form; anything else is plain text.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading options file: %w", err)
	}

	var args []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var f File
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		args = f.Args()
	case ".toml":
		var f File
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		args = f.Args()
	default:
		args, err = ParseText(data)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	for i := 0; i < len(args); i++ {
		if _, ok, err := configValue(args, &i); ok || err != nil {
			return nil, fmt.Errorf("%s: %w", path, ErrNested)
		}
	}
	return args, nil
}

// ParseText splits a plain options file into arguments. Text after '#' on
// each line is a comment; the rest is split on whitespace.
func ParseText(data []byte) ([]string, error) {
	var args []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line, _, _ := strings.Cut(sc.Text(), "#")
		args = append(args, strings.Fields(line)...)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return args, nil
}
