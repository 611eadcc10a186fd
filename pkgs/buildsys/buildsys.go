package buildsys

import "fmt"

// BuildSystem captures the lifecycle a build driver runs against a source
// tree. Implementations add their own extras.
type BuildSystem interface {
	// Environment helper.
	Env(key, val string)

	// Lifecycle.
	Clean() error
	Configure(args ...string) error
	Build(args ...string) error
	Install(args ...string) error
}

// Build step names used in StepError.
const (
	StepClean     = "clean"
	StepConfigure = "configure"
	StepBuild     = "build"
	StepInstall   = "install"
)

// StepError reports a lifecycle step that did not succeed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
