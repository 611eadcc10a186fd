package env

import (
	"os"
	"path/filepath"
)

// WorkspaceEnv overrides the default workspace root.
const WorkspaceEnv = "NGXBUILD_WORKSPACE"

// WorkDir returns the tool's per-user cache directory.
func WorkDir() (string, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userCacheDir, ".ngxbuild"), nil
}

// WorkspaceDir returns the absolute workspace root: $NGXBUILD_WORKSPACE when
// set, otherwise WorkDir()/workspace. The directory is not created.
func WorkspaceDir() (string, error) {
	if dir := os.Getenv(WorkspaceEnv); dir != "" {
		return filepath.Abs(dir)
	}
	workDir, err := WorkDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(workDir, "workspace"), nil
}
