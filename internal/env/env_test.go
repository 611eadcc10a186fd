package env

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWorkspaceDirDefault(t *testing.T) {
	t.Setenv(WorkspaceEnv, "")

	dir, err := WorkspaceDir()
	if err != nil {
		t.Fatalf("WorkspaceDir() returned error: %v", err)
	}

	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		t.Fatalf("os.UserCacheDir() returned error: %v", err)
	}
	expectedDir := filepath.Join(userCacheDir, ".ngxbuild", "workspace")
	if dir != expectedDir {
		t.Errorf("WorkspaceDir() = %q, want %q", dir, expectedDir)
	}
}

func TestWorkspaceDirFromEnv(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv(WorkspaceEnv, tempDir)

	dir, err := WorkspaceDir()
	if err != nil {
		t.Fatalf("WorkspaceDir() returned error: %v", err)
	}
	if dir != tempDir {
		t.Errorf("WorkspaceDir() = %q, want %q", dir, tempDir)
	}
}

// TestWorkspaceDirRelativeEnv verifies a relative override is made absolute,
// so configure flags stay valid from inside the primary tree.
func TestWorkspaceDirRelativeEnv(t *testing.T) {
	t.Setenv(WorkspaceEnv, "ws")

	dir, err := WorkspaceDir()
	if err != nil {
		t.Fatalf("WorkspaceDir() returned error: %v", err)
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("WorkspaceDir() = %q, want absolute path", dir)
	}
	if filepath.Base(dir) != "ws" {
		t.Errorf("WorkspaceDir() = %q, want base ws", dir)
	}
}

func TestWorkspaceDirDoesNotCreate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "absent")
	t.Setenv(WorkspaceEnv, dir)

	if _, err := WorkspaceDir(); err != nil {
		t.Fatalf("WorkspaceDir() returned error: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("WorkspaceDir() created %s", dir)
	}
}
