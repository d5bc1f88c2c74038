package gitctx

import (
	"os"
	"path/filepath"
)

// metadataDir marks the root of a working copy.
const metadataDir = ".git"

// ValidateRepository reports whether path is the root of a git working copy,
// that is, whether a .git directory sits directly under it. A .git file (as
// used by linked worktrees and submodules) does not count. It fails with
// ErrPathNotFound when path itself does not exist. No git process is run.
func ValidateRepository(path string) (bool, error) {
	if err := requirePath(path, "path does not exist: %s"); err != nil {
		return false, err
	}
	info, err := os.Stat(filepath.Join(path, metadataDir))
	if err != nil {
		return false, nil
	}
	return info.IsDir(), nil
}

// requirePath fails with ErrPathNotFound when path cannot be stat'ed.
func requirePath(path, format string) error {
	if _, err := os.Stat(path); err != nil {
		return pathNotFound(format, path)
	}
	return nil
}

func requireRepoPath(repoPath string) error {
	return requirePath(repoPath, "repository path does not exist: %s")
}
