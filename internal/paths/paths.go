// Package paths resolves the project directory: the directory holding the
// .yo marker folder with the entry log, snapshot and config.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// MarkerDirName is the folder that marks a project root.
const MarkerDirName = ".yo"

// EnvProjectDir overrides project discovery.
const EnvProjectDir = "YO_PROJECT_DIR"

// ErrNoProject is returned when no marker folder is found.
var ErrNoProject = errors.New("not inside a yo project (no .yo directory found)")

// platformDir holds lookups that can be overridden in tests.
var platformDir = struct {
	getwd func() (string, error)
}{
	getwd: os.Getwd,
}

// FindProjectRoot walks from start up to the filesystem root and returns the
// first directory containing a .yo folder.
func FindProjectRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		info, err := os.Stat(filepath.Join(dir, MarkerDirName))
		if err == nil && info.IsDir() {
			return dir, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("checking %s: %w", dir, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoProject
		}
		dir = parent
	}
}

// ResolveProjectRoot returns the project root following the precedence
// chain: flag > YO_PROJECT_DIR env > discovery from the working directory.
// An explicit flag or env value is taken as-is and need not exist yet.
func ResolveProjectRoot(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvProjectDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := platformDir.getwd()
	if err != nil {
		return "", err
	}
	return FindProjectRoot(cwd)
}

// DataDir returns the marker folder of a project root.
func DataDir(root string) string {
	return filepath.Join(root, MarkerDirName)
}

// ResolveInitRoot returns where a new project is created: flag >
// YO_PROJECT_DIR env > the working directory.
func ResolveInitRoot(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvProjectDir); env != "" {
		return filepath.Abs(env)
	}
	return platformDir.getwd()
}
