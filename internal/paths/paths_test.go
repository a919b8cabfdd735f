package paths

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withWorkingDir points the working-directory lookup at dir for one test.
func withWorkingDir(t *testing.T, dir string) {
	t.Helper()
	orig := platformDir.getwd
	platformDir.getwd = func() (string, error) { return dir, nil }
	t.Cleanup(func() { platformDir.getwd = orig })
}

func makeProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(DataDir(root), 0o755))
	return root
}

func TestFindProjectRoot(t *testing.T) {
	root := makeProject(t)
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	t.Run("from the root itself", func(t *testing.T) {
		got, err := FindProjectRoot(root)
		require.NoError(t, err)
		assert.Equal(t, root, got)
	})

	t.Run("from a nested directory", func(t *testing.T) {
		got, err := FindProjectRoot(nested)
		require.NoError(t, err)
		assert.Equal(t, root, got)
	})

	t.Run("nearest marker wins", func(t *testing.T) {
		inner := filepath.Join(root, "a")
		require.NoError(t, os.Mkdir(DataDir(inner), 0o755))
		got, err := FindProjectRoot(nested)
		require.NoError(t, err)
		assert.Equal(t, inner, got)
	})
}

func TestFindProjectRoot_MarkerMustBeDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, MarkerDirName), nil, 0o644))

	_, err := FindProjectRoot(dir)
	// A parent of the temp dir could in principle hold a real project.
	if err == nil {
		t.Skip("an enclosing directory contains a .yo folder")
	}
	assert.True(t, errors.Is(err, ErrNoProject), "got %v", err)
}

func TestResolveProjectRoot(t *testing.T) {
	root := makeProject(t)
	nested := filepath.Join(root, "src")
	require.NoError(t, os.Mkdir(nested, 0o755))

	t.Run("flag wins over env and discovery", func(t *testing.T) {
		t.Setenv(EnvProjectDir, "/from/env")
		withWorkingDir(t, nested)
		got, err := ResolveProjectRoot("/from/flag")
		require.NoError(t, err)
		assert.Equal(t, filepath.Clean("/from/flag"), got)
	})

	t.Run("env wins over discovery", func(t *testing.T) {
		t.Setenv(EnvProjectDir, "/from/env")
		withWorkingDir(t, nested)
		got, err := ResolveProjectRoot("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Clean("/from/env"), got)
	})

	t.Run("discovers from the working directory", func(t *testing.T) {
		t.Setenv(EnvProjectDir, "")
		withWorkingDir(t, nested)
		got, err := ResolveProjectRoot("")
		require.NoError(t, err)
		assert.Equal(t, root, got)
	})
}

func TestResolveInitRoot(t *testing.T) {
	cwd := t.TempDir()

	t.Run("defaults to the working directory", func(t *testing.T) {
		t.Setenv(EnvProjectDir, "")
		withWorkingDir(t, cwd)
		got, err := ResolveInitRoot("")
		require.NoError(t, err)
		assert.Equal(t, cwd, got)
	})

	t.Run("flag wins", func(t *testing.T) {
		t.Setenv(EnvProjectDir, "/from/env")
		withWorkingDir(t, cwd)
		got, err := ResolveInitRoot("/from/flag")
		require.NoError(t, err)
		assert.Equal(t, filepath.Clean("/from/flag"), got)
	})
}

func TestDataDir(t *testing.T) {
	assert.Equal(t, filepath.Join("root", ".yo"), DataDir("root"))
}
