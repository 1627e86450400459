package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixtureDir = "../../testdata/n3t1r"

// setupProject copies the n3t1r fixture project into a temp root.
func setupProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, rel := range []string{"cbindgen.toml", "includes/n3t1r.h", "includes/n3t1r-template.hpp"} {
		copyFixture(t, rel, filepath.Join(root, rel))
	}
	return root
}

func copyFixture(t *testing.T, rel, dest string) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(fixtureDir, rel))
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(dest), 0755))
	require.NoError(t, os.WriteFile(dest, data, 0644))
}

func golden(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(fixtureDir, "n3t1r.hpp.golden"))
	require.NoError(t, err)
	return string(data)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
