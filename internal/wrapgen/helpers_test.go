package wrapgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixtureDir holds a cbindgen project: cbindgen.toml, the generated header,
// the wrapper template and the expected output.
const fixtureDir = "../../testdata/n3t1r"

func readFixture(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(fixtureDir, rel))
	require.NoError(t, err)
	return string(data)
}

// writeFile writes content under dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// stubDocument is a ConfigDocument with fixed values.
type stubDocument struct {
	guard    string
	constant map[string]string
	err      error
}

func (d *stubDocument) IncludeGuard() (string, error) {
	if d.err != nil {
		return "", d.err
	}
	return d.guard, nil
}

func (d *stubDocument) RenamedConstant(canonical string) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	name, ok := d.constant[canonical]
	if !ok {
		return "", NewConfigLookupError("export.rename."+canonical, os.ErrNotExist)
	}
	return name, nil
}

func stubLoader(doc *stubDocument) DocumentLoader {
	return func(path string) (ConfigDocument, error) {
		return doc, nil
	}
}
