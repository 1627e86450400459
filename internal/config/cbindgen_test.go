package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/mvp-joe/hdrwrap/internal/wrapgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Generator Config:
// - The bundled cbindgen.toml yields the include guard and the renamed constant
// - A missing include_guard or rename entry fails with ErrMissingField
// - An empty value is treated as missing
// - Lookup failures carry the key as error metadata
// - A missing file fails with a read error
// - A file without a known extension is parsed as TOML

const fixtureGeneratorConfig = "../../testdata/n3t1r/cbindgen.toml"

func writeGeneratorConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadGeneratorConfig_Fixture(t *testing.T) {
	doc, err := LoadGeneratorConfig(fixtureGeneratorConfig)
	require.NoError(t, err)
	assert.Equal(t, fixtureGeneratorConfig, doc.Path())

	guard, err := doc.IncludeGuard()
	require.NoError(t, err)
	assert.Equal(t, "N3T1R_H", guard)

	name, err := doc.RenamedConstant("MAXIMUM_DATA_LEN")
	require.NoError(t, err)
	assert.Equal(t, "N3T1R_MAXIMUM_DATA_LEN", name)
}

func TestLoadGeneratorConfig_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
		lookup  func(doc *GeneratorConfig) (string, error)
		key     string
	}{
		{
			name:    "no include_guard",
			content: "language = \"C\"\n",
			lookup:  func(doc *GeneratorConfig) (string, error) { return doc.IncludeGuard() },
			key:     "include_guard",
		},
		{
			name:    "empty include_guard",
			content: "include_guard = \"  \"\n",
			lookup:  func(doc *GeneratorConfig) (string, error) { return doc.IncludeGuard() },
			key:     "include_guard",
		},
		{
			name:    "no rename table",
			content: "include_guard = \"G\"\n",
			lookup: func(doc *GeneratorConfig) (string, error) {
				return doc.RenamedConstant("MAXIMUM_DATA_LEN")
			},
			key: "export.rename.MAXIMUM_DATA_LEN",
		},
		{
			name:    "rename table without the constant",
			content: "include_guard = \"G\"\n[export.rename]\n\"OTHER\" = \"LIB_OTHER\"\n",
			lookup: func(doc *GeneratorConfig) (string, error) {
				return doc.RenamedConstant("MAXIMUM_DATA_LEN")
			},
			key: "export.rename.MAXIMUM_DATA_LEN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := LoadGeneratorConfig(writeGeneratorConfig(t, "cbindgen.toml", tt.content))
			require.NoError(t, err)

			value, err := tt.lookup(doc)

			require.Error(t, err)
			assert.Empty(t, value)
			assert.ErrorIs(t, err, ErrMissingField)
			assert.Contains(t, err.Error(), wrapgen.ErrMsgConfigLookup)

			var customErr *cuserr.CustomError
			require.True(t, errors.As(err, &customErr))
			key, ok := customErr.GetMetadata(wrapgen.MetaKeyKey)
			assert.True(t, ok)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestLoadGeneratorConfig_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cbindgen.toml")

	doc, err := LoadGeneratorConfig(path)

	require.Error(t, err)
	assert.Nil(t, doc)
	assert.Contains(t, err.Error(), wrapgen.ErrMsgReadFailed)
}

func TestLoadGeneratorConfig_UnknownExtensionIsTOML(t *testing.T) {
	path := writeGeneratorConfig(t, "cbindgen.conf", "include_guard = \"CONF_H\"\n")

	doc, err := LoadGeneratorConfig(path)
	require.NoError(t, err)

	guard, err := doc.IncludeGuard()
	require.NoError(t, err)
	assert.Equal(t, "CONF_H", guard)
}

func TestDocumentLoader(t *testing.T) {
	doc, err := DocumentLoader(fixtureGeneratorConfig)
	require.NoError(t, err)

	guard, err := doc.IncludeGuard()
	require.NoError(t, err)
	assert.Equal(t, "N3T1R_H", guard)
}
