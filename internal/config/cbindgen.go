package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mvp-joe/hdrwrap/internal/wrapgen"
	"github.com/spf13/viper"
)

// ErrMissingField indicates a required key absent from the generator config.
var ErrMissingField = errors.New("missing generator config field")

const (
	keyIncludeGuard = "include_guard"
	keyRenamePrefix = "export.rename."
)

// GeneratorConfig is the binding generator's own configuration document
// (cbindgen.toml). Fields are looked up lazily, so a missing key only fails
// the run that needs it.
type GeneratorConfig struct {
	path string
	v    *viper.Viper
}

var _ wrapgen.ConfigDocument = (*GeneratorConfig)(nil)

// LoadGeneratorConfig reads the generator config document at path. The
// format follows the file extension and defaults to TOML.
func LoadGeneratorConfig(path string) (*GeneratorConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if !hasKnownExtension(path) {
		v.SetConfigType("toml")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, wrapgen.NewReadError(path, err)
	}

	return &GeneratorConfig{path: path, v: v}, nil
}

// DocumentLoader adapts LoadGeneratorConfig to wrapgen.DocumentLoader.
func DocumentLoader(path string) (wrapgen.ConfigDocument, error) {
	return LoadGeneratorConfig(path)
}

// Path returns the file the document was read from.
func (c *GeneratorConfig) Path() string {
	return c.path
}

// IncludeGuard returns the include_guard identifier.
func (c *GeneratorConfig) IncludeGuard() (string, error) {
	return c.lookup(keyIncludeGuard)
}

// RenamedConstant returns export.rename.<canonical>, the name the generator
// emits for the canonical constant.
func (c *GeneratorConfig) RenamedConstant(canonical string) (string, error) {
	return c.lookup(keyRenamePrefix + canonical)
}

func (c *GeneratorConfig) lookup(key string) (string, error) {
	if !c.v.IsSet(key) {
		return "", wrapgen.NewConfigLookupError(key, fmt.Errorf("%w: %s in %s", ErrMissingField, key, c.path))
	}
	value := strings.TrimSpace(c.v.GetString(key))
	if value == "" {
		return "", wrapgen.NewConfigLookupError(key, fmt.Errorf("%w: %s is empty in %s", ErrMissingField, key, c.path))
	}
	return value, nil
}

func hasKnownExtension(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, known := range viper.SupportedExts {
		if ext == known {
			return true
		}
	}
	return false
}
