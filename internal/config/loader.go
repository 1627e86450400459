package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
}

// NewLoader creates a loader that searches rootDir/.hdrwrap for config.yml.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// NewFileLoader creates a loader for an explicit config file. The file must
// exist.
func NewFileLoader(rootDir, configFile string) Loader {
	return &loader{
		rootDir:    rootDir,
		configFile: configFile,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (HDRWRAP_*)
// 2. Config file (.hdrwrap/config.yml or .hdrwrap/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(l.rootDir, ".hdrwrap"))
	}

	// Enable environment variable overrides (e.g., HDRWRAP_PROJECT_NAME)
	v.SetEnvPrefix("HDRWRAP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("project.name")
	v.BindEnv("paths.includes_dir")
	v.BindEnv("paths.generator_config")
	v.BindEnv("paths.header")
	v.BindEnv("paths.template")
	v.BindEnv("paths.output")
	v.BindEnv("constant.name")
	v.BindEnv("generate.strict_markers")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("project.name", defaults.Project.Name)

	v.SetDefault("paths.includes_dir", defaults.Paths.IncludesDir)
	v.SetDefault("paths.generator_config", defaults.Paths.GeneratorConfig)
	v.SetDefault("paths.header", defaults.Paths.Header)
	v.SetDefault("paths.template", defaults.Paths.Template)
	v.SetDefault("paths.output", defaults.Paths.Output)

	v.SetDefault("constant.name", defaults.Constant.Name)

	v.SetDefault("markers.includes", defaults.Markers.Includes)
	v.SetDefault("markers.constant", defaults.Markers.Constant)
	v.SetDefault("markers.api", defaults.Markers.API)

	v.SetDefault("patterns.include_guard_forms", defaults.Patterns.IncludeGuardForms)
	v.SetDefault("patterns.linkage_guard_forms", defaults.Patterns.LinkageGuardForms)
	v.SetDefault("patterns.include_prefix", defaults.Patterns.IncludePrefix)
	v.SetDefault("patterns.directive_prefix", defaults.Patterns.DirectivePrefix)
	v.SetDefault("patterns.define_keyword", defaults.Patterns.DefineKeyword)

	v.SetDefault("generate.strict_markers", defaults.Generate.StrictMarkers)
	v.SetDefault("generate.install_dirs", defaults.Generate.InstallDirs)
	v.SetDefault("generate.discover", defaults.Generate.Discover)
	v.SetDefault("generate.ignore", defaults.Generate.Ignore)
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
