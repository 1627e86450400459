// Package config provides configuration loading for hdrwrap.
//
// It covers two documents:
//
// 1. Tool configuration (.hdrwrap/config.yml)
//   - Project name and file layout
//   - Marker tokens and generated-header patterns
//   - Generation behavior (strict markers, install copies, discovery globs)
//   - Loaded via Load()
//
// 2. Generator configuration (cbindgen.toml)
//   - Owned by the binding generator, read only
//   - Supplies the include guard and the constant rename map
//   - Loaded via LoadGeneratorConfig()
//
// Tool configuration priority (highest to lowest):
//  1. Environment variables (HDRWRAP_*)
//  2. Config file (.hdrwrap/config.yml)
//  3. Built-in defaults
package config

import "github.com/mvp-joe/hdrwrap/internal/wrapgen"

// File naming convention derived from a project name.
const (
	HeaderExt      = ".h"
	TemplateSuffix = "-template.hpp"
	OutputExt      = ".hpp"
)

// Config represents the complete hdrwrap configuration.
type Config struct {
	Project  ProjectConfig  `yaml:"project" mapstructure:"project"`
	Paths    PathsConfig    `yaml:"paths" mapstructure:"paths"`
	Constant ConstantConfig `yaml:"constant" mapstructure:"constant"`
	Markers  MarkersConfig  `yaml:"markers" mapstructure:"markers"`
	Patterns PatternsConfig `yaml:"patterns" mapstructure:"patterns"`
	Generate GenerateConfig `yaml:"generate" mapstructure:"generate"`
}

// ProjectConfig names the library whose header is wrapped.
type ProjectConfig struct {
	Name string `yaml:"name" mapstructure:"name"` // e.g. "n3t1r"
}

// PathsConfig locates inputs and output. Header, Template and Output
// override the paths derived from the project name.
type PathsConfig struct {
	IncludesDir     string `yaml:"includes_dir" mapstructure:"includes_dir"`
	GeneratorConfig string `yaml:"generator_config" mapstructure:"generator_config"`
	Header          string `yaml:"header" mapstructure:"header"`
	Template        string `yaml:"template" mapstructure:"template"`
	Output          string `yaml:"output" mapstructure:"output"`
}

// ConstantConfig names the size-limit constant.
type ConstantConfig struct {
	Name string `yaml:"name" mapstructure:"name"` // canonical name, key of export.rename
}

// MarkersConfig holds the template marker tokens.
type MarkersConfig struct {
	Includes string `yaml:"includes" mapstructure:"includes"`
	Constant string `yaml:"constant" mapstructure:"constant"`
	API      string `yaml:"api" mapstructure:"api"`
}

// PatternsConfig describes the generated header's boilerplate.
type PatternsConfig struct {
	IncludeGuardForms []string `yaml:"include_guard_forms" mapstructure:"include_guard_forms"`
	LinkageGuardForms []string `yaml:"linkage_guard_forms" mapstructure:"linkage_guard_forms"`
	IncludePrefix     string   `yaml:"include_prefix" mapstructure:"include_prefix"`
	DirectivePrefix   string   `yaml:"directive_prefix" mapstructure:"directive_prefix"`
	DefineKeyword     string   `yaml:"define_keyword" mapstructure:"define_keyword"`
}

// GenerateConfig controls generation.
type GenerateConfig struct {
	StrictMarkers bool     `yaml:"strict_markers" mapstructure:"strict_markers"`
	InstallDirs   []string `yaml:"install_dirs" mapstructure:"install_dirs"` // copies of the output header
	Discover      []string `yaml:"discover" mapstructure:"discover"`         // glob patterns for templates
	Ignore        []string `yaml:"ignore" mapstructure:"ignore"`             // glob patterns to skip
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	patterns := wrapgen.DefaultPatterns()
	markers := wrapgen.DefaultMarkers()

	return &Config{
		Paths: PathsConfig{
			IncludesDir:     "includes",
			GeneratorConfig: "cbindgen.toml",
		},
		Constant: ConstantConfig{
			Name: "MAXIMUM_DATA_LEN",
		},
		Markers: MarkersConfig{
			Includes: markers.Includes,
			Constant: markers.Constant,
			API:      markers.API,
		},
		Patterns: PatternsConfig{
			IncludeGuardForms: patterns.IncludeGuardForms,
			LinkageGuardForms: patterns.LinkageGuardForms,
			IncludePrefix:     patterns.IncludePrefix,
			DirectivePrefix:   patterns.DirectivePrefix,
			DefineKeyword:     patterns.DefineKeyword,
		},
		Generate: GenerateConfig{
			StrictMarkers: false,
			InstallDirs:   []string{},
			Discover: []string{
				"**/*" + TemplateSuffix,
			},
			Ignore: []string{
				"target/**",
				".git/**",
			},
		},
	}
}
