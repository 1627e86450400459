package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mvp-joe/hdrwrap/internal/wrapgen"
)

var (
	// ErrEmptyMarker indicates a blank marker token
	ErrEmptyMarker = errors.New("empty marker")

	// ErrDuplicateMarker indicates two buckets sharing a marker token
	ErrDuplicateMarker = errors.New("duplicate marker")

	// ErrInvalidGuardForm indicates an include-guard form without the placeholder
	ErrInvalidGuardForm = errors.New("invalid include guard form")

	// ErrEmptyPattern indicates a blank header pattern
	ErrEmptyPattern = errors.New("empty header pattern")

	// ErrEmptyConstant indicates a missing canonical constant name
	ErrEmptyConstant = errors.New("empty constant name")

	// ErrEmptyPath indicates a missing required path
	ErrEmptyPath = errors.New("empty path")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validatePaths(&cfg.Paths); err != nil {
		errs = append(errs, err)
	}

	if strings.TrimSpace(cfg.Constant.Name) == "" {
		errs = append(errs, fmt.Errorf("%w: constant.name is required", ErrEmptyConstant))
	}

	if err := validateMarkers(&cfg.Markers); err != nil {
		errs = append(errs, err)
	}

	if err := validatePatterns(&cfg.Patterns); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validatePaths(cfg *PathsConfig) error {
	// Header, template and output may be empty - they are derived from the project name
	if strings.TrimSpace(cfg.GeneratorConfig) == "" {
		return fmt.Errorf("%w: paths.generator_config is required", ErrEmptyPath)
	}
	return nil
}

func validateMarkers(cfg *MarkersConfig) error {
	var errs []error

	seen := make(map[string]string)
	for _, m := range []struct{ key, value string }{
		{"markers.includes", cfg.Includes},
		{"markers.constant", cfg.Constant},
		{"markers.api", cfg.API},
	} {
		if m.value == "" {
			errs = append(errs, fmt.Errorf("%w: %s is required", ErrEmptyMarker, m.key))
			continue
		}
		if other, ok := seen[m.value]; ok {
			errs = append(errs, fmt.Errorf("%w: %s and %s are both '%s'", ErrDuplicateMarker, other, m.key, m.value))
			continue
		}
		seen[m.value] = m.key
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validatePatterns(cfg *PatternsConfig) error {
	var errs []error

	for _, form := range cfg.IncludeGuardForms {
		if !strings.Contains(form, wrapgen.GuardPlaceholder) {
			errs = append(errs, fmt.Errorf("%w: '%s' must contain %s", ErrInvalidGuardForm, form, wrapgen.GuardPlaceholder))
		}
	}

	for _, p := range []struct{ key, value string }{
		{"patterns.include_prefix", cfg.IncludePrefix},
		{"patterns.directive_prefix", cfg.DirectivePrefix},
		{"patterns.define_keyword", cfg.DefineKeyword},
	} {
		if strings.TrimSpace(p.value) == "" {
			errs = append(errs, fmt.Errorf("%w: %s is required", ErrEmptyPattern, p.key))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
