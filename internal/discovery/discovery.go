// Package discovery finds wrapper header templates under a project root.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// TemplateDiscovery walks a directory tree for templates matching glob
// patterns, honoring ignore patterns.
type TemplateDiscovery struct {
	rootDir        string
	patterns       []compiledPattern
	ignorePatterns []compiledPattern
}

// New creates a template discovery instance.
func New(rootDir string, patterns, ignorePatterns []string) (*TemplateDiscovery, error) {
	td := &TemplateDiscovery{
		rootDir: rootDir,
	}

	var err error
	if td.patterns, err = compile(patterns); err != nil {
		return nil, err
	}
	if td.ignorePatterns, err = compile(ignorePatterns); err != nil {
		return nil, err
	}

	return td, nil
}

func compile(patterns []string) ([]compiledPattern, error) {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, compiledPattern{pattern: pattern, glob: g})
	}
	return compiled, nil
}

// Discover returns the matching template paths in lexical order.
func (td *TemplateDiscovery) Discover() ([]string, error) {
	templates := []string{}

	err := filepath.Walk(td.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(td.rootDir, path)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}

		// Normalize path separators for glob matching
		relPath = filepath.ToSlash(relPath)

		if info.IsDir() {
			if td.shouldIgnore(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if td.shouldIgnore(relPath) {
			return nil
		}

		if matchesAnyPattern(relPath, td.patterns) {
			templates = append(templates, path)
		}
		return nil
	})

	return templates, err
}

// shouldIgnore checks if a path matches any ignore pattern.
func (td *TemplateDiscovery) shouldIgnore(relPath string) bool {
	// Always skip hdrwrap's own directory
	if strings.HasPrefix(relPath, ".hdrwrap/") || relPath == ".hdrwrap" {
		return true
	}

	if matchesAnyPattern(relPath, td.ignorePatterns) {
		return true
	}

	// "target" should match pattern "target/**"
	return matchesAnyPattern(relPath+"/**", td.ignorePatterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// A file in the root has no slash, so "**/*-template.hpp" must also be
	// tried without its "**/" prefix.
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if simplifiedGlob, err := glob.Compile(simplified, '/'); err == nil {
					if simplifiedGlob.Match(path) {
						return true
					}
				}
			}
		}
	}

	return false
}
