package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mvp-joe/hdrwrap/internal/wrapgen"
)

// ErrNoTarget indicates that neither a project name nor explicit input paths
// were configured.
var ErrNoTarget = errors.New("no generation target")

// ToPatterns converts the patterns section to wrapgen.Patterns.
func (c *Config) ToPatterns() wrapgen.Patterns {
	return wrapgen.Patterns{
		IncludeGuardForms: c.Patterns.IncludeGuardForms,
		LinkageGuardForms: c.Patterns.LinkageGuardForms,
		IncludePrefix:     c.Patterns.IncludePrefix,
		DirectivePrefix:   c.Patterns.DirectivePrefix,
		DefineKeyword:     c.Patterns.DefineKeyword,
	}
}

// ToMarkers converts the markers section to wrapgen.Markers.
func (c *Config) ToMarkers() wrapgen.Markers {
	return wrapgen.Markers{
		Includes: c.Markers.Includes,
		Constant: c.Markers.Constant,
		API:      c.Markers.API,
	}
}

// GeneratorOptions returns the wrapgen options described by the config.
func (c *Config) GeneratorOptions() []wrapgen.Option {
	return []wrapgen.Option{
		wrapgen.WithPatterns(c.ToPatterns()),
		wrapgen.WithMarkers(c.ToMarkers()),
		wrapgen.WithStrictMarkers(c.Generate.StrictMarkers),
		wrapgen.WithDocumentLoader(DocumentLoader),
	}
}

// Job resolves the files for project name relative to rootDir. An empty name
// falls back to project.name. Explicit paths in the config win over the
// paths derived from the name.
func (c *Config) Job(rootDir, name string) (wrapgen.Job, error) {
	if name == "" {
		name = c.Project.Name
	}

	header := c.Paths.Header
	template := c.Paths.Template
	output := c.Paths.Output

	if name != "" {
		dir := c.Paths.IncludesDir
		if header == "" {
			header = filepath.Join(dir, name+HeaderExt)
		}
		if template == "" {
			template = filepath.Join(dir, name+TemplateSuffix)
		}
		if output == "" {
			output = filepath.Join(dir, name+OutputExt)
		}
	}

	var missing []string
	for _, p := range []struct{ key, value string }{
		{"paths.header", header},
		{"paths.template", template},
		{"paths.output", output},
	} {
		if strings.TrimSpace(p.value) == "" {
			missing = append(missing, p.key)
		}
	}
	if len(missing) > 0 {
		return wrapgen.Job{}, fmt.Errorf("%w: set project.name or %s", ErrNoTarget, strings.Join(missing, ", "))
	}

	installDirs := make([]string, 0, len(c.Generate.InstallDirs))
	for _, dir := range c.Generate.InstallDirs {
		installDirs = append(installDirs, resolve(rootDir, dir))
	}

	return wrapgen.Job{
		HeaderPath:        resolve(rootDir, header),
		TemplatePath:      resolve(rootDir, template),
		OutputPath:        resolve(rootDir, output),
		ConfigPath:        resolve(rootDir, c.Paths.GeneratorConfig),
		CanonicalConstant: c.Constant.Name,
		InstallDirs:       installDirs,
	}, nil
}

// JobForTemplate resolves a job from a discovered template path. The project
// name is the template's base name without TemplateSuffix; the header and
// output sit next to the template.
func (c *Config) JobForTemplate(rootDir, templatePath string) (wrapgen.Job, error) {
	base := filepath.Base(templatePath)
	if !strings.HasSuffix(base, TemplateSuffix) || base == TemplateSuffix {
		return wrapgen.Job{}, fmt.Errorf("%w: template %s does not end in %s", ErrNoTarget, templatePath, TemplateSuffix)
	}
	name := strings.TrimSuffix(base, TemplateSuffix)
	dir := filepath.Dir(resolve(rootDir, templatePath))

	job, err := c.Job(rootDir, name)
	if err != nil {
		return wrapgen.Job{}, err
	}
	job.HeaderPath = filepath.Join(dir, name+HeaderExt)
	job.TemplatePath = filepath.Join(dir, base)
	job.OutputPath = filepath.Join(dir, name+OutputExt)
	return job, nil
}

func resolve(rootDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(rootDir, path)
}
