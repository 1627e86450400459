// Package wrapgen expands a wrapper header template from a generated C header.
//
// The pipeline is Filter → Classify → Expand:
//
//  1. FilterLines strips include-guard and linkage-guard lines.
//  2. Classify sorts the remaining lines into the includes, constant and api
//     buckets.
//  3. Expand replaces every template line holding a marker with one line per
//     value of that marker's bucket.
//
// Transform runs the pipeline over in-memory text. Run adds the file I/O:
// it reads the header, the template and the generator config document, and
// writes the output only once every step has succeeded.
package wrapgen

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// ConfigDocument exposes the generator settings the pipeline needs.
type ConfigDocument interface {
	// IncludeGuard returns the include-guard identifier of the generated header.
	IncludeGuard() (string, error)

	// RenamedConstant returns the name the generator emits for canonical.
	RenamedConstant(canonical string) (string, error)
}

// DocumentLoader reads a ConfigDocument from path.
type DocumentLoader func(path string) (ConfigDocument, error)

// Inputs is the in-memory input of Transform.
type Inputs struct {
	Header       string
	Template     string
	Guard        string
	ConstantName string
}

// Stats counts lines at each pipeline stage.
type Stats struct {
	HeaderLines   int `yaml:"header_lines"`
	FilteredLines int `yaml:"filtered_lines"`
	TemplateLines int `yaml:"template_lines"`
	OutputLines   int `yaml:"output_lines"`
}

// Result is the outcome of one pipeline run.
type Result struct {
	Output    string
	Buckets   *ClassificationMap
	Stats     Stats
	Written   string   // output path, set by Run
	Installed []string // install copies, set by Run
}

// Job names the files of one Run.
type Job struct {
	HeaderPath        string
	TemplatePath      string
	OutputPath        string
	ConfigPath        string
	CanonicalConstant string
	InstallDirs       []string
}

// Option configures a Generator.
type Option func(*Generator)

// WithPatterns overrides the generated-header patterns.
func WithPatterns(p Patterns) Option {
	return func(g *Generator) {
		g.patterns = p
	}
}

// WithMarkers overrides the template marker tokens.
func WithMarkers(m Markers) Option {
	return func(g *Generator) {
		g.markers = m
	}
}

// WithStrictMarkers rejects template lines holding more than one marker.
func WithStrictMarkers(strict bool) Option {
	return func(g *Generator) {
		g.expand.StrictMarkers = strict
	}
}

// WithDocumentLoader sets how Run reads the generator config document.
func WithDocumentLoader(load DocumentLoader) Option {
	return func(g *Generator) {
		g.loadDocument = load
	}
}

// WithLogger sets the logger. Default: no-op.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Generator runs the wrapper header pipeline. It holds no per-run state, so
// one Generator may serve any number of sequential runs.
type Generator struct {
	patterns     Patterns
	markers      Markers
	expand       ExpandOptions
	loadDocument DocumentLoader
	logger       *zap.Logger
}

// New creates a Generator with the cbindgen defaults.
func New(opts ...Option) *Generator {
	g := &Generator{
		patterns: DefaultPatterns(),
		markers:  DefaultMarkers(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Transform runs Filter → Classify → Expand over in-memory text.
func (g *Generator) Transform(in Inputs) (*Result, error) {
	header := SplitText(in.Header)
	tmpl := SplitText(in.Template)

	filtered := FilterLines(header.Lines, g.patterns.GuardTokens(in.Guard))
	buckets := Classify(filtered, in.ConstantName, g.patterns, g.markers)

	if n := len(buckets.Values(g.markers.Constant)); n == 0 {
		g.logger.Debug("constant definition not found",
			zap.String("constant", in.ConstantName))
	} else if n > 1 {
		g.logger.Warn("constant defined more than once, every value is kept",
			zap.String("constant", in.ConstantName),
			zap.Int("definitions", n))
	}

	lines, err := Expand(tmpl.Lines, buckets, g.expand)
	if err != nil {
		return nil, err
	}

	return &Result{
		Output:  tmpl.Join(lines),
		Buckets: buckets,
		Stats: Stats{
			HeaderLines:   len(header.Lines),
			FilteredLines: len(filtered),
			TemplateLines: len(tmpl.Lines),
			OutputLines:   len(lines),
		},
	}, nil
}

// Run reads the job's inputs, transforms them and writes the output and its
// install copies. Nothing is written unless reading and transforming succeed.
func (g *Generator) Run(ctx context.Context, job Job) (*Result, error) {
	in, err := g.Load(ctx, job)
	if err != nil {
		return nil, err
	}

	res, err := g.Transform(*in)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := []byte(res.Output)
	if err := writeFileAtomic(job.OutputPath, data); err != nil {
		return nil, NewWriteError(job.OutputPath, err)
	}
	res.Written = job.OutputPath

	for _, dir := range job.InstallDirs {
		dest := filepath.Join(dir, filepath.Base(job.OutputPath))
		if err := writeFileAtomic(dest, data); err != nil {
			return res, NewWriteError(dest, err)
		}
		res.Installed = append(res.Installed, dest)
	}

	g.logger.Debug("generated wrapper header",
		zap.String("output", job.OutputPath),
		zap.Int("includes", len(res.Buckets.Values(g.markers.Includes))),
		zap.Int("declarations", len(res.Buckets.Values(g.markers.API))),
		zap.Int("installed", len(res.Installed)))

	return res, nil
}

// Load reads the job's three inputs and resolves the guard and constant name.
func (g *Generator) Load(ctx context.Context, job Job) (*Inputs, error) {
	if g.loadDocument == nil {
		return nil, NewConfigLookupError("document_loader", os.ErrInvalid)
	}

	doc, err := g.loadDocument(job.ConfigPath)
	if err != nil {
		return nil, err
	}
	guard, err := doc.IncludeGuard()
	if err != nil {
		return nil, err
	}
	constant, err := doc.RenamedConstant(job.CanonicalConstant)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	header, err := os.ReadFile(job.HeaderPath)
	if err != nil {
		return nil, NewReadError(job.HeaderPath, err)
	}
	tmpl, err := os.ReadFile(job.TemplatePath)
	if err != nil {
		return nil, NewReadError(job.TemplatePath, err)
	}

	g.logger.Debug("loaded inputs",
		zap.String("header", job.HeaderPath),
		zap.String("template", job.TemplatePath),
		zap.String("guard", guard),
		zap.String("constant", constant))

	return &Inputs{
		Header:       string(header),
		Template:     string(tmpl),
		Guard:        guard,
		ConstantName: constant,
	}, nil
}
