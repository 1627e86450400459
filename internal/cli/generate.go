package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mvp-joe/hdrwrap/internal/config"
	"github.com/mvp-joe/hdrwrap/internal/discovery"
	"github.com/mvp-joe/hdrwrap/internal/watcher"
	"github.com/mvp-joe/hdrwrap/internal/wrapgen"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ErrNoTemplates indicates that --all found nothing to generate.
var ErrNoTemplates = errors.New("no templates found")

// generateOptions holds the generate command's flags.
type generateOptions struct {
	name            string
	header          string
	template        string
	output          string
	generatorConfig string
	constant        string
	strict          bool
	strictSet       bool
	installDirs     []string
	all             bool
	quiet           bool
	watch           bool
}

var genOpts generateOptions

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [name]",
	Short: "Generate the wrapper header from the generated C header",
	Long: `Generate reads the generated C header, the wrapper template and the
binding generator's config (cbindgen.toml), and writes the expanded wrapper
header. The output is written only if every step succeeds.

With a project name, files are derived from the includes directory:
  includes/<name>.h             generated C header
  includes/<name>-template.hpp  wrapper template
  includes/<name>.hpp           output

Examples:
  # Generate includes/n3t1r.hpp
  hdrwrap generate n3t1r

  # Explicit paths
  hdrwrap generate --header out/lib.h --template lib.hpp.in --output lib.hpp

  # Every *-template.hpp under the project
  hdrwrap generate --all

  # Regenerate whenever an input changes
  hdrwrap generate n3t1r --watch
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	f := generateCmd.Flags()
	f.StringVar(&genOpts.header, "header", "", "generated C header (overrides paths.header)")
	f.StringVar(&genOpts.template, "template", "", "wrapper template (overrides paths.template)")
	f.StringVarP(&genOpts.output, "output", "o", "", "output header (overrides paths.output)")
	f.StringVar(&genOpts.generatorConfig, "generator-config", "", "binding generator config (overrides paths.generator_config)")
	f.StringVar(&genOpts.constant, "constant", "", "canonical name of the size-limit constant (overrides constant.name)")
	f.BoolVar(&genOpts.strict, "strict", false, "reject template lines holding more than one marker")
	f.StringSliceVar(&genOpts.installDirs, "install-dir", nil, "copy the output header into this directory (repeatable)")
	f.BoolVarP(&genOpts.all, "all", "a", false, "generate every template matched by generate.discover")
	f.BoolVarP(&genOpts.quiet, "quiet", "q", false, "suppress non-error output")
	f.BoolVarP(&genOpts.watch, "watch", "w", false, "regenerate when an input changes")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root, err := resolveRoot()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	opts := genOpts
	if len(args) == 1 {
		opts.name = args[0]
	}
	opts.strictSet = cmd.Flags().Changed("strict")

	return executeGenerate(ctx, root, cfg, opts, cmd.OutOrStdout(), logger)
}

// applyOverrides copies flag values over the loaded configuration.
func applyOverrides(cfg *config.Config, opts generateOptions) {
	if opts.header != "" {
		cfg.Paths.Header = opts.header
	}
	if opts.template != "" {
		cfg.Paths.Template = opts.template
	}
	if opts.output != "" {
		cfg.Paths.Output = opts.output
	}
	if opts.generatorConfig != "" {
		cfg.Paths.GeneratorConfig = opts.generatorConfig
	}
	if opts.constant != "" {
		cfg.Constant.Name = opts.constant
	}
	if opts.strictSet {
		cfg.Generate.StrictMarkers = opts.strict
	}
	if len(opts.installDirs) > 0 {
		cfg.Generate.InstallDirs = append(cfg.Generate.InstallDirs, opts.installDirs...)
	}
}

// resolveJobs returns the jobs selected by opts.
func resolveJobs(root string, cfg *config.Config, opts generateOptions) ([]wrapgen.Job, error) {
	if !opts.all {
		job, err := cfg.Job(root, opts.name)
		if err != nil {
			return nil, err
		}
		return []wrapgen.Job{job}, nil
	}

	td, err := discovery.New(root, cfg.Generate.Discover, cfg.Generate.Ignore)
	if err != nil {
		return nil, fmt.Errorf("failed to compile discovery patterns: %w", err)
	}
	templates, err := td.Discover()
	if err != nil {
		return nil, fmt.Errorf("failed to discover templates: %w", err)
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("%w under %s", ErrNoTemplates, root)
	}

	jobs := make([]wrapgen.Job, 0, len(templates))
	for _, tmpl := range templates {
		job, err := cfg.JobForTemplate(root, tmpl)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// executeGenerate runs every selected job once and, with --watch, keeps
// regenerating until ctx is cancelled.
func executeGenerate(ctx context.Context, root string, cfg *config.Config, opts generateOptions, out io.Writer, log *zap.Logger) error {
	applyOverrides(cfg, opts)
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	jobs, err := resolveJobs(root, cfg, opts)
	if err != nil {
		return err
	}

	runner := &jobRunner{
		gen:      wrapgen.New(append(cfg.GeneratorOptions(), wrapgen.WithLogger(log))...),
		jobs:     jobs,
		progress: NewCLIProgressReporter(out, opts.quiet),
	}

	if err := runner.runAll(ctx); err != nil {
		if !opts.watch {
			return err
		}
		// Keep watching so the failing input can be fixed.
		log.Error("initial generation failed", zap.Error(err))
	}

	if !opts.watch {
		return nil
	}

	fw, err := watcher.NewFileWatcher(runner.inputs(), log)
	if err != nil {
		return fmt.Errorf("failed to watch inputs: %w", err)
	}

	if !opts.quiet {
		fmt.Fprintf(out, "Watching %d input(s), press Ctrl+C to stop\n", len(runner.inputs()))
	}

	coordinator := watcher.NewWatchCoordinator(fw, runner, log)
	if err := coordinator.Start(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("watch mode failed: %w", err)
	}
	return nil
}

// jobRunner runs generation jobs and implements watcher.Regenerator.
type jobRunner struct {
	gen      *wrapgen.Generator
	jobs     []wrapgen.Job
	progress *CLIProgressReporter
}

var _ watcher.Regenerator = (*jobRunner)(nil)

// runAll runs every job. A single job's error is returned as is; in a batch
// every job runs and failures are counted.
func (r *jobRunner) runAll(ctx context.Context) error {
	return r.run(ctx, r.jobs)
}

func (r *jobRunner) run(ctx context.Context, jobs []wrapgen.Job) error {
	if len(jobs) == 1 {
		res, err := r.gen.Run(ctx, jobs[0])
		if err != nil {
			return err
		}
		r.progress.OnGenerated(res.Written, res.Installed)
		return nil
	}

	r.progress.OnStart(len(jobs))
	failed := 0
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := r.gen.Run(ctx, job)
		if err != nil {
			failed++
			r.progress.OnFailed(job.TemplatePath, err)
			continue
		}
		r.progress.OnGenerated(res.Written, res.Installed)
	}
	r.progress.OnComplete()

	if failed > 0 {
		return fmt.Errorf("%d of %d target(s) failed", failed, len(jobs))
	}
	return nil
}

// Regenerate reruns the jobs that read any of the changed files.
func (r *jobRunner) Regenerate(ctx context.Context, changed []string) error {
	touched := make(map[string]bool, len(changed))
	for _, file := range changed {
		touched[file] = true
	}

	var jobs []wrapgen.Job
	for _, job := range r.jobs {
		if touched[job.HeaderPath] || touched[job.TemplatePath] || touched[job.ConfigPath] {
			jobs = append(jobs, job)
		}
	}
	if len(jobs) == 0 {
		return nil
	}
	return r.run(ctx, jobs)
}

// inputs returns every distinct file read by the jobs.
func (r *jobRunner) inputs() []string {
	seen := make(map[string]bool)
	var files []string
	for _, job := range r.jobs {
		for _, file := range []string{job.HeaderPath, job.TemplatePath, job.ConfigPath} {
			if !seen[file] {
				seen[file] = true
				files = append(files, file)
			}
		}
	}
	return files
}
