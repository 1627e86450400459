package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/mvp-joe/hdrwrap/internal/config"
	"github.com/mvp-joe/hdrwrap/internal/wrapgen"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var inspectFormat string

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [name]",
	Short: "Show how the generated header is classified",
	Long: `Inspect runs the guard filter and the classifier over the generated
header and prints the bucket behind each template marker. Nothing is written.

Examples:
  hdrwrap inspect n3t1r
  hdrwrap inspect n3t1r --format yaml
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "text", "output format: text or yaml")
}

func runInspect(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	name := ""
	if len(args) == 1 {
		name = args[0]
	}

	return executeInspect(cmd.Context(), root, cfg, name, inspectFormat, cmd.OutOrStdout(), logger)
}

// inspectReport is the yaml form of an inspection.
type inspectReport struct {
	Header   string           `yaml:"header"`
	Guard    string           `yaml:"guard"`
	Constant string           `yaml:"constant"`
	Stats    wrapgen.Stats    `yaml:"stats"`
	Buckets  []wrapgen.Bucket `yaml:"buckets"`
}

func executeInspect(ctx context.Context, root string, cfg *config.Config, name, format string, out io.Writer, log *zap.Logger) error {
	if format != "text" && format != "yaml" {
		return fmt.Errorf("unknown format '%s' (valid: text, yaml)", format)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	job, err := cfg.Job(root, name)
	if err != nil {
		return err
	}

	gen := wrapgen.New(append(cfg.GeneratorOptions(), wrapgen.WithLogger(log))...)
	in, err := gen.Load(ctx, job)
	if err != nil {
		return err
	}
	res, err := gen.Transform(*in)
	if err != nil {
		return err
	}

	report := inspectReport{
		Header:   job.HeaderPath,
		Guard:    in.Guard,
		Constant: in.ConstantName,
		Stats:    res.Stats,
		Buckets:  res.Buckets.Buckets(),
	}

	if format == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return enc.Close()
	}

	fmt.Fprintf(out, "Header:   %s\n", report.Header)
	fmt.Fprintf(out, "Guard:    %s\n", report.Guard)
	fmt.Fprintf(out, "Constant: %s\n", report.Constant)
	fmt.Fprintf(out, "Lines:    %d read, %d after guard filter\n", report.Stats.HeaderLines, report.Stats.FilteredLines)
	for _, b := range report.Buckets {
		fmt.Fprintf(out, "\n%s (%d)\n", b.Marker, len(b.Values))
		for _, v := range b.Values {
			fmt.Fprintf(out, "  %s\n", v)
		}
	}
	return nil
}
