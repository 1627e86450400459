package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter reports batch generation progress.
type CLIProgressReporter struct {
	quiet     bool
	out       io.Writer
	bar       *progressbar.ProgressBar
	startTime time.Time
	generated int
	failed    int
}

// NewCLIProgressReporter creates a new CLI progress reporter writing to out.
func NewCLIProgressReporter(out io.Writer, quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet:     quiet,
		out:       out,
		startTime: time.Now(),
	}
}

// OnStart is called once with the number of targets. A single target gets
// no progress bar.
func (c *CLIProgressReporter) OnStart(total int) {
	c.startTime = time.Now()
	c.generated = 0
	c.failed = 0
	if c.quiet || total < 2 {
		return
	}

	c.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription("Generating headers"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.out)
		}),
	)
}

// OnGenerated is called after an output header has been written.
func (c *CLIProgressReporter) OnGenerated(output string, installed []string) {
	c.generated++
	if c.quiet {
		return
	}
	if c.bar != nil {
		c.bar.Add(1)
		return
	}
	fmt.Fprintf(c.out, "✓ Generated %s\n", output)
	for _, dest := range installed {
		fmt.Fprintf(c.out, "  installed %s\n", dest)
	}
}

// OnFailed is called when a target fails.
func (c *CLIProgressReporter) OnFailed(template string, err error) {
	c.failed++
	if c.bar != nil {
		c.bar.Add(1)
	}
	if !c.quiet {
		fmt.Fprintf(c.out, "✗ %s: %v\n", template, err)
	}
}

// OnComplete prints a summary for batches.
func (c *CLIProgressReporter) OnComplete() {
	if c.bar != nil {
		c.bar.Finish()
		c.bar = nil
	}
	if c.quiet || c.generated+c.failed < 2 {
		return
	}
	fmt.Fprintf(c.out, "✓ Generated %d header(s), %d failed (took %.1fs)\n",
		c.generated, c.failed, time.Since(c.startTime).Seconds())
}
