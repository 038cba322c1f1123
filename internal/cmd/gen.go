package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/Alia5/synthgen/internal/codegen/generator"
	"github.com/Alia5/synthgen/internal/log"
)

type Gen struct {
	Options `embed:""`

	DryRun  bool `help:"Report what would change without writing files" env:"SYNTHGEN_DRY_RUN"`
	Verbose bool `help:"Also list unchanged files" short:"v"`

	out io.Writer
}

// Run is called by Kong when the gen command is executed.
func (c *Gen) Run(logger *slog.Logger, tracer log.TraceLogger) error {
	_, err := c.run(context.Background(), logger, tracer)
	return err
}

func (c *Gen) run(ctx context.Context, logger *slog.Logger, tracer log.TraceLogger) ([]generator.JobResult, error) {
	logger.Info("Starting code generation", "dir", c.Dir, "patterns", c.Patterns, "dryRun", c.DryRun)

	results, err := c.runPasses(ctx, logger, tracer)
	if err != nil {
		return nil, err
	}

	files, err := syncResults(results, c.DryRun)
	p := newPrinter(c.out)
	changed := 0
	for _, f := range files {
		p.file(f, c.Verbose)
		if f.Stale() {
			changed++
		}
	}
	if err != nil {
		return results, err
	}

	logger.Info("Code generation complete", "packages", len(results), "files", len(files), "changed", changed)
	return results, nil
}
