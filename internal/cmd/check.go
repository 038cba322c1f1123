package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Alia5/synthgen/internal/log"
)

// ErrStale is returned by check when generated files are missing or out of
// date.
var ErrStale = errors.New("generated files are out of date")

type Check struct {
	Options `embed:""`

	FailOnRenderError bool `help:"Also fail when a declaration cannot be rendered" env:"SYNTHGEN_FAIL_ON_RENDER_ERROR"`

	out io.Writer
}

// Run is called by Kong when the check command is executed.
func (c *Check) Run(logger *slog.Logger, tracer log.TraceLogger) error {
	return c.run(context.Background(), logger, tracer)
}

func (c *Check) run(ctx context.Context, logger *slog.Logger, tracer log.TraceLogger) error {
	results, err := c.runPasses(ctx, logger, tracer)
	if err != nil {
		return err
	}

	files, err := syncResults(results, true)
	if err != nil {
		return err
	}

	p := newPrinter(c.out)
	stale := 0
	for _, f := range files {
		if !f.Stale() {
			continue
		}
		stale++
		p.staleFile(f)
	}

	failures := 0
	for _, res := range results {
		failures += len(res.Output.Failures)
	}

	logger.Info("Check complete", "packages", len(results), "files", len(files), "stale", stale, "renderFailures", failures)
	if stale > 0 {
		return fmt.Errorf("%d files: %w", stale, ErrStale)
	}
	if c.FailOnRenderError && failures > 0 {
		return fmt.Errorf("%d declarations could not be rendered", failures)
	}
	return nil
}
