package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/Alia5/synthgen/internal/codegen/generator"
	"github.com/Alia5/synthgen/internal/codegen/generator/display"
	"github.com/Alia5/synthgen/internal/codegen/generator/exception"
	"github.com/Alia5/synthgen/internal/codegen/meta"
	"github.com/Alia5/synthgen/internal/codegen/scanner"
	"github.com/Alia5/synthgen/internal/codegen/sink"
	"github.com/Alia5/synthgen/internal/log"
)

// Options are shared by gen, check and watch.
type Options struct {
	Patterns           []string `arg:"" optional:"" help:"Package patterns to process" default:"./..."`
	Dir                string   `help:"Directory package patterns are resolved in" default:"." type:"existingdir" env:"SYNTHGEN_DIR"`
	Generators         []string `help:"Generators to run (display, exception); empty runs all" env:"SYNTHGEN_GENERATORS"`
	ExceptionMarker    string   `help:"Marker of the exception generator" default:"synth:exception" env:"SYNTHGEN_EXCEPTION_MARKER"`
	DisplayMarker      string   `help:"Marker of the display generator" default:"synth:display" env:"SYNTHGEN_DISPLAY_MARKER"`
	GlobalScopeMarkers string   `help:"Characters that flag a package scope as global" default:"<[ " env:"SYNTHGEN_GLOBAL_SCOPE_MARKERS"`
	Concurrency        int      `help:"Maximum number of concurrent passes (0 uses GOMAXPROCS)" default:"0" env:"SYNTHGEN_CONCURRENCY"`
	PassLog            string   `help:"Write the GeneratorLogs artifact of every pass to this file" env:"SYNTHGEN_PASS_LOG"`
}

func (o *Options) generatorConfig() generator.Config {
	return generator.Config{
		Generators: o.Generators,
		Markers: map[string]string{
			exception.Name: o.ExceptionMarker,
			display.Name:   o.DisplayMarker,
		},
		IsGlobalScope: meta.GlobalScopeMarkers(o.GlobalScopeMarkers),
	}
}

// runPasses loads the packages and runs one generation pass per package.
func (o *Options) runPasses(ctx context.Context, logger *slog.Logger, tracer log.TraceLogger) ([]generator.JobResult, error) {
	pass, err := generator.New(logger, o.generatorConfig())
	if err != nil {
		return nil, err
	}

	patterns := o.Patterns
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	logger.Debug("Loading packages", "dir", o.Dir, "patterns", patterns)
	pkgs, err := scanner.LoadPackages(ctx, o.Dir, patterns...)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded packages", "count", len(pkgs))

	results, err := generator.NewRunner(pass, o.Concurrency).Run(ctx, generator.Jobs(pkgs))
	if err != nil {
		return nil, fmt.Errorf("run passes: %w", err)
	}

	logs := make(map[string]sink.Output, len(results))
	for _, res := range results {
		tracer.Log(res.Job.Name, res.Output.LogLines())
		for _, f := range res.Output.Failures {
			logger.Warn("Render failed", "package", res.Job.Name, "generator", f.Generator, "declaration", f.Decl, "error", f.Err)
		}
		logs[res.Job.Name] = res.Output
	}

	if o.PassLog != "" {
		if err := sink.WriteLog(o.PassLog, logs); err != nil {
			return nil, err
		}
		logger.Debug("Wrote pass log", "path", o.PassLog)
	}
	return results, nil
}

// syncResults writes or compares the artifacts of every result.
func syncResults(results []generator.JobResult, dryRun bool) ([]sink.FileResult, error) {
	var files []sink.FileResult
	for _, res := range results {
		synced, err := sink.Sync(res.Output.Artifacts, res.Job.Dir, dryRun)
		files = append(files, synced...)
		if err != nil {
			return files, fmt.Errorf("sync %s: %w", res.Job.Name, err)
		}
	}
	return files, nil
}

// printer writes file status lines, colored when the output is a terminal.
type printer struct {
	w       io.Writer
	created *color.Color
	updated *color.Color
	stale   *color.Color
	faint   *color.Color
}

func newPrinter(w io.Writer) *printer {
	if w == nil {
		w = os.Stdout
	}
	p := &printer{
		w:       w,
		created: color.New(color.FgGreen),
		updated: color.New(color.FgYellow),
		stale:   color.New(color.FgRed, color.Bold),
		faint:   color.New(color.Faint),
	}
	if !isTerminal(w) {
		for _, c := range []*color.Color{p.created, p.updated, p.stale, p.faint} {
			c.DisableColor()
		}
	}
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p *printer) file(r sink.FileResult, verbose bool) {
	switch r.Status {
	case sink.FileStatusCreated:
		fmt.Fprintf(p.w, "%s %s\n", p.created.Sprint("created  "), r.Path)
	case sink.FileStatusUpdated:
		fmt.Fprintf(p.w, "%s %s\n", p.updated.Sprint("updated  "), r.Path)
	case sink.FileStatusUnchanged:
		if verbose {
			fmt.Fprintf(p.w, "%s %s\n", p.faint.Sprint("unchanged"), r.Path)
		}
	}
}

func (p *printer) staleFile(r sink.FileResult) {
	what := "stale    "
	if r.Status == sink.FileStatusCreated {
		what = "missing  "
	}
	fmt.Fprintf(p.w, "%s %s\n", p.stale.Sprint(what), r.Path)
}
