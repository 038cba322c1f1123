package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Alia5/synthgen/internal/codegen/generator"
	"github.com/Alia5/synthgen/internal/log"
)

type Watch struct {
	Options `embed:""`

	Debounce time.Duration `help:"Quiet period after a change before regenerating" default:"300ms" env:"SYNTHGEN_WATCH_DEBOUNCE"`

	out io.Writer
}

// Run is called by Kong when the watch command is executed. It regenerates
// on every change to a non-generated Go file until interrupted.
func (c *Watch) Run(logger *slog.Logger, tracer log.TraceLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	gen := &Gen{Options: c.Options, out: c.out}
	watched := map[string]bool{}

	results, err := gen.run(ctx, logger, tracer)
	if err != nil {
		return err
	}
	if err := watchDirs(logger, w, watched, results); err != nil {
		return err
	}
	logger.Info("Watching for changes", "dirs", len(watched))

	return watchLoop(ctx, logger, w, c.Debounce, func() error {
		results, err := gen.run(ctx, logger, tracer)
		if err != nil {
			logger.Error("Generation failed", "error", err)
		}
		return watchDirs(logger, w, watched, results)
	})
}

// watchDirs adds every package directory not watched yet.
func watchDirs(logger *slog.Logger, w *fsnotify.Watcher, watched map[string]bool, results []generator.JobResult) error {
	for _, res := range results {
		dir := res.Job.Dir
		if dir == "" || watched[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		watched[dir] = true
		logger.Debug("Watching directory", "dir", dir)
	}
	return nil
}

// watchLoop calls run once the watcher has been quiet for debounce after a
// relevant event. It returns when ctx is done or run fails.
func watchLoop(ctx context.Context, logger *slog.Logger, w *fsnotify.Watcher, debounce time.Duration, run func() error) error {
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			logger.Debug("Source changed", "file", ev.Name, "op", ev.Op.String())
			fire = time.After(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", "error", err)
		case <-fire:
			fire = nil
			if err := run(); err != nil {
				return err
			}
		}
	}
}

// relevant reports whether an event touches a hand-written Go source file.
func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(ev.Name)
	if !strings.HasSuffix(name, ".go") || strings.HasPrefix(name, ".") {
		return false
	}
	return !strings.HasSuffix(name, ".g.go") && !strings.HasSuffix(name, "_test.go")
}
