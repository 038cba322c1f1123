package generator

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Alia5/synthgen/internal/codegen/host"
	"github.com/Alia5/synthgen/internal/codegen/scanner"
	"github.com/Alia5/synthgen/internal/codegen/sink"
)

// Job is one snapshot to run a pass over.
type Job struct {
	Name     string
	Dir      string
	Snapshot host.Snapshot
}

// JobResult is the pass output of a job.
type JobResult struct {
	Job    Job
	Output sink.Output
}

// Jobs converts loaded packages into runner jobs.
func Jobs(pkgs []*scanner.PackageSnapshot) []Job {
	jobs := make([]Job, 0, len(pkgs))
	for _, pkg := range pkgs {
		jobs = append(jobs, Job{
			Name:     pkg.PkgPath,
			Dir:      pkg.Dir,
			Snapshot: pkg,
		})
	}
	return jobs
}

// Runner runs one pass per job concurrently.
type Runner struct {
	pass  *Pass
	limit int
}

// NewRunner creates a runner running at most limit passes at once.
// A limit below one uses GOMAXPROCS.
func NewRunner(pass *Pass, limit int) *Runner {
	if limit < 1 {
		limit = runtime.GOMAXPROCS(0)
	}
	return &Runner{pass: pass, limit: limit}
}

// Run returns results in job order. It stops scheduling new passes once ctx
// is done.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]JobResult, error) {
	results := make([]JobResult, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("run %s: %w", job.Name, err)
			}
			results[i] = JobResult{
				Job:    job,
				Output: r.pass.Run(job.Snapshot),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
