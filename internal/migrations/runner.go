package migrations

import (
	"context"
	"fmt"
	"net/http"

	"github.com/quillhq/newsdesk/internal/platform/apperror"
	"github.com/quillhq/newsdesk/internal/platform/logger"
)

// ErrJobNotFound is returned when a job name resolves to nothing.
var ErrJobNotFound = apperror.New(
	apperror.CodeNotFound,
	apperror.BusinessCodeJobNotFound,
	"migration job not found",
	http.StatusNotFound,
)

// Report summarizes a job run.
type Report struct {
	Scanned int `json:"scanned"`
	Patched int `json:"patched"`
}

// Job is a one-shot data repair. Jobs must be idempotent: running one twice
// leaves the data exactly as a single run would.
type Job interface {
	// Name identifies the job for logging and the admin API
	Name() string

	// Run executes the repair and reports what it touched
	Run(ctx context.Context) (Report, error)
}

// Runner manages and runs data repair jobs in order
type Runner struct {
	jobs   []Job
	logger logger.Logger
}

// NewRunner creates a job runner with all jobs injected
func NewRunner(logger logger.Logger, jobs []Job) *Runner {
	return &Runner{jobs: jobs, logger: logger}
}

// Names lists the registered job names in run order.
func (r *Runner) Names() []string {
	names := make([]string, 0, len(r.jobs))
	for _, job := range r.jobs {
		names = append(names, job.Name())
	}
	return names
}

// RunAll executes all registered jobs in order
func (r *Runner) RunAll(ctx context.Context) error {
	r.logger.Info(ctx, "starting data repair jobs", "job_count", len(r.jobs))

	for _, job := range r.jobs {
		r.logger.Info(ctx, "running job", "job", job.Name())

		report, err := job.Run(ctx)
		if err != nil {
			r.logger.Error(ctx, "job failed",
				"job", job.Name(),
				"error", err,
			)
			return fmt.Errorf("job %s failed: %w", job.Name(), err)
		}

		r.logger.Info(ctx, "job completed",
			"job", job.Name(),
			"scanned", report.Scanned,
			"patched", report.Patched,
		)
	}

	r.logger.Info(ctx, "all jobs completed successfully")
	return nil
}

// RunJob executes a single job by name.
func (r *Runner) RunJob(ctx context.Context, name string) (Report, error) {
	for _, job := range r.jobs {
		if job.Name() != name {
			continue
		}

		r.logger.Info(ctx, "running job", "job", name)
		report, err := job.Run(ctx)
		if err != nil {
			r.logger.Error(ctx, "job failed", "job", name, "error", err)
			return Report{}, apperror.Wrap(
				err,
				apperror.CodeInternalError,
				apperror.BusinessCodeGeneral,
				fmt.Sprintf("job %s failed", name),
				http.StatusInternalServerError,
			)
		}

		r.logger.Info(ctx, "job completed", "job", name, "scanned", report.Scanned, "patched", report.Patched)
		return report, nil
	}

	return Report{}, ErrJobNotFound
}
