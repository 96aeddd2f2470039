package migrations

import (
	"context"
	"fmt"
)

// SystemAuthorID is the sentinel subject stamped onto articles that predate
// author tracking. It never collides with real identity subjects.
const SystemAuthorID = "SYSTEM"

// BackfillAuthorsJob stamps the system sentinel onto articles that predate
// author tracking. Articles with a real author are never touched.
type BackfillAuthorsJob struct {
	patcher ArticlePatcher
}

// NewBackfillAuthorsJob creates the author backfill job
func NewBackfillAuthorsJob(patcher ArticlePatcher) *BackfillAuthorsJob {
	return &BackfillAuthorsJob{patcher: patcher}
}

// Name identifies the job
func (j *BackfillAuthorsJob) Name() string {
	return "backfill_authors"
}

// Run stamps every authorless article with the system sentinel.
func (j *BackfillAuthorsJob) Run(ctx context.Context) (Report, error) {
	ids, err := j.patcher.ListMissingAuthors(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list authorless articles: %w", err)
	}

	report := Report{Scanned: len(ids)}
	for _, id := range ids {
		changed, err := j.patcher.SetAuthorIfMissing(ctx, id, SystemAuthorID)
		if err != nil {
			return report, fmt.Errorf("failed to backfill author for article %s: %w", id, err)
		}
		if changed {
			report.Patched++
		}
	}

	return report, nil
}
