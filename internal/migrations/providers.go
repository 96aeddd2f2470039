package migrations

import (
	"github.com/google/wire"
	"github.com/quillhq/newsdesk/internal/platform/logger"
	taxonomyPorts "github.com/quillhq/newsdesk/internal/taxonomy/ports"
)

// ProviderSet is the wire provider set for the migrations package
var ProviderSet = wire.NewSet(
	NewRunnerWithJobs,
)

// NewRunnerWithJobs assembles the runner with every job in its canonical
// order: authors first, then categories.
func NewRunnerWithJobs(
	logger logger.Logger,
	patcher ArticlePatcher,
	categories taxonomyPorts.CategoryRepository,
) *Runner {
	return NewRunner(logger, []Job{
		NewBackfillAuthorsJob(patcher),
		NewMigrateCategoriesJob(patcher, categories),
	})
}
