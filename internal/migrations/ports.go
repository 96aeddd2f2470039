package migrations

import (
	"context"

	"github.com/google/uuid"
)

// LegacyCategoryRow pairs an article with the free-text category name it
// carried before categories became first-class records.
type LegacyCategoryRow struct {
	ArticleID uuid.UUID
	Name      string
}

// ArticlePatcher is the persistence port for the backfill jobs. It exposes
// only the narrow reads and conditional writes the jobs need, so they can be
// tested against fakes.
type ArticlePatcher interface {
	// ListMissingAuthors returns IDs of articles with no author recorded.
	ListMissingAuthors(ctx context.Context) ([]uuid.UUID, error)

	// SetAuthorIfMissing stamps the author only when none is recorded yet,
	// reporting whether a row changed. Running it twice is a no-op.
	SetAuthorIfMissing(ctx context.Context, id uuid.UUID, author string) (bool, error)

	// ListLegacyCategories returns articles still carrying a free-text
	// category name instead of a category reference.
	ListLegacyCategories(ctx context.Context) ([]LegacyCategoryRow, error)

	// AssignCategory points the article at the category record and clears
	// the legacy free-text name in the same statement.
	AssignCategory(ctx context.Context, articleID, categoryID uuid.UUID) error
}
