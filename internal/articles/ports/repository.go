package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/quillhq/newsdesk/internal/articles/domain"
)

// Repository errors - the canonical errors repository implementations
// should return. The PostgreSQL implementation translates pgx.ErrNoRows
// into these.
var (
	// ErrArticleNotFound is returned when an article cannot be found
	ErrArticleNotFound = errors.New("article not found")
)

// ArticleRepository defines the interface for article persistence
type ArticleRepository interface {
	// Create saves a new article and its topic links
	Create(ctx context.Context, article *domain.Article) error

	// FindByID retrieves a full article by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Article, error)

	// Update overwrites the article row and replaces its topic links
	Update(ctx context.Context, article *domain.Article) error

	// Delete removes the article and its topic links
	Delete(ctx context.Context, id uuid.UUID) error

	// ListAll returns every article, newest first by creation time
	ListAll(ctx context.Context) ([]*domain.Article, error)

	// ListByCategory returns articles exactly matching the category,
	// newest first. An unknown category yields an empty slice.
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*domain.Article, error)

	// ListBySoleTopic returns articles whose topic set is exactly the one
	// given topic. This mirrors the legacy equality filter: an article
	// tagged with additional topics never matches. Known limitation kept
	// on purpose until containment semantics are confirmed.
	ListBySoleTopic(ctx context.Context, topicID uuid.UUID) ([]*domain.Article, error)

	// GetArticleAuthor retrieves just the author subject (for ownership checks)
	GetArticleAuthor(ctx context.Context, id uuid.UUID) (string, error)

	// ListImageRefs returns every blob reference currently held by an
	// article. Used by the orphan sweep.
	ListImageRefs(ctx context.Context) ([]string, error)
}
