package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/quillhq/newsdesk/internal/taxonomy/domain"
)

var (
	// ErrCategoryNotFound is returned when a category cannot be found
	ErrCategoryNotFound = errors.New("category not found")

	// ErrTopicNotFound is returned when a topic cannot be found
	ErrTopicNotFound = errors.New("topic not found")
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)

	// FindByNameFold matches by case-insensitive name. Used by the legacy
	// category migration.
	FindByNameFold(ctx context.Context, name string) (*domain.Category, error)

	ListAll(ctx context.Context) ([]*domain.Category, error)
}

// TopicRepository defines the interface for topic persistence
type TopicRepository interface {
	Create(ctx context.Context, topic *domain.Topic) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Topic, error)
	FindByName(ctx context.Context, name string) (*domain.Topic, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Topic, error)

	// FindByIDs resolves the given IDs, silently dropping unresolvable
	// ones. Result order follows the input order.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Topic, error)

	ListAll(ctx context.Context) ([]*domain.Topic, error)
}
