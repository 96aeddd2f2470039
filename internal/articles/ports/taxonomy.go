package ports

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRef is the denormalized category shape embedded in expanded
// article reads.
type CategoryRef struct {
	ID   uuid.UUID
	Name string
	Slug string
}

// TopicRef is the denormalized topic shape embedded in expanded article reads.
type TopicRef struct {
	ID   uuid.UUID
	Name string
	Slug string
}

// TaxonomyReader is a driven port onto the taxonomy context. The articles
// module only needs read access for expansion; dangling references resolve
// to nil / get dropped rather than erroring.
type TaxonomyReader interface {
	// GetCategoryRef returns nil (not an error) when the category is missing.
	GetCategoryRef(ctx context.Context, id uuid.UUID) (*CategoryRef, error)

	// ListTopicRefs resolves the given IDs in order, dropping missing ones.
	ListTopicRefs(ctx context.Context, ids []uuid.UUID) ([]TopicRef, error)
}
