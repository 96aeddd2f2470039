package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	articlesPorts "github.com/quillhq/newsdesk/internal/articles/ports"
	"github.com/quillhq/newsdesk/internal/taxonomy/ports"
)

// ArticlesTaxonomyAdapter exposes taxonomy reads to the articles context
// through its TaxonomyReader port, so articles never imports taxonomy
// internals directly.
type ArticlesTaxonomyAdapter struct {
	categories ports.CategoryRepository
	topics     ports.TopicRepository
}

// NewArticlesTaxonomyAdapter creates the adapter over the taxonomy repositories
func NewArticlesTaxonomyAdapter(
	categories ports.CategoryRepository,
	topics ports.TopicRepository,
) *ArticlesTaxonomyAdapter {
	return &ArticlesTaxonomyAdapter{
		categories: categories,
		topics:     topics,
	}
}

// GetCategoryRef resolves a category reference; a missing category is nil,
// not an error, because article expansion tolerates dangling references.
func (a *ArticlesTaxonomyAdapter) GetCategoryRef(ctx context.Context, id uuid.UUID) (*articlesPorts.CategoryRef, error) {
	category, err := a.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrCategoryNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &articlesPorts.CategoryRef{
		ID:   category.ID,
		Name: category.Name,
		Slug: category.Slug,
	}, nil
}

// ListTopicRefs resolves topic references in input order, dropping missing ones.
func (a *ArticlesTaxonomyAdapter) ListTopicRefs(ctx context.Context, ids []uuid.UUID) ([]articlesPorts.TopicRef, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	topics, err := a.topics.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	refs := make([]articlesPorts.TopicRef, 0, len(topics))
	for _, topic := range topics {
		refs = append(refs, articlesPorts.TopicRef{
			ID:   topic.ID,
			Name: topic.Name,
			Slug: topic.Slug,
		})
	}
	return refs, nil
}

// Compile-time check
var _ articlesPorts.TaxonomyReader = (*ArticlesTaxonomyAdapter)(nil)
