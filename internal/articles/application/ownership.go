package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/quillhq/newsdesk/internal/articles/ports"
	"github.com/quillhq/newsdesk/internal/platform/ownership"
)

// ResourceTypeArticle is the resource type key articles register under.
const ResourceTypeArticle = "articles"

// ArticlesOwnershipChecker implements ownership verification for articles
type ArticlesOwnershipChecker struct {
	repo ports.ArticleRepository
}

// NewArticlesOwnershipChecker creates an ownership checker for articles and
// registers it with the platform registry.
func NewArticlesOwnershipChecker(repo ports.ArticleRepository, registry ownership.Registry) *ArticlesOwnershipChecker {
	checker := &ArticlesOwnershipChecker{repo: repo}
	registry.RegisterChecker(ResourceTypeArticle, checker)
	return checker
}

// CheckOwnership reports whether the subject authored the article. A missing
// article is simply not owned.
func (c *ArticlesOwnershipChecker) CheckOwnership(ctx context.Context, subject string, resourceID uuid.UUID) (bool, error) {
	author, err := c.repo.GetArticleAuthor(ctx, resourceID)
	if err != nil {
		if errors.Is(err, ports.ErrArticleNotFound) {
			return false, nil
		}
		return false, err
	}
	return author == subject, nil
}

// RegistryAuthorizer answers mutation checks by delegating to the ownership
// registry, so each context keeps its own notion of who owns what.
type RegistryAuthorizer struct {
	registry ownership.Registry
}

// NewRegistryAuthorizer creates an authorizer over the ownership registry.
// The checker parameter guarantees the articles checker is registered before
// the first authorization check runs.
func NewRegistryAuthorizer(registry ownership.Registry, _ *ArticlesOwnershipChecker) *RegistryAuthorizer {
	return &RegistryAuthorizer{registry: registry}
}

// CanMutate reports whether the subject may mutate the identified resource.
func (a *RegistryAuthorizer) CanMutate(ctx context.Context, subject string, resource string, resourceID uuid.UUID) (bool, error) {
	return a.registry.CheckOwnership(ctx, subject, resource, resourceID)
}

// Compile-time checks
var (
	_ ownership.Checker = (*ArticlesOwnershipChecker)(nil)
	_ ports.Authorizer  = (*RegistryAuthorizer)(nil)
)
