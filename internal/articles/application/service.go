package application

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/quillhq/newsdesk/internal/articles/domain"
	"github.com/quillhq/newsdesk/internal/articles/ports"
	"github.com/quillhq/newsdesk/internal/platform/apperror"
	"github.com/quillhq/newsdesk/internal/platform/eventbus"
	"github.com/quillhq/newsdesk/internal/platform/events"
	"github.com/quillhq/newsdesk/internal/platform/logger"
)

// Error definitions for service operations
var (
	ErrUnauthenticated = apperror.New(
		apperror.CodeUnauthenticated,
		apperror.BusinessCodeAuthRequired,
		"authentication required",
		http.StatusUnauthorized,
	)

	ErrArticleNotFound = apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodeArticleNotFound,
		"article not found",
		http.StatusNotFound,
	)

	ErrNotArticleAuthor = apperror.New(
		apperror.CodeForbidden,
		apperror.BusinessCodeNotArticleAuthor,
		"only the author may modify this article",
		http.StatusForbidden,
	)

	ErrInvalidArticleData = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidFormat,
		"invalid article data",
		http.StatusBadRequest,
	)

	ErrUploadURLFailed = apperror.New(
		apperror.CodeInternalError,
		apperror.BusinessCodeUploadFailed,
		"failed to generate upload URL",
		http.StatusInternalServerError,
	)
)

// ArticleView is an article with its references expanded for read paths:
// the category record (nil when the reference dangles), the resolved topic
// list (dangling references dropped) and a retrievable image URL.
type ArticleView struct {
	*domain.Article
	Category *ports.CategoryRef
	Topics   []ports.TopicRef
	ImageURL *string
}

// ArticlesService handles article business logic
type ArticlesService struct {
	repo       ports.ArticleRepository
	taxonomy   ports.TaxonomyReader
	blobs      ports.BlobStore
	authorizer ports.Authorizer
	eventBus   *eventbus.Bus
	logger     logger.Logger
	sanitizer  *bluemonday.Policy
}

// NewArticlesService creates a new articles service
func NewArticlesService(
	repo ports.ArticleRepository,
	taxonomy ports.TaxonomyReader,
	blobs ports.BlobStore,
	authorizer ports.Authorizer,
	eventBus *eventbus.Bus,
	logger logger.Logger,
) *ArticlesService {
	return &ArticlesService{
		repo:       repo,
		taxonomy:   taxonomy,
		blobs:      blobs,
		authorizer: authorizer,
		eventBus:   eventBus,
		logger:     logger,
		sanitizer:  bluemonday.UGCPolicy(),
	}
}

// CreateArticleParams contains parameters for creating a new article
type CreateArticleParams struct {
	Title          string
	Body           string
	CategoryID     uuid.UUID
	TopicIDs       []uuid.UUID
	ImageStorageID *string
}

// CreateArticle creates a new article authored by the actor. Category and
// topic references are not validated against the taxonomy; reads tolerate
// dangling references instead.
func (s *ArticlesService) CreateArticle(ctx context.Context, actor string, params CreateArticleParams) (*domain.Article, error) {
	if actor == "" {
		return nil, ErrUnauthenticated
	}

	sanitizedBody := s.sanitizer.Sanitize(params.Body)

	article, err := domain.NewArticle(
		params.Title,
		sanitizedBody,
		params.CategoryID,
		params.TopicIDs,
		actor,
		params.ImageStorageID,
	)
	if err != nil {
		return nil, ErrInvalidArticleData.WithDetails(err.Error())
	}

	if err := s.repo.Create(ctx, article); err != nil {
		s.logger.Error(ctx, "failed to create article", "error", err)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to create article",
			http.StatusInternalServerError,
		)
	}

	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.ArticleCreatedTopic,
		Payload: events.ArticleCreatedEvent{
			ArticleID:  article.ID,
			AuthorID:   article.AuthorID,
			Title:      article.Title,
			CategoryID: article.CategoryID,
			OccurredAt: time.Now(),
		},
	})

	return article, nil
}

// GetArticle retrieves an article with category, topics and image URL expanded
func (s *ArticlesService) GetArticle(ctx context.Context, id uuid.UUID) (*ArticleView, error) {
	article, err := s.getArticleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, article, true)
}

// UpdateArticleParams contains parameters for updating an article
type UpdateArticleParams struct {
	Title          string
	Body           string
	CategoryID     uuid.UUID
	TopicIDs       []uuid.UUID
	ImageStorageID *string
}

// UpdateArticle overwrites an article's content. Only the author may update.
// When a new image reference replaces an old one, the old blob is released
// best-effort: a failed delete is logged and the update still succeeds.
func (s *ArticlesService) UpdateArticle(ctx context.Context, actor string, id uuid.UUID, params UpdateArticleParams) (*domain.Article, error) {
	if actor == "" {
		return nil, ErrUnauthenticated
	}

	article, err := s.getArticleByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeMutation(ctx, actor, article.ID); err != nil {
		return nil, err
	}

	sanitizedBody := s.sanitizer.Sanitize(params.Body)

	replacedImage, err := article.UpdateContent(
		params.Title,
		sanitizedBody,
		params.CategoryID,
		params.TopicIDs,
		params.ImageStorageID,
	)
	if err != nil {
		return nil, ErrInvalidArticleData.WithDetails(err.Error())
	}

	if replacedImage != nil {
		s.releaseBlob(ctx, *replacedImage, article.ID)
	}

	if err := s.repo.Update(ctx, article); err != nil {
		if errors.Is(err, ports.ErrArticleNotFound) {
			return nil, ErrArticleNotFound
		}
		s.logger.Error(ctx, "failed to update article", "error", err, "articleID", id)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to update article",
			http.StatusInternalServerError,
		)
	}

	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.ArticleUpdatedTopic,
		Payload: events.ArticleUpdatedEvent{
			ArticleID:  article.ID,
			AuthorID:   article.AuthorID,
			Title:      article.Title,
			OccurredAt: time.Now(),
		},
	})

	return article, nil
}

// DeleteArticle removes an article. Only the author may delete. The stored
// image blob is released best-effort before the record goes away.
func (s *ArticlesService) DeleteArticle(ctx context.Context, actor string, id uuid.UUID) error {
	if actor == "" {
		return ErrUnauthenticated
	}

	article, err := s.getArticleByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authorizeMutation(ctx, actor, article.ID); err != nil {
		return err
	}

	if article.ImageStorageID != nil {
		s.releaseBlob(ctx, *article.ImageStorageID, article.ID)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ports.ErrArticleNotFound) {
			return ErrArticleNotFound
		}
		s.logger.Error(ctx, "failed to delete article", "error", err, "articleID", id)
		return apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to delete article",
			http.StatusInternalServerError,
		)
	}

	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.ArticleDeletedTopic,
		Payload: events.ArticleDeletedEvent{
			ArticleID:      article.ID,
			AuthorID:       article.AuthorID,
			ImageStorageID: article.ImageStorageID,
			OccurredAt:     time.Now(),
		},
	})

	return nil
}

// ListArticles returns every article newest-first, with category and image
// URL expanded (topics stay as IDs on the list path).
func (s *ArticlesService) ListArticles(ctx context.Context) ([]*ArticleView, error) {
	articles, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to list articles", "error", err)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to list articles",
			http.StatusInternalServerError,
		)
	}

	views := make([]*ArticleView, 0, len(articles))
	for _, article := range articles {
		view, err := s.expand(ctx, article, false)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// ListArticlesByCategory returns unexpanded articles filed under the exact
// category. An unknown category yields an empty list, not an error.
func (s *ArticlesService) ListArticlesByCategory(ctx context.Context, categoryID uuid.UUID) ([]*domain.Article, error) {
	articles, err := s.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		s.logger.Error(ctx, "failed to list articles by category", "error", err, "categoryID", categoryID)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to list articles",
			http.StatusInternalServerError,
		)
	}
	return articles, nil
}

// ListArticlesByTopic returns unexpanded articles whose topic set is exactly
// the given topic. Articles carrying additional topics do not match; this
// mirrors the legacy equality filter and is kept until containment intent is
// confirmed.
func (s *ArticlesService) ListArticlesByTopic(ctx context.Context, topicID uuid.UUID) ([]*domain.Article, error) {
	articles, err := s.repo.ListBySoleTopic(ctx, topicID)
	if err != nil {
		s.logger.Error(ctx, "failed to list articles by topic", "error", err, "topicID", topicID)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to list articles",
			http.StatusInternalServerError,
		)
	}
	return articles, nil
}

// GenerateUploadURL issues the first phase of the two-phase image upload.
// The client PUTs directly to the returned URL; the storage ID only becomes
// referenced once a subsequent create/update names it. Blobs stranded
// between the two phases are collected by the orphan sweep.
func (s *ArticlesService) GenerateUploadURL(ctx context.Context, actor string) (ports.UploadTicket, error) {
	if actor == "" {
		return ports.UploadTicket{}, ErrUnauthenticated
	}

	ticket, err := s.blobs.GenerateUploadURL(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to generate upload URL", "error", err)
		return ports.UploadTicket{}, ErrUploadURLFailed
	}
	return ticket, nil
}

// Private helpers

func (s *ArticlesService) getArticleByID(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrArticleNotFound) {
			return nil, ErrArticleNotFound
		}
		s.logger.Error(ctx, "failed to find article", "error", err, "articleID", id)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to retrieve article",
			http.StatusInternalServerError,
		)
	}
	return article, nil
}

func (s *ArticlesService) authorizeMutation(ctx context.Context, actor string, articleID uuid.UUID) error {
	allowed, err := s.authorizer.CanMutate(ctx, actor, "articles", articleID)
	if err != nil {
		s.logger.Error(ctx, "failed to check authorization", "error", err, "actor", actor, "articleID", articleID)
		return apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"authorization check failed",
			http.StatusInternalServerError,
		)
	}
	if !allowed {
		return ErrNotArticleAuthor
	}
	return nil
}

// releaseBlob deletes a stored blob, swallowing errors: losing an orphaned
// image must never fail the record mutation it rode along with.
func (s *ArticlesService) releaseBlob(ctx context.Context, storageID string, articleID uuid.UUID) {
	if err := s.blobs.Delete(ctx, storageID); err != nil {
		s.logger.Warn(ctx, "failed to delete stored image, leaving orphan for sweep",
			"error", err,
			"storageID", storageID,
			"articleID", articleID,
		)
	}
}

// expand builds an ArticleView. withTopics controls whether the topic list
// is resolved (single reads) or left to the IDs (list paths).
func (s *ArticlesService) expand(ctx context.Context, article *domain.Article, withTopics bool) (*ArticleView, error) {
	view := &ArticleView{Article: article}

	category, err := s.taxonomy.GetCategoryRef(ctx, article.CategoryID)
	if err != nil {
		s.logger.Error(ctx, "failed to expand category", "error", err, "articleID", article.ID)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to expand article",
			http.StatusInternalServerError,
		)
	}
	view.Category = category

	if withTopics {
		topics, err := s.taxonomy.ListTopicRefs(ctx, article.TopicIDs)
		if err != nil {
			s.logger.Error(ctx, "failed to expand topics", "error", err, "articleID", article.ID)
			return nil, apperror.New(
				apperror.CodeInternalError,
				apperror.BusinessCodeGeneral,
				"failed to expand article",
				http.StatusInternalServerError,
			)
		}
		view.Topics = topics
	}

	if article.ImageStorageID != nil {
		url, err := s.blobs.ResolveURL(ctx, *article.ImageStorageID)
		if err != nil {
			// A missing or unreachable blob degrades to no image.
			s.logger.Warn(ctx, "failed to resolve image URL",
				"error", err,
				"storageID", *article.ImageStorageID,
				"articleID", article.ID,
			)
		} else if url != "" {
			view.ImageURL = &url
		}
	}

	return view, nil
}
