package application

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/quillhq/newsdesk/internal/platform/apperror"
	"github.com/quillhq/newsdesk/internal/platform/logger"
	"github.com/quillhq/newsdesk/internal/taxonomy/domain"
	"github.com/quillhq/newsdesk/internal/taxonomy/ports"
)

// Error definitions for service operations
var (
	ErrUnauthenticated = apperror.New(
		apperror.CodeUnauthenticated,
		apperror.BusinessCodeAuthRequired,
		"authentication required",
		http.StatusUnauthorized,
	)

	ErrCategoryNotFound = apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodeCategoryNotFound,
		"category not found",
		http.StatusNotFound,
	)

	ErrTopicNotFound = apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodeTopicNotFound,
		"topic not found",
		http.StatusNotFound,
	)

	ErrInvalidTaxonomyData = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidFormat,
		"invalid category or topic data",
		http.StatusBadRequest,
	)
)

// TaxonomyService handles category and topic business logic
type TaxonomyService struct {
	categories ports.CategoryRepository
	topics     ports.TopicRepository
	logger     logger.Logger
}

// NewTaxonomyService creates a new taxonomy service
func NewTaxonomyService(
	categories ports.CategoryRepository,
	topics ports.TopicRepository,
	logger logger.Logger,
) *TaxonomyService {
	return &TaxonomyService{
		categories: categories,
		topics:     topics,
		logger:     logger,
	}
}

// CreateCategory creates a new category. Slug uniqueness is conventional:
// two concurrent creates with the same slug both succeed.
func (s *TaxonomyService) CreateCategory(ctx context.Context, actor string, name, slug string) (*domain.Category, error) {
	if actor == "" {
		return nil, ErrUnauthenticated
	}

	category, err := domain.NewCategory(name, slug)
	if err != nil {
		return nil, ErrInvalidTaxonomyData.WithDetails(err.Error())
	}

	if err := s.categories.Create(ctx, category); err != nil {
		s.logger.Error(ctx, "failed to create category", "error", err, "slug", category.Slug)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to create category",
			http.StatusInternalServerError,
		)
	}

	return category, nil
}

// GetCategory retrieves a category by ID
func (s *TaxonomyService) GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		s.logger.Error(ctx, "failed to find category", "error", err, "categoryID", id)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to retrieve category",
			http.StatusInternalServerError,
		)
	}
	return category, nil
}

// GetCategoryBySlug retrieves a category by its slug
func (s *TaxonomyService) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	category, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ports.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		s.logger.Error(ctx, "failed to find category by slug", "error", err, "slug", slug)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to retrieve category",
			http.StatusInternalServerError,
		)
	}
	return category, nil
}

// ListCategories returns all categories
func (s *TaxonomyService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categories.ListAll(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to list categories", "error", err)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to list categories",
			http.StatusInternalServerError,
		)
	}
	return categories, nil
}

// GetOrCreateTopic returns the topic with the exact given name, creating it
// if absent. Calling it twice with the same name yields the same topic.
func (s *TaxonomyService) GetOrCreateTopic(ctx context.Context, actor string, name string) (*domain.Topic, error) {
	if actor == "" {
		return nil, ErrUnauthenticated
	}

	existing, err := s.topics.FindByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ports.ErrTopicNotFound) {
		s.logger.Error(ctx, "failed to look up topic by name", "error", err, "name", name)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to look up topic",
			http.StatusInternalServerError,
		)
	}

	topic, err := domain.NewTopic(name)
	if err != nil {
		return nil, ErrInvalidTaxonomyData.WithDetails(err.Error())
	}

	if err := s.topics.Create(ctx, topic); err != nil {
		s.logger.Error(ctx, "failed to create topic", "error", err, "name", name)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to create topic",
			http.StatusInternalServerError,
		)
	}

	return topic, nil
}

// GetTopicBySlug retrieves a topic by its slug
func (s *TaxonomyService) GetTopicBySlug(ctx context.Context, slug string) (*domain.Topic, error) {
	topic, err := s.topics.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ports.ErrTopicNotFound) {
			return nil, ErrTopicNotFound
		}
		s.logger.Error(ctx, "failed to find topic by slug", "error", err, "slug", slug)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to retrieve topic",
			http.StatusInternalServerError,
		)
	}
	return topic, nil
}

// ListTopicsByIDs resolves topics for the given IDs, dropping any that no
// longer exist.
func (s *TaxonomyService) ListTopicsByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Topic, error) {
	topics, err := s.topics.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error(ctx, "failed to resolve topics", "error", err)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to resolve topics",
			http.StatusInternalServerError,
		)
	}
	return topics, nil
}

// ListTopics returns all topics
func (s *TaxonomyService) ListTopics(ctx context.Context) ([]*domain.Topic, error) {
	topics, err := s.topics.ListAll(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to list topics", "error", err)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to list topics",
			http.StatusInternalServerError,
		)
	}
	return topics, nil
}
