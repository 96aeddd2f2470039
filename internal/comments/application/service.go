package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/quillhq/newsdesk/internal/comments/domain"
	"github.com/quillhq/newsdesk/internal/comments/ports"
	"github.com/quillhq/newsdesk/internal/platform/apperror"
	"github.com/quillhq/newsdesk/internal/platform/eventbus"
	"github.com/quillhq/newsdesk/internal/platform/events"
	"github.com/quillhq/newsdesk/internal/platform/logger"
	"github.com/quillhq/newsdesk/internal/platform/ownership"
)

// Error definitions for service operations
var (
	ErrUnauthenticated = apperror.New(
		apperror.CodeUnauthenticated,
		apperror.BusinessCodeAuthRequired,
		"authentication required",
		http.StatusUnauthorized,
	)

	ErrCommentNotFound = apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodeCommentNotFound,
		"comment not found",
		http.StatusNotFound,
	)

	ErrNotCommentAuthor = apperror.New(
		apperror.CodeForbidden,
		apperror.BusinessCodeNotCommentAuthor,
		"only the commenter may modify this comment",
		http.StatusForbidden,
	)

	ErrInvalidCommentData = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidFormat,
		"invalid comment data",
		http.StatusBadRequest,
	)
)

// CommentsService handles comment business logic
type CommentsService struct {
	repo      ports.CommentRepository
	registry  ownership.Registry
	logger    logger.Logger
	sanitizer *bluemonday.Policy
}

// NewCommentsService creates a new comments service and subscribes it to
// article lifecycle events. The checker parameter guarantees the comments
// checker is registered before the first ownership check runs.
func NewCommentsService(
	repo ports.CommentRepository,
	registry ownership.Registry,
	_ *CommentsOwnershipChecker,
	eventBus *eventbus.Bus,
	logger logger.Logger,
) *CommentsService {
	s := &CommentsService{
		repo:      repo,
		registry:  registry,
		logger:    logger,
		sanitizer: bluemonday.StrictPolicy(),
	}
	eventBus.Subscribe(events.ArticleDeletedTopic, s.handleArticleDeleted)
	return s
}

// handleArticleDeleted prunes the comment thread of a deleted article.
// Comments tolerate dangling article references, so this is cleanup rather
// than a consistency requirement; failures are logged and skipped.
func (s *CommentsService) handleArticleDeleted(ctx context.Context, event eventbus.Event) error {
	payload, ok := event.Payload.(events.ArticleDeletedEvent)
	if !ok {
		return fmt.Errorf("unexpected payload %T on topic %s", event.Payload, event.Topic)
	}

	comments, err := s.repo.ListByArticle(ctx, payload.ArticleID)
	if err != nil {
		return fmt.Errorf("list comments for deleted article %s: %w", payload.ArticleID, err)
	}

	for _, comment := range comments {
		comment.MarkDeleted()
		if err := s.repo.Update(ctx, comment); err != nil {
			s.logger.Error(ctx, "failed to prune comment of deleted article",
				"error", err, "commentID", comment.ID, "articleID", payload.ArticleID)
		}
	}

	if len(comments) > 0 {
		s.logger.Info(ctx, "pruned comments of deleted article",
			"articleID", payload.ArticleID, "count", len(comments))
	}
	return nil
}

// AddComment posts a new comment on an article. The commenter identity is
// stamped from the actor; username is captured as a display snapshot. The
// article reference is taken on trust.
func (s *CommentsService) AddComment(ctx context.Context, actor, username string, articleID uuid.UUID, content string) (*domain.Comment, error) {
	if actor == "" {
		return nil, ErrUnauthenticated
	}

	comment, err := domain.NewComment(articleID, actor, username, s.sanitizer.Sanitize(content))
	if err != nil {
		return nil, ErrInvalidCommentData.WithDetails(err.Error())
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		s.logger.Error(ctx, "failed to create comment", "error", err, "articleID", articleID)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to create comment",
			http.StatusInternalServerError,
		)
	}

	return comment, nil
}

// GetComment retrieves a live comment. Soft-deleted comments read as missing.
func (s *CommentsService) GetComment(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	return s.getCommentByID(ctx, id)
}

// UpdateComment replaces the text of a comment. Only the commenter may update.
func (s *CommentsService) UpdateComment(ctx context.Context, actor string, id uuid.UUID, content string) (*domain.Comment, error) {
	if actor == "" {
		return nil, ErrUnauthenticated
	}

	comment, err := s.getCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeMutation(ctx, actor, comment.ID); err != nil {
		return nil, err
	}

	if err := comment.UpdateContent(s.sanitizer.Sanitize(content)); err != nil {
		return nil, ErrInvalidCommentData.WithDetails(err.Error())
	}

	if err := s.repo.Update(ctx, comment); err != nil {
		if errors.Is(err, ports.ErrCommentNotFound) {
			return nil, ErrCommentNotFound
		}
		s.logger.Error(ctx, "failed to update comment", "error", err, "commentID", id)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to update comment",
			http.StatusInternalServerError,
		)
	}

	return comment, nil
}

// DeleteComment soft-deletes a comment. Only the commenter may delete. The
// row stays behind, flagged, and vanishes from all reads.
func (s *CommentsService) DeleteComment(ctx context.Context, actor string, id uuid.UUID) error {
	if actor == "" {
		return ErrUnauthenticated
	}

	comment, err := s.getCommentByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authorizeMutation(ctx, actor, comment.ID); err != nil {
		return err
	}

	comment.MarkDeleted()

	if err := s.repo.Update(ctx, comment); err != nil {
		if errors.Is(err, ports.ErrCommentNotFound) {
			return ErrCommentNotFound
		}
		s.logger.Error(ctx, "failed to delete comment", "error", err, "commentID", id)
		return apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to delete comment",
			http.StatusInternalServerError,
		)
	}

	return nil
}

// ListComments returns live comments for an article, newest first. An
// unknown article yields an empty list.
func (s *CommentsService) ListComments(ctx context.Context, articleID uuid.UUID) ([]*domain.Comment, error) {
	comments, err := s.repo.ListByArticle(ctx, articleID)
	if err != nil {
		s.logger.Error(ctx, "failed to list comments", "error", err, "articleID", articleID)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to list comments",
			http.StatusInternalServerError,
		)
	}
	return comments, nil
}

// ListOwnComments returns live comments posted by the actor, newest first.
func (s *CommentsService) ListOwnComments(ctx context.Context, actor string) ([]*domain.Comment, error) {
	if actor == "" {
		return nil, ErrUnauthenticated
	}

	comments, err := s.repo.ListByUser(ctx, actor)
	if err != nil {
		s.logger.Error(ctx, "failed to list own comments", "error", err)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to list comments",
			http.StatusInternalServerError,
		)
	}
	return comments, nil
}

func (s *CommentsService) getCommentByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrCommentNotFound) {
			return nil, ErrCommentNotFound
		}
		s.logger.Error(ctx, "failed to find comment", "error", err, "commentID", id)
		return nil, apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"failed to retrieve comment",
			http.StatusInternalServerError,
		)
	}
	return comment, nil
}

func (s *CommentsService) authorizeMutation(ctx context.Context, actor string, commentID uuid.UUID) error {
	allowed, err := s.registry.CheckOwnership(ctx, actor, ResourceTypeComment, commentID)
	if err != nil {
		s.logger.Error(ctx, "failed to check authorization", "error", err, "actor", actor, "commentID", commentID)
		return apperror.New(
			apperror.CodeInternalError,
			apperror.BusinessCodeGeneral,
			"authorization check failed",
			http.StatusInternalServerError,
		)
	}
	if !allowed {
		return ErrNotCommentAuthor
	}
	return nil
}
