package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/quillhq/newsdesk/internal/comments/domain"
)

var (
	// ErrCommentNotFound is returned when a comment cannot be found or is
	// soft-deleted.
	ErrCommentNotFound = errors.New("comment not found")
)

// CommentRepository defines the interface for comment persistence.
// Soft-deleted comments are invisible to every read here.
type CommentRepository interface {
	// Create saves a new comment
	Create(ctx context.Context, comment *domain.Comment) error

	// FindByID retrieves a live comment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)

	// Update overwrites the comment row
	Update(ctx context.Context, comment *domain.Comment) error

	// ListByArticle returns live comments for an article, newest first
	ListByArticle(ctx context.Context, articleID uuid.UUID) ([]*domain.Comment, error)

	// ListByUser returns live comments posted by the subject, newest first
	ListByUser(ctx context.Context, userID string) ([]*domain.Comment, error)

	// GetCommentAuthor retrieves just the commenter subject (for ownership checks)
	GetCommentAuthor(ctx context.Context, id uuid.UUID) (string, error)
}
