package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/quillhq/newsdesk/internal/comments/ports"
	"github.com/quillhq/newsdesk/internal/platform/ownership"
)

// ResourceTypeComment is the resource type key comments register under.
const ResourceTypeComment = "comments"

// CommentsOwnershipChecker implements ownership verification for comments
type CommentsOwnershipChecker struct {
	repo ports.CommentRepository
}

// NewCommentsOwnershipChecker creates an ownership checker for comments and
// registers it with the platform registry.
func NewCommentsOwnershipChecker(repo ports.CommentRepository, registry ownership.Registry) *CommentsOwnershipChecker {
	checker := &CommentsOwnershipChecker{repo: repo}
	registry.RegisterChecker(ResourceTypeComment, checker)
	return checker
}

// CheckOwnership reports whether the subject posted the comment.
func (c *CommentsOwnershipChecker) CheckOwnership(ctx context.Context, subject string, resourceID uuid.UUID) (bool, error) {
	author, err := c.repo.GetCommentAuthor(ctx, resourceID)
	if err != nil {
		if errors.Is(err, ports.ErrCommentNotFound) {
			return false, nil
		}
		return false, err
	}
	return author == subject, nil
}

var _ ownership.Checker = (*CommentsOwnershipChecker)(nil)
