package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Comment is reader feedback attached to an article. Username is a display
// snapshot taken at posting time; it does not follow later profile renames.
// Deletion is soft: the row stays, flagged, and disappears from reads.
type Comment struct {
	ID        uuid.UUID
	ArticleID uuid.UUID
	UserID    string // External subject of the commenter
	Username  string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
	IsDeleted bool
}

const MaxContentLength = 4000

var (
	ErrInvalidContent  = errors.New("content is required and must not exceed 4000 characters")
	ErrInvalidArticle  = errors.New("article ID is required")
	ErrInvalidUser     = errors.New("user ID is required")
	ErrInvalidUsername = errors.New("username is required")
)

// NewComment creates a new comment with validation.
func NewComment(articleID uuid.UUID, userID, username, content string) (*Comment, error) {
	if articleID == uuid.Nil {
		return nil, ErrInvalidArticle
	}
	if userID == "" {
		return nil, ErrInvalidUser
	}
	if username == "" {
		return nil, ErrInvalidUsername
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Comment{
		ID:        uuid.New(),
		ArticleID: articleID,
		UserID:    userID,
		Username:  username,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// UpdateContent replaces the comment text and bumps the update timestamp.
func (c *Comment) UpdateContent(content string) error {
	if err := validateContent(content); err != nil {
		return err
	}
	c.Content = content
	c.UpdatedAt = time.Now()
	return nil
}

// MarkDeleted flags the comment as deleted and bumps the update timestamp.
func (c *Comment) MarkDeleted() {
	c.IsDeleted = true
	c.UpdatedAt = time.Now()
}

// IsPostedBy reports whether the given subject posted this comment.
func (c *Comment) IsPostedBy(subject string) bool {
	return subject != "" && c.UserID == subject
}

func validateContent(content string) error {
	if content == "" || len(content) > MaxContentLength {
		return ErrInvalidContent
	}
	return nil
}
