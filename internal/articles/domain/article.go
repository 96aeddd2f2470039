package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Article is a published piece of content. The author is the external
// identity subject that created it and never changes afterwards.
type Article struct {
	ID             uuid.UUID
	Title          string
	Body           string // HTML content, sanitized at the application layer
	CategoryID     uuid.UUID
	TopicIDs       []uuid.UUID // Ordered, no duplicates
	AuthorID       string      // External subject, stamped at creation
	CreatedAt      time.Time
	ImageStorageID *string // Reference into the blob store, nil when no image
}

// Business rule constants
const (
	MaxTitleLength = 200
)

// Validation errors
var (
	ErrInvalidTitle    = errors.New("title is required and must not exceed 200 characters")
	ErrInvalidBody     = errors.New("body is required")
	ErrInvalidCategory = errors.New("category ID is required")
	ErrInvalidAuthor   = errors.New("author ID is required")
)

// NewArticle creates a new article with validation. Duplicate topic IDs are
// unioned, keeping first-seen order. Category and topic references are taken
// on trust; dangling ones surface as dropped expansions on read.
func NewArticle(title, body string, categoryID uuid.UUID, topicIDs []uuid.UUID, authorID string, imageStorageID *string) (*Article, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if body == "" {
		return nil, ErrInvalidBody
	}
	if categoryID == uuid.Nil {
		return nil, ErrInvalidCategory
	}
	if authorID == "" {
		return nil, ErrInvalidAuthor
	}

	return &Article{
		ID:             uuid.New(),
		Title:          title,
		Body:           body,
		CategoryID:     categoryID,
		TopicIDs:       dedupeTopics(topicIDs),
		AuthorID:       authorID,
		CreatedAt:      time.Now(),
		ImageStorageID: imageStorageID,
	}, nil
}

// UpdateContent overwrites the mutable fields with validation. AuthorID and
// CreatedAt are untouched. The previous image reference is returned so the
// caller can release the stored blob when it was replaced.
func (a *Article) UpdateContent(title, body string, categoryID uuid.UUID, topicIDs []uuid.UUID, imageStorageID *string) (replacedImage *string, err error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if body == "" {
		return nil, ErrInvalidBody
	}
	if categoryID == uuid.Nil {
		return nil, ErrInvalidCategory
	}

	if imageStorageID != nil && a.ImageStorageID != nil && *imageStorageID != *a.ImageStorageID {
		replacedImage = a.ImageStorageID
	}

	a.Title = title
	a.Body = body
	a.CategoryID = categoryID
	a.TopicIDs = dedupeTopics(topicIDs)
	if imageStorageID != nil {
		a.ImageStorageID = imageStorageID
	}

	return replacedImage, nil
}

// IsAuthoredBy reports whether the given subject created this article.
func (a *Article) IsAuthoredBy(subject string) bool {
	return subject != "" && a.AuthorID == subject
}

func validateTitle(title string) error {
	if title == "" || len(title) > MaxTitleLength {
		return ErrInvalidTitle
	}
	return nil
}

func dedupeTopics(ids []uuid.UUID) []uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
