package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/quillhq/newsdesk/internal/platform/validator"
)

// Topic is a free-form tag attached to articles. Topics are deduplicated by
// exact name match at the application layer (get-or-create).
type Topic struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	CreatedAt time.Time
}

const MaxTopicNameLength = 100

var ErrInvalidTopicName = errors.New("topic name is required and must not exceed 100 characters")

// NewTopic creates a topic, deriving the slug from the name (lowercase,
// whitespace collapsed to hyphens).
func NewTopic(name string) (*Topic, error) {
	if name == "" || len(name) > MaxTopicNameLength {
		return nil, ErrInvalidTopicName
	}

	return &Topic{
		ID:        uuid.New(),
		Name:      name,
		Slug:      validator.GenerateSlug(name, MaxSlugLength),
		CreatedAt: time.Now(),
	}, nil
}
