package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/quillhq/newsdesk/internal/platform/validator"
)

// Category is a top-level section articles are filed under (politics,
// technology, ...). Categories are never updated or deleted; slug
// uniqueness is a convention backed by an index, not a constraint.
type Category struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	CreatedAt time.Time
}

const (
	MaxCategoryNameLength = 100
	MaxSlugLength         = 120
)

var (
	ErrInvalidCategoryName = errors.New("category name is required and must not exceed 100 characters")
	ErrInvalidCategorySlug = errors.New("category slug is invalid")
)

// NewCategory creates a category with validation. An empty slug is derived
// from the name.
func NewCategory(name, slug string) (*Category, error) {
	if name == "" || len(name) > MaxCategoryNameLength {
		return nil, ErrInvalidCategoryName
	}

	if slug == "" {
		slug = validator.GenerateSlug(name, MaxSlugLength)
	}
	if err := validator.ValidateSlugFormat(slug, MaxSlugLength); err != nil {
		return nil, ErrInvalidCategorySlug
	}

	return &Category{
		ID:        uuid.New(),
		Name:      name,
		Slug:      slug,
		CreatedAt: time.Now(),
	}, nil
}
