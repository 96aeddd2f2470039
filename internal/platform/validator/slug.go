package validator

import (
	"errors"
	"regexp"

	"github.com/gosimple/slug"
)

// Slug validation errors
var (
	ErrInvalidSlugFormat = errors.New("slug must contain only lowercase letters, numbers, and hyphens")
	ErrSlugEmpty         = errors.New("slug cannot be empty")
	ErrSlugTooLong       = errors.New("slug is too long")
)

var slugValidationRegex = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidateSlugFormat checks if a slug has valid format
func ValidateSlugFormat(s string, maxLength int) error {
	if s == "" {
		return ErrSlugEmpty
	}

	if len(s) > maxLength {
		return ErrSlugTooLong
	}

	if !slugValidationRegex.MatchString(s) {
		return ErrInvalidSlugFormat
	}

	return nil
}

// GenerateSlug creates a URL-friendly slug from a text string
func GenerateSlug(text string, maxLength int) string {
	s := slug.Make(text)

	if len(s) > maxLength {
		s = s[:maxLength]
		// Avoid a trailing hyphen after truncation
		for len(s) > 0 && s[len(s)-1] == '-' {
			s = s[:len(s)-1]
		}
	}

	return s
}
