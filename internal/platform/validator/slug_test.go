package validator_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/quillhq/newsdesk/internal/platform/validator"
)

func TestValidateSlugFormat(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		max     int
		wantErr error
	}{
		{"valid slug", "world-news", 50, nil},
		{"valid with digits", "top-10-stories", 50, nil},
		{"empty", "", 50, validator.ErrSlugEmpty},
		{"uppercase rejected", "World-News", 50, validator.ErrInvalidSlugFormat},
		{"spaces rejected", "world news", 50, validator.ErrInvalidSlugFormat},
		{"too long", strings.Repeat("a", 51), 50, validator.ErrSlugTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateSlugFormat(tt.slug, tt.max)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateSlugFormat(%q) = %v, want %v", tt.slug, err, tt.wantErr)
			}
		})
	}
}

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{"lowercases and hyphenates", "World News", 50, "world-news"},
		{"collapses whitespace", "Breaking   News  Today", 50, "breaking-news-today"},
		{"strips punctuation", "Hello, World!", 50, "hello-world"},
		{"truncates without trailing hyphen", "alpha beta", 6, "alpha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validator.GenerateSlug(tt.text, tt.max); got != tt.want {
				t.Errorf("GenerateSlug(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
