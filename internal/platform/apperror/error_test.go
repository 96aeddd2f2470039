package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/quillhq/newsdesk/internal/platform/apperror"
)

func TestNew(t *testing.T) {
	err := apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodeArticleNotFound,
		"article not found",
		http.StatusNotFound,
	)

	if err.Code != apperror.CodeNotFound {
		t.Errorf("expected code %v, got %v", apperror.CodeNotFound, err.Code)
	}
	if err.BusinessCode != apperror.BusinessCodeArticleNotFound {
		t.Errorf("expected business code %v, got %v", apperror.BusinessCodeArticleNotFound, err.BusinessCode)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, err.HTTPStatus)
	}
	if err.Error() != "article not found" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestWrapUnwraps(t *testing.T) {
	inner := errors.New("connection refused")
	err := apperror.Wrap(
		inner,
		apperror.CodeInternalError,
		apperror.BusinessCodeGeneral,
		"failed to load article",
		http.StatusInternalServerError,
	)

	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to find the wrapped error")
	}
	if unwrapped := errors.Unwrap(err); unwrapped != inner {
		t.Errorf("expected Unwrap to return inner error, got %v", unwrapped)
	}
}

func TestIsMatchesByCodes(t *testing.T) {
	tests := []struct {
		name   string
		a      *apperror.AppError
		b      *apperror.AppError
		expect bool
	}{
		{
			name: "same code and business code match",
			a: apperror.New(apperror.CodeNotFound, apperror.BusinessCodeArticleNotFound,
				"article not found", http.StatusNotFound),
			b: apperror.New(apperror.CodeNotFound, apperror.BusinessCodeArticleNotFound,
				"different message", http.StatusNotFound),
			expect: true,
		},
		{
			name: "different business code does not match",
			a: apperror.New(apperror.CodeNotFound, apperror.BusinessCodeArticleNotFound,
				"article not found", http.StatusNotFound),
			b: apperror.New(apperror.CodeNotFound, apperror.BusinessCodeCommentNotFound,
				"comment not found", http.StatusNotFound),
			expect: false,
		},
		{
			name: "different code does not match",
			a: apperror.New(apperror.CodeForbidden, apperror.BusinessCodeNotArticleAuthor,
				"not the author", http.StatusForbidden),
			b: apperror.New(apperror.CodeNotFound, apperror.BusinessCodeNotArticleAuthor,
				"not the author", http.StatusNotFound),
			expect: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.a, tt.b); got != tt.expect {
				t.Errorf("errors.Is = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestIsRejectsPlainErrors(t *testing.T) {
	err := apperror.New(apperror.CodeNotFound, apperror.BusinessCodeArticleNotFound,
		"article not found", http.StatusNotFound)

	if errors.Is(err, errors.New("article not found")) {
		t.Error("AppError should not match a plain error with the same message")
	}
}

func TestWithDetails(t *testing.T) {
	err := apperror.New(apperror.CodeValidationFailed, apperror.BusinessCodeInvalidFormat,
		"invalid article data", http.StatusBadRequest)

	err = err.WithDetails(map[string]string{"title": "required"})

	details, ok := err.Details.(map[string]string)
	if !ok {
		t.Fatalf("expected map details, got %T", err.Details)
	}
	if details["title"] != "required" {
		t.Errorf("unexpected details: %v", details)
	}
}

func TestFormatVerbose(t *testing.T) {
	inner := errors.New("no rows in result set")
	err := apperror.Wrap(inner, apperror.CodeNotFound, apperror.BusinessCodeCommentNotFound,
		"comment not found", http.StatusNotFound)

	got := fmt.Sprintf("%+v", err)
	for _, want := range []string{"NOT_FOUND", "comment_not_found", "no rows in result set"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %%+v output to contain %q, got: %s", want, got)
		}
	}

	if plain := fmt.Sprintf("%v", err); plain != "comment not found" {
		t.Errorf("expected %%v to print message only, got %q", plain)
	}
}
