package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommentValidation(t *testing.T) {
	articleID := uuid.New()

	tests := []struct {
		name      string
		articleID uuid.UUID
		userID    string
		username  string
		content   string
		wantErr   error
	}{
		{"valid", articleID, "user|bob", "bob", "nice read", nil},
		{"missing article", uuid.Nil, "user|bob", "bob", "x", ErrInvalidArticle},
		{"missing user", articleID, "", "bob", "x", ErrInvalidUser},
		{"missing username", articleID, "user|bob", "", "x", ErrInvalidUsername},
		{"empty content", articleID, "user|bob", "bob", "", ErrInvalidContent},
		{"content too long", articleID, "user|bob", "bob", strings.Repeat("a", MaxContentLength+1), ErrInvalidContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comment, err := NewComment(tt.articleID, tt.userID, tt.username, tt.content)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.userID, comment.UserID)
			assert.False(t, comment.IsDeleted)
			assert.Equal(t, comment.CreatedAt, comment.UpdatedAt)
		})
	}
}

func TestCommentUpdateContentBumpsTimestamp(t *testing.T) {
	comment, err := NewComment(uuid.New(), "user|bob", "bob", "first")
	require.NoError(t, err)

	before := comment.UpdatedAt
	time.Sleep(time.Millisecond)

	require.NoError(t, comment.UpdateContent("second"))
	assert.Equal(t, "second", comment.Content)
	assert.True(t, comment.UpdatedAt.After(before))

	assert.ErrorIs(t, comment.UpdateContent(""), ErrInvalidContent)
}

func TestCommentMarkDeleted(t *testing.T) {
	comment, err := NewComment(uuid.New(), "user|bob", "bob", "first")
	require.NoError(t, err)

	comment.MarkDeleted()
	assert.True(t, comment.IsDeleted)
}

func TestCommentIsPostedBy(t *testing.T) {
	comment, err := NewComment(uuid.New(), "user|bob", "bob", "first")
	require.NoError(t, err)

	assert.True(t, comment.IsPostedBy("user|bob"))
	assert.False(t, comment.IsPostedBy("user|alice"))
	assert.False(t, comment.IsPostedBy(""))
}
