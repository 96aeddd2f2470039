package application

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhq/newsdesk/internal/comments/domain"
	"github.com/quillhq/newsdesk/internal/comments/ports"
	"github.com/quillhq/newsdesk/internal/platform/eventbus"
	"github.com/quillhq/newsdesk/internal/platform/events"
	"github.com/quillhq/newsdesk/internal/platform/ownership"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (nopLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (nopLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (nopLogger) Error(ctx context.Context, msg string, args ...any) {}

// fakeCommentRepo is an in-memory CommentRepository that honors the
// soft-delete visibility rules.
type fakeCommentRepo struct {
	comments map[uuid.UUID]*domain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uuid.UUID]*domain.Comment)}
}

func (r *fakeCommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	copied := *comment
	r.comments[comment.ID] = &copied
	return nil
}

func (r *fakeCommentRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	comment, ok := r.comments[id]
	if !ok || comment.IsDeleted {
		return nil, ports.ErrCommentNotFound
	}
	copied := *comment
	return &copied, nil
}

func (r *fakeCommentRepo) Update(ctx context.Context, comment *domain.Comment) error {
	if _, ok := r.comments[comment.ID]; !ok {
		return ports.ErrCommentNotFound
	}
	copied := *comment
	r.comments[comment.ID] = &copied
	return nil
}

func (r *fakeCommentRepo) ListByArticle(ctx context.Context, articleID uuid.UUID) ([]*domain.Comment, error) {
	var out []*domain.Comment
	for _, c := range r.comments {
		if c.ArticleID == articleID && !c.IsDeleted {
			copied := *c
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeCommentRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Comment, error) {
	var out []*domain.Comment
	for _, c := range r.comments {
		if c.UserID == userID && !c.IsDeleted {
			copied := *c
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeCommentRepo) GetCommentAuthor(ctx context.Context, id uuid.UUID) (string, error) {
	comment, ok := r.comments[id]
	if !ok || comment.IsDeleted {
		return "", ports.ErrCommentNotFound
	}
	return comment.UserID, nil
}

func newCommentsFixture() (*CommentsService, *fakeCommentRepo) {
	repo := newFakeCommentRepo()
	registry := ownership.NewRegistry()
	checker := NewCommentsOwnershipChecker(repo, registry)
	bus := eventbus.NewBus(nopLogger{})
	return NewCommentsService(repo, registry, checker, bus, nopLogger{}), repo
}

func TestAddCommentStampsCommenter(t *testing.T) {
	svc, _ := newCommentsFixture()

	comment, err := svc.AddComment(context.Background(), "user|bob", "bob", uuid.New(), "great article")
	require.NoError(t, err)
	assert.Equal(t, "user|bob", comment.UserID)
	assert.Equal(t, "bob", comment.Username)
	assert.False(t, comment.IsDeleted)
}

func TestAddCommentRequiresAuthentication(t *testing.T) {
	svc, _ := newCommentsFixture()

	_, err := svc.AddComment(context.Background(), "", "bob", uuid.New(), "great article")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAddCommentStripsMarkup(t *testing.T) {
	svc, _ := newCommentsFixture()

	comment, err := svc.AddComment(context.Background(), "user|bob", "bob", uuid.New(), `hi <script>alert("x")</script>there`)
	require.NoError(t, err)
	assert.NotContains(t, comment.Content, "<script>")
}

func TestUpdateCommentOnlyCommenter(t *testing.T) {
	svc, _ := newCommentsFixture()

	comment, err := svc.AddComment(context.Background(), "user|bob", "bob", uuid.New(), "first")
	require.NoError(t, err)

	_, err = svc.UpdateComment(context.Background(), "user|mallory", comment.ID, "hijacked")
	assert.ErrorIs(t, err, ErrNotCommentAuthor)

	updated, err := svc.UpdateComment(context.Background(), "user|bob", comment.ID, "second")
	require.NoError(t, err)
	assert.Equal(t, "second", updated.Content)
	assert.True(t, updated.UpdatedAt.After(comment.UpdatedAt) || updated.UpdatedAt.Equal(comment.UpdatedAt))
}

func TestDeleteCommentSoftDeletes(t *testing.T) {
	svc, repo := newCommentsFixture()

	articleID := uuid.New()
	comment, err := svc.AddComment(context.Background(), "user|bob", "bob", articleID, "first")
	require.NoError(t, err)

	err = svc.DeleteComment(context.Background(), "user|mallory", comment.ID)
	assert.ErrorIs(t, err, ErrNotCommentAuthor)

	require.NoError(t, svc.DeleteComment(context.Background(), "user|bob", comment.ID))

	// The row survives but every read treats it as gone.
	stored := repo.comments[comment.ID]
	require.NotNil(t, stored)
	assert.True(t, stored.IsDeleted)

	_, err = svc.GetComment(context.Background(), comment.ID)
	assert.ErrorIs(t, err, ErrCommentNotFound)

	listed, err := svc.ListComments(context.Background(), articleID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestDeleteCommentNotFound(t *testing.T) {
	svc, _ := newCommentsFixture()

	err := svc.DeleteComment(context.Background(), "user|bob", uuid.New())
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestListCommentsNewestFirst(t *testing.T) {
	svc, repo := newCommentsFixture()

	articleID := uuid.New()
	first, err := svc.AddComment(context.Background(), "user|bob", "bob", articleID, "first")
	require.NoError(t, err)
	second, err := svc.AddComment(context.Background(), "user|carol", "carol", articleID, "second")
	require.NoError(t, err)

	// Force distinct creation times regardless of clock granularity.
	repo.comments[second.ID].CreatedAt = first.CreatedAt.Add(time.Second)

	listed, err := svc.ListComments(context.Background(), articleID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, second.ID, listed[0].ID)
	assert.Equal(t, first.ID, listed[1].ID)
}

func TestListOwnComments(t *testing.T) {
	svc, _ := newCommentsFixture()

	articleID := uuid.New()
	mine, err := svc.AddComment(context.Background(), "user|bob", "bob", articleID, "mine")
	require.NoError(t, err)
	_, err = svc.AddComment(context.Background(), "user|carol", "carol", articleID, "theirs")
	require.NoError(t, err)

	listed, err := svc.ListOwnComments(context.Background(), "user|bob")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, mine.ID, listed[0].ID)

	_, err = svc.ListOwnComments(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestArticleDeletedPrunesThread(t *testing.T) {
	svc, repo := newCommentsFixture()

	articleID := uuid.New()
	otherArticleID := uuid.New()
	pruned, err := svc.AddComment(context.Background(), "user|bob", "bob", articleID, "on the deleted one")
	require.NoError(t, err)
	kept, err := svc.AddComment(context.Background(), "user|carol", "carol", otherArticleID, "elsewhere")
	require.NoError(t, err)

	err = svc.handleArticleDeleted(context.Background(), eventbus.Event{
		Topic:   events.ArticleDeletedTopic,
		Payload: events.ArticleDeletedEvent{ArticleID: articleID},
	})
	require.NoError(t, err)

	assert.True(t, repo.comments[pruned.ID].IsDeleted)
	assert.False(t, repo.comments[kept.ID].IsDeleted)

	listed, err := svc.ListComments(context.Background(), articleID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
