package application

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhq/newsdesk/internal/articles/domain"
	"github.com/quillhq/newsdesk/internal/articles/ports"
	"github.com/quillhq/newsdesk/internal/platform/eventbus"
	"github.com/quillhq/newsdesk/internal/platform/ownership"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (nopLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (nopLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (nopLogger) Error(ctx context.Context, msg string, args ...any) {}

// fakeArticleRepo is an in-memory ArticleRepository.
type fakeArticleRepo struct {
	articles map[uuid.UUID]*domain.Article
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{articles: make(map[uuid.UUID]*domain.Article)}
}

func (r *fakeArticleRepo) Create(ctx context.Context, article *domain.Article) error {
	copied := *article
	r.articles[article.ID] = &copied
	return nil
}

func (r *fakeArticleRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	article, ok := r.articles[id]
	if !ok {
		return nil, ports.ErrArticleNotFound
	}
	copied := *article
	return &copied, nil
}

func (r *fakeArticleRepo) Update(ctx context.Context, article *domain.Article) error {
	if _, ok := r.articles[article.ID]; !ok {
		return ports.ErrArticleNotFound
	}
	copied := *article
	r.articles[article.ID] = &copied
	return nil
}

func (r *fakeArticleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.articles[id]; !ok {
		return ports.ErrArticleNotFound
	}
	delete(r.articles, id)
	return nil
}

func (r *fakeArticleRepo) ListAll(ctx context.Context) ([]*domain.Article, error) {
	out := make([]*domain.Article, 0, len(r.articles))
	for _, a := range r.articles {
		copied := *a
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeArticleRepo) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*domain.Article, error) {
	var out []*domain.Article
	for _, a := range r.articles {
		if a.CategoryID == categoryID {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeArticleRepo) ListBySoleTopic(ctx context.Context, topicID uuid.UUID) ([]*domain.Article, error) {
	var out []*domain.Article
	for _, a := range r.articles {
		if len(a.TopicIDs) == 1 && a.TopicIDs[0] == topicID {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeArticleRepo) GetArticleAuthor(ctx context.Context, id uuid.UUID) (string, error) {
	article, ok := r.articles[id]
	if !ok {
		return "", ports.ErrArticleNotFound
	}
	return article.AuthorID, nil
}

func (r *fakeArticleRepo) ListImageRefs(ctx context.Context) ([]string, error) {
	var refs []string
	for _, a := range r.articles {
		if a.ImageStorageID != nil {
			refs = append(refs, *a.ImageStorageID)
		}
	}
	return refs, nil
}

// fakeBlobStore records deletions and serves canned URLs.
type fakeBlobStore struct {
	deleted   []string
	blobs     []ports.BlobInfo
	deleteErr error
}

func (b *fakeBlobStore) GenerateUploadURL(ctx context.Context) (ports.UploadTicket, error) {
	return ports.UploadTicket{
		StorageID: uuid.NewString(),
		URL:       "https://blobs.example/upload",
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}, nil
}

func (b *fakeBlobStore) ResolveURL(ctx context.Context, storageID string) (string, error) {
	return "https://blobs.example/" + storageID, nil
}

func (b *fakeBlobStore) Delete(ctx context.Context, storageID string) error {
	if b.deleteErr != nil {
		return b.deleteErr
	}
	b.deleted = append(b.deleted, storageID)
	return nil
}

func (b *fakeBlobStore) List(ctx context.Context) ([]ports.BlobInfo, error) {
	return b.blobs, nil
}

// fakeTaxonomy resolves categories and topics from fixed maps.
type fakeTaxonomy struct {
	categories map[uuid.UUID]ports.CategoryRef
	topics     map[uuid.UUID]ports.TopicRef
}

func (t *fakeTaxonomy) GetCategoryRef(ctx context.Context, id uuid.UUID) (*ports.CategoryRef, error) {
	if ref, ok := t.categories[id]; ok {
		return &ref, nil
	}
	return nil, nil
}

func (t *fakeTaxonomy) ListTopicRefs(ctx context.Context, ids []uuid.UUID) ([]ports.TopicRef, error) {
	var refs []ports.TopicRef
	for _, id := range ids {
		if ref, ok := t.topics[id]; ok {
			refs = append(refs, ref)
		}
	}
	return refs, nil
}

type serviceFixture struct {
	svc   *ArticlesService
	repo  *fakeArticleRepo
	blobs *fakeBlobStore
	tax   *fakeTaxonomy
}

func newServiceFixture() *serviceFixture {
	repo := newFakeArticleRepo()
	blobs := &fakeBlobStore{}
	tax := &fakeTaxonomy{
		categories: make(map[uuid.UUID]ports.CategoryRef),
		topics:     make(map[uuid.UUID]ports.TopicRef),
	}
	registry := ownership.NewRegistry()
	checker := NewArticlesOwnershipChecker(repo, registry)
	authorizer := NewRegistryAuthorizer(registry, checker)
	bus := eventbus.NewBus(nopLogger{})

	svc := NewArticlesService(repo, tax, blobs, authorizer, bus, nopLogger{})
	return &serviceFixture{svc: svc, repo: repo, blobs: blobs, tax: tax}
}

func validParams() CreateArticleParams {
	return CreateArticleParams{
		Title:      "Launch day",
		Body:       "<p>hello</p>",
		CategoryID: uuid.New(),
	}
}

func TestCreateArticleStampsAuthor(t *testing.T) {
	f := newServiceFixture()

	article, err := f.svc.CreateArticle(context.Background(), "user|alice", validParams())
	require.NoError(t, err)
	assert.Equal(t, "user|alice", article.AuthorID)
	assert.NotEqual(t, uuid.Nil, article.ID)
}

func TestCreateArticleRequiresAuthentication(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.CreateArticle(context.Background(), "", validParams())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestCreateArticleSanitizesBody(t *testing.T) {
	f := newServiceFixture()

	params := validParams()
	params.Body = `<p>fine</p><script>alert("x")</script>`
	article, err := f.svc.CreateArticle(context.Background(), "user|alice", params)
	require.NoError(t, err)
	assert.NotContains(t, article.Body, "<script>")
	assert.Contains(t, article.Body, "<p>fine</p>")
}

func TestCreateArticleRejectsInvalidData(t *testing.T) {
	f := newServiceFixture()

	params := validParams()
	params.Title = ""
	_, err := f.svc.CreateArticle(context.Background(), "user|alice", params)
	assert.ErrorIs(t, err, ErrInvalidArticleData)
}

func TestGetArticleExpandsReferences(t *testing.T) {
	f := newServiceFixture()

	categoryID := uuid.New()
	topicID := uuid.New()
	f.tax.categories[categoryID] = ports.CategoryRef{ID: categoryID, Name: "Tech", Slug: "tech"}
	f.tax.topics[topicID] = ports.TopicRef{ID: topicID, Name: "Go", Slug: "go"}

	img := "blob-123"
	params := CreateArticleParams{
		Title:          "Launch day",
		Body:           "<p>hello</p>",
		CategoryID:     categoryID,
		TopicIDs:       []uuid.UUID{topicID},
		ImageStorageID: &img,
	}
	created, err := f.svc.CreateArticle(context.Background(), "user|alice", params)
	require.NoError(t, err)

	view, err := f.svc.GetArticle(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Category)
	assert.Equal(t, "Tech", view.Category.Name)
	require.Len(t, view.Topics, 1)
	assert.Equal(t, "go", view.Topics[0].Slug)
	require.NotNil(t, view.ImageURL)
	assert.Equal(t, "https://blobs.example/blob-123", *view.ImageURL)
}

func TestGetArticleToleratesDanglingReferences(t *testing.T) {
	f := newServiceFixture()

	params := validParams()
	params.TopicIDs = []uuid.UUID{uuid.New()}
	created, err := f.svc.CreateArticle(context.Background(), "user|alice", params)
	require.NoError(t, err)

	view, err := f.svc.GetArticle(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, view.Category)
	assert.Empty(t, view.Topics)
}

func TestGetArticleNotFound(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.GetArticle(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrArticleNotFound)
}

func TestUpdateArticleOnlyAuthor(t *testing.T) {
	f := newServiceFixture()

	created, err := f.svc.CreateArticle(context.Background(), "user|alice", validParams())
	require.NoError(t, err)

	update := UpdateArticleParams{Title: "Edited", Body: "<p>edited</p>", CategoryID: created.CategoryID}

	_, err = f.svc.UpdateArticle(context.Background(), "user|mallory", created.ID, update)
	assert.ErrorIs(t, err, ErrNotArticleAuthor)

	updated, err := f.svc.UpdateArticle(context.Background(), "user|alice", created.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Title)
	assert.Equal(t, "user|alice", updated.AuthorID)
}

func TestUpdateArticleNotFoundBeforeOwnership(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.UpdateArticle(context.Background(), "user|mallory", uuid.New(), UpdateArticleParams{
		Title: "x", Body: "y", CategoryID: uuid.New(),
	})
	assert.ErrorIs(t, err, ErrArticleNotFound)
}

func TestUpdateArticleReleasesReplacedImage(t *testing.T) {
	f := newServiceFixture()

	oldImg := "blob-old"
	params := validParams()
	params.ImageStorageID = &oldImg
	created, err := f.svc.CreateArticle(context.Background(), "user|alice", params)
	require.NoError(t, err)

	newImg := "blob-new"
	_, err = f.svc.UpdateArticle(context.Background(), "user|alice", created.ID, UpdateArticleParams{
		Title: created.Title, Body: created.Body, CategoryID: created.CategoryID, ImageStorageID: &newImg,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"blob-old"}, f.blobs.deleted)

	view, err := f.svc.GetArticle(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, view.ImageStorageID)
	assert.Equal(t, "blob-new", *view.ImageStorageID)
}

func TestUpdateArticleKeepsImageWhenOmitted(t *testing.T) {
	f := newServiceFixture()

	img := "blob-keep"
	params := validParams()
	params.ImageStorageID = &img
	created, err := f.svc.CreateArticle(context.Background(), "user|alice", params)
	require.NoError(t, err)

	_, err = f.svc.UpdateArticle(context.Background(), "user|alice", created.ID, UpdateArticleParams{
		Title: "Edited", Body: created.Body, CategoryID: created.CategoryID,
	})
	require.NoError(t, err)
	assert.Empty(t, f.blobs.deleted)
}

func TestUpdateArticleSurvivesBlobDeleteFailure(t *testing.T) {
	f := newServiceFixture()

	oldImg := "blob-old"
	params := validParams()
	params.ImageStorageID = &oldImg
	created, err := f.svc.CreateArticle(context.Background(), "user|alice", params)
	require.NoError(t, err)

	f.blobs.deleteErr = errors.New("storage unavailable")
	newImg := "blob-new"
	updated, err := f.svc.UpdateArticle(context.Background(), "user|alice", created.ID, UpdateArticleParams{
		Title: created.Title, Body: created.Body, CategoryID: created.CategoryID, ImageStorageID: &newImg,
	})
	require.NoError(t, err)
	assert.Equal(t, "blob-new", *updated.ImageStorageID)
}

func TestDeleteArticleOnlyAuthor(t *testing.T) {
	f := newServiceFixture()

	img := "blob-del"
	params := validParams()
	params.ImageStorageID = &img
	created, err := f.svc.CreateArticle(context.Background(), "user|alice", params)
	require.NoError(t, err)

	err = f.svc.DeleteArticle(context.Background(), "user|mallory", created.ID)
	assert.ErrorIs(t, err, ErrNotArticleAuthor)

	err = f.svc.DeleteArticle(context.Background(), "user|alice", created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"blob-del"}, f.blobs.deleted)

	_, err = f.svc.GetArticle(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrArticleNotFound)
}

func TestDeleteArticleNotFound(t *testing.T) {
	f := newServiceFixture()

	err := f.svc.DeleteArticle(context.Background(), "user|alice", uuid.New())
	assert.ErrorIs(t, err, ErrArticleNotFound)
}

func TestDeleteArticleRequiresAuthentication(t *testing.T) {
	f := newServiceFixture()

	err := f.svc.DeleteArticle(context.Background(), "", uuid.New())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestListArticlesNewestFirst(t *testing.T) {
	f := newServiceFixture()

	first, err := f.svc.CreateArticle(context.Background(), "user|alice", validParams())
	require.NoError(t, err)
	second, err := f.svc.CreateArticle(context.Background(), "user|alice", validParams())
	require.NoError(t, err)
	third, err := f.svc.CreateArticle(context.Background(), "user|alice", validParams())
	require.NoError(t, err)

	// Force distinct creation times regardless of clock granularity.
	f.repo.articles[second.ID].CreatedAt = first.CreatedAt.Add(time.Second)
	f.repo.articles[third.ID].CreatedAt = first.CreatedAt.Add(2 * time.Second)

	listed, err := f.svc.ListArticles(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, third.ID, listed[0].ID)
	assert.Equal(t, second.ID, listed[1].ID)
	assert.Equal(t, first.ID, listed[2].ID)
}

func TestListArticlesByTopicMatchesSoleTopicOnly(t *testing.T) {
	f := newServiceFixture()

	topicID := uuid.New()
	otherTopic := uuid.New()

	single := validParams()
	single.TopicIDs = []uuid.UUID{topicID}
	created, err := f.svc.CreateArticle(context.Background(), "user|alice", single)
	require.NoError(t, err)

	multi := validParams()
	multi.TopicIDs = []uuid.UUID{topicID, otherTopic}
	_, err = f.svc.CreateArticle(context.Background(), "user|alice", multi)
	require.NoError(t, err)

	matched, err := f.svc.ListArticlesByTopic(context.Background(), topicID)
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, created.ID, matched[0].ID)
}

func TestGenerateUploadURLRequiresAuthentication(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.GenerateUploadURL(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	ticket, err := f.svc.GenerateUploadURL(context.Background(), "user|alice")
	require.NoError(t, err)
	assert.NotEmpty(t, ticket.StorageID)
	assert.NotEmpty(t, ticket.URL)
}
