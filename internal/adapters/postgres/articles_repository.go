package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quillhq/newsdesk/internal/articles/domain"
	"github.com/quillhq/newsdesk/internal/articles/ports"
	"github.com/quillhq/newsdesk/internal/platform/postgres"
)

// ArticleRepository implements the articles.ArticleRepository interface
// using PostgreSQL. Topic links live in article_topics and are replaced
// wholesale inside a transaction on every write.
type ArticleRepository struct {
	postgres.BaseRepository
	txm postgres.TransactionManager
}

// NewArticleRepository creates a new PostgreSQL articles repository
func NewArticleRepository(db *pgxpool.Pool, txm postgres.TransactionManager) *ArticleRepository {
	return &ArticleRepository{
		BaseRepository: postgres.NewBaseRepository(db),
		txm:            txm,
	}
}

// Create inserts a new article and its topic links
func (r *ArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	tx, err := r.txm.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("ArticleRepository.Create: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	querier := tx.Tx()

	query, args, err := r.SB.
		Insert("articles").
		Columns("id", "title", "body", "category_id", "author_id", "image_storage_id", "created_at").
		Values(
			pgtype.UUID{Bytes: article.ID, Valid: true},
			article.Title,
			article.Body,
			pgtype.UUID{Bytes: article.CategoryID, Valid: true},
			textOrNull(article.AuthorID),
			textPtr(article.ImageStorageID),
			pgtype.Timestamptz{Time: article.CreatedAt, Valid: true},
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("ArticleRepository.Create: build query: %w", err)
	}

	if _, err := querier.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("ArticleRepository.Create: %w", err)
	}

	if err := r.insertTopicLinks(ctx, querier, article.ID, article.TopicIDs); err != nil {
		return fmt.Errorf("ArticleRepository.Create: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ArticleRepository.Create: commit: %w", err)
	}
	return nil
}

// Update overwrites the article row and replaces its topic links
func (r *ArticleRepository) Update(ctx context.Context, article *domain.Article) error {
	tx, err := r.txm.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("ArticleRepository.Update: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	querier := tx.Tx()

	query, args, err := r.SB.
		Update("articles").
		Set("title", article.Title).
		Set("body", article.Body).
		Set("category_id", pgtype.UUID{Bytes: article.CategoryID, Valid: true}).
		Set("image_storage_id", textPtr(article.ImageStorageID)).
		Where(sq.Eq{"id": pgtype.UUID{Bytes: article.ID, Valid: true}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ArticleRepository.Update: build query: %w", err)
	}

	result, err := querier.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ArticleRepository.Update: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ports.ErrArticleNotFound
	}

	deleteQuery, deleteArgs, err := r.SB.
		Delete("article_topics").
		Where(sq.Eq{"article_id": pgtype.UUID{Bytes: article.ID, Valid: true}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ArticleRepository.Update: build query: %w", err)
	}
	if _, err := querier.Exec(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("ArticleRepository.Update: clear topic links: %w", err)
	}

	if err := r.insertTopicLinks(ctx, querier, article.ID, article.TopicIDs); err != nil {
		return fmt.Errorf("ArticleRepository.Update: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ArticleRepository.Update: commit: %w", err)
	}
	return nil
}

// Delete removes the article; its topic links go with it via ON DELETE CASCADE
func (r *ArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := r.SB.
		Delete("articles").
		Where(sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ArticleRepository.Delete: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ArticleRepository.Delete: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ports.ErrArticleNotFound
	}
	return nil
}

// FindByID retrieves a full article by its ID
func (r *ArticleRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	query, args, err := r.articleSelect().
		Where(sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ArticleRepository.FindByID: build query: %w", err)
	}

	row := r.DB.QueryRow(ctx, query, args...)
	article, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrArticleNotFound
		}
		return nil, fmt.Errorf("ArticleRepository.FindByID: %w", err)
	}

	topicIDs, err := r.loadTopicLinks(ctx, article.ID)
	if err != nil {
		return nil, fmt.Errorf("ArticleRepository.FindByID: %w", err)
	}
	article.TopicIDs = topicIDs

	return article, nil
}

// ListAll returns every article, newest first
func (r *ArticleRepository) ListAll(ctx context.Context) ([]*domain.Article, error) {
	return r.list(ctx, r.articleSelect().OrderBy("created_at DESC"), "ListAll")
}

// ListByCategory returns articles filed under the exact category, newest first
func (r *ArticleRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*domain.Article, error) {
	qb := r.articleSelect().
		Where(sq.Eq{"category_id": pgtype.UUID{Bytes: categoryID, Valid: true}}).
		OrderBy("created_at DESC")
	return r.list(ctx, qb, "ListByCategory")
}

// ListBySoleTopic returns articles linked to exactly the one given topic
func (r *ArticleRepository) ListBySoleTopic(ctx context.Context, topicID uuid.UUID) ([]*domain.Article, error) {
	qb := r.articleSelect().
		Where(`id IN (
			SELECT article_id FROM article_topics
			GROUP BY article_id
			HAVING COUNT(*) = 1 AND bool_and(topic_id = ?)
		)`, pgtype.UUID{Bytes: topicID, Valid: true}).
		OrderBy("created_at DESC")
	return r.list(ctx, qb, "ListBySoleTopic")
}

// GetArticleAuthor retrieves just the author subject (for ownership checks)
func (r *ArticleRepository) GetArticleAuthor(ctx context.Context, id uuid.UUID) (string, error) {
	query, args, err := r.SB.
		Select("author_id").
		From("articles").
		Where(sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("ArticleRepository.GetArticleAuthor: build query: %w", err)
	}

	var author pgtype.Text
	if err := r.DB.QueryRow(ctx, query, args...).Scan(&author); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ports.ErrArticleNotFound
		}
		return "", fmt.Errorf("ArticleRepository.GetArticleAuthor: %w", err)
	}

	return author.String, nil
}

// ListImageRefs returns every blob reference currently held by an article
func (r *ArticleRepository) ListImageRefs(ctx context.Context) ([]string, error) {
	query, args, err := r.SB.
		Select("image_storage_id").
		From("articles").
		Where("image_storage_id IS NOT NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ArticleRepository.ListImageRefs: build query: %w", err)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ArticleRepository.ListImageRefs: %w", err)
	}
	defer rows.Close()

	var refs []string
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, fmt.Errorf("ArticleRepository.ListImageRefs: scan: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ArticleRepository.ListImageRefs: rows error: %w", err)
	}

	return refs, nil
}

// Helper methods

func (r *ArticleRepository) articleSelect() sq.SelectBuilder {
	return r.SB.
		Select("id", "title", "body", "category_id", "author_id", "image_storage_id", "created_at").
		From("articles")
}

// list runs a select and attaches topic links to every scanned article.
func (r *ArticleRepository) list(ctx context.Context, qb sq.SelectBuilder, op string) ([]*domain.Article, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ArticleRepository.%s: build query: %w", op, err)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ArticleRepository.%s: %w", op, err)
	}
	defer rows.Close()

	var articles []*domain.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("ArticleRepository.%s: %w", op, err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ArticleRepository.%s: rows error: %w", op, err)
	}

	if err := r.attachTopicLinks(ctx, articles); err != nil {
		return nil, fmt.Errorf("ArticleRepository.%s: %w", op, err)
	}

	return articles, nil
}

func (r *ArticleRepository) insertTopicLinks(ctx context.Context, querier postgres.Querier, articleID uuid.UUID, topicIDs []uuid.UUID) error {
	if len(topicIDs) == 0 {
		return nil
	}

	qb := r.SB.Insert("article_topics").Columns("article_id", "topic_id", "position")
	for i, topicID := range topicIDs {
		qb = qb.Values(
			pgtype.UUID{Bytes: articleID, Valid: true},
			pgtype.UUID{Bytes: topicID, Valid: true},
			i,
		)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return fmt.Errorf("build topic links query: %w", err)
	}
	if _, err := querier.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert topic links: %w", err)
	}
	return nil
}

func (r *ArticleRepository) loadTopicLinks(ctx context.Context, articleID uuid.UUID) ([]uuid.UUID, error) {
	query, args, err := r.SB.
		Select("topic_id").
		From("article_topics").
		Where(sq.Eq{"article_id": pgtype.UUID{Bytes: articleID, Valid: true}}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build topic links query: %w", err)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load topic links: %w", err)
	}
	defer rows.Close()

	var topicIDs []uuid.UUID
	for rows.Next() {
		var topicID pgtype.UUID
		if err := rows.Scan(&topicID); err != nil {
			return nil, fmt.Errorf("scan topic link: %w", err)
		}
		topicIDs = append(topicIDs, uuid.UUID(topicID.Bytes))
	}
	return topicIDs, rows.Err()
}

// attachTopicLinks loads topic links for a batch of articles in one query.
func (r *ArticleRepository) attachTopicLinks(ctx context.Context, articles []*domain.Article) error {
	if len(articles) == 0 {
		return nil
	}

	ids := make([]pgtype.UUID, 0, len(articles))
	byID := make(map[uuid.UUID]*domain.Article, len(articles))
	for _, article := range articles {
		ids = append(ids, pgtype.UUID{Bytes: article.ID, Valid: true})
		byID[article.ID] = article
	}

	query, args, err := r.SB.
		Select("article_id", "topic_id").
		From("article_topics").
		Where(sq.Eq{"article_id": ids}).
		OrderBy("article_id", "position").
		ToSql()
	if err != nil {
		return fmt.Errorf("build topic links query: %w", err)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("load topic links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var articleID, topicID pgtype.UUID
		if err := rows.Scan(&articleID, &topicID); err != nil {
			return fmt.Errorf("scan topic link: %w", err)
		}
		if article, ok := byID[uuid.UUID(articleID.Bytes)]; ok {
			article.TopicIDs = append(article.TopicIDs, uuid.UUID(topicID.Bytes))
		}
	}
	return rows.Err()
}

// scanArticle scans a single article from pgx.Row or pgx.Rows
func scanArticle(row pgx.Row) (*domain.Article, error) {
	var article domain.Article
	var idBytes, categoryIDBytes pgtype.UUID
	var author, imageStorageID pgtype.Text

	err := row.Scan(
		&idBytes,
		&article.Title,
		&article.Body,
		&categoryIDBytes,
		&author,
		&imageStorageID,
		&article.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	article.ID = uuid.UUID(idBytes.Bytes)
	if categoryIDBytes.Valid {
		article.CategoryID = uuid.UUID(categoryIDBytes.Bytes)
	}
	article.AuthorID = author.String
	if imageStorageID.Valid {
		s := imageStorageID.String
		article.ImageStorageID = &s
	}

	return &article, nil
}

// textOrNull maps an empty string to SQL NULL.
func textOrNull(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

// textPtr maps a nil pointer to SQL NULL.
func textPtr(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

// Compile-time check to ensure ArticleRepository implements ports.ArticleRepository
var _ ports.ArticleRepository = (*ArticleRepository)(nil)
