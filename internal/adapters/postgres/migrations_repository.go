package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quillhq/newsdesk/internal/migrations"
	"github.com/quillhq/newsdesk/internal/platform/postgres"
)

// ArticlePatcher implements the narrow reads and conditional writes the data
// repair jobs run on the articles table.
type ArticlePatcher struct {
	postgres.BaseRepository
}

// NewArticlePatcher creates a new PostgreSQL article patcher
func NewArticlePatcher(db *pgxpool.Pool) *ArticlePatcher {
	return &ArticlePatcher{
		BaseRepository: postgres.NewBaseRepository(db),
	}
}

// ListMissingAuthors returns IDs of articles with no author recorded
func (p *ArticlePatcher) ListMissingAuthors(ctx context.Context) ([]uuid.UUID, error) {
	query, args, err := p.SB.
		Select("id").
		From("articles").
		Where("author_id IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ArticlePatcher.ListMissingAuthors: build query: %w", err)
	}

	rows, err := p.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ArticlePatcher.ListMissingAuthors: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var idBytes pgtype.UUID
		if err := rows.Scan(&idBytes); err != nil {
			return nil, fmt.Errorf("ArticlePatcher.ListMissingAuthors: scan: %w", err)
		}
		ids = append(ids, uuid.UUID(idBytes.Bytes))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ArticlePatcher.ListMissingAuthors: rows error: %w", err)
	}
	return ids, nil
}

// SetAuthorIfMissing stamps the author only when none is recorded yet. The
// guard in the WHERE clause is what makes the backfill idempotent.
func (p *ArticlePatcher) SetAuthorIfMissing(ctx context.Context, id uuid.UUID, author string) (bool, error) {
	query, args, err := p.SB.
		Update("articles").
		Set("author_id", author).
		Where(sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}}).
		Where("author_id IS NULL").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("ArticlePatcher.SetAuthorIfMissing: build query: %w", err)
	}

	result, err := p.DB.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("ArticlePatcher.SetAuthorIfMissing: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// ListLegacyCategories returns articles still carrying a free-text category name
func (p *ArticlePatcher) ListLegacyCategories(ctx context.Context) ([]migrations.LegacyCategoryRow, error) {
	query, args, err := p.SB.
		Select("id", "legacy_category").
		From("articles").
		Where("legacy_category IS NOT NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ArticlePatcher.ListLegacyCategories: build query: %w", err)
	}

	rows, err := p.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ArticlePatcher.ListLegacyCategories: %w", err)
	}
	defer rows.Close()

	var out []migrations.LegacyCategoryRow
	for rows.Next() {
		var idBytes pgtype.UUID
		var name string
		if err := rows.Scan(&idBytes, &name); err != nil {
			return nil, fmt.Errorf("ArticlePatcher.ListLegacyCategories: scan: %w", err)
		}
		out = append(out, migrations.LegacyCategoryRow{
			ArticleID: uuid.UUID(idBytes.Bytes),
			Name:      name,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ArticlePatcher.ListLegacyCategories: rows error: %w", err)
	}
	return out, nil
}

// AssignCategory points the article at the category record and clears the
// legacy free-text name in the same statement.
func (p *ArticlePatcher) AssignCategory(ctx context.Context, articleID, categoryID uuid.UUID) error {
	query, args, err := p.SB.
		Update("articles").
		Set("category_id", pgtype.UUID{Bytes: categoryID, Valid: true}).
		Set("legacy_category", nil).
		Where(sq.Eq{"id": pgtype.UUID{Bytes: articleID, Valid: true}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ArticlePatcher.AssignCategory: build query: %w", err)
	}

	if _, err := p.DB.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("ArticlePatcher.AssignCategory: %w", err)
	}
	return nil
}

// Compile-time check
var _ migrations.ArticlePatcher = (*ArticlePatcher)(nil)
