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
	"github.com/quillhq/newsdesk/internal/comments/domain"
	"github.com/quillhq/newsdesk/internal/comments/ports"
	"github.com/quillhq/newsdesk/internal/platform/postgres"
)

// CommentRepository implements the comments.CommentRepository interface
// using PostgreSQL. Every read filters out soft-deleted rows.
type CommentRepository struct {
	postgres.BaseRepository
}

// NewCommentRepository creates a new PostgreSQL comments repository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{
		BaseRepository: postgres.NewBaseRepository(db),
	}
}

// Create inserts a new comment
func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query, args, err := r.SB.
		Insert("comments").
		Columns("id", "article_id", "user_id", "username", "content", "created_at", "updated_at", "is_deleted").
		Values(
			pgtype.UUID{Bytes: comment.ID, Valid: true},
			pgtype.UUID{Bytes: comment.ArticleID, Valid: true},
			comment.UserID,
			comment.Username,
			comment.Content,
			pgtype.Timestamptz{Time: comment.CreatedAt, Valid: true},
			pgtype.Timestamptz{Time: comment.UpdatedAt, Valid: true},
			comment.IsDeleted,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("CommentRepository.Create: build query: %w", err)
	}

	if _, err := r.DB.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("CommentRepository.Create: %w", err)
	}
	return nil
}

// FindByID retrieves a live comment by its ID
func (r *CommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	query, args, err := r.commentSelect().
		Where(sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}}).
		Where(sq.Eq{"is_deleted": false}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("CommentRepository.FindByID: build query: %w", err)
	}

	row := r.DB.QueryRow(ctx, query, args...)
	comment, err := scanComment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrCommentNotFound
		}
		return nil, fmt.Errorf("CommentRepository.FindByID: %w", err)
	}
	return comment, nil
}

// Update overwrites the comment row, including the soft-delete flag
func (r *CommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	query, args, err := r.SB.
		Update("comments").
		Set("content", comment.Content).
		Set("updated_at", pgtype.Timestamptz{Time: comment.UpdatedAt, Valid: true}).
		Set("is_deleted", comment.IsDeleted).
		Where(sq.Eq{"id": pgtype.UUID{Bytes: comment.ID, Valid: true}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("CommentRepository.Update: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("CommentRepository.Update: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ports.ErrCommentNotFound
	}
	return nil
}

// ListByArticle returns live comments for an article, newest first
func (r *CommentRepository) ListByArticle(ctx context.Context, articleID uuid.UUID) ([]*domain.Comment, error) {
	qb := r.commentSelect().
		Where(sq.Eq{"article_id": pgtype.UUID{Bytes: articleID, Valid: true}}).
		Where(sq.Eq{"is_deleted": false}).
		OrderBy("created_at DESC")
	return r.list(ctx, qb, "ListByArticle")
}

// ListByUser returns live comments posted by the subject, newest first
func (r *CommentRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Comment, error) {
	qb := r.commentSelect().
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"is_deleted": false}).
		OrderBy("created_at DESC")
	return r.list(ctx, qb, "ListByUser")
}

// GetCommentAuthor retrieves just the commenter subject (for ownership checks)
func (r *CommentRepository) GetCommentAuthor(ctx context.Context, id uuid.UUID) (string, error) {
	query, args, err := r.SB.
		Select("user_id").
		From("comments").
		Where(sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}}).
		Where(sq.Eq{"is_deleted": false}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("CommentRepository.GetCommentAuthor: build query: %w", err)
	}

	var userID string
	if err := r.DB.QueryRow(ctx, query, args...).Scan(&userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ports.ErrCommentNotFound
		}
		return "", fmt.Errorf("CommentRepository.GetCommentAuthor: %w", err)
	}
	return userID, nil
}

// Helper methods

func (r *CommentRepository) commentSelect() sq.SelectBuilder {
	return r.SB.
		Select("id", "article_id", "user_id", "username", "content", "created_at", "updated_at", "is_deleted").
		From("comments")
}

func (r *CommentRepository) list(ctx context.Context, qb sq.SelectBuilder, op string) ([]*domain.Comment, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("CommentRepository.%s: build query: %w", op, err)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("CommentRepository.%s: %w", op, err)
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("CommentRepository.%s: %w", op, err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("CommentRepository.%s: rows error: %w", op, err)
	}
	return comments, nil
}

// scanComment scans a single comment from pgx.Row or pgx.Rows
func scanComment(row pgx.Row) (*domain.Comment, error) {
	var comment domain.Comment
	var idBytes, articleIDBytes pgtype.UUID

	err := row.Scan(
		&idBytes,
		&articleIDBytes,
		&comment.UserID,
		&comment.Username,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
		&comment.IsDeleted,
	)
	if err != nil {
		return nil, err
	}

	comment.ID = uuid.UUID(idBytes.Bytes)
	comment.ArticleID = uuid.UUID(articleIDBytes.Bytes)
	return &comment, nil
}

// Compile-time check to ensure CommentRepository implements ports.CommentRepository
var _ ports.CommentRepository = (*CommentRepository)(nil)
