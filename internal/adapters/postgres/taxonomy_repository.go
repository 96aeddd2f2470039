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
	"github.com/quillhq/newsdesk/internal/platform/postgres"
	"github.com/quillhq/newsdesk/internal/taxonomy/domain"
	"github.com/quillhq/newsdesk/internal/taxonomy/ports"
)

// CategoryRepository implements the taxonomy.CategoryRepository interface
// using PostgreSQL.
type CategoryRepository struct {
	postgres.BaseRepository
}

// NewCategoryRepository creates a new PostgreSQL category repository
func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{
		BaseRepository: postgres.NewBaseRepository(db),
	}
}

// Create inserts a new category
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query, args, err := r.SB.
		Insert("categories").
		Columns("id", "name", "slug", "created_at").
		Values(
			pgtype.UUID{Bytes: category.ID, Valid: true},
			category.Name,
			category.Slug,
			pgtype.Timestamptz{Time: category.CreatedAt, Valid: true},
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("CategoryRepository.Create: build query: %w", err)
	}

	if _, err := r.DB.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("CategoryRepository.Create: %w", err)
	}
	return nil
}

// FindByID retrieves a category by its ID
func (r *CategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	return r.findOne(ctx, sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}}, "FindByID")
}

// FindBySlug retrieves a category by its slug. Slugs are conventionally
// unique; should duplicates exist the newest wins.
func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return r.findOne(ctx, sq.Eq{"slug": slug}, "FindBySlug")
}

// FindByNameFold matches by case-insensitive name
func (r *CategoryRepository) FindByNameFold(ctx context.Context, name string) (*domain.Category, error) {
	return r.findOne(ctx, sq.Expr("LOWER(name) = LOWER(?)", name), "FindByNameFold")
}

// ListAll returns all categories ordered by name
func (r *CategoryRepository) ListAll(ctx context.Context) ([]*domain.Category, error) {
	query, args, err := r.categorySelect().OrderBy("name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("CategoryRepository.ListAll: build query: %w", err)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("CategoryRepository.ListAll: %w", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("CategoryRepository.ListAll: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("CategoryRepository.ListAll: rows error: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) categorySelect() sq.SelectBuilder {
	return r.SB.Select("id", "name", "slug", "created_at").From("categories")
}

func (r *CategoryRepository) findOne(ctx context.Context, pred any, op string) (*domain.Category, error) {
	query, args, err := r.categorySelect().
		Where(pred).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("CategoryRepository.%s: build query: %w", op, err)
	}

	row := r.DB.QueryRow(ctx, query, args...)
	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("CategoryRepository.%s: %w", op, err)
	}
	return category, nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var category domain.Category
	var idBytes pgtype.UUID

	if err := row.Scan(&idBytes, &category.Name, &category.Slug, &category.CreatedAt); err != nil {
		return nil, err
	}
	category.ID = uuid.UUID(idBytes.Bytes)
	return &category, nil
}

// TopicRepository implements the taxonomy.TopicRepository interface using
// PostgreSQL.
type TopicRepository struct {
	postgres.BaseRepository
}

// NewTopicRepository creates a new PostgreSQL topic repository
func NewTopicRepository(db *pgxpool.Pool) *TopicRepository {
	return &TopicRepository{
		BaseRepository: postgres.NewBaseRepository(db),
	}
}

// Create inserts a new topic
func (r *TopicRepository) Create(ctx context.Context, topic *domain.Topic) error {
	query, args, err := r.SB.
		Insert("topics").
		Columns("id", "name", "slug", "created_at").
		Values(
			pgtype.UUID{Bytes: topic.ID, Valid: true},
			topic.Name,
			topic.Slug,
			pgtype.Timestamptz{Time: topic.CreatedAt, Valid: true},
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("TopicRepository.Create: build query: %w", err)
	}

	if _, err := r.DB.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("TopicRepository.Create: %w", err)
	}
	return nil
}

// FindByID retrieves a topic by its ID
func (r *TopicRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Topic, error) {
	return r.findOne(ctx, sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}}, "FindByID")
}

// FindByName matches by exact name
func (r *TopicRepository) FindByName(ctx context.Context, name string) (*domain.Topic, error) {
	return r.findOne(ctx, sq.Eq{"name": name}, "FindByName")
}

// FindBySlug retrieves a topic by its slug
func (r *TopicRepository) FindBySlug(ctx context.Context, slug string) (*domain.Topic, error) {
	return r.findOne(ctx, sq.Eq{"slug": slug}, "FindBySlug")
}

// FindByIDs resolves the given IDs, silently dropping unresolvable ones.
// Result order follows the input order.
func (r *TopicRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Topic, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	pgIDs := make([]pgtype.UUID, 0, len(ids))
	for _, id := range ids {
		pgIDs = append(pgIDs, pgtype.UUID{Bytes: id, Valid: true})
	}

	query, args, err := r.topicSelect().Where(sq.Eq{"id": pgIDs}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("TopicRepository.FindByIDs: build query: %w", err)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("TopicRepository.FindByIDs: %w", err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]*domain.Topic, len(ids))
	for rows.Next() {
		topic, err := scanTopic(rows)
		if err != nil {
			return nil, fmt.Errorf("TopicRepository.FindByIDs: %w", err)
		}
		byID[topic.ID] = topic
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("TopicRepository.FindByIDs: rows error: %w", err)
	}

	topics := make([]*domain.Topic, 0, len(byID))
	for _, id := range ids {
		if topic, ok := byID[id]; ok {
			topics = append(topics, topic)
		}
	}
	return topics, nil
}

// ListAll returns all topics ordered by name
func (r *TopicRepository) ListAll(ctx context.Context) ([]*domain.Topic, error) {
	query, args, err := r.topicSelect().OrderBy("name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("TopicRepository.ListAll: build query: %w", err)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("TopicRepository.ListAll: %w", err)
	}
	defer rows.Close()

	var topics []*domain.Topic
	for rows.Next() {
		topic, err := scanTopic(rows)
		if err != nil {
			return nil, fmt.Errorf("TopicRepository.ListAll: %w", err)
		}
		topics = append(topics, topic)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("TopicRepository.ListAll: rows error: %w", err)
	}
	return topics, nil
}

func (r *TopicRepository) topicSelect() sq.SelectBuilder {
	return r.SB.Select("id", "name", "slug", "created_at").From("topics")
}

func (r *TopicRepository) findOne(ctx context.Context, pred any, op string) (*domain.Topic, error) {
	query, args, err := r.topicSelect().Where(pred).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("TopicRepository.%s: build query: %w", op, err)
	}

	row := r.DB.QueryRow(ctx, query, args...)
	topic, err := scanTopic(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrTopicNotFound
		}
		return nil, fmt.Errorf("TopicRepository.%s: %w", op, err)
	}
	return topic, nil
}

func scanTopic(row pgx.Row) (*domain.Topic, error) {
	var topic domain.Topic
	var idBytes pgtype.UUID

	if err := row.Scan(&idBytes, &topic.Name, &topic.Slug, &topic.CreatedAt); err != nil {
		return nil, err
	}
	topic.ID = uuid.UUID(idBytes.Bytes)
	return &topic, nil
}

// Compile-time checks
var (
	_ ports.CategoryRepository = (*CategoryRepository)(nil)
	_ ports.TopicRepository    = (*TopicRepository)(nil)
)
