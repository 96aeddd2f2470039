package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/quillhq/newsdesk/internal/platform/eventbus"
)

// Event topics for articles
const (
	ArticleCreatedTopic eventbus.Topic = "articles.created"
	ArticleUpdatedTopic eventbus.Topic = "articles.updated"
	ArticleDeletedTopic eventbus.Topic = "articles.deleted"
)

// ArticleCreatedEvent is published when a new article is created
type ArticleCreatedEvent struct {
	ArticleID  uuid.UUID
	AuthorID   string // External subject of the author
	Title      string
	CategoryID uuid.UUID
	OccurredAt time.Time
}

// ArticleUpdatedEvent is published when an article is updated
type ArticleUpdatedEvent struct {
	ArticleID  uuid.UUID
	AuthorID   string
	Title      string
	OccurredAt time.Time
}

// ArticleDeletedEvent is published when an article is deleted.
// ImageStorageID carries the blob reference that was released (if any) so
// consumers can verify cleanup.
type ArticleDeletedEvent struct {
	ArticleID      uuid.UUID
	AuthorID       string
	ImageStorageID *string
	OccurredAt     time.Time
}
