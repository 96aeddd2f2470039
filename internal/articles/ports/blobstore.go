package ports

import (
	"context"
	"time"
)

// UploadTicket is the result of the first phase of the two-phase image
// upload: the client PUTs the image bytes to URL, then references StorageID
// from an article create/update.
type UploadTicket struct {
	StorageID string
	URL       string
	ExpiresAt time.Time
}

// BlobInfo describes a stored object, as needed by the orphan sweep.
type BlobInfo struct {
	StorageID    string
	LastModified time.Time
}

// BlobStore is the driven port for the external object storage holding
// article images. Implementations talk to S3-compatible services.
type BlobStore interface {
	// GenerateUploadURL issues a short-lived URL the client can PUT to,
	// together with the storage ID the object will live under.
	GenerateUploadURL(ctx context.Context) (UploadTicket, error)

	// ResolveURL turns a storage ID into a retrievable URL.
	ResolveURL(ctx context.Context, storageID string) (string, error)

	// Delete removes a stored object. Returns an error on failure; callers
	// on the article mutation path swallow and log it.
	Delete(ctx context.Context, storageID string) error

	// List enumerates all stored objects. Used by the orphan sweep.
	List(ctx context.Context) ([]BlobInfo, error)
}
