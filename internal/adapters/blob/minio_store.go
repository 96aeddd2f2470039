package blob

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/quillhq/newsdesk/internal/articles/ports"
)

// Config holds the settings for the S3-compatible blob store.
type Config struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	Bucket       string
	Region       string
	Secure       bool
	UploadExpiry time.Duration
	ReadExpiry   time.Duration
}

// MinioStore implements the articles BlobStore port against S3 or any
// compatible service (R2, Backblaze, MinIO). Objects are keyed by random
// UUID; the key doubles as the storage ID articles reference.
type MinioStore struct {
	client       *minio.Client
	bucket       string
	uploadExpiry time.Duration
	readExpiry   time.Duration
}

// NewMinioStore creates the blob store and verifies the bucket is reachable.
func NewMinioStore(cfg Config) (*MinioStore, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if parsed, err := url.Parse(endpoint); err == nil && parsed.Host != "" {
		endpoint = parsed.Host
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create blob store client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to verify bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q does not exist or is not accessible", cfg.Bucket)
	}

	uploadExpiry := cfg.UploadExpiry
	if uploadExpiry <= 0 {
		uploadExpiry = 15 * time.Minute
	}
	readExpiry := cfg.ReadExpiry
	if readExpiry <= 0 {
		readExpiry = time.Hour
	}

	return &MinioStore{
		client:       client,
		bucket:       cfg.Bucket,
		uploadExpiry: uploadExpiry,
		readExpiry:   readExpiry,
	}, nil
}

// GenerateUploadURL issues a presigned PUT URL under a fresh storage ID.
func (s *MinioStore) GenerateUploadURL(ctx context.Context) (ports.UploadTicket, error) {
	storageID := uuid.NewString()

	presigned, err := s.client.PresignedPutObject(ctx, s.bucket, storageID, s.uploadExpiry)
	if err != nil {
		return ports.UploadTicket{}, fmt.Errorf("failed to presign upload: %w", err)
	}

	return ports.UploadTicket{
		StorageID: storageID,
		URL:       presigned.String(),
		ExpiresAt: time.Now().Add(s.uploadExpiry),
	}, nil
}

// ResolveURL turns a storage ID into a presigned GET URL.
func (s *MinioStore) ResolveURL(ctx context.Context, storageID string) (string, error) {
	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, storageID, s.readExpiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign read for %q: %w", storageID, err)
	}
	return presigned.String(), nil
}

// Delete removes a stored object. Removing a missing object is not an error.
func (s *MinioStore) Delete(ctx context.Context, storageID string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, storageID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete %q: %w", storageID, err)
	}
	return nil
}

// List enumerates all stored objects for the orphan sweep.
func (s *MinioStore) List(ctx context.Context) ([]ports.BlobInfo, error) {
	var blobs []ports.BlobInfo
	for object := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{}) {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", object.Err)
		}
		blobs = append(blobs, ports.BlobInfo{
			StorageID:    object.Key,
			LastModified: object.LastModified,
		})
	}
	return blobs, nil
}

// Compile-time check
var _ ports.BlobStore = (*MinioStore)(nil)
