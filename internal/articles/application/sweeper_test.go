package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhq/newsdesk/internal/articles/ports"
)

func TestSweepOnceDeletesUnreferencedBlobs(t *testing.T) {
	f := newServiceFixture()

	img := "blob-referenced"
	params := validParams()
	params.ImageStorageID = &img
	_, err := f.svc.CreateArticle(context.Background(), "user|alice", params)
	require.NoError(t, err)

	stale := time.Now().Add(-2 * time.Hour)
	f.blobs.blobs = []ports.BlobInfo{
		{StorageID: "blob-referenced", LastModified: stale},
		{StorageID: "blob-orphan", LastModified: stale},
	}

	sweeper := NewSweeper(f.repo, f.blobs, SweeperConfig{GracePeriod: time.Hour}, nopLogger{})
	deleted, err := sweeper.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
	assert.Equal(t, []string{"blob-orphan"}, f.blobs.deleted)
}

func TestSweepOnceSparesBlobsWithinGracePeriod(t *testing.T) {
	f := newServiceFixture()

	f.blobs.blobs = []ports.BlobInfo{
		{StorageID: "blob-fresh", LastModified: time.Now()},
	}

	sweeper := NewSweeper(f.repo, f.blobs, SweeperConfig{GracePeriod: time.Hour}, nopLogger{})
	deleted, err := sweeper.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, deleted)
	assert.Empty(t, f.blobs.deleted)
}
