package application

import (
	"context"
	"time"

	"github.com/quillhq/newsdesk/internal/articles/ports"
	"github.com/quillhq/newsdesk/internal/platform/logger"
)

// SweeperConfig tunes the orphan blob sweep.
type SweeperConfig struct {
	// Interval between sweep passes.
	Interval time.Duration
	// GracePeriod protects freshly uploaded blobs that have not yet been
	// referenced by an article create/update.
	GracePeriod time.Duration
}

// Sweeper periodically deletes stored blobs that no article references.
// The two-phase upload strands a blob whenever a client uploads but never
// submits the article; the sweep is the collector for those.
type Sweeper struct {
	repo   ports.ArticleRepository
	blobs  ports.BlobStore
	cfg    SweeperConfig
	logger logger.Logger
}

// NewSweeper creates an orphan blob sweeper
func NewSweeper(repo ports.ArticleRepository, blobs ports.BlobStore, cfg SweeperConfig, logger logger.Logger) *Sweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.GracePeriod <= 0 {
		cfg.GracePeriod = time.Hour
	}
	return &Sweeper{repo: repo, blobs: blobs, cfg: cfg, logger: logger}
}

// Run sweeps on the configured interval until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				s.logger.Error(ctx, "orphan blob sweep failed", "error", err)
			}
		}
	}
}

// SweepOnce performs a single sweep pass and returns how many orphans it
// deleted. Referenced blobs and blobs younger than the grace period survive.
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	refs, err := s.repo.ListImageRefs(ctx)
	if err != nil {
		return 0, err
	}
	referenced := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		referenced[ref] = struct{}{}
	}

	blobs, err := s.blobs.List(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-s.cfg.GracePeriod)
	deleted := 0
	for _, blob := range blobs {
		if _, ok := referenced[blob.StorageID]; ok {
			continue
		}
		if blob.LastModified.After(cutoff) {
			continue
		}
		if err := s.blobs.Delete(ctx, blob.StorageID); err != nil {
			s.logger.Warn(ctx, "failed to delete orphan blob", "error", err, "storageID", blob.StorageID)
			continue
		}
		deleted++
	}

	if deleted > 0 {
		s.logger.Info(ctx, "orphan blob sweep complete", "deleted", deleted, "scanned", len(blobs))
	}
	return deleted, nil
}
