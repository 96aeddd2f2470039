package migrations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	taxonomyDomain "github.com/quillhq/newsdesk/internal/taxonomy/domain"
	taxonomyPorts "github.com/quillhq/newsdesk/internal/taxonomy/ports"
)

// MigrateCategoriesJob converts legacy free-text category names into
// first-class category records. Names are matched case-insensitively; a
// missing category is created with a slug derived from the name. Articles
// already converted carry no legacy name, so reruns find nothing to do.
type MigrateCategoriesJob struct {
	patcher    ArticlePatcher
	categories taxonomyPorts.CategoryRepository
}

// NewMigrateCategoriesJob creates the legacy category migration job
func NewMigrateCategoriesJob(patcher ArticlePatcher, categories taxonomyPorts.CategoryRepository) *MigrateCategoriesJob {
	return &MigrateCategoriesJob{patcher: patcher, categories: categories}
}

// Name identifies the job
func (j *MigrateCategoriesJob) Name() string {
	return "migrate_categories"
}

// Run converts every article still carrying a legacy category name.
func (j *MigrateCategoriesJob) Run(ctx context.Context) (Report, error) {
	rows, err := j.patcher.ListLegacyCategories(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list legacy categories: %w", err)
	}

	report := Report{Scanned: len(rows)}

	// Resolve each distinct name once per run.
	resolved := make(map[string]uuid.UUID)

	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}

		key := strings.ToLower(name)
		categoryID, ok := resolved[key]
		if !ok {
			categoryID, err = j.resolveCategory(ctx, name)
			if err != nil {
				return report, fmt.Errorf("failed to resolve category %q: %w", name, err)
			}
			resolved[key] = categoryID
		}

		if err := j.patcher.AssignCategory(ctx, row.ArticleID, categoryID); err != nil {
			return report, fmt.Errorf("failed to assign category to article %s: %w", row.ArticleID, err)
		}
		report.Patched++
	}

	return report, nil
}

func (j *MigrateCategoriesJob) resolveCategory(ctx context.Context, name string) (uuid.UUID, error) {
	existing, err := j.categories.FindByNameFold(ctx, name)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, taxonomyPorts.ErrCategoryNotFound) {
		return uuid.Nil, err
	}

	category, err := taxonomyDomain.NewCategory(name, "")
	if err != nil {
		return uuid.Nil, err
	}
	if err := j.categories.Create(ctx, category); err != nil {
		return uuid.Nil, err
	}
	return category.ID, nil
}
