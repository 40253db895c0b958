package pages

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// BunPageRepository persists memory pages through go-repository-bun.
type BunPageRepository struct {
	repo repository.Repository[*MemoryPage]
}

// NewBunPageRepository constructs a PageRepository backed by bun.
func NewBunPageRepository(db *bun.DB) *BunPageRepository {
	return &BunPageRepository{repo: NewMemoryPageModelRepository(db)}
}

func (r *BunPageRepository) Create(ctx context.Context, record *MemoryPage) (*MemoryPage, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("page repository create: %w", err)
	}
	return created, nil
}

func (r *BunPageRepository) GetBySlug(ctx context.Context, slug string) (*MemoryPage, error) {
	result, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, slug)
	}
	return result, nil
}

func (r *BunPageRepository) List(ctx context.Context) ([]*MemoryPage, error) {
	records, _, err := r.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("page repository list: %w", err)
	}
	return records, nil
}

func (r *BunPageRepository) Update(ctx context.Context, record *MemoryPage) (*MemoryPage, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"dedicated_text",
			"image_urls",
			"music_url",
			"target_date",
			"view_count",
			"is_synced",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, record.Slug)
	}
	return updated, nil
}

func (r *BunPageRepository) Delete(ctx context.Context, record *MemoryPage) error {
	if err := r.repo.Delete(ctx, record); err != nil {
		return mapRepositoryError(err, record.Slug)
	}
	return nil
}

func (r *BunPageRepository) ExistsSlug(ctx context.Context, slug string) (bool, error) {
	if _, err := r.repo.GetByIdentifier(ctx, slug); err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("page repository exists: %w", err)
	}
	return true, nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Slug: key}
	}
	return fmt.Errorf("page repository error: %w", err)
}

var _ PageRepository = (*BunPageRepository)(nil)
