package pages

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// PageRepository abstracts durable storage for memory pages. Implementations
// must be safe for concurrent use; read-then-write sequences are not
// serialized beyond single statements.
type PageRepository interface {
	Create(ctx context.Context, record *MemoryPage) (*MemoryPage, error)
	GetBySlug(ctx context.Context, slug string) (*MemoryPage, error)
	List(ctx context.Context) ([]*MemoryPage, error)
	Update(ctx context.Context, record *MemoryPage) (*MemoryPage, error)
	Delete(ctx context.Context, record *MemoryPage) error
	ExistsSlug(ctx context.Context, slug string) (bool, error)
}

// NewMemoryPageModelRepository wires the bun model handlers for MemoryPage.
func NewMemoryPageModelRepository(db *bun.DB) repository.Repository[*MemoryPage] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*MemoryPage]{
		NewRecord: func() *MemoryPage { return &MemoryPage{} },
		GetID: func(p *MemoryPage) uuid.UUID {
			return p.ID
		},
		SetID: func(p *MemoryPage, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(p *MemoryPage) string {
			return p.Slug
		},
	})
}
