package pages

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// InMemoryPageRepository is an in-memory page store for scaffolding/tests.
type InMemoryPageRepository struct {
	mu        sync.RWMutex
	pages     map[uuid.UUID]*MemoryPage
	slugIndex map[string]uuid.UUID
	order     []uuid.UUID
}

// NewInMemoryPageRepository constructs the repository.
func NewInMemoryPageRepository() *InMemoryPageRepository {
	return &InMemoryPageRepository{
		pages:     make(map[uuid.UUID]*MemoryPage),
		slugIndex: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied page.
func (m *InMemoryPageRepository) Create(_ context.Context, record *MemoryPage) (*MemoryPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := clonePage(record)
	m.pages[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	m.order = append(m.order, copied.ID)
	return clonePage(copied), nil
}

// GetBySlug retrieves a page by slug.
func (m *InMemoryPageRepository) GetBySlug(_ context.Context, slug string) (*MemoryPage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &NotFoundError{Slug: slug}
	}
	return clonePage(m.pages[id]), nil
}

// List returns every page in insertion order.
func (m *InMemoryPageRepository) List(_ context.Context) ([]*MemoryPage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*MemoryPage, 0, len(m.order))
	for _, id := range m.order {
		if record, ok := m.pages[id]; ok {
			out = append(out, clonePage(record))
		}
	}
	return out, nil
}

// Update persists changes for an existing page.
func (m *InMemoryPageRepository) Update(_ context.Context, record *MemoryPage) (*MemoryPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.pages[record.ID]
	if !ok {
		return nil, &NotFoundError{Slug: record.Slug}
	}
	copied := clonePage(record)
	copied.Slug = current.Slug
	copied.CreationDate = current.CreationDate
	m.pages[copied.ID] = copied
	return clonePage(copied), nil
}

// Delete removes a page.
func (m *InMemoryPageRepository) Delete(_ context.Context, record *MemoryPage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.pages[record.ID]
	if !ok {
		return &NotFoundError{Slug: record.Slug}
	}
	delete(m.pages, current.ID)
	delete(m.slugIndex, current.Slug)
	for i, id := range m.order {
		if id == current.ID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// ExistsSlug reports whether a slug is already taken.
func (m *InMemoryPageRepository) ExistsSlug(_ context.Context, slug string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.slugIndex[slug]
	return ok, nil
}

var _ PageRepository = (*InMemoryPageRepository)(nil)
