package storage

import (
	"context"
	"io"
	"sync"
)

// StoredObject captures what a caller uploaded through the in-memory store.
type StoredObject struct {
	Key         string
	ContentType string
	Data        []byte
}

// InMemoryStore keeps uploads in a map. It backs tests and local runs that
// have no object storage endpoint available.
type InMemoryStore struct {
	mu      sync.RWMutex
	objects map[string]StoredObject
	order   []string

	baseURL string
	bucket  string
	putErr  error
}

type InMemoryStoreOption func(*InMemoryStore)

// WithPutError makes every Put call fail with the supplied error.
func WithPutError(err error) InMemoryStoreOption {
	return func(s *InMemoryStore) {
		s.putErr = err
	}
}

// WithPublicBase overrides the base URL and bucket used by PublicURL.
func WithPublicBase(baseURL, bucket string) InMemoryStoreOption {
	return func(s *InMemoryStore) {
		s.baseURL = baseURL
		s.bucket = bucket
	}
}

func NewInMemoryStore(opts ...InMemoryStoreOption) *InMemoryStore {
	s := &InMemoryStore{
		objects: make(map[string]StoredObject),
		baseURL: "http://localhost",
		bucket:  "memoria",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemoryStore) Put(ctx context.Context, key, contentType string, size int64, content io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.putErr != nil {
		return s.putErr
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[key]; !ok {
		s.order = append(s.order, key)
	}
	s.objects[key] = StoredObject{Key: key, ContentType: contentType, Data: data}
	return nil
}

func (s *InMemoryStore) PublicURL(key string) string {
	return publicObjectURL(s.baseURL, s.bucket, key)
}

// Object returns a stored object by key.
func (s *InMemoryStore) Object(key string) (StoredObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key]
	return obj, ok
}

// Keys lists stored keys in upload order.
func (s *InMemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, len(s.order))
	copy(keys, s.order)
	return keys
}

// Len reports how many objects the store holds.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.objects)
}

var _ ObjectStore = (*InMemoryStore)(nil)
