package pages

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/memoriasite/memoria/internal/logging"
	"github.com/memoriasite/memoria/internal/qr"
	"github.com/memoriasite/memoria/internal/storage"
	"github.com/memoriasite/memoria/pkg/interfaces"
)

// Service exposes the memory page use-cases.
type Service interface {
	Create(ctx context.Context, req CreatePageRequest) (*MemoryPage, error)
	GetBySlug(ctx context.Context, slug string) (*MemoryPage, error)
	List(ctx context.Context) ([]*MemoryPage, error)
	Update(ctx context.Context, slug string, req UpdatePageRequest) (*MemoryPage, error)
	Delete(ctx context.Context, slug string) error
	UploadImages(ctx context.Context, slug string, uploads []Upload) ([]string, error)
	AttachMusic(ctx context.Context, slug string, upload Upload) (string, error)
	GenerateQRCode(ctx context.Context, slug string) ([]byte, error)
}

// PageURLFunc resolves the public frontend address for a slug. QR codes
// embed the resolved URL.
type PageURLFunc func(slug string) (string, error)

const (
	defaultQRSize  = 250
	uploadTokenLen = 6

	imagePrefix = "images"
	musicPrefix = "music"
)

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records and object keys.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

type IDGenerator func() uuid.UUID

func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithServiceTokenSource overrides the random token source used for slug
// fallbacks and object key uniqueness, mainly for tests.
func WithServiceTokenSource(token TokenSource) ServiceOption {
	return func(s *service) {
		if token != nil {
			s.token = token
		}
	}
}

// WithQRSize sets the rendered QR code edge length in pixels.
func WithQRSize(size int) ServiceOption {
	return func(s *service) {
		if size > 0 {
			s.qrSize = size
		}
	}
}

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// service implements Service.
type service struct {
	repo    PageRepository
	store   storage.ObjectStore
	encoder qr.Encoder
	pageURL PageURLFunc

	now    func() time.Time
	id     IDGenerator
	token  TokenSource
	qrSize int
	logger interfaces.Logger
}

// NewService wires the page service with its collaborators.
func NewService(repo PageRepository, store storage.ObjectStore, encoder qr.Encoder, pageURL PageURLFunc, opts ...ServiceOption) Service {
	s := &service{
		repo:    repo,
		store:   store,
		encoder: encoder,
		pageURL: pageURL,
		now:     time.Now,
		id:      uuid.New,
		token:   randomToken,
		qrSize:  defaultQRSize,
		logger:  logging.NoOp(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create validates the request, derives a unique slug and persists the page.
func (s *service) Create(ctx context.Context, req CreatePageRequest) (*MemoryPage, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	generator := NewSlugGenerator(s.repo.ExistsSlug, WithTokenSource(s.token))
	slug, err := generator.Generate(ctx, slugBase(req))
	if err != nil {
		return nil, err
	}

	record := &MemoryPage{
		ID:            s.id(),
		Slug:          slug,
		DedicatedText: strings.TrimSpace(req.DedicatedText),
		ImageURLs:     append([]string(nil), req.ImageURLs...),
		MusicURL:      req.MusicURL,
		TargetDate:    req.TargetDate,
		CreationDate:  s.now().UTC(),
		ViewCount:     0,
		Synced:        false,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	s.logger.Info("memory page created", "slug", created.Slug, "id", created.ID.String())
	return created, nil
}

// GetBySlug fetches a page and records the visit: every successful read
// increments the persisted view counter before returning.
func (s *service) GetBySlug(ctx context.Context, slug string) (*MemoryPage, error) {
	record, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	record.ViewCount++
	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// List returns every page.
func (s *service) List(ctx context.Context) ([]*MemoryPage, error) {
	return s.repo.List(ctx)
}

// Update applies the non-nil fields of the request to an existing page. The
// slug, id, creation date and view counter never change through this path.
func (s *service) Update(ctx context.Context, slug string, req UpdatePageRequest) (*MemoryPage, error) {
	if err := validateUpdate(req); err != nil {
		return nil, err
	}

	record, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if req.DedicatedText != nil {
		record.DedicatedText = strings.TrimSpace(*req.DedicatedText)
	}
	if req.ImageURLs != nil {
		record.ImageURLs = append([]string(nil), req.ImageURLs...)
	}
	if req.MusicURL != nil {
		if strings.TrimSpace(*req.MusicURL) == "" {
			record.MusicURL = nil
		} else {
			record.MusicURL = req.MusicURL
		}
	}
	if req.TargetDate != nil {
		record.TargetDate = req.TargetDate
	}
	record.Synced = false

	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		return nil, err
	}

	s.logger.Info("memory page updated", "slug", updated.Slug)
	return updated, nil
}

// Delete removes the page for the given slug.
func (s *service) Delete(ctx context.Context, slug string) error {
	record, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, record); err != nil {
		return err
	}

	s.logger.Info("memory page deleted", "slug", slug)
	return nil
}

// UploadImages streams the files to object storage and appends their public
// URLs to the page, returning the freshly added URLs. The combined image count
// must stay within MaxImages.
func (s *service) UploadImages(ctx context.Context, slug string, uploads []Upload) ([]string, error) {
	if len(uploads) == 0 {
		return nil, ErrNoFilesProvided
	}

	record, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	pending := uploads[:0:0]
	for _, upload := range uploads {
		if upload.Content == nil || upload.Size == 0 {
			continue
		}
		pending = append(pending, upload)
	}
	if len(pending) == 0 {
		return nil, ErrNoFilesProvided
	}

	if len(record.ImageURLs)+len(pending) > MaxImages {
		return nil, &ValidationError{Fields: map[string]string{
			"files": fmt.Sprintf("page already holds %d images; at most %d allowed", len(record.ImageURLs), MaxImages),
		}}
	}

	urls := make([]string, 0, len(pending))
	for _, upload := range pending {
		url, err := s.storeUpload(ctx, imagePrefix, record.Slug, upload)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}

	record.ImageURLs = append(record.ImageURLs, urls...)
	record.Synced = false
	if _, err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("images uploaded", "slug", record.Slug, "count", len(urls))
	return urls, nil
}

// AttachMusic stores a single audio file and points the page's music URL at
// it, replacing any previous link.
func (s *service) AttachMusic(ctx context.Context, slug string, upload Upload) (string, error) {
	record, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return "", err
	}

	url, err := s.storeUpload(ctx, musicPrefix, record.Slug, upload)
	if err != nil {
		return "", err
	}

	record.MusicURL = &url
	record.Synced = false
	if _, err := s.repo.Update(ctx, record); err != nil {
		return "", err
	}

	s.logger.Info("music attached", "slug", record.Slug)
	return url, nil
}

// GenerateQRCode renders a PNG QR code pointing at the page's public URL.
func (s *service) GenerateQRCode(ctx context.Context, slug string) ([]byte, error) {
	record, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	target, err := s.pageURL(record.Slug)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQRRenderFailed, err)
	}

	png, err := s.encoder.EncodePNG(target, s.qrSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQRRenderFailed, err)
	}
	return png, nil
}

// storeUpload writes one file to the object store and returns its public URL.
// Keys embed the slug, a millisecond timestamp and a short random token so
// repeated uploads of the same filename never collide.
func (s *service) storeUpload(ctx context.Context, prefix, slug string, upload Upload) (string, error) {
	if upload.Content == nil || upload.Size == 0 {
		return "", ErrEmptyFile
	}

	key := fmt.Sprintf("%s/%s_%d_%s%s", prefix, slug, s.now().UnixMilli(), s.token(uploadTokenLen), strings.ToLower(path.Ext(upload.Filename)))

	if err := s.store.Put(ctx, key, upload.ContentType, upload.Size, upload.Content); err != nil {
		s.logger.Error("object store put failed", "key", key, "error", err)
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	return s.store.PublicURL(key), nil
}
