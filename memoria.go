// Package memoria assembles the memory page backend: slug-addressed pages
// with dedication text, images, optional music and QR share codes.
package memoria

import (
	"fmt"
	"net/http"

	"github.com/memoriasite/memoria/internal/httpapi"
	"github.com/memoriasite/memoria/internal/logging"
	"github.com/memoriasite/memoria/internal/logging/gologger"
	"github.com/memoriasite/memoria/internal/pages"
	"github.com/memoriasite/memoria/internal/qr"
	"github.com/memoriasite/memoria/internal/storage"
	"github.com/memoriasite/memoria/internal/urls"
	"github.com/memoriasite/memoria/pkg/interfaces"
	"github.com/uptrace/bun"
)

// PageService exports the page service contract for consumers of the module.
type PageService = pages.Service

// ObjectStore exports the object storage contract.
type ObjectStore = storage.ObjectStore

// Module is the top level runtime facade. It owns the wiring between the
// page service, its collaborators and the HTTP surface.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	pages    pages.Service
	store    storage.ObjectStore
}

// Option overrides a default dependency binding.
type Option func(*moduleDeps)

type moduleDeps struct {
	db       *bun.DB
	repo     pages.PageRepository
	store    storage.ObjectStore
	encoder  qr.Encoder
	provider interfaces.LoggerProvider
}

// WithBunDB binds the persistent repository to the given database handle.
func WithBunDB(db *bun.DB) Option {
	return func(d *moduleDeps) {
		d.db = db
	}
}

// WithPageRepository overrides the repository binding entirely.
func WithPageRepository(repo pages.PageRepository) Option {
	return func(d *moduleDeps) {
		d.repo = repo
	}
}

// WithObjectStore overrides the object storage binding. Without it the
// module connects to the configured S3-compatible endpoint.
func WithObjectStore(store storage.ObjectStore) Option {
	return func(d *moduleDeps) {
		d.store = store
	}
}

// WithQREncoder overrides the QR encoder binding.
func WithQREncoder(encoder qr.Encoder) Option {
	return func(d *moduleDeps) {
		d.encoder = encoder
	}
}

// WithLoggerProvider overrides the logger provider binding.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(d *moduleDeps) {
		d.provider = provider
	}
}

// New constructs the module from configuration plus optional overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	deps := &moduleDeps{}
	for _, opt := range opts {
		if opt != nil {
			opt(deps)
		}
	}

	provider := deps.provider
	if provider == nil {
		var err error
		provider, err = gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
		})
		if err != nil {
			return nil, err
		}
	}

	repo := deps.repo
	if repo == nil {
		if deps.db != nil {
			repo = pages.NewBunPageRepository(deps.db)
		} else {
			repo = pages.NewInMemoryPageRepository()
		}
	}

	store := deps.store
	if store == nil {
		if err := cfg.ValidateStorage(); err != nil {
			return nil, err
		}
		minioStore, err := storage.NewMinioStore(storage.Config{
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			Bucket:          cfg.Storage.Bucket,
			PublicBaseURL:   cfg.Storage.PublicBaseURL,
			UseSSL:          cfg.Storage.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		store = minioStore
		logging.StorageLogger(provider).Debug("object store configured",
			"endpoint", cfg.Storage.Endpoint, "bucket", cfg.Storage.Bucket)
	}

	encoder := deps.encoder
	if encoder == nil {
		encoder = qr.NewPNGEncoder()
	}

	resolver, err := urls.NewResolver(cfg.App.BaseURL)
	if err != nil {
		return nil, err
	}

	service := pages.NewService(repo, store, encoder, resolver.PageURL,
		pages.WithQRSize(cfg.QR.Size),
		pages.WithLogger(logging.PagesLogger(provider)),
	)

	return &Module{
		cfg:      cfg,
		provider: provider,
		pages:    service,
		store:    store,
	}, nil
}

// Pages returns the configured page service.
func (m *Module) Pages() PageService {
	return m.pages
}

// Storage returns the configured object store.
func (m *Module) Storage() ObjectStore {
	return m.store
}

// LoggerProvider exposes the logger provider for host integrations.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.provider
}

// Register attaches the API endpoints to the provided mux.
func (m *Module) Register(mux *http.ServeMux) error {
	if m == nil || m.pages == nil {
		return fmt.Errorf("memoria: module not initialized")
	}
	api := httpapi.NewAPI(
		httpapi.WithBasePath(m.cfg.HTTP.BasePath),
		httpapi.WithPageService(m.pages),
		httpapi.WithLogger(logging.HTTPLogger(m.provider)),
		httpapi.WithMaxUploadBytes(m.cfg.HTTP.MaxUploadBytes),
	)
	return api.Register(mux)
}

// Handler builds a ready-to-serve handler: the API routes wrapped with the
// configured CORS policy.
func (m *Module) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	if err := m.Register(mux); err != nil {
		return nil, err
	}
	return httpapi.CORS(httpapi.CORSConfig{AllowedOrigin: m.cfg.HTTP.CORSOrigin}, mux), nil
}
