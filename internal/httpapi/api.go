// Package httpapi exposes the memory page service over HTTP.
package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/memoriasite/memoria/internal/logging"
	"github.com/memoriasite/memoria/internal/pages"
	"github.com/memoriasite/memoria/pkg/interfaces"
)

const defaultBasePath = "/api/memory"

// API registers the memory page endpoints.
type API struct {
	basePath string
	pages    pages.Service
	logger   interfaces.Logger

	maxUploadBytes int64
}

// Option mutates the API configuration.
type Option func(*API)

// WithBasePath overrides the base API path (defaults to "/api/memory").
func WithBasePath(path string) Option {
	return func(api *API) {
		if api == nil {
			return
		}
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithPageService wires the page service.
func WithPageService(service pages.Service) Option {
	return func(api *API) {
		if api != nil {
			api.pages = service
		}
	}
}

// WithLogger wires the request logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if api != nil && logger != nil {
			api.logger = logger
		}
	}
}

// WithMaxUploadBytes caps the total size of a multipart request body.
func WithMaxUploadBytes(limit int64) Option {
	return func(api *API) {
		if api != nil && limit > 0 {
			api.maxUploadBytes = limit
		}
	}
}

// NewAPI constructs the API.
func NewAPI(opts ...Option) *API {
	api := &API{
		basePath:       defaultBasePath,
		logger:         logging.NoOp(),
		maxUploadBytes: 64 << 20,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// Register attaches the endpoints to the provided mux.
func (api *API) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("httpapi: mux is required")
	}
	if api == nil || api.pages == nil {
		return fmt.Errorf("httpapi: page service is required")
	}

	root := joinPath(api.basePath, "")

	mux.HandleFunc("POST "+root, api.handleCreate)
	mux.HandleFunc("GET "+root, api.handleList)
	mux.HandleFunc("GET "+root+"/{slug}", api.handleGet)
	mux.HandleFunc("PUT "+root+"/{slug}", api.handleUpdate)
	mux.HandleFunc("DELETE "+root+"/{slug}", api.handleDelete)
	mux.HandleFunc("GET "+root+"/{slug}/qrcode", api.handleQRCode)
	mux.HandleFunc("POST "+root+"/{slug}/images", api.handleUploadImages)
	mux.HandleFunc("POST "+root+"/{slug}/music", api.handleAttachMusic)

	api.logger.Debug("memory page routes registered", "base", root)
	return nil
}
