// Package runtimeconfig holds the module configuration surface.
package runtimeconfig

import (
	"errors"
	"strings"
)

var ErrBaseURLRequired = errors.New("memoria config: app base URL is required")
var ErrStorageEndpointRequired = errors.New("memoria config: storage endpoint is required")
var ErrStorageBucketRequired = errors.New("memoria config: storage bucket is required")
var ErrStoragePublicBaseURLRequired = errors.New("memoria config: storage public base URL is required")
var ErrQRSizeInvalid = errors.New("memoria config: qr size must be positive")
var ErrLoggingLevelInvalid = errors.New("memoria config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("memoria config: logging format is invalid")

// Config aggregates runtime settings for the memoria module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	QR      QRConfig
	Logging LoggingConfig
}

// AppConfig captures the public frontend that QR codes and share links point at.
type AppConfig struct {
	BaseURL string
}

// HTTPConfig captures the listener and cross-origin settings.
type HTTPConfig struct {
	Addr           string
	BasePath       string
	CORSOrigin     string
	MaxUploadBytes int64
}

// StorageConfig captures the S3-compatible object storage connection.
type StorageConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicBaseURL   string
	UseSSL          bool
}

// QRConfig captures QR rendering behaviour.
type QRConfig struct {
	Size int
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns opinionated defaults for local development.
func DefaultConfig() Config {
	return Config{
		App: AppConfig{
			BaseURL: "http://localhost:3000",
		},
		HTTP: HTTPConfig{
			Addr:           ":8080",
			BasePath:       "/api/memory",
			MaxUploadBytes: 64 << 20,
		},
		Storage: StorageConfig{
			Region: "us-east-1",
			Bucket: "memoria",
			UseSSL: true,
		},
		QR: QRConfig{
			Size: 250,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate reports the first configuration inconsistency it finds.
func (c Config) Validate() error {
	if strings.TrimSpace(c.App.BaseURL) == "" {
		return ErrBaseURLRequired
	}
	if c.QR.Size <= 0 {
		return ErrQRSizeInvalid
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		return ErrLoggingLevelInvalid
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return ErrLoggingFormatInvalid
	}

	return nil
}

// ValidateStorage checks the object storage settings. It is split from
// Validate so tests and scaffolding can run with the in-memory store.
func (c Config) ValidateStorage() error {
	if strings.TrimSpace(c.Storage.Endpoint) == "" {
		return ErrStorageEndpointRequired
	}
	if strings.TrimSpace(c.Storage.Bucket) == "" {
		return ErrStorageBucketRequired
	}
	if strings.TrimSpace(c.Storage.PublicBaseURL) == "" {
		return ErrStoragePublicBaseURLRequired
	}
	return nil
}
