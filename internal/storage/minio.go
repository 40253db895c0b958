package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	ErrEndpointRequired = errors.New("storage: endpoint is required")
	ErrBucketRequired   = errors.New("storage: bucket is required")
)

// MinioStore talks to an S3-compatible endpoint (Supabase storage in
// production) using path-style addressing and static credentials.
type MinioStore struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

// NewMinioStore constructs the store from connection settings.
func NewMinioStore(cfg Config) (*MinioStore, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, ErrEndpointRequired
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, ErrBucketRequired
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure:       cfg.UseSSL,
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: configure client: %w", err)
	}

	return &MinioStore{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: cfg.PublicBaseURL,
	}, nil
}

// Put streams content into the bucket under the supplied key. A size of -1
// lets the client switch to chunked upload without buffering the payload.
func (s *MinioStore) Put(ctx context.Context, key, contentType string, size int64, content io.Reader) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, content, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "storage put failed").
			WithTextCode("STORAGE_PUT_FAILED")
	}
	return nil
}

// PublicURL derives the public address for a stored key.
func (s *MinioStore) PublicURL(key string) string {
	return publicObjectURL(s.publicBaseURL, s.bucket, key)
}

var _ ObjectStore = (*MinioStore)(nil)
