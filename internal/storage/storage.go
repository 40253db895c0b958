package storage

import (
	"context"
	"io"
	"net/url"
	"strings"
)

// ObjectStore is the contract for the external S3-compatible blob service.
// Put streams content to the bucket; PublicURL derives the stable public
// address for a stored key. Implementations must be safe for concurrent use.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, size int64, content io.Reader) error
	PublicURL(key string) string
}

// Config captures the connection settings for the object-storage collaborator.
type Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicBaseURL   string
	UseSSL          bool
}

// publicObjectURL builds the Supabase-style public URL for a bucket key:
// {base}/storage/v1/object/public/{bucket}/{urlEncodedKey}. Path separators
// inside the key survive; each segment is escaped individually.
func publicObjectURL(baseURL, bucket, key string) string {
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.TrimRight(baseURL, "/") + "/storage/v1/object/public/" + bucket + "/" + strings.Join(segments, "/")
}
