package blob

import "context"

// Store uploads file blobs and resolves publicly retrievable URLs for them.
type Store interface {
	// Upload stores the bytes under bucket/path with the given content type.
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error

	// PublicURL returns the publicly retrievable URL for an uploaded object.
	PublicURL(bucket, path string) string
}
