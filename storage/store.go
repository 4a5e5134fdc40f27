package storage

import (
	"context"
	"errors"
	"io"
)

// Sentinel errors the handlers and workflows branch on.
var (
	// ErrObjectExists means an upload refused to overwrite an existing key.
	ErrObjectExists = errors.New("storage: object already exists")
	// ErrNotFound means the requested key does not exist in the bucket.
	ErrNotFound = errors.New("storage: object not found")
)

// Store is the blob store consumed by the workflows. Two logical buckets
// exist: one for pending artist submissions and one for published library
// tracks.
type Store interface {
	// Upload writes an object. It never overwrites: an existing object at
	// key fails with ErrObjectExists.
	Upload(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) error
	// Download opens an object for reading. The caller closes the reader.
	Download(ctx context.Context, bucket, key string) (io.ReadCloser, int64, error)
	// Remove deletes an object. Removing a missing key is not an error.
	Remove(ctx context.Context, bucket, key string) error
	// PublicURL resolves the public link for an object.
	PublicURL(bucket, key string) string
}
