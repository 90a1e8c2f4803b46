// Package storage abstracts the deploy target for a built site.
package storage

import (
	"context"
	"io"
)

// Storage is a flat keyspace the deployer syncs the output
// directory into. Keys use forward slashes regardless of OS.
type Storage interface {
	// Save stores an object under key with the given content type.
	Save(ctx context.Context, key string, body io.Reader, contentType string) error

	// Delete removes the object under key.
	Delete(ctx context.Context, key string) error

	// List returns every key under the prefix mapped to its content
	// hash: the hex MD5 of the body, matching the ETag S3 reports for
	// single-part uploads. Implementations that cannot hash may map
	// keys to "".
	List(ctx context.Context, prefix string) (map[string]string, error)

	// URL returns the public URL for a key.
	URL(key string) string
}
