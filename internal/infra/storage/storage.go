// Package storage puts uploaded files into an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"io"
	"strings"
)

var ErrNotConfigured = errors.New("object storage not configured")

// Store is the object store the upload handlers write to.
type Store interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// KeyFromURL turns a public URL produced by the store back into its object
// key. A value that is already a key is returned as is.
func KeyFromURL(s Store, v string) string {
	base := strings.TrimSuffix(s.PublicURL(""), "/")
	if base != "" && strings.HasPrefix(v, base+"/") {
		return strings.TrimPrefix(v, base+"/")
	}
	return strings.TrimPrefix(v, "/")
}
