package service

import (
	"context"
	"io"
)

// BlobStore persists uploaded binary objects (avatars, store logos) and
// returns the public URL path the stored object is served under.
type BlobStore interface {
	// Save writes the object under the given key and returns its URL path.
	Save(ctx context.Context, key, contentType string, r io.Reader) (string, error)
}
