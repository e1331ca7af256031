// Package storage provides the blob store implementation for uploaded files.
package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"marketplace/config"
	"marketplace/internal/domain/lifecycle"
	"marketplace/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // registers the file:// bucket scheme
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// blobStore implements the BlobStore interface on a gocloud.dev bucket.
// The bucket URL decides the backend; local profiles use file://, and a
// cloud bucket is a config change away.
type blobStore struct {
	bucket       *blob.Bucket
	publicPrefix string
}

// New opens the configured bucket and registers its shutdown hook.
func New(params Params) (service.BlobStore, error) {
	bucketURL := params.Config.Upload.BucketURL
	if bucketURL == "" {
		bucketURL = "file://./uploads?create_dir=true"
	}

	openCtx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(openCtx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open blob bucket %s", bucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &blobStore{
		bucket:       bucket,
		publicPrefix: strings.TrimSuffix(params.Config.Upload.PublicPrefix, "/"),
	}, nil
}

// Save writes the blob under the given key and returns the public URL the
// object is served from.
func (s *blobStore) Save(ctx context.Context, key, contentType string, content io.Reader) (string, error) {
	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to open blob writer for %s", key)
	}

	if _, err := io.Copy(writer, content); err != nil {
		// Close may also fail here; the copy error is the one that matters.
		_ = writer.Close()

		return "", errors.Wrapf(err, "failed to write blob %s", key)
	}

	if err := writer.Close(); err != nil {
		return "", errors.Wrapf(err, "failed to finalize blob %s", key)
	}

	return s.publicPrefix + "/" + key, nil
}
