// Package publish uploads a written catalog to S3-compatible object storage.
package publish

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
)

// ContentType is the media type catalogs are uploaded with.
const ContentType = "application/json; charset=utf-8"

// ObjectOptions carries per-object headers.
type ObjectOptions struct {
	ContentType     string
	ContentEncoding string
	CacheControl    string
}

// ObjectStore stores one object.
type ObjectStore interface {
	PutObject(ctx context.Context, bucket, key string, data io.ReadSeeker, opts ObjectOptions) error
}

// Publish uploads the file at path to bucket/key.
func Publish(ctx context.Context, store ObjectStore, bucket, key, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening catalog")
	}
	defer f.Close()

	return store.PutObject(ctx, bucket, key, f, ObjectOptions{
		ContentType:  ContentType,
		CacheControl: "no-cache",
	})
}
