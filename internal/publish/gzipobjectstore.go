package publish

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"

	"github.com/pkg/errors"
)

// GzipObjectStore compresses objects before handing them to the wrapped
// store and marks them Content-Encoding: gzip.
type GzipObjectStore struct {
	ObjectStore
}

func (os *GzipObjectStore) PutObject(ctx context.Context, bucket, key string, data io.ReadSeeker, opts ObjectOptions) error {
	var b bytes.Buffer
	w, err := gzip.NewWriterLevel(&b, gzip.BestCompression)
	if err != nil {
		return errors.Wrap(err, "creating gzip writer")
	}
	if _, err := io.Copy(w, data); err != nil {
		return errors.Wrap(err, "compressing data")
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "closing gzip writer")
	}
	opts.ContentEncoding = "gzip"
	return os.ObjectStore.PutObject(ctx, bucket, key, bytes.NewReader(b.Bytes()), opts)
}
