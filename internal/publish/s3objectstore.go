package publish

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"
)

// S3ObjectStore puts objects through the AWS SDK. Credentials come from the
// SDK's default chain (environment, shared config, instance role).
type S3ObjectStore struct {
	Client *s3.S3
}

// NewS3 returns a store for region. A non-empty endpoint selects an
// S3-compatible service and switches to path-style addressing.
func NewS3(region, endpoint string) (*S3ObjectStore, error) {
	cfg := aws.NewConfig()
	if region != "" {
		cfg = cfg.WithRegion(region)
	}
	if endpoint != "" {
		cfg = cfg.WithEndpoint(endpoint).WithS3ForcePathStyle(true)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "creating AWS session")
	}
	return &S3ObjectStore{Client: s3.New(sess)}, nil
}

func (os *S3ObjectStore) PutObject(ctx context.Context, bucket, key string, data io.ReadSeeker, opts ObjectOptions) error {
	input := &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   data,
	}
	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}
	if opts.ContentEncoding != "" {
		input.ContentEncoding = aws.String(opts.ContentEncoding)
	}
	if opts.CacheControl != "" {
		input.CacheControl = aws.String(opts.CacheControl)
	}
	if _, err := os.Client.PutObjectWithContext(ctx, input); err != nil {
		return errors.Wrapf(err, "putting object in bucket `%s` at key `%s`", bucket, key)
	}
	return nil
}
