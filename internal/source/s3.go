package source

import (
	"context"
	"fmt"
	"io"

	"techjobs/internal/transport"
)

// S3Source reads one object from a bucket
type S3Source struct {
	bucket   string
	key      string
	transfer *transport.S3Transfer
}

func NewS3Source(transfer *transport.S3Transfer, bucket, key string) (*S3Source, error) {
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("s3 location needs both bucket and key, got s3://%s/%s", bucket, key)
	}
	return &S3Source{bucket: bucket, key: key, transfer: transfer}, nil
}

func (s *S3Source) Open(ctx context.Context) (io.ReadCloser, Info, error) {
	body, size, err := s.transfer.Open(ctx, s.bucket, s.key)
	if err != nil {
		return nil, Info{}, err
	}
	return body, Info{Size: size}, nil
}

func (s *S3Source) String() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key)
}
