package transport

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// S3Transfer reads objects from S3
type S3Transfer struct {
	s3Client s3iface.S3API
}

// NewS3Session creates an AWS session from an optional region and profile.
func NewS3Session(region, profile string) (*session.Session, error) {
	sessionConfig := aws.Config{}
	if region != "" {
		sessionConfig.Region = aws.String(region)
	}
	opts := session.Options{
		Config:            sessionConfig,
		SharedConfigState: session.SharedConfigEnable,
	}
	if profile != "" {
		opts.Profile = profile
	}
	return session.NewSessionWithOptions(opts)
}

// NewS3Transfer creates a new S3 transfer instance
func NewS3Transfer(s3Client s3iface.S3API) *S3Transfer {
	return &S3Transfer{s3Client: s3Client}
}

// Open streams an object. The returned size is -1 when S3 does not report one.
func (t *S3Transfer) Open(ctx context.Context, bucket, key string) (io.ReadCloser, int64, error) {
	result, err := t.s3Client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("get S3 object s3://%s/%s: %w", bucket, key, err)
	}

	size := int64(-1)
	if result.ContentLength != nil {
		size = *result.ContentLength
	}
	return result.Body, size, nil
}
