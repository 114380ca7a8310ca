// Package ios3 uploads captured images to an S3 bucket.
package ios3

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/mpsense/sampler/internal/ioaws"
	"github.com/mpsense/sampler/pkg/config"
)

// PutObjectAPI is the part of the S3 client the store needs.
type PutObjectAPI interface {
	PutObject(
		ctx context.Context,
		params *s3.PutObjectInput,
		optFns ...func(*s3.Options),
	) (*s3.PutObjectOutput, error)
}

// Store puts objects into one bucket.
type Store struct {
	client   PutObjectAPI
	bucket   string
	endpoint string
	timeout  time.Duration
}

// New creates Store with a client built from the default AWS chain.
// A custom endpoint (MinIO, LocalStack) is used for the API as well.
func New(ctx context.Context, cfg *config.Config) (*Store, error) {
	awsCfg, err := ioaws.Load(ctx, cfg.AWS)
	if err != nil {
		return nil, err
	}
	custom := cfg.ObjectStore.Endpoint
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if custom != "" {
			o.BaseEndpoint = aws.String("https://" + custom)
		}
	})
	return NewWithClient(client, cfg), nil
}

// NewWithClient creates Store around an existing client.
func NewWithClient(client PutObjectAPI, cfg *config.Config) *Store {
	return &Store{
		client:   client,
		bucket:   cfg.ObjectStore.Bucket,
		endpoint: cfg.ObjectStoreEndpoint(),
		timeout:  cfg.ObjectStore.Timeout,
	}
}

// Put uploads body under key and returns its virtual-hosted-style URL.
func (s *Store) Put(
	ctx context.Context,
	key string,
	body []byte,
	contentType string,
) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	slog.Debug("Uploading object", "bucket", s.bucket, "key", key)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return "", PutError(s.bucket, key, err)
	}
	return s.URL(key), nil
}

// URL returns the locator of an object key.
func (s *Store) URL(key string) string {
	return "https://" + s.bucket + "." + s.endpoint + "/" + key
}
