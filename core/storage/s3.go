package storage

import (
	"bytes"
	"context"
	"fmt"

	"time2gather/core/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStore writes result archives.
type ObjectStore interface {
	PutJSON(ctx context.Context, key string, body []byte) error
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // optional, e.g. a MinIO URL
	AccessKey string
	SecretKey string
}

type S3Store struct {
	client *s3.Client
	bucket string
}

func NewS3Store(config S3Config) *S3Store {
	opts := s3.Options{
		Region:      config.Region,
		Credentials: credentials.NewStaticCredentialsProvider(config.AccessKey, config.SecretKey, ""),
	}
	if config.Endpoint != "" {
		opts.BaseEndpoint = aws.String(config.Endpoint)
		opts.UsePathStyle = true
	}

	return &S3Store{
		client: s3.New(opts),
		bucket: config.Bucket,
	}
}

func (s *S3Store) PutJSON(ctx context.Context, key string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		logger.Error("Storage:S3Store:PutJSON", "bucket", s.bucket, "key", key, "error", err)
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

// NopStore is used when archival is disabled.
type NopStore struct{}

func (NopStore) PutJSON(ctx context.Context, key string, body []byte) error {
	logger.Debug("Storage:NopStore:PutJSON:Skipped", "key", key, "bytes", len(body))
	return nil
}
