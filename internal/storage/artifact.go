// Package storage holds the artifact object store. Content artifacts
// live in an S3-compatible bucket (MinIO in development); content rows
// reference them by object key only and the API process never streams
// artifact bytes itself; authorized downloads are handed off as
// short-lived presigned URLs.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/iliyamo/edu-content-platform/internal/config"
)

// DownloadURLTTL bounds how long a handed-out download link stays
// usable. Long enough for a mobile client on a slow link, short enough
// that a leaked URL is useless by the time it travels.
const DownloadURLTTL = 15 * time.Minute

// ArtifactStore wraps the S3 client used for content artifacts.
type ArtifactStore struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

// NewArtifactStore builds an ArtifactStore from the S3 configuration.
// Static credentials keep the setup identical between MinIO and AWS.
func NewArtifactStore(ctx context.Context, cfg config.S3Config) (*ArtifactStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// MinIO serves buckets under the path, not a subdomain.
			o.UsePathStyle = true
		}
	})

	return &ArtifactStore{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
	}, nil
}

// NewObjectKey returns a fresh storage key for an upload. Keys are
// date-prefixed so the bucket stays browsable, with a uuid tail to make
// collisions impossible.
func NewObjectKey() string {
	d := time.Now().UTC()
	return fmt.Sprintf("content/%d/%02d/%02d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

// Upload streams an artifact into the bucket under key.
func (s *ArtifactStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        body,
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

// PresignDownload returns a short-lived GET URL for an artifact. The
// original file name is carried in the Content-Disposition the store
// will answer with, so clients save the file under its real name.
func (s *ArtifactStore) PresignDownload(ctx context.Context, key, fileName string) (string, error) {
	disposition := fmt.Sprintf("attachment; filename=%q", fileName)
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:                     &s.bucket,
		Key:                        &key,
		ResponseContentDisposition: &disposition,
	}, s3.WithPresignExpires(DownloadURLTTL))
	if err != nil {
		return "", fmt.Errorf("presign get %s: %w", key, err)
	}
	return req.URL, nil
}

// Delete removes an artifact. Missing objects are not an error; content
// deletion cleans up best-effort.
func (s *ArtifactStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}
