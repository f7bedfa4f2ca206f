// Copyright (c) 2026 Linkify. All rights reserved.
// Author: dev@linkify.app

/*
Package objstore provides the object-storage collaborator used for profile images.

It speaks the S3 API, which keeps the deployment flexible: MinIO in
development, Cloudflare R2 or AWS S3 in production.

Architecture:

  - Store: The opaque upload/delete contract injected into domain services.
  - S3Store: The aws-sdk-go-v2 implementation.

Domain code never sees bucket names or keys beyond the opaque storage ID.
*/
package objstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Store is the opaque contract for binary asset storage.
//
// Upload returns both a public URL (for rendering) and a storage ID
// (for later deletion or replacement).
type Store interface {
	Upload(ctx context.Context, data []byte, contentType string) (url string, storageID string, err error)
	Delete(ctx context.Context, storageID string) error
}

// Config holds the connection settings for an S3-compatible endpoint.
type Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

// S3Store implements [Store] against any S3-compatible service.
type S3Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// New constructs an [S3Store] from the given settings.
func New(ctx context.Context, cfg Config) (*S3Store, error) {
	loadOptions := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	// Static credentials for self-hosted endpoints; the default chain
	// (IAM role, env vars) applies when none are configured.
	if cfg.AccessKey != "" {
		loadOptions = append(loadOptions, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, fmt.Errorf("objstore: failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(options *s3.Options) {
		if cfg.Endpoint != "" {
			options.BaseEndpoint = aws.String(cfg.Endpoint)
			// MinIO and most self-hosted gateways require path-style addressing.
			options.UsePathStyle = true
		}
	})

	return &S3Store{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

/*
Upload stores the given bytes under a fresh date-partitioned key.

Parameters:
  - ctx: context.Context
  - data: Raw file bytes
  - contentType: MIME type recorded on the object

Returns:
  - string: Public URL of the stored object
  - string: Opaque storage ID (the object key) for later deletion
  - error: Transport or bucket failures
*/
func (store *S3Store) Upload(ctx context.Context, data []byte, contentType string) (string, string, error) {
	key := newStorageKey()

	_, err := store.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(store.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", fmt.Errorf("objstore: upload failed: %w", err)
	}

	return store.publicURL(key), key, nil
}

/*
Delete removes the object identified by the opaque storage ID.

Deleting a missing object is not an error — S3 DeleteObject is idempotent.
*/
func (store *S3Store) Delete(ctx context.Context, storageID string) error {
	_, err := store.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(storageID),
	})
	if err != nil {
		return fmt.Errorf("objstore: delete failed: %w", err)
	}

	return nil
}

// Ping verifies the configured bucket is reachable and accessible.
// Used by the readiness probe.
func (store *S3Store) Ping(ctx context.Context) error {
	_, err := store.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(store.bucket),
	})
	if err != nil {
		return fmt.Errorf("objstore: bucket unreachable: %w", err)
	}

	return nil
}

// publicURL derives the client-facing URL for a stored object.
func (store *S3Store) publicURL(key string) string {
	if store.publicBaseURL != "" {
		return store.publicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", store.bucket, key)
}

// newStorageKey generates a date-partitioned object key.
// Partitioning by date keeps bucket listings manageable during cleanup jobs.
func newStorageKey() string {
	now := time.Now().UTC()
	return fmt.Sprintf("avatars/%d/%02d/%02d/%s", now.Year(), now.Month(), now.Day(), uuid.New())
}
