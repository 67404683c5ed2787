package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/light-87/Lead-V/config"
	"github.com/light-87/Lead-V/model"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore is a BlobStore on an S3-compatible bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
	config *config.MinioConfig
}

func NewMinioStore(cfg *config.MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinioStore{
		client: client,
		bucket: cfg.Bucket,
		config: cfg,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

func (s *MinioStore) PutJSON(ctx context.Context, key string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload document: %w", err)
	}

	return s.PublicURL(key), nil
}

func (s *MinioStore) List(ctx context.Context, prefix string) ([]model.BlobInfo, error) {
	var blobs []model.BlobInfo
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list documents: %w", obj.Err)
		}
		blobs = append(blobs, model.BlobInfo{
			URL:        s.PublicURL(obj.Key),
			Pathname:   obj.Key,
			Size:       obj.Size,
			UploadedAt: obj.LastModified.UTC().Format(time.RFC3339),
		})
	}
	return blobs, nil
}

func (s *MinioStore) GetJSON(ctx context.Context, keyOrURL string, v any) error {
	key := s.KeyFromURL(keyOrURL)
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return s.mapError(key, err)
	}
	defer obj.Close()

	// GetObject is lazy, a missing key only surfaces on first read.
	if err := json.NewDecoder(obj).Decode(v); err != nil {
		if mapped := s.mapError(key, err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to decode document %s: %w", key, err)
	}
	return nil
}

func (s *MinioStore) Delete(ctx context.Context, keyOrURL string) error {
	key := s.KeyFromURL(keyOrURL)
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	return nil
}

func (s *MinioStore) mapError(key string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return err
}

// PublicURL returns a public URL for the object (if bucket policy allows)
func (s *MinioStore) PublicURL(key string) string {
	protocol := "http"
	if s.config.UseSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, s.config.Endpoint, s.bucket, key)
}

// KeyFromURL strips the bucket URL prefix from a public URL. Plain keys are
// returned unchanged.
func (s *MinioStore) KeyFromURL(keyOrURL string) string {
	return strings.TrimPrefix(keyOrURL, s.PublicURL(""))
}
