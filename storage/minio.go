package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"flamtunes/config"
	"flamtunes/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// minioStore implements Store on a MinIO (or any S3 compatible) backend.
type minioStore struct {
	client     *minio.Client
	publicBase string
}

// NewMinioStore connects to MinIO and ensures both application buckets exist.
func NewMinioStore(cfg *config.Config) (Store, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
		Region: cfg.MinioRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, bucket := range []string{cfg.SubmissionsBucket, cfg.TracksBucket} {
		exists, err := client.BucketExists(ctx, bucket)
		if err != nil {
			return nil, fmt.Errorf("failed to check bucket %q: %w", bucket, err)
		}
		if !exists {
			if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: cfg.MinioRegion}); err != nil {
				return nil, fmt.Errorf("failed to create bucket %q: %w", bucket, err)
			}
			logger.Info("Created storage bucket", logger.String("bucket", bucket))
		}
	}

	publicBase := strings.TrimSuffix(cfg.StoragePublicBase, "/")
	if publicBase == "" {
		scheme := "http"
		if cfg.MinioUseSSL {
			scheme = "https"
		}
		publicBase = fmt.Sprintf("%s://%s", scheme, cfg.MinioEndpoint)
	}

	return &minioStore{client: client, publicBase: publicBase}, nil
}

// Upload writes an object, refusing to overwrite an existing one.
func (s *minioStore) Upload(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) error {
	// MinIO has no native no-overwrite put; a stat probe before the write
	// catches collisions. Key construction (millisecond timestamp prefix)
	// makes them unexpected, so a hit is treated as a hard failure.
	_, err := s.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return ErrObjectExists
	}
	if !isNoSuchKey(err) {
		return fmt.Errorf("failed to stat object %s/%s: %w", bucket, key, err)
	}

	_, err = s.client.PutObject(ctx, bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %s/%s: %w", bucket, key, err)
	}
	return nil
}

// Download opens an object for reading.
func (s *minioStore) Download(ctx context.Context, bucket, key string) (io.ReadCloser, int64, error) {
	stat, err := s.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("failed to stat object %s/%s: %w", bucket, key, err)
	}

	object, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get object %s/%s: %w", bucket, key, err)
	}
	return object, stat.Size, nil
}

// Remove deletes an object. A missing key is not an error.
func (s *minioStore) Remove(ctx context.Context, bucket, key string) error {
	err := s.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{})
	if err != nil && !isNoSuchKey(err) {
		return fmt.Errorf("failed to remove object %s/%s: %w", bucket, key, err)
	}
	return nil
}

// PublicURL resolves the public link for an object.
func (s *minioStore) PublicURL(bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicBase, bucket, key)
}

func isNoSuchKey(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == 404
}
