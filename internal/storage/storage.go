package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"storefront-service/config"
	"storefront-service/internal/util"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Uploader stores images in S3-compatible object storage and hands out
// public URLs.
type Uploader struct {
	client        *minio.Client
	publicBaseURL string
}

// NewUploader creates an object-storage client
func NewUploader(cfg config.StorageConfig) (*Uploader, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &Uploader{
		client:        client,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// EnsureBucket creates a bucket if it does not exist yet
func (u *Uploader) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := u.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err := u.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	return nil
}

// Upload stores an object under a fresh name and returns its public
// URL. filename is only used for the extension.
func (u *Uploader) Upload(ctx context.Context, bucket, filename string, r io.Reader, size int64, contentType string) (string, error) {
	start := time.Now()

	ext := "jpg"
	if i := strings.LastIndex(filename, "."); i >= 0 && i < len(filename)-1 {
		ext = strings.ToLower(filename[i+1:])
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}
	objectName := fmt.Sprintf("%s.%s", uuid.New().String(), ext)

	_, err := u.client.PutObject(ctx, bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	util.ImageUploadLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		util.ImageUploadsTotal.WithLabelValues(bucket, "error").Inc()
		return "", fmt.Errorf("failed to upload %s to bucket %s: %w", objectName, bucket, err)
	}

	util.ImageUploadsTotal.WithLabelValues(bucket, "ok").Inc()
	return u.PublicURL(bucket, objectName), nil
}

// PublicURL builds the public URL of an object
func (u *Uploader) PublicURL(bucket, objectName string) string {
	return fmt.Sprintf("%s/%s/%s", u.publicBaseURL, bucket, objectName)
}
