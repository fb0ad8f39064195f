package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/janus/apiserver/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// minioBackend stores archives in a MinIO or other S3 compatible bucket.
type minioBackend struct {
	client *minio.Client
	bucket string
}

func newMinioBackend(cfg config.MinioConfig) (*minioBackend, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errors.New("minio endpoint is required")
	}
	if strings.TrimSpace(cfg.AccessKey) == "" || strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, errors.New("minio access key and secret key are required")
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("minio bucket is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioBackend{client: client, bucket: cfg.Bucket}, nil
}

func (m *minioBackend) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
}

func (m *minioBackend) Put(ctx context.Context, obj Object) error {
	// A negative size makes minio-go stream the body as a multipart upload.
	info, err := m.client.PutObject(ctx, m.bucket, obj.Key, obj.Body, obj.Size, minio.PutObjectOptions{
		ContentType:  obj.ContentType,
		UserMetadata: obj.Metadata,
	})
	if err != nil {
		return err
	}
	if obj.Size >= 0 && info.Size != obj.Size {
		return fmt.Errorf("short upload: wrote %d of %d bytes", info.Size, obj.Size)
	}
	return nil
}

func (m *minioBackend) Bucket() string {
	return m.bucket
}
