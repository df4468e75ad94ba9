package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/elenaferr0/study-leave-doc-generator/internal/config"
)

const documentContentType = "application/pdf"

type MinIOArchive struct {
	client *minio.Client
	bucket string
}

func NewMinIOArchive(cfg config.StorageConfig) (*MinIOArchive, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinIOArchive{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

func (s *MinIOArchive) Upload(ctx context.Context, documentID string, data io.Reader, size int64) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectKey(documentID), data, size, minio.PutObjectOptions{
		ContentType: documentContentType,
	})
	return err
}

func (s *MinIOArchive) Download(ctx context.Context, documentID string) (io.ReadCloser, int64, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectKey(documentID), minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, err
	}

	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}

	return obj, stat.Size, nil
}

func (s *MinIOArchive) Ping(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.bucket)
	return err
}

func objectKey(documentID string) string {
	return "documents/" + documentID + ".pdf"
}
