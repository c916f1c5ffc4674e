package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"quizcraft/internal/config"
	"quizcraft/internal/domain"
	"quizcraft/internal/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// objectClient is the subset of *minio.Client the store needs.
type objectClient interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
}

// MinioBlobStore implements domain.BlobStore on an S3-compatible bucket.
type MinioBlobStore struct {
	client        objectClient
	bucket        string
	publicBaseURL string
}

func NewMinioClient(cfg config.StorageConfig) (*minio.Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return client, nil
}

func NewMinioBlobStore(client objectClient, cfg config.StorageConfig) *MinioBlobStore {
	base := cfg.PublicBaseURL
	if base == "" {
		scheme := "http"
		if cfg.Secure {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s", scheme, cfg.Endpoint)
	}
	return &MinioBlobStore{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(base, "/"),
	}
}

func (s *MinioBlobStore) Put(ctx context.Context, path string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, path, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return domain.NewUpstreamError("object storage", fmt.Errorf("put %s: %w", path, err))
	}
	return nil
}

func (s *MinioBlobStore) Delete(ctx context.Context, path string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{}); err != nil {
		return domain.NewUpstreamError("object storage", fmt.Errorf("delete %s: %w", path, err))
	}
	return nil
}

// DeletePrefix removes every object under prefix. Missing prefixes are not an error.
func (s *MinioBlobStore) DeletePrefix(ctx context.Context, prefix string) error {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	removed := 0
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return domain.NewUpstreamError("object storage", fmt.Errorf("list %s: %w", prefix, obj.Err))
		}
		if err := s.Delete(ctx, obj.Key); err != nil {
			return err
		}
		removed++
	}
	logger.Get().Debug("Removed objects by prefix", zap.String("prefix", prefix), zap.Int("count", removed))
	return nil
}

func (s *MinioBlobStore) PublicURL(path string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, strings.TrimLeft(path, "/"))
}

var _ domain.BlobStore = (*MinioBlobStore)(nil)
