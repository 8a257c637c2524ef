package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/harentsoaR/health-record-api/internal/config"
)

// ObjectStorage defines common object operations across backends.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	// URL returns the reference clients use to fetch the object.
	URL(key string) string
}

// Storage wraps an ObjectStorage backend with profile image helpers.
type Storage struct {
	backend  ObjectStorage
	maxBytes int64
	now      func() time.Time
}

// NewStorage constructs a Storage wrapper for the provided backend.
func NewStorage(backend ObjectStorage, maxBytes int64) *Storage {
	return &Storage{backend: backend, maxBytes: maxBytes, now: time.Now}
}

// New builds the backend selected by cfg.Backend.
func New(ctx context.Context, cfg config.StorageConfig) (*Storage, error) {
	var (
		backend ObjectStorage
		err     error
	)
	switch cfg.Backend {
	case config.StorageLocal:
		backend = NewLocalDisk(cfg.UploadDir, PublicUploadsPath)
	case config.StorageMinio:
		backend, err = NewMinioClient(cfg.Minio)
	case config.StorageGCS:
		backend, err = NewGCSClient(ctx, cfg.GCS)
	default:
		err = fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return NewStorage(backend, cfg.MaxUploadBytes), nil
}

// EnsureBucket ensures the configured bucket (or directory) exists.
func (s *Storage) EnsureBucket(ctx context.Context) error {
	return s.backend.EnsureBucket(ctx)
}
