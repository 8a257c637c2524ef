package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// LocalDisk stores objects as files in one directory served under publicPath.
type LocalDisk struct {
	dir        string
	publicPath string
}

func NewLocalDisk(dir, publicPath string) *LocalDisk {
	return &LocalDisk{dir: dir, publicPath: publicPath}
}

// EnsureBucket creates the upload directory.
func (l *LocalDisk) EnsureBucket(ctx context.Context) error {
	return os.MkdirAll(l.dir, 0o755)
}

func (l *LocalDisk) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	f, err := os.OpenFile(l.path(key), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return fmt.Errorf("write %s: %w", key, err)
	}
	return f.Close()
}

func (l *LocalDisk) Delete(ctx context.Context, key string) error {
	err := os.Remove(l.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (l *LocalDisk) URL(key string) string {
	return path.Join(l.publicPath, filepath.Base(key))
}

func (l *LocalDisk) path(key string) string {
	return filepath.Join(l.dir, filepath.Base(key))
}
