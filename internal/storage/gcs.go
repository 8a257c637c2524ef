package storage

import (
	"context"
	"errors"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/harentsoaR/health-record-api/internal/config"
)

// GCSClient stores profile images in a Google Cloud Storage bucket.
type GCSClient struct {
	bucket    *storage.BucketHandle
	name      string
	projectID string
	publicURL string
}

// NewGCSClient uses CredentialsFile when set and application default
// credentials otherwise.
func NewGCSClient(ctx context.Context, cfg config.GCSConfig) (*GCSClient, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("gcs bucket is required")
	}

	var opts []option.ClientOption
	if f := strings.TrimSpace(cfg.CredentialsFile); f != "" {
		opts = append(opts, option.WithCredentialsFile(f))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &GCSClient{
		bucket:    client.Bucket(cfg.Bucket),
		name:      cfg.Bucket,
		projectID: cfg.ProjectID,
		publicURL: gcsPublicURL(cfg),
	}, nil
}

// gcsPublicURL is PUBLIC_URL when set, otherwise the public googleapis URL.
func gcsPublicURL(cfg config.GCSConfig) string {
	if u := strings.TrimRight(strings.TrimSpace(cfg.PublicURL), "/"); u != "" {
		return u
	}
	return "https://storage.googleapis.com/" + cfg.Bucket
}

// EnsureBucket creates the bucket when missing, which needs GCS_PROJECT_ID.
func (g *GCSClient) EnsureBucket(ctx context.Context) error {
	_, err := g.bucket.Attrs(ctx)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, storage.ErrBucketNotExist):
		return err
	case strings.TrimSpace(g.projectID) == "":
		return errors.New("gcs bucket " + g.name + " does not exist and GCS_PROJECT_ID is not set")
	}
	return g.bucket.Create(ctx, g.projectID, nil)
}

func (g *GCSClient) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	w := g.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// Delete succeeds for keys that do not exist.
func (g *GCSClient) Delete(ctx context.Context, key string) error {
	if err := g.bucket.Object(key).Delete(ctx); err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return err
	}
	return nil
}

func (g *GCSClient) URL(key string) string {
	return g.publicURL + "/" + key
}
