package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// PublicUploadsPath is where the local backend's files are served.
const PublicUploadsPath = "/uploads"

var (
	ErrNotImage = errors.New("profile image must be an image file")
	ErrTooLarge = errors.New("profile image is too large")
)

// ProfileImageKey names an upload as profile-<unix millis><ext>.
func ProfileImageKey(now time.Time, filename string) string {
	return fmt.Sprintf("profile-%d%s", now.UnixMilli(), strings.ToLower(filepath.Ext(filename)))
}

// SaveProfileImage stores an uploaded file and returns the reference to put
// in the user's profileImg field.
func (s *Storage) SaveProfileImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > s.maxBytes {
		return "", ErrTooLarge
	}

	f, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	contentType := http.DetectContentType(head)
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}

	key := ProfileImageKey(s.now(), file.Filename)
	body := io.MultiReader(bytes.NewReader(head), f)
	if err := s.backend.Put(ctx, key, body, file.Size, contentType); err != nil {
		return "", fmt.Errorf("store profile image: %w", err)
	}
	return s.backend.URL(key), nil
}

// RemoveProfileImage deletes an object previously returned by SaveProfileImage.
func (s *Storage) RemoveProfileImage(ctx context.Context, ref string) error {
	key := keyFromRef(ref)
	if key == "" {
		return nil
	}
	return s.backend.Delete(ctx, key)
}

// keyFromRef recovers the object key from a local path or an object URL.
func keyFromRef(ref string) string {
	p := ref
	if u, err := url.Parse(ref); err == nil {
		p = u.Path
	}
	key := path.Base(p)
	if key == "." || key == "/" {
		return ""
	}
	return key
}
