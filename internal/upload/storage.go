// Package upload stores product and material images and their thumbnails.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
)

// Storage persists an object and returns its public URL.
type Storage interface {
	Save(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// LocalStorage writes under Dir, which the API serves at BaseURL.
type LocalStorage struct {
	Dir     string
	BaseURL string
}

func NewLocalStorage(dir, baseURL string) *LocalStorage {
	return &LocalStorage{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStorage) Save(_ context.Context, name, _ string, data []byte) (string, error) {
	full := filepath.Join(s.Dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return s.BaseURL + "/" + name, nil
}

// GCSStorage writes objects to a Google Cloud Storage bucket.
type GCSStorage struct {
	client *storage.Client
	bucket string
}

// NewGCSStorage uses application default credentials.
func NewGCSStorage(ctx context.Context, bucket string) (*GCSStorage, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, fmt.Errorf("GCS_BUCKET is required")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	return &GCSStorage{client: client, bucket: bucket}, nil
}

func (s *GCSStorage) Save(ctx context.Context, name, contentType string, data []byte) (string, error) {
	wc := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	wc.ContentType = contentType
	if _, err := io.Copy(wc, bytes.NewReader(data)); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("gcs write %s: %w", name, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("gcs close %s: %w", name, err)
	}
	return "https://storage.googleapis.com/" + path.Join(s.bucket, name), nil
}

func (s *GCSStorage) Close() error {
	return s.client.Close()
}
