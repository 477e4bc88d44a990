package upload

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func newTestUploader(t *testing.T, maxBytes int64) (*Uploader, string) {
	t.Helper()
	dir := t.TempDir()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	u := NewUploader(NewLocalStorage(dir, "http://localhost:8080/assets/img/"), maxBytes, logger)
	u.now = func() time.Time { return time.Unix(1700000000, 0) }
	return u, dir
}

func TestUploadStoresImageAndThumbnail(t *testing.T) {
	u, dir := newTestUploader(t, 5<<20)

	res, err := u.Upload(context.Background(), `C:\fotos\widget.png`, bytes.NewReader(pngBytes(t, 400, 300)))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if res.Path != "http://localhost:8080/assets/img/1700000000_widget.png" {
		t.Fatalf("unexpected path %q", res.Path)
	}
	if res.Thumbnail != "http://localhost:8080/assets/img/thumbnails/1700000000_widget.png" {
		t.Fatalf("unexpected thumbnail %q", res.Thumbnail)
	}

	if _, err := os.Stat(filepath.Join(dir, "1700000000_widget.png")); err != nil {
		t.Fatalf("original not written: %v", err)
	}
	f, err := os.Open(filepath.Join(dir, "thumbnails", "1700000000_widget.png"))
	if err != nil {
		t.Fatalf("thumbnail not written: %v", err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if cfg.Width != 200 || cfg.Height != 150 {
		t.Fatalf("expected 200x150 thumbnail, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestUploadRejects(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		body     []byte
		want     error
	}{
		{name: "empty body", filename: "a.png", body: nil, want: ErrNoFile},
		{name: "no name", filename: "", body: []byte("x"), want: ErrNoFile},
		{name: "text file", filename: "notes.png", body: []byte("hello world, not an image"), want: ErrUnsupportedType},
		{name: "too large", filename: "big.png", body: bytes.Repeat([]byte{0}, 2048), want: ErrTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, dir := newTestUploader(t, 1024)
			_, err := u.Upload(context.Background(), tt.filename, bytes.NewReader(tt.body))
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if !IsUploadError(err) {
				t.Fatalf("expected upload error classification")
			}
			entries, _ := os.ReadDir(dir)
			if len(entries) != 0 {
				t.Fatalf("nothing should be stored, found %d entries", len(entries))
			}
		})
	}
}

func TestUploadStripsDirectories(t *testing.T) {
	u, dir := newTestUploader(t, 5<<20)

	res, err := u.Upload(context.Background(), "../../etc/logo.png", bytes.NewReader(pngBytes(t, 10, 10)))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if strings.Contains(res.Path, "..") {
		t.Fatalf("path escapes upload dir: %q", res.Path)
	}
	if _, err := os.Stat(filepath.Join(dir, "1700000000_logo.png")); err != nil {
		t.Fatalf("expected file inside upload dir: %v", err)
	}
}
