package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoFile          = errors.New("no se recibió ninguna imagen")
	ErrTooLarge        = errors.New("la imagen excede el tamaño permitido")
	ErrUnsupportedType = errors.New("el archivo no es una imagen válida")
)

// IsUploadError reports whether err is one of the client-side upload errors.
func IsUploadError(err error) bool {
	return errors.Is(err, ErrNoFile) || errors.Is(err, ErrTooLarge) || errors.Is(err, ErrUnsupportedType)
}

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Result is the JSON body returned to the client.
type Result struct {
	Path      string `json:"ruta"`
	Thumbnail string `json:"miniatura,omitempty"`
}

type Uploader struct {
	storage  Storage
	maxBytes int64
	now      func() time.Time
	logger   *logrus.Logger
}

func NewUploader(storage Storage, maxBytes int64, logger *logrus.Logger) *Uploader {
	return &Uploader{storage: storage, maxBytes: maxBytes, now: time.Now, logger: logger}
}

// Upload stores the image as <unix>_<basename> and, when it decodes, a 200px wide JPEG thumbnail.
func (u *Uploader) Upload(ctx context.Context, filename string, r io.Reader) (Result, error) {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	if r == nil || base == "" || base == "." || base == "/" {
		return Result{}, ErrNoFile
	}

	data, err := io.ReadAll(io.LimitReader(r, u.maxBytes+1))
	if err != nil {
		return Result{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return Result{}, ErrNoFile
	}
	if int64(len(data)) > u.maxBytes {
		return Result{}, ErrTooLarge
	}

	contentType := http.DetectContentType(data)
	if !allowedTypes[contentType] {
		return Result{}, ErrUnsupportedType
	}

	name := fmt.Sprintf("%d_%s", u.now().Unix(), base)
	url, err := u.storage.Save(ctx, name, contentType, data)
	if err != nil {
		return Result{}, err
	}
	res := Result{Path: url}

	thumb, err := thumbnail(data)
	if err != nil {
		u.logger.WithFields(logrus.Fields{"field": "Uploader", "name": name}).Warn("thumbnail skipped: " + err.Error())
		return res, nil
	}
	thumbURL, err := u.storage.Save(ctx, path.Join("thumbnails", name), "image/jpeg", thumb)
	if err != nil {
		u.logger.WithFields(logrus.Fields{"field": "Uploader", "name": name}).Warn("thumbnail not stored: " + err.Error())
		return res, nil
	}
	res.Thumbnail = thumbURL
	return res, nil
}

func thumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	small := imaging.Resize(img, 200, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, small, imaging.JPEG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
