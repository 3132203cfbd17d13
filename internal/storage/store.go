package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"findjob-backend/internal/model"

	"github.com/google/uuid"
)

// Object name prefixes.
const (
	AvatarPrefix = "avatars"
	ImagePrefix  = "employer-images"
)

// MaxImageBytes is the largest accepted image upload.
const MaxImageBytes = 10 << 20

// ErrUnsupportedExtension is returned for files whose extension is not allowed.
var ErrUnsupportedExtension = errors.New("unsupported file extension")

// ErrRemoteUnavailable is returned when a file lives in the object store but
// no client is configured.
var ErrRemoteUnavailable = errors.New("cloud storage is disabled while the requested file is stored remotely")

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// ImageExtension return the lower-cased extension of filename when it is an allowed image type.
func ImageExtension(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !imageExtensions[ext] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedExtension, ext)
	}
	return ext, nil
}

// Store decides where file bytes live. A nil Client keeps content in the database.
type Store struct {
	Client Client
}

// NewStore wraps client, which may be nil.
func NewStore(client Client) *Store {
	return &Store{Client: client}
}

// Persist fills file with data, uploading to the object store when enabled.
func (s *Store) Persist(ctx context.Context, file *model.File, data []byte, extension, prefix string) error {
	file.Extension = extension
	if s == nil || s.Client == nil {
		file.Content = data
		file.StorageObjectName = nil
		return nil
	}

	objectName := fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), extension)
	if err := s.Client.UploadFile(ctx, objectName, bytes.NewReader(data)); err != nil {
		return err
	}

	file.StorageObjectName = &objectName
	file.Content = nil
	return nil
}

// Open return a reader over file content and its size.
func (s *Store) Open(ctx context.Context, file *model.File) (io.ReadCloser, int64, error) {
	if file.StorageObjectName == nil {
		return io.NopCloser(bytes.NewReader(file.Content)), int64(len(file.Content)), nil
	}
	if s == nil || s.Client == nil {
		return nil, 0, ErrRemoteUnavailable
	}
	return s.Client.DownloadFile(ctx, *file.StorageObjectName)
}
