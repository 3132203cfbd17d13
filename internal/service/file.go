package service

import (
	"context"
	"io"

	"findjob-backend/internal/model"
)

// FileService serves stored uploads.
type FileService struct{ Deps }

// Open return the file record and a reader over its content. The caller closes the reader.
func (s *FileService) Open(ctx context.Context, id int) (model.File, io.ReadCloser, int64, error) {
	var file model.File
	if err := s.DB.WithContext(ctx).First(&file, id).Error; err != nil {
		return model.File{}, nil, 0, notFound(err)
	}
	rc, size, err := s.Store.Open(ctx, &file)
	if err != nil {
		return model.File{}, nil, 0, err
	}
	return file, rc, size, nil
}
