package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"nutrilens/internal/domain/entity"
)

// MediaFolder groups uploads by their owner type.
type MediaFolder string

const (
	FolderAvatars  MediaFolder = "users"
	FolderProducts MediaFolder = "products"
	FolderNews     MediaFolder = "news"
)

// MediaFile is an uploaded image held in memory.
type MediaFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// IsImage reports whether the declared content type is an image.
func (f *MediaFile) IsImage() bool {
	return f != nil && strings.HasPrefix(strings.ToLower(f.ContentType), "image/")
}

// MediaStore is the image hosting collaborator.
type MediaStore interface {
	// Upload stores the file and returns its public URL and the identifier used to delete it.
	Upload(ctx context.Context, folder MediaFolder, file *MediaFile) (entity.Media, error)

	// Delete releases a previously uploaded file.
	Delete(ctx context.Context, fileID string) error
}

// MediaReader streams stored files back out. Only self-hosted stores implement it.
type MediaReader interface {
	// Open returns the file body and its content type. A missing file yields ErrMediaNotFound.
	Open(ctx context.Context, fileID string) (io.ReadCloser, string, error)
}

// ErrMediaNotFound is returned by MediaReader.Open for unknown files.
var ErrMediaNotFound = errors.New("media not found")
