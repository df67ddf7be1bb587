package media

import (
	"context"
	"io"
	"path"
	"strings"

	"nutrilens/config"
	"nutrilens/internal/domain/entity"
	"nutrilens/internal/domain/service"
	"nutrilens/internal/errors"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"
)

// BlobStore keeps images in any bucket gocloud.dev can open.
type BlobStore struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// OpenBlobStore opens the bucket named by cfg.BucketURL.
func OpenBlobStore(ctx context.Context, cfg *config.BlobConfig) (*BlobStore, error) {
	if cfg.BucketURL == "" {
		return nil, errors.New("blob bucket url must be provided")
	}

	bucket, err := blob.OpenBucket(ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", cfg.BucketURL)
	}

	return NewBlobStore(bucket, cfg.PublicBaseURL), nil
}

// NewBlobStore wraps an already opened bucket.
func NewBlobStore(bucket *blob.Bucket, publicBaseURL string) *BlobStore {
	return &BlobStore{bucket: bucket, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

func (s *BlobStore) Upload(ctx context.Context, folder service.MediaFolder, file *service.MediaFile) (entity.Media, error) {
	key := path.Join(string(folder), objectName(file))

	if err := s.bucket.WriteAll(ctx, key, file.Data, &blob.WriterOptions{ContentType: file.ContentType}); err != nil {
		return entity.Media{}, errors.Wrapf(err, "failed to write %s", key)
	}

	return entity.Media{URL: s.publicBaseURL + "/" + key, FileID: key}, nil
}

// Delete treats an already missing object as released.
func (s *BlobStore) Delete(ctx context.Context, fileID string) error {
	if fileID == "" {
		return nil
	}

	err := s.bucket.Delete(ctx, fileID)
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.Wrapf(err, "failed to delete %s", fileID)
	}

	return nil
}

func (s *BlobStore) Open(ctx context.Context, fileID string) (io.ReadCloser, string, error) {
	r, err := s.bucket.NewReader(ctx, fileID, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, "", service.ErrMediaNotFound
		}

		return nil, "", errors.Wrapf(err, "failed to open %s", fileID)
	}

	return r, r.ContentType(), nil
}

func (s *BlobStore) Close() error {
	return s.bucket.Close()
}
