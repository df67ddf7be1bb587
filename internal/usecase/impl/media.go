// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"nutrilens/config"
	"nutrilens/internal/domain/entity"
	domainerrors "nutrilens/internal/domain/errors"
	"nutrilens/internal/domain/service"
	"nutrilens/internal/util"
)

// mediaHandler uploads and releases images on behalf of the use cases.
type mediaHandler struct {
	store    service.MediaStore
	metrics  service.MetricsRecorder
	maxBytes int64
}

func newMediaHandler(store service.MediaStore, metrics service.MetricsRecorder, cfg *config.Config) *mediaHandler {
	handler := &mediaHandler{store: store, metrics: metrics}
	if cfg != nil && cfg.Media != nil {
		handler.maxBytes = cfg.Media.MaxImageBytes
	}

	return handler
}

// validate checks presence, content type and size of an uploaded image.
func (m *mediaHandler) validate(field string, file *service.MediaFile) error {
	switch {
	case file == nil || len(file.Data) == 0:
		return domainerrors.NewValidationError(field, field+" is required")
	case !file.IsImage():
		return domainerrors.NewValidationError(field, field+" must be an image")
	case m.maxBytes > 0 && int64(len(file.Data)) > m.maxBytes:
		return domainerrors.NewValidationError(field, field+" must not exceed "+util.FormatBytes(m.maxBytes))
	}

	return nil
}

func (m *mediaHandler) upload(ctx context.Context, logger *slog.Logger, folder service.MediaFolder, file *service.MediaFile) (entity.Media, error) {
	media, err := m.store.Upload(ctx, folder, file)
	if err != nil {
		m.metrics.IncrCollaboratorFailure(service.CollaboratorMedia)
		logger.Error("Failed to upload image", slog.String("folder", string(folder)), slog.Any("error", err))

		return entity.Media{}, domainerrors.ErrMediaUpload
	}

	return media, nil
}

// discard deletes a file nobody references any more. A failure leaves the file behind and is only recorded.
func (m *mediaHandler) discard(ctx context.Context, logger *slog.Logger, media entity.Media) {
	if media.FileID == "" {
		return
	}

	if err := m.store.Delete(ctx, media.FileID); err != nil {
		m.metrics.IncrCollaboratorFailure(service.CollaboratorMedia)
		m.metrics.IncrMediaLeak()
		logger.Warn("Leaving unreferenced image behind", slog.String("file_id", media.FileID), slog.Any("error", err))
	}
}
