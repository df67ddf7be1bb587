// Package media implements image hosting for avatars, product and news images.
package media

import (
	"context"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"

	"nutrilens/config"
	"nutrilens/internal/domain/constants"
	"nutrilens/internal/domain/lifecycle"
	"nutrilens/internal/domain/service"
	"nutrilens/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// Params defines the dependencies of the media store.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Stores is the configured media store. Reader is nil unless files are served by this process.
type Stores struct {
	fx.Out

	Store  service.MediaStore
	Reader service.MediaReader
}

// New builds the media store for the configured provider.
func New(params Params) (Stores, error) {
	cfg := params.Config.Media
	if cfg == nil {
		cfg = &config.MediaConfig{}
	}

	switch cfg.Provider {
	case constants.MediaProviderImageKit:
		if cfg.ImageKit == nil {
			return Stores{}, errors.New("imagekit configuration is required for the imagekit media provider")
		}
		store, err := NewImageKitStore(cfg.ImageKit, &http.Client{Timeout: lifecycle.DefaultTimeout})
		if err != nil {
			return Stores{}, err
		}
		params.Logger.Info("Using ImageKit media store")

		return Stores{Store: store}, nil

	case "", constants.MediaProviderBlob:
		if cfg.Blob == nil {
			return Stores{}, errors.New("blob configuration is required for the blob media provider")
		}

		ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancel()

		store, err := OpenBlobStore(ctx, cfg.Blob)
		if err != nil {
			return Stores{}, err
		}
		params.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				return store.Close()
			},
		})
		params.Logger.Info("Using blob media store", slog.String("bucket", cfg.Blob.BucketURL))

		return Stores{Store: store, Reader: store}, nil

	default:
		return Stores{}, errors.Errorf("unknown media provider: %s", cfg.Provider)
	}
}

// objectName keeps the original extension so hosted URLs stay recognisable.
func objectName(file *service.MediaFile) string {
	ext := strings.ToLower(path.Ext(file.Name))
	if ext == "" {
		if exts, _ := mime.ExtensionsByType(file.ContentType); len(exts) > 0 {
			ext = exts[0]
		}
	}

	return uuid.NewString() + ext
}
