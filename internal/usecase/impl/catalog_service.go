package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "nutrilens/internal/delivery/context"
	"nutrilens/internal/domain/entity"
	domainerrors "nutrilens/internal/domain/errors"
	"nutrilens/internal/domain/repository"
	"nutrilens/internal/domain/service"
	"nutrilens/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const maxPublicRating = 5

type catalogService struct {
	products repository.ProductRepository
	scoring  service.ScoringService
	qrcode   service.QRCodeService
	metrics  service.MetricsRecorder
	logger   *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	Products repository.ProductRepository
	Scoring  service.ScoringService
	QRCode   service.QRCodeService
	Metrics  service.MetricsRecorder
	Logger   *slog.Logger
}

func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		products: params.Products,
		scoring:  params.Scoring,
		qrcode:   params.QRCode,
		metrics:  params.Metrics,
		logger:   params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListApproved matches the category case-insensitively. An unknown category simply matches nothing.
func (srv *catalogService) ListApproved(ctx context.Context, category string) ([]*entity.Product, error) {
	approved := true
	filter := repository.ProductFilter{IsApproved: &approved}

	if strings.TrimSpace(category) != "" {
		normalized := entity.NormalizeCategory(category)
		if !normalized.IsValid() {
			return []*entity.Product{}, nil
		}
		filter.Category = &normalized
	}

	products, err := srv.products.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list approved products")
	}

	return products, nil
}

func (srv *catalogService) GetProduct(ctx context.Context, productRef string) (*entity.Product, error) {
	return findProduct(ctx, srv.products, productRef)
}

func (srv *catalogService) RateProduct(ctx context.Context, productRef string) (*entity.Product, error) {
	product, err := findProduct(ctx, srv.products, productRef)
	if err != nil {
		return nil, err
	}

	score, err := srv.scoring.Score(ctx, product.NutritionalInfo)
	if err == nil && (score.Rating < 0 || score.Rating > maxPublicRating) {
		err = errors.Errorf("rating %v out of range", score.Rating)
	}
	if err != nil {
		srv.metrics.IncrCollaboratorFailure(service.CollaboratorScoring)
		srv.log(ctx).Error("Failed to score product",
			slog.String("product_id", product.ID.String()),
			slog.Any("error", err),
		)

		return nil, domainerrors.ErrScoringFailed
	}

	diseases := score.PredictedDiseases
	if diseases == nil {
		diseases = []string{}
	}
	if err := srv.products.UpdateScore(ctx, product.ID, score.Rating, diseases); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to store product rating")
	}

	rated := *product
	rated.PublicRating = score.Rating
	rated.Diseases = diseases

	return &rated, nil
}

// ProductQRCode only serves listed products: the code points at the public product page.
func (srv *catalogService) ProductQRCode(ctx context.Context, productRef string) ([]byte, error) {
	product, err := findProduct(ctx, srv.products, productRef)
	if err != nil {
		return nil, err
	}
	if !product.IsApproved {
		return nil, domainerrors.ErrProductNotFound
	}

	png, err := srv.qrcode.GenerateProductQR(product.ProductID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate QR code")
	}

	return png, nil
}
