package impl

import (
	"testing"

	"nutrilens/internal/domain/entity"
	domainerrors "nutrilens/internal/domain/errors"
	"nutrilens/internal/domain/service"
	mockService "nutrilens/internal/mocks/service"
	"nutrilens/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type catalogFixture struct {
	*fixture
	scoring *mockService.MockScoringService
	qrcode  *mockService.MockQRCodeService
	srv     usecase.CatalogUsecase
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	f := newFixture(t)
	scoring := mockService.NewMockScoringService(t)
	qrcode := mockService.NewMockQRCodeService(t)

	return &catalogFixture{
		fixture: f,
		scoring: scoring,
		qrcode:  qrcode,
		srv: NewCatalogService(CatalogServiceParams{
			Products: f.store.Products(),
			Scoring:  scoring,
			QRCode:   qrcode,
			Metrics:  f.metrics,
			Logger:   f.logger,
		}),
	}
}

func TestCatalogService_ListApproved(t *testing.T) {
	f := newCatalogFixture(t)
	company := f.verifiedCompany(t)
	listed := f.seedProduct(t, company, 1, true)
	f.seedProduct(t, company, 2, false)

	products, err := f.srv.ListApproved(f.ctx, "")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, listed.ID, products[0].ID)

	products, err = f.srv.ListApproved(f.ctx, " BISCUITS ")
	require.NoError(t, err)
	assert.Len(t, products, 1)

	products, err = f.srv.ListApproved(f.ctx, "snacks")
	require.NoError(t, err)
	assert.Empty(t, products)

	products, err = f.srv.ListApproved(f.ctx, "no such shelf")
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestCatalogService_GetProduct(t *testing.T) {
	f := newCatalogFixture(t)
	company := f.verifiedCompany(t)
	product := f.seedProduct(t, company, 3, true)

	byNumber, err := f.srv.GetProduct(f.ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, product.ID, byNumber.ID)

	byID, err := f.srv.GetProduct(f.ctx, product.ID.String())
	require.NoError(t, err)
	assert.Equal(t, product.ProductID, byID.ProductID)

	_, err = f.srv.GetProduct(f.ctx, "99")
	assertAppError(t, err, domainerrors.ErrNotFound, "Product not found")

	_, err = f.srv.GetProduct(f.ctx, "-4")
	require.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestCatalogService_RateProduct(t *testing.T) {
	t.Run("stores the score", func(t *testing.T) {
		f := newCatalogFixture(t)
		company := f.verifiedCompany(t)
		product := f.seedProduct(t, company, 4, true)
		f.scoring.EXPECT().Score(mock.Anything, product.NutritionalInfo).
			Return(&service.Score{Rating: 3.5, PredictedDiseases: []string{"diabetes"}}, nil).
			Once()

		rated, err := f.srv.RateProduct(f.ctx, "4")
		require.NoError(t, err)
		assert.InDelta(t, 3.5, rated.PublicRating, 0.0001)
		assert.Equal(t, []string{"diabetes"}, rated.Diseases)

		stored, err := f.store.Products().FindByID(f.ctx, product.ID)
		require.NoError(t, err)
		assert.InDelta(t, 3.5, stored.PublicRating, 0.0001)
	})

	t.Run("no predicted diseases becomes an empty list", func(t *testing.T) {
		f := newCatalogFixture(t)
		company := f.verifiedCompany(t)
		f.seedProduct(t, company, 5, true)
		f.scoring.EXPECT().Score(mock.Anything, mock.Anything).Return(&service.Score{Rating: 5}, nil).Once()

		rated, err := f.srv.RateProduct(f.ctx, "5")
		require.NoError(t, err)
		assert.NotNil(t, rated.Diseases)
		assert.Empty(t, rated.Diseases)
	})

	tests := []struct {
		name  string
		score *service.Score
		err   error
	}{
		{name: "scoring endpoint fails", err: errors.New("connection refused")},
		{name: "rating above range", score: &service.Score{Rating: 7}},
		{name: "negative rating", score: &service.Score{Rating: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCatalogFixture(t)
			company := f.verifiedCompany(t)
			product := f.seedProduct(t, company, 6, true)
			f.scoring.EXPECT().Score(mock.Anything, mock.Anything).Return(tt.score, tt.err).Once()

			_, err := f.srv.RateProduct(f.ctx, "6")
			assertAppError(t, err, domainerrors.ErrInternal, "Failed to fetch product rating")
			assert.Equal(t, 1, f.metrics.failures[service.CollaboratorScoring])

			stored, err := f.store.Products().FindByID(f.ctx, product.ID)
			require.NoError(t, err)
			assert.Zero(t, stored.PublicRating)
		})
	}
}

func TestCatalogService_ProductQRCode(t *testing.T) {
	f := newCatalogFixture(t)
	company := f.verifiedCompany(t)
	f.seedProduct(t, company, 8, true)
	f.seedProduct(t, company, 9, false)
	f.qrcode.EXPECT().GenerateProductQR(int64(8)).Return([]byte("png"), nil).Once()

	png, err := f.srv.ProductQRCode(f.ctx, "8")
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), png)

	_, err = f.srv.ProductQRCode(f.ctx, "9")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCatalogService_MissingReference(t *testing.T) {
	f := newCatalogFixture(t)

	_, err := f.srv.GetProduct(f.ctx, " ")
	assertAppError(t, err, domainerrors.ErrValidation, entity.FieldProductID+" is required")
}
