package impl

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"testing"

	"nutrilens/config"
	"nutrilens/internal/domain/entity"
	domainerrors "nutrilens/internal/domain/errors"
	"nutrilens/internal/domain/service"
	"nutrilens/internal/infra/auth"
	"nutrilens/internal/infra/persistence/memory"
	mockService "nutrilens/internal/mocks/service"
	"nutrilens/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		SecretKey: config.SecretKeyConfig{Access: "access-secret", Refresh: "refresh-secret"},
		Auth:      &config.AuthConfig{BcryptCost: 4},
		Media:     &config.MediaConfig{MaxImageBytes: 1024},
	}
}

// countingMetrics records business counters in memory.
type countingMetrics struct {
	mu        sync.Mutex
	decisions map[string]int
	failures  map[string]int
	leaks     int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{decisions: map[string]int{}, failures: map[string]int{}}
}

func (m *countingMetrics) IncrModerationDecision(workflow, action string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decisions[workflow+"/"+action]++
}

func (m *countingMetrics) IncrCollaboratorFailure(collaborator string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[collaborator]++
}

func (m *countingMetrics) IncrMediaLeak() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaks++
}

type fixture struct {
	ctx       context.Context
	cfg       *config.Config
	store     *memory.Store
	media     *mockService.MockMediaStore
	publisher *mockService.MockEventPublisher
	metrics   *countingMetrics
	logger    *slog.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	publisher := mockService.NewMockEventPublisher(t)
	publisher.EXPECT().PublishModerationEvent(mock.Anything, mock.Anything).Return(nil).Maybe()

	return &fixture{
		ctx:       context.Background(),
		cfg:       newTestConfig(),
		store:     memory.NewStore(),
		media:     mockService.NewMockMediaStore(t),
		publisher: publisher,
		metrics:   newCountingMetrics(),
		logger:    newDiscardLogger(),
	}
}

func (f *fixture) hasher() service.PasswordHasher {
	return auth.NewBcryptHasher(f.cfg)
}

func (f *fixture) tokens(t *testing.T) service.TokenService {
	t.Helper()

	tokens, err := auth.NewJWTService(f.cfg)
	require.NoError(t, err)

	return tokens
}

func (f *fixture) authService(t *testing.T) usecase.AuthUsecase {
	return NewAuthService(AuthServiceParams{
		Principals:   f.store.Principals(),
		Hasher:       f.hasher(),
		TokenService: f.tokens(t),
		Logger:       f.logger,
	})
}

func (f *fixture) verificationService() usecase.VerificationUsecase {
	return NewVerificationService(VerificationServiceParams{
		Principals: f.store.Principals(),
		Publisher:  f.publisher,
		Metrics:    f.metrics,
		Logger:     f.logger,
	})
}

func (f *fixture) productService() usecase.ProductUsecase {
	return NewProductService(ProductServiceParams{
		TxManager:  f.store,
		Products:   f.store.Products(),
		Principals: f.store.Principals(),
		MediaStore: f.media,
		Publisher:  f.publisher,
		Metrics:    f.metrics,
		Config:     f.cfg,
		Logger:     f.logger,
	})
}

// seedPrincipal stores a principal with the given role and status.
func (f *fixture) seedPrincipal(t *testing.T, role entity.Role, status entity.AccountStatus) *entity.Principal {
	t.Helper()

	name := string(role) + "-" + uuid.NewString()[:8]
	p := entity.NewPrincipal(name, name+"@example.com", "Test "+string(role), role)
	p.AccountStatus = status
	require.NoError(t, f.store.Principals().Create(f.ctx, p))

	return p
}

func (f *fixture) verifiedCompany(t *testing.T) *entity.Principal {
	return f.seedPrincipal(t, entity.RoleCompany, entity.AccountStatusVerified)
}

func (f *fixture) admin(t *testing.T) *entity.Principal {
	return f.seedPrincipal(t, entity.RoleAdmin, entity.AccountStatusApproved)
}

// seedProduct stores a product owned by company, listing it on the company when approved.
func (f *fixture) seedProduct(t *testing.T, company *entity.Principal, productID int64, approved bool) *entity.Product {
	t.Helper()

	details, fieldErrors := parseProductDetails(validForm(productID))
	require.Empty(t, fieldErrors)

	p := entity.NewPendingProduct(productID, company.ID, details, entity.Media{URL: "https://cdn/p.png", FileID: "file-" + strconv.FormatInt(productID, 10)})
	if approved {
		p.IsApproved = true
		p.ApprovalRequested = false
	}
	require.NoError(t, f.store.Products().Create(f.ctx, p))
	if approved {
		require.NoError(t, f.store.Principals().AddProduct(f.ctx, company.ID, p.ID))
	}

	return p
}

func (f *fixture) reload(t *testing.T, id uuid.UUID) *entity.Principal {
	t.Helper()

	p, err := f.store.Principals().FindByID(f.ctx, id)
	require.NoError(t, err)

	return p
}

func validForm(productID int64) usecase.ProductForm {
	return usecase.ProductForm{
		entity.FieldProductID:         strconv.FormatInt(productID, 10),
		entity.FieldName:              "Oat Biscuits",
		entity.FieldDescription:       "Crunchy whole oat biscuits",
		entity.FieldCategory:          "Biscuits",
		entity.FieldNutritionalInfo:   `{"calories": 120, "protein": 4}`,
		entity.FieldIngredients:       `["oats", "sugar", "butter"]`,
		entity.FieldTags:              `["vegetarian"]`,
		entity.FieldCertifications:    `["FSSAI"]`,
		entity.FieldManufacturingDate: "2026-01-01",
		entity.FieldExpiryDate:        "2026-07-01",
		entity.FieldPrice:             "45.5",
	}
}

func pngFile() *service.MediaFile {
	return &service.MediaFile{Name: "label.png", ContentType: "image/png", Data: []byte("\x89PNG\r\n\x1a\nfake")}
}

// assertAppError checks both the error kind and the client-facing message.
func assertAppError(t *testing.T, err error, kind *domainerrors.BaseError, message string) {
	t.Helper()

	require.ErrorIs(t, err, kind)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, message, appErr.Message())
}
