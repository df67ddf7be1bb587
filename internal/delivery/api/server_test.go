package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"nutrilens/config"
	"nutrilens/internal/delivery/api"
	"nutrilens/internal/delivery/api/middleware"
	"nutrilens/internal/delivery/api/router"
	"nutrilens/internal/delivery/api/router/handler"
	"nutrilens/internal/domain/entity"
	"nutrilens/internal/domain/service"
	"nutrilens/internal/infra/auth"
	"nutrilens/internal/infra/media"
	"nutrilens/internal/infra/observability"
	"nutrilens/internal/infra/persistence/memory"
	"nutrilens/internal/infra/pubsub"
	"nutrilens/internal/infra/qrcode"
	mockService "nutrilens/internal/mocks/service"
	"nutrilens/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"gocloud.dev/blob/memblob"
)

const (
	testPassword  = "Secret123!"
	mediaBaseURL  = "http://localhost:5000/media"
	pngSignature  = "\x89PNG\r\n\x1a\n"
	adminUsername = "root"
)

// envelope mirrors both response shapes.
type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	Errors     []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

type testApp struct {
	t       *testing.T
	e       *echo.Echo
	store   *memory.Store
	scoring *mockService.MockScoringService
	metrics *observability.Metrics
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		SecretKey:  config.SecretKeyConfig{Access: "access-secret", Refresh: "refresh-secret"},
		Auth:       &config.AuthConfig{BcryptCost: 4},
		TestRoutes: &config.TestRoutesConfig{Enabled: true},
	}
	cfg.Env.Env = "development"
	cfg.ApplyDefaults()

	return cfg
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := newTestConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	metrics := observability.NewMetrics()
	scoring := mockService.NewMockScoringService(t)

	blobStore := media.NewBlobStore(memblob.OpenBucket(nil), mediaBaseURL)
	t.Cleanup(func() { _ = blobStore.Close() })

	publisher, err := pubsub.NewEventPublisher(pubsub.PublisherParams{
		Lc:     fxtest.NewLifecycle(t),
		Ctx:    context.Background(),
		Config: cfg,
		Logger: logger,
	})
	require.NoError(t, err)

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	hasher := auth.NewBcryptHasher(cfg)

	authUC := impl.NewAuthService(impl.AuthServiceParams{
		Principals:   store.Principals(),
		Hasher:       hasher,
		TokenService: tokens,
		Logger:       logger,
	})
	productUC := impl.NewProductService(impl.ProductServiceParams{
		TxManager:  store,
		Products:   store.Products(),
		Principals: store.Principals(),
		MediaStore: blobStore,
		Publisher:  publisher,
		Metrics:    metrics,
		Config:     cfg,
		Logger:     logger,
	})

	params := router.RouterParams{
		AuthHandler: handler.NewAuthHandler(authUC, tokens, cfg),
		ProfileHandler: handler.NewProfileHandler(impl.NewProfileService(impl.ProfileServiceParams{
			Principals: store.Principals(),
			Hasher:     hasher,
			MediaStore: blobStore,
			Metrics:    metrics,
			Config:     cfg,
			Logger:     logger,
		}), productUC),
		FavouriteHandler: handler.NewFavouriteHandler(impl.NewFavouriteService(store.Principals(), store.Products(), logger)),
		VerificationHandler: handler.NewVerificationHandler(impl.NewVerificationService(impl.VerificationServiceParams{
			Principals: store.Principals(),
			Publisher:  publisher,
			Metrics:    metrics,
			Logger:     logger,
		})),
		ProductHandler: handler.NewProductHandler(productUC),
		CatalogHandler: handler.NewCatalogHandler(impl.NewCatalogService(impl.CatalogServiceParams{
			Products: store.Products(),
			Scoring:  scoring,
			QRCode:   qrcode.New(cfg),
			Metrics:  metrics,
			Logger:   logger,
		})),
		ReviewHandler: handler.NewReviewHandler(impl.NewReviewService(store.Reviews(), store.Products(), logger)),
		NewsHandler: handler.NewNewsHandler(impl.NewNewsService(impl.NewsServiceParams{
			News:       store.News(),
			MediaStore: blobStore,
			Metrics:    metrics,
			Config:     cfg,
			Logger:     logger,
		})),
		MediaHandler:   handler.NewMediaHandler(blobStore),
		TestHandler:    handler.NewTestHandler(),
		AuthMiddleware: middleware.NewAuthMiddleware(impl.NewSessionService(store.Principals(), tokens, logger)),
		Metrics:        metrics,
		Config:         cfg,
	}

	// Admins cannot self-register.
	admin := entity.NewPrincipal(adminUsername, "root@example.com", "Root Admin", entity.RoleAdmin)
	admin.AccountStatus = entity.AccountStatusApproved
	admin.PasswordHash, err = hasher.Hash(testPassword)
	require.NoError(t, err)
	require.NoError(t, store.Principals().Create(context.Background(), admin))

	return &testApp{
		t:       t,
		e:       api.NewEcho(cfg, logger, metrics, params),
		store:   store,
		scoring: scoring,
		metrics: metrics,
	}
}

type requestOption func(*http.Request)

func withCookies(cookies []*http.Cookie) requestOption {
	return func(r *http.Request) {
		for _, c := range cookies {
			r.AddCookie(c)
		}
	}
}

func withBearer(token string) requestOption {
	return func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
}

func (a *testApp) do(method, path string, body io.Reader, contentType string, opts ...requestOption) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	for _, opt := range opts {
		opt(req)
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)

	return rec
}

func (a *testApp) doJSON(method, path string, payload any, opts ...requestOption) *httptest.ResponseRecorder {
	if payload == nil {
		return a.do(method, path, nil, "", opts...)
	}

	data, err := json.Marshal(payload)
	require.NoError(a.t, err)

	return a.do(method, path, bytes.NewReader(data), echo.MIMEApplicationJSON, opts...)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	assert.Equal(t, rec.Code, env.StatusCode)

	return env
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	env := decode(t, rec)
	require.True(t, env.Success, rec.Body.String())

	var data T
	require.NoError(t, json.Unmarshal(env.Data, &data))

	return data
}

func (a *testApp) register(username, role string) {
	rec := a.doJSON(http.MethodPost, "/api/v1/user/register", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"fullName": "Test " + username,
		"password": testPassword,
		"role":     role,
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
}

func (a *testApp) login(username string) []*http.Cookie {
	rec := a.doJSON(http.MethodPost, "/api/v1/user/login", map[string]string{
		"username": username,
		"password": testPassword,
	})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	return rec.Result().Cookies()
}

func cookieNamed(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}

	return nil
}

func productMultipart(t *testing.T, productID int64) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fields := map[string]string{
		entity.FieldProductID:         fmt.Sprint(productID),
		entity.FieldName:              "Oat Biscuits",
		entity.FieldDescription:       "Crunchy whole oat biscuits",
		entity.FieldCategory:          "Biscuits",
		entity.FieldNutritionalInfo:   `{"calories": 120, "protein": 4}`,
		entity.FieldIngredients:       `["oats", "sugar"]`,
		entity.FieldTags:              `["vegetarian"]`,
		entity.FieldManufacturingDate: "2026-01-01",
		entity.FieldExpiryDate:        "2026-07-01",
		entity.FieldPrice:             "45.5",
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename="label.png"`, handler.ProductImageField))
	header.Set(echo.HeaderContentType, "image/png")
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(pngSignature + "image-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return body, w.FormDataContentType()
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/health", "/api/v1/health"} {
		rec := app.do(http.MethodGet, path, nil, "")
		require.Equal(t, http.StatusOK, rec.Code)

		data := decodeData[map[string]string](t, rec)
		assert.Equal(t, "ok", data["status"])
		assert.NotEmpty(t, data["timestamp"])
	}
}

func TestRegisterValidationEnvelope(t *testing.T) {
	app := newTestApp(t)

	rec := app.doJSON(http.MethodPost, "/api/v1/user/register", map[string]string{"username": "bob"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decode(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "All fields are required", env.Message)
	require.NotEmpty(t, env.Errors)
	assert.Equal(t, "fullName", env.Errors[0].Field)

	app.register("bob", "")
	rec = app.doJSON(http.MethodPost, "/api/v1/user/register", map[string]string{
		"username": "bob",
		"email":    "other@example.com",
		"fullName": "Bob Again",
		"password": testPassword,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = app.doJSON(http.MethodPost, "/api/v1/user/register", map[string]string{
		"username": "mallory",
		"email":    "mallory@example.com",
		"fullName": "Mallory",
		"password": testPassword,
		"role":     "admin",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionLifecycle(t *testing.T) {
	app := newTestApp(t)
	app.register("alice", "")

	rec := app.doJSON(http.MethodPost, "/api/v1/user/login", map[string]string{"username": "alice", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())

	cookies := app.login("alice")
	access := cookieNamed(cookies, middleware.AccessTokenCookie)
	refresh := cookieNamed(cookies, handler.RefreshTokenCookie)
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	assert.True(t, access.HttpOnly)
	assert.False(t, access.Secure)
	assert.Equal(t, http.SameSiteLaxMode, access.SameSite)
	assert.Equal(t, int(config.DefaultAccessTokenTTL.Seconds()), access.MaxAge)
	assert.Equal(t, int(config.DefaultRefreshTokenTTL.Seconds()), refresh.MaxAge)

	t.Run("cookie session", func(t *testing.T) {
		rec := app.do(http.MethodGet, "/api/v1/user/profile", nil, "", withCookies([]*http.Cookie{access}))
		require.Equal(t, http.StatusOK, rec.Code)

		profile := decodeData[map[string]any](t, rec)
		assert.Equal(t, "alice", profile["username"])
		assert.NotContains(t, profile, "password")
		assert.NotContains(t, profile, "refreshToken")
	})

	t.Run("bearer session", func(t *testing.T) {
		rec := app.do(http.MethodGet, "/test/auth", nil, "", withBearer(access.Value))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("no token", func(t *testing.T) {
		rec := app.do(http.MethodGet, "/api/v1/user/profile", nil, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		env := decode(t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, "Unauthorized request: no token provided", env.Message)
	})

	t.Run("forged token", func(t *testing.T) {
		rec := app.do(http.MethodGet, "/api/v1/user/profile", nil, "", withBearer(access.Value+"x"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	// Rotation: the presented refresh token is consumed.
	rec = app.do(http.MethodPost, "/api/v1/user/refresh-token", nil, "", withCookies([]*http.Cookie{refresh}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rotated := decodeData[handler.SessionView](t, rec)
	assert.NotEqual(t, refresh.Value, rotated.RefreshToken)

	rec = app.doJSON(http.MethodPost, "/api/v1/user/refresh-token", map[string]string{"refreshToken": refresh.Value})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Logout clears the cookies and invalidates the current refresh token.
	rec = app.do(http.MethodPost, "/api/v1/user/logout", nil, "", withBearer(rotated.AccessToken))
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := cookieNamed(rec.Result().Cookies(), handler.RefreshTokenCookie)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	rec = app.doJSON(http.MethodPost, "/api/v1/user/refresh-token", map[string]string{"refreshToken": rotated.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestModerationFlow(t *testing.T) {
	app := newTestApp(t)
	app.register("acme", "company")
	app.register("carol", "user")
	company := withCookies(app.login("acme"))
	user := withCookies(app.login("carol"))
	admin := withCookies(app.login(adminUsername))

	body, contentType := productMultipart(t, 101)
	rec := app.do(http.MethodPost, "/api/v1/product/register", body, contentType, company)
	require.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	// Company verification
	rec = app.do(http.MethodPost, "/api/v1/user/request-verification", nil, "", company)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	requested := decodeData[handler.PrincipalView](t, rec)
	assert.True(t, requested.VerificationRequested)

	rec = app.do(http.MethodGet, "/api/v1/user/pending-verifications", nil, "", user)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(http.MethodGet, "/api/v1/user/pending-verifications", nil, "", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	pending := decodeData[[]handler.PrincipalView](t, rec)
	require.Len(t, pending, 1)

	rec = app.doJSON(http.MethodPost, "/api/v1/user/handle-verification", map[string]string{
		"companyId": pending[0].ID.String(),
		"action":    "approve",
	}, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	verified := decodeData[handler.PrincipalView](t, rec)
	assert.Equal(t, entity.AccountStatusVerified.String(), verified.AccountStatus)
	assert.False(t, verified.VerificationRequested)

	// Product approval
	body, contentType = productMultipart(t, 101)
	rec = app.do(http.MethodPost, "/api/v1/product/register", body, contentType, company)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	registered := decodeData[handler.ProductView](t, rec)
	assert.False(t, registered.IsApproved)
	assert.True(t, registered.ApprovalRequested)
	assert.True(t, strings.HasPrefix(registered.ProductImage.URL, mediaBaseURL+"/products/"))

	rec = app.do(http.MethodGet, "/api/v1/product/get-products", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeData[[]handler.ProductView](t, rec))

	rec = app.do(http.MethodGet, "/api/v1/product/101/qr", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.doJSON(http.MethodPost, "/api/v1/product/handle-approval", map[string]any{"productId": 101, "action": "approve"}, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decodeData[handler.ProductView](t, rec).IsApproved)

	rec = app.doJSON(http.MethodPost, "/api/v1/product/handle-approval", map[string]any{"productId": "101", "action": "deny"}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Public catalog
	rec = app.do(http.MethodGet, "/api/v1/product/get-products?category=BISCUITS", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[[]handler.ProductView](t, rec), 1)

	rec = app.do(http.MethodGet, "/api/v1/product/get-products?category=meat", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeData[[]handler.ProductView](t, rec))

	rec = app.do(http.MethodGet, "/api/v1/product/"+registered.ID.String(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 101, decodeData[handler.ProductView](t, rec).ProductID)

	rec = app.do(http.MethodGet, "/api/v1/product/101/qr", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.True(t, strings.HasPrefix(rec.Body.String(), pngSignature))

	rec = app.do(http.MethodGet, strings.TrimPrefix(registered.ProductImage.URL, "http://localhost:5000"), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pngSignature+"image-bytes", rec.Body.String())

	app.scoring.EXPECT().Score(mock.Anything, mock.Anything).Return(&service.Score{Rating: 4}, nil).Once()
	rec = app.do(http.MethodGet, "/api/v1/product/101/rating", nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rating := decodeData[handler.RatingView](t, rec)
	assert.InDelta(t, 4.0, rating.Rating, 0.0001)
	assert.NotNil(t, rating.PredictedDisease)

	// Owner deletion removes it from the catalog
	rec = app.do(http.MethodDelete, "/api/v1/product/delete/101", nil, "", company)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = app.do(http.MethodGet, "/api/v1/product/101", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", decode(t, rec).Message)

	rec = app.do(http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "nutrilens_moderation_decisions_total")
	assert.Contains(t, rec.Body.String(), `route="/api/v1/product/:productId"`)
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/v1/nowhere", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, decode(t, rec).Success)
}
