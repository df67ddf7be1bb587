// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"nutrilens/config"
	"nutrilens/internal/delivery/api/middleware"
	"nutrilens/internal/delivery/api/router/handler"
	"nutrilens/internal/infra/observability"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	ProfileHandler      *handler.ProfileHandler
	FavouriteHandler    *handler.FavouriteHandler
	VerificationHandler *handler.VerificationHandler
	ProductHandler      *handler.ProductHandler
	CatalogHandler      *handler.CatalogHandler
	ReviewHandler       *handler.ReviewHandler
	NewsHandler         *handler.NewsHandler
	MediaHandler        *handler.MediaHandler
	TestHandler         *handler.TestHandler
	AuthMiddleware      *middleware.AuthMiddleware
	Metrics             *observability.Metrics
	Config              *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler         *handler.AuthHandler
	profileHandler      *handler.ProfileHandler
	favouriteHandler    *handler.FavouriteHandler
	verificationHandler *handler.VerificationHandler
	productHandler      *handler.ProductHandler
	catalogHandler      *handler.CatalogHandler
	reviewHandler       *handler.ReviewHandler
	newsHandler         *handler.NewsHandler
	mediaHandler        *handler.MediaHandler
	testHandler         *handler.TestHandler
	authMiddleware      *middleware.AuthMiddleware
	metrics             *observability.Metrics
	config              *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:         params.AuthHandler,
		profileHandler:      params.ProfileHandler,
		favouriteHandler:    params.FavouriteHandler,
		verificationHandler: params.VerificationHandler,
		productHandler:      params.ProductHandler,
		catalogHandler:      params.CatalogHandler,
		reviewHandler:       params.ReviewHandler,
		newsHandler:         params.NewsHandler,
		mediaHandler:        params.MediaHandler,
		testHandler:         params.TestHandler,
		authMiddleware:      params.AuthMiddleware,
		metrics:             params.Metrics,
		config:              params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	auth := r.authMiddleware.Authenticated

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	if r.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(r.metrics.Handler()))
	}

	// Self-hosted uploads
	if r.mediaHandler.Enabled() {
		e.GET("/media/*", r.mediaHandler.ServeMedia)
	}

	apiV1 := e.Group("/api/v1")
	apiV1.GET("/health", handler.HealthCheck)

	// Account, session and company verification routes
	userGroup := apiV1.Group("/user")
	{
		userGroup.POST("/register", r.authHandler.Register)
		userGroup.POST("/login", r.authHandler.Login)
		userGroup.POST("/logout", auth(r.authHandler.Logout))
		userGroup.POST("/refresh-token", r.authHandler.RefreshToken)

		userGroup.GET("/profile", auth(r.profileHandler.GetProfile))
		userGroup.PATCH("/update-account", auth(r.profileHandler.UpdateAccount))
		userGroup.POST("/change-password", auth(r.profileHandler.ChangePassword))
		userGroup.PATCH("/update-avatar", auth(r.profileHandler.UpdateAvatar))
		userGroup.GET("/get-all-products", auth(r.profileHandler.ListOwnProducts))

		userGroup.GET("/favourites", auth(r.favouriteHandler.ListFavourites))
		userGroup.POST("/favourites/:productId", auth(r.favouriteHandler.AddFavourite))
		userGroup.DELETE("/favourites/:productId", auth(r.favouriteHandler.RemoveFavourite))

		userGroup.POST("/request-verification", auth(r.verificationHandler.RequestVerification))
		userGroup.GET("/pending-verifications", auth(r.verificationHandler.ListPendingVerifications))
		userGroup.POST("/handle-verification", auth(r.verificationHandler.HandleVerification))
		userGroup.GET("/verified-companies", auth(r.verificationHandler.ListVerifiedCompanies))
		userGroup.POST("/remove-verification", auth(r.verificationHandler.RemoveVerification))

		// Public profile lookup; echo matches the static paths above first
		userGroup.GET("/:id", r.profileHandler.GetPublicProfile)
	}

	// Product approval, owner edits and the public catalog
	productGroup := apiV1.Group("/product")
	{
		productGroup.POST("/register", auth(r.productHandler.RegisterProduct))
		productGroup.GET("/pending-approvals", auth(r.productHandler.ListPendingApprovals))
		productGroup.POST("/handle-approval", auth(r.productHandler.HandleApproval))
		productGroup.GET("/approved-products", auth(r.productHandler.ListApprovedProducts))
		productGroup.POST("/remove-approval", auth(r.productHandler.RemoveApproval))
		productGroup.DELETE("/delete/:productId", auth(r.productHandler.DeleteProduct))
		productGroup.PATCH("/update-product/:productId", auth(r.productHandler.UpdateDetails))
		productGroup.PATCH("/update-image/:productId", auth(r.productHandler.UpdateImage))

		productGroup.GET("/get-products", r.catalogHandler.ListProducts)
		productGroup.GET("/:productId", r.catalogHandler.GetProduct)
		productGroup.GET("/:productId/rating", r.catalogHandler.RateProduct)
		productGroup.GET("/:productId/qr", r.catalogHandler.ProductQRCode)

		productGroup.GET("/:productId/reviews", r.reviewHandler.ListReviews)
		productGroup.POST("/:productId/reviews", auth(r.reviewHandler.CreateReview))
	}

	reviewGroup := apiV1.Group("/review")
	{
		reviewGroup.POST("/:reviewId/like", auth(r.reviewHandler.Like))
		reviewGroup.POST("/:reviewId/dislike", auth(r.reviewHandler.Dislike))
	}

	newsGroup := apiV1.Group("/news")
	{
		newsGroup.GET("/get-news", r.newsHandler.ListNews)
		newsGroup.GET("/:newsId", r.newsHandler.GetNews)
		newsGroup.POST("/create", auth(r.newsHandler.CreateNews))
		newsGroup.PATCH("/update-news-details/:newsId", auth(r.newsHandler.UpdateNewsDetails))
		newsGroup.PATCH("/update-newsImage/:newsId", auth(r.newsHandler.UpdateNewsImage))
	}
}

func (r *router) RegisterTestRoutes(e *echo.Echo) {
	// Test routes - only enabled when configured
	if r.config.TestRoutes != nil && r.config.TestRoutes.Enabled {
		testGroup := e.Group("/test")
		testGroup.GET("/public", r.testHandler.TestPublicEndpoint)
		testGroup.GET("/auth", r.authMiddleware.Authenticated(r.testHandler.TestAuthMiddleware))
	}
}
