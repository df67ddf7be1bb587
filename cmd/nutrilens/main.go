package main

import (
	"context"
	"log/slog"
	"os"

	"nutrilens/config"
	"nutrilens/internal/delivery"
	"nutrilens/internal/delivery/api"
	"nutrilens/internal/delivery/api/middleware"
	"nutrilens/internal/delivery/api/router/handler"
	"nutrilens/internal/domain/service"
	"nutrilens/internal/infra/auth"
	logs "nutrilens/internal/infra/log"
	"nutrilens/internal/infra/media"
	"nutrilens/internal/infra/observability"
	"nutrilens/internal/infra/persistence"
	"nutrilens/internal/infra/pubsub"
	"nutrilens/internal/infra/qrcode"
	"nutrilens/internal/infra/scoring"
	"nutrilens/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			fx.Annotate(
				observability.NewMetrics,
				fx.As(fx.Self()),
				fx.As(new(service.MetricsRecorder)),
			),
		),
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			persistence.New,
			media.New,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			qrcode.New,
			scoring.NewClient,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewSessionService,
			impl.NewVerificationService,
			impl.NewProductService,
			impl.NewCatalogService,
			impl.NewProfileService,
			impl.NewFavouriteService,
			impl.NewNewsService,
			impl.NewReviewService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewProfileHandler,
			handler.NewFavouriteHandler,
			handler.NewVerificationHandler,
			handler.NewProductHandler,
			handler.NewCatalogHandler,
			handler.NewReviewHandler,
			handler.NewNewsHandler,
			handler.NewMediaHandler,
			handler.NewTestHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
