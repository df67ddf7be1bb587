// Package persistence selects and wires the configured storage driver.
package persistence

import (
	"context"
	"log/slog"

	"nutrilens/config"
	"nutrilens/internal/domain/constants"
	"nutrilens/internal/domain/lifecycle"
	"nutrilens/internal/domain/repository"
	"nutrilens/internal/errors"
	"nutrilens/internal/infra/persistence/memory"
	"nutrilens/internal/infra/persistence/mongodb"

	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Repositories is every store the use cases depend on.
type Repositories struct {
	fx.Out

	Principals repository.PrincipalRepository
	Products   repository.ProductRepository
	News       repository.NewsRepository
	Reviews    repository.ReviewRepository
	TxManager  repository.TransactionManager
}

// New builds the repositories for the configured driver.
func New(params Params) (Repositories, error) {
	switch driver := params.Config.Storage.Driver; driver {
	case constants.StorageDriverMemory:
		params.Logger.Warn("Using in-memory storage, data will not survive a restart")

		return FromMemory(memory.NewStore()), nil
	case "", constants.StorageDriverMongo:
		return newMongo(params)
	default:
		return Repositories{}, errors.Errorf("unknown storage driver: %s", driver)
	}
}

// FromMemory exposes a memory store through the repository interfaces.
func FromMemory(store *memory.Store) Repositories {
	return Repositories{
		Principals: store.Principals(),
		Products:   store.Products(),
		News:       store.News(),
		Reviews:    store.Reviews(),
		TxManager:  store,
	}
}

func newMongo(params Params) (Repositories, error) {
	cfg := params.Config.Mongo
	if cfg == nil {
		return Repositories{}, errors.New("mongo configuration is required for the mongo storage driver")
	}

	client, err := mongodb.NewClient(cfg)
	if err != nil {
		return Repositories{}, err
	}
	db := client.Database(cfg.Database)

	if !cfg.Transactions {
		params.Logger.Warn("MongoDB transactions disabled, multi-document writes are not atomic")
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := mongodb.Ping(ctx, client); err != nil {
				return err
			}

			return mongodb.EnsureIndexes(ctx, db, params.Logger)
		},
		OnStop: func(stopCtx context.Context) error {
			return errors.Wrap(client.Disconnect(stopCtx), "failed to disconnect MongoDB")
		},
	})

	return Repositories{
		Principals: mongodb.NewPrincipalRepository(db),
		Products:   mongodb.NewProductRepository(db),
		News:       mongodb.NewNewsRepository(db),
		Reviews:    mongodb.NewReviewRepository(db),
		TxManager:  mongodb.NewTransactionManager(client, db, cfg.Transactions),
	}, nil
}
