// Package mongodb contains the concrete implementation of the persistence layer using MongoDB.
package mongodb

import (
	"context"
	"log/slog"

	"nutrilens/config"
	"nutrilens/internal/errors"
	"nutrilens/internal/infra/persistence/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewClient builds a client from config. No I/O happens until the first operation.
func NewClient(cfg *config.MongoConfig) (*mongo.Client, error) {
	if cfg == nil || cfg.URI == "" {
		return nil, errors.New("mongo uri must be provided")
	}

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
	}

	client, err := mongo.Connect(context.Background(), opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MongoDB client")
	}

	return client, nil
}

// Ping verifies the primary is reachable.
func Ping(ctx context.Context, client *mongo.Client) error {
	return errors.Wrap(client.Ping(ctx, readpref.Primary()), "failed to ping MongoDB")
}

// EnsureIndexes creates the unique and listing indexes. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *slog.Logger) error {
	indexes := map[string][]mongo.IndexModel{
		model.PrincipalCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "role", Value: 1}, {Key: "accountStatus", Value: 1}, {Key: "verificationRequested", Value: 1}}},
		},
		model.ProductCollection: {
			{Keys: bson.D{{Key: "productId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "companyId", Value: 1}}},
			{Keys: bson.D{{Key: "isApproved", Value: 1}, {Key: "approvalRequested", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		model.NewsCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		model.ReviewCollection: {
			{Keys: bson.D{{Key: "product", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}

	for collection, models := range indexes {
		names, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
		if err != nil {
			return errors.Wrapf(err, "failed to create indexes on %s", collection)
		}
		logger.Debug("MongoDB indexes ensured", slog.String("collection", collection), slog.Any("indexes", names))
	}

	return nil
}
