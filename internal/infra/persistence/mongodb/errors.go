package mongodb

import (
	"context"

	domainerrors "nutrilens/internal/domain/errors"
	"nutrilens/internal/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func isNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

func dbError(err error, details string) error {
	return domainerrors.NewDatabaseExecuteError(err, details)
}

// missingOr tells a guarded write that matched nothing apart from one whose target does not exist.
func missingOr(ctx context.Context, coll *mongo.Collection, filter bson.M, notFound, rejected error) error {
	n, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return dbError(err, "failed to check document existence")
	}
	if n == 0 {
		return notFound
	}

	return rejected
}
