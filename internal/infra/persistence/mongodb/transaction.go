package mongodb

import (
	"context"

	"nutrilens/internal/domain/repository"
	"nutrilens/internal/errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// transactionManager implements the domain's TransactionManager interface with MongoDB sessions.
// Multi-document transactions need a replica set. When they are disabled fn runs without one.
type transactionManager struct {
	client  *mongo.Client
	factory *repositoryFactory
	enabled bool
}

// repositoryFactory hands out repositories on the shared database handle.
// Binding to the transaction happens through the session context passed to each call.
type repositoryFactory struct {
	principals repository.PrincipalRepository
	products   repository.ProductRepository
	reviews    repository.ReviewRepository
}

func (f *repositoryFactory) Principals() repository.PrincipalRepository { return f.principals }

func (f *repositoryFactory) Products() repository.ProductRepository { return f.products }

func (f *repositoryFactory) Reviews() repository.ReviewRepository { return f.reviews }

// NewTransactionManager is the constructor for transactionManager.
func NewTransactionManager(client *mongo.Client, db *mongo.Database, enabled bool) repository.TransactionManager {
	return &transactionManager{
		client: client,
		factory: &repositoryFactory{
			principals: NewPrincipalRepository(db),
			products:   NewProductRepository(db),
			reviews:    NewReviewRepository(db),
		},
		enabled: enabled,
	}
}

// Execute runs fn inside a session transaction. A call made while a session is
// already active on ctx joins it.
func (tm *transactionManager) Execute(ctx context.Context, fn func(ctx context.Context, repos repository.RepositoryFactory) error) error {
	if !tm.enabled || mongo.SessionFromContext(ctx) != nil {
		return fn(ctx, tm.factory)
	}

	session, err := tm.client.StartSession()
	if err != nil {
		return errors.Wrap(err, "failed to start MongoDB session")
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc, tm.factory)
	})

	return err
}
