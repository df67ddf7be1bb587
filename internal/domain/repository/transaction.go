package repository

import "context"

// TransactionManager defines the interface for managing multi-document writes.
type TransactionManager interface {
	// Execute runs fn within a transaction. If fn returns an error, every write made
	// through the factory and the supplied context is rolled back.
	Execute(ctx context.Context, fn func(ctx context.Context, repos RepositoryFactory) error) error
}

// RepositoryFactory provides repositories bound to the running transaction.
type RepositoryFactory interface {
	Principals() PrincipalRepository
	Products() ProductRepository
	Reviews() ReviewRepository
}
