package unitofwork

import "context"

// RepositoryFactory opens a unit of work per request so services can group
// problem, embedding, template and run writes in one transaction.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
