package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// The use case layer handles transactions through it without depending on a
// specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction. If the function
	// returns an error, the transaction is rolled back; otherwise committed.
	// All repository operations obtained from the factory use the same
	// database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to one transaction.
// Sequence allocation and call-next both read the current ticket set and
// then write one row; binding both steps to a single transaction closes the
// read-then-insert race for a store.
type RepositoryFactory interface {
	// NewStoreRepository returns a StoreRepository bound to the transaction.
	NewStoreRepository() StoreRepository

	// NewTicketRepository returns a TicketRepository bound to the transaction.
	NewTicketRepository() TicketRepository

	// NewPrintJobRepository returns a PrintJobRepository bound to the transaction.
	NewPrintJobRepository() PrintJobRepository
}
