package kernel

import "context"

// UnitOfWork is the transaction boundary wrapped around one command's
// persistence effects.
//
// BeginTransaction is a no-op while a transaction is already open; it never
// nests. Commit applies every pending repository change, commits, and always
// releases the transaction handle; on failure it rolls back before returning
// the error. Rollback is a no-op when no transaction is open.
type UnitOfWork interface {
	BeginTransaction(ctx context.Context) error
	Commit(ctx context.Context) (int, error)
	Rollback(ctx context.Context) error
}
