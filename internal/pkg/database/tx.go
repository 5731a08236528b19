package database

import "context"

// TxManager runs fn inside a database transaction. The transaction rides on
// the derived context so repositories pick it up transparently; any error
// from fn rolls the whole unit back.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
