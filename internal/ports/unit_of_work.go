package ports

import "context"

// Tx is an opaque transaction handle. Infrastructure owns the concrete
// type (here, *gorm.DB).
type Tx interface{}

// UnitOfWork is the transaction boundary for multi-table writes such as
// dataset imports: a callback returning an error rolls back, nil commits.
type UnitOfWork interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct{}

// WithTxContext stores a transaction handle in context so repositories
// invoked inside the boundary join the same transaction.
func WithTxContext(ctx context.Context, tx Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext reads a transaction handle from context.
func TxFromContext(ctx context.Context) Tx {
	return ctx.Value(txKey{})
}
