package repositories

import "context"

// TxFn runs inside a transaction. The passed context carries the transaction;
// repository calls made with it join it automatically.
type TxFn func(ctx context.Context) error

// TransactionManager runs multi-repository writes atomically. Services use it
// wherever a mutation must land together with its membership or audit rows.
type TransactionManager interface {
	// ExecTx begins a transaction, runs fn, and commits, rolling back if
	// fn returns an error.
	ExecTx(ctx context.Context, fn TxFn) error
}
