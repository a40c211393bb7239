// Package ledger declares the ports the core is allowed to reach the durable
// transaction/budget collection through. Implementations live in
// internal/storage (SQLite) and internal/ledger/memory.
package ledger

import (
	"context"

	"saldo/internal/core"
)

// Snapshot is one emission of the live transaction subscription: a complete
// replacement of the transaction list, never a delta. Seq is monotonically
// increasing per store so consumers can discard stale emissions.
type Snapshot struct {
	Seq          uint64
	Transactions []core.Transaction
}

type (
	TransactionStore interface {
		InsertTransaction(ctx context.Context, t core.Transaction) (int64, error)
		DeleteTransaction(ctx context.Context, t core.Transaction) error
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
		// ListTransactionsForMonth returns transactions whose date falls in
		// the YYYY-MM month.
		ListTransactionsForMonth(ctx context.Context, monthKey string) ([]core.Transaction, error)
		// SumExpenseForCategoryAndMonth sums expense-kind amounts for one
		// category in one YYYY-MM month.
		SumExpenseForCategoryAndMonth(ctx context.Context, category, monthKey string) (core.Money, error)
	}

	BudgetStore interface {
		InsertBudget(ctx context.Context, b core.Budget) (int64, error)
		UpdateBudget(ctx context.Context, b core.Budget) error
		DeleteBudget(ctx context.Context, id int64) error
		// GetBudgetByID fails with core.ErrBudgetNotFound when absent; a
		// missing budget is an explicit failure, never a silent zero.
		GetBudgetByID(ctx context.Context, id int64) (core.Budget, error)
		GetBudgetsForMonth(ctx context.Context, monthKey string) ([]core.Budget, error)
	}

	// TransactionWatcher is the live transaction subscription: full-list snapshots
	// pushed on every mutation. The channel carries the latest value only;
	// a slow consumer sees the newest snapshot, not every intermediate one.
	TransactionWatcher interface {
		WatchTransactions(ctx context.Context) <-chan Snapshot
	}

	// Store is the full ledger store surface.
	Store interface {
		TransactionStore
		BudgetStore
		TransactionWatcher
		Close() error
	}
)
