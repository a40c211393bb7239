// Package storage implements the ledger store ports on SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"saldo/internal/core"
	"saldo/internal/ledger"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	*ledger.Notifier
	db *sql.DB
}

var _ ledger.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		Notifier: ledger.NewNotifier(),
		db:       db,
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) InsertTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (category, description, amount_cents, kind, date, time_of_day)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.Category, t.Description, t.Amount.Cents, string(t.Kind), t.Date, t.TimeOfDay)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("transaction id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"category", t.Category,
		"kind", t.Kind,
		"amount_cents", t.Amount.Cents,
		"date", t.Date)

	r.publishSnapshot(ctx)
	return id, nil
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, t core.Transaction) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, t.ID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete transaction %d: not found", t.ID)
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", t.ID)
	r.publishSnapshot(ctx)
	return nil
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return r.queryTransactions(ctx,
		`SELECT id, category, description, amount_cents, kind, date, time_of_day
		 FROM transactions ORDER BY date, id`)
}

func (r *SQLiteRepository) ListTransactionsForMonth(ctx context.Context, monthKey string) ([]core.Transaction, error) {
	return r.queryTransactions(ctx,
		`SELECT id, category, description, amount_cents, kind, date, time_of_day
		 FROM transactions WHERE substr(date, 1, 7) = ? ORDER BY date, id`, monthKey)
}

func (r *SQLiteRepository) SumExpenseForCategoryAndMonth(ctx context.Context, category, monthKey string) (core.Money, error) {
	var cents int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM transactions
		 WHERE kind = 'expense' AND category = ? AND substr(date, 1, 7) = ?`,
		category, monthKey).Scan(&cents)
	if err != nil {
		return core.Money{}, fmt.Errorf("sum expense for %s/%s: %w", category, monthKey, err)
	}
	return core.Money{Cents: cents}, nil
}

func (r *SQLiteRepository) InsertBudget(ctx context.Context, b core.Budget) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets (category, amount_cents, month, alert_enabled, alert_threshold)
		 VALUES (?, ?, ?, ?, ?)`,
		b.Category, b.Amount.Cents, b.Month, boolToInt(b.AlertEnabled), b.AlertThreshold)
	if err != nil {
		return 0, fmt.Errorf("insert budget: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("budget id: %w", err)
	}

	slog.InfoContext(ctx, "Budget saved",
		"id", id,
		"category", b.Category,
		"month", b.Month,
		"amount_cents", b.Amount.Cents)
	return id, nil
}

func (r *SQLiteRepository) UpdateBudget(ctx context.Context, b core.Budget) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE budgets SET category = ?, amount_cents = ?, month = ?, alert_enabled = ?, alert_threshold = ?
		 WHERE id = ?`,
		b.Category, b.Amount.Cents, b.Month, boolToInt(b.AlertEnabled), b.AlertThreshold, b.ID)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.ErrBudgetNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeleteBudget(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.ErrBudgetNotFound
	}
	return nil
}

func (r *SQLiteRepository) GetBudgetByID(ctx context.Context, id int64) (core.Budget, error) {
	b, err := scanBudget(r.db.QueryRowContext(ctx,
		`SELECT id, category, amount_cents, month, alert_enabled, alert_threshold
		 FROM budgets WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return core.Budget{}, core.ErrBudgetNotFound
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("get budget %d: %w", id, err)
	}
	return b, nil
}

func (r *SQLiteRepository) GetBudgetsForMonth(ctx context.Context, monthKey string) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, category, amount_cents, month, alert_enabled, alert_threshold
		 FROM budgets WHERE month = ? ORDER BY id`, monthKey)
	if err != nil {
		return nil, fmt.Errorf("budgets for month %s: %w", monthKey, err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// publishSnapshot re-reads the full transaction list and fans it out to
// watchers. A read failure keeps the previous snapshot untouched rather than
// emitting a partial one.
func (r *SQLiteRepository) publishSnapshot(ctx context.Context) {
	txs, err := r.ListTransactions(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Snapshot read failed, keeping previous emission", "error", err)
		return
	}
	r.Publish(txs)
}

func (r *SQLiteRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			t    core.Transaction
			kind string
		)
		if err := rows.Scan(&t.ID, &t.Category, &t.Description, &t.Amount.Cents, &kind, &t.Date, &t.TimeOfDay); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Kind = core.Kind(kind)
		out = append(out, t)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBudget(row rowScanner) (core.Budget, error) {
	var (
		b       core.Budget
		enabled int64
	)
	if err := row.Scan(&b.ID, &b.Category, &b.Amount.Cents, &b.Month, &enabled, &b.AlertThreshold); err != nil {
		return core.Budget{}, err
	}
	b.AlertEnabled = enabled != 0
	return b, nil
}

func boolToInt(v bool) int64 {
	if v {
		return 1
	}
	return 0
}
