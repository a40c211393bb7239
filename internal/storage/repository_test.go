package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"saldo/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "saldo.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestInsertAndListTransactions(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	id, err := repo.InsertTransaction(ctx, core.Transaction{
		Category:    "Food",
		Description: "lunch",
		Amount:      core.Money{Cents: 1250},
		Kind:        core.Expense,
		Date:        "2024-06-01",
		TimeOfDay:   "12:30",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id != 1 {
		t.Fatalf("expected first id 1, got %d", id)
	}

	txs, err := repo.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txs))
	}
	got := txs[0]
	if got.Category != "Food" || got.Amount.Cents != 1250 || got.Kind != core.Expense || got.Date != "2024-06-01" || got.TimeOfDay != "12:30" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestListTransactionsForMonth(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	dates := []string{"2024-06-01", "2024-06-30", "2024-07-01"}
	for _, d := range dates {
		if _, err := repo.InsertTransaction(ctx, core.Transaction{
			Category: "Food", Amount: core.Money{Cents: 100}, Kind: core.Expense, Date: d,
		}); err != nil {
			t.Fatalf("insert %s: %v", d, err)
		}
	}

	txs, err := repo.ListTransactionsForMonth(ctx, "2024-06")
	if err != nil {
		t.Fatalf("list month: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 june transactions, got %d", len(txs))
	}
}

func TestSumExpenseForCategoryAndMonth(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	seed := []core.Transaction{
		{Category: "Food", Amount: core.Money{Cents: 5000}, Kind: core.Expense, Date: "2024-06-01"},
		{Category: "Food", Amount: core.Money{Cents: 3000}, Kind: core.Expense, Date: "2024-06-15"},
		{Category: "Food", Amount: core.Money{Cents: 4000}, Kind: core.Expense, Date: "2024-07-01"},
		{Category: "Food", Amount: core.Money{Cents: 2000}, Kind: core.Income, Date: "2024-06-20"},
		{Category: "Transport", Amount: core.Money{Cents: 900}, Kind: core.Expense, Date: "2024-06-05"},
	}
	for _, tx := range seed {
		if _, err := repo.InsertTransaction(ctx, tx); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	sum, err := repo.SumExpenseForCategoryAndMonth(ctx, "Food", "2024-06")
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if sum.Cents != 8000 {
		t.Fatalf("sum = %d, expected 8000", sum.Cents)
	}

	empty, err := repo.SumExpenseForCategoryAndMonth(ctx, "Rent", "2024-06")
	if err != nil {
		t.Fatalf("sum empty: %v", err)
	}
	if empty.Cents != 0 {
		t.Fatalf("empty sum = %d", empty.Cents)
	}
}

func TestBudgetCRUD(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	b := core.Budget{Category: "Food", Amount: core.Money{Cents: 10000}, Month: "2024-06", AlertEnabled: true, AlertThreshold: 80}
	id, err := repo.InsertBudget(ctx, b)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	b.ID = id

	got, err := repo.GetBudgetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != b {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, b)
	}

	b.Amount = core.Money{Cents: 15000}
	if err := repo.UpdateBudget(ctx, b); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = repo.GetBudgetByID(ctx, id)
	if got.Amount.Cents != 15000 {
		t.Fatalf("update not persisted: %+v", got)
	}

	list, err := repo.GetBudgetsForMonth(ctx, "2024-06")
	if err != nil || len(list) != 1 {
		t.Fatalf("month list: %v err=%v", list, err)
	}

	if err := repo.DeleteBudget(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetBudgetByID(ctx, id); !errors.Is(err, core.ErrBudgetNotFound) {
		t.Fatalf("expected ErrBudgetNotFound after delete, got %v", err)
	}
	if err := repo.DeleteBudget(ctx, id); !errors.Is(err, core.ErrBudgetNotFound) {
		t.Fatalf("expected ErrBudgetNotFound on double delete, got %v", err)
	}
}

func TestWatchEmitsFullSnapshots(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	repo := newTestRepo(t)

	ch := repo.WatchTransactions(ctx)

	if _, err := repo.InsertTransaction(ctx, core.Transaction{
		Category: "Food", Amount: core.Money{Cents: 100}, Kind: core.Expense, Date: "2024-06-01",
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	snap := <-ch
	if snap.Seq == 0 || len(snap.Transactions) != 1 {
		t.Fatalf("unexpected snapshot: seq=%d n=%d", snap.Seq, len(snap.Transactions))
	}
}
