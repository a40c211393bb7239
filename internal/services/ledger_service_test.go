package services

import (
	"context"
	"errors"
	"testing"

	"saldo/internal/core"
	"saldo/internal/ledger/memory"
)

func TestAddTransactionValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewLedgerService(memory.NewStore())

	cases := []struct {
		name string
		in   core.TransactionInput
		want error
	}{
		{"negative amount", core.TransactionInput{Amount: "-5", Category: "Food", Date: "2024-06-01", Kind: core.Expense}, core.ErrInvalidAmount},
		{"zero amount", core.TransactionInput{Amount: "0", Category: "Food", Date: "2024-06-01", Kind: core.Expense}, core.ErrInvalidAmount},
		{"empty amount", core.TransactionInput{Amount: "", Category: "Food", Date: "2024-06-01", Kind: core.Expense}, core.ErrEmptyAmount},
		{"no category", core.TransactionInput{Amount: "10", Date: "2024-06-01", Kind: core.Expense}, core.ErrNoCategorySelected},
		{"no date", core.TransactionInput{Amount: "10", Category: "Food", Kind: core.Expense}, core.ErrEmptyDate},
	}
	for _, tc := range cases {
		if _, err := svc.AddTransaction(ctx, tc.in); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	tx, err := svc.AddTransaction(ctx, core.TransactionInput{
		Amount: "25.50", Category: "Food", Date: "2024-06-01", Kind: core.Expense,
	})
	if err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
	if tx.ID == 0 || tx.Amount.Cents != 2550 {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
}

func TestAddAndDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewLedgerService(store)

	tx, err := svc.AddTransaction(ctx, core.TransactionInput{
		Amount: "10", Category: "Salary", Date: "2024-06-01", Kind: core.Income,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.DeleteTransaction(ctx, tx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	txs, _ := svc.ListTransactions(ctx)
	if len(txs) != 0 {
		t.Fatalf("ledger not empty after delete: %v", txs)
	}
}
