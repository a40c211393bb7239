// Package services orchestrates the ledger core: validation and persistence
// of transactions and budgets, derived-view recomputation, and alert
// publication.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"saldo/internal/core"
	"saldo/internal/ledger"
)

// LedgerService gates all transaction mutations. Every submission passes the
// validation of core.TransactionInput before it can reach the store, so the
// aggregation layer only ever sees well-formed amounts.
type LedgerService struct {
	store ledger.TransactionStore
}

func NewLedgerService(store ledger.TransactionStore) *LedgerService {
	return &LedgerService{store: store}
}

// AddTransaction validates the submission and persists it. The returned
// transaction carries the store-assigned id.
func (s *LedgerService) AddTransaction(ctx context.Context, in core.TransactionInput) (core.Transaction, error) {
	t, err := in.Validate()
	if err != nil {
		return core.Transaction{}, err
	}

	id, err := s.store.InsertTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}
	t.ID = id

	slog.InfoContext(ctx, "Transaction recorded",
		"id", id,
		"category", t.Category,
		"kind", t.Kind,
		"amount_cents", t.Amount.Cents)
	return t, nil
}

func (s *LedgerService) DeleteTransaction(ctx context.Context, t core.Transaction) error {
	if err := s.store.DeleteTransaction(ctx, t); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

func (s *LedgerService) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx)
}

func (s *LedgerService) ListTransactionsForMonth(ctx context.Context, monthKey string) ([]core.Transaction, error) {
	return s.store.ListTransactionsForMonth(ctx, monthKey)
}
