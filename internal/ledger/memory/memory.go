// Package memory provides an in-process ledger store. It backs the memory
// data backend and the service tests; semantics match the SQLite store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"saldo/internal/core"
	"saldo/internal/ledger"
)

type Store struct {
	*ledger.Notifier

	mu           sync.Mutex
	transactions map[int64]core.Transaction
	budgets      map[int64]core.Budget
	nextTxID     int64
	nextBudgetID int64
}

var _ ledger.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		Notifier:     ledger.NewNotifier(),
		transactions: make(map[int64]core.Transaction),
		budgets:      make(map[int64]core.Budget),
		nextTxID:     1,
		nextBudgetID: 1,
	}
}

func (s *Store) Close() error { return nil }

func (s *Store) InsertTransaction(_ context.Context, t core.Transaction) (int64, error) {
	s.mu.Lock()
	t.ID = s.nextTxID
	s.nextTxID++
	s.transactions[t.ID] = t
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.Publish(snap)
	return t.ID, nil
}

func (s *Store) DeleteTransaction(_ context.Context, t core.Transaction) error {
	s.mu.Lock()
	if _, ok := s.transactions[t.ID]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("transaction %d: not found", t.ID)
	}
	delete(s.transactions, t.ID)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.Publish(snap)
	return nil
}

func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(), nil
}

func (s *Store) ListTransactionsForMonth(_ context.Context, monthKey string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, t := range s.snapshotLocked() {
		if strings.HasPrefix(t.Date, monthKey+"-") {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) SumExpenseForCategoryAndMonth(_ context.Context, category, monthKey string) (core.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var cents int64
	for _, t := range s.transactions {
		if t.Kind == core.Expense && t.Category == category && strings.HasPrefix(t.Date, monthKey+"-") {
			cents += t.Amount.Cents
		}
	}
	return core.Money{Cents: cents}, nil
}

func (s *Store) InsertBudget(_ context.Context, b core.Budget) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.nextBudgetID
	s.nextBudgetID++
	s.budgets[b.ID] = b
	return b.ID, nil
}

func (s *Store) UpdateBudget(_ context.Context, b core.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.budgets[b.ID]; !ok {
		return core.ErrBudgetNotFound
	}
	s.budgets[b.ID] = b
	return nil
}

func (s *Store) DeleteBudget(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.budgets[id]; !ok {
		return core.ErrBudgetNotFound
	}
	delete(s.budgets, id)
	return nil
}

func (s *Store) GetBudgetByID(_ context.Context, id int64) (core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.budgets[id]
	if !ok {
		return core.Budget{}, core.ErrBudgetNotFound
	}
	return b, nil
}

func (s *Store) GetBudgetsForMonth(_ context.Context, monthKey string) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Budget
	for _, b := range s.budgets {
		if b.Month == monthKey {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// snapshotLocked returns all transactions ordered by date then id, matching
// the SQLite store's listing order. Caller holds s.mu.
func (s *Store) snapshotLocked() []core.Transaction {
	out := make([]core.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out
}
