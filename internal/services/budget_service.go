package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"saldo/internal/amqp"
	"saldo/internal/core"
	"saldo/internal/ledger"
)

// AlertPublisher forwards threshold-crossing alerts to the notification
// collaborator. The AMQP client satisfies it; tests use fakes.
type AlertPublisher interface {
	PublishBudgetAlert(ctx context.Context, msg *amqp.BudgetAlertMessage) error
}

// BudgetService combines budget plans with actual spend. Budgets are always
// recomputed from scratch for a whole month; the data volumes of a personal
// ledger never justify incremental updates.
type BudgetService struct {
	transactions ledger.TransactionStore
	budgets      ledger.BudgetStore
	alerts       AlertPublisher

	// One alert per budget per process lifetime; recomputation happens on
	// every mutation and must not re-notify an already-alerted budget.
	mu      sync.Mutex
	alerted map[int64]string
}

func NewBudgetService(transactions ledger.TransactionStore, budgets ledger.BudgetStore, alerts AlertPublisher) *BudgetService {
	return &BudgetService{
		transactions: transactions,
		budgets:      budgets,
		alerts:       alerts,
		alerted:      make(map[int64]string),
	}
}

// ComputeBudgetsForMonth derives the BudgetWithSpent list for a YYYY-MM
// month. Each budget's spend query is awaited before evaluation; a failed
// spend read fails the whole computation so callers never observe a
// partially-updated list.
func (s *BudgetService) ComputeBudgetsForMonth(ctx context.Context, monthKey string) ([]core.BudgetWithSpent, error) {
	budgets, err := s.budgets.GetBudgetsForMonth(ctx, monthKey)
	if err != nil {
		return nil, fmt.Errorf("budgets for %s: %w", monthKey, err)
	}

	out := make([]core.BudgetWithSpent, 0, len(budgets))
	for _, b := range budgets {
		spent, err := s.transactions.SumExpenseForCategoryAndMonth(ctx, b.Category, monthKey)
		if err != nil {
			return nil, fmt.Errorf("spend for %s/%s: %w", b.Category, monthKey, err)
		}

		view := core.EvaluateBudget(b, spent)
		if view.AlertTriggered {
			s.maybePublishAlert(ctx, view)
		}
		out = append(out, view)
	}
	return out, nil
}

// SaveBudget validates and persists a new budget plan.
func (s *BudgetService) SaveBudget(ctx context.Context, b core.Budget) (int64, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}
	id, err := s.budgets.InsertBudget(ctx, b)
	if err != nil {
		return 0, fmt.Errorf("save budget: %w", err)
	}
	return id, nil
}

// UpdateBudget validates and persists changes to an existing budget. The
// alert latch resets so the updated plan can notify again.
func (s *BudgetService) UpdateBudget(ctx context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if err := s.budgets.UpdateBudget(ctx, b); err != nil {
		return fmt.Errorf("update budget: %w", err)
	}

	s.mu.Lock()
	delete(s.alerted, b.ID)
	s.mu.Unlock()
	return nil
}

func (s *BudgetService) DeleteBudget(ctx context.Context, id int64) error {
	if err := s.budgets.DeleteBudget(ctx, id); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	s.mu.Lock()
	delete(s.alerted, id)
	s.mu.Unlock()
	return nil
}

func (s *BudgetService) GetBudgetByID(ctx context.Context, id int64) (core.Budget, error) {
	return s.budgets.GetBudgetByID(ctx, id)
}

func (s *BudgetService) maybePublishAlert(ctx context.Context, view core.BudgetWithSpent) {
	s.mu.Lock()
	if s.alerted[view.ID] == view.Month {
		s.mu.Unlock()
		return
	}
	s.alerted[view.ID] = view.Month
	s.mu.Unlock()

	if s.alerts == nil {
		slog.WarnContext(ctx, "Alert publisher not available, skipping budget alert",
			"budget_id", view.ID, "category", view.Category)
		return
	}

	msg := &amqp.BudgetAlertMessage{
		BudgetID:       view.ID,
		Category:       view.Category,
		Month:          view.Month,
		AmountCents:    view.Amount.Cents,
		SpentCents:     view.Spent.Cents,
		ThresholdCents: view.ThresholdCents(),
		Exceeded:       view.Exceeded,
		Timestamp:      time.Now(),
	}
	if err := s.alerts.PublishBudgetAlert(ctx, msg); err != nil {
		// Budget computation already succeeded; a failed notification must
		// not fail the read. Unlatch so the next recomputation retries.
		slog.ErrorContext(ctx, "Failed to publish budget alert",
			"budget_id", view.ID, "error", err)
		s.mu.Lock()
		delete(s.alerted, view.ID)
		s.mu.Unlock()
	}
}
