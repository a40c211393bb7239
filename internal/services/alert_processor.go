package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"saldo/internal/core"
)

// AlertProcessorConfig holds configuration for the periodic budget
// re-evaluation loop.
type AlertProcessorConfig struct {
	// PollInterval is how often current-month budgets are re-evaluated
	// (default: 5m). Mutation-driven recomputation remains the primary
	// path; this loop catches evaluations missed around process restarts.
	PollInterval time.Duration
}

// DefaultAlertProcessorConfig returns sensible defaults.
func DefaultAlertProcessorConfig() AlertProcessorConfig {
	return AlertProcessorConfig{PollInterval: 5 * time.Minute}
}

// AlertProcessor periodically recomputes the active month's budgets so that
// threshold alerts fire even when no mutation arrives to trigger them.
type AlertProcessor struct {
	budgets *BudgetService
	config  AlertProcessorConfig
	now     func() time.Time

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewAlertProcessor(budgets *BudgetService, config AlertProcessorConfig) *AlertProcessor {
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultAlertProcessorConfig().PollInterval
	}
	return &AlertProcessor{
		budgets: budgets,
		config:  config,
		now:     time.Now,
	}
}

// Start begins the evaluation loop. Returns an error if already running.
func (p *AlertProcessor) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("alert processor is already running")
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	p.mu.Unlock()

	go p.runLoop(ctx)

	slog.InfoContext(ctx, "Alert processor started", "poll_interval", p.config.PollInterval)
	return nil
}

// Stop gracefully stops the processor and waits for completion.
func (p *AlertProcessor) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	close(p.stopCh)

	select {
	case <-p.doneCh:
		slog.InfoContext(ctx, "Alert processor stopped gracefully")
	case <-ctx.Done():
		slog.WarnContext(ctx, "Alert processor stop timed out")
		return ctx.Err()
	}

	p.mu.Lock()
	p.running = false
	p.mu.Unlock()
	return nil
}

func (p *AlertProcessor) runLoop(ctx context.Context) {
	defer close(p.doneCh)

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopCh:
			return
		case <-ticker.C:
			if err := p.evaluateCurrentMonth(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic budget evaluation failed", "error", err)
			}
		}
	}
}

func (p *AlertProcessor) evaluateCurrentMonth(ctx context.Context) error {
	monthKey := p.now().Format(core.MonthKeyLayout)
	views, err := p.budgets.ComputeBudgetsForMonth(ctx, monthKey)
	if err != nil {
		return err
	}
	slog.DebugContext(ctx, "Budgets re-evaluated", "month", monthKey, "budgets", len(views))
	return nil
}
