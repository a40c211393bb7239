// Package worker turns consumed budget alert messages into notifications.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"saldo/internal/amqp"
	"saldo/internal/core"
)

// Dispatcher delivers a rendered alert to the user. Implementations may push
// to mail, chat webhooks, or just the process log.
type Dispatcher interface {
	Dispatch(ctx context.Context, subject, body string) error
}

// LogDispatcher writes alerts to the structured log. It is the default when
// no external channel is configured.
type LogDispatcher struct{}

func (LogDispatcher) Dispatch(ctx context.Context, subject, body string) error {
	slog.InfoContext(ctx, "Budget alert", "subject", subject, "body", body)
	return nil
}

// AlertWorker consumes budget alert messages and dispatches notifications.
type AlertWorker struct {
	dispatcher Dispatcher
}

func NewAlertWorker(dispatcher Dispatcher) *AlertWorker {
	if dispatcher == nil {
		dispatcher = LogDispatcher{}
	}
	return &AlertWorker{dispatcher: dispatcher}
}

// HandleAlertMessage renders and dispatches one consumed alert. A dispatch
// failure propagates so the broker redelivers the message.
func (w *AlertWorker) HandleAlertMessage(ctx context.Context, msg *amqp.BudgetAlertMessage) error {
	slog.InfoContext(ctx, "Processing budget alert",
		"budget_id", msg.BudgetID,
		"category", msg.Category,
		"month", msg.Month,
		"exceeded", msg.Exceeded)

	subject, body := renderAlert(msg)
	if err := w.dispatcher.Dispatch(ctx, subject, body); err != nil {
		return fmt.Errorf("dispatch alert for budget %d: %w", msg.BudgetID, err)
	}
	return nil
}

func renderAlert(msg *amqp.BudgetAlertMessage) (subject, body string) {
	spent := core.Money{Cents: msg.SpentCents}
	amount := core.Money{Cents: msg.AmountCents}

	if msg.Exceeded {
		subject = fmt.Sprintf("Budget exceeded: %s (%s)", msg.Category, msg.Month)
		over := core.Money{Cents: msg.SpentCents - msg.AmountCents}
		body = fmt.Sprintf("Spending on %s reached %s against a budget of %s (%s over).",
			msg.Category, spent.Format(), amount.Format(), over.Format())
		return subject, body
	}

	subject = fmt.Sprintf("Budget alert: %s (%s)", msg.Category, msg.Month)
	threshold := core.Money{Cents: msg.ThresholdCents}
	body = fmt.Sprintf("Spending on %s reached %s, past the alert threshold of %s (budget %s).",
		msg.Category, spent.Format(), threshold.Format(), amount.Format())
	return subject, body
}
