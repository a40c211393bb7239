package amqp

import (
	"encoding/json"
	"time"
)

// BudgetAlertMessage is published when a budget crosses its alert threshold.
// It carries everything the notification worker needs to render the alert
// without reading the database.
type BudgetAlertMessage struct {
	BudgetID       int64     `json:"budget_id"`
	Category       string    `json:"category"`
	Month          string    `json:"month"`
	AmountCents    int64     `json:"amount_cents"`
	SpentCents     int64     `json:"spent_cents"`
	ThresholdCents int64     `json:"threshold_cents"`
	Exceeded       bool      `json:"exceeded"`
	Timestamp      time.Time `json:"timestamp"`
}

func (m *BudgetAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func BudgetAlertMessageFromJSON(data []byte) (*BudgetAlertMessage, error) {
	var msg BudgetAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
