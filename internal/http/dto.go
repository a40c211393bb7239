package http

import (
	"saldo/internal/core"
	"saldo/internal/services"
)

// Wire representations. Amounts travel both as integer cents (for clients
// that compute) and as a formatted decimal string (for clients that render).

type moneyDTO struct {
	Cents     int64  `json:"cents"`
	Formatted string `json:"formatted"`
}

func toMoneyDTO(m core.Money) moneyDTO {
	return moneyDTO{Cents: m.Cents, Formatted: m.Format()}
}

type transactionDTO struct {
	ID          int64    `json:"id"`
	Category    string   `json:"category"`
	Description string   `json:"description,omitempty"`
	Amount      moneyDTO `json:"amount"`
	Signed      string   `json:"signed_amount"`
	Kind        string   `json:"kind"`
	Date        string   `json:"date"`
	TimeOfDay   string   `json:"time_of_day,omitempty"`
}

func toTransactionDTO(t core.Transaction) transactionDTO {
	return transactionDTO{
		ID:          t.ID,
		Category:    t.Category,
		Description: t.Description,
		Amount:      toMoneyDTO(t.Amount),
		Signed:      t.Amount.FormatSigned(t.Kind),
		Kind:        string(t.Kind),
		Date:        t.Date,
		TimeOfDay:   t.TimeOfDay,
	}
}

func toTransactionDTOs(txs []core.Transaction) []transactionDTO {
	out := make([]transactionDTO, 0, len(txs))
	for _, t := range txs {
		out = append(out, toTransactionDTO(t))
	}
	return out
}

type budgetDTO struct {
	ID             int64    `json:"id"`
	Category       string   `json:"category"`
	Amount         moneyDTO `json:"amount"`
	Month          string   `json:"month"`
	AlertEnabled   bool     `json:"alert_enabled"`
	AlertThreshold int64    `json:"alert_threshold"`
}

func toBudgetDTO(b core.Budget) budgetDTO {
	return budgetDTO{
		ID:             b.ID,
		Category:       b.Category,
		Amount:         toMoneyDTO(b.Amount),
		Month:          b.Month,
		AlertEnabled:   b.AlertEnabled,
		AlertThreshold: b.AlertThreshold,
	}
}

type budgetWithSpentDTO struct {
	budgetDTO
	Spent          moneyDTO `json:"spent"`
	Remaining      moneyDTO `json:"remaining"`
	Exceeded       bool     `json:"exceeded"`
	AlertTriggered bool     `json:"alert_triggered"`
}

func toBudgetWithSpentDTO(v core.BudgetWithSpent) budgetWithSpentDTO {
	return budgetWithSpentDTO{
		budgetDTO:      toBudgetDTO(v.Budget),
		Spent:          toMoneyDTO(v.Spent),
		Remaining:      toMoneyDTO(v.Remaining),
		Exceeded:       v.Exceeded,
		AlertTriggered: v.AlertTriggered,
	}
}

type categoryDTO struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Kind  string `json:"kind"`
}

func toCategoryDTOs(cats []core.Category) []categoryDTO {
	out := make([]categoryDTO, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryDTO{Name: c.Name, Icon: c.Icon, Color: c.Color, Kind: string(c.Kind)})
	}
	return out
}

type seriesPointDTO struct {
	Date   string   `json:"date"`
	Amount moneyDTO `json:"amount"`
}

type categoryTotalDTO struct {
	Category string   `json:"category"`
	Total    moneyDTO `json:"total"`
	Ratio    float64  `json:"ratio"`
}

type overviewDTO struct {
	Seq          uint64   `json:"seq"`
	Balance      moneyDTO `json:"balance"`
	TotalIncome  moneyDTO `json:"total_income"`
	TotalExpense moneyDTO `json:"total_expense"`
}

func toOverviewDTO(v services.StatsView) overviewDTO {
	return overviewDTO{
		Seq:          v.Seq,
		Balance:      toMoneyDTO(v.Balance),
		TotalIncome:  toMoneyDTO(v.TotalIncome),
		TotalExpense: toMoneyDTO(v.TotalExpense),
	}
}

type bucketsDTO struct {
	Order   []string                    `json:"order"`
	Buckets map[string][]transactionDTO `json:"buckets"`
}

func toBucketsDTO(v services.StatsView) bucketsDTO {
	out := bucketsDTO{
		Order:   make([]string, 0, len(core.BucketOrder)),
		Buckets: make(map[string][]transactionDTO, len(v.Buckets)),
	}
	for _, b := range core.BucketOrder {
		if txs, ok := v.Buckets[b]; ok {
			out.Order = append(out.Order, string(b))
			out.Buckets[string(b)] = toTransactionDTOs(txs)
		}
	}
	return out
}

type categoriesStatsDTO struct {
	Shares     map[string]moneyDTO `json:"shares"`
	Colors     map[string]string   `json:"colors"`
	Progress   []categoryTotalDTO  `json:"progress"`
	GrandTotal moneyDTO            `json:"grand_total"`
}

func toCategoriesStatsDTO(v services.StatsView) categoriesStatsDTO {
	out := categoriesStatsDTO{
		Shares:     make(map[string]moneyDTO, len(v.Shares)),
		Colors:     v.Colors,
		Progress:   make([]categoryTotalDTO, 0, len(v.Progress)),
		GrandTotal: toMoneyDTO(v.GrandTotal),
	}
	for name, amount := range v.Shares {
		out.Shares[name] = toMoneyDTO(amount)
	}
	for _, p := range v.Progress {
		out.Progress = append(out.Progress, categoryTotalDTO{
			Category: p.Category,
			Total:    toMoneyDTO(p.Total),
			Ratio:    p.Ratio,
		})
	}
	return out
}

func toSeriesDTO(v services.StatsView) []seriesPointDTO {
	out := make([]seriesPointDTO, 0, len(v.Series))
	for _, p := range v.Series {
		date := ""
		if !p.Date.IsZero() {
			date = p.Date.String()
		}
		out = append(out, seriesPointDTO{Date: date, Amount: toMoneyDTO(p.Amount)})
	}
	return out
}

type groupedDTO map[string][]transactionDTO

func toGroupedDTO(v services.StatsView) groupedDTO {
	out := make(groupedDTO, len(v.Grouped))
	for name, txs := range v.Grouped {
		out[name] = toTransactionDTOs(txs)
	}
	return out
}
