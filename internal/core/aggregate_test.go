package core

import "testing"

func sampleLedger() []Transaction {
	return []Transaction{
		{Category: "Food", Amount: Money{Cents: 5000}, Kind: Expense, Date: "2024-06-01"},
		{Category: "Food", Amount: Money{Cents: 3000}, Kind: Expense, Date: "2024-06-15"},
		{Category: "Salary", Amount: Money{Cents: 100000}, Kind: Income, Date: "2024-06-01"},
	}
}

func TestBalanceScenario(t *testing.T) {
	// spent 80, earned 1000 -> balance 920
	if got := Balance(sampleLedger()); got.Cents != 92000 {
		t.Fatalf("balance = %d cents, expected 92000", got.Cents)
	}
}

func TestBalanceEqualsIncomeMinusExpense(t *testing.T) {
	lists := [][]Transaction{
		nil,
		sampleLedger(),
		{
			{Category: "Rent", Amount: Money{Cents: 90000}, Kind: Expense, Date: "2024-01-01"},
			{Category: "Gifts", Amount: Money{Cents: 500}, Kind: Income, Date: "bad"},
		},
	}
	for i, txs := range lists {
		bal := Balance(txs)
		want := TotalIncome(txs).Sub(TotalExpense(txs))
		if bal != want {
			t.Fatalf("list %d: balance %d != income-expense %d", i, bal.Cents, want.Cents)
		}
	}
}

func TestEmptyListBoundaries(t *testing.T) {
	if Balance(nil).Cents != 0 || TotalIncome(nil).Cents != 0 || TotalExpense(nil).Cents != 0 {
		t.Fatalf("empty list must aggregate to zero")
	}
	progress, grand := CategoryProgress(nil, Expense)
	if len(progress) != 0 || grand.Cents != 0 {
		t.Fatalf("empty progress: %v total %d", progress, grand.Cents)
	}
}

func TestTotalsByCategory(t *testing.T) {
	totals := TotalsByCategory(sampleLedger())
	if totals["Food"].Cents != 8000 {
		t.Fatalf("Food total = %d", totals["Food"].Cents)
	}
	if totals["Salary"].Cents != 100000 {
		t.Fatalf("Salary total = %d", totals["Salary"].Cents)
	}

	// Unfiltered category totals sum to income + expense magnitudes.
	var sum int64
	for _, m := range totals {
		sum += m.Cents
	}
	want := TotalIncome(sampleLedger()).Cents + TotalExpense(sampleLedger()).Cents
	if sum != want {
		t.Fatalf("category sum %d != income+expense %d", sum, want)
	}
}

func TestTotalsByCategoryUnknownCategory(t *testing.T) {
	totals := TotalsByCategory([]Transaction{
		{Category: "Llama Grooming", Amount: Money{Cents: 100}, Kind: Expense, Date: "2024-06-01"},
	})
	if totals["Llama Grooming"].Cents != 100 {
		t.Fatalf("unknown category must form its own bucket: %v", totals)
	}
}

func TestCategorySharesDropsUnmapped(t *testing.T) {
	txs := []Transaction{
		{Category: "Food", Amount: Money{Cents: 100}, Kind: Expense, Date: "2024-06-01"},
		{Category: "Transport", Amount: Money{Cents: 200}, Kind: Expense, Date: "2024-06-02"},
	}
	shares := CategoryShares(txs, map[string]string{"Food": "#FF6B6B"})
	if len(shares) != 1 {
		t.Fatalf("expected only mapped categories, got %v", shares)
	}
	if shares["Food"].Cents != 100 {
		t.Fatalf("Food share = %d", shares["Food"].Cents)
	}
}

func TestSeriesSortedWithSentinel(t *testing.T) {
	txs := []Transaction{
		tx("2024-06-15", 200),
		tx("2024-06-01", 100),
		tx("mangled", 300),
	}
	points := Series(txs)
	if len(points) != 3 {
		t.Fatalf("series must keep malformed dates, got %d points", len(points))
	}
	// Sentinel zero date sorts first.
	if !points[0].Date.IsZero() || points[0].Amount.Cents != 300 {
		t.Fatalf("expected sentinel point first, got %+v", points[0])
	}
	if points[1].Amount.Cents != 100 || points[2].Amount.Cents != 200 {
		t.Fatalf("points not date-ordered: %+v", points)
	}
}

func TestCategoryProgress(t *testing.T) {
	txs := []Transaction{
		{Category: "Food", Amount: Money{Cents: 6000}, Kind: Expense, Date: "2024-06-01"},
		{Category: "Transport", Amount: Money{Cents: 2000}, Kind: Expense, Date: "2024-06-02"},
		{Category: "Salary", Amount: Money{Cents: 100000}, Kind: Income, Date: "2024-06-03"},
	}
	progress, grand := CategoryProgress(txs, Expense)
	if grand.Cents != 8000 {
		t.Fatalf("grand total = %d", grand.Cents)
	}
	if len(progress) != 2 || progress[0].Category != "Food" {
		t.Fatalf("unexpected progress order: %+v", progress)
	}
	if progress[0].Ratio != 0.75 || progress[1].Ratio != 0.25 {
		t.Fatalf("ratios wrong: %+v", progress)
	}
}

func TestCategoryProgressZeroTotal(t *testing.T) {
	progress, grand := CategoryProgress([]Transaction{
		{Category: "Salary", Amount: Money{Cents: 100}, Kind: Income, Date: "2024-06-01"},
	}, Expense)
	if grand.Cents != 0 || len(progress) != 0 {
		t.Fatalf("expected empty expense progress, got %v / %d", progress, grand.Cents)
	}
}
