package core

import (
	"sort"
	"time"
)

// SeriesPoint is one value on a chronological chart.
type SeriesPoint struct {
	Date   Date
	Amount Money
}

// CategoryTotal pairs a category with its summed amount and its share of the
// grand total for the selection.
type CategoryTotal struct {
	Category string
	Total    Money
	Ratio    float64
}

// Balance is net worth over the list: income added, expense subtracted.
func Balance(txs []Transaction) Money {
	var cents int64
	for _, t := range txs {
		switch t.Kind {
		case Income:
			cents += t.Amount.Cents
		case Expense:
			cents -= t.Amount.Cents
		}
	}
	return Money{Cents: cents}
}

// TotalIncome sums the income-kind amounts.
func TotalIncome(txs []Transaction) Money {
	return sumKind(txs, Income)
}

// TotalExpense sums the expense-kind amounts as a positive magnitude.
func TotalExpense(txs []Transaction) Money {
	return sumKind(txs, Expense)
}

func sumKind(txs []Transaction, k Kind) Money {
	var cents int64
	for _, t := range txs {
		if t.Kind == k {
			cents += t.Amount.Cents
		}
	}
	return Money{Cents: cents}
}

// TotalsByCategory groups by category and sums amounts within each group.
// Both kinds sum as positive magnitudes; filter by kind first for a pure
// income or expense breakdown. Unknown categories become their own bucket.
func TotalsByCategory(txs []Transaction) map[string]Money {
	out := make(map[string]Money)
	for _, t := range txs {
		out[t.Category] = out[t.Category].Add(t.Amount)
	}
	return out
}

// CategoryShares is TotalsByCategory restricted to categories present in the
// color mapping. Categories the presentation layer cannot color are dropped,
// because an unmapped slice cannot be rendered.
func CategoryShares(txs []Transaction, colors map[string]string) map[string]Money {
	out := make(map[string]Money)
	for _, t := range txs {
		if _, ok := colors[t.Category]; !ok {
			continue
		}
		out[t.Category] = out[t.Category].Add(t.Amount)
	}
	return out
}

// Series maps each transaction to a dated point sorted ascending. Malformed
// dates map to the zero date and sort first rather than being dropped, so the
// point count always matches the input count.
func Series(txs []Transaction) []SeriesPoint {
	points := make([]SeriesPoint, 0, len(txs))
	for _, t := range txs {
		d, err := t.ParsedDate()
		if err != nil {
			d = Date{Time: time.Time{}}
		}
		points = append(points, SeriesPoint{Date: d, Amount: t.Amount})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date.Time)
	})
	return points
}

// CategoryProgress returns per-category totals for the given kind together
// with the grand total. Ratios guard against a zero grand total. Categories
// sort by descending total, name as tiebreak, so the output is deterministic.
func CategoryProgress(txs []Transaction, k Kind) ([]CategoryTotal, Money) {
	filtered := FilterByKind(txs, k)
	totals := TotalsByCategory(filtered)

	var grand Money
	for _, m := range totals {
		grand = grand.Add(m)
	}

	out := make([]CategoryTotal, 0, len(totals))
	for cat, m := range totals {
		ratio := 0.0
		if grand.Cents != 0 {
			ratio = float64(m.Cents) / float64(grand.Cents)
		}
		out = append(out, CategoryTotal{Category: cat, Total: m, Ratio: ratio})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total.Cents != out[j].Total.Cents {
			return out[i].Total.Cents > out[j].Total.Cents
		}
		return out[i].Category < out[j].Category
	})
	return out, grand
}
