package core

import "time"

// FilterByMonth retains transactions whose date falls in the given calendar
// month (1-12), regardless of year. Unparsable dates are excluded.
func FilterByMonth(txs []Transaction, month time.Month) []Transaction {
	var out []Transaction
	for _, t := range txs {
		d, err := t.ParsedDate()
		if err != nil {
			continue
		}
		if d.Month() == month {
			out = append(out, t)
		}
	}
	return out
}

// FilterByKind retains transactions of the requested kind.
func FilterByKind(txs []Transaction, k Kind) []Transaction {
	var out []Transaction
	for _, t := range txs {
		if t.Kind == k {
			out = append(out, t)
		}
	}
	return out
}

// FilterByMonthKey retains transactions whose date falls in the given
// YYYY-MM month.
func FilterByMonthKey(txs []Transaction, monthKey string) []Transaction {
	var out []Transaction
	for _, t := range txs {
		d, err := t.ParsedDate()
		if err != nil {
			continue
		}
		if d.MonthKey() == monthKey {
			out = append(out, t)
		}
	}
	return out
}

// GroupBucketsByMonthName filters a bucketed map down to the given calendar
// month and regroups the survivors by month name ("June"). The month-name key
// is distinct from the recency bucket keys on purpose: once the user narrows
// to a month, recency grouping stops being meaningful.
func GroupBucketsByMonthName(buckets map[Bucket][]Transaction, month time.Month) map[string][]Transaction {
	out := make(map[string][]Transaction)
	for _, list := range buckets {
		for _, t := range FilterByMonth(list, month) {
			name := month.String()
			out[name] = append(out[name], t)
		}
	}
	return out
}
