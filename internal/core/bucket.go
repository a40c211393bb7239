package core

// Bucket is a named recency window used to group transactions for display.
type Bucket string

const (
	BucketToday         Bucket = "Today"
	BucketYesterday     Bucket = "Yesterday"
	BucketLastFewDays   Bucket = "Last Few Days"
	BucketLastWeek      Bucket = "Last Week"
	BucketTwoWeeksAgo   Bucket = "Two Weeks Ago"
	BucketThreeWeeksAgo Bucket = "Three Weeks Ago"
	BucketLastMonth     Bucket = "Last Month"
	BucketOlder         Bucket = "Older"
)

// BucketOrder is the display order of recency buckets, newest first.
var BucketOrder = []Bucket{
	BucketToday,
	BucketYesterday,
	BucketLastFewDays,
	BucketLastWeek,
	BucketTwoWeeksAgo,
	BucketThreeWeeksAgo,
	BucketLastMonth,
	BucketOlder,
}

// BucketByRecency classifies each transaction's date against today into named
// recency buckets. The windows deliberately overlap: Last Week covers the
// whole trailing seven days, so a transaction from two days ago lands in both
// Last Few Days and Last Week. That mirrors the app's established display
// behavior; callers must not assume the buckets partition the input.
//
// Only non-empty buckets appear in the result. Transactions whose date does
// not parse are excluded from every bucket.
func BucketByRecency(today Date, txs []Transaction) map[Bucket][]Transaction {
	var (
		yesterday = today.AddDays(-1)
		weekAgo   = today.AddDays(-7)
		twoWeeks  = today.AddDays(-14)
		threeWk   = today.AddDays(-21)
		monthAgo  = today.AddMonths(-1)
		twoMonths = today.AddMonths(-2)
	)

	out := make(map[Bucket][]Transaction)
	put := func(b Bucket, t Transaction) {
		out[b] = append(out[b], t)
	}

	for _, t := range txs {
		d, err := t.ParsedDate()
		if err != nil {
			continue
		}
		if d.Equal(today.Time) {
			put(BucketToday, t)
		}
		if d.Equal(yesterday.Time) {
			put(BucketYesterday, t)
		}
		// strictly inside (today-7d, yesterday)
		if d.After(weekAgo.Time) && d.Before(yesterday.Time) {
			put(BucketLastFewDays, t)
		}
		// [today-7d, today)
		if !d.Before(weekAgo.Time) && d.Before(today.Time) {
			put(BucketLastWeek, t)
		}
		if d.After(twoWeeks.Time) && d.Before(weekAgo.Time) {
			put(BucketTwoWeeksAgo, t)
		}
		if d.After(threeWk.Time) && d.Before(twoWeeks.Time) {
			put(BucketThreeWeeksAgo, t)
		}
		// (today-2mo, today-1mo]
		if d.After(twoMonths.Time) && !d.After(monthAgo.Time) {
			put(BucketLastMonth, t)
		}
		if d.Before(twoMonths.Time) {
			put(BucketOlder, t)
		}
	}
	return out
}
