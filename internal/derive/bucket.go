package derive

import (
	"time"

	"saveit/internal/core"
)

// Bucket is a named group of transactions sharing a display-date label.
type Bucket struct {
	Label        string           `json:"label"`
	Transactions []TransactionRow `json:"transactions"`
}

// BucketByDay groups transactions under "Today", "Yesterday", or a literal
// "MMM dd, yyyy" label. Day equality is decided by comparing day-truncated
// keys, so time of day never moves a transaction across buckets. Buckets
// appear in the order their label is first encountered while scanning the
// input; with the usual date-descending input that is newest-first. Rows
// keep their relative order inside a bucket.
func BucketByDay(transactions []core.Transaction, symbol string, now time.Time) []Bucket {
	yesterday := now.AddDate(0, 0, -1)

	// Non-nil so an empty ledger serializes as an empty list.
	buckets := []Bucket{}
	index := make(map[string]int)
	for _, t := range transactions {
		var label string
		switch {
		case sameCalendarDay(t.Date, now):
			label = "Today"
		case sameCalendarDay(t.Date, yesterday):
			label = "Yesterday"
		default:
			label = t.Date.Format(layoutDayDate)
		}

		row := rowFromTransaction(t, symbol, layoutTimeOnly)
		if i, ok := index[label]; ok {
			buckets[i].Transactions = append(buckets[i].Transactions, row)
			continue
		}
		index[label] = len(buckets)
		buckets = append(buckets, Bucket{Label: label, Transactions: []TransactionRow{row}})
	}
	return buckets
}
