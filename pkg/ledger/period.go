package ledger

import "time"

// MonthLayout is the layout used for month arguments such as "2019-09".
const MonthLayout = "2006-01"

// MonthRange returns the first and last day of the month containing t.
// Both are at midnight in t's location.
func MonthRange(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 1, -1)
	return start, end
}

// PreviousMonth returns the first day of the month before t's month.
func PreviousMonth(t time.Time) time.Time {
	start, _ := MonthRange(t)
	return start.AddDate(0, -1, 0)
}

// NextMonth returns the first day of the month after t's month.
func NextMonth(t time.Time) time.Time {
	start, _ := MonthRange(t)
	return start.AddDate(0, 1, 0)
}

// ParseMonth parses a "YYYY-MM" string into the first day of that month (UTC).
func ParseMonth(s string) (time.Time, error) {
	return time.Parse(MonthLayout, s)
}

// Between returns the transactions dated within [start, end], both inclusive.
// A zero bound is open.
func Between(txs []*Transaction, start, end time.Time) []*Transaction {
	var out []*Transaction
	for _, t := range txs {
		if !start.IsZero() && t.Date.Before(start) {
			continue
		}
		if !end.IsZero() && t.Date.After(end) {
			continue
		}
		out = append(out, t)
	}
	return out
}
