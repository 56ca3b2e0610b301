package match

import "sort"

// Chronological returns a copy of records ordered by date ascending. Records
// on the same date keep their input order.
func Chronological(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// MostRecent returns up to n records ordered by date descending. Records on
// the same date keep their input order.
func MostRecent(records []Record, n int) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
