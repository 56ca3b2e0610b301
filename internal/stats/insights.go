package stats

import "github.com/mauv0809/padel-ratings/internal/match"

// closeSetMargin is one break of serve.
const closeSetMargin = 2

// IsClose reports whether a match went to a deciding set or every set was
// won by at most one break.
func IsClose(rec match.Record) bool {
	if len(rec.Sets) == 3 {
		return true
	}
	for _, s := range rec.Sets {
		if s.Margin() > closeSetMargin {
			return false
		}
	}
	return len(rec.Sets) > 0
}

// CloseMatches returns the close matches, newest first.
func CloseMatches(records []match.Record) []match.Record {
	out := make([]match.Record, 0)
	for _, rec := range match.MostRecent(records, -1) {
		if IsClose(rec) {
			out = append(out, rec)
		}
	}
	return out
}
