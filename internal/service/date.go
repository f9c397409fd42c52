package service

import "time"

const dateLayout = "2006-01-02"

// NormalizeDate returns the caller-supplied date unmodified when present
// (format is deliberately not validated), otherwise the given time formatted
// as a zero-padded YYYY-MM-DD string.
func NormalizeDate(date string, now time.Time) string {
	if date != "" {
		return date
	}
	return now.Format(dateLayout)
}

// parseDate turns a YYYY-MM-DD string into a time. The bool reports whether
// parsing succeeded; an unparseable date never satisfies a range filter.
func parseDate(date string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, date)
	return t, err == nil
}
