package domain

import "time"

// DateLayout is the storage and wire format of calendar dates.
const DateLayout = "2006-01-02"

// CalendarDay truncates t to midnight UTC of its UTC calendar date.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// SameDay reports whether a and b fall on the same UTC calendar date.
func SameDay(a, b time.Time) bool {
	return CalendarDay(a).Equal(CalendarDay(b))
}
