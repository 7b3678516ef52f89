package booking

import "time"

// DateLayout is the calendar-date wire format for bookings.
const DateLayout = "2006-01-02"

// ValidInterval reports whether [start, end) is a well-formed window, i.e.
// the start strictly precedes the end.
func ValidInterval(start, end string) bool {
	return start < end
}

// ParseDate parses a "YYYY-MM-DD" booking date.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// IsPastDate reports whether the booking date falls strictly before the
// calendar date of now. Bookings for today and future dates are allowed.
func IsPastDate(date time.Time, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return day.Before(today)
}
