package dateutil

import (
	"fmt"
	"time"
)

// ISODate is the wire format for all calendar dates in the holiday schema.
const ISODate = "2006-01-02"

// ParseISODate parses a strict YYYY-MM-DD date string
func ParseISODate(s string) (time.Time, error) {
	t, err := time.Parse(ISODate, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatISODate formats a date as YYYY-MM-DD
func FormatISODate(t time.Time) string {
	return t.Format(ISODate)
}

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// DaysInMonth returns the number of calendar days in the given month
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// InclusiveDays returns the day count between start and end, counting both
// endpoints. Returns 0 when end precedes start.
func InclusiveDays(start, end time.Time) int {
	start = StartOfDay(start)
	end = StartOfDay(end)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// Between returns true when date falls within [start, end] inclusive,
// comparing calendar days only.
func Between(date, start, end time.Time) bool {
	d := StartOfDay(date)
	return !d.Before(StartOfDay(start)) && !d.After(StartOfDay(end))
}

// Today returns today's date (start of day)
func Today() time.Time {
	return StartOfDay(time.Now())
}
