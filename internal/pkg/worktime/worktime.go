package worktime

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used on the wire and as a bucket key.
const DateLayout = "2006-01-02"

var ErrInvalidRange = errors.New("invalid time range")

var hour = decimal.NewFromInt(int64(time.Hour))

// ElapsedHours returns end-start in hours rounded to two decimal places.
func ElapsedHours(start, end time.Time) (float64, error) {
	if end.Before(start) {
		return 0, ErrInvalidRange
	}

	elapsed := decimal.NewFromInt(int64(end.Sub(start))).Div(hour).Round(2)
	return elapsed.InexactFloat64(), nil
}

// DayBounds returns the half-open interval [midnight, next midnight) containing t,
// in t's location.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// MonthBounds returns [first of month, first of next month) in loc.
func MonthBounds(month, year int, loc *time.Location) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	if loc == nil {
		loc = time.UTC
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0), nil
}

// WindowDays returns the n calendar days ending with the day containing end, oldest first.
func WindowDays(end time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}

	last, _ := DayBounds(end)
	days := make([]time.Time, n)
	for i := 0; i < n; i++ {
		days[i] = last.AddDate(0, 0, i-(n-1))
	}
	return days
}

// DateKey normalises t to midnight UTC of its calendar date. Stores persist
// calendar dates in this form so the key does not depend on the server zone.
func DateKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate formats the calendar date of t.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout, s, loc)
}
