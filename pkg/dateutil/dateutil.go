package dateutil

import (
	"fmt"
	"time"
)

// KeyLayout is the layout used for date keys and ISO dates
const KeyLayout = "2006-01-02"

// DisplayLayout is the dd/MM/yyyy layout used in replies
const DisplayLayout = "02/01/2006"

// Date returns the civil date at UTC midnight
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// StartOfDay returns the civil date of t (in t's location) at UTC midnight
func StartOfDay(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// Today returns today's date (start of day)
func Today() time.Time {
	return StartOfDay(time.Now())
}

// Key returns the YYYY-MM-DD key of the date
func Key(d time.Time) string {
	return d.Format(KeyLayout)
}

// IsWeekend returns true if the date is Saturday or Sunday,
// i.e. the 6th or 7th day of a Monday-start week
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

// ParseDate parses a date string in one of the supported formats
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		KeyLayout,
		DisplayLayout,
		"2/1/2006",
		"02.01.2006",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return StartOfDay(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported date format: %q", dateStr)
}

// DaysBetween returns the number of calendar days from a to b (b - a)
func DaysBetween(a, b time.Time) int {
	return int(StartOfDay(b).Sub(StartOfDay(a)).Hours() / 24)
}

// DateSet is a set of civil dates
type DateSet map[string]struct{}

// NewDateSet builds a set from the given dates
func NewDateSet(dates ...time.Time) DateSet {
	set := make(DateSet, len(dates))
	for _, d := range dates {
		set.Add(d)
	}
	return set
}

// Add inserts the date
func (s DateSet) Add(d time.Time) {
	s[Key(d)] = struct{}{}
}

// Has reports whether the date is in the set. A nil set is empty.
func (s DateSet) Has(d time.Time) bool {
	_, ok := s[Key(d)]
	return ok
}

// Len returns the number of dates in the set
func (s DateSet) Len() int {
	return len(s)
}

// IsNonWorking reports whether the date is a weekend day or in holidays
func IsNonWorking(d time.Time, holidays DateSet) bool {
	return IsWeekend(d) || holidays.Has(d)
}

// WorkingDays counts the days in r (inclusive) that are neither weekend
// days nor holidays. An inverted range has no working days.
func WorkingDays(r Range, holidays DateSet) int {
	count := 0
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		if !IsNonWorking(d, holidays) {
			count++
		}
	}
	return count
}

// WeekendDays counts the Saturdays and Sundays in r (inclusive)
func WeekendDays(r Range) int {
	count := 0
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		if IsWeekend(d) {
			count++
		}
	}
	return count
}

// ExpandBackward steps back from d while the previous day is a weekend day
// or a holiday and returns the earliest date reached
func ExpandBackward(d time.Time, holidays DateSet) time.Time {
	for IsNonWorking(d.AddDate(0, 0, -1), holidays) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// ExpandForward steps forward from d while the next day is a weekend day
// or a holiday and returns the latest date reached
func ExpandForward(d time.Time, holidays DateSet) time.Time {
	for IsNonWorking(d.AddDate(0, 0, 1), holidays) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// ExpandWeekendBackward steps back from d over Saturdays and Sundays only
func ExpandWeekendBackward(d time.Time) time.Time {
	for IsWeekend(d.AddDate(0, 0, -1)) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// ExpandWeekendForward steps forward from d over Saturdays and Sundays only
func ExpandWeekendForward(d time.Time) time.Time {
	for IsWeekend(d.AddDate(0, 0, 1)) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}
