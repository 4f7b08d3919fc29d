package dateutil

import (
	"encoding/json"
	"time"
)

// Range is an inclusive range of civil dates
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange builds a range from two dates, normalized to start of day
func NewRange(start, end time.Time) Range {
	return Range{Start: StartOfDay(start), End: StartOfDay(end)}
}

// YearRange returns 1 January .. 31 December of year
func YearRange(year int) Range {
	return Range{Start: Date(year, time.January, 1), End: Date(year, time.December, 31)}
}

// MonthSpan returns the first day of from .. the last day of to in year
func MonthSpan(year int, from, to time.Month) Range {
	return Range{
		Start: Date(year, from, 1),
		End:   Date(year, to+1, 0),
	}
}

// Valid reports whether Start <= End
func (r Range) Valid() bool {
	return !r.Start.After(r.End)
}

// Ordered returns the range with Start and End swapped if it is inverted
func (r Range) Ordered() Range {
	if r.Valid() {
		return r
	}
	return Range{Start: r.End, End: r.Start}
}

// Days returns the number of days in the range, counted inclusively.
// An inverted range has zero days.
func (r Range) Days() int {
	if !r.Valid() {
		return 0
	}
	return DaysBetween(r.Start, r.End) + 1
}

// Contains reports whether d falls within the range
func (r Range) Contains(d time.Time) bool {
	d = StartOfDay(d)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Covers reports whether other lies completely within r
func (r Range) Covers(other Range) bool {
	return r.Contains(other.Start) && r.Contains(other.End)
}

// String formats the range as dd/MM/yyyy - dd/MM/yyyy
func (r Range) String() string {
	return r.Start.Format(DisplayLayout) + " - " + r.End.Format(DisplayLayout)
}

type rangeJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// MarshalJSON encodes the range with ISO dates
func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal(rangeJSON{Start: Key(r.Start), End: Key(r.End)})
}

// UnmarshalJSON decodes a range with ISO dates
func (r *Range) UnmarshalJSON(data []byte) error {
	var raw rangeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	start, err := time.Parse(KeyLayout, raw.Start)
	if err != nil {
		return err
	}
	end, err := time.Parse(KeyLayout, raw.End)
	if err != nil {
		return err
	}
	*r = Range{Start: start, End: end}
	return nil
}
