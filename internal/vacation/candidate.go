package vacation

import (
	"fmt"

	"github.com/username/holiday-planner/pkg/dateutil"
)

// Kind tells how a candidate was constructed
type Kind string

const (
	KindExtendBefore Kind = "extend_before"
	KindExtendAfter  Kind = "extend_after"
	KindBridge       Kind = "bridge"
)

// Candidate is one suggested leave placement.
// Values are built once by the optimizer and never modified.
type Candidate struct {
	VacationRange      dateutil.Range `json:"vacation_range"`
	TotalRange         dateutil.Range `json:"total_range"`
	VacationDaysNeeded int            `json:"vacation_days_needed"`
	TotalDaysOff       int            `json:"total_days_off"`
	Efficiency         float64        `json:"efficiency"`
	Description        string         `json:"description"`

	Kind         Kind   `json:"kind"`
	Holiday      string `json:"holiday"`
	OtherHoliday string `json:"other_holiday,omitempty"`
}

func newCandidate(kind Kind, vacation, total dateutil.Range, needed int, holiday, other string) Candidate {
	totalDays := total.Days()
	c := Candidate{
		VacationRange:      vacation,
		TotalRange:         total,
		VacationDaysNeeded: needed,
		TotalDaysOff:       totalDays,
		Efficiency:         float64(totalDays) / float64(needed),
		Kind:               kind,
		Holiday:            holiday,
		OtherHoliday:       other,
	}

	switch kind {
	case KindExtendBefore:
		c.Description = fmt.Sprintf("Weekend + %d leave days + %s", needed, holiday)
	case KindExtendAfter:
		c.Description = fmt.Sprintf("%s + %d leave days + Weekend", holiday, needed)
	case KindBridge:
		c.Description = fmt.Sprintf("Bridge between %s and %s", holiday, other)
	}
	return c
}

// Equal reports whether both candidates cover the same vacation and total ranges
func (c Candidate) Equal(other Candidate) bool {
	return c.key() == other.key()
}

func (c Candidate) key() string {
	return dateutil.Key(c.VacationRange.Start) + "|" + dateutil.Key(c.VacationRange.End) + "|" +
		dateutil.Key(c.TotalRange.Start) + "|" + dateutil.Key(c.TotalRange.End)
}
