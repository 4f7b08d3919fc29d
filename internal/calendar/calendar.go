package calendar

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/username/holiday-planner/pkg/dateutil"
)

// ErrCountryNotFound is returned when a source has no data for a country
var ErrCountryNotFound = errors.New("country not found in calendar")

// HolidayType represents the type of a holiday
type HolidayType string

const (
	TypeOfficial  HolidayType = "OFFICIAL"
	TypeReligious HolidayType = "RELIGIOUS"
	TypeCultural  HolidayType = "CULTURAL"
	TypeNational  HolidayType = "NATIONAL"
	TypeOther     HolidayType = "OTHER"
)

// ParseHolidayType maps a type tag to a HolidayType; unknown tags are OTHER
func ParseHolidayType(s string) HolidayType {
	switch t := HolidayType(strings.ToUpper(strings.TrimSpace(s))); t {
	case TypeOfficial, TypeReligious, TypeCultural, TypeNational:
		return t
	case "PUBLIC":
		return TypeOfficial
	default:
		return TypeOther
	}
}

// Holiday represents a single holiday date
type Holiday struct {
	Date time.Time   `json:"date"`
	Name string      `json:"name"`
	Type HolidayType `json:"type"`
}

// Facts supplies holiday data for a country.
type Facts interface {
	// HolidaysInRange returns the holidays within r ordered by date
	HolidaysInRange(ctx context.Context, countryCode string, r dateutil.Range) ([]Holiday, error)

	// HolidaysForAudience returns the holidays within r that apply to the audience
	HolidaysForAudience(ctx context.Context, countryCode string, r dateutil.Range, audienceCode string) ([]Holiday, error)
}

// Dates returns the set of dates of the given holidays
func Dates(holidays []Holiday) dateutil.DateSet {
	set := make(dateutil.DateSet, len(holidays))
	for _, h := range holidays {
		set.Add(h.Date)
	}
	return set
}

// SortByDate orders holidays by date, keeping the order of same-day entries
func SortByDate(holidays []Holiday) {
	sort.SliceStable(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})
}

func normalizeCountry(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
