package query

import (
	"encoding/json"
	"fmt"
)

// Intent is the classified purpose of a message
type Intent int

const (
	GeneralQuery Intent = iota
	TodayQuery
	DateRangeQuery
	HolidayNameQuery
	SpecificYearQuery
	StatisticsQuery
	HolidayTypeQuery
	VacationOptimizationQuery
	AnnualCountQuery
	AudienceQuery
)

var intentNames = map[Intent]string{
	GeneralQuery:              "GeneralQuery",
	TodayQuery:                "TodayQuery",
	DateRangeQuery:            "DateRangeQuery",
	HolidayNameQuery:          "HolidayNameQuery",
	SpecificYearQuery:         "SpecificYearQuery",
	StatisticsQuery:           "StatisticsQuery",
	HolidayTypeQuery:          "HolidayTypeQuery",
	VacationOptimizationQuery: "VacationOptimizationQuery",
	AnnualCountQuery:          "AnnualCountQuery",
	AudienceQuery:             "AudienceQuery",
}

// String returns the intent name
func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return fmt.Sprintf("Intent(%d)", int(i))
}

// ParseIntent returns the intent with the given name
func ParseIntent(name string) (Intent, error) {
	for intent, n := range intentNames {
		if n == name {
			return intent, nil
		}
	}
	return GeneralQuery, fmt.Errorf("unknown intent: %q", name)
}

// MarshalJSON encodes the intent as its name
func (i Intent) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

// UnmarshalJSON decodes an intent name
func (i *Intent) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	intent, err := ParseIntent(name)
	if err != nil {
		return err
	}
	*i = intent
	return nil
}
