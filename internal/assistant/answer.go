package assistant

import (
	"time"

	"github.com/username/holiday-planner/internal/calendar"
	"github.com/username/holiday-planner/internal/i18n"
	"github.com/username/holiday-planner/internal/query"
	"github.com/username/holiday-planner/internal/vacation"
	"github.com/username/holiday-planner/pkg/dateutil"
)

// Outcome tells how a question was resolved
type Outcome string

const (
	OutcomeAnswered     Outcome = "answered"
	OutcomeNoResults    Outcome = "no_results"
	OutcomeNotFound     Outcome = "not_found"
	OutcomeNeedsInput   Outcome = "needs_input"
	OutcomeError        Outcome = "error"
	OutcomeEmptyMessage Outcome = "empty_message"
)

// Request is a single question
type Request struct {
	Message     string `json:"message"`
	CountryCode string `json:"country_code"`
	Language    string `json:"language"`
}

// StatisticKind selects the statistic a StatisticsQuery asks for
type StatisticKind string

const (
	StatBusiestMonth StatisticKind = "busiest_month"
	StatLongestBreak StatisticKind = "longest_break"
	StatWeekend      StatisticKind = "weekend"
	StatSummary      StatisticKind = "summary"
)

// Params holds what was extracted from the message
type Params struct {
	Range           *dateutil.Range      `json:"range,omitempty"`
	ExplicitRange   bool                 `json:"explicit_range,omitempty"`
	Year            int                  `json:"year,omitempty"`
	HolidayName     string               `json:"holiday_name,omitempty"`
	HolidayType     calendar.HolidayType `json:"holiday_type,omitempty"`
	LeaveBudget     int                  `json:"leave_budget,omitempty"`
	Audience        string               `json:"audience,omitempty"`
	AudienceName    string               `json:"audience_name,omitempty"`
	WorkingDays     bool                 `json:"working_days,omitempty"`
	IncludeWeekends bool                 `json:"include_weekends,omitempty"`
	Duration        bool                 `json:"duration,omitempty"`
	Statistic       StatisticKind        `json:"statistic,omitempty"`
}

// WorkdayBreakdown splits a date range into holiday, weekend and working days.
// Holiday days on a weekend are counted as weekend days unless weekends
// count as working days.
type WorkdayBreakdown struct {
	TotalDays   int `json:"total_days"`
	HolidayDays int `json:"holiday_days"`
	WeekendDays int `json:"weekend_days"`
	WorkingDays int `json:"working_days"`
}

// Break is a run of consecutive non-working days anchored on a holiday
type Break struct {
	Holiday string         `json:"holiday"`
	Range   dateutil.Range `json:"range"`
}

// Statistics summarizes a year of holidays
type Statistics struct {
	Year              int        `json:"year"`
	Total             int        `json:"total"`
	WeekendCount      int        `json:"weekend_count"`
	AveragePerMonth   float64    `json:"average_per_month"`
	BusiestMonth      time.Month `json:"busiest_month,omitempty"`
	BusiestMonthCount int        `json:"busiest_month_count,omitempty"`
	Longest           *Break     `json:"longest,omitempty"`
}

// Duration describes how long a named holiday lasts
type Duration struct {
	Name  string         `json:"name"`
	Days  dateutil.Range `json:"days"`
	Break dateutil.Range `json:"break"`
}

// Answer is the structured result of one question, rendered by the Composer
type Answer struct {
	Intent      query.Intent  `json:"intent"`
	Outcome     Outcome       `json:"outcome"`
	Language    i18n.Language `json:"language"`
	CountryCode string        `json:"country_code"`
	Country     string        `json:"country"`
	Today       time.Time     `json:"today"`
	Params      Params        `json:"params"`

	Holidays   []calendar.Holiday   `json:"holidays,omitempty"`
	Count      int                  `json:"count"`
	Workdays   *WorkdayBreakdown    `json:"workdays,omitempty"`
	Statistics *Statistics          `json:"statistics,omitempty"`
	Durations  []Duration           `json:"durations,omitempty"`
	Candidates []vacation.Candidate `json:"candidates,omitempty"`

	// Text is a free-form answer from the fallback responder
	Text string `json:"text,omitempty"`

	Err error `json:"-"`
}
