package assistant

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/username/holiday-planner/internal/calendar"
	"github.com/username/holiday-planner/internal/i18n"
	"github.com/username/holiday-planner/internal/query"
	"github.com/username/holiday-planner/internal/vacation"
	"github.com/username/holiday-planner/pkg/dateutil"
)

// ShownPlans is the number of vacation plans rendered in a reply
const ShownPlans = 3

// Composer renders Answers as localized text
type Composer struct {
	translator i18n.Translator
}

// NewComposer creates a new Composer
func NewComposer(translator i18n.Translator) *Composer {
	return &Composer{translator: translator}
}

// Compose renders the answer in its language
func (c *Composer) Compose(ans *Answer) string {
	r := renderer{t: c.translator, lang: ans.Language}

	switch ans.Outcome {
	case OutcomeEmptyMessage:
		return r.text("message.empty")
	case OutcomeError:
		return r.text("error.generic")
	}

	switch ans.Intent {
	case query.TodayQuery:
		return r.today(ans)
	case query.DateRangeQuery:
		return r.dateRange(ans)
	case query.HolidayNameQuery:
		return r.holidayName(ans)
	case query.SpecificYearQuery:
		return r.specificYear(ans)
	case query.StatisticsQuery:
		return r.statistics(ans)
	case query.HolidayTypeQuery:
		return r.holidayType(ans)
	case query.VacationOptimizationQuery:
		return r.vacation(ans)
	case query.AnnualCountQuery:
		return r.format("annual.count", i18n.M{"year": ans.Params.Year, "country": ans.Country, "count": ans.Count})
	case query.AudienceQuery:
		return r.audience(ans)
	default:
		if ans.Text != "" {
			return ans.Text
		}
		return r.format("general.capabilities", i18n.M{"country": ans.Country})
	}
}

type renderer struct {
	t    i18n.Translator
	lang i18n.Language
}

func (r renderer) text(key string) string {
	return r.t.Translate(key, r.lang)
}

func (r renderer) format(key string, values i18n.M) string {
	return i18n.Format(r.t, key, r.lang, values)
}

func date(d time.Time) string {
	return d.Format(dateutil.DisplayLayout)
}

// withList appends one bullet line per holiday under the header
func (r renderer) withList(header string, holidays []calendar.Holiday) string {
	lines := make([]string, 0, len(holidays))
	for _, h := range holidays {
		lines = append(lines, r.format("list.item", i18n.M{"name": h.Name, "date": date(h.Date)}))
	}
	return header + "\n\n" + strings.Join(lines, "\n")
}

func (r renderer) today(ans *Answer) string {
	if ans.Outcome == OutcomeNoResults {
		return r.format("today.none", i18n.M{"date": date(ans.Today), "country": ans.Country})
	}

	names := make([]string, 0, len(ans.Holidays))
	for _, h := range ans.Holidays {
		names = append(names, h.Name)
	}
	return r.format("today.found", i18n.M{
		"date":    date(ans.Today),
		"country": ans.Country,
		"names":   strings.Join(names, ", "),
	})
}

func (r renderer) dateRange(ans *Answer) string {
	if ans.Outcome == OutcomeNeedsInput || ans.Params.Range == nil {
		return r.text("range.missing")
	}

	rng := *ans.Params.Range
	values := i18n.M{"start": date(rng.Start), "end": date(rng.End), "country": ans.Country}

	if w := ans.Workdays; w != nil {
		lines := []string{
			r.format("workdays.header", values),
			r.format("workdays.total", i18n.M{"count": w.TotalDays}),
			r.format("workdays.holidays", i18n.M{"count": w.HolidayDays}),
		}
		if !ans.Params.IncludeWeekends {
			lines = append(lines, r.format("workdays.weekends", i18n.M{"count": w.WeekendDays}))
		}
		lines = append(lines, r.format("workdays.working", i18n.M{"count": w.WorkingDays}))
		return strings.Join(lines, "\n")
	}

	if ans.Outcome == OutcomeNoResults {
		return r.format("range.none", values)
	}
	return r.withList(r.format("range.header", values), ans.Holidays)
}

func (r renderer) holidayName(ans *Answer) string {
	switch ans.Outcome {
	case OutcomeNeedsInput:
		return r.text("name.missing")
	case OutcomeNotFound:
		values := i18n.M{"name": ans.Params.HolidayName, "country": ans.Country}
		if rng := ans.Params.Range; rng != nil {
			values["from"] = rng.Start.Year()
			values["to"] = rng.End.Year()
		}
		return r.format("name.not_found", values)
	}

	var lines []string
	if ans.Params.Duration {
		for _, d := range ans.Durations {
			lines = append(lines, r.format("duration.days", i18n.M{
				"name":  d.Name,
				"days":  d.Days.Days(),
				"start": date(d.Days.Start),
				"end":   date(d.Days.End),
			}))
			if d.Break.Days() > d.Days.Days() {
				lines = append(lines, r.format("duration.break", i18n.M{
					"days":  d.Break.Days(),
					"start": date(d.Break.Start),
					"end":   date(d.Break.End),
				}))
			}
		}
		return strings.Join(lines, "\n")
	}

	for _, h := range ans.Holidays {
		lines = append(lines, r.format("name.on", i18n.M{"name": h.Name, "date": date(h.Date)})+r.note(h.Date))
	}
	return strings.Join(lines, "\n")
}

// note flags holidays on a weekend and holidays that extend one
func (r renderer) note(d time.Time) string {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return r.text("note.weekend")
	case time.Monday, time.Friday:
		return r.text("note.long_weekend")
	default:
		return ""
	}
}

func (r renderer) specificYear(ans *Answer) string {
	values := i18n.M{"year": ans.Params.Year, "country": ans.Country}
	if ans.Outcome == OutcomeNoResults {
		return r.format("year.none", values)
	}
	return r.withList(r.format("year.header", values), ans.Holidays)
}

func (r renderer) statistics(ans *Answer) string {
	s := ans.Statistics
	if ans.Outcome == OutcomeNoResults || s == nil {
		return r.text("stats.none")
	}

	switch ans.Params.Statistic {
	case StatBusiestMonth:
		return r.format("stats.busiest_month", i18n.M{
			"month":   i18n.MonthName(r.t, s.BusiestMonth, r.lang),
			"country": ans.Country,
			"count":   s.BusiestMonthCount,
		})
	case StatLongestBreak:
		if s.Longest != nil {
			return r.format("stats.longest", i18n.M{
				"country": ans.Country,
				"name":    s.Longest.Holiday,
				"days":    s.Longest.Range.Days(),
				"start":   date(s.Longest.Range.Start),
				"end":     date(s.Longest.Range.End),
			})
		}
	case StatWeekend:
		return r.format("stats.weekend", i18n.M{"count": s.WeekendCount, "country": ans.Country})
	}

	return strings.Join([]string{
		r.format("stats.header", i18n.M{"country": ans.Country, "year": s.Year}),
		r.format("stats.total", i18n.M{"count": s.Total}),
		r.format("stats.weekends", i18n.M{"count": s.WeekendCount}),
		r.format("stats.average", i18n.M{"average": fmt.Sprintf("%.1f", s.AveragePerMonth)}),
	}, "\n")
}

func (r renderer) holidayType(ans *Answer) string {
	var header string
	switch {
	case ans.Params.HolidayType == "":
		header = r.format("type.header_all", i18n.M{"country": ans.Country, "year": ans.Params.Year})
	case ans.Params.ExplicitRange && ans.Params.Range != nil:
		header = r.format("type.header_range", i18n.M{
			"type":    r.text("type." + string(ans.Params.HolidayType)),
			"start":   date(ans.Params.Range.Start),
			"end":     date(ans.Params.Range.End),
			"country": ans.Country,
		})
	default:
		header = r.format("type.header_year", i18n.M{
			"type":    r.text("type." + string(ans.Params.HolidayType)),
			"country": ans.Country,
			"year":    ans.Params.Year,
		})
	}
	header = upperFirst(header)

	if ans.Outcome == OutcomeNoResults {
		return header + "\n\n" + r.text("type.none")
	}
	return r.withList(header, ans.Holidays)
}

func (r renderer) vacation(ans *Answer) string {
	switch ans.Outcome {
	case OutcomeNeedsInput:
		return r.format("vacation.ask_budget", i18n.M{"country": ans.Country, "year": ans.Params.Year})
	case OutcomeNoResults:
		return r.format("vacation.none", i18n.M{"budget": ans.Params.LeaveBudget})
	}

	parts := []string{r.format("vacation.header", i18n.M{
		"budget":  ans.Params.LeaveBudget,
		"country": ans.Country,
		"year":    ans.Params.Year,
	})}
	for i, c := range ans.Candidates {
		if i == ShownPlans {
			break
		}
		parts = append(parts, r.format("vacation.option", i18n.M{
			"index":       i + 1,
			"days":        c.VacationDaysNeeded,
			"start":       date(c.VacationRange.Start),
			"end":         date(c.VacationRange.End),
			"total":       c.TotalDaysOff,
			"total_start": date(c.TotalRange.Start),
			"total_end":   date(c.TotalRange.End),
			"efficiency":  fmt.Sprintf("%.1f", c.Efficiency),
			"description": r.plan(c),
		}))
	}
	return strings.Join(parts, "\n\n")
}

// plan describes how a candidate was built in the reply language
func (r renderer) plan(c vacation.Candidate) string {
	values := i18n.M{"days": c.VacationDaysNeeded, "holiday": c.Holiday, "other": c.OtherHoliday}
	switch c.Kind {
	case vacation.KindExtendBefore:
		return r.format("plan.extend_before", values)
	case vacation.KindExtendAfter:
		return r.format("plan.extend_after", values)
	case vacation.KindBridge:
		return r.format("plan.bridge", values)
	default:
		return c.Description
	}
}

func (r renderer) audience(ans *Answer) string {
	values := i18n.M{"audience": ans.Params.AudienceName, "country": ans.Country, "year": ans.Params.Year}
	switch ans.Outcome {
	case OutcomeNeedsInput:
		return r.text("audience.missing")
	case OutcomeNoResults:
		return r.format("audience.none", values)
	}
	return r.withList(r.format("audience.header", values), ans.Holidays)
}

func upperFirst(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError || unicode.IsUpper(first) {
		return s
	}
	return string(unicode.ToUpper(first)) + s[size:]
}
