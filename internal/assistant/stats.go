package assistant

import (
	"strings"
	"time"

	"github.com/username/holiday-planner/internal/calendar"
	"github.com/username/holiday-planner/internal/i18n"
	"github.com/username/holiday-planner/pkg/dateutil"
)

// statisticFor picks the statistic asked for in a normalized message
func statisticFor(message string) StatisticKind {
	switch {
	case (strings.Contains(message, "which month") || strings.Contains(message, "hangi ay")) &&
		(strings.Contains(message, "most") || strings.Contains(message, "en çok")):
		return StatBusiestMonth
	case strings.Contains(message, "longest") || strings.Contains(message, "en uzun"):
		return StatLongestBreak
	case strings.Contains(message, "weekend") || strings.Contains(message, "hafta sonu"):
		return StatWeekend
	default:
		return StatSummary
	}
}

func computeStatistics(year int, holidays []calendar.Holiday) *Statistics {
	stats := &Statistics{
		Year:            year,
		Total:           len(holidays),
		WeekendCount:    weekendCount(holidays),
		AveragePerMonth: float64(len(holidays)) / 12,
	}
	stats.BusiestMonth, stats.BusiestMonthCount = busiestMonth(holidays)
	stats.Longest = longestBreak(holidays)
	return stats
}

// workdayBreakdown counts the days of r. Every holiday date is counted once.
func workdayBreakdown(r dateutil.Range, holidays []calendar.Holiday, includeWeekends bool) *WorkdayBreakdown {
	set := dateutil.NewDateSet()
	for _, h := range holidays {
		if r.Contains(h.Date) {
			set.Add(h.Date)
		}
	}

	total := r.Days()
	if includeWeekends {
		return &WorkdayBreakdown{
			TotalDays:   total,
			HolidayDays: set.Len(),
			WorkingDays: total - set.Len(),
		}
	}

	weekends := dateutil.WeekendDays(r)
	working := dateutil.WorkingDays(r, set)
	return &WorkdayBreakdown{
		TotalDays:   total,
		HolidayDays: total - weekends - working,
		WeekendDays: weekends,
		WorkingDays: working,
	}
}

func weekendCount(holidays []calendar.Holiday) int {
	n := 0
	for _, h := range holidays {
		if dateutil.IsWeekend(h.Date) {
			n++
		}
	}
	return n
}

// busiestMonth returns the month with the most holidays; ties go to the
// earlier month
func busiestMonth(holidays []calendar.Holiday) (time.Month, int) {
	var counts [13]int
	for _, h := range holidays {
		counts[h.Date.Month()]++
	}

	best, bestCount := time.Month(0), 0
	for m := time.January; m <= time.December; m++ {
		if counts[m] > bestCount {
			best, bestCount = m, counts[m]
		}
	}
	return best, bestCount
}

// longestBreak returns the longest run of weekend and holiday days that
// contains a holiday; ties go to the earlier run
func longestBreak(holidays []calendar.Holiday) *Break {
	set := calendar.Dates(holidays)

	var best *Break
	for _, h := range holidays {
		r := dateutil.Range{
			Start: dateutil.ExpandBackward(h.Date, set),
			End:   dateutil.ExpandForward(h.Date, set),
		}
		if best == nil || r.Days() > best.Range.Days() ||
			(r.Days() == best.Range.Days() && r.Start.Before(best.Range.Start)) {
			best = &Break{Holiday: h.Name, Range: r}
		}
	}
	return best
}

// durations groups matching holidays into runs of consecutive days with the
// same name and measures the break each run belongs to. matches must be
// sorted by date; all is every holiday of the searched period.
func durations(matches, all []calendar.Holiday) []Duration {
	set := calendar.Dates(all)

	var out []Duration
	for _, h := range matches {
		date := dateutil.StartOfDay(h.Date)
		if n := len(out); n > 0 {
			last := &out[n-1]
			sameName := i18n.Normalize(last.Name) == i18n.Normalize(h.Name)
			if sameName && !date.After(last.Days.End) {
				continue
			}
			if sameName && dateutil.IsSameDay(last.Days.End.AddDate(0, 0, 1), date) {
				last.Days.End = date
				continue
			}
		}
		out = append(out, Duration{Name: h.Name, Days: dateutil.Range{Start: date, End: date}})
	}

	for i := range out {
		out[i].Break = dateutil.Range{
			Start: dateutil.ExpandBackward(out[i].Days.Start, set),
			End:   dateutil.ExpandForward(out[i].Days.End, set),
		}
	}
	return out
}
