// Package vacation finds leave-day placements that turn holidays and
// weekends into the longest breaks.
package vacation

import (
	"sort"
	"time"

	"github.com/username/holiday-planner/internal/calendar"
	"github.com/username/holiday-planner/pkg/dateutil"
	"go.uber.org/zap"
)

const (
	MaxResults      = 5
	MinEfficiency   = 1.5
	MinTotalDaysOff = 4
	MinBridgeGap    = 2
	MaxBridgeGap    = 10
)

// Optimizer searches leave placements around each holiday
type Optimizer struct {
	logger *zap.Logger
}

// Option configures the Optimizer
type Option func(*Optimizer)

// WithLogger sets the logger used for search statistics
func WithLogger(logger *zap.Logger) Option {
	return func(o *Optimizer) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewOptimizer creates a new Optimizer
func NewOptimizer(opts ...Option) *Optimizer {
	o := &Optimizer{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Optimize returns at most MaxResults candidates, best efficiency first.
// For every holiday on a weekday and every budget 1..maxLeaveDays it tries
// leave before the holiday, leave after it and a bridge to a nearby holiday.
// An empty result means no placement passed the thresholds.
func (o *Optimizer) Optimize(holidays []calendar.Holiday, maxLeaveDays int) []Candidate {
	set := calendar.Dates(holidays)

	// canonical name per date: the first holiday listed on it
	names := make(map[string]string, len(holidays))
	for _, h := range holidays {
		if _, ok := names[dateutil.Key(h.Date)]; !ok {
			names[dateutil.Key(h.Date)] = h.Name
		}
	}

	var all []Candidate
	skipped := 0
	for _, h := range holidays {
		if dateutil.IsWeekend(h.Date) {
			skipped++
			continue
		}

		date := dateutil.StartOfDay(h.Date)
		for leave := 1; leave <= maxLeaveDays; leave++ {
			if c, ok := extendBefore(date, h.Name, leave, set); ok {
				all = append(all, c)
			}
			if c, ok := extendAfter(date, h.Name, leave, set); ok {
				all = append(all, c)
			}
			if c, ok := bridge(date, leave, set, names); ok {
				all = append(all, c)
			}
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Efficiency > all[j].Efficiency
	})

	result := make([]Candidate, 0, MaxResults)
	seen := make(map[string]struct{})
	for _, c := range all {
		if c.VacationDaysNeeded <= 0 || c.Efficiency < MinEfficiency || c.TotalDaysOff < MinTotalDaysOff {
			continue
		}
		if _, dup := seen[c.key()]; dup {
			continue
		}
		seen[c.key()] = struct{}{}

		result = append(result, c)
		if len(result) == MaxResults {
			break
		}
	}

	o.logger.Debug("Vacation search finished",
		zap.Int("holidays", len(holidays)),
		zap.Int("weekend_holidays_skipped", skipped),
		zap.Int("max_leave_days", maxLeaveDays),
		zap.Int("candidates", len(all)),
		zap.Int("returned", len(result)))

	return result
}

// extendBefore takes the leave days right before the holiday
func extendBefore(date time.Time, name string, leave int, set dateutil.DateSet) (Candidate, bool) {
	vacation := dateutil.Range{Start: date.AddDate(0, 0, -leave), End: date.AddDate(0, 0, -1)}

	needed := dateutil.WorkingDays(vacation, set)
	if needed == 0 {
		return Candidate{}, false
	}

	total := dateutil.Range{
		Start: dateutil.ExpandBackward(vacation.Start, set),
		End:   dateutil.ExpandForward(date, set),
	}
	if total.Days() <= needed+1 {
		return Candidate{}, false
	}

	return newCandidate(KindExtendBefore, vacation, total, needed, name, ""), true
}

// extendAfter takes the leave days right after the holiday
func extendAfter(date time.Time, name string, leave int, set dateutil.DateSet) (Candidate, bool) {
	vacation := dateutil.Range{Start: date.AddDate(0, 0, 1), End: date.AddDate(0, 0, leave)}

	needed := dateutil.WorkingDays(vacation, set)
	if needed == 0 {
		return Candidate{}, false
	}

	total := dateutil.Range{
		Start: dateutil.ExpandBackward(date, set),
		End:   dateutil.ExpandForward(vacation.End, set),
	}
	if total.Days() <= needed+1 {
		return Candidate{}, false
	}

	return newCandidate(KindExtendAfter, vacation, total, needed, name, ""), true
}

// bridge connects the holiday to the first differently named holiday
// MinBridgeGap..MaxBridgeGap days later whose working days in between fit
// into the leave budget. The break grows over adjacent weekends only, so
// further holidays next to the pair do not count towards it.
func bridge(date time.Time, leave int, set dateutil.DateSet, names map[string]string) (Candidate, bool) {
	name := names[dateutil.Key(date)]

	for gap := MinBridgeGap; gap <= MaxBridgeGap; gap++ {
		next := date.AddDate(0, 0, gap)
		if !set.Has(next) {
			continue
		}

		between := dateutil.Range{Start: date.AddDate(0, 0, 1), End: next.AddDate(0, 0, -1)}
		needed := dateutil.WorkingDays(between, set)
		if needed == 0 || needed > leave {
			continue
		}

		other := names[dateutil.Key(next)]
		if other == name {
			continue
		}

		total := dateutil.Range{
			Start: dateutil.ExpandWeekendBackward(date),
			End:   dateutil.ExpandWeekendForward(next),
		}
		return newCandidate(KindBridge, between, total, needed, name, other), true
	}

	return Candidate{}, false
}
