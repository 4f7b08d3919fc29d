package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/username/holiday-planner/internal/audience"
	"github.com/username/holiday-planner/internal/calendar"
	"github.com/username/holiday-planner/internal/fallback"
	"github.com/username/holiday-planner/internal/i18n"
	"github.com/username/holiday-planner/internal/query"
	"github.com/username/holiday-planner/pkg/dateutil"
	"go.uber.org/zap"
)

func (a *Assistant) holidays(ctx context.Context, ans *Answer, r dateutil.Range) ([]calendar.Holiday, error) {
	holidays, err := a.facts.HolidaysInRange(ctx, ans.CountryCode, r)
	if err != nil {
		return nil, fmt.Errorf("failed to get holidays for %s (%s): %w", ans.CountryCode, r, err)
	}
	return holidays, nil
}

func setHolidays(ans *Answer, holidays []calendar.Holiday) {
	ans.Holidays = holidays
	ans.Count = len(holidays)
	if len(holidays) == 0 {
		ans.Outcome = OutcomeNoResults
	} else {
		ans.Outcome = OutcomeAnswered
	}
}

func (a *Assistant) handleToday(ctx context.Context, ans *Answer) error {
	holidays, err := a.holidays(ctx, ans, dateutil.Range{Start: ans.Today, End: ans.Today})
	if err != nil {
		return err
	}
	setHolidays(ans, holidays)
	return nil
}

func (a *Assistant) handleDateRange(ctx context.Context, ans *Answer, msg message) error {
	r, ok := query.ExtractDateRange(msg.raw)
	if !ok {
		ans.Outcome = OutcomeNeedsInput
		return nil
	}
	r = r.Ordered()

	if query.AsksWorkingDays(msg.raw) {
		return a.countWorkdays(ctx, ans, r, query.IncludesWeekends(msg.raw))
	}

	ans.Params.Range = &r
	ans.Params.ExplicitRange = true

	holidays, err := a.holidays(ctx, ans, r)
	if err != nil {
		return err
	}
	setHolidays(ans, holidays)
	return nil
}

func (a *Assistant) countWorkdays(ctx context.Context, ans *Answer, r dateutil.Range, includeWeekends bool) error {
	ans.Params.Range = &r
	ans.Params.ExplicitRange = true
	ans.Params.WorkingDays = true
	ans.Params.IncludeWeekends = includeWeekends

	holidays, err := a.holidays(ctx, ans, r)
	if err != nil {
		return err
	}
	ans.Holidays = holidays
	ans.Count = len(holidays)
	ans.Workdays = workdayBreakdown(r, holidays, includeWeekends)
	ans.Outcome = OutcomeAnswered
	return nil
}

func (a *Assistant) handleHolidayName(ctx context.Context, ans *Answer, msg message) error {
	name, ok := query.ExtractHolidayName(msg.raw)
	if !ok {
		ans.Outcome = OutcomeNeedsInput
		return nil
	}
	ans.Params.HolidayName = name
	ans.Params.Duration = query.AsksDuration(msg.raw)

	year := ans.Today.Year()
	r := dateutil.Range{Start: dateutil.YearRange(year).Start, End: dateutil.YearRange(year + 1).End}
	ans.Params.Range = &r

	all, err := a.holidays(ctx, ans, r)
	if err != nil {
		return err
	}

	needle := i18n.Normalize(name)
	var matches []calendar.Holiday
	for _, h := range all {
		if strings.Contains(i18n.Normalize(h.Name), needle) {
			matches = append(matches, h)
		}
	}

	if len(matches) == 0 {
		ans.Outcome = OutcomeNotFound
		return nil
	}

	ans.Holidays = matches
	ans.Count = len(matches)
	if ans.Params.Duration {
		ans.Durations = durations(matches, all)
	}
	ans.Outcome = OutcomeAnswered
	return nil
}

func (a *Assistant) handleSpecificYear(ctx context.Context, ans *Answer, msg message) error {
	year, ok := query.ExtractYear(msg.raw, ans.Today)
	if !ok {
		year = ans.Today.Year()
	}
	ans.Params.Year = year

	holidays, err := a.holidays(ctx, ans, dateutil.YearRange(year))
	if err != nil {
		return err
	}
	setHolidays(ans, holidays)
	return nil
}

func (a *Assistant) handleStatistics(ctx context.Context, ans *Answer, msg message) error {
	year, ok := query.ExtractYear(msg.raw, ans.Today)
	if !ok {
		year = ans.Today.Year()
	}
	ans.Params.Year = year
	ans.Params.Statistic = statisticFor(msg.normalized)

	holidays, err := a.holidays(ctx, ans, dateutil.YearRange(year))
	if err != nil {
		return err
	}

	setHolidays(ans, holidays)
	if len(holidays) > 0 {
		ans.Statistics = computeStatistics(year, holidays)
	}
	return nil
}

func (a *Assistant) handleHolidayType(ctx context.Context, ans *Answer, msg message) error {
	if t, ok := query.ExtractHolidayType(msg.raw); ok {
		ans.Params.HolidayType = t
	}

	year := ans.Today.Year()
	r := dateutil.YearRange(year)
	if dr, ok := query.ExtractDateRange(msg.raw); ok {
		r = dr.Ordered()
		ans.Params.ExplicitRange = true
	} else if from, to, ok := query.ExtractMonthRange(msg.raw); ok {
		r = dateutil.MonthSpan(year, from, to)
		ans.Params.ExplicitRange = true
	}
	ans.Params.Range = &r
	ans.Params.Year = r.Start.Year()

	holidays, err := a.holidays(ctx, ans, r)
	if err != nil {
		return err
	}
	setHolidays(ans, calendar.FilterByType(holidays, ans.Params.HolidayType))
	return nil
}

func (a *Assistant) handleVacation(ctx context.Context, ans *Answer, msg message) error {
	year, ok := query.ExtractYear(msg.raw, ans.Today)
	if !ok {
		year = ans.Today.Year()
	}
	ans.Params.Year = year

	budget, ok := query.ExtractLeaveBudget(msg.raw)
	if !ok {
		ans.Outcome = OutcomeNeedsInput
		return nil
	}
	return a.planVacation(ctx, ans, year, budget)
}

func (a *Assistant) planVacation(ctx context.Context, ans *Answer, year, budget int) error {
	if budget > MaxLeaveBudget {
		budget = MaxLeaveBudget
	}
	ans.Params.Year = year
	ans.Params.LeaveBudget = budget

	holidays, err := a.holidays(ctx, ans, dateutil.YearRange(year))
	if err != nil {
		return err
	}
	ans.Holidays = holidays
	ans.Count = len(holidays)

	ans.Candidates = a.optimizer.Optimize(holidays, budget)
	if len(ans.Candidates) == 0 {
		ans.Outcome = OutcomeNoResults
	} else {
		ans.Outcome = OutcomeAnswered
	}
	return nil
}

func (a *Assistant) handleAnnualCount(ctx context.Context, ans *Answer) error {
	year := ans.Today.Year()
	ans.Params.Year = year

	holidays, err := a.holidays(ctx, ans, dateutil.YearRange(year))
	if err != nil {
		return err
	}
	ans.Holidays = holidays
	ans.Count = len(holidays)
	ans.Outcome = OutcomeAnswered
	return nil
}

func (a *Assistant) handleAudience(ctx context.Context, ans *Answer, msg message) error {
	audiences, err := a.audiences.All(ctx, ans.Language)
	if err != nil {
		return fmt.Errorf("failed to list audiences: %w", err)
	}

	code, ok := query.ExtractAudience(msg.raw, audiences)
	if !ok {
		ans.Outcome = OutcomeNeedsInput
		return nil
	}
	ans.Params.Audience = code
	ans.Params.AudienceName = audienceName(audiences, code)

	year := ans.Today.Year()
	ans.Params.Year = year

	holidays, err := a.facts.HolidaysForAudience(ctx, ans.CountryCode, dateutil.YearRange(year), code)
	if err != nil {
		return fmt.Errorf("failed to get holidays for audience %s: %w", code, err)
	}
	setHolidays(ans, holidays)
	return nil
}

func audienceName(audiences []audience.Audience, code string) string {
	for _, a := range audiences {
		if strings.EqualFold(a.Code, code) {
			return a.Name
		}
	}
	return strings.ToLower(strings.ReplaceAll(code, "_", " "))
}

func (a *Assistant) handleGeneral(ctx context.Context, ans *Answer, msg message) error {
	year := ans.Today.Year()
	ans.Params.Year = year

	if holidays, err := a.holidays(ctx, ans, dateutil.YearRange(year)); err != nil {
		a.logger.Warn("Failed to load holidays for general context", zap.Error(err))
	} else {
		ans.Count = len(holidays)
	}

	var names []string
	if audiences, err := a.audiences.All(ctx, ans.Language); err != nil {
		a.logger.Warn("Failed to load audiences for general context", zap.Error(err))
	} else {
		names = audience.Names(audiences)
	}

	ans.Outcome = OutcomeAnswered
	if a.responder == nil {
		return nil
	}

	summary := i18n.Format(a.translator, "general.context", ans.Language, i18n.M{
		"country":   ans.Country,
		"year":      year,
		"count":     ans.Count,
		"audiences": strings.Join(names, ", "),
	})

	text, err := a.responder.Answer(ctx, fallback.Request{
		CountryName: ans.Country,
		Language:    ans.Language.EnglishName(),
		Today:       ans.Today.Format(dateutil.DisplayLayout),
		Context:     summary,
		Message:     msg.raw,
	})
	if errors.Is(err, fallback.ErrNotConfigured) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get fallback answer: %w", err)
	}

	ans.Text = text
	return nil
}
