// Package assistant answers free-text holiday questions: it classifies the
// message, extracts its parameters, queries the calendar and composes a
// localized reply.
package assistant

import (
	"context"
	"strings"
	"time"

	"github.com/username/holiday-planner/internal/audience"
	"github.com/username/holiday-planner/internal/calendar"
	"github.com/username/holiday-planner/internal/fallback"
	"github.com/username/holiday-planner/internal/i18n"
	"github.com/username/holiday-planner/internal/query"
	"github.com/username/holiday-planner/internal/vacation"
	"github.com/username/holiday-planner/pkg/dateutil"
	"go.uber.org/zap"
)

// MaxLeaveBudget caps the leave budget taken from a message
const MaxLeaveBudget = 366

// CountryDirectory resolves country codes to display names
type CountryDirectory interface {
	Name(code string) string
}

// Countries is a CountryDirectory backed by a code -> name map.
// Unknown codes are returned unchanged.
type Countries map[string]string

// Name returns the display name for code
func (c Countries) Name(code string) string {
	if name, ok := c[strings.ToUpper(code)]; ok && name != "" {
		return name
	}
	return code
}

// Assistant answers holiday questions. It keeps no state between calls.
type Assistant struct {
	facts      calendar.Facts
	audiences  audience.Catalog
	translator i18n.Translator
	countries  CountryDirectory
	responder  fallback.Responder
	router     *query.Router
	optimizer  *vacation.Optimizer
	composer   *Composer
	logger     *zap.Logger
	now        func() time.Time
}

// Option configures an Assistant
type Option func(*Assistant)

// WithCountries sets the country directory
func WithCountries(countries CountryDirectory) Option {
	return func(a *Assistant) {
		if countries != nil {
			a.countries = countries
		}
	}
}

// WithResponder sets the responder for general questions
func WithResponder(responder fallback.Responder) Option {
	return func(a *Assistant) {
		a.responder = responder
	}
}

// WithRouter replaces the default intent router
func WithRouter(router *query.Router) Option {
	return func(a *Assistant) {
		if router != nil {
			a.router = router
		}
	}
}

// WithOptimizer replaces the default vacation optimizer
func WithOptimizer(optimizer *vacation.Optimizer) Option {
	return func(a *Assistant) {
		if optimizer != nil {
			a.optimizer = optimizer
		}
	}
}

// WithClock sets the clock used for "today" and the current year
func WithClock(now func() time.Time) Option {
	return func(a *Assistant) {
		if now != nil {
			a.now = now
		}
	}
}

// New creates a new Assistant
func New(facts calendar.Facts, audiences audience.Catalog, translator i18n.Translator, logger *zap.Logger, opts ...Option) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &Assistant{
		facts:      facts,
		audiences:  audiences,
		translator: translator,
		countries:  Countries{},
		router:     query.NewRouter(),
		optimizer:  vacation.NewOptimizer(vacation.WithLogger(logger)),
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.composer = NewComposer(translator)

	return a
}

// Reply answers the question with localized text
func (a *Assistant) Reply(ctx context.Context, req Request) string {
	return a.composer.Compose(a.Process(ctx, req))
}

// Compose renders an answer produced by this Assistant
func (a *Assistant) Compose(ans *Answer) string {
	return a.composer.Compose(ans)
}

func (a *Assistant) newAnswer(countryCode, language string) *Answer {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	return &Answer{
		Intent:      query.GeneralQuery,
		Language:    i18n.ParseLanguage(language),
		CountryCode: code,
		Country:     a.countries.Name(code),
		Today:       dateutil.StartOfDay(a.now()),
	}
}

// finish records a handler error on the answer
func (a *Assistant) finish(ans *Answer, err error) *Answer {
	if err != nil {
		a.logger.Error("Failed to answer question",
			zap.Stringer("intent", ans.Intent),
			zap.String("country", ans.CountryCode),
			zap.Error(err))
		ans.Outcome = OutcomeError
		ans.Err = err
		return ans
	}

	a.logger.Debug("Question answered",
		zap.Stringer("intent", ans.Intent),
		zap.String("outcome", string(ans.Outcome)),
		zap.String("country", ans.CountryCode),
		zap.String("language", ans.Language.String()))

	return ans
}

// PlanVacation suggests leave placements for a year and leave budget
func (a *Assistant) PlanVacation(ctx context.Context, countryCode, language string, year, budget int) *Answer {
	ans := a.newAnswer(countryCode, language)
	ans.Intent = query.VacationOptimizationQuery
	return a.finish(ans, a.planVacation(ctx, ans, year, budget))
}

// CountWorkdays splits a date range into holiday, weekend and working days
func (a *Assistant) CountWorkdays(ctx context.Context, countryCode, language string, r dateutil.Range, includeWeekends bool) *Answer {
	ans := a.newAnswer(countryCode, language)
	ans.Intent = query.DateRangeQuery
	return a.finish(ans, a.countWorkdays(ctx, ans, r.Ordered(), includeWeekends))
}

// Process answers the question with a structured Answer. Collaborator
// failures never escape: they are logged and reported as OutcomeError.
func (a *Assistant) Process(ctx context.Context, req Request) *Answer {
	ans := a.newAnswer(req.CountryCode, req.Language)

	if strings.TrimSpace(req.Message) == "" {
		ans.Outcome = OutcomeEmptyMessage
		return ans
	}

	msg := message{raw: req.Message, normalized: i18n.Normalize(req.Message)}
	ans.Intent = a.router.ClassifyNormalized(msg.normalized)

	var err error
	switch ans.Intent {
	case query.TodayQuery:
		err = a.handleToday(ctx, ans)
	case query.DateRangeQuery:
		err = a.handleDateRange(ctx, ans, msg)
	case query.HolidayNameQuery:
		err = a.handleHolidayName(ctx, ans, msg)
	case query.SpecificYearQuery:
		err = a.handleSpecificYear(ctx, ans, msg)
	case query.StatisticsQuery:
		err = a.handleStatistics(ctx, ans, msg)
	case query.HolidayTypeQuery:
		err = a.handleHolidayType(ctx, ans, msg)
	case query.VacationOptimizationQuery:
		err = a.handleVacation(ctx, ans, msg)
	case query.AnnualCountQuery:
		err = a.handleAnnualCount(ctx, ans)
	case query.AudienceQuery:
		err = a.handleAudience(ctx, ans, msg)
	default:
		err = a.handleGeneral(ctx, ans, msg)
	}

	return a.finish(ans, err)
}

// message is the user's text in raw and normalized form
type message struct {
	raw        string
	normalized string
}
