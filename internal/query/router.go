package query

import (
	"regexp"
	"strings"

	"github.com/username/holiday-planner/internal/i18n"
)

// Rule maps a predicate over the normalized message to an intent
type Rule struct {
	Intent Intent
	Match  func(message string) bool
}

var (
	dateRangeRe = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}.*\d{1,2}/\d{1,2}/\d{4}`)
	yearRe      = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

var (
	holidayNameCues = []string{"when is", "tell me about", "what is", "how long", "duration", "last"}
	statisticsCues  = []string{"most holidays", "longest holiday", "weekends", "which month", "statistics", "how many fall"}
	holidayTypeCues = []string{"religious", "official", "public", "cultural", "national"}
	vacationSubject = []string{"vacation", "holiday", "leave", "tatil", "izin"}
	vacationGoal    = []string{
		"longest", "optimize", "maximize", "best time", "optimal", "connect", "bridge", "extend",
		"en uzun", "bağla", "köprü", "uzat",
	}
	audienceCues = []string{"student", "employee", "government", "private", "audience", "group"}
)

// DefaultRules returns the classification rules in priority order
func DefaultRules() []Rule {
	return []Rule{
		{TodayQuery, func(m string) bool {
			return strings.Contains(m, "today") && strings.Contains(m, "holiday")
		}},
		{DateRangeQuery, func(m string) bool {
			return dateRangeRe.MatchString(m) ||
				(strings.Contains(m, "between") && strings.Contains(m, "and"))
		}},
		{HolidayNameQuery, func(m string) bool {
			return containsAny(m, holidayNameCues)
		}},
		{SpecificYearQuery, func(m string) bool {
			return yearRe.MatchString(m) ||
				strings.Contains(m, "this year") || strings.Contains(m, "next year")
		}},
		{StatisticsQuery, func(m string) bool {
			return containsAny(m, statisticsCues)
		}},
		{HolidayTypeQuery, func(m string) bool {
			return containsAny(m, holidayTypeCues)
		}},
		{VacationOptimizationQuery, func(m string) bool {
			return containsAny(m, vacationSubject) && containsAny(m, vacationGoal)
		}},
		{AnnualCountQuery, func(m string) bool {
			return strings.Contains(m, "year") &&
				(strings.Contains(m, "holiday") || strings.Contains(m, "how many"))
		}},
		{AudienceQuery, func(m string) bool {
			return containsAny(m, audienceCues)
		}},
	}
}

// Router classifies messages with an ordered rule table.
// The first matching rule wins; no match is GeneralQuery.
type Router struct {
	rules []Rule
}

// NewRouter creates a router; with no rules it uses DefaultRules()
func NewRouter(rules ...Rule) *Router {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Router{rules: rules}
}

// Classify returns the intent of a raw message
func (r *Router) Classify(message string) Intent {
	return r.ClassifyNormalized(i18n.Normalize(message))
}

// ClassifyNormalized classifies a message already passed through i18n.Normalize
func (r *Router) ClassifyNormalized(message string) Intent {
	if strings.TrimSpace(message) == "" {
		return GeneralQuery
	}

	for _, rule := range r.rules {
		if rule.Match != nil && rule.Match(message) {
			return rule.Intent
		}
	}
	return GeneralQuery
}

func containsAny(message string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(message, cue) {
			return true
		}
	}
	return false
}
