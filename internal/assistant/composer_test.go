package assistant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/holiday-planner/internal/calendar"
	"github.com/username/holiday-planner/internal/i18n"
	"github.com/username/holiday-planner/internal/query"
	"github.com/username/holiday-planner/internal/vacation"
	"github.com/username/holiday-planner/pkg/dateutil"
)

func newTestComposer(t *testing.T) *Composer {
	t.Helper()
	catalog, err := i18n.NewCatalog()
	require.NoError(t, err)
	return NewComposer(catalog)
}

func TestComposer_VacationPlans(t *testing.T) {
	c := newTestComposer(t)

	plan := vacation.Candidate{
		VacationRange:      dateutil.Range{Start: dateutil.Date(2025, 5, 2), End: dateutil.Date(2025, 5, 2)},
		TotalRange:         dateutil.Range{Start: dateutil.Date(2025, 5, 1), End: dateutil.Date(2025, 5, 4)},
		VacationDaysNeeded: 1,
		TotalDaysOff:       4,
		Efficiency:         4,
		Kind:               vacation.KindExtendAfter,
		Holiday:            "Emek ve Dayanışma Günü",
		Description:        "Emek ve Dayanışma Günü + 1 leave days + Weekend",
	}
	ans := &Answer{
		Intent:     query.VacationOptimizationQuery,
		Outcome:    OutcomeAnswered,
		Language:   i18n.English,
		Country:    "Turkey",
		Params:     Params{Year: 2025, LeaveBudget: 1},
		Candidates: []vacation.Candidate{plan},
	}

	assert.Equal(t, "Based on your 1 available vacation days, here are the best vacation optimization opportunities in Turkey for 2025:\n\n"+
		"🏖️ Option 1: Take 1 vacation days from 02/05/2025 to 02/05/2025\n"+
		"   • Total time off: 4 days (01/05/2025 to 04/05/2025)\n"+
		"   • Efficiency: 4.0 days off per vacation day\n"+
		"   • Includes: Emek ve Dayanışma Günü + 1 leave days + Weekend", c.Compose(ans))

	ans.Language = i18n.Turkish
	assert.Contains(t, c.Compose(ans), "İçerir: Emek ve Dayanışma Günü + 1 izin günü + Hafta sonu")
}

func TestComposer_PlanDescriptions(t *testing.T) {
	r := renderer{t: newTestComposer(t).translator, lang: i18n.Turkish}

	tests := []struct {
		candidate vacation.Candidate
		want      string
	}{
		{vacation.Candidate{Kind: vacation.KindExtendBefore, VacationDaysNeeded: 2, Holiday: "Zafer Bayramı"}, "Hafta sonu + 2 izin günü + Zafer Bayramı"},
		{vacation.Candidate{Kind: vacation.KindBridge, Holiday: "A", OtherHoliday: "B"}, "A ile B arasında köprü"},
		{vacation.Candidate{Kind: "custom", Description: "as built"}, "as built"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, r.plan(tt.candidate))
	}
}

func TestComposer_LanguageFallback(t *testing.T) {
	c := newTestComposer(t)

	ans := &Answer{
		Intent:   query.AnnualCountQuery,
		Outcome:  OutcomeAnswered,
		Language: i18n.ParseLanguage("de"),
		Country:  "Turkey",
		Count:    15,
		Params:   Params{Year: 2025},
	}
	assert.Equal(t, "In 2025, Turkey has 15 holidays throughout the year.", c.Compose(ans))
}

func TestComposer_GenericError(t *testing.T) {
	c := newTestComposer(t)

	for _, intent := range []query.Intent{query.TodayQuery, query.VacationOptimizationQuery, query.GeneralQuery} {
		ans := &Answer{Intent: intent, Outcome: OutcomeError, Language: i18n.English}
		assert.Equal(t,
			"I'm sorry, I encountered an error while processing your request. Please try again or rephrase your question.",
			c.Compose(ans))
	}
}

func TestComposer_StatisticsTurkish(t *testing.T) {
	c := newTestComposer(t)

	ans := &Answer{
		Intent:   query.StatisticsQuery,
		Outcome:  OutcomeAnswered,
		Language: i18n.Turkish,
		Country:  "Türkiye",
		Params:   Params{Statistic: StatBusiestMonth},
		Statistics: &Statistics{
			Year:              2025,
			BusiestMonth:      time.June,
			BusiestMonthCount: 4,
		},
	}
	assert.Equal(t, "Türkiye için en çok tatil Haziran ayında var: 4 tatil.", c.Compose(ans))
}

func TestComposer_HolidayNameNotes(t *testing.T) {
	c := newTestComposer(t)

	ans := &Answer{
		Intent:   query.HolidayNameQuery,
		Outcome:  OutcomeAnswered,
		Language: i18n.English,
		Holidays: []calendar.Holiday{
			{Date: dateutil.Date(2025, 8, 30), Name: "Zafer Bayramı"},
			{Date: dateutil.Date(2025, 10, 29), Name: "Cumhuriyet Bayramı"},
			{Date: dateutil.Date(2025, 6, 6), Name: "Kurban Bayramı"},
		},
	}
	assert.Equal(t, "Zafer Bayramı is on 30/08/2025 (falls on weekend)\n"+
		"Cumhuriyet Bayramı is on 29/10/2025\n"+
		"Kurban Bayramı is on 06/06/2025 (creates long weekend)", c.Compose(ans))
}

func TestUpperFirst(t *testing.T) {
	assert.Equal(t, "Religious holidays", upperFirst("religious holidays"))
	assert.Equal(t, "Özel", upperFirst("özel"))
	assert.Equal(t, "01/06/2025", upperFirst("01/06/2025"))
	assert.Equal(t, "", upperFirst(""))
}
