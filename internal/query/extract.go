package query

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/username/holiday-planner/internal/audience"
	"github.com/username/holiday-planner/internal/calendar"
	"github.com/username/holiday-planner/internal/i18n"
	"github.com/username/holiday-planner/pkg/dateutil"
)

var dateTokenRe = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`)

// leaveBudgetPatterns are tried in order, first match wins
var leaveBudgetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`maximum\s+(\d+)\s*(?:vacation\s+)?(?:day|days|gün)`),
	regexp.MustCompile(`(\d+)\s*(?:vacation\s+)?(?:day|days|gün)`),
	regexp.MustCompile(`(?:i can take|kullanabilirim)\s+(\d+)`),
	regexp.MustCompile(`(\d+)\s*izin\s*gün`),
	regexp.MustCompile(`with\s+(\d+)\s*(?:vacation\s+)?(?:day|days|gün)`),
}

var holidayNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`when is ([\p{L}\s]+)`),
	regexp.MustCompile(`tell me about ([\p{L}\s]+)`),
	regexp.MustCompile(`how long does ([\p{L}\s]+) last`),
	regexp.MustCompile(`([\p{L}\s]+) kaç gün`),
}

var quotedRe = regexp.MustCompile(`"([^"]+)"`)

// wellKnownHolidays are searched when no name pattern matches
var wellKnownHolidays = []struct{ keyword, name string }{
	{"ramazan", "ramazan"},
	{"bayram", "bayram"},
	{"kurban", "kurban"},
	{"christmas", "christmas"},
	{"easter", "easter"},
	{"new year", "new year"},
	{"republic", "republic"},
	{"victory", "victory"},
	{"independence", "independence"},
	{"labour", "labour"},
	{"atatürk", "atatürk"},
	{"ataturk", "atatürk"},
}

// monthNames is the bilingual month table. Turkish names also match with
// a suffix attached ("nisanda"), English names only as whole words.
var monthNames = []struct {
	name   string
	month  time.Month
	prefix bool
}{
	{"january", time.January, false}, {"ocak", time.January, true},
	{"february", time.February, false}, {"şubat", time.February, true},
	{"march", time.March, false}, {"mart", time.March, true},
	{"april", time.April, false}, {"nisan", time.April, true},
	{"may", time.May, false}, {"mayıs", time.May, true},
	{"june", time.June, false}, {"haziran", time.June, true},
	{"july", time.July, false}, {"temmuz", time.July, true},
	{"august", time.August, false}, {"ağustos", time.August, true},
	{"september", time.September, false}, {"eylül", time.September, true},
	{"october", time.October, false}, {"ekim", time.October, true},
	{"november", time.November, false}, {"kasım", time.November, true},
	{"december", time.December, false}, {"aralık", time.December, true},
}

// ExtractDates returns the dd/mm/yyyy dates of the message in textual
// order. Tokens that are not valid dates are skipped.
func ExtractDates(message string) []time.Time {
	var dates []time.Time
	for _, token := range dateTokenRe.FindAllString(message, -1) {
		date, err := time.Parse("2/1/2006", token)
		if err != nil {
			continue
		}
		dates = append(dates, date)
	}
	return dates
}

// ExtractDateRange returns the first two dates of the message as a range.
// The dates are kept in textual order, so the range may be inverted.
func ExtractDateRange(message string) (dateutil.Range, bool) {
	dates := ExtractDates(message)
	if len(dates) < 2 {
		return dateutil.Range{}, false
	}
	return dateutil.Range{Start: dates[0], End: dates[1]}, true
}

// ExtractYear returns the first year 19xx/20xx of the message, or next
// year when the message says so. false means the current year.
func ExtractYear(message string, now time.Time) (int, bool) {
	if token := yearRe.FindString(message); token != "" {
		year, err := strconv.Atoi(token)
		if err == nil {
			return year, true
		}
	}

	if strings.Contains(i18n.Normalize(message), "next year") {
		return now.Year() + 1, true
	}
	return 0, false
}

// ExtractMonthRange returns the earliest and latest month named in the
// message. A single month yields [m, m].
func ExtractMonthRange(message string) (from, to time.Month, ok bool) {
	for _, word := range i18n.Words(i18n.Normalize(message)) {
		for _, m := range monthNames {
			if word != m.name && !(m.prefix && strings.HasPrefix(word, m.name)) {
				continue
			}
			if !ok || m.month < from {
				from = m.month
			}
			if !ok || m.month > to {
				to = m.month
			}
			ok = true
		}
	}
	return from, to, ok
}

// ExtractLeaveBudget returns the number of leave days the message mentions.
// false means the budget is unspecified and the user has to be asked.
func ExtractLeaveBudget(message string) (int, bool) {
	normalized := i18n.Normalize(message)
	for _, re := range leaveBudgetPatterns {
		match := re.FindStringSubmatch(normalized)
		if match == nil {
			continue
		}
		if days, err := strconv.Atoi(match[1]); err == nil {
			return days, true
		}
	}
	return 0, false
}

// ExtractAudience returns the code of the audience the message refers to,
// matching catalog codes and names before a few common keywords.
func ExtractAudience(message string, audiences []audience.Audience) (string, bool) {
	normalized := i18n.Normalize(message)

	for _, a := range audiences {
		name := i18n.Normalize(a.Name)
		code := i18n.Normalize(a.Code)
		if (name != "" && strings.Contains(normalized, name)) ||
			(code != "" && strings.Contains(normalized, code)) {
			return a.Code, true
		}
	}

	switch {
	case strings.Contains(normalized, "student"):
		return "STUDENTS", true
	case strings.Contains(normalized, "government"):
		return "GOVERNMENT", true
	case strings.Contains(normalized, "private"):
		return "PRIVATE_SECTOR", true
	}
	return "", false
}

// ExtractHolidayName returns the holiday name the message asks about:
// quoted text first, then question patterns, then well-known names.
func ExtractHolidayName(message string) (string, bool) {
	if match := quotedRe.FindStringSubmatch(message); match != nil {
		if name := strings.TrimSpace(match[1]); name != "" {
			return name, true
		}
	}

	normalized := i18n.Normalize(message)
	for _, re := range holidayNamePatterns {
		if match := re.FindStringSubmatch(normalized); match != nil {
			if name := strings.TrimSpace(match[1]); name != "" {
				return name, true
			}
		}
	}

	for _, h := range wellKnownHolidays {
		if strings.Contains(normalized, h.keyword) {
			return h.name, true
		}
	}
	return "", false
}

// ExtractHolidayType returns the holiday type the message asks for
func ExtractHolidayType(message string) (calendar.HolidayType, bool) {
	normalized := i18n.Normalize(message)

	switch {
	case strings.Contains(normalized, "religious"):
		return calendar.TypeReligious, true
	case strings.Contains(normalized, "official"), strings.Contains(normalized, "public"):
		return calendar.TypeOfficial, true
	case strings.Contains(normalized, "cultural"):
		return calendar.TypeCultural, true
	case strings.Contains(normalized, "national"):
		return calendar.TypeNational, true
	}
	return "", false
}

// AsksDuration reports whether the message asks how long a holiday lasts
func AsksDuration(message string) bool {
	return containsAny(i18n.Normalize(message), []string{"how long", "duration", "last", "kaç gün", "ne kadar"})
}

// AsksWorkingDays reports whether the message asks for a working-day count
func AsksWorkingDays(message string) bool {
	return containsAny(i18n.Normalize(message), []string{"working", "calculate", "iş gün"})
}

// IncludesWeekends reports whether weekend days should count as working days
func IncludesWeekends(message string) bool {
	return containsAny(i18n.Normalize(message), []string{
		"including weekends", "include weekends", "weekends included", "with weekends",
		"hafta sonu dahil", "hafta sonları dahil",
	})
}
