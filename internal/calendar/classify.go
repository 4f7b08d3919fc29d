package calendar

import (
	"strings"

	"github.com/username/holiday-planner/internal/i18n"
)

// typeKeywords classifies holidays whose source does not tag them precisely
var typeKeywords = map[HolidayType][]string{
	TypeReligious: {"eid", "ramazan", "kurban", "christmas", "easter", "religious", "dini", "mevlid", "kandil"},
	TypeOfficial: {"republic", "cumhuriyet", "independence", "bağımsızlık", "national", "ulusal",
		"victory", "zafer", "labour", "işçi", "new year", "yılbaşı"},
	TypeCultural: {"children", "çocuk", "youth", "gençlik", "women", "kadın", "mother", "anne", "father", "baba"},
	TypeNational: {"atatürk", "ataturk", "sovereignty", "egemenlik", "democracy", "demokrasi", "memorial", "anma"},
}

// MatchesType reports whether h is of type t. Holidays tagged only
// OFFICIAL or OTHER also match by a keyword in their name. An empty type
// matches every holiday.
func MatchesType(h Holiday, t HolidayType) bool {
	if t == "" || h.Type == t {
		return true
	}
	if h.Type != TypeOfficial && h.Type != TypeOther {
		return false
	}

	keywords, ok := typeKeywords[t]
	if !ok {
		return false
	}
	name := i18n.Normalize(h.Name)
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// FilterByType returns the holidays matching t, keeping their order
func FilterByType(holidays []Holiday, t HolidayType) []Holiday {
	var out []Holiday
	for _, h := range holidays {
		if MatchesType(h, t) {
			out = append(out, h)
		}
	}
	return out
}
