package i18n

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningDotAbove is left behind when "İ" is lower-cased without a Turkish locale
const combiningDotAbove = '\u0307'

// Normalize lower-cases a message for keyword matching. Lower-casing "İ"
// yields "i" followed by a combining dot, which is removed so that "İzin"
// and "izin" compare equal.
func Normalize(message string) string {
	if message == "" {
		return ""
	}

	lower := cases.Lower(language.Und).String(message)

	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.Predicate(func(r rune) bool { return r == combiningDotAbove })),
		norm.NFC,
	)
	result, _, err := transform.String(t, lower)
	if err != nil {
		return lower
	}
	return result
}

// Words splits a normalized message into letter/digit tokens
func Words(message string) []string {
	return strings.FieldsFunc(message, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
