package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language is a supported reply language
type Language string

const (
	English Language = "en"
	Turkish Language = "tr"
)

// DefaultLanguage is used for unknown language codes
const DefaultLanguage = English

var (
	supported = []Language{English, Turkish}
	matcher   = language.NewMatcher([]language.Tag{language.English, language.Turkish})
)

// Supported returns the supported languages, reference language first
func Supported() []Language {
	return append([]Language(nil), supported...)
}

// ParseLanguage maps a language code such as "tr", "tr-TR" or "en_GB" to a
// supported Language. Unknown or malformed codes yield DefaultLanguage.
func ParseLanguage(code string) Language {
	code = strings.TrimSpace(strings.ReplaceAll(code, "_", "-"))
	if code == "" {
		return DefaultLanguage
	}

	tag, err := language.Parse(code)
	if err != nil {
		return DefaultLanguage
	}

	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return DefaultLanguage
	}
	return supported[index]
}

// String returns the language code
func (l Language) String() string {
	return string(l)
}

// EnglishName returns the language name in English, e.g. "Turkish"
func (l Language) EnglishName() string {
	tag, err := language.Parse(string(l))
	if err != nil {
		return string(l)
	}
	return display.English.Languages().Name(tag)
}
