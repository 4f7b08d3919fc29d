// Package audience provides the catalog of holiday audiences
// (students, government employees, ...) with localized names.
package audience

import (
	"context"
	"sort"

	"github.com/username/holiday-planner/internal/i18n"
)

// Audience is a group a holiday may apply to
type Audience struct {
	Code string `json:"code" mapstructure:"code"`
	Name string `json:"name" mapstructure:"name"`
}

// Catalog lists the known audiences with names in the requested language
type Catalog interface {
	All(ctx context.Context, lang i18n.Language) ([]Audience, error)
}

// Definition describes one audience with its name per language code
type Definition struct {
	Code  string            `mapstructure:"code"`
	Names map[string]string `mapstructure:"names"`
}

// Defaults returns the built-in audience definitions
func Defaults() []Definition {
	return []Definition{
		{Code: "general", Names: map[string]string{"en": "General Public", "tr": "Genel Halk"}},
		{Code: "government", Names: map[string]string{"en": "Government", "tr": "Devlet"}},
		{Code: "religious", Names: map[string]string{"en": "Religious", "tr": "Dini"}},
		{Code: "educational", Names: map[string]string{"en": "Educational", "tr": "Eğitim"}},
		{Code: "military", Names: map[string]string{"en": "Military", "tr": "Askeri"}},
		{Code: "banking", Names: map[string]string{"en": "Banking", "tr": "Bankacılık"}},
		{Code: "health", Names: map[string]string{"en": "Health", "tr": "Sağlık"}},
		{Code: "private_sector", Names: map[string]string{"en": "Private Sector", "tr": "Özel Sektör"}},
		{Code: "students", Names: map[string]string{"en": "Students", "tr": "Öğrenciler"}},
	}
}

// StaticCatalog serves a fixed list of audiences
type StaticCatalog struct {
	definitions []Definition
}

// NewStaticCatalog creates a catalog from definitions; nil means Defaults()
func NewStaticCatalog(definitions []Definition) *StaticCatalog {
	if definitions == nil {
		definitions = Defaults()
	}

	sorted := make([]Definition, len(definitions))
	copy(sorted, definitions)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Code < sorted[j].Code })

	return &StaticCatalog{definitions: sorted}
}

// All returns the audiences ordered by code. A missing translation falls
// back to the English name, then to the code.
func (c *StaticCatalog) All(_ context.Context, lang i18n.Language) ([]Audience, error) {
	audiences := make([]Audience, 0, len(c.definitions))
	for _, d := range c.definitions {
		audiences = append(audiences, Audience{Code: d.Code, Name: localizedName(d, lang)})
	}
	return audiences, nil
}

func localizedName(d Definition, lang i18n.Language) string {
	if name, ok := d.Names[lang.String()]; ok && name != "" {
		return name
	}
	if name, ok := d.Names[i18n.DefaultLanguage.String()]; ok {
		return name
	}
	return d.Code
}

// Names returns the names of the audiences
func Names(audiences []Audience) []string {
	names := make([]string, 0, len(audiences))
	for _, a := range audiences {
		names = append(names, a.Name)
	}
	return names
}
