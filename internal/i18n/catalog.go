package i18n

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed phrases.yaml
var defaultPhrases []byte

// Translator resolves a phrase key for a language
type Translator interface {
	Translate(key string, lang Language) string
}

// M maps placeholder names to their values
type M map[string]any

// Catalog is a phrase table keyed by (key, language).
// It is immutable after creation and safe for concurrent use.
type Catalog struct {
	phrases           map[string]map[Language]string
	missingKeyHandler func(lang Language, key string)
}

// Option configures the Catalog during construction
type Option func(*Catalog) error

// NewCatalog creates a catalog from the embedded phrase table and applies
// the options on top of it.
func NewCatalog(opts ...Option) (*Catalog, error) {
	c := &Catalog{phrases: make(map[string]map[Language]string)}

	if err := c.merge(defaultPhrases); err != nil {
		return nil, fmt.Errorf("failed to parse default phrases: %w", err)
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	return c, nil
}

// WithFile overrides phrases with the ones from a YAML file of the same
// shape as the embedded table. An empty path is ignored.
func WithFile(path string) Option {
	return func(c *Catalog) error {
		if path == "" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read phrase file: %w", err)
		}

		if err := c.merge(data); err != nil {
			return fmt.Errorf("failed to parse phrase file %s: %w", path, err)
		}
		return nil
	}
}

// WithPhrases overrides single phrases of one language
func WithPhrases(lang Language, phrases map[string]string) Option {
	return func(c *Catalog) error {
		for key, value := range phrases {
			c.set(key, lang, value)
		}
		return nil
	}
}

// WithMissingKeyHandler sets a handler called when a key has no phrase in
// the requested or the default language
func WithMissingKeyHandler(handler func(lang Language, key string)) Option {
	return func(c *Catalog) error {
		c.missingKeyHandler = handler
		return nil
	}
}

// Translate returns the phrase for key in lang, falling back to the default
// language and finally to the key itself
func (c *Catalog) Translate(key string, lang Language) string {
	if byLang, ok := c.phrases[key]; ok {
		if phrase, ok := byLang[lang]; ok {
			return phrase
		}
		if phrase, ok := byLang[DefaultLanguage]; ok {
			return phrase
		}
	}

	if c.missingKeyHandler != nil {
		c.missingKeyHandler(lang, key)
	}
	return key
}

// Keys returns all phrase keys in sorted order
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.phrases))
	for key := range c.phrases {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (c *Catalog) merge(data []byte) error {
	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}

	for key, byLang := range raw {
		for code, phrase := range byLang {
			c.set(key, Language(strings.ToLower(code)), phrase)
		}
	}
	return nil
}

func (c *Catalog) set(key string, lang Language, phrase string) {
	if c.phrases[key] == nil {
		c.phrases[key] = make(map[Language]string)
	}
	c.phrases[key][lang] = phrase
}

// Fill replaces %{name} placeholders in template with values
func Fill(template string, values M) string {
	if len(values) == 0 {
		return template
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names)*2)
	for _, name := range names {
		pairs = append(pairs, "%{"+name+"}", fmt.Sprintf("%v", values[name]))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Format translates key and fills its placeholders
func Format(t Translator, key string, lang Language, values M) string {
	return Fill(t.Translate(key, lang), values)
}

// MonthName returns the localized name of a month
func MonthName(t Translator, m time.Month, lang Language) string {
	return t.Translate("month."+strconv.Itoa(int(m)), lang)
}
