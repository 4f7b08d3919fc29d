package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/username/holiday-planner/internal/audience"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("TEST_OPENAI_KEY", "sk-test")

	path := writeConfig(t, `
calendar:
  source: file
  file: /var/lib/holidays.txt
  cache_ttl: 6h
  regions: [DE-BY, US-CA]
defaults:
  country: us
  language: tr
countries:
  TR: Turkey
  US: United States
audiences:
  - code: students
    names:
      en: Students
      tr: Öğrenciler
fallback:
  provider: openai
  api_key: ${TEST_OPENAI_KEY}
  model: gpt-4o
log:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Calendar.Source != SourceFile || cfg.Calendar.File != "/var/lib/holidays.txt" {
		t.Errorf("calendar = %+v", cfg.Calendar)
	}
	if got := cfg.Calendar.GetCacheTTL(); got != 6*time.Hour {
		t.Errorf("GetCacheTTL() = %v, want 6h", got)
	}
	if len(cfg.Calendar.Regions) != 2 || cfg.Calendar.Regions[0] != "DE-BY" {
		t.Errorf("Regions = %v, want [DE-BY US-CA]", cfg.Calendar.Regions)
	}
	if cfg.Calendar.MaxRetries != 3 || cfg.Calendar.NagerURL != "https://date.nager.at" {
		t.Errorf("calendar defaults not applied: %+v", cfg.Calendar)
	}
	if cfg.Defaults.Country != "us" || cfg.Defaults.Language != "tr" {
		t.Errorf("defaults = %+v", cfg.Defaults)
	}
	if got := cfg.CountryNames()["TR"]; got != "Turkey" {
		t.Errorf("CountryNames()[TR] = %q, want Turkey", got)
	}
	if len(cfg.Audiences) != 1 || cfg.Audiences[0].Names["tr"] != "Öğrenciler" {
		t.Errorf("audiences = %+v", cfg.Audiences)
	}
	if cfg.Fallback.APIKey != "sk-test" || cfg.Fallback.Model != "gpt-4o" || !cfg.Fallback.Enabled() {
		t.Errorf("fallback = %+v", cfg.Fallback)
	}
	if got := cfg.Fallback.GetTimeout(); got != 30*time.Second {
		t.Errorf("GetTimeout() = %v, want 30s", got)
	}
	if got := cfg.Log.GetLevel(); got != zapcore.DebugLevel {
		t.Errorf("GetLevel() = %v, want debug", got)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HOLIDAY_PLANNER_CALENDAR_SOURCE", "nager")
	t.Setenv("HOLIDAY_PLANNER_DEFAULTS_COUNTRY", "DE")

	cfg, err := Load(writeConfig(t, "calendar:\n  source: file\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Calendar.Source != SourceNager {
		t.Errorf("calendar.source = %q, want nager", cfg.Calendar.Source)
	}
	if cfg.Defaults.Country != "DE" {
		t.Errorf("defaults.country = %q, want DE", cfg.Defaults.Country)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() with a missing explicit file should fail")
	}

	_, err := Load(writeConfig(t, "calendar:\n  source: ical\n"))
	if err == nil || !strings.Contains(err.Error(), "calendar.source") {
		t.Errorf("Load() error = %v, want calendar.source error", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Calendar: CalendarConfig{Source: SourceComposite, NagerURL: "https://date.nager.at", MaxRetries: 3},
			Defaults: DefaultsConfig{Country: "TR"},
			Log:      LogConfig{Level: "info"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"Valid", func(c *Config) {}, ""},
		{"Relative Nager URL", func(c *Config) { c.Calendar.NagerURL = "date.nager.at" }, "calendar.nager_url"},
		{"File source without file", func(c *Config) { c.Calendar.Source = SourceFile }, "calendar.file"},
		{"Negative retries", func(c *Config) { c.Calendar.MaxRetries = -1 }, "calendar.max_retries"},
		{"Bad TTL", func(c *Config) { c.Calendar.CacheTTL = "daily" }, "calendar.cache_ttl"},
		{"No country", func(c *Config) { c.Defaults.Country = " " }, "defaults.country"},
		{"Audience without code", func(c *Config) {
			c.Audiences = []audience.Definition{{Names: map[string]string{"en": "Nobody"}}}
		}, "audiences[0].code"},
		{"OpenAI without key", func(c *Config) { c.Fallback.Provider = "openai" }, "fallback.api_key"},
		{"Disabled fallback", func(c *Config) { c.Fallback.Provider = "none" }, ""},
		{"Unknown provider", func(c *Config) { c.Fallback.Provider = "gemini" }, "fallback.provider"},
		{"Bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestGetters_Defaults(t *testing.T) {
	var cal CalendarConfig
	if got := cal.GetCacheTTL(); got != 24*time.Hour {
		t.Errorf("GetCacheTTL() = %v, want 24h", got)
	}

	fb := FallbackConfig{Timeout: "-5s"}
	if got := fb.GetTimeout(); got != 30*time.Second {
		t.Errorf("GetTimeout() = %v, want 30s", got)
	}
	if fb.Enabled() {
		t.Error("Enabled() = true for empty provider")
	}

	lc := LogConfig{Level: "nope"}
	if got := lc.GetLevel(); got != zapcore.InfoLevel {
		t.Errorf("GetLevel() = %v, want info", got)
	}
}
