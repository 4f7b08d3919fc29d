package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/username/holiday-planner/internal/audience"
	"go.uber.org/zap/zapcore"
)

// Calendar sources
const (
	SourceComposite = "composite" // Nager.Date with the holiday file as fallback
	SourceNager     = "nager"
	SourceFile      = "file"
)

// Config represents application configuration
type Config struct {
	Calendar  CalendarConfig        `mapstructure:"calendar"`
	Defaults  DefaultsConfig        `mapstructure:"defaults"`
	Countries map[string]string     `mapstructure:"countries"`
	Audiences []audience.Definition `mapstructure:"audiences"`
	Fallback  FallbackConfig        `mapstructure:"fallback"`
	I18n      I18nConfig            `mapstructure:"i18n"`
	Log       LogConfig             `mapstructure:"log"`
}

// CalendarConfig represents holiday source configuration
type CalendarConfig struct {
	Source     string   `mapstructure:"source"` // "composite", "nager" or "file"
	File       string   `mapstructure:"file"`
	NagerURL   string   `mapstructure:"nager_url"`
	CacheTTL   string   `mapstructure:"cache_ttl"`
	MaxRetries int      `mapstructure:"max_retries"`
	LocalNames bool     `mapstructure:"local_names"` // Use holiday names in the country's language
	Regions    []string `mapstructure:"regions"`     // Subdivisions whose regional holidays count, e.g. DE-BY
}

// DefaultsConfig holds request defaults for the CLI
type DefaultsConfig struct {
	Country  string `mapstructure:"country"`
	Language string `mapstructure:"language"`
}

// FallbackConfig represents the language model used for general questions
type FallbackConfig struct {
	Provider   string `mapstructure:"provider"` // "" or "none" disables the fallback, "openai"
	APIKey     string `mapstructure:"api_key"`
	Model      string `mapstructure:"model"`
	BaseURL    string `mapstructure:"base_url"`
	Timeout    string `mapstructure:"timeout"`
	MaxRetries int    `mapstructure:"max_retries"`
}

// I18nConfig represents reply phrase configuration
type I18nConfig struct {
	PhrasesFile string `mapstructure:"phrases_file"` // Overrides entries of the built-in phrase table
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("calendar.source", SourceComposite)
	v.SetDefault("calendar.file", "holidays.txt")
	v.SetDefault("calendar.nager_url", "https://date.nager.at")
	v.SetDefault("calendar.cache_ttl", "24h")
	v.SetDefault("calendar.max_retries", 3)
	v.SetDefault("calendar.local_names", true)
	v.SetDefault("defaults.country", "TR")
	v.SetDefault("defaults.language", "en")
	v.SetDefault("fallback.provider", "")
	v.SetDefault("fallback.api_key", "${OPENAI_API_KEY}")
	v.SetDefault("fallback.model", "gpt-4o-mini")
	v.SetDefault("fallback.base_url", "")
	v.SetDefault("fallback.timeout", "30s")
	v.SetDefault("fallback.max_retries", 2)
	v.SetDefault("i18n.phrases_file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// Load loads configuration from file. Variables from a .env file in the
// working directory are added to the environment first. Without an explicit
// path a missing config file is not an error and defaults are used.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.holiday-planner")
		v.AddConfigPath("/etc/holiday-planner")
	}

	// HOLIDAY_PLANNER_CALENDAR_SOURCE overrides calendar.source
	v.SetEnvPrefix("HOLIDAY_PLANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Calendar.Source {
	case SourceComposite, SourceNager:
		if err := validateURL(c.Calendar.NagerURL); err != nil {
			return fmt.Errorf("calendar.nager_url: %w", err)
		}
	case SourceFile:
		if c.Calendar.File == "" {
			return fmt.Errorf("calendar.file is required for file source")
		}
	default:
		return fmt.Errorf("calendar.source must be '%s', '%s' or '%s', got '%s'",
			SourceComposite, SourceNager, SourceFile, c.Calendar.Source)
	}

	if c.Calendar.MaxRetries < 0 {
		return fmt.Errorf("calendar.max_retries must not be negative")
	}
	if c.Calendar.CacheTTL != "" {
		if _, err := time.ParseDuration(c.Calendar.CacheTTL); err != nil {
			return fmt.Errorf("calendar.cache_ttl: %w", err)
		}
	}

	if strings.TrimSpace(c.Defaults.Country) == "" {
		return fmt.Errorf("defaults.country is required")
	}

	for i, a := range c.Audiences {
		if strings.TrimSpace(a.Code) == "" {
			return fmt.Errorf("audiences[%d].code is required", i)
		}
	}

	switch c.Fallback.Provider {
	case "", "none":
	case "openai":
		if c.Fallback.APIKey == "" {
			return fmt.Errorf("fallback.api_key is required for openai provider")
		}
		if c.Fallback.BaseURL != "" {
			if err := validateURL(c.Fallback.BaseURL); err != nil {
				return fmt.Errorf("fallback.base_url: %w", err)
			}
		}
	default:
		return fmt.Errorf("fallback.provider must be 'openai' or empty, got '%s'", c.Fallback.Provider)
	}

	if c.Log.Level != "" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}

	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("must be an absolute http(s) URL, got '%s'", raw)
	}
	return nil
}

// GetCacheTTL returns cache TTL duration
func (c *CalendarConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return 24 * time.Hour
	}
	duration, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return duration
}

// GetTimeout returns the request timeout of the fallback model
func (c *FallbackConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 30 * time.Second
	}
	duration, err := time.ParseDuration(c.Timeout)
	if err != nil || duration <= 0 {
		return 30 * time.Second
	}
	return duration
}

// Enabled reports whether a fallback provider is configured
func (c *FallbackConfig) Enabled() bool {
	return c.Provider != "" && c.Provider != "none"
}

// GetLevel returns the log level, info when unset or invalid
func (c *LogConfig) GetLevel() zapcore.Level {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// CountryNames returns the configured country names keyed by upper-case code.
// Viper lower-cases map keys when reading the file.
func (c *Config) CountryNames() map[string]string {
	names := make(map[string]string, len(c.Countries))
	for code, name := range c.Countries {
		names[strings.ToUpper(code)] = name
	}
	return names
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Calendar.File = os.ExpandEnv(c.Calendar.File)
	c.Calendar.NagerURL = os.ExpandEnv(c.Calendar.NagerURL)
	c.Fallback.APIKey = os.ExpandEnv(c.Fallback.APIKey)
	c.Fallback.BaseURL = os.ExpandEnv(c.Fallback.BaseURL)
	c.I18n.PhrasesFile = os.ExpandEnv(c.I18n.PhrasesFile)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
