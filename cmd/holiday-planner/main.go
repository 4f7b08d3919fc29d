package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/username/holiday-planner/internal/assistant"
	"github.com/username/holiday-planner/internal/audience"
	"github.com/username/holiday-planner/internal/calendar"
	"github.com/username/holiday-planner/internal/config"
	"github.com/username/holiday-planner/internal/fallback"
	"github.com/username/holiday-planner/internal/i18n"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "holiday-planner",
		Short: "Public holiday assistant",
		Long:  "Answer questions about public holidays and plan vacations around them",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				initLogger(zapcore.InfoLevel)
				return fmt.Errorf("failed to load config: %w", err)
			}

			if cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger(cfg.Log.GetLevel()) // Fallback to console
				}
			} else {
				initLogger(cfg.Log.GetLevel())
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")

	rootCmd.AddCommand(askCmd())
	rootCmd.AddCommand(optimizeCmd())
	rootCmd.AddCommand(workdaysCmd())

	return rootCmd
}

func initializeAssistant(cfg *config.Config) (*assistant.Assistant, error) {
	var facts calendar.Facts

	switch cfg.Calendar.Source {
	case config.SourceNager:
		logger.Info("Using Nager.Date calendar API", zap.String("url", cfg.Calendar.NagerURL))
		nagerCal := calendar.NewNagerCalendar(
			cfg.Calendar.NagerURL,
			cfg.Calendar.GetCacheTTL(),
			cfg.Calendar.MaxRetries,
			cfg.Calendar.LocalNames,
			logger,
		)
		nagerCal.SetRegions(cfg.Calendar.Regions)
		facts = nagerCal

	case config.SourceFile:
		logger.Info("Using holiday file", zap.String("file", cfg.Calendar.File))
		fileCal := calendar.NewFileCalendar(cfg.Calendar.File, logger)
		if err := fileCal.Load(); err != nil {
			return nil, fmt.Errorf("failed to load holiday file: %w", err)
		}
		facts = fileCal

	case config.SourceComposite:
		logger.Info("Using Nager.Date calendar API with holiday file fallback",
			zap.String("url", cfg.Calendar.NagerURL),
			zap.String("file", cfg.Calendar.File))
		primaryCal := calendar.NewNagerCalendar(
			cfg.Calendar.NagerURL,
			cfg.Calendar.GetCacheTTL(),
			cfg.Calendar.MaxRetries,
			cfg.Calendar.LocalNames,
			logger,
		)
		primaryCal.SetRegions(cfg.Calendar.Regions)
		fallbackCal := calendar.NewFileCalendar(cfg.Calendar.File, logger)
		compositeCal := calendar.NewCompositeCalendar(primaryCal, fallbackCal, logger)

		if err := compositeCal.LoadFallback(); err != nil {
			logger.Warn("Failed to load fallback calendar, continuing with API only",
				zap.Error(err))
		}
		facts = compositeCal

	default:
		return nil, fmt.Errorf("unknown calendar source: %s", cfg.Calendar.Source)
	}

	catalog, err := i18n.NewCatalog(
		i18n.WithFile(cfg.I18n.PhrasesFile),
		i18n.WithMissingKeyHandler(func(lang i18n.Language, key string) {
			logger.Warn("Missing phrase", zap.String("key", key), zap.Stringer("language", lang))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load phrases: %w", err)
	}

	opts := []assistant.Option{
		assistant.WithCountries(assistant.Countries(cfg.CountryNames())),
	}

	if cfg.Fallback.Enabled() {
		responder, err := fallback.NewOpenAI(cfg.Fallback.APIKey,
			fallback.WithModel(cfg.Fallback.Model),
			fallback.WithBaseURL(cfg.Fallback.BaseURL),
			fallback.WithMaxRetries(cfg.Fallback.MaxRetries),
			fallback.WithHTTPClient(&http.Client{Timeout: cfg.Fallback.GetTimeout()}),
			fallback.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create fallback responder: %w", err)
		}
		logger.Info("General questions are answered by a language model",
			zap.String("provider", cfg.Fallback.Provider),
			zap.String("model", cfg.Fallback.Model))
		opts = append(opts, assistant.WithResponder(responder))
	}

	return assistant.New(facts, audience.NewStaticCatalog(cfg.Audiences), catalog, logger, opts...), nil
}

func initLogger(level zapcore.Level) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
