package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/holiday-planner/internal/assistant"
	"github.com/username/holiday-planner/pkg/dateutil"
	"go.uber.org/zap"
)

// requestFlags are shared by every command that answers for a country
type requestFlags struct {
	country string
	lang    string
	asJSON  bool
}

func (f *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.country, "country", "", "Country code (default from config)")
	cmd.Flags().StringVar(&f.lang, "lang", "", "Reply language: en or tr (default from config)")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "Print the structured answer as JSON")
}

func (f *requestFlags) resolve() (country, lang string) {
	country, lang = f.country, f.lang
	if country == "" {
		country = cfg.Defaults.Country
	}
	if lang == "" {
		lang = cfg.Defaults.Language
	}
	return country, lang
}

func askCmd() *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer a question about holidays",
		Long:  "Answer a question about holidays. Without arguments every line of stdin is answered in turn.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initializeAssistant(cfg)
			if err != nil {
				return err
			}
			country, lang := flags.resolve()
			out := cmd.OutOrStdout()

			answer := func(question string) error {
				ans := a.Process(cmd.Context(), assistant.Request{
					Message:     question,
					CountryCode: country,
					Language:    lang,
				})
				return printAnswer(out, a, ans, flags.asJSON)
			}

			if len(args) > 0 {
				return answer(strings.Join(args, " "))
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if err := answer(line); err != nil {
					return err
				}
				if err := cmd.Context().Err(); err != nil {
					return err
				}
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read questions: %w", err)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func optimizeCmd() *cobra.Command {
	var flags requestFlags
	var year, days int

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Find the best places for vacation days",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days <= 0 {
				return fmt.Errorf("--days must be positive, got %d", days)
			}
			if year == 0 {
				year = time.Now().Year()
			}

			a, err := initializeAssistant(cfg)
			if err != nil {
				return err
			}
			country, lang := flags.resolve()

			logger.Info("Planning vacation",
				zap.String("country", country),
				zap.Int("year", year),
				zap.Int("days", days))

			ans := a.PlanVacation(cmd.Context(), country, lang, year, days)
			return printAnswer(cmd.OutOrStdout(), a, ans, flags.asJSON)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&year, "year", 0, "Year to plan (default current year)")
	cmd.Flags().IntVar(&days, "days", 0, "Available vacation days")
	_ = cmd.MarkFlagRequired("days")
	return cmd
}

func workdaysCmd() *cobra.Command {
	var flags requestFlags
	var from, to string
	var includeWeekends bool

	cmd := &cobra.Command{
		Use:   "workdays",
		Short: "Count working days between two dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := dateutil.ParseDate(from)
			if err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
			end, err := dateutil.ParseDate(to)
			if err != nil {
				return fmt.Errorf("invalid --to: %w", err)
			}

			a, err := initializeAssistant(cfg)
			if err != nil {
				return err
			}
			country, lang := flags.resolve()

			ans := a.CountWorkdays(cmd.Context(), country, lang,
				dateutil.Range{Start: start, End: end}, includeWeekends)
			return printAnswer(cmd.OutOrStdout(), a, ans, flags.asJSON)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&from, "from", "", "First day (DD/MM/YYYY or YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last day (DD/MM/YYYY or YYYY-MM-DD)")
	cmd.Flags().BoolVar(&includeWeekends, "include-weekends", false, "Count weekends as working days")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func printAnswer(w io.Writer, a *assistant.Assistant, ans *assistant.Answer, asJSON bool) error {
	if !asJSON {
		_, err := fmt.Fprintln(w, a.Compose(ans))
		return err
	}

	payload := struct {
		*assistant.Answer
		Reply string `json:"reply"`
		Error string `json:"error,omitempty"`
	}{Answer: ans, Reply: a.Compose(ans)}
	if ans.Err != nil {
		payload.Error = ans.Err.Error()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("failed to encode answer: %w", err)
	}
	return nil
}

