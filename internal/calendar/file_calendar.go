package calendar

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/username/holiday-planner/pkg/dateutil"
	"go.uber.org/zap"
)

// fileHoliday is a holiday line together with the audiences it applies to
type fileHoliday struct {
	Holiday
	audiences []string // empty = everyone
}

// FileCalendar implements Facts using a local text file
type FileCalendar struct {
	filePath string
	logger   *zap.Logger
	mu       sync.RWMutex
	data     map[string][]fileHoliday // key: country code
}

// NewFileCalendar creates a new FileCalendar instance
func NewFileCalendar(filePath string, logger *zap.Logger) *FileCalendar {
	return &FileCalendar{
		filePath: filePath,
		logger:   logger,
		data:     make(map[string][]fileHoliday),
	}
}

// Load loads holiday data from file
func (fc *FileCalendar) Load() error {
	file, err := os.Open(fc.filePath)
	if err != nil {
		return fmt.Errorf("failed to open calendar file: %w", err)
	}
	defer file.Close()

	if err := fc.Read(file); err != nil {
		return err
	}

	fc.logger.Info("Calendar file loaded",
		zap.String("file", fc.filePath),
		zap.Int("countries", len(fc.data)))

	return nil
}

// Read replaces the calendar contents with the lines read from r.
//
// Format: YYYY-MM-DD COUNTRY TYPE AUDIENCES NAME
// AUDIENCES is a comma separated list of audience codes or "-" for everyone.
// Example: 2025-04-23 TR NATIONAL students,general Ulusal Egemenlik ve Çocuk Bayramı
func (fc *FileCalendar) Read(r io.Reader) error {
	data := make(map[string][]fileHoliday)
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 5 {
			fc.logger.Warn("Invalid line format", zap.String("line", line))
			continue
		}

		date, err := time.Parse(dateutil.KeyLayout, parts[0])
		if err != nil {
			fc.logger.Warn("Failed to parse date", zap.String("date", parts[0]), zap.Error(err))
			continue
		}

		var audiences []string
		if parts[3] != "-" {
			for _, code := range strings.Split(parts[3], ",") {
				if code = strings.TrimSpace(code); code != "" {
					audiences = append(audiences, code)
				}
			}
		}

		country := normalizeCountry(parts[1])
		data[country] = append(data[country], fileHoliday{
			Holiday: Holiday{
				Date: date,
				Name: strings.Join(parts[4:], " "),
				Type: ParseHolidayType(parts[2]),
			},
			audiences: audiences,
		})
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading calendar file: %w", err)
	}

	for _, entries := range data {
		sortFileHolidays(entries)
	}

	fc.mu.Lock()
	fc.data = data
	fc.mu.Unlock()

	return nil
}

// HolidaysInRange returns the holidays of the country within r
func (fc *FileCalendar) HolidaysInRange(ctx context.Context, countryCode string, r dateutil.Range) ([]Holiday, error) {
	return fc.collect(countryCode, r, func(fileHoliday) bool { return true })
}

// HolidaysForAudience returns the holidays within r that apply to the audience
func (fc *FileCalendar) HolidaysForAudience(ctx context.Context, countryCode string, r dateutil.Range, audienceCode string) ([]Holiday, error) {
	return fc.collect(countryCode, r, func(h fileHoliday) bool {
		if len(h.audiences) == 0 {
			return true
		}
		for _, code := range h.audiences {
			if strings.EqualFold(code, audienceCode) {
				return true
			}
		}
		return false
	})
}

func (fc *FileCalendar) collect(countryCode string, r dateutil.Range, keep func(fileHoliday) bool) ([]Holiday, error) {
	fc.mu.RLock()
	entries, ok := fc.data[normalizeCountry(countryCode)]
	fc.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCountryNotFound, countryCode)
	}

	holidays := []Holiday{}
	for _, entry := range entries {
		if r.Contains(entry.Date) && keep(entry) {
			holidays = append(holidays, entry.Holiday)
		}
	}

	return holidays, nil
}

func sortFileHolidays(entries []fileHoliday) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
}
