package calendar

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/username/holiday-planner/pkg/dateutil"
	"go.uber.org/zap"
)

const testCalendarData = `# date country type audiences name
2025-05-01 TR OFFICIAL - Emek ve Dayanışma Günü
2025-04-23 TR NATIONAL students,general Ulusal Egemenlik ve Çocuk Bayramı
2025-03-30 TR RELIGIOUS - Ramazan Bayramı
2025-03-31 TR RELIGIOUS - Ramazan Bayramı
2025-05-19 TR NATIONAL students Gençlik ve Spor Bayramı
2025-07-04 US PUBLIC - Independence Day
not-a-date TR OFFICIAL - Broken
2025-01-01 TR
`

func newTestFileCalendar(t *testing.T) *FileCalendar {
	t.Helper()

	fc := NewFileCalendar("", zap.NewNop())
	if err := fc.Read(strings.NewReader(testCalendarData)); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	return fc
}

func TestFileCalendar_HolidaysInRange(t *testing.T) {
	fc := newTestFileCalendar(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		country   string
		r         dateutil.Range
		wantNames []string
	}{
		{
			name:    "Spring sorted by date",
			country: "TR",
			r:       dateutil.MonthSpan(2025, 3, 5),
			wantNames: []string{
				"Ramazan Bayramı",
				"Ramazan Bayramı",
				"Ulusal Egemenlik ve Çocuk Bayramı",
				"Emek ve Dayanışma Günü",
				"Gençlik ve Spor Bayramı",
			},
		},
		{
			name:      "Lower-case country code",
			country:   "tr",
			r:         dateutil.NewRange(dateutil.Date(2025, 5, 1), dateutil.Date(2025, 5, 1)),
			wantNames: []string{"Emek ve Dayanışma Günü"},
		},
		{
			name:      "PUBLIC maps to official",
			country:   "US",
			r:         dateutil.YearRange(2025),
			wantNames: []string{"Independence Day"},
		},
		{
			name:      "Empty range",
			country:   "TR",
			r:         dateutil.MonthSpan(2025, 8, 8),
			wantNames: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			holidays, err := fc.HolidaysInRange(ctx, tt.country, tt.r)
			if err != nil {
				t.Fatalf("HolidaysInRange() error = %v", err)
			}

			if len(holidays) != len(tt.wantNames) {
				t.Fatalf("HolidaysInRange() returned %d holidays, want %d", len(holidays), len(tt.wantNames))
			}

			for i, h := range holidays {
				if h.Name != tt.wantNames[i] {
					t.Errorf("holiday[%d] = %q, want %q", i, h.Name, tt.wantNames[i])
				}
			}
		})
	}

	us, _ := fc.HolidaysInRange(ctx, "US", dateutil.YearRange(2025))
	if us[0].Type != TypeOfficial {
		t.Errorf("Independence Day type = %v, want %v", us[0].Type, TypeOfficial)
	}
}

func TestFileCalendar_HolidaysForAudience(t *testing.T) {
	fc := newTestFileCalendar(t)
	r := dateutil.YearRange(2025)

	tests := []struct {
		audience string
		want     int
	}{
		{"students", 5}, // everyone-holidays + both student holidays
		{"STUDENTS", 5}, // case-insensitive
		{"general", 4},  // no Gençlik ve Spor Bayramı
		{"military", 3}, // only everyone-holidays
	}

	for _, tt := range tests {
		t.Run(tt.audience, func(t *testing.T) {
			holidays, err := fc.HolidaysForAudience(context.Background(), "TR", r, tt.audience)
			if err != nil {
				t.Fatalf("HolidaysForAudience() error = %v", err)
			}

			if len(holidays) != tt.want {
				t.Errorf("HolidaysForAudience(%s) = %d holidays, want %d", tt.audience, len(holidays), tt.want)
			}
		})
	}
}

func TestFileCalendar_UnknownCountry(t *testing.T) {
	fc := newTestFileCalendar(t)

	_, err := fc.HolidaysInRange(context.Background(), "DE", dateutil.YearRange(2025))
	if !errors.Is(err, ErrCountryNotFound) {
		t.Errorf("HolidaysInRange(DE) error = %v, want ErrCountryNotFound", err)
	}
}

func TestParseHolidayType(t *testing.T) {
	tests := []struct {
		input string
		want  HolidayType
	}{
		{"RELIGIOUS", TypeReligious},
		{"national", TypeNational},
		{" Cultural ", TypeCultural},
		{"PUBLIC", TypeOfficial},
		{"bank", TypeOther},
		{"", TypeOther},
	}

	for _, tt := range tests {
		if got := ParseHolidayType(tt.input); got != tt.want {
			t.Errorf("ParseHolidayType(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
