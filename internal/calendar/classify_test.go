package calendar

import (
	"testing"

	"github.com/username/holiday-planner/pkg/dateutil"
)

func TestMatchesType(t *testing.T) {
	tests := []struct {
		name    string
		holiday Holiday
		typ     HolidayType
		want    bool
	}{
		{"Tagged type", Holiday{Name: "Some Day", Type: TypeCultural}, TypeCultural, true},
		{"Empty type matches all", Holiday{Name: "Some Day", Type: TypeOther}, "", true},
		{"Religious keyword", Holiday{Name: "KURBAN BAYRAMI", Type: TypeOfficial}, TypeReligious, true},
		{"Turkish dotted capital", Holiday{Name: "CUMHURİYET BAYRAMI", Type: TypeOther}, TypeOfficial, true},
		{"National keyword", Holiday{Name: "Atatürk'ü Anma", Type: TypeOfficial}, TypeNational, true},
		{"No keyword", Holiday{Name: "Labour Day", Type: TypeOfficial}, TypeReligious, false},
		{"Specific tag wins over keyword", Holiday{Name: "Kurban Bayramı", Type: TypeNational}, TypeReligious, false},
		{"National day is not religious", Holiday{Name: "Zafer Bayramı", Type: TypeOfficial}, TypeReligious, false},
		{"Unknown type", Holiday{Name: "Easter", Type: TypeOfficial}, TypeOther, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesType(tt.holiday, tt.typ); got != tt.want {
				t.Errorf("MatchesType() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterByType(t *testing.T) {
	holidays := []Holiday{
		{Date: dateutil.Date(2025, 1, 1), Name: "New Year's Day", Type: TypeOfficial},
		{Date: dateutil.Date(2025, 3, 30), Name: "Ramazan Bayramı", Type: TypeOfficial},
		{Date: dateutil.Date(2025, 4, 20), Name: "Easter Sunday", Type: TypeOther},
	}

	got := FilterByType(holidays, TypeReligious)
	if len(got) != 2 {
		t.Fatalf("FilterByType() returned %d holidays, want 2", len(got))
	}
	if got[0].Name != "Ramazan Bayramı" || got[1].Name != "Easter Sunday" {
		t.Errorf("FilterByType() = %v", got)
	}

	if got := FilterByType(holidays, TypeNational); len(got) != 0 {
		t.Errorf("FilterByType(NATIONAL) = %v, want none", got)
	}
}
