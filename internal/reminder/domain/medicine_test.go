package domain

import (
	"testing"
	"time"
)

func TestLocationFallsBackToUTC(t *testing.T) {
	cases := []struct {
		name string
		zone string
		want string
	}{
		{"empty zone", "", "UTC"},
		{"garbage zone", "Not/AZone", "UTC"},
		{"valid zone", "America/New_York", "America/New_York"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := Medicine{TimeZone: tc.zone}
			if got := m.Location().String(); got != tc.want {
				t.Errorf("Location() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestInDateRange(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		today string
		want  bool
	}{
		{"no bounds", "", "", "2025-06-15", true},
		{"inside both bounds", "2025-06-01", "2025-06-30", "2025-06-15", true},
		{"on start date", "2025-06-15", "", "2025-06-15", true},
		{"on end date", "", "2025-06-15", "2025-06-15", true},
		{"before start", "2025-06-16", "", "2025-06-15", false},
		{"after end", "", "2025-06-14", "2025-06-15", false},
		{"start only, far future", "2026-01-01", "", "2025-06-15", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := Medicine{StartDate: tc.start, EndDate: tc.end}
			if got := m.InDateRange(tc.today); got != tc.want {
				t.Errorf("InDateRange(%q) = %v, want %v", tc.today, got, tc.want)
			}
		})
	}
}

func TestDedupKeyID(t *testing.T) {
	key := DedupKey{UserID: "u1", MedicineID: "m1", Date: "2025-06-15", Time: "08:00"}
	want := "u1:m1:2025-06-15:08:00"
	if got := key.ID(); got != want {
		t.Errorf("ID() = %q, want %q", got, want)
	}
}

func TestLocationResolvesOffsets(t *testing.T) {
	m := Medicine{TimeZone: "America/New_York"}
	loc := m.Location()

	// January is UTC-5 in New York; the zone must resolve, not fall back.
	jan := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC).In(loc)
	if jan.Hour() != 7 {
		t.Errorf("expected 07:00 local in January, got %02d:00", jan.Hour())
	}
}
