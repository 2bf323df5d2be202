package bondfolio

import (
	"encoding/json"
	"testing"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2024-01-15", NewDate(2024, 1, 15), false},
		{"2024-1-5", NewDate(2024, 1, 5), false},
		{"2024-01-15T10:00:00", NewDate(2024, 1, 15), false},
		{"2024-01-15T10:00:00Z", NewDate(2024, 1, 15), false},
		{"15/01/2024", Date{}, true},
		{"not-a-date", Date{}, true},
		{"", Date{}, true},
	}
	for _, tc := range testCases {
		got, err := ParseDate(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseDate(%q) = %s, want error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDate(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestDate_DaysUntil(t *testing.T) {
	testCases := []struct {
		from, to string
		want     int
	}{
		{"2024-01-01", "2024-01-01", 0},
		{"2024-01-01", "2024-01-02", 1},
		{"2023-01-01", "2024-01-01", 365},
		{"2024-01-01", "2025-01-01", 366}, // leap year
		{"2024-01-02", "2024-01-01", -1},
	}
	for _, tc := range testCases {
		if got := day(tc.from).DaysUntil(day(tc.to)); got != tc.want {
			t.Errorf("DaysUntil(%s, %s) = %d, want %d", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2026, 9, 15)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"2026-09-15"` {
		t.Errorf("marshal = %s", data)
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("round trip = %s, want %s", back, d)
	}
}

func TestDate_Ordering(t *testing.T) {
	a, b := day("2024-01-01"), day("2024-02-01")
	if !a.Before(b) || b.Before(a) || !b.After(a) {
		t.Error("date ordering is wrong")
	}
	if a.Before(a) || a.After(a) {
		t.Error("a date neither precedes nor follows itself")
	}
}
