package service

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNights(t *testing.T) {
	cases := []struct {
		name     string
		in, out  string
		expected int
	}{
		{"two nights", "2024-01-01", "2024-01-03", 2},
		{"one night", "2024-01-01", "2024-01-02", 1},
		{"same day", "2024-01-01", "2024-01-01", 0},
		{"inverted", "2024-01-03", "2024-01-01", -2},
		{"across month boundary", "2024-03-30", "2024-04-02", 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Nights(date(tc.in), date(tc.out)); got != tc.expected {
				t.Errorf("Nights(%s, %s) = %d, want %d", tc.in, tc.out, got, tc.expected)
			}
		})
	}
}

func TestNightsRoundsPartialDaysUp(t *testing.T) {
	in := time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)
	out := time.Date(2024, 1, 3, 11, 0, 0, 0, time.UTC)
	if got := Nights(in, out); got != 2 {
		t.Errorf("Nights over 44h = %d, want 2", got)
	}
}

func TestTotalCents(t *testing.T) {
	// rate 100, 2024-01-01 -> 2024-01-03: 2 nights, total 200
	if got := TotalCents(100, date("2024-01-01"), date("2024-01-03")); got != 200 {
		t.Errorf("TotalCents = %d, want 200", got)
	}
}

func TestTotalCentsMonotonicInStayLength(t *testing.T) {
	checkIn := date("2024-06-01")
	prev := int64(-1)
	for days := 0; days <= 30; days++ {
		out := checkIn.AddDate(0, 0, days)
		total := TotalCents(7500, checkIn, out)
		if total < prev {
			t.Fatalf("total decreased at %d days: %d < %d", days, total, prev)
		}
		prev = total
	}
}
