package handler

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"plain date", "2024-03-06", "2024-03-06", true},
		{"rfc3339 truncated to day", "2024-03-06T15:04:05Z", "2024-03-06", true},
		{"rfc3339 with offset", "2024-03-06T23:30:00-05:00", "2024-03-07", true},
		{"garbage", "06/03/2024", "", false},
		{"empty", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseDate(tc.in)
			if tc.ok != (err == nil) {
				t.Fatalf("parseDate(%q) err = %v, want ok=%v", tc.in, err, tc.ok)
			}
			if !tc.ok {
				return
			}
			if got.Format("2006-01-02") != tc.want {
				t.Errorf("parseDate(%q) = %s, want %s", tc.in, got.Format(time.RFC3339), tc.want)
			}
		})
	}
}
