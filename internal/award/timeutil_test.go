package award

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCalculateHourDifference(t *testing.T) {
	cases := []struct {
		start, end string
		breakMins  int
		want       string
	}{
		{"08:00", "12:00", 0, "4"},
		{"08:00", "16:30", 30, "8"},
		{"09:15", "10:00", 0, "0.75"},
		{"12:00", "12:00", 0, "0"},
		{"18:00", "06:00", 0, "0"},
		{"08:00", "09:00", 90, "0"},
		{"08:00", "09:00", 60, "0"},
		{"", "09:00", 0, "0"},
		{"25:00", "26:00", 0, "0"},
	}
	for _, tc := range cases {
		got := CalculateHourDifference(tc.start, tc.end, tc.breakMins)
		if got.IsNegative() {
			t.Fatalf("CalculateHourDifference(%q, %q, %d) is negative: %s", tc.start, tc.end, tc.breakMins, got)
		}
		decimalEqual(t, tc.start+"-"+tc.end, got, tc.want)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("06:30")
	if err != nil || got != 390 {
		t.Fatalf("ParseTimeOfDay = %d, %v", got, err)
	}
	for _, bad := range []string{"6", "aa:bb", "24:00", "12:60"} {
		if _, err := ParseTimeOfDay(bad); !errors.Is(err, ErrInvalidTime) {
			t.Fatalf("ParseTimeOfDay(%q) err = %v, want ErrInvalidTime", bad, err)
		}
	}
}

func TestHasEarlyLateHours(t *testing.T) {
	cases := []struct {
		start, end string
		want       bool
	}{
		{"05:59", "10:00", true},
		{"06:00", "18:00", false},
		{"09:00", "18:01", true},
		{"10:00", "14:00", false},
	}
	for _, tc := range cases {
		if got := HasEarlyLateHours(tc.start, tc.end); got != tc.want {
			t.Fatalf("HasEarlyLateHours(%q, %q) = %v, want %v", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestFormatCurrency(t *testing.T) {
	cases := map[string]string{
		"1177.8024": "$1,177.80",
		"0":         "$0.00",
		"-5.5":      "-$5.50",
		"1234567.8": "$1,234,567.80",
	}
	for in, want := range cases {
		if got := FormatCurrency(decimal.RequireFromString(in)); got != want {
			t.Fatalf("FormatCurrency(%s) = %q, want %q", in, got, want)
		}
	}
}
