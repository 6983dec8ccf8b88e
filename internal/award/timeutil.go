package award

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const (
	earlyStartMinutes = 6 * 60
	lateEndMinutes    = 18 * 60
)

var minutesPerHour = decimal.NewFromInt(60)

// ParseTimeOfDay parses "HH:MM" into minutes after midnight.
func ParseTimeOfDay(s string) (int, error) {
	s = strings.TrimSpace(s)
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: out of range %q", ErrInvalidTime, s)
	}
	return h*60 + m, nil
}

// CalculateHourDifference returns the paid hours between start and end less the break.
// It is never negative: reversed, unparsable or fully-consumed intervals yield zero.
func CalculateHourDifference(start, end string, breakMinutes int) decimal.Decimal {
	from, err := ParseTimeOfDay(start)
	if err != nil {
		return decimal.Zero
	}
	to, err := ParseTimeOfDay(end)
	if err != nil {
		return decimal.Zero
	}

	worked := to - from - breakMinutes
	if worked <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(worked)).Div(minutesPerHour)
}

// HasEarlyLateHours reports whether a shift starts before 06:00 or ends after 18:00.
func HasEarlyLateHours(start, end string) bool {
	if from, err := ParseTimeOfDay(start); err == nil && from < earlyStartMinutes {
		return true
	}
	if to, err := ParseTimeOfDay(end); err == nil && to > lateEndMinutes {
		return true
	}
	return false
}

// FormatCurrency renders an amount as dollars and cents, e.g. $1,177.80.
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	return sign + "$" + humanize.FormatFloat("#,###.##", rounded.InexactFloat64())
}
