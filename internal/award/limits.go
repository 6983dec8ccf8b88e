package award

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	CodeBelowMinimumEngagement = "BELOW_MINIMUM_ENGAGEMENT"
	CodeDailyMaxExceeded       = "DAILY_MAX_EXCEEDED"
	CodeWeeklyMaxExceeded      = "WEEKLY_MAX_EXCEEDED"
	CodeBrokenShift            = "BROKEN_SHIFT"
)

// Warning flags a roster pattern worth reviewing. Warnings never change cost.
type Warning struct {
	Code    string
	Day     Day
	Message string
}

type staffKey struct {
	et    EmploymentType
	level Level
}

// CheckShiftLimits checks a roster against the table's engagement and hour limits.
func (t *Table) CheckShiftLimits(shifts []Shift) []Warning {
	var warnings []Warning

	daily := make(map[shiftGroup]decimal.Decimal)
	var dailyOrder []shiftGroup
	weekly := make(map[staffKey]decimal.Decimal)
	var weeklyOrder []staffKey

	for i, s := range shifts {
		if !s.Complete() {
			continue
		}
		hours := s.Hours()

		minimum := t.settings.MinimumShiftHours
		if s.EmploymentType == Casual {
			minimum = t.settings.CasualMinimumHours
		}
		if hours.IsPositive() && hours.LessThan(minimum) {
			warnings = append(warnings, Warning{
				Code:    CodeBelowMinimumEngagement,
				Day:     s.Day,
				Message: fmt.Sprintf("shift %d is %s h, below the %s h minimum for %s", i+1, hours.StringFixed(2), minimum, s.EmploymentType),
			})
		}

		g := groupOf(s)
		if _, ok := daily[g]; !ok {
			dailyOrder = append(dailyOrder, g)
		}
		daily[g] = daily[g].Add(hours)

		k := staffKey{et: s.EmploymentType, level: s.Level}
		if _, ok := weekly[k]; !ok {
			weeklyOrder = append(weeklyOrder, k)
		}
		weekly[k] = weekly[k].Add(hours)
	}

	for _, g := range dailyOrder {
		if daily[g].GreaterThan(t.settings.DailyMaxHours) {
			warnings = append(warnings, Warning{
				Code:    CodeDailyMaxExceeded,
				Day:     g.day,
				Message: fmt.Sprintf("%s level %d works %s h on %s, above the %s h daily maximum", g.et, g.level, daily[g].StringFixed(2), g.day, t.settings.DailyMaxHours),
			})
		}
	}

	for _, k := range weeklyOrder {
		if weekly[k].GreaterThan(t.settings.WeeklyMaxHours) {
			warnings = append(warnings, Warning{
				Code:    CodeWeeklyMaxExceeded,
				Message: fmt.Sprintf("%s level %d works %s h this week, above the %s h weekly maximum", k.et, k.level, weekly[k].StringFixed(2), t.settings.WeeklyMaxHours),
			})
		}
	}

	for _, d := range CheckForBrokenShifts(shifts) {
		warnings = append(warnings, Warning{
			Code:    CodeBrokenShift,
			Day:     d,
			Message: fmt.Sprintf("%s has more than one shift for the same role", d),
		})
	}

	return warnings
}
