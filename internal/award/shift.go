package award

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Shift is a single scheduled block of work on a quote.
type Shift struct {
	Day                  Day
	StartTime            string
	EndTime              string
	BreakDurationMinutes int
	NumberOfCleaners     int
	EmploymentType       EmploymentType
	Level                Level
	AllowanceIDs         []string
	TravelKm             decimal.Decimal
	Location             string
	Notes                string
}

// Complete reports whether the shift has everything needed to be costed.
func (s Shift) Complete() bool {
	return strings.TrimSpace(s.StartTime) != "" &&
		strings.TrimSpace(s.EndTime) != "" &&
		s.EmploymentType != "" &&
		s.Level != 0 &&
		s.Day != ""
}

// Hours returns the paid hours of one cleaner on the shift.
func (s Shift) Hours() decimal.Decimal {
	return CalculateHourDifference(s.StartTime, s.EndTime, s.BreakDurationMinutes)
}

func (s Shift) cleaners() decimal.Decimal {
	if s.NumberOfCleaners < 1 {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(int64(s.NumberOfCleaners))
}

// ShiftCondition picks the pay condition of a shift. Weekend and public holiday
// days win over early/late hours.
func ShiftCondition(s Shift) PayCondition {
	switch s.Day {
	case Saturday:
		return ConditionSaturday
	case Sunday:
		return ConditionSunday
	case PublicHoliday:
		return ConditionPublicHoliday
	}
	if HasEarlyLateHours(s.StartTime, s.EndTime) {
		return ConditionShiftEarlyLate
	}
	return ConditionBase
}

// shiftLabour is the unrounded labour cost of a shift, or zero when it cannot be costed.
func (t *Table) shiftLabour(s Shift) decimal.Decimal {
	if !s.Complete() {
		return decimal.Zero
	}
	hours := s.Hours()
	if !hours.IsPositive() {
		return decimal.Zero
	}
	rates, err := t.Rates(s.EmploymentType, s.Level)
	if err != nil {
		return decimal.Zero
	}
	rate, ok := rates.Rate(ShiftCondition(s))
	if !ok {
		return decimal.Zero
	}
	return rate.Mul(hours).Mul(s.cleaners())
}

// ShiftCost returns the labour cost of a shift rounded to cents.
// Incomplete or zero-length shifts cost zero.
func (t *Table) ShiftCost(s Shift) decimal.Decimal {
	return t.shiftLabour(s).Round(2)
}

// ShiftCostWithAllowances adds the shift's allowances to its labour cost.
// Allowance ids missing from the catalog are skipped.
func (t *Table) ShiftCostWithAllowances(s Shift, catalog AllowanceCatalog) decimal.Decimal {
	labour := t.shiftLabour(s)
	if !s.Complete() {
		return decimal.Zero
	}

	hours := s.Hours()
	subtotal := decimal.Zero
	for _, id := range s.AllowanceIDs {
		a, ok := catalog[id]
		if !ok {
			continue
		}
		subtotal = subtotal.Add(allowanceAmount(a, hours, s.TravelKm))
	}

	return labour.Add(subtotal.Mul(s.cleaners())).Round(2)
}

// CalculateShiftCost costs a shift against the default table.
func CalculateShiftCost(s Shift) decimal.Decimal {
	return Default().ShiftCost(s)
}

// CalculateShiftCostWithAllowances costs a shift and its allowances against the default table.
func CalculateShiftCostWithAllowances(s Shift, catalog AllowanceCatalog) decimal.Decimal {
	return Default().ShiftCostWithAllowances(s, catalog)
}

type shiftGroup struct {
	day   Day
	et    EmploymentType
	level Level
}

// CheckForBrokenShifts returns the days holding more than one shift for the same
// employment type and level, ordered by first appearance.
func CheckForBrokenShifts(shifts []Shift) []Day {
	counts := make(map[shiftGroup]int, len(shifts))
	for _, s := range shifts {
		if s.Day == "" {
			continue
		}
		counts[groupOf(s)]++
	}

	seen := make(map[Day]bool)
	var days []Day
	for _, s := range shifts {
		if s.Day == "" || seen[s.Day] || counts[groupOf(s)] < 2 {
			continue
		}
		seen[s.Day] = true
		days = append(days, s.Day)
	}
	return days
}

func groupOf(s Shift) shiftGroup {
	return shiftGroup{day: s.Day, et: s.EmploymentType, level: s.Level}
}
