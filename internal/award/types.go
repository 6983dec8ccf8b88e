package award

import (
	"fmt"
	"strings"
)

// EmploymentType identifies how a cleaner is engaged.
type EmploymentType string

const (
	FullTime EmploymentType = "full_time"
	PartTime EmploymentType = "part_time"
	Casual   EmploymentType = "casual"
	Contract EmploymentType = "contract"
)

// EmploymentTypes lists every employment type.
func EmploymentTypes() []EmploymentType {
	return []EmploymentType{FullTime, PartTime, Casual, Contract}
}

// IsValid reports whether t is one of the defined employment types.
func (t EmploymentType) IsValid() bool {
	switch t {
	case FullTime, PartTime, Casual, Contract:
		return true
	}
	return false
}

func (t EmploymentType) String() string { return string(t) }

// ParseEmploymentType converts user input into an EmploymentType.
func ParseEmploymentType(s string) (EmploymentType, error) {
	t := EmploymentType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("unknown employment type %q", s)
	}
	return t, nil
}

// Level is an award classification level. 1-5 are cleaning levels, 6 is supervisor.
type Level int

const (
	MinLevel Level = 1
	MaxLevel Level = 6
)

// PayCondition selects the penalty or loading that applies to worked hours.
type PayCondition string

const (
	ConditionBase                  PayCondition = "base"
	ConditionSaturday              PayCondition = "saturday"
	ConditionSunday                PayCondition = "sunday"
	ConditionPublicHoliday         PayCondition = "public_holiday"
	ConditionEarlyMorning          PayCondition = "early_morning"
	ConditionEvening               PayCondition = "evening"
	ConditionOvernight             PayCondition = "overnight"
	ConditionShiftEarlyLate        PayCondition = "shift_early_late"
	ConditionOvertimeFirst2Hours   PayCondition = "overtime_first_2_hours"
	ConditionOvertimeAfter2Hours   PayCondition = "overtime_after_2_hours"
	ConditionOvertimePublicHoliday PayCondition = "overtime_public_holiday"
)

// PayConditions lists every condition in its canonical order. Breakdowns follow this order.
func PayConditions() []PayCondition {
	return []PayCondition{
		ConditionBase,
		ConditionSaturday,
		ConditionSunday,
		ConditionPublicHoliday,
		ConditionEarlyMorning,
		ConditionEvening,
		ConditionOvernight,
		ConditionShiftEarlyLate,
		ConditionOvertimeFirst2Hours,
		ConditionOvertimeAfter2Hours,
		ConditionOvertimePublicHoliday,
	}
}

// IsValid reports whether c is one of the defined pay conditions.
func (c PayCondition) IsValid() bool {
	for _, known := range PayConditions() {
		if c == known {
			return true
		}
	}
	return false
}

func (c PayCondition) String() string { return string(c) }

// ParsePayCondition converts user input into a PayCondition, rejecting unknown keys.
func ParsePayCondition(s string) (PayCondition, error) {
	c := PayCondition(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("unknown pay condition %q", s)
	}
	return c, nil
}

// Day is the calendar day a shift falls on. Public holidays override the weekday.
type Day string

const (
	Monday        Day = "monday"
	Tuesday       Day = "tuesday"
	Wednesday     Day = "wednesday"
	Thursday      Day = "thursday"
	Friday        Day = "friday"
	Saturday      Day = "saturday"
	Sunday        Day = "sunday"
	PublicHoliday Day = "public_holiday"
)

// IsValid reports whether d is one of the defined days.
func (d Day) IsValid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday, PublicHoliday:
		return true
	}
	return false
}

// ParseDay converts user input into a Day.
func ParseDay(s string) (Day, error) {
	d := Day(strings.ToLower(strings.TrimSpace(s)))
	if !d.IsValid() {
		return "", fmt.Errorf("unknown day %q", s)
	}
	return d, nil
}

// AllowanceUnit describes what an allowance amount is paid against.
type AllowanceUnit string

const (
	UnitEach     AllowanceUnit = "each"
	UnitPerKm    AllowanceUnit = "per_km"
	UnitPerWeek  AllowanceUnit = "per_week"
	UnitPerDay   AllowanceUnit = "per_day"
	UnitPerHour  AllowanceUnit = "per_hour"
	UnitPerShift AllowanceUnit = "per_shift"
)

// IsValid reports whether u is one of the defined allowance units.
func (u AllowanceUnit) IsValid() bool {
	switch u {
	case UnitEach, UnitPerKm, UnitPerWeek, UnitPerDay, UnitPerHour, UnitPerShift:
		return true
	}
	return false
}

// ParseAllowanceUnit converts stored or user input into an AllowanceUnit.
func ParseAllowanceUnit(s string) (AllowanceUnit, error) {
	u := AllowanceUnit(strings.ToLower(strings.TrimSpace(s)))
	if !u.IsValid() {
		return "", fmt.Errorf("unknown allowance unit %q", s)
	}
	return u, nil
}
