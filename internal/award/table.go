package award

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// Settings are the business defaults that travel with a rate table.
type Settings struct {
	OverheadPercentage      decimal.Decimal
	MarginPercentage        decimal.Decimal
	CasualLoadingPercentage decimal.Decimal
	MinimumShiftHours       decimal.Decimal
	CasualMinimumHours      decimal.Decimal
	DailyMaxHours           decimal.Decimal
	WeeklyMaxHours          decimal.Decimal
}

// TableConfig is the raw material for NewTable.
type TableConfig struct {
	BaseLevelRates       map[Level]decimal.Decimal
	ConditionMultipliers map[PayCondition]decimal.Decimal
	CoveredTypes         []EmploymentType
	Settings             Settings
	// RateMultiplier scales every resolved rate. Zero means 1.
	RateMultiplier decimal.Decimal
}

// Table is an immutable award rate table. Build one with NewTable or use Default.
type Table struct {
	levels      map[Level]decimal.Decimal
	multipliers map[PayCondition]decimal.Decimal
	covered     map[EmploymentType]bool
	settings    Settings
	scale       decimal.Decimal
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DefaultSettings returns the standard business settings.
func DefaultSettings() Settings {
	return Settings{
		OverheadPercentage:      dec("15"),
		MarginPercentage:        dec("20"),
		CasualLoadingPercentage: dec("25"),
		MinimumShiftHours:       dec("4"),
		CasualMinimumHours:      dec("3"),
		DailyMaxHours:           dec("12"),
		WeeklyMaxHours:          dec("38"),
	}
}

// DefaultConfig returns the Cleaning Services Award reference data.
func DefaultConfig() TableConfig {
	return TableConfig{
		BaseLevelRates: map[Level]decimal.Decimal{
			1: dec("22.46"),
			2: dec("23.19"),
			3: dec("24.05"),
			4: dec("24.88"),
			5: dec("25.72"),
			6: dec("26.61"),
		},
		ConditionMultipliers: map[PayCondition]decimal.Decimal{
			ConditionBase:                  dec("1.0"),
			ConditionSaturday:              dec("1.5"),
			ConditionSunday:                dec("2.0"),
			ConditionPublicHoliday:         dec("2.5"),
			ConditionEarlyMorning:          dec("1.15"),
			ConditionEvening:               dec("1.15"),
			ConditionOvernight:             dec("1.30"),
			ConditionShiftEarlyLate:        dec("1.15"),
			ConditionOvertimeFirst2Hours:   dec("1.5"),
			ConditionOvertimeAfter2Hours:   dec("2.0"),
			ConditionOvertimePublicHoliday: dec("2.5"),
		},
		CoveredTypes:   []EmploymentType{FullTime, PartTime, Casual},
		Settings:       DefaultSettings(),
		RateMultiplier: decimal.NewFromInt(1),
	}
}

// NewTable validates cfg and copies it into an immutable Table.
// Every PayCondition must carry a multiplier.
func NewTable(cfg TableConfig) (*Table, error) {
	t := &Table{
		levels:      make(map[Level]decimal.Decimal, len(cfg.BaseLevelRates)),
		multipliers: make(map[PayCondition]decimal.Decimal, len(cfg.ConditionMultipliers)),
		covered:     make(map[EmploymentType]bool, len(cfg.CoveredTypes)),
		settings:    cfg.Settings,
		scale:       cfg.RateMultiplier,
	}

	for level, rate := range cfg.BaseLevelRates {
		if level < MinLevel || level > MaxLevel {
			return nil, fmt.Errorf("level %d outside %d-%d", level, MinLevel, MaxLevel)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("level %d base rate must be positive", level)
		}
		t.levels[level] = rate
	}

	for _, c := range PayConditions() {
		m, ok := cfg.ConditionMultipliers[c]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingMultiplier, c)
		}
		if m.IsNegative() {
			return nil, fmt.Errorf("multiplier for %s must not be negative", c)
		}
		t.multipliers[c] = m
	}
	for c := range cfg.ConditionMultipliers {
		if !c.IsValid() {
			return nil, fmt.Errorf("unknown pay condition %q in multipliers", c)
		}
	}

	for _, et := range cfg.CoveredTypes {
		if !et.IsValid() {
			return nil, fmt.Errorf("unknown employment type %q", et)
		}
		t.covered[et] = true
	}

	if t.scale.IsZero() {
		t.scale = decimal.NewFromInt(1)
	}
	if t.scale.IsNegative() {
		return nil, fmt.Errorf("rate multiplier must not be negative")
	}

	return t, nil
}

var defaultTable = sync.OnceValue(func() *Table {
	t, err := NewTable(DefaultConfig())
	if err != nil {
		panic(fmt.Sprintf("award: default table: %v", err))
	}
	return t
})

// Default returns the process-wide reference table.
func Default() *Table {
	return defaultTable()
}

// WithMultiplier returns a new table whose rates are the receiver's scaled by m.
// The receiver is left untouched. A multiplier that is not positive leaves the scale
// unchanged, matching NewTable's zero-means-one rule.
func (t *Table) WithMultiplier(m decimal.Decimal) *Table {
	if !m.IsPositive() {
		m = decimal.NewFromInt(1)
	}
	next := &Table{
		levels:      t.levels,
		multipliers: t.multipliers,
		covered:     t.covered,
		settings:    t.settings,
		scale:       t.scale.Mul(m),
	}
	return next
}

// WithSettings returns a new table carrying s.
func (t *Table) WithSettings(s Settings) *Table {
	return &Table{
		levels:      t.levels,
		multipliers: t.multipliers,
		covered:     t.covered,
		settings:    s,
		scale:       t.scale,
	}
}

// Settings returns the table's business settings.
func (t *Table) Settings() Settings { return t.settings }

// RateMultiplier returns the table-wide rate scale.
func (t *Table) RateMultiplier() decimal.Decimal { return t.scale }

// BaseLevelRate returns the unloaded hourly rate of a level.
func (t *Table) BaseLevelRate(level Level) (decimal.Decimal, bool) {
	r, ok := t.levels[level]
	return r, ok
}

// ConditionMultiplier returns the multiplier of a pay condition.
func (t *Table) ConditionMultiplier(c PayCondition) (decimal.Decimal, bool) {
	m, ok := t.multipliers[c]
	return m, ok
}

// Levels returns the defined levels in ascending order.
func (t *Table) Levels() []Level {
	out := make([]Level, 0, len(t.levels))
	for l := MinLevel; l <= MaxLevel; l++ {
		if _, ok := t.levels[l]; ok {
			out = append(out, l)
		}
	}
	return out
}

// Covers reports whether the award applies to an employment type.
func (t *Table) Covers(et EmploymentType) bool {
	return t.covered[et]
}
