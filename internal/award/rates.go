package award

import "github.com/shopspring/decimal"

// ConditionRate is the resolved hourly rate for one pay condition.
type ConditionRate struct {
	Rate       decimal.Decimal
	Multiplier decimal.Decimal
}

// EmployeeLevelRate is the full rate sheet for an employment type and level.
type EmployeeLevelRate struct {
	Level          Level
	EmploymentType EmploymentType
	BaseRate       decimal.Decimal
	HourlyRate     decimal.Decimal
	Rates          map[PayCondition]ConditionRate
}

// Rate returns the resolved rate of condition c.
func (r EmployeeLevelRate) Rate(c PayCondition) (decimal.Decimal, bool) {
	cr, ok := r.Rates[c]
	return cr.Rate, ok
}

// Rates resolves the per-condition rates of et at level.
// Casual rates include the casual loading.
func (t *Table) Rates(et EmploymentType, level Level) (EmployeeLevelRate, error) {
	base, ok := t.levels[level]
	if !ok || !t.Covers(et) {
		return EmployeeLevelRate{}, &RateNotFoundError{EmploymentType: et, Level: level}
	}

	loaded := base.Mul(t.scale)
	if et == Casual {
		loading := decimal.NewFromInt(1).Add(percentOf(t.settings.CasualLoadingPercentage))
		loaded = loaded.Mul(loading)
	}

	rates := make(map[PayCondition]ConditionRate, len(t.multipliers))
	for c, m := range t.multipliers {
		rates[c] = ConditionRate{Rate: loaded.Mul(m), Multiplier: m}
	}

	return EmployeeLevelRate{
		Level:          level,
		EmploymentType: et,
		BaseRate:       base,
		HourlyRate:     rates[ConditionBase].Rate,
		Rates:          rates,
	}, nil
}

// GetAwardRates resolves rates against the default table.
func GetAwardRates(et EmploymentType, level Level) (EmployeeLevelRate, error) {
	return Default().Rates(et, level)
}
