package award

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Allowance is an award allowance paid on top of wages.
type Allowance struct {
	ID     string
	Name   string
	Amount decimal.Decimal
	Unit   AllowanceUnit
}

// AllowanceCatalog indexes allowances by id.
type AllowanceCatalog map[string]Allowance

// NewAllowanceCatalog indexes list by id. Later duplicates replace earlier ones.
func NewAllowanceCatalog(list []Allowance) AllowanceCatalog {
	c := make(AllowanceCatalog, len(list))
	for _, a := range list {
		c[a.ID] = a
	}
	return c
}

// Resolve looks up every id, failing on the first one missing from the catalog.
func (c AllowanceCatalog) Resolve(ids []string) ([]Allowance, error) {
	out := make([]Allowance, 0, len(ids))
	for _, id := range ids {
		a, ok := c[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAllowance, id)
		}
		out = append(out, a)
	}
	return out, nil
}

// DefaultAllowances returns the standard Cleaning Services Award allowances.
func DefaultAllowances() []Allowance {
	return []Allowance{
		{ID: "leading_hand_1_5", Name: "Leading hand (1-5 employees)", Amount: dec("36.26"), Unit: UnitPerWeek},
		{ID: "leading_hand_6_10", Name: "Leading hand (6-10 employees)", Amount: dec("48.67"), Unit: UnitPerWeek},
		{ID: "first_aid", Name: "First aid", Amount: dec("17.64"), Unit: UnitPerWeek},
		{ID: "broken_shift", Name: "Broken shift", Amount: dec("4.29"), Unit: UnitPerDay},
		{ID: "toilet_cleaning", Name: "Toilet cleaning", Amount: dec("3.11"), Unit: UnitPerShift},
		{ID: "cold_place", Name: "Cold place", Amount: dec("0.79"), Unit: UnitPerHour},
		{ID: "height_work", Name: "Work at heights", Amount: dec("0.72"), Unit: UnitPerHour},
		{ID: "laundry", Name: "Laundry", Amount: dec("1.49"), Unit: UnitPerShift},
		{ID: "uniform", Name: "Uniform", Amount: dec("1.84"), Unit: UnitEach},
		{ID: "meal", Name: "Meal (overtime)", Amount: dec("17.99"), Unit: UnitEach},
		{ID: "vehicle", Name: "Vehicle", Amount: dec("0.98"), Unit: UnitPerKm},
	}
}

// allowanceAmount prices one allowance for a single cleaner on a shift of the given hours.
func allowanceAmount(a Allowance, hours, km decimal.Decimal) decimal.Decimal {
	switch a.Unit {
	case UnitPerHour:
		return a.Amount.Mul(hours)
	case UnitPerKm:
		return a.Amount.Mul(km)
	default:
		return a.Amount
	}
}
