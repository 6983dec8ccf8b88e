package award

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// HoursDistribution maps pay conditions to worked hours. Absent or zero entries cost nothing.
type HoursDistribution map[PayCondition]decimal.Decimal

// JobCostParams describes a job to be priced.
type JobCostParams struct {
	EmploymentType     EmploymentType
	Level              Level
	Hours              HoursDistribution
	OverheadPercentage decimal.Decimal
	MarginPercentage   decimal.Decimal
}

// HourlyLine is one costed pay condition of a job.
type HourlyLine struct {
	Condition PayCondition
	Hours     decimal.Decimal
	Rate      decimal.Decimal
	Cost      decimal.Decimal
}

// JobCostBreakdown is the full costing of a job. Values are unrounded; call Rounded for display.
type JobCostBreakdown struct {
	HourlyBreakdown       []HourlyLine
	LaborCost             decimal.Decimal
	OverheadCost          decimal.Decimal
	TotalCostBeforeMargin decimal.Decimal
	Margin                decimal.Decimal
	TotalPrice            decimal.Decimal
}

// Rounded returns a copy with every money value rounded to cents.
func (b JobCostBreakdown) Rounded() JobCostBreakdown {
	lines := make([]HourlyLine, len(b.HourlyBreakdown))
	for i, l := range b.HourlyBreakdown {
		lines[i] = HourlyLine{
			Condition: l.Condition,
			Hours:     l.Hours,
			Rate:      l.Rate.Round(2),
			Cost:      l.Cost.Round(2),
		}
	}
	return JobCostBreakdown{
		HourlyBreakdown:       lines,
		LaborCost:             b.LaborCost.Round(2),
		OverheadCost:          b.OverheadCost.Round(2),
		TotalCostBeforeMargin: b.TotalCostBeforeMargin.Round(2),
		Margin:                b.Margin.Round(2),
		TotalPrice:            b.TotalPrice.Round(2),
	}
}

func (b JobCostBreakdown) String() string {
	var sb strings.Builder
	for _, l := range b.HourlyBreakdown {
		fmt.Fprintf(&sb, "%s %sh @ %s = %s\n", l.Condition, l.Hours, l.Rate, l.Cost)
	}
	fmt.Fprintf(&sb, "labor=%s overhead=%s beforeMargin=%s margin=%s total=%s",
		b.LaborCost, b.OverheadCost, b.TotalCostBeforeMargin, b.Margin, b.TotalPrice)
	return sb.String()
}

var hundredth = decimal.New(1, -2)

func percentOf(p decimal.Decimal) decimal.Decimal {
	return p.Mul(hundredth)
}

// JobCost prices a job. settingsMultiplier scales every rate; zero means 1.
// Nothing is computed when the rates cannot be resolved or the hours are invalid.
func (t *Table) JobCost(params JobCostParams, settingsMultiplier decimal.Decimal) (JobCostBreakdown, error) {
	rates, err := t.Rates(params.EmploymentType, params.Level)
	if err != nil {
		return JobCostBreakdown{}, fmt.Errorf("calculate job cost: %w", err)
	}
	if settingsMultiplier.IsZero() {
		settingsMultiplier = decimal.NewFromInt(1)
	}

	for c, h := range params.Hours {
		if h.IsNegative() {
			return JobCostBreakdown{}, fmt.Errorf("calculate job cost: %w: %s = %s", ErrNegativeHours, c, h)
		}
		if !h.IsPositive() {
			continue
		}
		if _, ok := rates.Rates[c]; !ok {
			return JobCostBreakdown{}, fmt.Errorf("calculate job cost: %w: %s", ErrUnmappedCondition, c)
		}
	}

	var out JobCostBreakdown
	for _, c := range PayConditions() {
		hours := params.Hours[c]
		if !hours.IsPositive() {
			continue
		}
		rate := rates.Rates[c].Rate.Mul(settingsMultiplier)
		cost := rate.Mul(hours)
		out.LaborCost = out.LaborCost.Add(cost)
		out.HourlyBreakdown = append(out.HourlyBreakdown, HourlyLine{
			Condition: c,
			Hours:     hours,
			Rate:      rate,
			Cost:      cost,
		})
	}

	out.OverheadCost = out.LaborCost.Mul(percentOf(params.OverheadPercentage))
	out.TotalCostBeforeMargin = out.LaborCost.Add(out.OverheadCost)
	out.Margin = out.TotalCostBeforeMargin.Mul(percentOf(params.MarginPercentage))
	out.TotalPrice = out.TotalCostBeforeMargin.Add(out.Margin)

	return out, nil
}

// CalculateJobCost prices a job against the default table.
func CalculateJobCost(params JobCostParams, settingsMultiplier decimal.Decimal) (JobCostBreakdown, error) {
	return Default().JobCost(params, settingsMultiplier)
}
