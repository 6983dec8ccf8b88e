package award

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func decimalEqual(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("%s = %s, want %s", name, got, want)
	}
}

func hours(pairs map[PayCondition]string) HoursDistribution {
	out := make(HoursDistribution, len(pairs))
	for c, h := range pairs {
		out[c] = decimal.RequireFromString(h)
	}
	return out
}

func TestJobCost_FullTimeLevelOneStandardWeek(t *testing.T) {
	result, err := CalculateJobCost(JobCostParams{
		EmploymentType:     FullTime,
		Level:              1,
		Hours:              hours(map[PayCondition]string{ConditionBase: "38"}),
		OverheadPercentage: decimal.NewFromInt(15),
		MarginPercentage:   decimal.NewFromInt(20),
	}, decimal.NewFromInt(1))
	if err != nil {
		t.Fatalf("CalculateJobCost: %v", err)
	}

	rounded := result.Rounded()
	decimalEqual(t, "laborCost", rounded.LaborCost, "853.48")
	decimalEqual(t, "overheadCost", rounded.OverheadCost, "128.02")
	decimalEqual(t, "totalCostBeforeMargin", rounded.TotalCostBeforeMargin, "981.50")
	decimalEqual(t, "margin", rounded.Margin, "196.30")
	decimalEqual(t, "totalPrice", rounded.TotalPrice, "1177.80")

	// Unrounded values keep full precision between steps.
	decimalEqual(t, "raw totalPrice", result.TotalPrice, "1177.8024")
}

func TestJobCost_LaborCostEqualsSumOfLines(t *testing.T) {
	result, err := CalculateJobCost(JobCostParams{
		EmploymentType: Casual,
		Level:          3,
		Hours: hours(map[PayCondition]string{
			ConditionBase:                "17.25",
			ConditionSaturday:            "3.333",
			ConditionOvernight:           "1.5",
			ConditionOvertimeFirst2Hours: "2",
		}),
		OverheadPercentage: decimal.RequireFromString("12.5"),
		MarginPercentage:   decimal.RequireFromString("18.75"),
	}, decimal.RequireFromString("1.037"))
	if err != nil {
		t.Fatalf("CalculateJobCost: %v", err)
	}

	if len(result.HourlyBreakdown) != 4 {
		t.Fatalf("expected 4 breakdown lines, got %d", len(result.HourlyBreakdown))
	}

	sum := decimal.Zero
	for _, line := range result.HourlyBreakdown {
		sum = sum.Add(line.Cost)
		if !line.Cost.Equal(line.Rate.Mul(line.Hours)) {
			t.Fatalf("line %s cost %s != rate %s x hours %s", line.Condition, line.Cost, line.Rate, line.Hours)
		}
	}
	if !sum.Equal(result.LaborCost) {
		t.Fatalf("laborCost = %s, sum of lines = %s", result.LaborCost, sum)
	}
	if !result.TotalCostBeforeMargin.Equal(result.LaborCost.Add(result.OverheadCost)) {
		t.Fatalf("totalCostBeforeMargin is not laborCost + overheadCost")
	}
	if !result.TotalPrice.Equal(result.TotalCostBeforeMargin.Add(result.Margin)) {
		t.Fatalf("totalPrice is not totalCostBeforeMargin + margin")
	}
}

func TestJobCost_BreakdownFollowsConditionOrder(t *testing.T) {
	result, err := CalculateJobCost(JobCostParams{
		EmploymentType: PartTime,
		Level:          2,
		Hours: hours(map[PayCondition]string{
			ConditionOvertimePublicHoliday: "1",
			ConditionSunday:                "2",
			ConditionBase:                  "3",
			ConditionEvening:               "0",
		}),
	}, decimal.Zero)
	if err != nil {
		t.Fatalf("CalculateJobCost: %v", err)
	}

	want := []PayCondition{ConditionBase, ConditionSunday, ConditionOvertimePublicHoliday}
	if len(result.HourlyBreakdown) != len(want) {
		t.Fatalf("expected %d lines, got %+v", len(want), result.HourlyBreakdown)
	}
	for i, c := range want {
		if result.HourlyBreakdown[i].Condition != c {
			t.Fatalf("line %d condition = %s, want %s", i, result.HourlyBreakdown[i].Condition, c)
		}
	}
}

func TestJobCost_EmptyHoursIsZero(t *testing.T) {
	for _, h := range []HoursDistribution{nil, {}, hours(map[PayCondition]string{ConditionBase: "0"})} {
		result, err := CalculateJobCost(JobCostParams{
			EmploymentType:     FullTime,
			Level:              4,
			Hours:              h,
			OverheadPercentage: decimal.NewFromInt(40),
			MarginPercentage:   decimal.NewFromInt(60),
		}, decimal.NewFromInt(1))
		if err != nil {
			t.Fatalf("CalculateJobCost: %v", err)
		}
		if !result.LaborCost.IsZero() || !result.TotalPrice.IsZero() {
			t.Fatalf("expected zero costs, got labor %s total %s", result.LaborCost, result.TotalPrice)
		}
		if len(result.HourlyBreakdown) != 0 {
			t.Fatalf("expected no breakdown lines, got %d", len(result.HourlyBreakdown))
		}
	}
}

func TestJobCost_Idempotent(t *testing.T) {
	params := JobCostParams{
		EmploymentType:     Casual,
		Level:              5,
		Hours:              hours(map[PayCondition]string{ConditionBase: "7.6", ConditionSunday: "4"}),
		OverheadPercentage: decimal.NewFromInt(15),
		MarginPercentage:   decimal.NewFromInt(20),
	}

	first, err := CalculateJobCost(params, decimal.NewFromInt(1))
	if err != nil {
		t.Fatalf("first CalculateJobCost: %v", err)
	}
	second, err := CalculateJobCost(params, decimal.NewFromInt(1))
	if err != nil {
		t.Fatalf("second CalculateJobCost: %v", err)
	}

	if first.String() != second.String() {
		t.Fatalf("results differ:\n%s\n%s", first, second)
	}
}

func TestJobCost_SettingsMultiplierScalesRates(t *testing.T) {
	result, err := CalculateJobCost(JobCostParams{
		EmploymentType: FullTime,
		Level:          1,
		Hours:          hours(map[PayCondition]string{ConditionBase: "10"}),
	}, decimal.RequireFromString("1.1"))
	if err != nil {
		t.Fatalf("CalculateJobCost: %v", err)
	}

	decimalEqual(t, "rate", result.HourlyBreakdown[0].Rate, "24.706")
	decimalEqual(t, "laborCost", result.LaborCost, "247.06")
}

func TestJobCost_RateNotFoundAborts(t *testing.T) {
	_, err := CalculateJobCost(JobCostParams{
		EmploymentType: Contract,
		Level:          1,
		Hours:          hours(map[PayCondition]string{ConditionBase: "8"}),
	}, decimal.NewFromInt(1))
	if !errors.Is(err, ErrRateNotFound) {
		t.Fatalf("expected ErrRateNotFound, got %v", err)
	}

	var notFound *RateNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected *RateNotFoundError, got %T", err)
	}
	if notFound.EmploymentType != Contract || notFound.Level != 1 {
		t.Fatalf("unexpected lookup in error: %+v", notFound)
	}
}

func TestJobCost_RejectsNegativeAndUnmappedHours(t *testing.T) {
	_, err := CalculateJobCost(JobCostParams{
		EmploymentType: FullTime,
		Level:          1,
		Hours:          hours(map[PayCondition]string{ConditionBase: "8", ConditionSaturday: "-1"}),
	}, decimal.NewFromInt(1))
	if !errors.Is(err, ErrNegativeHours) {
		t.Fatalf("expected ErrNegativeHours, got %v", err)
	}

	_, err = CalculateJobCost(JobCostParams{
		EmploymentType: FullTime,
		Level:          1,
		Hours:          HoursDistribution{"night_owl": decimal.NewFromInt(2)},
	}, decimal.NewFromInt(1))
	if !errors.Is(err, ErrUnmappedCondition) {
		t.Fatalf("expected ErrUnmappedCondition, got %v", err)
	}
}
