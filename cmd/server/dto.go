package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/awardcost/internal/award"
)

type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type jobCostRequest struct {
	EmploymentType     string                     `json:"employmentType"`
	Level              int                        `json:"level"`
	Hours              map[string]decimal.Decimal `json:"hours"`
	OverheadPercentage *decimal.Decimal           `json:"overheadPercentage,omitempty"`
	MarginPercentage   *decimal.Decimal           `json:"marginPercentage,omitempty"`
	SettingsMultiplier *decimal.Decimal           `json:"settingsMultiplier,omitempty"`
}

type quoteRequest struct {
	jobCostRequest
	Title      string `json:"title"`
	ClientName string `json:"clientName"`
	SiteName   string `json:"siteName"`
}

type hourlyLineView struct {
	Condition string `json:"condition"`
	Hours     string `json:"hours"`
	Rate      string `json:"rate"`
	Cost      string `json:"cost"`
}

type jobCostResponse struct {
	EmploymentType        string           `json:"employmentType"`
	Level                 int              `json:"level"`
	HourlyBreakdown       []hourlyLineView `json:"hourlyBreakdown"`
	LaborCost             string           `json:"laborCost"`
	OverheadPercentage    string           `json:"overheadPercentage"`
	OverheadCost          string           `json:"overheadCost"`
	TotalCostBeforeMargin string           `json:"totalCostBeforeMargin"`
	MarginPercentage      string           `json:"marginPercentage"`
	Margin                string           `json:"margin"`
	TotalPrice            string           `json:"totalPrice"`
	TotalPriceFormatted   string           `json:"totalPriceFormatted"`
}

type conditionRateView struct {
	Rate       string `json:"rate"`
	Multiplier string `json:"multiplier"`
}

type ratesResponse struct {
	EmploymentType string                       `json:"employmentType"`
	Level          int                          `json:"level"`
	BaseRate       string                       `json:"baseRate"`
	HourlyRate     string                       `json:"hourlyRate"`
	Rates          map[string]conditionRateView `json:"rates"`
}

type shiftInput struct {
	Day                  string          `json:"day"`
	StartTime            string          `json:"startTime"`
	EndTime              string          `json:"endTime"`
	BreakDurationMinutes int             `json:"breakDurationMinutes"`
	NumberOfCleaners     int             `json:"numberOfCleaners"`
	EmploymentType       string          `json:"employmentType"`
	Level                int             `json:"level"`
	AllowanceIDs         []string        `json:"allowanceIds"`
	TravelKm             decimal.Decimal `json:"travelKm"`
	Location             string          `json:"location"`
	Notes                string          `json:"notes"`
}

type shiftCostRequest struct {
	Shift shiftInput `json:"shift"`
}

type allowanceView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

type shiftCostResponse struct {
	Condition     string          `json:"condition"`
	Hours         string          `json:"hours"`
	LabourCost    string          `json:"labourCost"`
	Cost          string          `json:"cost"`
	CostFormatted string          `json:"costFormatted"`
	Allowances    []allowanceView `json:"allowances"`
}

type checkShiftsRequest struct {
	Shifts []shiftInput `json:"shifts"`
}

type warningView struct {
	Code    string `json:"code"`
	Day     string `json:"day,omitempty"`
	Message string `json:"message"`
}

type checkShiftsResponse struct {
	BrokenShiftDays []string      `json:"brokenShiftDays"`
	Warnings        []warningView `json:"warnings"`
	TotalCost       string        `json:"totalCost"`
}

type settingsView struct {
	OverheadPercentage decimal.Decimal `json:"overheadPercentage"`
	MarginPercentage   decimal.Decimal `json:"marginPercentage"`
	RateMultiplier     decimal.Decimal `json:"rateMultiplier"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (r jobCostRequest) toParams(defaults settingsView) (award.JobCostParams, decimal.Decimal, error) {
	et, err := award.ParseEmploymentType(r.EmploymentType)
	if err != nil {
		return award.JobCostParams{}, decimal.Zero, err
	}

	hours := make(award.HoursDistribution, len(r.Hours))
	for key, value := range r.Hours {
		c, err := award.ParsePayCondition(key)
		if err != nil {
			return award.JobCostParams{}, decimal.Zero, err
		}
		if value.IsNegative() {
			return award.JobCostParams{}, decimal.Zero, fmt.Errorf("hours for %s must not be negative", c)
		}
		hours[c] = value
	}

	params := award.JobCostParams{
		EmploymentType:     et,
		Level:              award.Level(r.Level),
		Hours:              hours,
		OverheadPercentage: defaults.OverheadPercentage,
		MarginPercentage:   defaults.MarginPercentage,
	}
	if r.OverheadPercentage != nil {
		params.OverheadPercentage = *r.OverheadPercentage
	}
	if r.MarginPercentage != nil {
		params.MarginPercentage = *r.MarginPercentage
	}
	if err := validatePercent("overheadPercentage", params.OverheadPercentage); err != nil {
		return award.JobCostParams{}, decimal.Zero, err
	}
	if err := validatePercent("marginPercentage", params.MarginPercentage); err != nil {
		return award.JobCostParams{}, decimal.Zero, err
	}

	multiplier := defaults.RateMultiplier
	if r.SettingsMultiplier != nil {
		multiplier = *r.SettingsMultiplier
	}
	if multiplier.IsNegative() {
		return award.JobCostParams{}, decimal.Zero, fmt.Errorf("settingsMultiplier must not be negative")
	}

	return params, multiplier, nil
}

func validatePercent(field string, value decimal.Decimal) error {
	if value.IsNegative() {
		return fmt.Errorf("%s must be greater than or equal to 0", field)
	}
	if value.GreaterThan(decimal.NewFromInt(1000)) {
		return fmt.Errorf("%s must not exceed 1000", field)
	}
	return nil
}

func newJobCostResponse(params award.JobCostParams, b award.JobCostBreakdown) jobCostResponse {
	rounded := b.Rounded()
	lines := make([]hourlyLineView, 0, len(rounded.HourlyBreakdown))
	for _, l := range rounded.HourlyBreakdown {
		lines = append(lines, hourlyLineView{
			Condition: string(l.Condition),
			Hours:     l.Hours.String(),
			Rate:      money(l.Rate),
			Cost:      money(l.Cost),
		})
	}
	return jobCostResponse{
		EmploymentType:        string(params.EmploymentType),
		Level:                 int(params.Level),
		HourlyBreakdown:       lines,
		LaborCost:             money(rounded.LaborCost),
		OverheadPercentage:    params.OverheadPercentage.String(),
		OverheadCost:          money(rounded.OverheadCost),
		TotalCostBeforeMargin: money(rounded.TotalCostBeforeMargin),
		MarginPercentage:      params.MarginPercentage.String(),
		Margin:                money(rounded.Margin),
		TotalPrice:            money(rounded.TotalPrice),
		TotalPriceFormatted:   award.FormatCurrency(b.TotalPrice),
	}
}

func newRatesResponse(r award.EmployeeLevelRate) ratesResponse {
	rates := make(map[string]conditionRateView, len(r.Rates))
	for c, cr := range r.Rates {
		rates[string(c)] = conditionRateView{Rate: money(cr.Rate), Multiplier: cr.Multiplier.String()}
	}
	return ratesResponse{
		EmploymentType: string(r.EmploymentType),
		Level:          int(r.Level),
		BaseRate:       money(r.BaseRate),
		HourlyRate:     money(r.HourlyRate),
		Rates:          rates,
	}
}

func newAllowanceViews(list []award.Allowance) []allowanceView {
	out := make([]allowanceView, 0, len(list))
	for _, a := range list {
		out = append(out, allowanceView{ID: a.ID, Name: a.Name, Amount: money(a.Amount), Unit: string(a.Unit)})
	}
	return out
}

// toShift converts a form shift. Blank fields are kept blank so drafts cost zero,
// but values that are present must be valid.
func (in shiftInput) toShift() (award.Shift, error) {
	s := award.Shift{
		StartTime:            strings.TrimSpace(in.StartTime),
		EndTime:              strings.TrimSpace(in.EndTime),
		BreakDurationMinutes: in.BreakDurationMinutes,
		NumberOfCleaners:     in.NumberOfCleaners,
		Level:                award.Level(in.Level),
		AllowanceIDs:         in.AllowanceIDs,
		TravelKm:             in.TravelKm,
		Location:             strings.TrimSpace(in.Location),
		Notes:                strings.TrimSpace(in.Notes),
	}

	if strings.TrimSpace(in.Day) != "" {
		d, err := award.ParseDay(in.Day)
		if err != nil {
			return award.Shift{}, err
		}
		s.Day = d
	}
	if strings.TrimSpace(in.EmploymentType) != "" {
		et, err := award.ParseEmploymentType(in.EmploymentType)
		if err != nil {
			return award.Shift{}, err
		}
		s.EmploymentType = et
	}
	for _, t := range []string{s.StartTime, s.EndTime} {
		if t == "" {
			continue
		}
		if _, err := award.ParseTimeOfDay(t); err != nil {
			return award.Shift{}, err
		}
	}
	if s.BreakDurationMinutes < 0 {
		return award.Shift{}, fmt.Errorf("breakDurationMinutes must not be negative")
	}
	if s.NumberOfCleaners < 0 {
		return award.Shift{}, fmt.Errorf("numberOfCleaners must not be negative")
	}
	if s.TravelKm.IsNegative() {
		return award.Shift{}, fmt.Errorf("travelKm must not be negative")
	}

	return s, nil
}
