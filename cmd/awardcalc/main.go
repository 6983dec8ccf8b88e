package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Simplici0/awardcost/internal/award"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "awardcalc",
		Short:        "Cleaning Services Award rate and job cost calculator",
		SilenceUsage: true,
	}
	root.AddCommand(newRatesCmd(), newJobCmd())
	return root
}

func newRatesCmd() *cobra.Command {
	var (
		typ        string
		level      int
		multiplier string
	)

	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Print the hourly rate for every pay condition",
		RunE: func(cmd *cobra.Command, args []string) error {
			et, err := award.ParseEmploymentType(typ)
			if err != nil {
				return err
			}
			table, err := tableWithMultiplier(multiplier)
			if err != nil {
				return err
			}
			rates, err := table.Rates(et, award.Level(level))
			if err != nil {
				return err
			}
			return printRates(cmd.OutOrStdout(), rates)
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", string(award.FullTime), typeUsage())
	cmd.Flags().IntVarP(&level, "level", "l", 1, "award level 1-6")
	cmd.Flags().StringVar(&multiplier, "rate-multiplier", "1", "scale applied to every base rate")
	return cmd
}

func newJobCmd() *cobra.Command {
	var (
		typ        string
		level      int
		hoursRaw   string
		overhead   string
		margin     string
		multiplier string
	)

	cmd := &cobra.Command{
		Use:   "job",
		Short: "Cost a job from its hours per pay condition",
		Example: `  awardcalc job --type casual --level 2 --hours base=30,saturday=4
  awardcalc job -t full_time -l 1 --hours base=38 --overhead 15 --margin 20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			et, err := award.ParseEmploymentType(typ)
			if err != nil {
				return err
			}
			hours, err := parseHours(hoursRaw)
			if err != nil {
				return err
			}
			params := award.JobCostParams{EmploymentType: et, Level: award.Level(level), Hours: hours}
			if params.OverheadPercentage, err = parseDecimalFlag("overhead", overhead); err != nil {
				return err
			}
			if params.MarginPercentage, err = parseDecimalFlag("margin", margin); err != nil {
				return err
			}
			m, err := parseDecimalFlag("multiplier", multiplier)
			if err != nil {
				return err
			}

			breakdown, err := award.CalculateJobCost(params, m)
			if err != nil {
				return err
			}
			return printBreakdown(cmd.OutOrStdout(), params, breakdown)
		},
	}

	defaults := award.DefaultSettings()
	cmd.Flags().StringVarP(&typ, "type", "t", string(award.FullTime), typeUsage())
	cmd.Flags().IntVarP(&level, "level", "l", 1, "award level 1-6")
	cmd.Flags().StringVar(&hoursRaw, "hours", "", "hours per condition, e.g. base=30,saturday=4")
	cmd.Flags().StringVar(&overhead, "overhead", defaults.OverheadPercentage.String(), "overhead percentage")
	cmd.Flags().StringVar(&margin, "margin", defaults.MarginPercentage.String(), "margin percentage")
	cmd.Flags().StringVar(&multiplier, "multiplier", "1", "business rate multiplier")
	_ = cmd.MarkFlagRequired("hours")
	return cmd
}

// parseHours reads "condition=hours" pairs separated by commas.
func parseHours(raw string) (award.HoursDistribution, error) {
	out := make(award.HoursDistribution)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid hours entry %q, expected condition=hours", part)
		}
		c, err := award.ParsePayCondition(key)
		if err != nil {
			return nil, err
		}
		h, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid hours for %s: %q", c, value)
		}
		out[c] = out[c].Add(h)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("--hours must name at least one condition")
	}
	return out, nil
}

func parseDecimalFlag(name, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %q is not a number", name, raw)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("--%s must not be negative", name)
	}
	return d, nil
}

func tableWithMultiplier(raw string) (*award.Table, error) {
	m, err := parseDecimalFlag("rate-multiplier", raw)
	if err != nil {
		return nil, err
	}
	if !m.IsPositive() {
		return nil, fmt.Errorf("--rate-multiplier must be greater than 0")
	}
	return award.Default().WithMultiplier(m), nil
}

// typeUsage lists the employment types the award covers for flag help.
func typeUsage() string {
	table := award.Default()
	names := make([]string, 0, len(award.EmploymentTypes()))
	for _, et := range award.EmploymentTypes() {
		if table.Covers(et) {
			names = append(names, string(et))
		}
	}
	return "employment type (" + strings.Join(names, ", ") + ")"
}

func printRates(w io.Writer, r award.EmployeeLevelRate) error {
	fmt.Fprintf(w, "%s level %d, base %s\n\n", r.EmploymentType, r.Level, award.FormatCurrency(r.HourlyRate))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CONDITION\tMULTIPLIER\tRATE")
	conditions := make([]award.PayCondition, 0, len(r.Rates))
	for _, c := range award.PayConditions() {
		if _, ok := r.Rates[c]; ok {
			conditions = append(conditions, c)
		}
	}
	for _, c := range conditions {
		cr := r.Rates[c]
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c, cr.Multiplier, award.FormatCurrency(cr.Rate))
	}
	return tw.Flush()
}

func printBreakdown(w io.Writer, params award.JobCostParams, b award.JobCostBreakdown) error {
	rounded := b.Rounded()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CONDITION\tHOURS\tRATE\tCOST")
	for _, l := range rounded.HourlyBreakdown {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.Condition, l.Hours, award.FormatCurrency(l.Rate), award.FormatCurrency(l.Cost))
	}
	fmt.Fprintln(tw, "\t\t\t")
	fmt.Fprintf(tw, "Labour\t\t\t%s\n", award.FormatCurrency(rounded.LaborCost))
	fmt.Fprintf(tw, "Overhead (%s%%)\t\t\t%s\n", params.OverheadPercentage, award.FormatCurrency(rounded.OverheadCost))
	fmt.Fprintf(tw, "Cost before margin\t\t\t%s\n", award.FormatCurrency(rounded.TotalCostBeforeMargin))
	fmt.Fprintf(tw, "Margin (%s%%)\t\t\t%s\n", params.MarginPercentage, award.FormatCurrency(rounded.Margin))
	fmt.Fprintf(tw, "Total price\t\t\t%s\n", award.FormatCurrency(b.TotalPrice))
	return tw.Flush()
}
