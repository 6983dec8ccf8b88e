package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/awardcost/internal/award"
)

// Config contains the values required by startup seed.
type Config struct {
	OverheadPercent decimal.Decimal
	MarginPercent   decimal.Decimal
	RateMultiplier  decimal.Decimal
	Allowances      []award.Allowance
}

// DefaultConfig seeds the award defaults.
func DefaultConfig() Config {
	s := award.DefaultSettings()
	return Config{
		OverheadPercent: s.OverheadPercentage,
		MarginPercent:   s.MarginPercentage,
		RateMultiplier:  decimal.NewFromInt(1),
		Allowances:      award.DefaultAllowances(),
	}
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way. Existing rows are never overwritten.
func Run(ctx context.Context, db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := ensureSettings(ctx, tx, cfg, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	for _, a := range cfg.Allowances {
		if err := ensureAllowance(ctx, tx, a, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureSettings(ctx context.Context, tx *sql.Tx, cfg Config, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM business_settings WHERE id = 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check business settings existence: %w", err)
	}
	if exists {
		return nil
	}

	multiplier := cfg.RateMultiplier
	if multiplier.IsZero() {
		multiplier = decimal.NewFromInt(1)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO business_settings (id, overhead_percent, margin_percent, rate_multiplier)
		VALUES (1, ?, ?, ?)
	`, cfg.OverheadPercent.String(), cfg.MarginPercent.String(), multiplier.String()); err != nil {
		return fmt.Errorf("insert business settings singleton: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureAllowance(ctx context.Context, tx *sql.Tx, a award.Allowance, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM allowances WHERE id = ? LIMIT 1)`, a.ID).Scan(&exists); err != nil {
		return fmt.Errorf("check allowance %s existence: %w", a.ID, err)
	}
	if exists {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO allowances (id, name, amount, unit, active)
		VALUES (?, ?, ?, ?, TRUE)
	`, a.ID, a.Name, a.Amount.String(), string(a.Unit)); err != nil {
		return fmt.Errorf("insert allowance %s: %w", a.ID, err)
	}
	stats.Inserts++
	return nil
}
