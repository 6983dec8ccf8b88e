package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/awardcost/internal/award"
)

var errQuoteNotFound = errors.New("quote not found")

type quoteListItem struct {
	ID             string `json:"id"`
	CreatedAt      string `json:"createdAt"`
	Title          string `json:"title"`
	ClientName     string `json:"clientName"`
	SiteName       string `json:"siteName"`
	EmploymentType string `json:"employmentType"`
	Level          int    `json:"level"`
	TotalPrice     string `json:"totalPrice"`
}

type quoteDetail struct {
	quoteListItem
	Request   quoteRequest    `json:"request"`
	Breakdown jobCostResponse `json:"breakdown"`
}

func (s *server) getSettings(ctx context.Context) (settingsView, error) {
	var overhead, margin, multiplier string
	err := s.db.QueryRowContext(ctx, `
		SELECT overhead_percent, margin_percent, rate_multiplier
		FROM business_settings
		WHERE id = 1
	`).Scan(&overhead, &margin, &multiplier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return settingsView{}, fmt.Errorf("business_settings singleton not found")
		}
		return settingsView{}, fmt.Errorf("query business_settings: %w", err)
	}

	var view settingsView
	for _, f := range []struct {
		raw string
		dst *decimal.Decimal
	}{
		{overhead, &view.OverheadPercentage},
		{margin, &view.MarginPercentage},
		{multiplier, &view.RateMultiplier},
	} {
		d, err := decimal.NewFromString(f.raw)
		if err != nil {
			return settingsView{}, fmt.Errorf("parse stored setting %q: %w", f.raw, err)
		}
		*f.dst = d
	}
	return view, nil
}

func (s *server) updateSettings(ctx context.Context, v settingsView) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO business_settings (id, overhead_percent, margin_percent, rate_multiplier, updated_at)
		VALUES (1, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			overhead_percent = excluded.overhead_percent,
			margin_percent = excluded.margin_percent,
			rate_multiplier = excluded.rate_multiplier,
			updated_at = CURRENT_TIMESTAMP
	`, v.OverheadPercentage.String(), v.MarginPercentage.String(), v.RateMultiplier.String())
	if err != nil {
		return fmt.Errorf("update business_settings: %w", err)
	}
	return nil
}

func (s *server) listAllowances(ctx context.Context) ([]award.Allowance, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, amount, unit
		FROM allowances
		WHERE active = TRUE
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query allowances: %w", err)
	}
	defer rows.Close()

	list := make([]award.Allowance, 0)
	for rows.Next() {
		var (
			a      award.Allowance
			amount string
			unit   string
		)
		if err := rows.Scan(&a.ID, &a.Name, &amount, &unit); err != nil {
			return nil, err
		}
		if a.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse allowance %s amount: %w", a.ID, err)
		}
		if a.Unit, err = award.ParseAllowanceUnit(unit); err != nil {
			return nil, fmt.Errorf("allowance %s: %w", a.ID, err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *server) allowanceCatalog(ctx context.Context) (award.AllowanceCatalog, error) {
	list, err := s.listAllowances(ctx)
	if err != nil {
		return nil, err
	}
	return award.NewAllowanceCatalog(list), nil
}

// saveQuote stores the request together with the computed breakdown so the
// quote can be shown later exactly as it was priced.
func (s *server) saveQuote(ctx context.Context, req quoteRequest, breakdown jobCostResponse) (quoteListItem, error) {
	requestJSON, err := json.Marshal(req)
	if err != nil {
		return quoteListItem{}, fmt.Errorf("encode quote request: %w", err)
	}
	breakdownJSON, err := json.Marshal(breakdown)
	if err != nil {
		return quoteListItem{}, fmt.Errorf("encode quote breakdown: %w", err)
	}

	item := quoteListItem{
		ID:             uuid.NewString(),
		CreatedAt:      time.Now().UTC().Format(time.DateTime),
		Title:          req.Title,
		ClientName:     req.ClientName,
		SiteName:       req.SiteName,
		EmploymentType: breakdown.EmploymentType,
		Level:          breakdown.Level,
		TotalPrice:     breakdown.TotalPrice,
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO quotes (
			id, created_at, title, client_name, site_name,
			employment_type, level, request_json, breakdown_json, total_price
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		item.ID, item.CreatedAt, item.Title, item.ClientName, item.SiteName,
		item.EmploymentType, item.Level, string(requestJSON), string(breakdownJSON), item.TotalPrice,
	)
	if err != nil {
		return quoteListItem{}, fmt.Errorf("insert quote: %w", err)
	}
	return item, nil
}

func (s *server) listQuotes(ctx context.Context, query string) ([]quoteListItem, error) {
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			id,
			created_at,
			COALESCE(title, ''),
			COALESCE(client_name, ''),
			COALESCE(site_name, ''),
			employment_type,
			level,
			total_price
		FROM quotes
		WHERE (? = '' OR COALESCE(title, '') LIKE ? OR COALESCE(client_name, '') LIKE ?)
		ORDER BY datetime(created_at) DESC, id DESC
	`, query, search, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotes := make([]quoteListItem, 0)
	for rows.Next() {
		var item quoteListItem
		if err := rows.Scan(
			&item.ID, &item.CreatedAt, &item.Title, &item.ClientName, &item.SiteName,
			&item.EmploymentType, &item.Level, &item.TotalPrice,
		); err != nil {
			return nil, err
		}
		quotes = append(quotes, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return quotes, nil
}

func (s *server) getQuote(ctx context.Context, id string) (quoteDetail, error) {
	var (
		q             quoteDetail
		requestJSON   string
		breakdownJSON string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT
			id, created_at, COALESCE(title, ''), COALESCE(client_name, ''), COALESCE(site_name, ''),
			employment_type, level, total_price, request_json, breakdown_json
		FROM quotes
		WHERE id = ?
	`, id).Scan(
		&q.ID, &q.CreatedAt, &q.Title, &q.ClientName, &q.SiteName,
		&q.EmploymentType, &q.Level, &q.TotalPrice, &requestJSON, &breakdownJSON,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quoteDetail{}, errQuoteNotFound
		}
		return quoteDetail{}, fmt.Errorf("query quote %s: %w", id, err)
	}

	if err := json.Unmarshal([]byte(requestJSON), &q.Request); err != nil {
		return quoteDetail{}, fmt.Errorf("decode quote %s request: %w", id, err)
	}
	if err := json.Unmarshal([]byte(breakdownJSON), &q.Breakdown); err != nil {
		return quoteDetail{}, fmt.Errorf("decode quote %s breakdown: %w", id, err)
	}
	return q, nil
}
