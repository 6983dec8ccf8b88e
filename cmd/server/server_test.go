package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/awardcost/internal/award"
	"github.com/Simplici0/awardcost/internal/config"
	"github.com/Simplici0/awardcost/internal/db"
	"github.com/Simplici0/awardcost/internal/migrations"
	"github.com/Simplici0/awardcost/internal/seed"
)

func newTestServer(t *testing.T) *server {
	t.Helper()

	database, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "server-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if _, err := seed.Run(context.Background(), database, seed.DefaultConfig()); err != nil {
		t.Fatalf("run seed: %v", err)
	}
	return newServer(database, award.Default(), nil)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealth(t *testing.T) {
	h := newTestServer(t).routes()

	rec := doJSON(t, h, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestRates(t *testing.T) {
	h := newTestServer(t).routes()

	rec := doJSON(t, h, http.MethodGet, "/api/rates/full_time/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	rates := decodeBody[ratesResponse](t, rec)
	if rates.BaseRate != "22.46" || rates.HourlyRate != "22.46" {
		t.Fatalf("unexpected base rates: %+v", rates)
	}
	if got := rates.Rates["sunday"].Rate; got != "44.92" {
		t.Fatalf("sunday rate=%s, want 44.92", got)
	}

	cases := map[string]int{
		"/api/rates/contract/1":  http.StatusNotFound,
		"/api/rates/full_time/9": http.StatusNotFound,
		"/api/rates/intern/1":    http.StatusBadRequest,
		"/api/rates/casual/one":  http.StatusBadRequest,
	}
	for path, want := range cases {
		if rec := doJSON(t, h, http.MethodGet, path, nil); rec.Code != want {
			t.Fatalf("%s: status=%d, want %d", path, rec.Code, want)
		}
	}
}

func TestJobCostUsesStoredDefaults(t *testing.T) {
	h := newTestServer(t).routes()

	rec := doJSON(t, h, http.MethodPost, "/api/job-cost", `{"employmentType":"full_time","level":1,"hours":{"base":38}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}

	got := decodeBody[jobCostResponse](t, rec)
	if got.LaborCost != "853.48" || got.OverheadCost != "128.02" || got.Margin != "196.30" || got.TotalPrice != "1177.80" {
		t.Fatalf("unexpected breakdown: %+v", got)
	}
	if got.TotalPriceFormatted != "$1,177.80" {
		t.Fatalf("TotalPriceFormatted=%q", got.TotalPriceFormatted)
	}
	if got.OverheadPercentage != "15" || got.MarginPercentage != "20" {
		t.Fatalf("expected stored percentages, got overhead=%s margin=%s", got.OverheadPercentage, got.MarginPercentage)
	}
	if len(got.HourlyBreakdown) != 1 || got.HourlyBreakdown[0].Condition != "base" {
		t.Fatalf("unexpected lines: %+v", got.HourlyBreakdown)
	}
}

func TestJobCostErrors(t *testing.T) {
	h := newTestServer(t).routes()

	cases := []struct {
		name string
		body string
		want int
	}{
		{"malformed", `{"employmentType":`, http.StatusBadRequest},
		{"unknown field", `{"employmentType":"casual","level":1,"hourz":{}}`, http.StatusBadRequest},
		{"unknown condition", `{"employmentType":"casual","level":1,"hours":{"midnight":2}}`, http.StatusBadRequest},
		{"negative hours", `{"employmentType":"casual","level":1,"hours":{"base":-2}}`, http.StatusBadRequest},
		{"negative overhead", `{"employmentType":"casual","level":1,"hours":{"base":2},"overheadPercentage":-1}`, http.StatusBadRequest},
		{"contract not covered", `{"employmentType":"contract","level":1,"hours":{"base":2}}`, http.StatusUnprocessableEntity},
		{"level out of range", `{"employmentType":"casual","level":7,"hours":{"base":2}}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		rec := doJSON(t, h, http.MethodPost, "/api/job-cost", tc.body)
		if rec.Code != tc.want {
			t.Fatalf("%s: status=%d, want %d (body=%s)", tc.name, rec.Code, tc.want, rec.Body.String())
		}
		if e := decodeBody[errorResponse](t, rec); e.Status != tc.want || e.Message == "" {
			t.Fatalf("%s: unexpected error body %+v", tc.name, e)
		}
	}
}

func TestSettingsUpdateChangesDefaults(t *testing.T) {
	h := newTestServer(t).routes()

	rec := doJSON(t, h, http.MethodPut, "/api/settings", `{"overheadPercentage":"10","marginPercentage":"0","rateMultiplier":"1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodGet, "/api/settings", nil)
	settings := decodeBody[settingsView](t, rec)
	if settings.OverheadPercentage.String() != "10" || !settings.MarginPercentage.IsZero() {
		t.Fatalf("settings not stored: %+v", settings)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/job-cost", `{"employmentType":"full_time","level":1,"hours":{"base":38}}`)
	got := decodeBody[jobCostResponse](t, rec)
	// 853.48 + 10% overhead, no margin
	if got.TotalPrice != "938.83" {
		t.Fatalf("TotalPrice=%s, want 938.83", got.TotalPrice)
	}

	bad := doJSON(t, h, http.MethodPut, "/api/settings", `{"overheadPercentage":"10","marginPercentage":"5","rateMultiplier":"0"}`)
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("zero multiplier accepted: status=%d", bad.Code)
	}
}

func TestShiftCost(t *testing.T) {
	h := newTestServer(t).routes()

	body := map[string]any{"shift": map[string]any{
		"day":              "monday",
		"startTime":        "08:00",
		"endTime":          "12:00",
		"numberOfCleaners": 2,
		"employmentType":   "full_time",
		"level":            1,
		"allowanceIds":     []string{"toilet_cleaning", "cold_place"},
	}}
	rec := doJSON(t, h, http.MethodPost, "/api/shift-cost", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	got := decodeBody[shiftCostResponse](t, rec)
	if got.LabourCost != "179.68" || got.Cost != "192.22" || got.Condition != "base" {
		t.Fatalf("unexpected shift cost: %+v", got)
	}
	if len(got.Allowances) != 2 || got.Allowances[0].ID != "toilet_cleaning" || got.Allowances[1].Amount != "0.79" {
		t.Fatalf("unexpected allowances: %+v", got.Allowances)
	}

	unknown := doJSON(t, h, http.MethodPost, "/api/shift-cost", `{"shift":{"day":"monday","allowanceIds":["free_lunch"]}}`)
	if unknown.Code != http.StatusBadRequest {
		t.Fatalf("unknown allowance: status=%d, want 400", unknown.Code)
	}

	draft := doJSON(t, h, http.MethodPost, "/api/shift-cost", `{"shift":{"day":"monday","startTime":"08:00"}}`)
	if draft.Code != http.StatusOK {
		t.Fatalf("draft shift: status=%d", draft.Code)
	}
	if d := decodeBody[shiftCostResponse](t, draft); d.Cost != "0.00" || d.Condition != "" {
		t.Fatalf("draft shift should cost zero: %+v", d)
	}
}

func TestCheckShifts(t *testing.T) {
	h := newTestServer(t).routes()

	body := `{"shifts":[
		{"day":"monday","startTime":"06:00","endTime":"10:00","employmentType":"casual","level":2},
		{"day":"monday","startTime":"16:00","endTime":"19:00","employmentType":"casual","level":2},
		{"day":"tuesday","startTime":"09:00","endTime":"11:00","employmentType":"casual","level":2}
	]}`
	rec := doJSON(t, h, http.MethodPost, "/api/shifts/check", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}

	got := decodeBody[checkShiftsResponse](t, rec)
	if len(got.BrokenShiftDays) != 1 || got.BrokenShiftDays[0] != "monday" {
		t.Fatalf("BrokenShiftDays=%v, want [monday]", got.BrokenShiftDays)
	}

	codes := make(map[string]bool)
	for _, w := range got.Warnings {
		codes[w.Code] = true
	}
	if !codes[award.CodeBrokenShift] || !codes[award.CodeBelowMinimumEngagement] {
		t.Fatalf("missing warnings: %+v", got.Warnings)
	}
}

func TestAllowances(t *testing.T) {
	h := newTestServer(t).routes()

	rec := doJSON(t, h, http.MethodGet, "/api/allowances", nil)
	list := decodeBody[[]map[string]string](t, rec)
	if len(list) != len(award.DefaultAllowances()) {
		t.Fatalf("got %d allowances, want %d", len(list), len(award.DefaultAllowances()))
	}
}

func TestConfiguredTable(t *testing.T) {
	table := configuredTable(config.Config{
		RateMultiplier:         decimal.RequireFromString("1.05"),
		DefaultOverheadPercent: decimal.NewFromInt(12),
		DefaultMarginPercent:   decimal.NewFromInt(25),
	})

	if table.RateMultiplier().String() != "1.05" {
		t.Fatalf("RateMultiplier=%s, want 1.05", table.RateMultiplier())
	}
	s := table.Settings()
	if s.OverheadPercentage.String() != "12" || s.MarginPercentage.String() != "25" {
		t.Fatalf("unexpected settings: overhead=%s margin=%s", s.OverheadPercentage, s.MarginPercentage)
	}
	if s.DailyMaxHours.String() != "12" {
		t.Fatalf("award limits should be kept, DailyMaxHours=%s", s.DailyMaxHours)
	}
}
