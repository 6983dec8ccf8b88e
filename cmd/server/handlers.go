package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Simplici0/awardcost/internal/award"
)

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleRates(w http.ResponseWriter, r *http.Request) {
	et, err := award.ParseEmploymentType(chi.URLParam(r, "employmentType"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	level, err := strconv.Atoi(chi.URLParam(r, "level"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "level must be a whole number")
		return
	}

	rates, err := s.table.Rates(et, award.Level(level))
	if err != nil {
		if errors.Is(err, award.ErrRateNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.internalError(w, "resolve rates", err)
		return
	}
	writeJSON(w, http.StatusOK, newRatesResponse(rates))
}

func (s *server) handleAllowances(w http.ResponseWriter, r *http.Request) {
	list, err := s.listAllowances(r.Context())
	if err != nil {
		s.internalError(w, "list allowances", err)
		return
	}

	writeJSON(w, http.StatusOK, newAllowanceViews(list))
}

func (s *server) handleJobCost(w http.ResponseWriter, r *http.Request) {
	var req jobCostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, status, err := s.priceJob(r.Context(), req)
	if err != nil {
		s.writeFailure(w, status, "price job", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// priceJob returns the HTTP status to use when it fails.
func (s *server) priceJob(ctx context.Context, req jobCostRequest) (jobCostResponse, int, error) {
	defaults, err := s.getSettings(ctx)
	if err != nil {
		return jobCostResponse{}, http.StatusInternalServerError, err
	}

	params, multiplier, err := req.toParams(defaults)
	if err != nil {
		return jobCostResponse{}, http.StatusBadRequest, err
	}

	breakdown, err := s.table.JobCost(params, multiplier)
	if err != nil {
		switch {
		case errors.Is(err, award.ErrRateNotFound),
			errors.Is(err, award.ErrUnmappedCondition),
			errors.Is(err, award.ErrNegativeHours):
			return jobCostResponse{}, http.StatusUnprocessableEntity, err
		default:
			return jobCostResponse{}, http.StatusInternalServerError, err
		}
	}
	return newJobCostResponse(params, breakdown), http.StatusOK, nil
}

func (s *server) handleShiftCost(w http.ResponseWriter, r *http.Request) {
	var req shiftCostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	shifts, catalog, status, err := s.prepareShifts(r.Context(), []shiftInput{req.Shift})
	if err != nil {
		s.writeFailure(w, status, "prepare shift", err)
		return
	}
	shift := shifts[0]
	allowances, _ := catalog.Resolve(shift.AllowanceIDs)

	total := s.table.ShiftCostWithAllowances(shift, catalog)
	resp := shiftCostResponse{
		Hours:         shift.Hours().String(),
		LabourCost:    money(s.table.ShiftCost(shift)),
		Cost:          money(total),
		CostFormatted: award.FormatCurrency(total),
		Allowances:    newAllowanceViews(allowances),
	}
	if shift.Complete() {
		resp.Condition = string(award.ShiftCondition(shift))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleCheckShifts(w http.ResponseWriter, r *http.Request) {
	var req checkShiftsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	shifts, catalog, status, err := s.prepareShifts(r.Context(), req.Shifts)
	if err != nil {
		s.writeFailure(w, status, "prepare shifts", err)
		return
	}

	resp := checkShiftsResponse{
		BrokenShiftDays: make([]string, 0),
		Warnings:        make([]warningView, 0),
	}
	for _, d := range award.CheckForBrokenShifts(shifts) {
		resp.BrokenShiftDays = append(resp.BrokenShiftDays, string(d))
	}
	for _, wn := range s.table.CheckShiftLimits(shifts) {
		resp.Warnings = append(resp.Warnings, warningView{Code: wn.Code, Day: string(wn.Day), Message: wn.Message})
	}

	total := decimal.Zero
	for _, shift := range shifts {
		total = total.Add(s.table.ShiftCostWithAllowances(shift, catalog))
	}
	resp.TotalCost = money(total)

	writeJSON(w, http.StatusOK, resp)
}

// prepareShifts validates the inputs and rejects allowance ids the catalog does not know.
func (s *server) prepareShifts(ctx context.Context, in []shiftInput) ([]award.Shift, award.AllowanceCatalog, int, error) {
	catalog, err := s.allowanceCatalog(ctx)
	if err != nil {
		return nil, nil, http.StatusInternalServerError, err
	}

	shifts := make([]award.Shift, 0, len(in))
	for i, raw := range in {
		shift, err := raw.toShift()
		if err != nil {
			return nil, nil, http.StatusBadRequest, indexed(i, err)
		}
		if _, err := catalog.Resolve(shift.AllowanceIDs); err != nil {
			return nil, nil, http.StatusBadRequest, indexed(i, err)
		}
		shifts = append(shifts, shift)
	}
	return shifts, catalog, http.StatusOK, nil
}

func indexed(i int, err error) error {
	return fmt.Errorf("shift %d: %w", i, err)
}

func (s *server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.getSettings(r.Context())
	if err != nil {
		s.internalError(w, "load settings", err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsView
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validatePercent("overheadPercentage", req.OverheadPercentage); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validatePercent("marginPercentage", req.MarginPercentage); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !req.RateMultiplier.IsPositive() {
		writeError(w, http.StatusBadRequest, "rateMultiplier must be greater than 0")
		return
	}

	if err := s.updateSettings(r.Context(), req); err != nil {
		s.internalError(w, "update settings", err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *server) handleCreateQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.ClientName = strings.TrimSpace(req.ClientName)
	req.SiteName = strings.TrimSpace(req.SiteName)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	breakdown, status, err := s.priceJob(r.Context(), req.jobCostRequest)
	if err != nil {
		s.writeFailure(w, status, "price quote", err)
		return
	}

	item, err := s.saveQuote(r.Context(), req, breakdown)
	if err != nil {
		s.internalError(w, "save quote", err)
		return
	}
	writeJSON(w, http.StatusCreated, quoteDetail{quoteListItem: item, Request: req, Breakdown: breakdown})
}

func (s *server) handleListQuotes(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	quotes, err := s.listQuotes(r.Context(), query)
	if err != nil {
		s.internalError(w, "list quotes", err)
		return
	}
	writeJSON(w, http.StatusOK, quotes)
}

func (s *server) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	q, err := s.getQuote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, errQuoteNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.internalError(w, "load quote", err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *server) writeFailure(w http.ResponseWriter, status int, op string, err error) {
	if status >= http.StatusInternalServerError {
		s.internalError(w, op, err)
		return
	}
	writeError(w, status, err.Error())
}

func (s *server) internalError(w http.ResponseWriter, op string, err error) {
	s.log.Error(op, zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal server error")
}
