package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Simplici0/awardcost/internal/award"
	"github.com/Simplici0/awardcost/internal/config"
	"github.com/Simplici0/awardcost/internal/db"
	"github.com/Simplici0/awardcost/internal/logger"
	"github.com/Simplici0/awardcost/internal/migrations"
	"github.com/Simplici0/awardcost/internal/seed"
)

const shutdownTimeout = 10 * time.Second

type server struct {
	db    *sql.DB
	table *award.Table
	log   *zap.Logger
}

func newServer(database *sql.DB, table *award.Table, log *zap.Logger) *server {
	if table == nil {
		table = award.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &server{db: database, table: table, log: log}
}

func main() {
	cfg := config.Load()
	log := logger.Must(logger.New(cfg.LogLevel))
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		return err
	}

	table := configuredTable(cfg)

	seedCfg := seed.DefaultConfig()
	seedCfg.OverheadPercent = table.Settings().OverheadPercentage
	seedCfg.MarginPercent = table.Settings().MarginPercentage
	stats, err := seed.Run(ctx, database, seedCfg)
	if err != nil {
		return err
	}
	log.Info("seed complete", zap.Int("inserts", stats.Inserts))

	srv := newServer(database, table, logger.Named(log, "http"))

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening",
			zap.String("addr", httpServer.Addr),
			zap.String("env", cfg.Env),
			zap.String("rate_multiplier", table.RateMultiplier().String()),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// configuredTable applies the environment's rate multiplier and default percentages
// to the award table.
func configuredTable(cfg config.Config) *award.Table {
	table := award.Default().WithMultiplier(cfg.RateMultiplier)
	settings := table.Settings()
	settings.OverheadPercentage = cfg.DefaultOverheadPercent
	settings.MarginPercentage = cfg.DefaultMarginPercent
	return table.WithSettings(settings)
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/rates/{employmentType}/{level}", s.handleRates)
		r.Get("/allowances", s.handleAllowances)
		r.Post("/job-cost", s.handleJobCost)
		r.Post("/shift-cost", s.handleShiftCost)
		r.Post("/shifts/check", s.handleCheckShifts)

		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handleUpdateSettings)

		r.Post("/quotes", s.handleCreateQuote)
		r.Get("/quotes", s.handleListQuotes)
		r.Get("/quotes/{id}", s.handleGetQuote)
	})

	return r
}
