// Package main is the entry point for the congestion tax API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"github.com/pkordes/congestion-tax/internal/config"
	"github.com/pkordes/congestion-tax/internal/handler"
	"github.com/pkordes/congestion-tax/internal/holiday"
	"github.com/pkordes/congestion-tax/internal/middleware"
	"github.com/pkordes/congestion-tax/internal/repo"
	"github.com/pkordes/congestion-tax/internal/service"
	"github.com/pkordes/congestion-tax/internal/tax"
	"github.com/pkordes/congestion-tax/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// --- Tax engine -------------------------------------------------------
	// The rule set and the exempt calendar are built once and shared
	// read-only by every request.
	engine, err := buildEngine(ctx, cfg.RulesPath, logger)
	if err != nil {
		slog.Error("failed to load tax rules", "path", cfg.RulesPath, "error", err)
		os.Exit(1)
	}

	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if cfg.MigrateOnStart {
		if err := migrate(ctx, pool); err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
	}

	// --- Repos and services -----------------------------------------------
	vehicleRepo := repo.NewVehicleRepo(pool)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			// Lookups fall through to Postgres while Redis is down.
			slog.Warn("vehicle cache unreachable", "addr", cfg.RedisAddr, "error", err)
		}
		vehicleRepo = repo.NewCachedVehicleRepo(vehicleRepo, rdb, cfg.VehicleCacheTTL, logger)
		slog.Info("vehicle cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.VehicleCacheTTL.String())
	}
	passageRepo := repo.NewPassageRepo(pool)

	srv := handler.NewServer(
		service.NewVehicleService(vehicleRepo),
		service.NewPassageService(vehicleRepo, passageRepo),
		service.NewTaxService(vehicleRepo, passageRepo, engine),
		engine,
		logger,
	)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// buildEngine loads the rule set, resolves its holidays and logs a summary.
func buildEngine(ctx context.Context, rulesPath string, log *slog.Logger) (*tax.Engine, error) {
	rules, err := config.LoadRules(rulesPath)
	if err != nil {
		return nil, err
	}

	src, err := holiday.Open(rules.ExemptPeriods.Holidays)
	if err != nil {
		return nil, err
	}
	holidays, err := holiday.ForTaxYear(ctx, src, rules.Year)
	if err != nil {
		return nil, err
	}

	engine := tax.NewEngine(rules, holidays)

	for _, pair := range engine.ChargeTable().Overlaps() {
		a, b := rules.TimeBands[pair[0]], rules.TimeBands[pair[1]]
		log.Warn("time bands overlap; the earlier band wins",
			"first", fmt.Sprintf("%s-%s", a.From, a.To),
			"second", fmt.Sprintf("%s-%s", b.From, b.To),
		)
	}

	log.Info("tax rules loaded",
		"city", rules.City,
		"year", rules.Year,
		"max_daily_charge", rules.MaxDailyCharge,
		"time_bands", len(rules.TimeBands),
		"exempt_vehicles", len(rules.ExemptVehicles),
		"holiday_source", rules.ExemptPeriods.Holidays,
		"holidays", len(holidays),
		"exempt_dates", engine.Calendar().Len(),
	)
	return engine, nil
}

// migrate applies pending goose migrations through a database/sql handle
// borrowed from the pool.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	for _, res := range results {
		slog.Info("migration applied", "version", res.Source.Version, "duration", res.Duration.String())
	}
	return nil
}
