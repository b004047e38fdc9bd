// Package handler implements the HTTP handlers for the congestion tax API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, tax.go, etc.) but all share the same Server struct so they
// can access its dependencies.
package handler

import (
	"context"
	"log/slog"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"

	"github.com/pkordes/congestion-tax/internal/domain"
	"github.com/pkordes/congestion-tax/internal/tax"
)

// VehicleServicer defines the vehicle registry operations the handlers use.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type VehicleServicer interface {
	Save(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)
	Get(ctx context.Context, registration string) (domain.Vehicle, error)
}

// PassageServicer records passages.
type PassageServicer interface {
	Record(ctx context.Context, p domain.Passage) (domain.Passage, error)
}

// TaxServicer answers tax queries.
type TaxServicer interface {
	DailyTax(ctx context.Context, registration string, date civil.Date) (int, error)
	TaxBetween(ctx context.Context, registration string, start, end civil.Date) (int, error)
	MonthlyTax(ctx context.Context, registration string, year, month int) (int, error)
	YearlyTax(ctx context.Context, registration string, year int) (int, error)
	DailyTaxForAll(ctx context.Context, date civil.Date) (map[string]int, error)
	TaxBetweenForAll(ctx context.Context, start, end civil.Date) (map[string]int, error)
	MonthlyTaxForAll(ctx context.Context, year, month int) (map[string]int, error)
	YearlyTaxForAll(ctx context.Context, year int) (map[string]int, error)
}

// RulesViewer exposes the active rule set; *tax.Engine satisfies it.
type RulesViewer interface {
	Rules() domain.RuleSet
	Calendar() *tax.Calendar
}

// Server holds the dependencies of every endpoint.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	vehicles VehicleServicer
	passages PassageServicer
	taxes    TaxServicer
	rules    RulesViewer
	log      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(vehicles VehicleServicer, passages PassageServicer, taxes TaxServicer, rules RulesViewer, log *slog.Logger) *Server {
	return &Server{
		vehicles: vehicles,
		passages: passages,
		taxes:    taxes,
		rules:    rules,
		log:      log,
	}
}

// Routes returns the router for every endpoint. Middleware is applied by the
// caller so tests exercise the handlers alone.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/api/congestion", func(r chi.Router) {
		r.Get("/rules", s.GetRules)

		r.Post("/vehicles", s.CreateVehicle)
		r.Get("/vehicles/{registration}", s.GetVehicle)
		r.Post("/passages", s.CreatePassage)

		r.Route("/tax", func(r chi.Router) {
			r.Get("/daily", s.GetDailyTax)
			r.Get("/range", s.GetRangeTax)
			r.Get("/monthly", s.GetMonthlyTax)
			r.Get("/yearly", s.GetYearlyTax)

			r.Get("/daily/all", s.GetDailyTaxForAll)
			r.Get("/range/all", s.GetRangeTaxForAll)
			r.Get("/monthly/all", s.GetMonthlyTaxForAll)
			r.Get("/yearly/all", s.GetYearlyTaxForAll)
		})
	})
	return r
}
