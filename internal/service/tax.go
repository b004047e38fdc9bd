package service

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/pkordes/congestion-tax/internal/domain"
	"github.com/pkordes/congestion-tax/internal/repo"
	"github.com/pkordes/congestion-tax/internal/tax"
)

// TaxService answers tax queries for one vehicle or the whole fleet.
// All arithmetic is delegated to the shared, read-only tax.Engine; the
// service owns input validation and decides what to fetch.
type TaxService struct {
	vehicles repo.VehicleRepo
	passages repo.PassageRepo
	engine   *tax.Engine
}

// NewTaxService constructs a TaxService.
func NewTaxService(vehicles repo.VehicleRepo, passages repo.PassageRepo, engine *tax.Engine) *TaxService {
	return &TaxService{vehicles: vehicles, passages: passages, engine: engine}
}

// DailyTax returns what registration owes for date. The date must lie in the
// configured tax year. Exempt dates return 0 before the vehicle is looked up.
func (s *TaxService) DailyTax(ctx context.Context, registration string, date civil.Date) (int, error) {
	if err := s.checkTaxYear(date); err != nil {
		return 0, err
	}
	if s.engine.IsExemptDate(date) {
		return 0, nil
	}

	reg, err := validateRegistration(registration)
	if err != nil {
		return 0, err
	}
	vehicle, err := lookupVehicle(ctx, s.vehicles, reg)
	if err != nil {
		return 0, fmt.Errorf("service.TaxService.DailyTax: %w", err)
	}
	if s.engine.IsExemptVehicle(vehicle.Type) {
		return 0, nil
	}

	passages, err := s.passages.ListByVehicle(ctx, reg, midnight(date), midnight(date.AddDays(1)))
	if err != nil {
		return 0, fmt.Errorf("service.TaxService.DailyTax: %w", err)
	}
	return s.engine.DailyTax(timestamps(passages)), nil
}

// TaxBetween returns what registration owes over [start, end).
func (s *TaxService) TaxBetween(ctx context.Context, registration string, start, end civil.Date) (int, error) {
	if err := checkRange(start, end); err != nil {
		return 0, err
	}
	reg, err := validateRegistration(registration)
	if err != nil {
		return 0, err
	}
	vehicle, err := lookupVehicle(ctx, s.vehicles, reg)
	if err != nil {
		return 0, fmt.Errorf("service.TaxService.TaxBetween: %w", err)
	}
	if s.engine.IsExemptVehicle(vehicle.Type) {
		return 0, nil
	}

	passages, err := s.passages.ListByVehicle(ctx, reg, midnight(start), midnight(end))
	if err != nil {
		return 0, fmt.Errorf("service.TaxService.TaxBetween: %w", err)
	}
	return s.engine.RangeTax(timestamps(passages)), nil
}

// MonthlyTax is TaxBetween over one calendar month.
func (s *TaxService) MonthlyTax(ctx context.Context, registration string, year, month int) (int, error) {
	start, end, err := monthRange(year, month)
	if err != nil {
		return 0, err
	}
	return s.TaxBetween(ctx, registration, start, end)
}

// YearlyTax is TaxBetween over one calendar year.
func (s *TaxService) YearlyTax(ctx context.Context, registration string, year int) (int, error) {
	start, end, err := yearRange(year)
	if err != nil {
		return 0, err
	}
	return s.TaxBetween(ctx, registration, start, end)
}

// DailyTaxForAll returns the tax owed on date by every vehicle that passed a
// toll point that day. The date must lie in the configured tax year.
func (s *TaxService) DailyTaxForAll(ctx context.Context, date civil.Date) (map[string]int, error) {
	if err := s.checkTaxYear(date); err != nil {
		return nil, err
	}
	return s.fleetTax(ctx, "DailyTaxForAll", date, date.AddDays(1))
}

// TaxBetweenForAll returns the tax owed over [start, end) by every vehicle
// with at least one passage in the range. Vehicles of an exempt type are
// present with 0.
func (s *TaxService) TaxBetweenForAll(ctx context.Context, start, end civil.Date) (map[string]int, error) {
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	return s.fleetTax(ctx, "TaxBetweenForAll", start, end)
}

// MonthlyTaxForAll is TaxBetweenForAll over one calendar month.
func (s *TaxService) MonthlyTaxForAll(ctx context.Context, year, month int) (map[string]int, error) {
	start, end, err := monthRange(year, month)
	if err != nil {
		return nil, err
	}
	return s.TaxBetweenForAll(ctx, start, end)
}

// YearlyTaxForAll is TaxBetweenForAll over one calendar year.
func (s *TaxService) YearlyTaxForAll(ctx context.Context, year int) (map[string]int, error) {
	start, end, err := yearRange(year)
	if err != nil {
		return nil, err
	}
	return s.TaxBetweenForAll(ctx, start, end)
}

func (s *TaxService) fleetTax(ctx context.Context, op string, start, end civil.Date) (map[string]int, error) {
	passages, err := s.passages.ListByRange(ctx, midnight(start), midnight(end))
	if err != nil {
		return nil, fmt.Errorf("service.TaxService.%s: %w", op, err)
	}
	return s.engine.FleetTax(passages), nil
}

func (s *TaxService) checkTaxYear(date civil.Date) error {
	if !date.IsValid() {
		return fmt.Errorf("%w: invalid date %s", domain.ErrValidation, date)
	}
	if !s.engine.InTaxYear(date) {
		return fmt.Errorf("%w: %d is not tax year %d", domain.ErrYearMismatch, date.Year, s.engine.Rules().Year)
	}
	return nil
}

func checkRange(start, end civil.Date) error {
	if !start.IsValid() || !end.IsValid() {
		return fmt.Errorf("%w: invalid date in range %s..%s", domain.ErrValidation, start, end)
	}
	if !start.Before(end) {
		return fmt.Errorf("%w: start %s is not before end %s", domain.ErrInvalidDateRange, start, end)
	}
	return nil
}

// monthRange returns [year-month-01, first of the following month). December
// rolls over into January of the next year.
func monthRange(year, month int) (civil.Date, civil.Date, error) {
	if month < 1 || month > 12 {
		return civil.Date{}, civil.Date{}, fmt.Errorf("%w: month %d outside 1..12", domain.ErrValidation, month)
	}
	if err := checkYear(year); err != nil {
		return civil.Date{}, civil.Date{}, err
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	next := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	return civil.DateOf(first), civil.DateOf(next), nil
}

func yearRange(year int) (civil.Date, civil.Date, error) {
	if err := checkYear(year); err != nil {
		return civil.Date{}, civil.Date{}, err
	}
	return civil.Date{Year: year, Month: time.January, Day: 1},
		civil.Date{Year: year + 1, Month: time.January, Day: 1}, nil
}

func checkYear(year int) error {
	if year < 1 || year > 9998 {
		return fmt.Errorf("%w: year %d out of range", domain.ErrValidation, year)
	}
	return nil
}

// midnight is the first instant of d as a zone-less wall clock.
func midnight(d civil.Date) time.Time {
	return d.In(time.UTC)
}

func timestamps(passages []domain.Passage) []time.Time {
	out := make([]time.Time, len(passages))
	for i, p := range passages {
		out[i] = p.Timestamp
	}
	return out
}
