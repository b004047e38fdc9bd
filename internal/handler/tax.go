package handler

import (
	"net/http"

	"github.com/pkordes/congestion-tax/internal/domain"
)

type vehicleTaxResponse struct {
	Registration string `json:"registration"`
	Amount       int    `json:"amount"`
}

type fleetTaxResponse struct {
	Totals map[string]int `json:"totals"`
}

// GetDailyTax handles GET /api/congestion/tax/daily?registration=&date=.
func (s *Server) GetDailyTax(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	reg, date := q.String("registration"), q.Date("date")
	if err := q.Err(); err != nil {
		s.writeErr(w, r, err)
		return
	}
	amount, err := s.taxes.DailyTax(r.Context(), reg, date)
	s.writeVehicleTax(w, r, reg, amount, err)
}

// GetRangeTax handles GET /api/congestion/tax/range?registration=&start=&end=.
// The range is half-open: end is not charged.
func (s *Server) GetRangeTax(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	reg, start, end := q.String("registration"), q.Date("start"), q.Date("end")
	if err := q.Err(); err != nil {
		s.writeErr(w, r, err)
		return
	}
	amount, err := s.taxes.TaxBetween(r.Context(), reg, start, end)
	s.writeVehicleTax(w, r, reg, amount, err)
}

// GetMonthlyTax handles GET /api/congestion/tax/monthly?registration=&year=&month=.
func (s *Server) GetMonthlyTax(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	reg, year, month := q.String("registration"), q.Int("year"), q.Int("month")
	if err := q.Err(); err != nil {
		s.writeErr(w, r, err)
		return
	}
	amount, err := s.taxes.MonthlyTax(r.Context(), reg, year, month)
	s.writeVehicleTax(w, r, reg, amount, err)
}

// GetYearlyTax handles GET /api/congestion/tax/yearly?registration=&year=.
func (s *Server) GetYearlyTax(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	reg, year := q.String("registration"), q.Int("year")
	if err := q.Err(); err != nil {
		s.writeErr(w, r, err)
		return
	}
	amount, err := s.taxes.YearlyTax(r.Context(), reg, year)
	s.writeVehicleTax(w, r, reg, amount, err)
}

// GetDailyTaxForAll handles GET /api/congestion/tax/daily/all?date=.
func (s *Server) GetDailyTaxForAll(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	date := q.Date("date")
	if err := q.Err(); err != nil {
		s.writeErr(w, r, err)
		return
	}
	totals, err := s.taxes.DailyTaxForAll(r.Context(), date)
	s.writeFleetTax(w, r, totals, err)
}

// GetRangeTaxForAll handles GET /api/congestion/tax/range/all?start=&end=.
func (s *Server) GetRangeTaxForAll(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	start, end := q.Date("start"), q.Date("end")
	if err := q.Err(); err != nil {
		s.writeErr(w, r, err)
		return
	}
	totals, err := s.taxes.TaxBetweenForAll(r.Context(), start, end)
	s.writeFleetTax(w, r, totals, err)
}

// GetMonthlyTaxForAll handles GET /api/congestion/tax/monthly/all?year=&month=.
func (s *Server) GetMonthlyTaxForAll(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	year, month := q.Int("year"), q.Int("month")
	if err := q.Err(); err != nil {
		s.writeErr(w, r, err)
		return
	}
	totals, err := s.taxes.MonthlyTaxForAll(r.Context(), year, month)
	s.writeFleetTax(w, r, totals, err)
}

// GetYearlyTaxForAll handles GET /api/congestion/tax/yearly/all?year=.
func (s *Server) GetYearlyTaxForAll(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	year := q.Int("year")
	if err := q.Err(); err != nil {
		s.writeErr(w, r, err)
		return
	}
	totals, err := s.taxes.YearlyTaxForAll(r.Context(), year)
	s.writeFleetTax(w, r, totals, err)
}

func (s *Server) writeVehicleTax(w http.ResponseWriter, r *http.Request, reg string, amount int, err error) {
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicleTaxResponse{
		Registration: domain.NormalizeRegistration(reg),
		Amount:       amount,
	})
}

func (s *Server) writeFleetTax(w http.ResponseWriter, r *http.Request, totals map[string]int, err error) {
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	if totals == nil {
		totals = map[string]int{}
	}
	writeJSON(w, http.StatusOK, fleetTaxResponse{Totals: totals})
}
