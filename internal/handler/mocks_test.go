package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/congestion-tax/internal/domain"
	"github.com/pkordes/congestion-tax/internal/handler"
)

// ---- mock services -------------------------------------------------------------

type mockVehicleServicer struct {
	save func(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)
	get  func(ctx context.Context, reg string) (domain.Vehicle, error)
}

func (m *mockVehicleServicer) Save(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	return m.save(ctx, v)
}
func (m *mockVehicleServicer) Get(ctx context.Context, reg string) (domain.Vehicle, error) {
	return m.get(ctx, reg)
}

var _ handler.VehicleServicer = (*mockVehicleServicer)(nil)

type mockPassageServicer struct {
	record func(ctx context.Context, p domain.Passage) (domain.Passage, error)
}

func (m *mockPassageServicer) Record(ctx context.Context, p domain.Passage) (domain.Passage, error) {
	return m.record(ctx, p)
}

var _ handler.PassageServicer = (*mockPassageServicer)(nil)

type mockTaxServicer struct {
	dailyTax         func(ctx context.Context, reg string, date civil.Date) (int, error)
	taxBetween       func(ctx context.Context, reg string, start, end civil.Date) (int, error)
	monthlyTax       func(ctx context.Context, reg string, year, month int) (int, error)
	yearlyTax        func(ctx context.Context, reg string, year int) (int, error)
	dailyTaxForAll   func(ctx context.Context, date civil.Date) (map[string]int, error)
	taxBetweenForAll func(ctx context.Context, start, end civil.Date) (map[string]int, error)
	monthlyTaxForAll func(ctx context.Context, year, month int) (map[string]int, error)
	yearlyTaxForAll  func(ctx context.Context, year int) (map[string]int, error)
}

func (m *mockTaxServicer) DailyTax(ctx context.Context, reg string, date civil.Date) (int, error) {
	return m.dailyTax(ctx, reg, date)
}
func (m *mockTaxServicer) TaxBetween(ctx context.Context, reg string, start, end civil.Date) (int, error) {
	return m.taxBetween(ctx, reg, start, end)
}
func (m *mockTaxServicer) MonthlyTax(ctx context.Context, reg string, year, month int) (int, error) {
	return m.monthlyTax(ctx, reg, year, month)
}
func (m *mockTaxServicer) YearlyTax(ctx context.Context, reg string, year int) (int, error) {
	return m.yearlyTax(ctx, reg, year)
}
func (m *mockTaxServicer) DailyTaxForAll(ctx context.Context, date civil.Date) (map[string]int, error) {
	return m.dailyTaxForAll(ctx, date)
}
func (m *mockTaxServicer) TaxBetweenForAll(ctx context.Context, start, end civil.Date) (map[string]int, error) {
	return m.taxBetweenForAll(ctx, start, end)
}
func (m *mockTaxServicer) MonthlyTaxForAll(ctx context.Context, year, month int) (map[string]int, error) {
	return m.monthlyTaxForAll(ctx, year, month)
}
func (m *mockTaxServicer) YearlyTaxForAll(ctx context.Context, year int) (map[string]int, error) {
	return m.yearlyTaxForAll(ctx, year)
}

var _ handler.TaxServicer = (*mockTaxServicer)(nil)

// ---- request helpers -----------------------------------------------------------

type deps struct {
	vehicles *mockVehicleServicer
	passages *mockPassageServicer
	taxes    *mockTaxServicer
	rules    handler.RulesViewer
	log      *bytes.Buffer
}

func newDeps() *deps {
	return &deps{
		vehicles: &mockVehicleServicer{},
		passages: &mockPassageServicer{},
		taxes:    &mockTaxServicer{},
		log:      &bytes.Buffer{},
	}
}

// serve runs one request through the real router.
func (d *deps) serve(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(d.log, nil))
	srv := handler.NewServer(d.vehicles, d.passages, d.taxes, d.rules, logger)

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	return rec
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "body: %s", rec.Body.String())
}
