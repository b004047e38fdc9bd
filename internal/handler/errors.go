package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/congestion-tax/internal/domain"
)

// errBadRequest marks input rejected before it reaches the service layer:
// a missing or unparsable query parameter, or a malformed body.
var errBadRequest = errors.New("bad request")

// errorBody is the JSON shape of every error response:
// {"error":{"code":"...","message":"..."}}.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorStatuses maps sentinel errors to HTTP responses. Order matters:
// ErrUnknownVehicle is checked before the generic ErrNotFound.
var errorStatuses = []struct {
	err    error
	status int
	code   string
}{
	{errBadRequest, http.StatusBadRequest, "bad_request"},
	{domain.ErrUnknownVehicle, http.StatusNotFound, "unknown_vehicle"},
	{domain.ErrNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrDuplicatePassage, http.StatusConflict, "duplicate_passage"},
	{domain.ErrInvalidDateRange, http.StatusUnprocessableEntity, "invalid_date_range"},
	{domain.ErrYearMismatch, http.StatusUnprocessableEntity, "year_mismatch"},
	{domain.ErrUnknownVehicleType, http.StatusUnprocessableEntity, "unknown_vehicle_type"},
	{domain.ErrValidation, http.StatusUnprocessableEntity, "validation_error"},
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

// writeErr answers err with the matching status. Anything unrecognised is
// logged and reported as a bare 500 so internals never leak to the client.
func (s *Server) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "body_too_large",
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		return
	}

	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			writeError(w, e.status, e.code, unwrapMessage(err, e.err))
			return
		}
	}

	s.log.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", chimiddleware.GetReqID(r.Context()),
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}

// unwrapMessage drops the call-site prefixes in front of the sentinel, e.g.
// "service.TaxService.DailyTax: unknown vehicle: NOPE000" becomes
// "unknown vehicle: NOPE000".
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	if i := strings.Index(msg, sentinel.Error()); i >= 0 {
		return msg[i:]
	}
	return msg
}
