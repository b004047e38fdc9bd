package domain

import "errors"

// ErrNotFound is returned by repo functions when the requested row does not
// exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. empty registration, month outside 1..12).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnknownVehicle is returned when a tax query names a registration that has
// never been stored. The query is rejected, never answered with zero.
var ErrUnknownVehicle = errors.New("unknown vehicle")

// ErrUnknownVehicleType is returned when a vehicle carries a type outside the
// VehicleType enumeration.
var ErrUnknownVehicleType = errors.New("unknown vehicle type")

// ErrInvalidDateRange is returned when a range query's start date is not
// strictly before its end date.
var ErrInvalidDateRange = errors.New("invalid date range")

// ErrYearMismatch is returned when a single-day query falls outside the
// configured tax year.
var ErrYearMismatch = errors.New("year does not match tax year")

// ErrDuplicatePassage is returned when a passage with the same vehicle and
// timestamp is already stored.
var ErrDuplicatePassage = errors.New("passage already exists")
