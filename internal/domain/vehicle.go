// Package domain contains the core data types for the congestion tax service.
// It is imported by every other internal package (tax, repo, service, handler).
package domain

import (
	"fmt"
	"strings"
	"time"
)

// VehicleType is the closed set of vehicle categories the tax rules know about.
type VehicleType string

const (
	VehicleCar        VehicleType = "car"
	VehicleMotorcycle VehicleType = "motorcycle"
	VehicleBus        VehicleType = "bus"
	VehicleEmergency  VehicleType = "emergency"
	VehicleDiplomat   VehicleType = "diplomat"
	VehicleMilitary   VehicleType = "military"
	VehicleForeign    VehicleType = "foreign"
)

// VehicleTypes lists every recognised VehicleType in declaration order.
var VehicleTypes = []VehicleType{
	VehicleCar,
	VehicleMotorcycle,
	VehicleBus,
	VehicleEmergency,
	VehicleDiplomat,
	VehicleMilitary,
	VehicleForeign,
}

// ParseVehicleType matches s case-insensitively against the enumeration.
// Returns ErrUnknownVehicleType for anything else.
func ParseVehicleType(s string) (VehicleType, error) {
	norm := VehicleType(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range VehicleTypes {
		if t == norm {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVehicleType, s)
}

// Valid reports whether t is one of the recognised types.
func (t VehicleType) Valid() bool {
	_, err := ParseVehicleType(string(t))
	return err == nil
}

// UnmarshalText lets rule-set files list types in any case.
func (t *VehicleType) UnmarshalText(text []byte) error {
	parsed, err := ParseVehicleType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MaxRegistrationLen is the widest registration the vehicles table accepts.
const MaxRegistrationLen = 20

// Vehicle is identified by its registration and never changes type except
// through an explicit save.
type Vehicle struct {
	Registration string      `json:"registration"`
	Type         VehicleType `json:"type"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// NormalizeRegistration trims and upper-cases a registration so that
// "abc 123 " and "ABC 123" address the same vehicle.
func NormalizeRegistration(reg string) string {
	return strings.ToUpper(strings.TrimSpace(reg))
}
