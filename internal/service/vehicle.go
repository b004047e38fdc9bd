// Package service contains the business logic for the congestion tax API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pkordes/congestion-tax/internal/domain"
	"github.com/pkordes/congestion-tax/internal/repo"
)

// VehicleService implements the vehicle registry.
type VehicleService struct {
	vehicles repo.VehicleRepo
}

// NewVehicleService constructs a VehicleService backed by the provided VehicleRepo.
func NewVehicleService(vehicles repo.VehicleRepo) *VehicleService {
	return &VehicleService{vehicles: vehicles}
}

// Save validates and upserts a vehicle. The registration is normalized
// before it reaches the store.
func (s *VehicleService) Save(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	v, err := validateVehicle(v)
	if err != nil {
		return domain.Vehicle{}, err
	}
	saved, err := s.vehicles.Save(ctx, v)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Save: %w", err)
	}
	return saved, nil
}

// Get returns a stored vehicle or domain.ErrUnknownVehicle.
func (s *VehicleService) Get(ctx context.Context, registration string) (domain.Vehicle, error) {
	reg, err := validateRegistration(registration)
	if err != nil {
		return domain.Vehicle{}, err
	}
	v, err := lookupVehicle(ctx, s.vehicles, reg)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Get: %w", err)
	}
	return v, nil
}

func validateRegistration(registration string) (string, error) {
	reg := domain.NormalizeRegistration(registration)
	if reg == "" {
		return "", fmt.Errorf("%w: registration is required", domain.ErrValidation)
	}
	if len(reg) > domain.MaxRegistrationLen {
		return "", fmt.Errorf("%w: registration longer than %d characters", domain.ErrValidation, domain.MaxRegistrationLen)
	}
	return reg, nil
}

func validateVehicle(v domain.Vehicle) (domain.Vehicle, error) {
	reg, err := validateRegistration(v.Registration)
	if err != nil {
		return domain.Vehicle{}, err
	}
	vt, err := domain.ParseVehicleType(string(v.Type))
	if err != nil {
		return domain.Vehicle{}, err
	}
	v.Registration = reg
	v.Type = vt
	return v, nil
}

// lookupVehicle turns a store miss into domain.ErrUnknownVehicle.
func lookupVehicle(ctx context.Context, vehicles repo.VehicleRepo, reg string) (domain.Vehicle, error) {
	v, err := vehicles.GetByRegistration(ctx, reg)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Vehicle{}, fmt.Errorf("%w: %s", domain.ErrUnknownVehicle, reg)
		}
		return domain.Vehicle{}, err
	}
	return v, nil
}
