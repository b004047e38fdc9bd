package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pkordes/congestion-tax/internal/domain"
	"github.com/pkordes/congestion-tax/internal/repo"
)

// PassageService records toll-point crossings.
type PassageService struct {
	vehicles repo.VehicleRepo
	passages repo.PassageRepo
}

// NewPassageService constructs a PassageService backed by the provided repos.
func NewPassageService(vehicles repo.VehicleRepo, passages repo.PassageRepo) *PassageService {
	return &PassageService{vehicles: vehicles, passages: passages}
}

// Record stores a passage. A vehicle seen for the first time is registered
// with the type carried on the passage; for a known vehicle the stored type
// wins. Recording the same (vehicle, timestamp) twice returns
// domain.ErrDuplicatePassage.
func (s *PassageService) Record(ctx context.Context, p domain.Passage) (domain.Passage, error) {
	reg, err := validateRegistration(p.Vehicle.Registration)
	if err != nil {
		return domain.Passage{}, err
	}
	if p.Timestamp.IsZero() {
		return domain.Passage{}, fmt.Errorf("%w: timestamp is required", domain.ErrValidation)
	}
	p.Vehicle.Registration = reg
	p.Timestamp = domain.WallClock(p.Timestamp)

	_, err = s.passages.GetByVehicleAndTimestamp(ctx, reg, p.Timestamp)
	switch {
	case err == nil:
		return domain.Passage{}, fmt.Errorf("%w: %s at %s", domain.ErrDuplicatePassage, reg, p.Timestamp.Format(domain.TimestampLayout))
	case !errors.Is(err, domain.ErrNotFound):
		return domain.Passage{}, fmt.Errorf("service.PassageService.Record: %w", err)
	}

	vehicle, err := s.vehicles.GetByRegistration(ctx, reg)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		vehicle, err = validateVehicle(p.Vehicle)
		if err != nil {
			return domain.Passage{}, err
		}
		vehicle, err = s.vehicles.Save(ctx, vehicle)
		if err != nil {
			return domain.Passage{}, fmt.Errorf("service.PassageService.Record: register vehicle: %w", err)
		}
	case err != nil:
		return domain.Passage{}, fmt.Errorf("service.PassageService.Record: %w", err)
	}
	p.Vehicle = vehicle

	created, err := s.passages.Create(ctx, p)
	if err != nil {
		return domain.Passage{}, fmt.Errorf("service.PassageService.Record: %w", err)
	}
	return created, nil
}
