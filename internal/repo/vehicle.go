package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/congestion-tax/internal/domain"
)

// VehicleRepo defines the persistence operations for Vehicles.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type VehicleRepo interface {
	// GetByRegistration retrieves a vehicle by its registration.
	// Returns domain.ErrNotFound if no such vehicle exists.
	GetByRegistration(ctx context.Context, registration string) (domain.Vehicle, error)

	// Save inserts the vehicle, or updates its type if the registration is
	// already stored, and returns the persisted record.
	Save(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error)
}

// pgVehicleRepo is the Postgres implementation of VehicleRepo.
type pgVehicleRepo struct {
	db db
}

// NewVehicleRepo constructs a VehicleRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewVehicleRepo(db db) VehicleRepo {
	return &pgVehicleRepo{db: db}
}

func (r *pgVehicleRepo) GetByRegistration(ctx context.Context, registration string) (domain.Vehicle, error) {
	const q = `
		SELECT registration, type, created_at, updated_at
		FROM vehicles
		WHERE registration = @registration`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"registration": registration})
	v, err := scanVehicle(row)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.GetByRegistration: %w", err)
	}
	return v, nil
}

func (r *pgVehicleRepo) Save(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error) {
	const q = `
		INSERT INTO vehicles (registration, type)
		VALUES (@registration, @type)
		ON CONFLICT (registration) DO UPDATE
		SET type       = EXCLUDED.type,
		    updated_at = now()
		RETURNING registration, type, created_at, updated_at`

	args := pgx.NamedArgs{
		"registration": vehicle.Registration,
		"type":         string(vehicle.Type),
	}

	v, err := scanVehicle(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.Save: %w", err)
	}
	return v, nil
}

// scanVehicle maps a single database row into a domain.Vehicle.
func scanVehicle(s scanner) (domain.Vehicle, error) {
	var (
		v       domain.Vehicle
		rawType string
	)
	if err := s.Scan(&v.Registration, &rawType, &v.CreatedAt, &v.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Vehicle{}, domain.ErrNotFound
		}
		return domain.Vehicle{}, err
	}

	vt, err := domain.ParseVehicleType(rawType)
	if err != nil {
		return domain.Vehicle{}, err
	}
	v.Type = vt
	return v, nil
}
