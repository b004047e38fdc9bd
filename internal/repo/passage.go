package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/congestion-tax/internal/domain"
)

// PassageRepo defines the persistence operations for Passages.
// Range queries are half-open: from is included, to is not.
type PassageRepo interface {
	// Create stores a passage for an existing vehicle.
	// Returns domain.ErrDuplicatePassage if the vehicle already has a passage
	// at that timestamp, and domain.ErrUnknownVehicle if the vehicle is not stored.
	Create(ctx context.Context, passage domain.Passage) (domain.Passage, error)

	// GetByVehicleAndTimestamp returns domain.ErrNotFound when no passage matches.
	GetByVehicleAndTimestamp(ctx context.Context, registration string, ts time.Time) (domain.Passage, error)

	// ListByVehicle returns one vehicle's passages in [from, to), oldest first.
	ListByVehicle(ctx context.Context, registration string, from, to time.Time) ([]domain.Passage, error)

	// ListByRange returns every vehicle's passages in [from, to), oldest first.
	ListByRange(ctx context.Context, from, to time.Time) ([]domain.Passage, error)
}

// pgPassageRepo is the Postgres implementation of PassageRepo.
type pgPassageRepo struct {
	db db
}

// NewPassageRepo constructs a PassageRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPassageRepo(db db) PassageRepo {
	return &pgPassageRepo{db: db}
}

const selectPassage = `
		SELECT p.id, p.passed_at, p.created_at,
		       v.registration, v.type, v.created_at, v.updated_at
		FROM passages p
		JOIN vehicles v ON v.registration = p.registration`

func (r *pgPassageRepo) Create(ctx context.Context, passage domain.Passage) (domain.Passage, error) {
	const q = `
		WITH inserted AS (
			INSERT INTO passages (registration, passed_at)
			VALUES (@registration, @passed_at)
			RETURNING id, registration, passed_at, created_at
		)
		SELECT i.id, i.passed_at, i.created_at,
		       v.registration, v.type, v.created_at, v.updated_at
		FROM inserted i
		JOIN vehicles v ON v.registration = i.registration`

	args := pgx.NamedArgs{
		"registration": passage.Vehicle.Registration,
		"passed_at":    domain.WallClock(passage.Timestamp),
	}

	got, err := scanPassage(r.db.QueryRow(ctx, q, args))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case uniqueViolation:
				err = domain.ErrDuplicatePassage
			case foreignKeyViolation:
				err = domain.ErrUnknownVehicle
			}
		}
		return domain.Passage{}, fmt.Errorf("repo.PassageRepo.Create: %w", err)
	}
	return got, nil
}

func (r *pgPassageRepo) GetByVehicleAndTimestamp(ctx context.Context, registration string, ts time.Time) (domain.Passage, error) {
	const q = selectPassage + `
		WHERE p.registration = @registration
		  AND p.passed_at = @passed_at`

	args := pgx.NamedArgs{
		"registration": registration,
		"passed_at":    domain.WallClock(ts),
	}

	got, err := scanPassage(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Passage{}, fmt.Errorf("repo.PassageRepo.GetByVehicleAndTimestamp: %w", err)
	}
	return got, nil
}

func (r *pgPassageRepo) ListByVehicle(ctx context.Context, registration string, from, to time.Time) ([]domain.Passage, error) {
	const q = selectPassage + `
		WHERE p.registration = @registration
		  AND p.passed_at >= @from
		  AND p.passed_at < @to
		ORDER BY p.passed_at`

	args := pgx.NamedArgs{
		"registration": registration,
		"from":         domain.WallClock(from),
		"to":           domain.WallClock(to),
	}

	ps, err := r.list(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.PassageRepo.ListByVehicle: %w", err)
	}
	return ps, nil
}

func (r *pgPassageRepo) ListByRange(ctx context.Context, from, to time.Time) ([]domain.Passage, error) {
	const q = selectPassage + `
		WHERE p.passed_at >= @from
		  AND p.passed_at < @to
		ORDER BY p.registration, p.passed_at`

	args := pgx.NamedArgs{
		"from": domain.WallClock(from),
		"to":   domain.WallClock(to),
	}

	ps, err := r.list(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.PassageRepo.ListByRange: %w", err)
	}
	return ps, nil
}

func (r *pgPassageRepo) list(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Passage, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Passage
	for rows.Next() {
		p, err := scanPassage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

// scanPassage maps a row produced by selectPassage into a domain.Passage.
// passed_at is a zone-less timestamp; it is read back as a UTC wall clock.
func scanPassage(s scanner) (domain.Passage, error) {
	var (
		p        domain.Passage
		id       pgtype.UUID
		passedAt pgtype.Timestamp
		rawType  string
	)

	err := s.Scan(&id, &passedAt, &p.CreatedAt,
		&p.Vehicle.Registration, &rawType, &p.Vehicle.CreatedAt, &p.Vehicle.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Passage{}, domain.ErrNotFound
		}
		return domain.Passage{}, err
	}

	vt, err := domain.ParseVehicleType(rawType)
	if err != nil {
		return domain.Passage{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.Timestamp = domain.WallClock(passedAt.Time)
	p.Vehicle.Type = vt
	return p, nil
}
