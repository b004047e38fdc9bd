package service_test

import (
	"context"
	"time"

	"github.com/pkordes/congestion-tax/internal/domain"
	"github.com/pkordes/congestion-tax/internal/repo"
)

// mockVehicleRepo is a hand-written test double for repo.VehicleRepo.
// Each method is a function field; set only the ones your test needs.
type mockVehicleRepo struct {
	getByRegistration func(ctx context.Context, reg string) (domain.Vehicle, error)
	save              func(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)
}

func (m *mockVehicleRepo) GetByRegistration(ctx context.Context, reg string) (domain.Vehicle, error) {
	return m.getByRegistration(ctx, reg)
}
func (m *mockVehicleRepo) Save(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	return m.save(ctx, v)
}

// compile-time check: mockVehicleRepo must satisfy repo.VehicleRepo.
var _ repo.VehicleRepo = (*mockVehicleRepo)(nil)

// mockPassageRepo is a hand-written test double for repo.PassageRepo.
type mockPassageRepo struct {
	create                   func(ctx context.Context, p domain.Passage) (domain.Passage, error)
	getByVehicleAndTimestamp func(ctx context.Context, reg string, ts time.Time) (domain.Passage, error)
	listByVehicle            func(ctx context.Context, reg string, from, to time.Time) ([]domain.Passage, error)
	listByRange              func(ctx context.Context, from, to time.Time) ([]domain.Passage, error)
}

func (m *mockPassageRepo) Create(ctx context.Context, p domain.Passage) (domain.Passage, error) {
	return m.create(ctx, p)
}
func (m *mockPassageRepo) GetByVehicleAndTimestamp(ctx context.Context, reg string, ts time.Time) (domain.Passage, error) {
	return m.getByVehicleAndTimestamp(ctx, reg, ts)
}
func (m *mockPassageRepo) ListByVehicle(ctx context.Context, reg string, from, to time.Time) ([]domain.Passage, error) {
	return m.listByVehicle(ctx, reg, from, to)
}
func (m *mockPassageRepo) ListByRange(ctx context.Context, from, to time.Time) ([]domain.Passage, error) {
	return m.listByRange(ctx, from, to)
}

// compile-time check: mockPassageRepo must satisfy repo.PassageRepo.
var _ repo.PassageRepo = (*mockPassageRepo)(nil)

// ---- in-memory helpers -------------------------------------------------------

// knownVehicles answers lookups from a fixed set of vehicles.
func knownVehicles(vs ...domain.Vehicle) *mockVehicleRepo {
	byReg := make(map[string]domain.Vehicle, len(vs))
	for _, v := range vs {
		byReg[v.Registration] = v
	}
	return &mockVehicleRepo{
		getByRegistration: func(_ context.Context, reg string) (domain.Vehicle, error) {
			v, ok := byReg[reg]
			if !ok {
				return domain.Vehicle{}, domain.ErrNotFound
			}
			return v, nil
		},
		save: func(_ context.Context, v domain.Vehicle) (domain.Vehicle, error) {
			byReg[v.Registration] = v
			return v, nil
		},
	}
}

// storedPassages answers range queries from a fixed passage log, honouring
// the half-open [from, to) contract of the real repo.
func storedPassages(ps ...domain.Passage) *mockPassageRepo {
	in := func(p domain.Passage, from, to time.Time) bool {
		return !p.Timestamp.Before(from) && p.Timestamp.Before(to)
	}
	return &mockPassageRepo{
		listByVehicle: func(_ context.Context, reg string, from, to time.Time) ([]domain.Passage, error) {
			var out []domain.Passage
			for _, p := range ps {
				if p.Vehicle.Registration == reg && in(p, from, to) {
					out = append(out, p)
				}
			}
			return out, nil
		},
		listByRange: func(_ context.Context, from, to time.Time) ([]domain.Passage, error) {
			var out []domain.Passage
			for _, p := range ps {
				if in(p, from, to) {
					out = append(out, p)
				}
			}
			return out, nil
		},
	}
}
