package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pkordes/congestion-tax/internal/domain"
)

// cachedVehicleRepo is a read-through Redis cache in front of a VehicleRepo.
// Vehicles are looked up on every tax query but change rarely, so a short TTL
// keeps Postgres out of the hot path. Redis failures degrade to the wrapped
// repo; they are logged, never returned.
type cachedVehicleRepo struct {
	next  VehicleRepo
	redis *redis.Client
	ttl   time.Duration
	log   *slog.Logger
}

// NewCachedVehicleRepo wraps next with a Redis cache whose entries expire
// after ttl.
func NewCachedVehicleRepo(next VehicleRepo, client *redis.Client, ttl time.Duration, log *slog.Logger) VehicleRepo {
	return &cachedVehicleRepo{next: next, redis: client, ttl: ttl, log: log}
}

func vehicleKey(registration string) string {
	return fmt.Sprintf("vehicle:%s", registration)
}

func (c *cachedVehicleRepo) GetByRegistration(ctx context.Context, registration string) (domain.Vehicle, error) {
	key := vehicleKey(registration)

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var v domain.Vehicle
		if err := json.Unmarshal(data, &v); err == nil {
			return v, nil
		}
		c.log.WarnContext(ctx, "discarding unreadable cached vehicle", "key", key)
	case !errors.Is(err, redis.Nil):
		c.log.WarnContext(ctx, "vehicle cache get failed", "key", key, "error", err)
	}

	v, err := c.next.GetByRegistration(ctx, registration)
	if err != nil {
		return domain.Vehicle{}, err
	}
	c.store(ctx, v)
	return v, nil
}

func (c *cachedVehicleRepo) Save(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error) {
	saved, err := c.next.Save(ctx, vehicle)
	if err != nil {
		return domain.Vehicle{}, err
	}
	c.store(ctx, saved)
	return saved, nil
}

func (c *cachedVehicleRepo) store(ctx context.Context, v domain.Vehicle) {
	if c.ttl <= 0 {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		c.log.WarnContext(ctx, "marshal vehicle for cache", "error", err)
		return
	}
	if err := c.redis.Set(ctx, vehicleKey(v.Registration), data, c.ttl).Err(); err != nil {
		c.log.WarnContext(ctx, "vehicle cache set failed", "registration", v.Registration, "error", err)
	}
}
