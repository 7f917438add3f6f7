package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/chentesbarber/booking-api/internal/config"
)

const availabilityTTL = 30 * time.Second

// NewRedisClient returns nil when no REDIS_URL is configured; a nil
// client simply disables caching.
func NewRedisClient(cfg *config.Config) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("invalid REDIS_URL, caching disabled: %v", err)
		return nil
	}

	return redis.NewClient(opts)
}

// Availability caches resolved bookable times per (barber, date). The
// TTL is short: both inputs change underneath it (admin edits, client
// bookings) and every write path invalidates explicitly anyway.
type Availability struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailability(rdb *redis.Client) *Availability {
	return &Availability{rdb: rdb, ttl: availabilityTTL}
}

func (a *Availability) key(barberID uint, date string) string {
	return fmt.Sprintf("availability:%d:%s", barberID, date)
}

func (a *Availability) Get(ctx context.Context, barberID uint, date string) ([]string, bool) {
	if a == nil || a.rdb == nil {
		return nil, false
	}

	val, err := a.rdb.Get(ctx, a.key(barberID, date)).Result()
	if err != nil {
		return nil, false
	}

	var times []string
	if err := json.Unmarshal([]byte(val), &times); err != nil {
		return nil, false
	}
	return times, true
}

func (a *Availability) Set(ctx context.Context, barberID uint, date string, times []string) {
	if a == nil || a.rdb == nil {
		return
	}

	b, err := json.Marshal(times)
	if err != nil {
		return
	}

	if err := a.rdb.Set(ctx, a.key(barberID, date), b, a.ttl).Err(); err != nil {
		log.Printf("availability cache set failed: %v", err)
	}
}

func (a *Availability) Invalidate(ctx context.Context, barberID uint, date string) {
	if a == nil || a.rdb == nil {
		return
	}

	if err := a.rdb.Del(ctx, a.key(barberID, date)).Err(); err != nil {
		log.Printf("availability cache invalidate failed: %v", err)
	}
}
