package services

import (
	"context"
	"sync"
	"time"

	"hotel-booking/clock"

	"github.com/redis/go-redis/v9"
)

// Denylist remembers signed-out token ids until the token would expire anyway.
type Denylist interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type RedisDenylist struct {
	client *redis.Client
	prefix string
	clock  clock.Clock
}

func NewRedisDenylist(client *redis.Client, c clock.Clock) *RedisDenylist {
	return &RedisDenylist{client: client, prefix: "hotel:denylist:", clock: c}
}

func (d *RedisDenylist) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := until.Sub(d.clock.Now())
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, d.prefix+jti, "1", ttl).Err()
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.client.Exists(ctx, d.prefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type MemoryDenylist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	clock   clock.Clock
}

func NewMemoryDenylist(c clock.Clock) *MemoryDenylist {
	return &MemoryDenylist{entries: map[string]time.Time{}, clock: c}
}

func (d *MemoryDenylist) Revoke(_ context.Context, jti string, until time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.clock.Now()
	for k, exp := range d.entries {
		if !exp.After(now) {
			delete(d.entries, k)
		}
	}
	if until.After(now) {
		d.entries[jti] = until
	}
	return nil
}

func (d *MemoryDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	exp, ok := d.entries[jti]
	return ok && exp.After(d.clock.Now()), nil
}
