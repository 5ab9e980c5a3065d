package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReplayGuard remembers accepted service signatures so each one is honoured once.
// Key format: sigseen:<digest>
type ReplayGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReplayGuard keeps each digest for ttl, which should cover the whole skew
// window on both sides of the verifier clock.
func NewReplayGuard(client *redis.Client, ttl time.Duration) *ReplayGuard {
	return &ReplayGuard{client: client, ttl: ttl}
}

// FirstUse atomically records digest and reports whether it had not been seen before.
func (g *ReplayGuard) FirstUse(ctx context.Context, digest string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(digest), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("replay guard: %w", err)
	}
	return ok, nil
}

func (g *ReplayGuard) key(digest string) string {
	return "sigseen:" + digest
}
