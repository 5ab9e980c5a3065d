package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newGuard(t *testing.T, ttl time.Duration) (*ReplayGuard, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewReplayGuard(client, ttl), mr
}

func TestReplayGuard_FirstUseThenReplay(t *testing.T) {
	guard, _ := newGuard(t, 10*time.Minute)
	ctx := context.Background()

	first, err := guard.FirstUse(ctx, "digest-a")
	if err != nil {
		t.Fatalf("FirstUse: %v", err)
	}
	if !first {
		t.Fatalf("expected first use to be accepted")
	}

	again, err := guard.FirstUse(ctx, "digest-a")
	if err != nil {
		t.Fatalf("FirstUse: %v", err)
	}
	if again {
		t.Fatalf("expected replay to be detected")
	}

	other, err := guard.FirstUse(ctx, "digest-b")
	if err != nil || !other {
		t.Fatalf("independent digest must be accepted: %v %v", other, err)
	}
}

func TestReplayGuard_ExpiresAfterTTL(t *testing.T) {
	guard, mr := newGuard(t, time.Minute)
	ctx := context.Background()

	if ok, err := guard.FirstUse(ctx, "digest-a"); err != nil || !ok {
		t.Fatalf("FirstUse: %v %v", ok, err)
	}
	if ttl := mr.TTL("sigseen:digest-a"); ttl != time.Minute {
		t.Fatalf("unexpected ttl %v", ttl)
	}

	mr.FastForward(time.Minute + time.Second)
	if ok, err := guard.FirstUse(ctx, "digest-a"); err != nil || !ok {
		t.Fatalf("expected key to have expired: %v %v", ok, err)
	}
}

func TestReplayGuard_BackendDown(t *testing.T) {
	guard, mr := newGuard(t, time.Minute)
	mr.Close()

	if _, err := guard.FirstUse(context.Background(), "digest-a"); err == nil {
		t.Fatalf("expected error when redis is unreachable")
	}
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	_ = client.Close()

	addr := mr.Addr()
	mr.Close()
	if _, err := Connect(context.Background(), Config{Addr: addr, Timeout: 200 * time.Millisecond}); err == nil {
		t.Fatalf("expected error for unreachable server")
	}
}
