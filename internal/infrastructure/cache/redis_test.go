package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestOpenRedis_Success(t *testing.T) {
	s := miniredis.RunT(t)
	defer s.Close()

	// Use a non-zero DB to verify it's set
	c, err := OpenRedis(s.Addr(), 2)
	if err != nil {
		t.Fatalf("OpenRedis returned error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if got := c.Options().DB; got != 2 {
		t.Fatalf("client DB = %d, want 2", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := c.Set(ctx, "k", "v", 0).Err(); err != nil {
		t.Fatalf("SET err: %v", err)
	}
	v, err := c.Get(ctx, "k").Result()
	if err != nil {
		t.Fatalf("GET err: %v", err)
	}
	if v != "v" {
		t.Fatalf("GET value = %q, want %q", v, "v")
	}
}

func TestOpenRedis_Failure(t *testing.T) {
	// Unresolvable host → Ping should fail immediately (no 5s delay)
	if _, err := OpenRedis("not-a-real-host:6379", 0); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestRedisCache_RoundTrip(t *testing.T) {
	s := miniredis.RunT(t)
	defer s.Close()

	client, err := OpenRedis(s.Addr(), 0)
	if err != nil {
		t.Fatalf("OpenRedis: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	c := NewRedisCache(client)
	ctx := context.Background()

	// Missing key reads as empty, not error.
	raw, err := c.Get(ctx, "dashboard:bank-1:30d")
	if err != nil {
		t.Fatalf("Get missing: %v", err)
	}
	if raw != nil {
		t.Fatalf("missing key = %q, want nil", raw)
	}

	if err := c.Set(ctx, "dashboard:bank-1:30d", []byte(`{"x":1}`), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	raw, err = c.Get(ctx, "dashboard:bank-1:30d")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(raw) != `{"x":1}` {
		t.Fatalf("Get = %q, want payload back", raw)
	}

	// TTL expiry drops the entry.
	s.FastForward(2 * time.Minute)
	raw, err = c.Get(ctx, "dashboard:bank-1:30d")
	if err != nil {
		t.Fatalf("Get after expiry: %v", err)
	}
	if raw != nil {
		t.Fatalf("expired key = %q, want nil", raw)
	}
}
