package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stumpsai/stumpsai/internal/cache"
)

// The cache must fail open: with no reachable Redis backend, reads are
// misses and writes are no-ops, never errors or panics.
func TestCacheFailsOpenWhenBackendUnavailable(t *testing.T) {
	c := cache.New(cache.Options{Addr: "127.0.0.1:1"})
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if _, ok := c.Get(ctx, "sql:anything"); ok {
		t.Error("Get against unavailable backend should be a miss")
	}
	if ok := c.Set(ctx, "sql:anything", "SELECT 1;", time.Hour); ok {
		t.Error("Set against unavailable backend should report failure")
	}
	if n := c.IncrementSearch(ctx, "Virat Kohli"); n != 0 {
		t.Errorf("IncrementSearch against unavailable backend = %d, want 0", n)
	}
	if got := c.PopularPlayers(ctx, 10); got != nil {
		t.Errorf("PopularPlayers against unavailable backend = %v, want nil", got)
	}
}
