package pathfinding

import (
	"context"
	"strings"
	"testing"

	"routeplan/core"
	"routeplan/obstacles"
)

type countingFinder struct {
	inner PathFinder
	calls int
}

func (c *countingFinder) FindPath(ctx context.Context, start, end core.Point, blocked obstacles.Checker) (core.Path, error) {
	c.calls++
	return c.inner.FindPath(ctx, start, end, blocked)
}

func TestPathCache_Basic(t *testing.T) {
	cache := NewPathCache(10)
	key := PathCacheKey{From: core.Point{X: 0, Y: 0}, To: core.Point{X: 5, Y: 5}, ObstacleHash: 12345}
	path := core.Path{Points: []core.Point{{X: 0, Y: 0}, {X: 5, Y: 5}}, Cost: 7}

	if _, found := cache.Get(key); found {
		t.Error("Expected cache miss on empty cache")
	}

	cache.Put(key, path)
	got, found := cache.Get(key)
	if !found {
		t.Fatal("Expected cache hit after Put")
	}
	if got.Cost != path.Cost || got.Len() != path.Len() {
		t.Errorf("cached path differs: %+v", got)
	}

	// Returned paths are copies
	got.Points[0] = core.Point{X: 9, Y: 9}
	again, _ := cache.Get(key)
	if again.Points[0] != (core.Point{X: 0, Y: 0}) {
		t.Error("cache returned shared slice")
	}

	otherKey := key
	otherKey.ObstacleHash = 54321
	if _, found := cache.Get(otherKey); found {
		t.Error("Expected miss for different obstacle hash")
	}

	hits, misses, evictions, size := cache.Stats()
	if hits != 2 || misses != 2 || evictions != 0 || size != 1 {
		t.Errorf("Stats() = %d hits, %d misses, %d evictions, size %d", hits, misses, evictions, size)
	}
}

func TestPathCache_EvictsOldest(t *testing.T) {
	cache := NewPathCache(2)
	keys := []PathCacheKey{
		{From: core.Point{X: 0, Y: 0}, To: core.Point{X: 1, Y: 0}},
		{From: core.Point{X: 0, Y: 0}, To: core.Point{X: 2, Y: 0}},
		{From: core.Point{X: 0, Y: 0}, To: core.Point{X: 3, Y: 0}},
	}
	for _, k := range keys {
		cache.Put(k, core.Path{Points: []core.Point{k.From, k.To}})
	}

	if _, found := cache.Get(keys[0]); found {
		t.Error("oldest entry should have been evicted")
	}
	for _, k := range keys[1:] {
		if _, found := cache.Get(k); !found {
			t.Errorf("entry %v should still be cached", k.To)
		}
	}
	if _, _, evictions, size := cache.Stats(); evictions != 1 || size != 2 {
		t.Errorf("evictions=%d size=%d", evictions, size)
	}

	cache.Clear()
	if _, _, _, size := cache.Stats(); size != 0 {
		t.Errorf("size after Clear = %d", size)
	}
}

func TestCachedPathFinder(t *testing.T) {
	counter := &countingFinder{inner: NewAStarPathFinder(DefaultWeights)}
	cached := NewCachedPathFinder(counter, scenarioObstacles, 16)
	checker := obstacles.SquareChecker(scenarioObstacles)
	start, end := core.Point{X: 100, Y: 100}, core.Point{X: 180, Y: 150}

	first, err := cached.FindPath(context.Background(), start, end, checker)
	if err != nil {
		t.Fatalf("FindPath failed: %v", err)
	}
	second, err := cached.FindPath(context.Background(), start, end, checker)
	if err != nil {
		t.Fatalf("FindPath failed: %v", err)
	}

	if counter.calls != 1 {
		t.Errorf("underlying finder called %d times, want 1", counter.calls)
	}
	if first.Len() != second.Len() || first.Cost != second.Cost {
		t.Error("cached path differs from computed path")
	}
	if !strings.Contains(cached.CacheStats(), "hits=1") {
		t.Errorf("unexpected stats %s", cached.CacheStats())
	}

	// Failures are not cached
	_, err = cached.FindPath(context.Background(), start, core.Point{X: 320, Y: 320}, checker)
	if err == nil {
		t.Fatal("expected failure for blocked goal")
	}
	_, _ = cached.FindPath(context.Background(), start, core.Point{X: 320, Y: 320}, checker)
	if counter.calls != 3 {
		t.Errorf("underlying finder called %d times, want 3", counter.calls)
	}

	cached.ClearCache()
	if !strings.Contains(cached.CacheStats(), "size=0/16") {
		t.Errorf("unexpected stats after clear %s", cached.CacheStats())
	}
}
