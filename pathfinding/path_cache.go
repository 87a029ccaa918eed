package pathfinding

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"routeplan/core"
	"routeplan/obstacles"
)

// PathCacheKey represents a unique key for caching paths.
type PathCacheKey struct {
	From, To     core.Point
	ObstacleHash uint64 // Hash of obstacle configuration
}

// PathCache stores previously computed paths for reuse.
type PathCache struct {
	mu        sync.RWMutex
	cache     map[PathCacheKey]core.Path
	order     []PathCacheKey // insertion order, oldest first
	maxSize   int
	hits      int64 // Use atomic operations
	misses    int64 // Use atomic operations
	evictions int64 // Use atomic operations
}

// NewPathCache creates a new path cache with the specified maximum size.
func NewPathCache(maxSize int) *PathCache {
	return &PathCache{
		cache:   make(map[PathCacheKey]core.Path),
		maxSize: maxSize,
	}
}

// Get retrieves a copy of a cached path.
func (pc *PathCache) Get(key PathCacheKey) (core.Path, bool) {
	pc.mu.RLock()
	path, found := pc.cache[key]
	pc.mu.RUnlock()

	if found {
		atomic.AddInt64(&pc.hits, 1)
		return path.Clone(), true
	}
	atomic.AddInt64(&pc.misses, 1)
	return core.Path{}, false
}

// Put stores a path in the cache, evicting the oldest entry when full.
func (pc *PathCache) Put(key PathCacheKey, path core.Path) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if _, exists := pc.cache[key]; !exists {
		if pc.maxSize > 0 && len(pc.cache) >= pc.maxSize {
			oldest := pc.order[0]
			pc.order = pc.order[1:]
			delete(pc.cache, oldest)
			atomic.AddInt64(&pc.evictions, 1)
		}
		pc.order = append(pc.order, key)
	}

	pc.cache[key] = path.Clone()
}

// Clear removes all entries from the cache.
func (pc *PathCache) Clear() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.cache = make(map[PathCacheKey]core.Path)
	pc.order = nil
	atomic.StoreInt64(&pc.hits, 0)
	atomic.StoreInt64(&pc.misses, 0)
	atomic.StoreInt64(&pc.evictions, 0)
}

// Stats returns cache statistics.
func (pc *PathCache) Stats() (hits, misses, evictions, size int) {
	pc.mu.RLock()
	size = len(pc.cache)
	pc.mu.RUnlock()

	hits = int(atomic.LoadInt64(&pc.hits))
	misses = int(atomic.LoadInt64(&pc.misses))
	evictions = int(atomic.LoadInt64(&pc.evictions))

	return hits, misses, evictions, size
}

// String returns a string representation of cache statistics.
func (pc *PathCache) String() string {
	hits, misses, evictions, size := pc.Stats()
	hitRate := 0.0
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	return fmt.Sprintf("PathCache[size=%d/%d, hits=%d, misses=%d, hitRate=%.1f%%, evictions=%d]",
		size, pc.maxSize, hits, misses, hitRate, evictions)
}

// CachedPathFinder wraps a PathFinder with caching for one obstacle set.
// The obstacle hash is part of every key, so a finder can be shared between
// scenarios without mixing their results.
type CachedPathFinder struct {
	finder       PathFinder
	cache        *PathCache
	obstacleHash uint64
}

// NewCachedPathFinder creates a new cached path finder for the given set.
func NewCachedPathFinder(finder PathFinder, set core.ObstacleSet, cacheSize int) *CachedPathFinder {
	return &CachedPathFinder{
		finder:       finder,
		cache:        NewPathCache(cacheSize),
		obstacleHash: obstacles.Hash(set),
	}
}

// FindPath finds a path, using the cache when possible. Failures are not cached.
func (cpf *CachedPathFinder) FindPath(ctx context.Context, start, end core.Point, blocked obstacles.Checker) (core.Path, error) {
	key := PathCacheKey{From: start, To: end, ObstacleHash: cpf.obstacleHash}
	if path, found := cpf.cache.Get(key); found {
		return path, nil
	}

	path, err := cpf.finder.FindPath(ctx, start, end, blocked)
	if err != nil {
		return path, err
	}

	cpf.cache.Put(key, path)
	return path, nil
}

// ClearCache clears the path cache.
func (cpf *CachedPathFinder) ClearCache() {
	cpf.cache.Clear()
}

// CacheStats returns the cache statistics.
func (cpf *CachedPathFinder) CacheStats() string {
	return cpf.cache.String()
}
