package weather

import (
	"fmt"
	"sync"
	"time"

	"github.com/cropsaarthi/backend/internal/model"
)

// cacheValidity is how long a fetched forecast stays fresh.
const cacheValidity = 3 * time.Hour

// LocationKey coalesces nearby coordinates into one cache entry by rounding
// to 2 decimal places (roughly 1.1 km).
func LocationKey(lat, lon float64) string {
	return fmt.Sprintf("%.2f,%.2f", lat, lon)
}

// CachedEntry is one cached aggregated forecast.
type CachedEntry struct {
	Forecasts []model.DailyForecast
	FetchedAt time.Time
}

// Cache maps location keys to previously aggregated forecasts. Entries are
// never evicted; the set of distinct rounded locations per session is small.
type Cache struct {
	mu      sync.Mutex
	entries map[string]CachedEntry
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]CachedEntry)}
}

// Get returns the entry for key, fresh or stale.
func (c *Cache) Get(key string) (CachedEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e, ok
}

// Put stores (overwriting) the forecasts for key. Last writer wins when two
// fetches for the same unseen key race; both derive from the same provider
// window so either result is acceptable.
func (c *Cache) Put(key string, forecasts []model.DailyForecast, fetchedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = CachedEntry{Forecasts: forecasts, FetchedAt: fetchedAt}
}

// IsFresh reports whether the entry is still within the validity window at
// time now. An entry exactly cacheValidity old is stale.
func (e CachedEntry) IsFresh(now time.Time) bool {
	return now.Sub(e.FetchedAt) < cacheValidity
}
