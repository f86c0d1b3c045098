// Package dedup drops repeated message IDs within a TTL window. Used to
// discard QoS1 redeliveries on the scheme notification channel.
package dedup

import (
	"sync"
	"time"
)

type Deduper struct {
	mu      sync.Mutex
	ttl     time.Duration
	maxSize int
	expiry  map[string]time.Time
}

func New(ttl time.Duration, maxSize int) *Deduper {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if maxSize <= 0 {
		maxSize = 10000
	}
	return &Deduper{ttl: ttl, maxSize: maxSize, expiry: make(map[string]time.Time, maxSize)}
}

// ShouldProcess reports whether id has not been seen within the TTL, and
// marks it seen. Empty IDs are always processed.
func (d *Deduper) ShouldProcess(id string) bool {
	if id == "" {
		return true
	}
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()
	if exp, seen := d.expiry[id]; seen && now.Before(exp) {
		return false
	}
	d.expiry[id] = now.Add(d.ttl)
	d.pruneLocked(now)
	return true
}

// pruneLocked sweeps expired entries once the map outgrows maxSize.
func (d *Deduper) pruneLocked(now time.Time) {
	if len(d.expiry) <= d.maxSize {
		return
	}
	for id, exp := range d.expiry {
		if now.After(exp) {
			delete(d.expiry, id)
		}
		if len(d.expiry) <= d.maxSize {
			return
		}
	}
}
