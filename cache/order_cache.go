package order_cache

import (
	"sync"
	"time"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
)

const TTL = 10 * time.Minute

// ── Range cache ─────────────────────────────────────────────────────────────
// Normalized orders per fetched range. Used when Redis is not configured.

type rangeEntry struct {
	orders    []models.Order
	fetchedAt time.Time
}

type RangeCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]rangeEntry
}

func NewRangeCache(ttl time.Duration) *RangeCache {
	if ttl <= 0 {
		ttl = TTL
	}
	return &RangeCache{ttl: ttl, entries: make(map[string]rangeEntry)}
}

func (c *RangeCache) Get(r models.DateRange) ([]models.Order, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[Key(r)]
	if ok && time.Since(e.fetchedAt) < c.ttl {
		return e.orders, true
	}
	return nil, false
}

func (c *RangeCache) Set(r models.DateRange, orders []models.Order) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[Key(r)] = rangeEntry{orders: orders, fetchedAt: time.Now()}
}

// Invalidate drops one range, or everything when r is nil.
func (c *RangeCache) Invalidate(r *models.DateRange) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r == nil {
		c.entries = make(map[string]rangeEntry)
		return
	}
	delete(c.entries, Key(*r))
}

// Key is shared with the Redis cache.
func Key(r models.DateRange) string {
	return "orders:" + r.StartDate + ":" + r.EndDate
}

// ── Loaded view ─────────────────────────────────────────────────────────────
// The order set one assistant session is currently looking at. A new fetch clears the
// previous orders; a response for a range other than the last requested one is dropped.

type View struct {
	mu        sync.RWMutex
	requested *models.DateRange
	loaded    *models.DateRange
	orders    []models.Order
}

func NewView() *View {
	return &View{}
}

// BeginFetch records r as the range the view is waiting for and clears held orders.
func (v *View) BeginFetch(r models.DateRange) {
	v.mu.Lock()
	defer v.mu.Unlock()
	rc := r
	v.requested = &rc
	v.loaded = nil
	v.orders = nil
}

// Apply stores orders fetched for r. It returns false, leaving the view untouched, when r is
// no longer the requested range.
func (v *View) Apply(r models.DateRange, orders []models.Order) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.requested != nil && !v.requested.SameBounds(r) {
		return false
	}
	rc := r
	v.loaded = &rc
	v.orders = orders
	return true
}

// Loaded returns the range and orders currently held. The slice must not be modified.
func (v *View) Loaded() (*models.DateRange, []models.Order) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.loaded == nil {
		return nil, v.orders
	}
	r := *v.loaded
	return &r, v.orders
}

// Matches reports whether orders for exactly r are loaded.
func (v *View) Matches(r models.DateRange) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.loaded != nil && v.loaded.SameBounds(r)
}
