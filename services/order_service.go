package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	order_cache "github.com/Modeva-Ecommerce/ops-dashboard-backend/cache"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/config"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/redis/go-redis/v9"
)

const (
	SourceAPI    = "api"
	SourceCache  = "cache"
	SourceSample = "sample"
)

// LoadResult is the outcome of loading one date range.
type LoadResult struct {
	Range   models.DateRange
	Orders  []models.Order
	Source  string
	Skipped int
}

// OrderLoader is implemented by OrderService; the assistant and the scheduler depend on it.
type OrderLoader interface {
	LoadOrders(ctx context.Context, r models.DateRange) (*LoadResult, error)
}

// CSVFetcher is implemented by UpstreamClient.
type CSVFetcher interface {
	FetchOrdersCSV(ctx context.Context, r models.DateRange) (string, error)
}

// OrderCache stores normalized orders per range.
type OrderCache interface {
	Get(ctx context.Context, r models.DateRange) ([]models.Order, bool)
	Set(ctx context.Context, r models.DateRange, orders []models.Order)
}

type OrderService struct {
	upstream    CSVFetcher
	normalizer  *OrderNormalizer
	cache       OrderCache
	allowSample bool
	loc         *time.Location
	now         func() time.Time
}

func NewOrderService(upstream CSVFetcher, normalizer *OrderNormalizer, cache OrderCache, allowSample bool, loc *time.Location) *OrderService {
	if loc == nil {
		loc = time.Local
	}
	return &OrderService{
		upstream:    upstream,
		normalizer:  normalizer,
		cache:       cache,
		allowSample: allowSample,
		loc:         loc,
		now:         time.Now,
	}
}

// NewOrderServiceFromConfig wires the upstream client, the normalizer and Redis (or the
// in-memory range cache when Redis is not connected).
func NewOrderServiceFromConfig(cfg *config.Config, rdb *redis.Client) *OrderService {
	var cache OrderCache
	if rdb != nil {
		cache = NewRedisOrderCache(rdb, cfg.OrderCacheTTL)
	} else {
		cache = NewMemoryOrderCache(cfg.OrderCacheTTL)
	}
	loc := cfg.Location()
	return NewOrderService(
		NewUpstreamClient(cfg.Upstream),
		NewOrderNormalizer(loc),
		cache,
		cfg.AllowSampleFallback,
		loc,
	)
}

// Today is the current calendar date in the service's zone.
func (s *OrderService) Today() string {
	return s.now().In(s.loc).Format(models.DateLayout)
}

func (s *OrderService) Now() time.Time {
	return s.now().In(s.loc)
}

// LoadOrders returns the orders for r, served from the cache when fresh.
func (s *OrderService) LoadOrders(ctx context.Context, r models.DateRange) (*LoadResult, error) {
	if err := r.Validate(s.Today()); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if orders, ok := s.cache.Get(ctx, r); ok {
			log.Printf("[orders.load] cache hit range=%s orders=%d", r, len(orders))
			return &LoadResult{Range: r, Orders: orders, Source: SourceCache}, nil
		}
	}
	return s.fetch(ctx, r)
}

// Refresh always goes to the upstream API and replaces the cached entry.
func (s *OrderService) Refresh(ctx context.Context, r models.DateRange) (*LoadResult, error) {
	if err := r.Validate(s.Today()); err != nil {
		return nil, err
	}
	return s.fetch(ctx, r)
}

func (s *OrderService) fetch(ctx context.Context, r models.DateRange) (*LoadResult, error) {
	start := time.Now()
	csvText, err := s.upstream.FetchOrdersCSV(ctx, r)
	if err != nil {
		log.Printf("[orders.load] ERROR upstream range=%s err=%v", r, err)
		return nil, err
	}

	result := &LoadResult{Range: r, Source: SourceAPI}
	normalized, err := s.normalizer.Normalize(csvText, r.StartDate)
	switch {
	case errors.Is(err, models.ErrInsufficientData):
		log.Printf("[orders.load] WARN range=%s %v", r, err)
	case err != nil:
		return nil, err
	default:
		result.Orders = normalized.Orders
		result.Skipped = normalized.Skipped
	}

	if len(result.Orders) == 0 {
		if s.allowSample {
			log.Printf("[orders.load] WARN no usable rows range=%s -> sample orders", r)
			result.Orders = SampleOrders(r.StartDate)
			result.Source = SourceSample
			return result, nil
		}
		result.Orders = []models.Order{}
		return result, nil
	}

	if s.cache != nil {
		s.cache.Set(ctx, r, result.Orders)
	}
	log.Printf("[orders.load] fetched range=%s orders=%d skipped=%d took=%s",
		r, len(result.Orders), result.Skipped, time.Since(start).Round(time.Millisecond))
	return result, nil
}

// ── Cache implementations ───────────────────────────────────────────────────

type memoryOrderCache struct {
	ranges *order_cache.RangeCache
}

func NewMemoryOrderCache(ttl time.Duration) OrderCache {
	return &memoryOrderCache{ranges: order_cache.NewRangeCache(ttl)}
}

func (m *memoryOrderCache) Get(_ context.Context, r models.DateRange) ([]models.Order, bool) {
	return m.ranges.Get(r)
}

func (m *memoryOrderCache) Set(_ context.Context, r models.DateRange, orders []models.Order) {
	m.ranges.Set(r, orders)
}

type redisOrderCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisOrderCache(client *redis.Client, ttl time.Duration) OrderCache {
	if ttl <= 0 {
		ttl = order_cache.TTL
	}
	return &redisOrderCache{client: client, ttl: ttl}
}

func (c *redisOrderCache) Get(ctx context.Context, r models.DateRange) ([]models.Order, bool) {
	raw, err := c.client.Get(ctx, order_cache.Key(r)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[orders.cache] WARN redis get range=%s err=%v", r, err)
		}
		return nil, false
	}
	var orders []models.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		log.Printf("[orders.cache] WARN corrupt entry range=%s err=%v", r, err)
		return nil, false
	}
	return orders, true
}

func (c *redisOrderCache) Set(ctx context.Context, r models.DateRange, orders []models.Order) {
	raw, err := json.Marshal(orders)
	if err != nil {
		log.Printf("[orders.cache] ERROR marshal range=%s err=%v", r, err)
		return
	}
	if err := c.client.Set(ctx, order_cache.Key(r), raw, c.ttl).Err(); err != nil {
		log.Printf("[orders.cache] WARN redis set range=%s err=%v", r, err)
	}
}
