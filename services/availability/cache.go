package availability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"solbooking/models"
	"solbooking/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// preloadConcurrency caps parallel upstream fetches during a calendar-grid
// preload. Fetches for distinct days are independent and safe to interleave.
const preloadConcurrency = 8

// Cache serves DayAvailability records keyed by (therapistKey, date) with a
// freshness TTL. Concurrent requests for the same key are coalesced into a
// single upstream fetch; a failed fetch is cached briefly as an empty,
// unbookable day so a persistently failing day cannot trigger a retry storm.
type Cache struct {
	fetcher DayFetcher
	ttl     time.Duration

	mu      sync.Mutex
	entries map[string]models.DayAvailability

	sf  singleflight.Group
	now func() time.Time
}

// NewCache builds an availability cache around an upstream day fetcher. The
// cache is in-memory and lives with the owning session; it is never persisted.
func NewCache(fetcher DayFetcher, ttl time.Duration) *Cache {
	return &Cache{
		fetcher: fetcher,
		ttl:     ttl,
		entries: make(map[string]models.DayAvailability),
		now:     time.Now,
	}
}

func cacheKey(therapistKey, date string) string {
	return therapistKey + "|" + date
}

// GetOrFetch returns the availability snapshot for one therapist-day. A fresh
// cache entry is served without I/O; otherwise at most one upstream fetch per
// key runs at a time and all concurrent callers share its result. Upstream
// failures degrade to an empty day and are never returned as errors.
func (c *Cache) GetOrFetch(ctx context.Context, therapistKey, date string) (models.DayAvailability, error) {
	if therapistKey == "" {
		return models.DayAvailability{}, fmt.Errorf("therapist key is required")
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return models.DayAvailability{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	key := cacheKey(therapistKey, date)
	if day, ok := c.fresh(key); ok {
		return day, nil
	}

	v, _, _ := c.sf.Do(key, func() (interface{}, error) {
		// A waiter queued behind a completed flight re-checks freshness so the
		// same result is not fetched twice back to back.
		if day, ok := c.fresh(key); ok {
			return day, nil
		}
		// The fetch result is shared with every coalesced waiter and cached
		// for the TTL, so one caller disconnecting must not abort it. The
		// fetcher's own client timeout bounds the detached call.
		return c.fetch(context.WithoutCancel(ctx), therapistKey, date, key), nil
	})
	return v.(models.DayAvailability), nil
}

// PreloadDates warms the cache for a set of calendar dates in parallel,
// returning snapshots in input order. Used by the month view; individual
// failed days come back empty rather than failing the batch.
func (c *Cache) PreloadDates(ctx context.Context, therapistKey string, dates []string) ([]models.DayAvailability, error) {
	days := make([]models.DayAvailability, len(dates))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(preloadConcurrency)
	for i, date := range dates {
		i, date := i, date
		g.Go(func() error {
			day, err := c.GetOrFetch(ctx, therapistKey, date)
			if err != nil {
				return err
			}
			days[i] = day
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return days, nil
}

func (c *Cache) fresh(key string) (models.DayAvailability, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	day, ok := c.entries[key]
	if !ok || c.now().Sub(day.FetchedAt) >= c.ttl {
		return models.DayAvailability{}, false
	}
	return day, true
}

func (c *Cache) fetch(ctx context.Context, therapistKey, date, key string) models.DayAvailability {
	day, err := c.fetcher.FetchDay(ctx, therapistKey, date)
	if err != nil {
		utils.GetLogger().Error("availability fetch failed, caching empty day",
			zap.String("therapistKey", therapistKey), zap.String("date", date), zap.Error(err))
		day = models.DayAvailability{
			TherapistKey:        therapistKey,
			Date:                date,
			HasBookableSessions: false,
		}
	}
	day.TherapistKey = therapistKey
	day.Date = date
	day.FetchedAt = c.now()

	c.mu.Lock()
	c.entries[key] = day
	c.mu.Unlock()
	return day
}
