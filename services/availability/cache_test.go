package availability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"solbooking/models"
)

// fakeFetcher counts upstream calls and can fail or block per key.
type fakeFetcher struct {
	mu      sync.Mutex
	calls   map[string]int
	failOn  map[string]bool
	release chan struct{} // when non-nil, FetchDay blocks until closed
	slots   []models.TimeOfDay
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		calls:  make(map[string]int),
		failOn: make(map[string]bool),
		slots: []models.TimeOfDay{
			{Hour: 9, Minute: 0},
			{Hour: 10, Minute: 30},
		},
	}
}

func (f *fakeFetcher) FetchDay(ctx context.Context, therapistKey, date string) (models.DayAvailability, error) {
	f.mu.Lock()
	f.calls[therapistKey+"|"+date]++
	release := f.release
	fail := f.failOn[date]
	f.mu.Unlock()

	if release != nil {
		// Abort on cancellation the way a real HTTP client would.
		select {
		case <-release:
		case <-ctx.Done():
			return models.DayAvailability{}, ctx.Err()
		}
	}
	if fail {
		return models.DayAvailability{}, errors.New("upstream unavailable")
	}
	return models.DayAvailability{
		TherapistKey:        therapistKey,
		Date:                date,
		AvailableSlots:      f.slots,
		TotalSlots:          len(f.slots),
		HasBookableSessions: true,
	}, nil
}

func (f *fakeFetcher) callCount(therapistKey, date string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[therapistKey+"|"+date]
}

func TestGetOrFetch_CoalescesConcurrentRequests(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.release = make(chan struct{})
	cache := NewCache(fetcher, 30*time.Second)

	const concurrent = 8
	var wg sync.WaitGroup
	results := make([]models.DayAvailability, concurrent)
	for i := 0; i < concurrent; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			day, err := cache.GetOrFetch(context.Background(), "amy@example.com", "2024-06-14")
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			results[i] = day
		}(i)
	}

	// Give every caller time to join the in-flight fetch, then let it finish.
	time.Sleep(100 * time.Millisecond)
	close(fetcher.release)
	wg.Wait()

	if got := fetcher.callCount("amy@example.com", "2024-06-14"); got != 1 {
		t.Fatalf("expected exactly 1 upstream fetch, got %d", got)
	}
	for i, day := range results {
		if len(day.AvailableSlots) != 2 {
			t.Errorf("caller %d got %d slots, want 2", i, len(day.AvailableSlots))
		}
	}
}

func TestGetOrFetch_CallerCancellationDoesNotAbortFetch(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.release = make(chan struct{})
	cache := NewCache(fetcher, 30*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan models.DayAvailability, 1)
	go func() {
		day, err := cache.GetOrFetch(ctx, "amy@example.com", "2024-06-14")
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		done <- day
	}()

	// Cancel while the fetch is in flight, then let the upstream respond.
	time.Sleep(50 * time.Millisecond)
	cancel()
	time.Sleep(50 * time.Millisecond)
	close(fetcher.release)

	day := <-done
	if len(day.AvailableSlots) != 2 || !day.HasBookableSessions {
		t.Fatalf("cancelled caller should still receive the completed fetch, got %+v", day)
	}

	// The cache holds the real result, not a poisoned empty day.
	fresh, err := cache.GetOrFetch(context.Background(), "amy@example.com", "2024-06-14")
	if err != nil {
		t.Fatal(err)
	}
	if len(fresh.AvailableSlots) != 2 || !fresh.HasBookableSessions {
		t.Fatalf("cache poisoned by caller cancellation: %+v", fresh)
	}
	if got := fetcher.callCount("amy@example.com", "2024-06-14"); got != 1 {
		t.Fatalf("expected the interrupted caller's fetch to be reused, got %d fetches", got)
	}
}

func TestGetOrFetch_TTLFreshness(t *testing.T) {
	fetcher := newFakeFetcher()
	cache := NewCache(fetcher, 30*time.Second)

	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	if _, err := cache.GetOrFetch(context.Background(), "amy@example.com", "2024-06-14"); err != nil {
		t.Fatal(err)
	}
	if got := fetcher.callCount("amy@example.com", "2024-06-14"); got != 1 {
		t.Fatalf("expected 1 fetch after first call, got %d", got)
	}

	// Younger than the TTL: served from cache, no I/O.
	now = now.Add(29 * time.Second)
	if _, err := cache.GetOrFetch(context.Background(), "amy@example.com", "2024-06-14"); err != nil {
		t.Fatal(err)
	}
	if got := fetcher.callCount("amy@example.com", "2024-06-14"); got != 1 {
		t.Fatalf("expected no re-fetch inside TTL, got %d fetches", got)
	}

	// Aged past the TTL: exactly one re-fetch.
	now = now.Add(2 * time.Second)
	if _, err := cache.GetOrFetch(context.Background(), "amy@example.com", "2024-06-14"); err != nil {
		t.Fatal(err)
	}
	if got := fetcher.callCount("amy@example.com", "2024-06-14"); got != 2 {
		t.Fatalf("expected exactly one re-fetch after TTL, got %d fetches", got)
	}
}

func TestGetOrFetch_FailureDegradesToEmptyDay(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.failOn["2024-06-13"] = true
	cache := NewCache(fetcher, 30*time.Second)

	day, err := cache.GetOrFetch(context.Background(), "amy@example.com", "2024-06-13")
	if err != nil {
		t.Fatalf("fetch failure must not propagate, got %v", err)
	}
	if len(day.AvailableSlots) != 0 || day.HasBookableSessions {
		t.Fatalf("failed day should be empty and unbookable, got %+v", day)
	}

	// The failure is cached: no immediate retry storm.
	if _, err := cache.GetOrFetch(context.Background(), "amy@example.com", "2024-06-13"); err != nil {
		t.Fatal(err)
	}
	if got := fetcher.callCount("amy@example.com", "2024-06-13"); got != 1 {
		t.Fatalf("expected failed day to be served from the error cache, got %d fetches", got)
	}
}

func TestGetOrFetch_FailureIsolatedPerKey(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.failOn["2024-06-13"] = true
	cache := NewCache(fetcher, 30*time.Second)

	if _, err := cache.GetOrFetch(context.Background(), "amy@example.com", "2024-06-13"); err != nil {
		t.Fatal(err)
	}
	good, err := cache.GetOrFetch(context.Background(), "amy@example.com", "2024-06-14")
	if err != nil {
		t.Fatal(err)
	}
	if len(good.AvailableSlots) != 2 || !good.HasBookableSessions {
		t.Fatalf("healthy day affected by neighbor failure: %+v", good)
	}

	other, err := cache.GetOrFetch(context.Background(), "ben@example.com", "2024-06-13")
	if err != nil {
		t.Fatal(err)
	}
	if len(other.AvailableSlots) != 2 {
		t.Fatalf("other therapist affected by failure: %+v", other)
	}
}

func TestGetOrFetch_RejectsInvalidInput(t *testing.T) {
	cache := NewCache(newFakeFetcher(), 30*time.Second)

	if _, err := cache.GetOrFetch(context.Background(), "", "2024-06-14"); err == nil {
		t.Error("expected error for empty therapist key")
	}
	if _, err := cache.GetOrFetch(context.Background(), "amy@example.com", "June 14"); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestPreloadDates(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.failOn["2024-06-13"] = true
	cache := NewCache(fetcher, 30*time.Second)

	dates := []string{"2024-06-12", "2024-06-13", "2024-06-14"}
	days, err := cache.PreloadDates(context.Background(), "amy@example.com", dates)
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	for i, day := range days {
		if day.Date != dates[i] {
			t.Errorf("day %d out of order: got %s, want %s", i, day.Date, dates[i])
		}
	}
	if days[1].HasBookableSessions {
		t.Error("failed day should be unbookable in preload result")
	}
	if !days[0].HasBookableSessions || !days[2].HasBookableSessions {
		t.Error("healthy days should remain bookable")
	}
}
