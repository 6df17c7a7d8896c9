package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"solbooking/models"
	"solbooking/utils"

	"go.uber.org/zap"
)

// upstreamResponse mirrors the per-day feed payload from the calendar source.
type upstreamResponse struct {
	AvailableSlots      []string        `json:"available_slots"`
	TotalSlots          int             `json:"total_slots"`
	HasBookableSessions bool            `json:"has_bookable_sessions"`
	TherapistInfo       json.RawMessage `json:"therapist_info,omitempty"`
}

// UpstreamSource fetches one therapist-day of raw availability over HTTP.
type UpstreamSource struct {
	baseURL string
	client  *http.Client
}

// NewUpstreamSource builds the production DayFetcher against the calendar
// availability endpoint.
func NewUpstreamSource(baseURL string) *UpstreamSource {
	return &UpstreamSource{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchDay retrieves raw availability for exactly one day. Any transport or
// HTTP error is returned as-is; the caller decides how failures degrade.
func (s *UpstreamSource) FetchDay(ctx context.Context, therapistKey, date string) (models.DayAvailability, error) {
	q := url.Values{}
	q.Set("email", therapistKey)
	q.Set("date", date)
	endpoint := fmt.Sprintf("%s/availability?%s", s.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.DayAvailability{}, fmt.Errorf("building availability request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return models.DayAvailability{}, fmt.Errorf("availability request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.DayAvailability{}, fmt.Errorf("availability request returned status %d", resp.StatusCode)
	}

	var payload upstreamResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.DayAvailability{}, fmt.Errorf("decoding availability response: %w", err)
	}

	return models.DayAvailability{
		TherapistKey:        therapistKey,
		Date:                date,
		AvailableSlots:      normalizeSlots(payload.AvailableSlots, therapistKey, date),
		TotalSlots:          payload.TotalSlots,
		HasBookableSessions: payload.HasBookableSessions,
	}, nil
}

// normalizeSlots parses, de-duplicates and sorts the raw "HH:MM" slot list.
// Malformed entries are dropped with a warning rather than failing the day.
func normalizeSlots(raw []string, therapistKey, date string) []models.TimeOfDay {
	seen := make(map[int]bool, len(raw))
	slots := make([]models.TimeOfDay, 0, len(raw))
	for _, s := range raw {
		t, err := models.ParseTimeOfDay(s)
		if err != nil {
			utils.GetLogger().Warn("dropping malformed slot from upstream feed",
				zap.String("therapistKey", therapistKey), zap.String("date", date),
				zap.String("slot", s), zap.Error(err))
			continue
		}
		if seen[t.MinuteOfDay()] {
			continue
		}
		seen[t.MinuteOfDay()] = true
		slots = append(slots, t)
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Before(slots[j])
	})
	return slots
}
