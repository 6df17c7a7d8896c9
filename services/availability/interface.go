package availability

import (
	"context"

	"solbooking/models"
)

// DayFetcher retrieves raw availability for exactly one therapist-day from
// the upstream calendar source.
type DayFetcher interface {
	FetchDay(ctx context.Context, therapistKey, date string) (models.DayAvailability, error)
}

// Service serves day-level availability, minimizing redundant upstream
// fetches.
type Service interface {
	GetOrFetch(ctx context.Context, therapistKey, date string) (models.DayAvailability, error)
	PreloadDates(ctx context.Context, therapistKey string, dates []string) ([]models.DayAvailability, error)
}
