package booking

import (
	"sort"
	"time"

	"solbooking/models"
	"solbooking/utils"
)

// ResolveDaySlots turns a day's raw availability into the slots actually
// offerable to a client: the day must overlap the booking window, each slot
// instant must fall inside the window and within bookable clock hours, and
// Associate-level therapists book on the hour only. Output is ascending and
// pure; this never touches the network or cache.
func ResolveDaySlots(day models.DayAvailability, window models.BookingWindow, category models.TherapistCategory) []models.TimeOfDay {
	dayStart, err := utils.SlotInstant(day.Date, models.TimeOfDay{})
	if err != nil {
		return nil
	}
	dayEnd := dayStart.Add(24*time.Hour - time.Second)
	if dayEnd.Before(window.Min) || dayStart.After(window.Max) {
		return nil
	}

	resolved := make([]models.TimeOfDay, 0, len(day.AvailableSlots))
	for _, slot := range day.AvailableSlots {
		instant, err := utils.SlotInstant(day.Date, slot)
		if err != nil {
			continue
		}
		if !window.Contains(instant) {
			continue
		}
		if slot.Hour < utils.EarliestBookableHour || slot.Hour >= utils.LatestBookableHour {
			continue
		}
		if category == models.CategoryAssociate && slot.Minute != 0 {
			continue
		}
		resolved = append(resolved, slot)
	}

	sort.Slice(resolved, func(i, j int) bool {
		return resolved[i].Before(resolved[j])
	})
	return resolved
}
