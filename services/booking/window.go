package booking

import (
	"time"

	"solbooking/models"
	"solbooking/utils"
)

// DefaultWindowDays is the authoritative booking-window length. The source
// funnel disagreed with itself between 14 and 15; 14 is the value the calendar
// actually renders (two lead days plus two full weeks).
const DefaultWindowDays = 14

// WindowPolicy computes the inclusive date/time range within which a session
// may be booked, as a pure function of "now".
type WindowPolicy struct {
	Days int
}

// NewWindowPolicy builds a policy with the given window length in days,
// falling back to the default for non-positive values.
func NewWindowPolicy(days int) WindowPolicy {
	if days <= 0 {
		days = DefaultWindowDays
	}
	return WindowPolicy{Days: days}
}

// ComputeWindow returns the booking window anchored at now. The earliest
// bookable instant is scheduling-timezone midnight two calendar days out
// (tomorrow is excluded); the latest is 23:59:59 of the final window day.
func (p WindowPolicy) ComputeWindow(now time.Time) models.BookingWindow {
	loc := utils.SchedulingLocation()
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	lastDay := today.AddDate(0, 0, p.Days)
	return models.BookingWindow{
		Min: today.AddDate(0, 0, 2),
		Max: time.Date(lastDay.Year(), lastDay.Month(), lastDay.Day(), 23, 59, 59, 0, loc),
	}
}
