// File: utils/constants.go
package utils

import "time"

// SchedulingTimezone is the fixed IANA zone the upstream feed expresses all
// slot times in.
const SchedulingTimezone = "America/New_York"

// Sessions are never offered before 7am or at/after 10pm, scheduling-timezone
// clock hours.
const (
	EarliestBookableHour = 7
	LatestBookableHour   = 22
)

// SessionDuration is the length of a first therapy session.
const SessionDuration = 45 * time.Minute

// BookingSessionPrefix is the prefix used for Redis booking-session keys.
const BookingSessionPrefix = "booking:session:"
