package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates throughout the service.
const DateLayout = "2006-01-02"

// TimeOfDay is a wall-clock time (hour:minute) with no date or zone attached.
// Slot times from the upstream feed are always expressed in the scheduling
// timezone, never pre-converted.
type TimeOfDay struct {
	Hour   int
	Minute int
}

var timeOfDayRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// ParseTimeOfDay parses a "HH:MM" string. The whole string must match; values
// with trailing text or single-digit minutes are rejected rather than coerced.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	m := timeOfDayRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("time of day %q out of range", s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MinuteOfDay returns minutes from midnight, e.g. 420 for 7:00 AM.
func (t TimeOfDay) MinuteOfDay() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.MinuteOfDay() < other.MinuteOfDay()
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	parsed, err := ParseTimeOfDay(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// DayAvailability is the availability snapshot for one therapist on one
// calendar date. Slot times are in the scheduling timezone.
type DayAvailability struct {
	TherapistKey        string      `json:"therapistKey"`
	Date                string      `json:"date"` // e.g., "2025-02-25"
	AvailableSlots      []TimeOfDay `json:"availableSlots"`
	TotalSlots          int         `json:"totalSlots"`
	HasBookableSessions bool        `json:"hasBookableSessions"`
	FetchedAt           time.Time   `json:"-"`
}

// BookingWindow is the inclusive instant range within which a session may be
// booked. Derived from "now"; never persisted.
type BookingWindow struct {
	Min time.Time
	Max time.Time
}

// Contains reports whether t falls inside the window.
func (w BookingWindow) Contains(t time.Time) bool {
	return !t.Before(w.Min) && !t.After(w.Max)
}

// TimeSlotMapping pairs a client-facing display time with the original
// scheduling-timezone slot it stands for.
type TimeSlotMapping struct {
	DisplayTime    string `json:"displayTime"`            // "3:00 PM" - what the client sees
	DisplayEndTime string `json:"displayEndTime"`         // end of the 45-minute session
	SchedulingTime string `json:"schedulingTime"`         // "18:00" - original scheduling-timezone time
	ClientTimezone string `json:"clientTimezone"`         // "America/Los_Angeles"
	TimezoneLabel  string `json:"timezoneLabel"`          // "PST" / "PDT"
}

// DayDensity is the per-day summary the calendar grid renders.
type DayDensity struct {
	Date          string `json:"date"`
	TotalSlots    int    `json:"totalSlots"`
	BookableSlots int    `json:"bookableSlots"`
	HasBookable   bool   `json:"hasBookable"`
}
