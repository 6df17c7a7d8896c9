// File: utils/timezone.go
package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"solbooking/models"

	"go.uber.org/zap"
)

// StateTimezoneMap maps two-letter US state codes to IANA zones.
var StateTimezoneMap = map[string]string{
	// Eastern
	"CT": "America/New_York", "DE": "America/New_York", "DC": "America/New_York", "FL": "America/New_York",
	"GA": "America/New_York", "ME": "America/New_York", "MD": "America/New_York", "MA": "America/New_York",
	"NH": "America/New_York", "NJ": "America/New_York", "NY": "America/New_York", "NC": "America/New_York",
	"OH": "America/New_York", "PA": "America/New_York", "RI": "America/New_York", "SC": "America/New_York",
	"VT": "America/New_York", "VA": "America/New_York", "WV": "America/New_York", "MI": "America/New_York",
	"IN": "America/New_York", "KY": "America/New_York",
	// Central
	"AL": "America/Chicago", "AR": "America/Chicago", "IL": "America/Chicago", "IA": "America/Chicago",
	"LA": "America/Chicago", "MN": "America/Chicago", "MS": "America/Chicago", "MO": "America/Chicago",
	"OK": "America/Chicago", "WI": "America/Chicago", "TX": "America/Chicago", "TN": "America/Chicago",
	"KS": "America/Chicago", "NE": "America/Chicago", "SD": "America/Chicago", "ND": "America/Chicago",
	// Mountain
	"AZ": "America/Phoenix", "CO": "America/Denver", "ID": "America/Denver", "MT": "America/Denver",
	"NM": "America/Denver", "UT": "America/Denver", "WY": "America/Denver",
	// Pacific
	"CA": "America/Los_Angeles", "NV": "America/Los_Angeles", "OR": "America/Los_Angeles", "WA": "America/Los_Angeles",
	// Alaska/Hawaii
	"AK": "America/Anchorage", "HI": "Pacific/Honolulu",
}

// tzAbbreviations holds standard/daylight labels per zone. Arizona and Hawaii
// do not observe DST, so both entries match.
var tzAbbreviations = map[string]struct{ Standard, Daylight string }{
	"America/New_York":    {"EST", "EDT"},
	"America/Chicago":     {"CST", "CDT"},
	"America/Denver":      {"MST", "MDT"},
	"America/Phoenix":     {"MST", "MST"},
	"America/Los_Angeles": {"PST", "PDT"},
	"America/Anchorage":   {"AKST", "AKDT"},
	"Pacific/Honolulu":    {"HST", "HST"},
}

var schedulingLocation *time.Location

// SchedulingLocation returns the fixed zone all upstream slot times are
// expressed in.
func SchedulingLocation() *time.Location {
	if schedulingLocation == nil {
		loc, err := time.LoadLocation(SchedulingTimezone)
		if err != nil {
			// tzdata missing would break every conversion; fail loudly once.
			panic(fmt.Sprintf("cannot load scheduling timezone %s: %v", SchedulingTimezone, err))
		}
		schedulingLocation = loc
	}
	return schedulingLocation
}

// TimezoneForState resolves a client's display zone from their state code.
// Unknown or empty states fall back to the scheduling timezone.
func TimezoneForState(state string) string {
	if tz, ok := StateTimezoneMap[strings.ToUpper(strings.TrimSpace(state))]; ok {
		return tz
	}
	return SchedulingTimezone
}

// clientLocation loads a client zone, falling back to the scheduling zone on
// unknown identifiers. Conversion failures must never block the booking flow.
func clientLocation(timezone string) *time.Location {
	if timezone == "" {
		return SchedulingLocation()
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		GetLogger().Warn("unknown client timezone, falling back to scheduling timezone",
			zap.String("timezone", timezone), zap.Error(err))
		return SchedulingLocation()
	}
	return loc
}

// SlotInstant builds the absolute instant for a slot on a date, interpreting
// the slot as scheduling-timezone wall-clock time. The DST offset depends on
// the date, not on "now".
func SlotInstant(date string, slot models.TimeOfDay) (time.Time, error) {
	day, err := time.ParseInLocation(models.DateLayout, date, SchedulingLocation())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), slot.Hour, slot.Minute, 0, 0, SchedulingLocation()), nil
}

// ToDisplayTime converts a scheduling-timezone slot on a date into a 12-hour
// clock string in the client's zone, e.g. "3:00 PM".
func ToDisplayTime(slot models.TimeOfDay, clientTimezone, date string) string {
	instant, err := SlotInstant(date, slot)
	if err != nil {
		GetLogger().Warn("cannot build slot instant, displaying scheduling-timezone time",
			zap.String("date", date), zap.String("slot", slot.String()), zap.Error(err))
		return formatTwelveHour(slot)
	}
	return instant.In(clientLocation(clientTimezone)).Format("3:04 PM")
}

var displayTimeRe = regexp.MustCompile(`^(\d{1,2}):?(\d{2})?\s*([AaPp][Mm])$`)

// FromDisplayTime parses a 12-hour display string in the client's zone on the
// given date and converts it to the equivalent scheduling-timezone time of
// day. Unparseable input falls back to treating the value as already being in
// the scheduling timezone.
func FromDisplayTime(display, clientTimezone, date string) models.TimeOfDay {
	m := displayTimeRe.FindStringSubmatch(strings.TrimSpace(display))
	if m == nil {
		if t, err := models.ParseTimeOfDay(display); err == nil {
			GetLogger().Warn("display time not in 12-hour format, treating as scheduling-timezone time",
				zap.String("display", display))
			return t
		}
		GetLogger().Warn("unparseable display time, falling back to noon",
			zap.String("display", display))
		return models.TimeOfDay{Hour: 12}
	}

	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	period := strings.ToLower(m[3])
	if period == "pm" && hour != 12 {
		hour += 12
	} else if period == "am" && hour == 12 {
		hour = 0
	}

	day, err := time.ParseInLocation(models.DateLayout, date, clientLocation(clientTimezone))
	if err != nil {
		GetLogger().Warn("invalid date for display-time conversion, treating time as scheduling-timezone",
			zap.String("date", date), zap.Error(err))
		return models.TimeOfDay{Hour: hour, Minute: minute}
	}
	instant := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, clientLocation(clientTimezone))
	scheduled := instant.In(SchedulingLocation())
	return models.TimeOfDay{Hour: scheduled.Hour(), Minute: scheduled.Minute()}
}

// DisplayLabel returns the client-facing zone abbreviation for a date, e.g.
// "PST" in winter and "PDT" in summer.
func DisplayLabel(clientTimezone, date string) string {
	loc := clientLocation(clientTimezone)
	day, err := time.ParseInLocation(models.DateLayout, date, loc)
	if err != nil {
		day = time.Now().In(loc)
	}
	// Noon avoids the transition instants at the edges of the day.
	noon := time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, loc)

	abbrev, ok := tzAbbreviations[loc.String()]
	if !ok {
		return noon.Format("MST")
	}
	if noon.IsDST() {
		return abbrev.Daylight
	}
	return abbrev.Standard
}

// DisplaySlot builds the full slot mapping the booking panel renders: display
// start and end times, the original scheduling-timezone time, and the zone
// label for the date.
func DisplaySlot(slot models.TimeOfDay, clientTimezone, date string) models.TimeSlotMapping {
	mapping := models.TimeSlotMapping{
		SchedulingTime: slot.String(),
		ClientTimezone: clientTimezone,
		TimezoneLabel:  DisplayLabel(clientTimezone, date),
	}
	instant, err := SlotInstant(date, slot)
	if err != nil {
		GetLogger().Warn("cannot build slot instant, displaying scheduling-timezone time",
			zap.String("date", date), zap.String("slot", slot.String()), zap.Error(err))
		mapping.DisplayTime = formatTwelveHour(slot)
		mapping.TimezoneLabel = DisplayLabel(SchedulingTimezone, date)
		return mapping
	}
	local := instant.In(clientLocation(clientTimezone))
	mapping.DisplayTime = local.Format("3:04 PM")
	mapping.DisplayEndTime = local.Add(SessionDuration).Format("3:04 PM")
	return mapping
}

// FormatTimeWithTimezone renders a mapping for confirmations, e.g. "3:00 PM PST".
func FormatTimeWithTimezone(mapping models.TimeSlotMapping) string {
	return mapping.DisplayTime + " " + mapping.TimezoneLabel
}

func formatTwelveHour(t models.TimeOfDay) string {
	period := "AM"
	hour := t.Hour
	if hour >= 12 {
		period = "PM"
	}
	switch {
	case hour == 0:
		hour = 12
	case hour > 12:
		hour -= 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute, period)
}
