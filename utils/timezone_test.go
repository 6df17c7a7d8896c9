package utils

import (
	"testing"

	"solbooking/models"
)

func TestToDisplayTime(t *testing.T) {
	tests := []struct {
		name     string
		slot     string
		timezone string
		date     string
		want     string
	}{
		{"eastern to pacific in summer", "18:00", "America/Los_Angeles", "2024-06-15", "3:00 PM"},
		{"eastern to pacific in winter", "18:00", "America/Los_Angeles", "2024-01-15", "3:00 PM"},
		{"eastern to central", "18:00", "America/Chicago", "2024-06-15", "5:00 PM"},
		{"same zone is identity", "18:00", "America/New_York", "2024-06-15", "6:00 PM"},
		{"half-hour slot", "10:30", "America/Chicago", "2024-06-15", "9:30 AM"},
		{"arizona in summer", "18:00", "America/Phoenix", "2024-06-15", "3:00 PM"},
		{"arizona in winter", "18:00", "America/Phoenix", "2024-01-15", "4:00 PM"},
		{"unknown zone falls back to scheduling zone", "18:00", "Not/AZone", "2024-06-15", "6:00 PM"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			slot, err := models.ParseTimeOfDay(tc.slot)
			if err != nil {
				t.Fatal(err)
			}
			if got := ToDisplayTime(slot, tc.timezone, tc.date); got != tc.want {
				t.Errorf("ToDisplayTime(%s, %s, %s) = %q, want %q", tc.slot, tc.timezone, tc.date, got, tc.want)
			}
		})
	}
}

func TestFromDisplayTime_RoundTrip(t *testing.T) {
	tests := []struct {
		slot     string
		timezone string
		date     string
	}{
		{"18:00", "America/Los_Angeles", "2024-06-15"},
		{"18:00", "America/Los_Angeles", "2024-01-15"},
		{"07:00", "America/Chicago", "2024-06-15"},
		{"10:30", "America/Phoenix", "2024-01-15"},
		{"12:00", "Pacific/Honolulu", "2024-06-15"},
	}
	for _, tc := range tests {
		slot, err := models.ParseTimeOfDay(tc.slot)
		if err != nil {
			t.Fatal(err)
		}
		display := ToDisplayTime(slot, tc.timezone, tc.date)
		back := FromDisplayTime(display, tc.timezone, tc.date)
		if back != slot {
			t.Errorf("round trip %s via %s on %s: %q came back as %v", tc.slot, tc.timezone, tc.date, display, back)
		}
	}
}

func TestFromDisplayTime_Formats(t *testing.T) {
	tests := []struct {
		name    string
		display string
		want    models.TimeOfDay
	}{
		{"standard", "3:00 PM", models.TimeOfDay{Hour: 15}},
		{"compact", "3:00PM", models.TimeOfDay{Hour: 15}},
		{"no minutes", "3 PM", models.TimeOfDay{Hour: 15}},
		{"lowercase", "3:30 pm", models.TimeOfDay{Hour: 15, Minute: 30}},
		{"noon", "12:00 PM", models.TimeOfDay{Hour: 12}},
		{"midnight", "12:00 AM", models.TimeOfDay{Hour: 0}},
		{"twenty-four hour fallback", "15:30", models.TimeOfDay{Hour: 15, Minute: 30}},
		{"garbage falls back to noon", "whenever", models.TimeOfDay{Hour: 12}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Same-zone conversion so the parsed clock time survives unchanged.
			if got := FromDisplayTime(tc.display, SchedulingTimezone, "2024-06-15"); got != tc.want {
				t.Errorf("FromDisplayTime(%q) = %v, want %v", tc.display, got, tc.want)
			}
		})
	}
}

func TestDisplayLabel(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		date     string
		want     string
	}{
		{"pacific summer", "America/Los_Angeles", "2024-06-15", "PDT"},
		{"pacific winter", "America/Los_Angeles", "2024-01-15", "PST"},
		{"eastern summer", "America/New_York", "2024-06-15", "EDT"},
		{"arizona never observes DST", "America/Phoenix", "2024-06-15", "MST"},
		{"hawaii never observes DST", "Pacific/Honolulu", "2024-06-15", "HST"},
		{"unknown zone falls back to scheduling label", "Not/AZone", "2024-01-15", "EST"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DisplayLabel(tc.timezone, tc.date); got != tc.want {
				t.Errorf("DisplayLabel(%s, %s) = %q, want %q", tc.timezone, tc.date, got, tc.want)
			}
		})
	}
}

func TestTimezoneForState(t *testing.T) {
	tests := []struct {
		state string
		want  string
	}{
		{"NY", "America/New_York"},
		{"ca", "America/Los_Angeles"},
		{" tx ", "America/Chicago"},
		{"AZ", "America/Phoenix"},
		{"HI", "Pacific/Honolulu"},
		{"ZZ", SchedulingTimezone},
		{"", SchedulingTimezone},
	}
	for _, tc := range tests {
		if got := TimezoneForState(tc.state); got != tc.want {
			t.Errorf("TimezoneForState(%q) = %q, want %q", tc.state, got, tc.want)
		}
	}
}

func TestDisplaySlot(t *testing.T) {
	slot := models.TimeOfDay{Hour: 18}
	mapping := DisplaySlot(slot, "America/Los_Angeles", "2024-06-15")

	if mapping.DisplayTime != "3:00 PM" {
		t.Errorf("DisplayTime = %q, want %q", mapping.DisplayTime, "3:00 PM")
	}
	if mapping.DisplayEndTime != "3:45 PM" {
		t.Errorf("DisplayEndTime = %q, want %q", mapping.DisplayEndTime, "3:45 PM")
	}
	if mapping.SchedulingTime != "18:00" {
		t.Errorf("SchedulingTime = %q, want %q", mapping.SchedulingTime, "18:00")
	}
	if mapping.TimezoneLabel != "PDT" {
		t.Errorf("TimezoneLabel = %q, want %q", mapping.TimezoneLabel, "PDT")
	}
	if got := FormatTimeWithTimezone(mapping); got != "3:00 PM PDT" {
		t.Errorf("FormatTimeWithTimezone = %q, want %q", got, "3:00 PM PDT")
	}
}

func TestSlotInstant_DSTOffsetDependsOnDate(t *testing.T) {
	slot := models.TimeOfDay{Hour: 18}

	summer, err := SlotInstant("2024-06-15", slot)
	if err != nil {
		t.Fatal(err)
	}
	winter, err := SlotInstant("2024-01-15", slot)
	if err != nil {
		t.Fatal(err)
	}

	if _, offset := summer.Zone(); offset != -4*3600 {
		t.Errorf("summer offset = %d, want -4h (EDT)", offset)
	}
	if _, offset := winter.Zone(); offset != -5*3600 {
		t.Errorf("winter offset = %d, want -5h (EST)", offset)
	}

	if _, err := SlotInstant("June 15", slot); err == nil {
		t.Error("expected error for malformed date")
	}
}
