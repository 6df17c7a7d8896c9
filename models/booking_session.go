package models

// BookingSession holds client context between slot browsing and confirmation.
type BookingSession struct {
	SessionID      string           `json:"sessionId"`
	TherapistKey   string           `json:"therapistKey"`
	TherapistName  string           `json:"therapistName,omitempty"`
	Category       string           `json:"category"`
	ClientState    string           `json:"clientState,omitempty"`
	ClientTimezone string           `json:"clientTimezone"`
	SelectedDate   string           `json:"selectedDate,omitempty"`
	SelectedSlot   *TimeSlotMapping `json:"selectedSlot,omitempty"`
}

// BookingConfirmation is the subsystem's sole output to the downstream
// appointment-creation flow: a date plus a scheduling-timezone time of day.
type BookingConfirmation struct {
	TherapistKey   string `json:"therapistKey"`
	Date           string `json:"date"`
	SchedulingTime string `json:"schedulingTime"` // "HH:MM" in the scheduling timezone
}
