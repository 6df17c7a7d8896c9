package handlers

import (
	therapistRepo "solbooking/database/repository/therapist"
	"solbooking/services/availability"
	"solbooking/services/booking"
)

// HandlerBundle groups the dependencies shared across HTTP handlers.
type HandlerBundle struct {
	Availability availability.Service
	Sessions     booking.SessionService
	Therapists   therapistRepo.TherapistRepository
	Window       booking.WindowPolicy
}

// NewHandlerBundle wires the handler dependencies.
func NewHandlerBundle(
	availabilitySvc availability.Service,
	sessions booking.SessionService,
	therapists therapistRepo.TherapistRepository,
	window booking.WindowPolicy,
) *HandlerBundle {
	return &HandlerBundle{
		Availability: availabilitySvc,
		Sessions:     sessions,
		Therapists:   therapists,
		Window:       window,
	}
}
