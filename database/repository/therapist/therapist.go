package therapistRepo

import "solbooking/models"

// TherapistRepository exposes the therapist directory. The booking funnel
// reads profiles by calendar identity; categories are derived from the
// profile's program attribute at this boundary.
type TherapistRepository interface {
	GetByCalendarEmail(calendarEmail string) (*models.Therapist, error)
	GetByID(id string) (*models.Therapist, error)
	GetByState(state string) ([]models.Therapist, error)
}
