package booking

import (
	"context"

	"solbooking/models"
)

// SessionService manages the stateful booking flow between slot browsing and
// confirmation. Its sole output to the rest of the application is the
// (date, scheduling-timezone time) pair in the confirmation.
type SessionService interface {
	Initiate(ctx context.Context, therapistEmail, clientState string) (*models.BookingSession, error)
	SelectSlot(ctx context.Context, sessionID, date, displayTime string) (*models.BookingSession, error)
	Confirm(ctx context.Context, sessionID string) (*models.BookingConfirmation, error)
	Cancel(ctx context.Context, sessionID string) error
}
