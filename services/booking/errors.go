package booking

import "fmt"

type SessionError struct {
	Code    string
	Message string
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var (
	ErrSessionNotFound = &SessionError{Code: "sessionNotFound", Message: "booking session not found or expired"}
	ErrSlotUnavailable = &SessionError{Code: "slotUnavailable", Message: "selected time is not an offerable slot for this day"}
	ErrNoSlotSelected  = &SessionError{Code: "noSlotSelected", Message: "no slot has been selected for this session"}
)
