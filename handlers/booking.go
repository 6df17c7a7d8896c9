package handlers

import (
	"errors"
	"net/http"

	"solbooking/services/booking"
	"solbooking/utils"

	"github.com/gin-gonic/gin"
)

// StartBookingSessionHandler creates a new booking session.
func (hb *HandlerBundle) StartBookingSessionHandler(c *gin.Context) {
	var input struct {
		TherapistEmail string `json:"therapistEmail" binding:"required"`
		ClientState    string `json:"clientState"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := hb.Sessions.Initiate(c.Request.Context(), input.TherapistEmail, input.ClientState)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "failed to start booking session", err.Error())
		return
	}
	c.JSON(http.StatusOK, session)
}

// SelectSlotHandler records the client's chosen display-time slot for a date.
func (hb *HandlerBundle) SelectSlotHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input struct {
		Date        string `json:"date" binding:"required"`
		DisplayTime string `json:"displayTime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := hb.Sessions.SelectSlot(c.Request.Context(), sessionID, input.Date, input.DisplayTime)
	if err != nil {
		var sessionErr *booking.SessionError
		switch {
		case errors.Is(err, booking.ErrSessionNotFound):
			utils.JSONError(c, http.StatusNotFound, "booking session not found or expired", "")
		case errors.As(err, &sessionErr):
			utils.JSONError(c, http.StatusConflict, sessionErr.Message, "")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to select slot", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, session)
}

// ConfirmBookingHandler closes the session and returns the scheduling-timezone
// pair handed to the downstream appointment flow.
func (hb *HandlerBundle) ConfirmBookingHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")

	confirmation, err := hb.Sessions.Confirm(c.Request.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrSessionNotFound):
			utils.JSONError(c, http.StatusNotFound, "booking session not found or expired", "")
		case errors.Is(err, booking.ErrNoSlotSelected):
			utils.JSONError(c, http.StatusConflict, "no slot has been selected for this session", "")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to confirm booking", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, confirmation)
}

// CancelSessionHandler discards a booking session.
func (hb *HandlerBundle) CancelSessionHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if err := hb.Sessions.Cancel(c.Request.Context(), sessionID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to cancel session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionID": sessionID, "status": "cancelled"})
}
