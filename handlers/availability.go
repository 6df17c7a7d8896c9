package handlers

import (
	"fmt"
	"net/http"
	"time"

	"solbooking/models"
	"solbooking/services/booking"
	"solbooking/utils"

	"github.com/gin-gonic/gin"
)

type daySlotsResponse struct {
	Date           string                   `json:"date"`
	ClientTimezone string                   `json:"clientTimezone"`
	TimezoneLabel  string                   `json:"timezoneLabel"`
	Slots          []models.TimeSlotMapping `json:"slots"`
}

// GetDaySlotsHandler returns the offerable slots for one therapist-day,
// rendered in the client's display timezone. A day with zero resolvable slots
// (genuine unavailability, fetch failure, or policy filtering alike) comes
// back with an empty slot list.
func (hb *HandlerBundle) GetDaySlotsHandler(c *gin.Context) {
	therapistEmail := c.Param("therapistEmail")
	date := c.Param("date")
	clientTimezone := utils.TimezoneForState(c.Query("state"))

	therapist, err := hb.Therapists.GetByCalendarEmail(therapistEmail)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "therapist not found", err.Error())
		return
	}

	day, err := hb.Availability.GetOrFetch(c.Request.Context(), therapistEmail, date)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid availability request", err.Error())
		return
	}

	window := hb.Window.ComputeWindow(time.Now())
	resolved := booking.ResolveDaySlots(day, window, therapist.Category())

	slots := make([]models.TimeSlotMapping, 0, len(resolved))
	for _, slot := range resolved {
		slots = append(slots, utils.DisplaySlot(slot, clientTimezone, date))
	}

	c.JSON(http.StatusOK, daySlotsResponse{
		Date:           date,
		ClientTimezone: clientTimezone,
		TimezoneLabel:  utils.DisplayLabel(clientTimezone, date),
		Slots:          slots,
	})
}

type monthDensityResponse struct {
	Month string              `json:"month"`
	Days  []models.DayDensity `json:"days"`
}

// GetMonthDensityHandler preloads a calendar month of availability and
// returns per-day bookable densities for the grid.
func (hb *HandlerBundle) GetMonthDensityHandler(c *gin.Context) {
	therapistEmail := c.Param("therapistEmail")
	month := c.Param("month")

	first, err := time.ParseInLocation("2006-01", month, utils.SchedulingLocation())
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid month", fmt.Sprintf("expected YYYY-MM, got %q", month))
		return
	}

	therapist, err := hb.Therapists.GetByCalendarEmail(therapistEmail)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "therapist not found", err.Error())
		return
	}

	var dates []string
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(models.DateLayout))
	}

	days, err := hb.Availability.PreloadDates(c.Request.Context(), therapistEmail, dates)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to preload availability", err.Error())
		return
	}

	window := hb.Window.ComputeWindow(time.Now())
	densities := make([]models.DayDensity, 0, len(days))
	for _, day := range days {
		resolved := booking.ResolveDaySlots(day, window, therapist.Category())
		densities = append(densities, models.DayDensity{
			Date:          day.Date,
			TotalSlots:    day.TotalSlots,
			BookableSlots: len(resolved),
			HasBookable:   day.HasBookableSessions && len(resolved) > 0,
		})
	}

	c.JSON(http.StatusOK, monthDensityResponse{Month: month, Days: densities})
}
