package routes

import (
	"net/http"

	"solbooking/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAvailabilityRoutes registers the calendar-grid availability endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.GET("/:therapistEmail/day/:date", hb.GetDaySlotsHandler)
		api.GET("/:therapistEmail/month/:month", hb.GetMonthDensityHandler)
	}
}

// RegisterBookingRoutes registers the booking-session endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/booking")
	{
		api.POST("/session", hb.StartBookingSessionHandler)             // Phase 1: start session
		api.PUT("/session/:sessionID/slot", hb.SelectSlotHandler)       // Phase 2: choose a slot
		api.POST("/session/:sessionID/confirm", hb.ConfirmBookingHandler) // Phase 3: confirm
		api.DELETE("/session/:sessionID", hb.CancelSessionHandler)
	}
}

// RegisterHealthRoutes registers the liveness endpoint.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
