// File: solbooking/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"solbooking/config"
	"solbooking/database"
	therapistRepo "solbooking/database/repository/therapist"
	"solbooking/handlers"
	"solbooking/middleware"
	"solbooking/routes"
	"solbooking/services/availability"
	"solbooking/services/booking"
	"solbooking/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// repositories.
	therapists := therapistRepo.NewMongoTherapistRepo()

	// services.
	upstream := availability.NewUpstreamSource(config.AppConfig.UpstreamBaseURL)
	availabilityCache := availability.NewCache(
		upstream,
		time.Duration(config.AppConfig.AvailabilityTTLSeconds)*time.Second,
	)
	windowPolicy := booking.NewWindowPolicy(config.AppConfig.BookingWindowDays)

	sessionService := &booking.DefaultSessionService{
		Availability: availabilityCache,
		Therapists:   therapists,
		Window:       windowPolicy,
		Cache:        utils.GetSessionCacheClient(),
		SessionTTL:   time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute,
	}

	hb := handlers.NewHandlerBundle(availabilityCache, sessionService, therapists, windowPolicy)

	routes.RegisterHealthRoutes(router)
	routes.RegisterAvailabilityRoutes(router, hb)
	routes.RegisterBookingRoutes(router, hb)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("solbooking listening on port %s", config.AppConfig.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: forced shutdown: %v", err)
	}
}
