package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/beautybird/appointments/internal/api/router"
	"github.com/beautybird/appointments/internal/app/bootstrap"
	"github.com/beautybird/appointments/internal/booking"
	appconfig "github.com/beautybird/appointments/internal/config"
	"github.com/beautybird/appointments/internal/http/handlers"
	"github.com/beautybird/appointments/internal/messagebird"
	"github.com/beautybird/appointments/internal/notify"
	"github.com/beautybird/appointments/internal/observability/metrics"
	"github.com/beautybird/appointments/internal/phone"
	"github.com/beautybird/appointments/internal/schedule"
	"github.com/beautybird/appointments/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting beautybird appointments server",
		"env", cfg.Env,
		"port", cfg.Port,
		"timezone", cfg.Timezone,
	)

	converter, err := schedule.NewConverter(cfg.Timezone, cfg.DatetimeFormat)
	if err != nil {
		logger.Error("invalid timezone configuration", "error", err)
		os.Exit(1)
	}

	mbClient, err := messagebird.New(messagebird.Config{
		AccessKey: cfg.MessageBirdAPIKey,
		BaseURL:   cfg.MessageBirdBaseURL,
		Logger:    logger.Logger,
	})
	if err != nil {
		logger.Error("messagebird client setup failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	store, closeStore, err := bootstrap.BuildAppointmentStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("appointment store setup failed", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient != nil {
		defer redisClient.Close()
	}
	lookupCache := phone.NewCache(redisClient, cfg.LookupCacheTTL)

	bookingMetrics := metrics.NewBookingMetrics(nil)
	validator := phone.NewValidator(mbClient, cfg.CountryCode, lookupCache, logger)
	scheduler := notify.NewScheduler(mbClient, cfg.Originator, logger)
	workflow := booking.NewWorkflow(converter, validator, scheduler, store, bookingMetrics, logger)

	bookingHandler, err := handlers.NewBookingHandler(workflow, logger)
	if err != nil {
		logger.Error("handler setup failed", "error", err)
		os.Exit(1)
	}

	r := router.New(&router.Config{
		Logger:         logger,
		BookingHandler: bookingHandler,
		MetricsHandler: promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
