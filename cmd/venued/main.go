// Command venued runs the venue booking HTTP service.
package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/example/venue-booking/internal/application"
	"github.com/example/venue-booking/internal/config"
	httpapi "github.com/example/venue-booking/internal/http"
	"github.com/example/venue-booking/internal/identity"
	"github.com/example/venue-booking/internal/logging"
	"github.com/example/venue-booking/internal/metrics"
	"github.com/example/venue-booking/internal/persistence/sqlite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.NewLogger(cfg.LogLevel)

	pool, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	ctx := context.Background()
	if err := sqlite.Migrate(ctx, pool); err != nil {
		return err
	}
	if err := sqlite.Seed(ctx, pool, time.Now()); err != nil {
		return err
	}

	users := sqlite.NewUserRepository(pool)
	venues := sqlite.NewVenueRepository(pool)
	rooms := sqlite.NewRoomRepository(pool)
	memberships := sqlite.NewMembershipRepository(pool)
	invitations := sqlite.NewInvitationRepository(pool)
	bookings := sqlite.NewBookingRepository(pool)

	ids := identity.NewGenerator(time.Now, rand.Reader)

	authService := application.NewAuthService(users, ids.NewID, time.Now, logger)
	userService := application.NewUserService(users, ids.NewID, time.Now, logger)
	venueService := application.NewVenueService(venues, ids.NewID, time.Now, logger)
	roomService := application.NewRoomService(rooms, venues, ids.NewID, time.Now, logger)
	membershipService := application.NewMembershipService(memberships, ids.NewID, time.Now, logger)
	invitationService := application.NewInvitationService(invitations, memberships, venues, ids.NewID, ids.NewToken, time.Now, logger)
	bookingService := application.NewBookingService(bookings, rooms, memberships, ids.NewID, time.Now, logger)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	limiter := httpapi.NewRateLimiter(httpapi.RateLimiterConfig{
		Rate:            rate.Limit(float64(cfg.RateLimit) / 60.0),
		Burst:           cfg.RateBurst,
		CleanupInterval: 5 * time.Minute,
	})
	defer limiter.Stop()

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Auth:         authService,
		Users:        userService,
		Venues:       venueService,
		Rooms:        roomService,
		Availability: bookingService,
		Memberships:  membershipService,
		Invitations:  invitationService,
		Bookings:     bookingService,
		Recorder:     collector,
		Gatherer:     registry,
		RateLimiter:  limiter,
		Logger:       logger,
	})

	corsLayer := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           corsLayer.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
