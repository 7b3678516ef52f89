// Package http wires the service layer to the wire contract: chi routes,
// camelCase JSON DTOs, and the error envelope.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/example/venue-booking/internal/metrics"
)

// RouterConfig carries everything the router needs.
type RouterConfig struct {
	Auth         AuthService
	Users        UserService
	Venues       VenueService
	Rooms        RoomService
	Availability AvailabilityService
	Memberships  MembershipService
	Invitations  InvitationService
	Bookings     BookingService

	Recorder    metrics.Recorder
	Gatherer    prometheus.Gatherer
	RateLimiter *RateLimiter
	Logger      *slog.Logger
}

// NewRouter builds the full route tree.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Recorder == nil {
		cfg.Recorder = metrics.Noop{}
	}

	auth := NewAuthHandler(cfg.Auth, cfg.Logger)
	users := NewUserHandler(cfg.Users, cfg.Logger)
	venues := NewVenueHandler(cfg.Venues, cfg.Logger)
	rooms := NewRoomHandler(cfg.Rooms, cfg.Availability, cfg.Logger)
	memberships := NewMembershipHandler(cfg.Memberships, cfg.Logger)
	invitations := NewInvitationHandler(cfg.Invitations, cfg.Recorder, cfg.Logger)
	bookings := NewBookingHandler(cfg.Bookings, cfg.Recorder, cfg.Logger)

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(Metrics(cfg.Recorder))
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Middleware())
	}

	r.Get("/api/health", func(w http.ResponseWriter, req *http.Request) {
		newResponder(cfg.Logger).writeJSON(req.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", auth.Login)
		r.Post("/register", auth.Register)
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", users.List)
		r.Post("/", users.Create)
		r.Get("/by-email", users.GetByEmail)
	})

	r.Route("/api/venues", func(r chi.Router) {
		r.Get("/", venues.List)
		r.Post("/", venues.Create)
		r.Get("/{venueID}", venues.Get)
		r.Patch("/{venueID}", venues.Update)
	})

	r.Route("/api/rooms", func(r chi.Router) {
		r.Get("/", rooms.List)
		r.Post("/", rooms.Create)
		r.Patch("/{roomID}", rooms.Update)
		r.Delete("/{roomID}", rooms.Delete)
		r.Get("/{roomID}/availability", rooms.Availability)
	})

	r.Route("/api/memberships", func(r chi.Router) {
		r.Get("/", memberships.List)
		r.Post("/", memberships.Create)
	})

	r.Route("/api/invitations", func(r chi.Router) {
		r.Get("/", invitations.List)
		r.Post("/", invitations.Create)
		r.Get("/by-token/{token}", invitations.GetByToken)
		r.Post("/by-token/{token}/redeem", invitations.Redeem)
		r.Patch("/{invitationID}", invitations.Update)
		r.Post("/{invitationID}/revoke", invitations.Revoke)
	})

	r.Route("/api/bookings", func(r chi.Router) {
		r.Get("/", bookings.List)
		r.Post("/", bookings.Create)
		r.Post("/{bookingID}/cancel", bookings.Cancel)
	})

	if cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(cfg.Gatherer))
	}

	return r
}
