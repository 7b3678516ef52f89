// Package metrics collects and exposes Prometheus metrics for the booking
// service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the surface consumed by the HTTP layer and handlers.
type Recorder interface {
	RecordRequest(method, route string, statusCode int, duration time.Duration)
	RecordBookingCreated()
	RecordSlotConflict()
	RecordInvitationIssued()
	RecordInvitationRedeemed()
}

// Collector implements Recorder on a Prometheus registry.
type Collector struct {
	requests            *prometheus.CounterVec
	requestLatency      *prometheus.HistogramVec
	bookingsCreated     prometheus.Counter
	slotConflicts       prometheus.Counter
	invitationsIssued   prometheus.Counter
	invitationsRedeemed prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "venued_http_requests_total",
			Help: "HTTP requests by method, route, and status code.",
		}, []string{"method", "route", "status_code"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "venued_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		bookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "venued_bookings_created_total",
			Help: "Bookings accepted.",
		}),
		slotConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "venued_booking_conflicts_total",
			Help: "Booking attempts rejected because the slot overlapped an active booking.",
		}),
		invitationsIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "venued_invitations_issued_total",
			Help: "Invitations created.",
		}),
		invitationsRedeemed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "venued_invitations_redeemed_total",
			Help: "Invitations redeemed into memberships.",
		}),
	}

	reg.MustRegister(
		c.requests,
		c.requestLatency,
		c.bookingsCreated,
		c.slotConflicts,
		c.invitationsIssued,
		c.invitationsRedeemed,
	)

	return c
}

// RecordRequest records one finished HTTP request.
func (c *Collector) RecordRequest(method, route string, statusCode int, duration time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	c.requestLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordBookingCreated records an accepted booking.
func (c *Collector) RecordBookingCreated() {
	c.bookingsCreated.Inc()
}

// RecordSlotConflict records a booking rejected for overlapping a slot.
func (c *Collector) RecordSlotConflict() {
	c.slotConflicts.Inc()
}

// RecordInvitationIssued records a created invitation.
func (c *Collector) RecordInvitationIssued() {
	c.invitationsIssued.Inc()
}

// RecordInvitationRedeemed records a successful redemption.
func (c *Collector) RecordInvitationRedeemed() {
	c.invitationsRedeemed.Inc()
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Noop is a Recorder that discards every observation. Used in tests.
type Noop struct{}

func (Noop) RecordRequest(string, string, int, time.Duration) {}
func (Noop) RecordBookingCreated()                            {}
func (Noop) RecordSlotConflict()                              {}
func (Noop) RecordInvitationIssued()                          {}
func (Noop) RecordInvitationRedeemed()                        {}
