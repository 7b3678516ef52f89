package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/venue-booking/internal/persistence"
)

// VenueService handles venue registration, partial updates, and listing.
type VenueService struct {
	venues VenueStore
	newID  func(prefix string) string
	now    func() time.Time
	logger *slog.Logger
}

// NewVenueService wires dependencies for venue operations.
func NewVenueService(venues VenueStore, newID func(prefix string) string, now func() time.Time, logger *slog.Logger) *VenueService {
	if newID == nil {
		newID = func(string) string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &VenueService{venues: venues, newID: newID, now: now, logger: defaultLogger(logger)}
}

func (s *VenueService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "VenueService", operation, attrs...)
}

// CreateVenue registers a venue for the owning administrator.
func (s *VenueService) CreateVenue(ctx context.Context, input VenueInput) (venue persistence.Venue, err error) {
	if s == nil || s.venues == nil {
		return persistence.Venue{}, fmt.Errorf("venue service not configured")
	}

	logger := s.loggerWith(ctx, "CreateVenue", "admin_id", input.AdminID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "venue creation failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("venue_id", venue.ID).InfoContext(ctx, "venue created")
	}()

	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if strings.TrimSpace(input.Address) == "" {
		vErr.add("address", "address is required")
	}
	if strings.TrimSpace(input.AdminID) == "" {
		vErr.add("adminId", "admin id is required")
	}
	if vErr.HasErrors() {
		return persistence.Venue{}, vErr
	}

	venue = persistence.Venue{
		ID:          s.newID("venue"),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Address:     strings.TrimSpace(input.Address),
		AdminID:     input.AdminID,
		CreatedAt:   s.now(),
	}

	if createErr := s.venues.CreateVenue(ctx, venue); createErr != nil {
		return persistence.Venue{}, mapRepoError(createErr)
	}

	return venue, nil
}

// UpdateVenue applies a partial update. Absent fields stay untouched; an
// explicit empty description clears it.
func (s *VenueService) UpdateVenue(ctx context.Context, venueID string, patch VenuePatch) (venue persistence.Venue, err error) {
	if s == nil || s.venues == nil {
		return persistence.Venue{}, fmt.Errorf("venue service not configured")
	}

	logger := s.loggerWith(ctx, "UpdateVenue", "venue_id", venueID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "venue update failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "venue updated")
	}()

	existing, getErr := s.venues.GetVenue(ctx, venueID)
	if getErr != nil {
		return persistence.Venue{}, mapRepoError(getErr)
	}

	updated := existing
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}
	if patch.Address != nil {
		updated.Address = *patch.Address
	}

	if updateErr := s.venues.UpdateVenue(ctx, updated); updateErr != nil {
		return persistence.Venue{}, mapRepoError(updateErr)
	}

	return updated, nil
}

// GetVenue returns a venue by ID.
func (s *VenueService) GetVenue(ctx context.Context, venueID string) (persistence.Venue, error) {
	if s == nil || s.venues == nil {
		return persistence.Venue{}, fmt.Errorf("venue service not configured")
	}
	venue, err := s.venues.GetVenue(ctx, venueID)
	if err != nil {
		return persistence.Venue{}, mapRepoError(err)
	}
	return venue, nil
}

// ListVenues enumerates venues, optionally narrowed to those owned by an
// administrator or joined by a member.
func (s *VenueService) ListVenues(ctx context.Context, filter persistence.VenueFilter) ([]persistence.Venue, error) {
	if s == nil || s.venues == nil {
		return nil, fmt.Errorf("venue service not configured")
	}
	venues, err := s.venues.ListVenues(ctx, filter)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return venues, nil
}
