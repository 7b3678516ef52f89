package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/venue-booking/internal/persistence"
)

// RoomService handles room management within a venue. Deleting a room also
// removes every booking that referenced it; the storage layer performs both
// steps in one transaction so no orphan bookings survive.
type RoomService struct {
	rooms  RoomStore
	venues VenueStore
	newID  func(prefix string) string
	now    func() time.Time
	logger *slog.Logger
}

// NewRoomService wires dependencies for room operations.
func NewRoomService(rooms RoomStore, venues VenueStore, newID func(prefix string) string, now func() time.Time, logger *slog.Logger) *RoomService {
	if newID == nil {
		newID = func(string) string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &RoomService{rooms: rooms, venues: venues, newID: newID, now: now, logger: defaultLogger(logger)}
}

func (s *RoomService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "RoomService", operation, attrs...)
}

// CreateRoom validates input, confirms the owning venue exists, and persists
// a new room.
func (s *RoomService) CreateRoom(ctx context.Context, input RoomInput) (room persistence.Room, err error) {
	if s == nil || s.rooms == nil {
		return persistence.Room{}, fmt.Errorf("room service not configured")
	}

	logger := s.loggerWith(ctx, "CreateRoom", "venue_id", input.VenueID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "room creation failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("room_id", room.ID).InfoContext(ctx, "room created")
	}()

	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if input.Capacity < 1 {
		vErr.add("capacity", "capacity must be at least 1")
	}
	if vErr.HasErrors() {
		return persistence.Room{}, vErr
	}

	if s.venues != nil {
		if _, getErr := s.venues.GetVenue(ctx, input.VenueID); getErr != nil {
			if errors.Is(getErr, persistence.ErrNotFound) {
				return persistence.Room{}, ErrNotFound
			}
			return persistence.Room{}, getErr
		}
	}

	room = persistence.Room{
		ID:        s.newID("room"),
		VenueID:   input.VenueID,
		Name:      strings.TrimSpace(input.Name),
		Capacity:  input.Capacity,
		CreatedAt: s.now(),
	}

	if createErr := s.rooms.CreateRoom(ctx, room); createErr != nil {
		return persistence.Room{}, mapRepoError(createErr)
	}

	return room, nil
}

// UpdateRoom applies a partial update, revalidating capacity when supplied.
func (s *RoomService) UpdateRoom(ctx context.Context, roomID string, patch RoomPatch) (room persistence.Room, err error) {
	if s == nil || s.rooms == nil {
		return persistence.Room{}, fmt.Errorf("room service not configured")
	}

	logger := s.loggerWith(ctx, "UpdateRoom", "room_id", roomID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "room update failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "room updated")
	}()

	existing, getErr := s.rooms.GetRoom(ctx, roomID)
	if getErr != nil {
		return persistence.Room{}, mapRepoError(getErr)
	}

	if patch.Capacity != nil && *patch.Capacity < 1 {
		vErr := &ValidationError{}
		vErr.add("capacity", "capacity must be at least 1")
		return persistence.Room{}, vErr
	}

	updated := existing
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Capacity != nil {
		updated.Capacity = *patch.Capacity
	}

	if updateErr := s.rooms.UpdateRoom(ctx, updated); updateErr != nil {
		return persistence.Room{}, mapRepoError(updateErr)
	}

	return updated, nil
}

// DeleteRoom removes a room together with all bookings that reference it.
func (s *RoomService) DeleteRoom(ctx context.Context, roomID string) error {
	if s == nil || s.rooms == nil {
		return fmt.Errorf("room service not configured")
	}

	logger := s.loggerWith(ctx, "DeleteRoom", "room_id", roomID)
	if err := s.rooms.DeleteRoom(ctx, roomID); err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "room delete failed", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "room deleted")
	return nil
}

// ListRooms enumerates rooms, optionally narrowed to one or more venues.
func (s *RoomService) ListRooms(ctx context.Context, filter persistence.RoomFilter) ([]persistence.Room, error) {
	if s == nil || s.rooms == nil {
		return nil, fmt.Errorf("room service not configured")
	}
	rooms, err := s.rooms.ListRooms(ctx, filter)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return rooms, nil
}
