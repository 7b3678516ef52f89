package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/venue-booking/internal/persistence"
)

// RoomRepository implements persistence.RoomRepository on SQLite.
type RoomRepository struct {
	pool *ConnectionPool
}

// NewRoomRepository creates a SQLite room repository.
func NewRoomRepository(pool *ConnectionPool) *RoomRepository {
	return &RoomRepository{pool: pool}
}

// CreateRoom inserts a new room.
func (r *RoomRepository) CreateRoom(ctx context.Context, room persistence.Room) error {
	if room.ID == "" {
		return persistence.ErrConstraintViolation
	}

	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO rooms (id, venue_id, name, capacity, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		room.ID,
		room.VenueID,
		room.Name,
		room.Capacity,
		formatTime(room.CreatedAt),
	)
	return mapError(err)
}

// GetRoom retrieves a room by ID.
func (r *RoomRepository) GetRoom(ctx context.Context, id string) (persistence.Room, error) {
	if id == "" {
		return persistence.Room{}, persistence.ErrNotFound
	}
	row := r.pool.db.QueryRowContext(ctx, `
		SELECT id, venue_id, name, capacity, created_at
		FROM rooms WHERE id = ?`, id)
	return scanRoom(row)
}

// UpdateRoom rewrites the mutable room columns.
func (r *RoomRepository) UpdateRoom(ctx context.Context, room persistence.Room) error {
	if room.ID == "" {
		return persistence.ErrNotFound
	}

	result, err := r.pool.db.ExecContext(ctx, `
		UPDATE rooms SET name = ?, capacity = ? WHERE id = ?`,
		room.Name,
		room.Capacity,
		room.ID,
	)
	if err != nil {
		return mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// DeleteRoom removes a room and every booking that references it in one
// transaction.
func (r *RoomRepository) DeleteRoom(ctx context.Context, id string) error {
	if id == "" {
		return persistence.ErrNotFound
	}

	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM bookings WHERE room_id = ?", id); err != nil {
			return mapError(err)
		}

		result, err := tx.Exec("DELETE FROM rooms WHERE id = ?", id)
		if err != nil {
			return mapError(err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("sqlite: rows affected: %w", err)
		}
		if affected == 0 {
			return persistence.ErrNotFound
		}
		return nil
	})
}

// ListRooms returns rooms matching the filter, ordered by name then ID.
func (r *RoomRepository) ListRooms(ctx context.Context, filter persistence.RoomFilter) ([]persistence.Room, error) {
	query := `
		SELECT id, venue_id, name, capacity, created_at
		FROM rooms`
	var args []any
	if len(filter.VenueIDs) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(filter.VenueIDs)), ", ")
		query += " WHERE venue_id IN (" + placeholders + ")"
		for _, id := range filter.VenueIDs {
			args = append(args, id)
		}
	}
	query += " ORDER BY name ASC, id ASC"

	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var rooms []persistence.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return rooms, nil
}

func scanRoom(row rowScanner) (persistence.Room, error) {
	var (
		room         persistence.Room
		createdAtStr string
	)
	err := row.Scan(
		&room.ID,
		&room.VenueID,
		&room.Name,
		&room.Capacity,
		&createdAtStr,
	)
	if err != nil {
		return persistence.Room{}, mapError(err)
	}
	if room.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return persistence.Room{}, err
	}
	return room, nil
}
