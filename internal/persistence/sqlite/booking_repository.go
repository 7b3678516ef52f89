package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/venue-booking/internal/persistence"
)

// BookingRepository implements persistence.BookingRepository on SQLite.
type BookingRepository struct {
	pool *ConnectionPool
}

// NewBookingRepository creates a SQLite booking repository.
func NewBookingRepository(pool *ConnectionPool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

// CreateBooking inserts a new booking. The overlap check runs again inside
// the write transaction, so two racing requests for intersecting slots on
// the same room and date cannot both commit; the loser gets
// persistence.ErrConflict.
func (r *BookingRepository) CreateBooking(ctx context.Context, booking persistence.Booking) error {
	if booking.ID == "" {
		return persistence.ErrConstraintViolation
	}

	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		var clashes int
		err := tx.QueryRow(`
			SELECT COUNT(*) FROM bookings
			WHERE room_id = ? AND booking_date = ? AND status = 'active'
			  AND start_time < ? AND end_time > ?`,
			booking.RoomID,
			booking.BookingDate,
			booking.EndTime,
			booking.StartTime,
		).Scan(&clashes)
		if err != nil {
			return mapError(err)
		}
		if clashes > 0 {
			return persistence.ErrConflict
		}

		_, err = tx.Exec(`
			INSERT INTO bookings (id, room_id, user_id, booking_date, start_time, end_time, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			booking.ID,
			booking.RoomID,
			booking.UserID,
			booking.BookingDate,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			formatTime(booking.CreatedAt),
		)
		return mapError(err)
	})
}

// GetBooking retrieves a booking by ID.
func (r *BookingRepository) GetBooking(ctx context.Context, id string) (persistence.Booking, error) {
	if id == "" {
		return persistence.Booking{}, persistence.ErrNotFound
	}
	row := r.pool.db.QueryRowContext(ctx, `
		SELECT id, room_id, user_id, booking_date, start_time, end_time, status, created_at
		FROM bookings WHERE id = ?`, id)
	return scanBooking(row)
}

// UpdateBooking rewrites the booking status.
func (r *BookingRepository) UpdateBooking(ctx context.Context, booking persistence.Booking) error {
	if booking.ID == "" {
		return persistence.ErrNotFound
	}

	result, err := r.pool.db.ExecContext(ctx,
		"UPDATE bookings SET status = ? WHERE id = ?",
		booking.Status,
		booking.ID,
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

// ListBookings returns bookings matching the filter, ordered by date then
// start time. VenueID narrows to bookings whose room belongs to the venue.
func (r *BookingRepository) ListBookings(ctx context.Context, filter persistence.BookingFilter) ([]persistence.Booking, error) {
	query := `
		SELECT b.id, b.room_id, b.user_id, b.booking_date, b.start_time, b.end_time, b.status, b.created_at
		FROM bookings b`
	var (
		clauses []string
		args    []any
	)
	if filter.VenueID != "" {
		query += " JOIN rooms r ON r.id = b.room_id"
		clauses = append(clauses, "r.venue_id = ?")
		args = append(args, filter.VenueID)
	}
	if filter.UserID != "" {
		clauses = append(clauses, "b.user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.RoomID != "" {
		clauses = append(clauses, "b.room_id = ?")
		args = append(args, filter.RoomID)
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY b.booking_date ASC, b.start_time ASC, b.id ASC"

	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

// ListActiveBookings returns the active bookings for one room on one date in
// start-time order.
func (r *BookingRepository) ListActiveBookings(ctx context.Context, roomID, bookingDate string) ([]persistence.Booking, error) {
	rows, err := r.pool.db.QueryContext(ctx, `
		SELECT id, room_id, user_id, booking_date, start_time, end_time, status, created_at
		FROM bookings
		WHERE room_id = ? AND booking_date = ? AND status = 'active'
		ORDER BY start_time ASC, id ASC`, roomID, bookingDate)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func collectBookings(rows *sql.Rows) ([]persistence.Booking, error) {
	var bookings []persistence.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return bookings, nil
}

func scanBooking(row rowScanner) (persistence.Booking, error) {
	var (
		booking      persistence.Booking
		createdAtStr string
	)
	err := row.Scan(
		&booking.ID,
		&booking.RoomID,
		&booking.UserID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&createdAtStr,
	)
	if err != nil {
		return persistence.Booking{}, mapError(err)
	}
	if booking.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return persistence.Booking{}, err
	}
	return booking, nil
}
