package sqlite

import (
	"context"
	"fmt"

	"github.com/example/venue-booking/internal/persistence"
)

// VenueRepository implements persistence.VenueRepository on SQLite.
type VenueRepository struct {
	pool *ConnectionPool
}

// NewVenueRepository creates a SQLite venue repository.
func NewVenueRepository(pool *ConnectionPool) *VenueRepository {
	return &VenueRepository{pool: pool}
}

// CreateVenue inserts a new venue.
func (r *VenueRepository) CreateVenue(ctx context.Context, venue persistence.Venue) error {
	if venue.ID == "" {
		return persistence.ErrConstraintViolation
	}

	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO venues (id, name, description, address, admin_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		venue.ID,
		venue.Name,
		venue.Description,
		venue.Address,
		venue.AdminID,
		formatTime(venue.CreatedAt),
	)
	return mapError(err)
}

// GetVenue retrieves a venue by ID.
func (r *VenueRepository) GetVenue(ctx context.Context, id string) (persistence.Venue, error) {
	if id == "" {
		return persistence.Venue{}, persistence.ErrNotFound
	}
	row := r.pool.db.QueryRowContext(ctx, `
		SELECT id, name, description, address, admin_id, created_at
		FROM venues WHERE id = ?`, id)
	return scanVenue(row)
}

// UpdateVenue rewrites the mutable venue columns.
func (r *VenueRepository) UpdateVenue(ctx context.Context, venue persistence.Venue) error {
	if venue.ID == "" {
		return persistence.ErrNotFound
	}

	result, err := r.pool.db.ExecContext(ctx, `
		UPDATE venues SET name = ?, description = ?, address = ?
		WHERE id = ?`,
		venue.Name,
		venue.Description,
		venue.Address,
		venue.ID,
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

// ListVenues returns venues matching the filter, ordered by creation time.
// An empty filter returns every venue; MemberUserID narrows to venues the
// user has joined.
func (r *VenueRepository) ListVenues(ctx context.Context, filter persistence.VenueFilter) ([]persistence.Venue, error) {
	query := `
		SELECT v.id, v.name, v.description, v.address, v.admin_id, v.created_at
		FROM venues v`
	var (
		clauses []string
		args    []any
	)
	if filter.MemberUserID != "" {
		query += " JOIN memberships m ON m.venue_id = v.id"
		clauses = append(clauses, "m.user_id = ?")
		args = append(args, filter.MemberUserID)
	}
	if filter.AdminID != "" {
		clauses = append(clauses, "v.admin_id = ?")
		args = append(args, filter.AdminID)
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY v.created_at ASC, v.id ASC"

	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var venues []persistence.Venue
	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, venue)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return venues, nil
}

func scanVenue(row rowScanner) (persistence.Venue, error) {
	var (
		venue        persistence.Venue
		createdAtStr string
	)
	err := row.Scan(
		&venue.ID,
		&venue.Name,
		&venue.Description,
		&venue.Address,
		&venue.AdminID,
		&createdAtStr,
	)
	if err != nil {
		return persistence.Venue{}, mapError(err)
	}
	if venue.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return persistence.Venue{}, err
	}
	return venue, nil
}
